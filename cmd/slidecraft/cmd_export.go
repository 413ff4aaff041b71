package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/HerbHall/slidecraft/internal/export"
	"github.com/HerbHall/slidecraft/pkg/models"
	"go.uber.org/zap"
)

// runExport renders a presentation JSON file (the slide model, as returned
// by the generation service) into a .pptx file.
func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	configPath := fs.String("config", "", "path to configuration file")
	in := fs.String("in", "", "presentation JSON file (required)")
	themeName := fs.String("theme", "", "theme name (see `slidecraft themes`)")
	outDir := fs.String("out", ".", "output directory")
	_ = fs.Parse(args)

	if *in == "" {
		fs.Usage()
		os.Exit(2)
	}

	cfg, logger := loadConfig(*configPath, false)
	defer func() { _ = logger.Sync() }()

	data, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", *in, err)
		os.Exit(1)
	}
	var pres models.Presentation
	if err := json.Unmarshal(data, &pres); err != nil {
		fmt.Fprintf(os.Stderr, "parse %s: %v\n", *in, err)
		os.Exit(1)
	}
	if err := pres.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", *in, err)
		os.Exit(1)
	}

	th, err := themeRegistry(cfg).Resolve(*themeName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	a, err := export.NewPipeline(cfg.Export, logger.Named("export")).Export(context.Background(), &pres, th)
	if err != nil {
		logger.Error("export failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "Failed to export presentation")
		os.Exit(1)
	}
	path, err := export.Save(*outDir, a)
	if err != nil {
		fmt.Fprintf(os.Stderr, "save: %v\n", err)
		os.Exit(1)
	}
	if a.Placeholders > 0 {
		fmt.Fprintf(os.Stderr, "%d image(s) could not be loaded\n", a.Placeholders)
	}
	fmt.Println(path)
}
