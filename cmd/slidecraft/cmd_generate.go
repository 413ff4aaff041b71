package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/HerbHall/slidecraft/internal/export"
	"github.com/HerbHall/slidecraft/internal/generate"
	"github.com/HerbHall/slidecraft/internal/preview"
	"github.com/HerbHall/slidecraft/internal/session"
	"github.com/HerbHall/slidecraft/pkg/models"
	"go.uber.org/zap"
)

// runGenerate collects the form parameters from flags, requests a
// presentation, then opens the terminal preview (or exports directly).
func runGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	configPath := fs.String("config", "", "path to configuration file")
	audience := fs.String("audience", "", "target audience (at least 2 characters)")
	description := fs.String("description", "", "what the presentation is about (at least 10 characters)")
	slides := fs.Int("slides", 5, "number of slides (3-20)")
	bullets := fs.Int("bullets", 0, "bullet points per slide (1-5, 0 lets the service decide)")
	themeName := fs.String("theme", "", "theme name (see `slidecraft themes`)")
	outDir := fs.String("out", ".", "directory for exported files")
	noPreview := fs.Bool("no-preview", false, "export immediately instead of opening the preview")
	_ = fs.Parse(args)

	cfg, logger := loadConfig(*configPath, true)
	defer func() { _ = logger.Sync() }()

	// The preview owns the terminal; keep routine logs out of it.
	logger = logger.WithOptions(zap.IncreaseLevel(zap.WarnLevel))

	themes := themeRegistry(cfg)
	th, err := themes.Resolve(*themeName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	req := generate.Request{
		Audience:    *audience,
		Description: *description,
		SlideCount:  *slides,
	}
	if *bullets != 0 {
		req.BulletPointCount = bullets
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	state := session.New(th)
	if err := state.BeginGenerate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr, "Generating presentation...")
	client := generate.NewClient(cfg.Generation, generationResolver(cfg), logger.Named("generate"))
	pres, err := client.Generate(ctx, req)
	state.EndGenerate()
	if err != nil {
		reportGenerateError(err)
		os.Exit(1)
	}
	state.SetPresentation(pres)

	if db, hist, err := openHistory(ctx, cfg.Database.Path); err != nil {
		logger.Warn("history unavailable, presentation not stored", zap.Error(err))
	} else {
		if id, err := hist.Save(ctx, req.Audience, pres); err != nil {
			logger.Warn("failed to store presentation", zap.Error(err))
		} else {
			fmt.Fprintf(os.Stderr, "Stored as %s\n", id)
		}
		db.Close()
	}

	pipeline := export.NewPipeline(cfg.Export, logger.Named("export"))
	exporter := func(ctx context.Context, p *models.Presentation, th models.Theme) (string, error) {
		a, err := pipeline.Export(ctx, p, th)
		if err != nil {
			return "", err
		}
		return export.Save(*outDir, a)
	}

	if *noPreview {
		path, err := exporter(ctx, pres, th)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to export presentation: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(path)
		return
	}

	if err := preview.Run(state, exporter); err != nil {
		fmt.Fprintf(os.Stderr, "preview: %v\n", err)
		os.Exit(1)
	}
}

func reportGenerateError(err error) {
	var vErr *generate.ValidationError
	if errors.As(err, &vErr) {
		fmt.Fprintln(os.Stderr, generate.MsgInvalidInput+":")
		for _, f := range vErr.Fields {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", f.Field, f.Message)
		}
		return
	}
	var gErr *generate.Error
	if errors.As(err, &gErr) {
		fmt.Fprintln(os.Stderr, gErr.Message)
		return
	}
	fmt.Fprintln(os.Stderr, generate.MsgFailed)
}
