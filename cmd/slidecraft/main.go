package main

//	@title			Slidecraft API
//	@version		0.1.0
//	@description	Generates slide decks through a remote service, previews them and exports them as .pptx files.
//	@BasePath		/api/v1

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/HerbHall/slidecraft/api/swagger"
	"github.com/HerbHall/slidecraft/internal/clientip"
	"github.com/HerbHall/slidecraft/internal/config"
	"github.com/HerbHall/slidecraft/internal/export"
	"github.com/HerbHall/slidecraft/internal/generate"
	"github.com/HerbHall/slidecraft/internal/history"
	"github.com/HerbHall/slidecraft/internal/preview"
	"github.com/HerbHall/slidecraft/internal/server"
	"github.com/HerbHall/slidecraft/internal/store"
	"github.com/HerbHall/slidecraft/internal/theme"
	"github.com/HerbHall/slidecraft/internal/version"
	"go.uber.org/zap"
)

func main() {
	// Subcommand dispatch (before flag.Parse). No subcommand means serve.
	args := os.Args[1:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, rest := args[0], args[1:]
		switch cmd {
		case "serve":
			runServe(rest)
		case "generate":
			runGenerate(rest)
		case "export":
			runExport(rest)
		case "themes":
			runThemes(rest)
		case "version":
			fmt.Println(version.Info())
		default:
			fmt.Fprintf(os.Stderr, "unknown command %q\n\nusage: slidecraft [serve|generate|export|themes|version] [flags]\n", cmd)
			os.Exit(2)
		}
		return
	}
	runServe(args)
}

// loadConfig loads and validates configuration and builds the logger. It
// exits the process on failure.
func loadConfig(path string, requireGeneration bool) (*config.Config, *zap.Logger) {
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(requireGeneration); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration:\n%v\n", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	return cfg, logger
}

// themeRegistry returns the built-in themes with the configured default.
func themeRegistry(cfg *config.Config) *theme.Registry {
	reg, err := theme.Builtin().WithDefault(cfg.Export.DefaultTheme)
	if err != nil {
		// Validate already rejected unknown names.
		panic(err)
	}
	return reg
}

// generationResolver asks the deployed frontend for the caller's address.
// Returns nil when no deployed URL is configured.
func generationResolver(cfg *config.Config) generate.IPResolver {
	url := cfg.ClientIP.LookupURL
	if url == "" {
		if cfg.Generation.DeployedURL == "" {
			return nil
		}
		url = strings.TrimRight(cfg.Generation.DeployedURL, "/") + "/api/ip"
	}
	return clientip.NewResolver(url, cfg.ClientIP.LookupTimeout)
}

func openHistory(ctx context.Context, path string) (*store.SQLiteStore, *history.Store, error) {
	db, err := store.New(path)
	if err != nil {
		return nil, nil, err
	}
	if err := db.CheckVersion(ctx, version.Short()); err != nil {
		db.Close()
		return nil, nil, err
	}
	hist, err := history.New(ctx, db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, hist, nil
}

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "path to configuration file")
	_ = fs.Parse(args)

	cfg, logger := loadConfig(*configPath, true)
	defer func() { _ = logger.Sync() }()

	logger.Info("Slidecraft server starting", zap.String("version", version.Short()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, hist, err := openHistory(ctx, cfg.Database.Path)
	if err != nil {
		logger.Fatal("failed to open history database", zap.Error(err))
	}
	defer db.Close()
	logger.Info("database initialized",
		zap.String("component", "database"),
		zap.String("path", cfg.Database.Path),
	)

	themes := themeRegistry(cfg)

	var lookup clientip.Lookup
	if cfg.ClientIP.LookupURL != "" {
		lookup = clientip.NewResolver(cfg.ClientIP.LookupURL, cfg.ClientIP.LookupTimeout)
	}

	genClient := generate.NewClient(cfg.Generation, generationResolver(cfg), logger.Named("generate"))
	pipeline := export.NewPipeline(cfg.Export, logger.Named("export"))

	srv := server.New(cfg.Server, logger, db.Ping,
		clientip.NewHandler(lookup, logger.Named("clientip")),
		theme.NewHandler(themes),
		generate.NewHandler(genClient, hist, cfg.Generation, logger.Named("generate")),
		history.NewHandler(hist, logger.Named("history")),
		preview.NewHandler(hist, logger.Named("preview")),
		export.NewHandler(pipeline, themes, hist, logger.Named("export")),
	)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	logger.Info("Slidecraft server ready", zap.String("addr", cfg.Server.Addr()))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("Slidecraft server stopped")
}

func runThemes(args []string) {
	fs := flag.NewFlagSet("themes", flag.ExitOnError)
	configPath := fs.String("config", "", "path to configuration file")
	_ = fs.Parse(args)

	cfg, _ := loadConfig(*configPath, false)
	writeThemes(os.Stdout, themeRegistry(cfg))
}

// writeThemes lists every theme, marking the default with "*".
func writeThemes(w io.Writer, reg *theme.Registry) {
	def := reg.Default().Name
	for _, t := range reg.All() {
		marker := " "
		if t.Name == def {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-22s background %s  accent %s  text %s\n", marker, t.Name, t.Background, t.Accent, t.Text)
	}
}
