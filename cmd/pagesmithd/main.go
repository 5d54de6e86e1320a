// Pagesmithd is the document generation daemon with HTTP/SSE transport.
//
// This binary starts the pagesmith HTTP server with full service
// initialization: the template catalog, credential registry, snapshot store,
// generation backend, and progress event stream.
//
// Configuration is loaded from ~/.config/pagesmith/config.yaml and overridden
// by environment variables. See internal/config for details.
//
// Usage:
//
//	# Start server with defaults
//	GENERATOR_API_KEY=... pagesmithd
//
//	# Configure via environment
//	SERVER_HTTP_PORT=9090 GENERATOR_MODEL=gemini-3-flash-preview pagesmithd
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/pagesmith/internal/config"
	"github.com/fyrsmithlabs/pagesmith/internal/credential"
	"github.com/fyrsmithlabs/pagesmith/internal/events"
	"github.com/fyrsmithlabs/pagesmith/internal/generation"
	httpapi "github.com/fyrsmithlabs/pagesmith/internal/http"
	"github.com/fyrsmithlabs/pagesmith/internal/logging"
	"github.com/fyrsmithlabs/pagesmith/internal/orchestrator"
	"github.com/fyrsmithlabs/pagesmith/internal/prompt"
	"github.com/fyrsmithlabs/pagesmith/internal/telemetry"
	"github.com/fyrsmithlabs/pagesmith/internal/template"
	vstore "github.com/fyrsmithlabs/pagesmith/internal/version"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default ~/.config/pagesmith/config.yaml)")
	flag.Parse()
	args := flag.Args()

	if len(args) > 0 {
		switch args[0] {
		case "version":
			printVersion()
			os.Exit(0)
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
			fmt.Fprintf(os.Stderr, "\nUsage:\n")
			fmt.Fprintf(os.Stderr, "  pagesmithd           Start the pagesmith daemon\n")
			fmt.Fprintf(os.Stderr, "  pagesmithd version   Show version information\n")
			os.Exit(1)
		}
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Printf("Received signal %v, shutting down gracefully...", sig)
		cancel()
	}()

	if err := run(ctx, *configPath); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server shutdown complete")
}

// printVersion prints version information.
func printVersion() {
	fmt.Printf("pagesmithd by Fyrsmith Labs\n")
	fmt.Printf("Version:    %s\n", version)
	fmt.Printf("Commit:     %s\n", gitCommit)
	fmt.Printf("Build Date: %s\n", buildDate)
}

// run starts the pagesmith server and blocks until context cancellation.
//
// Initialization order:
//  1. Load and validate configuration
//  2. Initialize logger and telemetry
//  3. Dial the generation backend
//  4. Build the catalog, registry, store, and event bus
//  5. Wire the orchestrator and HTTP server
//  6. Serve until the context is cancelled, then shut down gracefully
func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.NewLogger(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logging.Sync(logger) // Best-effort sync on shutdown
	}()

	logger.Info("starting pagesmithd",
		zap.String("version", version),
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("model", cfg.Generator.Model),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	tel, err := telemetry.New(ctx, telemetry.FromObservability(cfg.Observability, version), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := tel.Shutdown(context.Background()); err != nil {
			logger.Warn("telemetry shutdown failed", zap.Error(err))
		}
	}()

	if !cfg.Generator.APIKey.IsSet() {
		return fmt.Errorf("generator API key is required; set GENERATOR_API_KEY")
	}

	backend, err := generation.NewGeminiBackend(ctx, cfg.Generator.APIKey.Value())
	if err != nil {
		return fmt.Errorf("failed to initialize generation backend: %w", err)
	}

	client := generation.NewClient(backend,
		cfg.Generator.MaxRetries,
		cfg.Generator.RetryDelay.Duration(),
		logger)

	var cacheMgr *generation.CacheManager
	if cfg.Cache.Enabled {
		cacheMgr = generation.NewCacheManager(backend,
			cfg.Generator.Model,
			cfg.Cache.MinTokens,
			cfg.Cache.TTL.Duration(),
			logger)
	}

	catalog, err := template.NewCatalog(logger)
	if err != nil {
		return fmt.Errorf("failed to load template catalog: %w", err)
	}

	registry := credential.NewRegistry(logger)
	store := vstore.NewStore(logger)
	bus := events.NewBus()

	svc, err := orchestrator.NewService(
		orchestrator.Config{
			Model:       cfg.Generator.Model,
			Temperature: cfg.Generator.Temperature,
		},
		orchestrator.Deps{
			Catalog:     catalog,
			Credentials: registry,
			Store:       store,
			Builder:     prompt.NewBuilder(vstore.PlaceholderContent),
			Client:      client,
			Cache:       cacheMgr,
			Bus:         bus,
		},
		logger,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize orchestrator: %w", err)
	}

	srv, err := httpapi.NewServer(
		httpapi.Deps{
			Service:     svc,
			Catalog:     catalog,
			Credentials: registry,
			Store:       store,
			Bus:         bus,
		},
		logger,
		&httpapi.Config{
			Host:    cfg.Server.Host,
			Port:    cfg.Server.Port,
			Version: version,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to initialize http server: %w", err)
	}

	logger.Info("server configured",
		zap.String("health_endpoint", fmt.Sprintf("http://%s:%d/health", cfg.Server.Host, cfg.Server.Port)),
		zap.String("api_prefix", "/api/v1"),
		zap.String("events_endpoint", "/events/stream"),
		zap.String("metrics_endpoint", "/metrics"),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		cfg.Server.ShutdownTimeout.Duration())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
