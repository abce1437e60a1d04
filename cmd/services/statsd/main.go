package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/soltixdb/colstats/internal/catalog"
	"github.com/soltixdb/colstats/internal/config"
	"github.com/soltixdb/colstats/internal/logging"
	"github.com/soltixdb/colstats/internal/router"
	"github.com/soltixdb/colstats/internal/statistics"
)

var (
	Version   = "dev"     // Injected via ldflags during build
	GitCommit = "unknown" // Injected via ldflags during build
	BuildTime = "unknown" // Injected via ldflags during build
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, logCloser, err := logging.NewFromConfig(cfg.Logging, "statsd")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logCloser.Close() }()
	logging.SetGlobal(logger)
	mode := "custom"
	switch {
	case cfg.IsDevelopment():
		mode = "development"
	case cfg.IsProduction():
		mode = "production"
	}
	logger.Info("Statistics service starting...",
		"version", Version, "commit", GitCommit, "build_time", BuildTime, "mode", mode)

	if err := cfg.EnsureDirectories(); err != nil {
		logger.Fatal("Failed to create directories", "error", err)
	}

	padding, err := statistics.ParsePadding(cfg.Statistics.DecimalPadding)
	if err != nil {
		logger.Fatal("Invalid decimal padding", "error", err)
	}
	opts := statistics.Options{Padding: padding}

	cat, err := catalog.New(cfg.Catalog, opts, logger)
	if err != nil {
		logger.Fatal("Failed to create statistics catalog", "error", err)
	}
	defer func() { _ = cat.Close() }()
	logger.Info("Statistics catalog initialized",
		"workers", cfg.Catalog.Workers,
		"cache_ttl", cfg.Catalog.CacheTTL.String(),
		"cache_dir", cfg.Catalog.CacheDir,
		"decimal_padding", padding.String())

	if cfg.Auth.Enabled {
		logger.Info("API key authentication enabled", "num_keys", len(cfg.Auth.APIKeys))
	} else {
		logger.Warn("API key authentication DISABLED - all requests will be allowed")
	}

	app := router.New(logger, cat, *cfg, opts)

	go func() {
		addr := cfg.GetServerAddress()
		logger.Info("Server listening", "address", addr, "data_dir", cfg.Server.DataDir)
		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
