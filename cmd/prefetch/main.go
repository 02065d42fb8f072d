// Command prefetch runs a full ingestion and writes the snapshot file
// without serving traffic. Useful for warming the cache before deploys.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	app "github.com/okian/pokedex/internal/app"
	"github.com/okian/pokedex/internal/config"
	"github.com/okian/pokedex/pkg/logger"
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	_ = logger.SetLevelString(cfg.LogLevel)

	// Remove any existing snapshot so Start performs a fresh ingestion.
	if err := os.Remove(cfg.CacheFile); err != nil && !os.IsNotExist(err) {
		log.Error(ctx, "failed to remove existing snapshot", logger.String("path", cfg.CacheFile), logger.Error(err))
		os.Exit(1)
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithBaseURL(cfg.BaseURL),
		app.WithBatchSize(cfg.BatchSize),
		app.WithCacheFile(cfg.CacheFile),
		app.WithRequestTimeout(time.Duration(cfg.RequestTimeoutMS)*time.Millisecond),
	)
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "prefetch failed", logger.Error(err))
		os.Exit(1)
	}
	svc.Stop()

	log.Info(ctx, "snapshot written", logger.String("path", cfg.CacheFile))
}
