// Package cli holds the start-up steps shared by cmd/budzet and
// cmd/budzet-audit.
package cli

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"budzet/internal/config"
	"budzet/internal/log"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

// LoadEnvFile loads .env for local development. A missing file is fine.
func LoadEnvFile() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}
}

// LoadAndValidateConfig loads configuration and validates it, exiting the
// process on failure.
func LoadAndValidateConfig() *config.Config {
	cfg, err := config.Load()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		slog.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// SetupLogger builds the application logger at the configured level and
// installs it as the slog default.
func SetupLogger(level, component string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	cfg := log.DefaultConfig()
	cfg.Level = lvl
	cfg.Component = component

	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger
}

// Run executes the tasks under an errgroup whose context is cancelled on
// SIGINT/SIGTERM or when any task fails. It returns the first task error;
// a signal-driven shutdown returns nil.
func Run(logger *log.Logger, tasks ...func(ctx context.Context) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		g.Go(func() error { return task(gctx) })
	}

	err := g.Wait()
	if ctx.Err() != nil {
		logger.Info("Shutdown complete", log.FieldOperation, log.OpShutdown)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
