// Package main implements the entry point for the learning tracker API
// server, which serves flashcard decks and the spaced review queue.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/phrazzld/learning-tracker/internal/app"
	"github.com/phrazzld/learning-tracker/internal/config"
	"github.com/phrazzld/learning-tracker/internal/platform/logger"
	"github.com/phrazzld/learning-tracker/internal/redact"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// run loads configuration, opens the backend and serves until shutdown.
func run(ctx context.Context) error {
	cfg, l, err := initializeApp()
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	backend, err := app.OpenBackend(ctx, cfg.Database, l)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := backend.Migrate(ctx, "up"); err != nil {
			_ = backend.Close()
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	a, err := newApplication(cfg, l, backend)
	if err != nil {
		_ = backend.Close()
		return err
	}

	return a.Run(ctx)
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(logger.LoggerConfig{Level: cfg.Server.LogLevel})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver)
	l.Debug("Database configuration", "url", redact.String(cfg.Database.URL))
	l.Debug("Auth configuration", "enabled", cfg.Auth.Enabled())

	return cfg, l, nil
}
