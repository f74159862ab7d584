package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/learning-tracker/internal/api"
	"github.com/phrazzld/learning-tracker/internal/app"
	"github.com/phrazzld/learning-tracker/internal/config"
	"github.com/phrazzld/learning-tracker/internal/jobs"
	"github.com/phrazzld/learning-tracker/internal/service/auth"
)

// jobTimeout bounds a single background job run.
const jobTimeout = time.Minute

// application holds the shared application dependencies and owns their
// cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	backend  *app.Backend
	services *app.Services

	// nil when authentication is disabled
	jwtService auth.JWTService

	// nil when no job is scheduled
	scheduler *jobs.Scheduler
}

// newApplication wires services, authentication and background jobs on top
// of an open backend.
func newApplication(cfg *config.Config, logger *slog.Logger, backend *app.Backend) (*application, error) {
	a := &application{
		config:  cfg,
		logger:  logger,
		backend: backend,
	}

	var err error
	a.services, err = app.NewServices(backend, cfg.Review, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	if cfg.Auth.Enabled() {
		a.jwtService, err = auth.NewJWTService(cfg.Auth)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
		}
		logger.Info("JWT authentication enabled",
			"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)
	} else {
		logger.Warn("JWT authentication disabled, API is open")
	}

	if cfg.Jobs.DueDigestSchedule != "" {
		a.scheduler = jobs.NewScheduler(logger, jobTimeout)
		digest := jobs.NewDueDigestJob(backend.Stores.Decks, backend.Stores.Cards, nil, logger)
		if _, err := a.scheduler.Schedule(cfg.Jobs.DueDigestSchedule, digest); err != nil {
			return nil, fmt.Errorf("failed to schedule due digest: %w", err)
		}
	}

	logger.Info("Application initialized successfully")
	return a, nil
}

// setupRouter builds the HTTP handler for the API.
func (a *application) setupRouter() http.Handler {
	return api.NewRouter(api.RouterConfig{
		Decks:             a.services.Decks,
		Cards:             a.services.Cards,
		Reviews:           a.services.Reviews,
		JWTService:        a.jwtService,
		AllowedOrigins:    a.config.Server.CORSAllowedOrigins,
		DefaultQueueLimit: a.config.Review.DefaultQueueLimit,
		Logger:            a.logger,
	})
}

// Run starts background jobs and the HTTP server, blocking until shutdown.
func (a *application) Run(ctx context.Context) error {
	if a.scheduler != nil {
		a.scheduler.Start()
	}

	if err := a.startHTTPServer(ctx, a.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup stops background jobs and closes the database.
func (a *application) cleanup(ctx context.Context) {
	if a.scheduler != nil {
		if err := a.scheduler.Stop(ctx); err != nil {
			a.logger.Error("Error stopping job scheduler", "error", err)
		}
	}

	if err := a.backend.Close(); err != nil {
		a.logger.Error("Error closing database connection", "error", err)
	}

	a.logger.Info("Application shutdown completed")
}
