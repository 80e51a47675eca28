package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/we-edu/enrollment-api/internal/config"
	"github.com/we-edu/enrollment-api/internal/platform/blob"
	"github.com/we-edu/enrollment-api/internal/platform/postgres"
	"github.com/we-edu/enrollment-api/internal/platform/sheets"
	"github.com/we-edu/enrollment-api/internal/service/catalog"
	"github.com/we-edu/enrollment-api/internal/service/enrollment"
	"github.com/we-edu/enrollment-api/internal/service/upload"
)

// application holds the shared dependencies of the server. Every external
// client (pool, signer, sheets) is constructed once at startup and passed
// by reference into the components that need it; there is no lazily
// initialized global state.
type application struct {
	config *config.Config
	logger *slog.Logger

	pool *postgres.Pool

	catalogService    *catalog.Service
	enrollmentService *enrollment.Service
	uploadService     *upload.Service
}

// newApplication wires the dependency graph: platform clients first, then
// the services consuming them.
func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger) (*application, error) {
	if cfg.Database.RunMigrations {
		if err := runMigrations(cfg.Database, log); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database pool: %w", err)
	}
	log.Info("Database connection pool established", "max_conns", cfg.Database.MaxConns)

	signer, err := blob.New(ctx, cfg.Storage)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to set up object storage signer: %w", err)
	}

	sheetClient, err := sheets.New(ctx, cfg.Sheets)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to set up sheets client: %w", err)
	}

	return &application{
		config:            cfg,
		logger:            log,
		pool:              pool,
		catalogService:    catalog.NewService(pool),
		enrollmentService: enrollment.NewService(sheetClient, cfg.Sheets.SheetName, cfg.Server.PublicBaseURL),
		uploadService:     upload.NewService(signer),
	}, nil
}

// cleanup releases process-owned resources during shutdown.
func (app *application) cleanup() {
	app.pool.Close()
	app.logger.Info("Application resources released")
}
