// Package main implements the entry point for the enrollment API server,
// which accepts enrollment-form submissions, issues signed upload URLs for
// identity documents, and serves the program catalog.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/we-edu/enrollment-api/internal/config"
	"github.com/we-edu/enrollment-api/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// run loads configuration, wires the application, and serves until a
// shutdown signal arrives. Missing required configuration is fatal here,
// before the server accepts any traffic.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"sheet", cfg.Sheets.SheetName,
		"bucket", cfg.Storage.Bucket)

	ctx := context.Background()

	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}
