// Agora - Legislative Tracking and Civic Engagement Platform
// Copyright 2026 Agora Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/agora-civic/agora

// Package main is the entry point for the Agora server application.
//
// Agora is a self-hosted legislative tracking platform that lets residents
// follow bills, record engagements, and receive personalized recommendations
// ranked by interest match, recency, popularity, and peer activity.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config files (Koanf v2)
//  2. Logging: zerolog with JSON/console output modes
//  3. Database: Initialize DuckDB with the bills/users/engagements schema
//  4. Event Pipeline: In-process Watermill bus with dedup and activity tracking
//  5. Ranking Engine: Scoring components, data provider, response cache, circuit breakers
//  6. Supervisor Tree: Suture v4 process supervision
//  7. HTTP Server: Chi router with REST API and Swagger documentation
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (see .env.example)
//   - Config file (config.yaml)
//   - Built-in defaults
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Drains the event router, then closes the bus and database
//
// # Example Usage
//
// Local development with seeded demo data:
//
//	export SEED_DEMO_DATA=true
//	export LOG_FORMAT=console
//	./agora
//
// Production:
//
//	export DUCKDB_PATH=/data/agora.duckdb
//	export CORS_ORIGINS=https://agora.example.org
//	export LOG_LEVEL=info
//	./agora
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/agora-civic/agora/docs" // Import generated swagger docs
	"github.com/agora-civic/agora/internal/api"
	"github.com/agora-civic/agora/internal/config"
	"github.com/agora-civic/agora/internal/database"
	"github.com/agora-civic/agora/internal/logging"
	"github.com/agora-civic/agora/internal/metrics"
	"github.com/agora-civic/agora/internal/supervisor"
	"github.com/agora-civic/agora/internal/supervisor/services"
)

// version is stamped at build time:
//
//	go build -ldflags "-X main.version=v1.2.0" ./cmd/server
var version = "dev"

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Str("version", version).Msg("Starting Agora with supervisor tree")
	logging.Info().
		Str("db_path", cfg.Database.Path).
		Int("port", cfg.Server.Port).
		Str("environment", cfg.Server.Environment).
		Bool("events_enabled", cfg.Events.Enabled).
		Msg("Configuration loaded")

	// Initialize database
	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	// Seed demo data if enabled (for local development and CI)
	if cfg.Database.SeedDemoData {
		logging.Info().Msg("Demo data seeding enabled (SEED_DEMO_DATA=true)")
		if err := db.SeedDemoData(context.Background()); err != nil {
			// Close database before fatal exit to ensure defer runs
			if closeErr := db.Close(); closeErr != nil {
				logging.Error().Err(closeErr).Msg("Error closing database")
			}
			logging.Fatal().Err(err).Msg("Failed to seed demo data")
		}
	}

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
		logging.Warn().Msg("This should only be used for local development and CI!")
	}

	// Warn about wildcard CORS outside development
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("============================================================")
		logging.Warn().Msg("  SECURITY WARNING: CORS is configured with wildcard origin (CORS_ORIGINS=*)")
		logging.Warn().Msg("  ")
		logging.Warn().Msg("  This allows ANY website to make cross-origin requests to your API.")
		logging.Warn().Msg("  ")
		logging.Warn().Msg("  RECOMMENDED: Set specific origins in production:")
		logging.Warn().Msg("    CORS_ORIGINS=https://yourdomain.org,https://app.yourdomain.org")
		logging.Warn().Msg("============================================================")
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create structured logger for supervisor using our slog adapter
	// This bridges zerolog to slog for sutureslog compatibility
	slogLogger := logging.NewSlogLogger()

	// Create supervisor tree
	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// Initialize the engagement event pipeline (bus, dedup, activity tracking)
	// Returns nil when EVENTS_ENABLED=false; Close is nil-safe
	eventComponents := initEvents(cfg)
	defer eventComponents.Close()

	// Initialize the ranking engine with its scoring components
	engine, err := initRecommend(cfg, db, eventComponents)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize ranking engine")
	}

	// Expose build info and uptime via Prometheus
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
	startTime := time.Now()
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				metrics.AppUptime.Set(time.Since(startTime).Seconds())
			}
		}
	}()

	handler := api.NewHandler(db, engine, cfg, version)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// === ADD SERVICES TO SUPERVISOR TREE ===

	// Events layer services
	if eventComponents != nil {
		tree.AddEventService(services.NewEventRouterService(eventComponents.Router))
		logging.Info().Msg("Event router added to supervisor tree")
	}

	// Ranking layer services
	if cfg.Trending.Enabled && cfg.Recommend.Enabled {
		// Burst detection needs the activity tracker fed by the event
		// pipeline; without it the refresher runs on schedule alone
		var activity services.ActivitySource
		if eventComponents != nil {
			activity = eventComponents.Consumer
		}
		refresher := services.NewTrendingRefreshService(engine, activity, services.TrendingRefreshConfig{
			RefreshInterval: cfg.Trending.RefreshInterval,
			WindowDays:      cfg.Trending.WarmWindowDays,
			Limit:           cfg.Trending.WarmLimit,
			BurstThreshold:  cfg.Trending.BurstThreshold,
			BurstMinUsers:   cfg.Trending.BurstMinUsers,
			MinRefreshGap:   cfg.Trending.MinRefreshGap,
		}, logging.Logger())
		tree.AddRankingService(refresher)
		logging.Info().
			Dur("interval", cfg.Trending.RefreshInterval).
			Int64("burst_threshold", cfg.Trending.BurstThreshold).
			Msg("Trending refresher added to supervisor tree")
	} else {
		logging.Info().Msg("Trending refresher disabled")
	}

	// API layer services
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START SUPERVISOR TREE ===

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Publishing before the router's handlers start can drop events on the
	// in-process bus, so confirm it came up
	if eventComponents != nil {
		select {
		case <-eventComponents.Router.Running():
			logging.Info().Msg("Event router running")
		case <-time.After(5 * time.Second):
			logging.Warn().Msg("Event router not running after 5s, continuing anyway")
		case <-ctx.Done():
		}
	}

	// Wait for supervisor to finish (either from signal or error)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
