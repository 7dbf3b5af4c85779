// Soundtrail - Personal Listening History Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/soundtrail

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/soundtrail/internal/api"
	"github.com/tomtom215/soundtrail/internal/cache"
	"github.com/tomtom215/soundtrail/internal/config"
	"github.com/tomtom215/soundtrail/internal/database"
	playimport "github.com/tomtom215/soundtrail/internal/import"
	"github.com/tomtom215/soundtrail/internal/logging"
	"github.com/tomtom215/soundtrail/internal/selection"
	"github.com/tomtom215/soundtrail/internal/supervisor"
	"github.com/tomtom215/soundtrail/internal/supervisor/services"
	ws "github.com/tomtom215/soundtrail/internal/websocket"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	api.Version = version
	logging.Info().Str("version", version).Msg("Starting Soundtrail with supervisor tree")

	loc, err := cfg.Dataset.Location()
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid dataset timezone")
	}

	logging.Info().
		Str("dataset_path", cfg.Dataset.Path).
		Bool("dataset_remote", cfg.Dataset.URL != "").
		Str("timezone", loc.String()).
		Str("store_backend", cfg.Store.Backend).
		Msg("Configuration loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// === DASHBOARD ===

	opts := selection.OptionsFromConfig(cfg.Dashboard, loc)
	opts.Backend = cfg.Store.Backend
	if cfg.Cache.Enabled {
		renderCache := cache.NewBounded(cfg.Cache.TTL, cfg.Cache.MaxEntries)
		defer renderCache.Close()
		opts.Cache = renderCache
		logging.Info().Dur("ttl", cfg.Cache.TTL).Int("max_entries", cfg.Cache.MaxEntries).Msg("Render cache enabled")
	}

	controller := selection.NewController(selection.NewDashboard(opts))
	wsHub := ws.NewHub(controller)
	controller.SetPublisher(wsHub)

	// === STORAGE ===

	var snapshotter playimport.Snapshotter
	if cfg.Dataset.SnapshotPath != "" {
		snap, err := playimport.OpenBadgerSnapshot(cfg.Dataset.SnapshotPath)
		if err != nil {
			// The snapshot only speeds up restarts; parse from source without it
			logging.Warn().Err(err).Str("path", cfg.Dataset.SnapshotPath).Msg("Dataset snapshot disabled")
		} else {
			defer func() {
				if err := snap.Close(); err != nil {
					logging.Error().Err(err).Msg("Error closing dataset snapshot")
				}
			}()
			snapshotter = snap
			logging.Info().Str("path", cfg.Dataset.SnapshotPath).Msg("Dataset snapshot enabled")
		}
	}

	var mirror services.RecordMirror
	if cfg.Store.Backend == config.BackendDuckDB {
		db, err := database.New(cfg.Store, loc)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to initialize database")
		}
		defer func() {
			if err := db.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing database")
			}
		}()
		mirror = db
		logging.Info().Str("path", cfg.Store.Path).Msg("DuckDB mirror initialized")
	}

	loader := playimport.NewLoader(cfg.Dataset, loc, snapshotter)

	// === HTTP ===

	handler := api.NewHandler(controller, wsHub, cfg)
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(cfg.Security)))
	httpHandler, err := router.SetupChi()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build router")
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           httpHandler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	// === SUPERVISOR TREE ===

	treeConfig := supervisor.DefaultTreeConfig()
	treeConfig.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), treeConfig)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// Messaging layer services
	tree.AddMessagingService(controller)
	tree.AddMessagingService(wsHub)
	logging.Info().Msg("Selection controller and WebSocket hub added to supervisor tree")

	// Data layer services
	tree.AddDataService(services.NewDatasetLoaderService(loader, controller, mirror))
	logging.Info().Str("source", loader.Source()).Msg("Dataset loader added to supervisor tree")

	// API layer services
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START ===

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	var treeErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		treeErr = <-errCh
	case treeErr = <-errCh:
	}
	if treeErr != nil && !errors.Is(treeErr, context.Canceled) {
		logging.Error().Err(treeErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
