// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

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

	"github.com/tomtom215/tastelens/internal/api"
	"github.com/tomtom215/tastelens/internal/config"
	"github.com/tomtom215/tastelens/internal/database"
	"github.com/tomtom215/tastelens/internal/logging"
	"github.com/tomtom215/tastelens/internal/metrics"
	"github.com/tomtom215/tastelens/internal/supervisor"
	"github.com/tomtom215/tastelens/internal/supervisor/services"
)

// startupTimeout bounds the initial import or seeding of the listings table.
const startupTimeout = 2 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	metrics.SetAppInfo(api.Version, runtime.Version())

	logging.Info().
		Str("version", api.Version).
		Str("db_path", cfg.Database.Path).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Tastelens")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Error().Err(err).Msg("Tastelens stopped with error")
		os.Exit(1)
	}
	logging.Info().Msg("Application stopped gracefully")
}

// run wires the store, the API and the supervisor tree, then blocks until ctx is canceled.
func run(ctx context.Context, cfg *config.Config) error {
	db, err := database.New(&cfg.Database,
		database.WithThresholds(cfg.Analytics),
		database.WithBreaker(cfg.Store),
	)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	loadCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	err = populate(loadCtx, db, &cfg.Database)
	cancel()
	if err != nil {
		return err
	}

	handler := api.NewHandler(db, cfg)
	router := api.NewRouter(handler, cfg)
	server := newHTTPServer(cfg, router.SetupChi())

	tree, err := newTree(cfg, db, server)
	if err != nil {
		return err
	}

	logging.Info().Msg("Starting supervisor tree")
	err = tree.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}
	return nil
}

// populate fills an empty listings table from the configured CSV export or,
// failing that, from the demo data set. Read-only stores are left untouched.
func populate(ctx context.Context, db *database.DB, cfg *config.DatabaseConfig) error {
	if cfg.ReadOnly {
		return nil
	}
	if cfg.ImportCSV != "" {
		if _, err := db.ImportCSV(ctx, cfg.ImportCSV); err != nil {
			return fmt.Errorf("import listings: %w", err)
		}
		return nil
	}
	if cfg.SeedMockData {
		logging.Info().Msg("Mock data seeding enabled (SEED_MOCK_DATA=true)")
		if err := db.SeedMockData(ctx); err != nil {
			return fmt.Errorf("seed listings: %w", err)
		}
	}
	return nil
}

func newHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler,
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
}

// newTree builds the supervisor tree. The store probe is skipped when
// STORE_PROBE_INTERVAL is zero.
func newTree(cfg *config.Config, db services.Pinger, server *http.Server) (*supervisor.SupervisorTree, error) {
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return nil, fmt.Errorf("create supervisor tree: %w", err)
	}

	if cfg.Store.ProbeInterval > 0 {
		tree.AddStoreService(services.NewStoreProbeService(db, cfg.Store.ProbeInterval))
		logging.Info().Dur("interval", cfg.Store.ProbeInterval).Msg("Store probe added to supervisor tree")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, services.DefaultShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")
	return tree, nil
}
