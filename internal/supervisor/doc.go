// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

/*
Package supervisor provides process supervision for Tastelens using suture v4.

# Overview

Long-running services are grouped into two layers:

	RootSupervisor ("tastelens")
	├── StoreSupervisor ("store-layer")
	│   └── StoreProbeService (if STORE_PROBE_INTERVAL > 0)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Each layer counts its own failures, so a probe that keeps crashing backs
off without restarting the HTTP server.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddStoreService(services.NewStoreProbeService(db, cfg.Store.ProbeInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, 10*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)

# Configuration

TreeConfig zero values fall back to suture's defaults:
  - FailureThreshold: 5 failures
  - FailureDecay: 30 seconds
  - FailureBackoff: 15 seconds
  - ShutdownTimeout: 10 seconds

Supervisor events (start, failure, backoff) are logged through sutureslog
into the slog adapter of the logging package.

# What Is NOT Supervised

DuckDB is embedded and opened lazily by the database package. Its
availability is guarded by the store circuit breaker, and the probe only
reports on it.
*/
package supervisor
