// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

/*
Package main is the entry point for the Tastelens server.

Tastelens serves a read-only analytics API over a table of restaurant
listings: ratings, vote counts, sentiment scores and cost. A dashboard
uses it to compare cohorts, rank trusted and risky restaurants and
cross-tabulate sentiment by city, cost and ordering options.

# Application Architecture

	RootSupervisor ("tastelens")
	├── StoreSupervisor ("store-layer")
	│   └── Store probe (STORE_PROBE_INTERVAL, 0 disables)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Startup order:

 1. Configuration: Koanf v2 with defaults, config.yaml and environment variables
 2. Logging: zerolog, bridged to slog for the supervisor
 3. Store: DuckDB opened lazily behind a circuit breaker
 4. Data: IMPORT_CSV or SEED_MOCK_DATA fill an empty listings table
 5. HTTP Server: chi router under /api/v1, /metrics and /swagger/

# Configuration

Commonly used environment variables:

	DUCKDB_PATH            database file (default /data/tastelens.duckdb)
	IMPORT_CSV             CSV export loaded into an empty table
	SEED_MOCK_DATA         fill an empty table with demo listings
	HTTP_PORT              listen port (default 8050)
	STORE_PROBE_INTERVAL   background ping period (default 30s)
	LOG_LEVEL, LOG_FORMAT  zerolog level and json/console output

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains
in-flight requests for up to 10 seconds, then the store is closed.

# Example Usage

	export DUCKDB_PATH=/tmp/tastelens.duckdb
	export IMPORT_CSV=./zomato_clean.csv
	./tastelens

	curl 'http://localhost:8050/api/v1/overview/kpis?city=BTM&online_order=yes'
*/
package main
