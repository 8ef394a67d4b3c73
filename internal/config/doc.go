// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

/*
Package config provides centralized configuration management for Tastelens.

Configuration is layered with Koanf v2, highest priority last:

 1. Defaults from defaultConfig()
 2. An optional YAML file (config.yaml, /etc/tastelens/config.yaml or CONFIG_PATH)
 3. Environment variables

# Sections

  - database: DuckDB path, memory limit, threads, connection count, bootstrap data
  - server: HTTP bind address, port, timeouts, environment
  - security: CORS origins and rate limiting
  - logging: zerolog level, format and caller info
  - analytics: every threshold used by the query catalog (see package cohort)
  - store: circuit breaker and health probe settings

# Environment Variables

Database:
  - DUCKDB_PATH: database file path (default: /data/tastelens.duckdb)
  - DUCKDB_MAX_MEMORY: DuckDB memory limit (default: 1GB)
  - DUCKDB_THREADS: worker threads, 0 = NumCPU
  - DUCKDB_MAX_OPEN_CONNS: pooled connections (default: 1)
  - DUCKDB_READ_ONLY: open the file read-only
  - SEED_MOCK_DATA: fill an empty listings table with demo data
  - IMPORT_CSV: load a CSV export into an empty listings table

Server:
  - HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT, ENVIRONMENT

Security:
  - CORS_ORIGINS: comma-separated origins
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Analytics (subset, all keys are available in YAML under analytics.*):
  - TRUST_MIN_REVIEWS, RISK_MIN_REVIEWS, VOLATILITY_MIN_REVIEWS
  - HIGH_RATING_THRESHOLD, UNSTABLE_VOLATILITY_THRESHOLD
  - DEFAULT_TOP_N

Store:
  - STORE_PROBE_INTERVAL, STORE_BREAKER_FAILURES, STORE_BREAKER_TIMEOUT

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	db, err := database.New(&cfg.Database)
*/
package config
