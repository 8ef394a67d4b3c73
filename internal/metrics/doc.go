// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

/*
Package metrics exposes Prometheus instrumentation for Tastelens.

Metrics are registered on the default registry with promauto and served by
promhttp at /metrics:

  - duckdb_query_duration_seconds, duckdb_query_errors_total: catalog queries
  - duckdb_store_open, tastelens_store_up: store handle and probe state
  - tastelens_cohort_rows: result sizes of ranking presets
  - api_requests_total, api_request_duration_seconds, api_active_requests
  - circuit_breaker_*: store breaker state and transitions

Example:

	start := time.Now()
	rows, err := db.TopTrusted(ctx, filter, opts)
	metrics.RecordDBQuery("top_trusted", "listings", time.Since(start), err)
*/
package metrics
