// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

/*
Package middleware provides the HTTP middleware owned by Tastelens.

Generic concerns (real IP, panic recovery, gzip, CORS, rate limiting) come from
chi's middleware packages and are wired in internal/api. This package adds the
pieces that need the application's logging and metrics:

  - RequestID: assigns or propagates X-Request-ID and seeds the logging context
  - PrometheusMetrics: request count, latency and in-flight gauge labelled by
    chi route pattern
  - PerformanceMonitor: a sliding window of request latencies with per-route
    percentiles, plus slow-request warnings

Usage:

	perf := middleware.NewPerformanceMonitor(1000, time.Second)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(perf.Middleware)

The route pattern is only known once chi has routed the request, so metric
labels are read after the wrapped handler returns.
*/
package middleware
