// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

/*
Package api exposes the Tastelens query catalog over HTTP.

Every dashboard table is one GET endpoint under /api/v1 returning the
models.APIResponse envelope. Routes are grouped by dashboard page (overview,
risk, operations, market, trust) plus a generic cross-tab and health checks.
The complete list lives in chi_router.go and in the embedded OpenAPI document
served at /openapi.yaml (browsable at /swagger/).

Filter parameters are shared by all catalog endpoints:

	city=BTM&city=Koramangala    repeated or comma-separated
	cost_category=Budget,Premium
	online_order=any|yes|no
	top_n=10                      ranking endpoints only
	min_reviews=30                ranking endpoints only

Requests are validated with go-playground/validator; malformed parameters
produce 400 VALIDATION_ERROR. Every request runs its query against the store;
responses carry no-cache headers. Store errors map to 503
SERVICE_UNAVAILABLE when the store is closed or its circuit breaker is open,
and to 500 DATABASE_ERROR otherwise.

Middleware, outermost first: request ID, real IP, panic recovery, CORS, gzip,
Prometheus metrics, latency monitor; then per-IP rate limiting and security
headers and no-cache headers on /api/v1.
*/
package api
