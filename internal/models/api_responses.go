// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

package models

import (
	"time"
)

// APIResponse is the envelope returned by every JSON endpoint.
//
// Status is "success" (see Data) or "error" (see Error).
//
//	{
//	  "status": "success",
//	  "data": [{"name": "Cafe X", "avg_rating": 4.2, ...}],
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z", "query_time_ms": 12}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response timing information. RequestID is set on error
// responses so a client can quote it when reporting the failure.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError carries a machine-readable code and a human-readable message.
//
// Codes:
//   - VALIDATION_ERROR: malformed filter or option parameters
//   - DATABASE_ERROR: query execution failure
//   - SERVICE_UNAVAILABLE: store not open or circuit breaker open
//   - NOT_FOUND: unknown route
//   - RATE_LIMIT_EXCEEDED: too many requests
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is returned by GET /api/v1/health.
type HealthStatus struct {
	Status        string `json:"status"` // "healthy" or "degraded"
	Version       string `json:"version"`
	StoreOpen     bool   `json:"store_open"`
	StoreReady    bool   `json:"store_ready"`
	BreakerState  string `json:"breaker_state"`
	Listings      int64  `json:"listings"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}
