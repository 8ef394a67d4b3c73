// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/tastelens/internal/middleware"
	"github.com/tomtom215/tastelens/internal/models"
)

// Health reports store connectivity, breaker state and the listing count.
// It always answers 200; Status is "degraded" when the store cannot be reached.
//
// @Summary Get service health
// @Tags Health
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus}
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	health := models.HealthStatus{
		Status:        "degraded",
		Version:       Version,
		BreakerState:  "unknown",
		UptimeSeconds: int64(h.uptime().Seconds()),
	}

	if h.db != nil {
		health.StoreReady = h.db.Ping(r.Context()) == nil
		health.StoreOpen = h.db.IsOpen()
		health.BreakerState = h.db.BreakerState()
		if health.StoreReady {
			if n, err := h.db.ListingCount(r.Context()); err == nil {
				health.Listings = n
			}
			health.Status = "healthy"
		}
	}

	respondSuccess(w, health, 0)
}

// HealthLive answers 200 while the process is running.
//
// @Summary Liveness probe
// @Tags Health
// @Success 200 {object} models.APIResponse
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, map[string]interface{}{
		"alive":  true,
		"uptime": h.uptime().Seconds(),
	}, 0)
}

// HealthReady answers 200 when the store answers a ping, 503 otherwise.
//
// @Summary Readiness probe
// @Tags Health
// @Success 200 {object} models.APIResponse
// @Failure 503 {object} models.APIResponse
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		respondError(w, r, http.StatusServiceUnavailable, CodeServiceUnavailable, "Store not configured", nil)
		return
	}
	if err := h.db.Ping(r.Context()); err != nil {
		respondError(w, r, http.StatusServiceUnavailable, CodeServiceUnavailable, "Store not ready", err)
		return
	}
	respondSuccess(w, map[string]interface{}{
		"ready":         true,
		"breaker_state": h.db.BreakerState(),
	}, 0)
}

// recentRequestCount bounds the request log in the performance report.
const recentRequestCount = 20

// PerformanceReport is returned by GET /api/v1/performance. Recent lists the
// last requests the monitor saw, oldest first.
type PerformanceReport struct {
	Endpoints   []middleware.EndpointStats  `json:"endpoints"`
	Slowest     *middleware.EndpointStats   `json:"slowest,omitempty"`
	Recent      []middleware.RequestMetrics `json:"recent"`
	GeneratedAt time.Time                   `json:"generated_at"`
}

// Performance returns per-route latency percentiles from the in-process monitor.
//
// @Summary Request performance
// @Tags Health
// @Produce json
// @Success 200 {object} models.APIResponse{data=PerformanceReport}
// @Router /performance [get]
func (h *Handler) Performance(w http.ResponseWriter, r *http.Request) {
	report := PerformanceReport{
		Endpoints:   h.perfMon.GetStats(),
		Recent:      h.perfMon.GetRecentMetrics(recentRequestCount),
		GeneratedAt: time.Now().UTC(),
	}
	for i := range report.Endpoints {
		if report.Slowest == nil || report.Endpoints[i].P95Duration > report.Slowest.P95Duration {
			report.Slowest = &report.Endpoints[i]
		}
	}
	respondSuccess(w, report, 0)
}
