// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

package api

import (
	"context"
	"time"

	"github.com/tomtom215/tastelens/internal/cohort"
	"github.com/tomtom215/tastelens/internal/config"
	"github.com/tomtom215/tastelens/internal/middleware"
	"github.com/tomtom215/tastelens/internal/models"
)

// Version is reported by the health endpoint. It is set at build time.
var Version = "dev"

// Store is the subset of *database.DB the handlers use beyond the catalog
// queries, so health checks can be exercised without a live store.
type Store interface {
	Ping(ctx context.Context) error
	ListingCount(ctx context.Context) (int64, error)
	IsOpen() bool
	BreakerState() string
	FilterOptions(ctx context.Context) (*models.FilterOptions, error)
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files by dashboard page:
//   - handlers_health.go: health, readiness and performance
//   - handlers_overview.go: filters and the overview page
//   - handlers_risk.go, handlers_trust.go: per-restaurant rankings
//   - handlers_operations.go, handlers_market.go: cross-tabs and market scans
//   - handlers_crosstab.go: the generic cross-tab endpoint
type Handler struct {
	db        Catalog
	config    *config.Config
	perfMon   *middleware.PerformanceMonitor
	startTime time.Time
}

// NewHandler creates the API handler. db may be nil, in which case catalog
// routes answer 503.
//
//	handler := api.NewHandler(db, cfg)
//	router := api.NewRouter(handler, cfg)
//	srv := &http.Server{Handler: router.SetupChi()}
func NewHandler(db Catalog, cfg *config.Config) *Handler {
	return &Handler{
		db:        db,
		config:    cfg,
		perfMon:   middleware.NewPerformanceMonitor(1000, time.Second),
		startTime: time.Now(),
	}
}

// PerformanceMonitor returns the monitor the router installs as middleware.
func (h *Handler) PerformanceMonitor() *middleware.PerformanceMonitor {
	return h.perfMon
}

// thresholds returns the catalog thresholds, or the defaults without a store.
func (h *Handler) thresholds() cohort.Thresholds {
	if h.db == nil {
		return cohort.Default()
	}
	return h.db.Thresholds()
}
