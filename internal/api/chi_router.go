// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

package api

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tomtom215/tastelens/internal/config"
	"github.com/tomtom215/tastelens/internal/middleware"
)

//go:embed openapi.yaml
var openAPISpec []byte

// compressionLevel is the gzip level used by chi's Compress middleware.
const compressionLevel = 5

// Router wires handlers and middleware into a chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router for handler. cfg may be nil in tests, which
// selects the default middleware configuration.
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	mwCfg := DefaultChiMiddlewareConfig()
	if cfg != nil {
		mwCfg = ChiMiddlewareConfigFromSecurity(cfg.Security)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(mwCfg),
	}
}

// SetupChi builds the HTTP handler with every route.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()
	h := router.handler

	// Global middleware, outermost first
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(chimiddleware.Compress(compressionLevel, "application/json", "application/yaml"))
	r.Use(middleware.PrometheusMetrics)
	r.Use(h.PerformanceMonitor().Middleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, CodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "Method not allowed", nil)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		// Every response reflects the store at request time.
		r.Use(chimiddleware.NoCache)

		r.Get("/health", h.Health)
		r.Get("/health/live", h.HealthLive)
		r.Get("/health/ready", h.HealthReady)
		r.Get("/performance", h.Performance)

		r.Get("/filters", h.Filters)

		r.Route("/overview", func(r chi.Router) {
			r.Get("/kpis", h.OverviewKPIs)
			r.Get("/sentiment", h.OverviewSentiment)
			r.Get("/top-trusted", h.OverviewTopTrusted)
			r.Get("/trust-risk", h.OverviewTrustRisk)
			r.Get("/hidden-gems", h.OverviewHiddenGems)
			r.Get("/best-experience", h.OverviewBestExperience)
			r.Get("/cost", h.OverviewCost)
			r.Get("/cities", h.OverviewCities)
		})

		r.Route("/risk", func(r chi.Router) {
			r.Get("/trust-risk", h.RiskTrustRisk)
			r.Get("/undervalued", h.RiskUndervalued)
			r.Get("/unstable", h.RiskUnstable)
			r.Get("/experience", h.RiskExperience)
		})

		r.Route("/operations", func(r chi.Router) {
			r.Get("/online-order", h.OperationsOnlineOrder)
			r.Get("/table-booking", h.OperationsTableBooking)
			r.Get("/cost-efficiency", h.OperationsCostEfficiency)
			r.Get("/review-volume", h.OperationsReviewVolume)
			r.Get("/price-points", h.OperationsPricePoints)
		})

		r.Route("/market", func(r chi.Router) {
			r.Get("/cities", h.MarketCities)
			r.Get("/cuisines", h.MarketCuisines)
			r.Get("/cuisine-demand", h.MarketCuisineDemand)
			r.Get("/niches", h.MarketNiches)
			r.Get("/overcrowded", h.MarketOvercrowded)
			r.Get("/expansion", h.MarketExpansion)
		})

		r.Route("/trust", func(r chi.Router) {
			r.Get("/trust-risk", h.TrustTrustRisk)
			r.Get("/underrated", h.TrustUnderrated)
			r.Get("/volatility", h.TrustVolatility)
			r.Get("/experience", h.TrustExperience)
			r.Get("/trust-gap", h.TrustGap)
			r.Get("/risk-flags", h.TrustRiskFlags)
		})

		r.Get("/crosstab/{dimension}", h.CrossTab)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/openapi.yaml", serveOpenAPI)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/openapi.yaml"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	return r
}

func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openAPISpec)
}
