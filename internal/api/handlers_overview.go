// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

package api

import (
	"context"
	"net/http"
	"time"
)

// Filters returns the values the dashboard selectors offer.
//
// @Summary Filter options
// @Description Distinct cities and cost categories, online order choices and top-N choices
// @Tags Overview
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.FilterOptions}
// @Failure 503 {object} models.APIResponse
// @Router /filters [get]
func (h *Handler) Filters(w http.ResponseWriter, r *http.Request) {
	NewAnalyticsQueryExecutor(h).run(w, r, "filter_options", func(ctx context.Context) (interface{}, error) {
		return h.db.FilterOptions(ctx)
	})
}

// OverviewKPIs returns the headline numbers for the filtered listings.
//
// @Summary Headline KPIs
// @Tags Overview
// @Produce json
// @Param city query []string false "City filter (repeat or comma-separate)"
// @Param cost_category query []string false "Cost category filter"
// @Param online_order query string false "any, yes or no"
// @Success 200 {object} models.APIResponse{data=models.HeadlineKPIs}
// @Router /overview/kpis [get]
func (h *Handler) OverviewKPIs(w http.ResponseWriter, r *http.Request) {
	NewAnalyticsQueryExecutor(h).Execute(w, r, "headline_kpis", func(ctx context.Context, req *FilterRequest) (interface{}, error) {
		return h.db.HeadlineKPIs(ctx, req.Filter())
	})
}

// OverviewSentiment returns record counts per sentiment label.
func (h *Handler) OverviewSentiment(w http.ResponseWriter, r *http.Request) {
	NewAnalyticsQueryExecutor(h).Execute(w, r, "sentiment_distribution", func(ctx context.Context, req *FilterRequest) (interface{}, error) {
		return h.db.SentimentDistribution(ctx, req.Filter())
	})
}

// OverviewTopTrusted returns the top_n most trusted restaurants.
func (h *Handler) OverviewTopTrusted(w http.ResponseWriter, r *http.Request) {
	topN := h.thresholds().DefaultTopN
	NewAnalyticsQueryExecutor(h).Execute(w, r, "overview_top_trusted", func(ctx context.Context, req *FilterRequest) (interface{}, error) {
		return h.db.TopTrusted(ctx, req.Filter(), req.Ranking(0, topN))
	})
}

// OverviewTrustRisk returns the top_n highly rated restaurants with negative reviews.
func (h *Handler) OverviewTrustRisk(w http.ResponseWriter, r *http.Request) {
	topN := h.thresholds().DefaultTopN
	NewAnalyticsQueryExecutor(h).Execute(w, r, "overview_trust_risk", func(ctx context.Context, req *FilterRequest) (interface{}, error) {
		return h.db.TrustRisk(ctx, req.Filter(), req.Ranking(0, topN))
	})
}

// OverviewHiddenGems returns the top_n hidden gems.
func (h *Handler) OverviewHiddenGems(w http.ResponseWriter, r *http.Request) {
	topN := h.thresholds().DefaultTopN
	NewAnalyticsQueryExecutor(h).Execute(w, r, "overview_hidden_gems", func(ctx context.Context, req *FilterRequest) (interface{}, error) {
		return h.db.HiddenGems(ctx, req.Filter(), req.Ranking(0, topN))
	})
}

// OverviewBestExperience returns the top_n restaurants by experience score.
func (h *Handler) OverviewBestExperience(w http.ResponseWriter, r *http.Request) {
	topN := h.thresholds().DefaultTopN
	NewAnalyticsQueryExecutor(h).Execute(w, r, "overview_best_experience", func(ctx context.Context, req *FilterRequest) (interface{}, error) {
		return h.db.BestExperience(ctx, req.Filter(), req.Ranking(0, topN))
	})
}

// OverviewCost compares sentiment across cost categories.
func (h *Handler) OverviewCost(w http.ResponseWriter, r *http.Request) {
	NewAnalyticsQueryExecutor(h).Execute(w, r, "cost_vs_sentiment", func(ctx context.Context, req *FilterRequest) (interface{}, error) {
		return h.db.CostVsSentiment(ctx, req.Filter())
	})
}

// OverviewCities compares sentiment across cities.
func (h *Handler) OverviewCities(w http.ResponseWriter, r *http.Request) {
	NewAnalyticsQueryExecutor(h).Execute(w, r, "city_sentiment", func(ctx context.Context, req *FilterRequest) (interface{}, error) {
		return h.db.CitySentiment(ctx, req.Filter())
	})
}

// uptime is shared by the health handlers.
func (h *Handler) uptime() time.Duration {
	return time.Since(h.startTime)
}
