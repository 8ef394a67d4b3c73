// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

package api

import (
	"context"
	"net/http"
)

// riskPageLimit caps the risk page tables unless the client sends top_n.
const riskPageLimit = 15

// RiskTrustRisk returns trust-risk restaurants with the risk page's lower
// review minimum.
//
// @Summary Trust risk (risk page)
// @Tags Risk
// @Produce json
// @Param top_n query int false "Maximum rows (default 15)"
// @Param min_reviews query int false "Override the minimum review count"
// @Success 200 {object} models.APIResponse{data=[]models.CohortRow}
// @Router /risk/trust-risk [get]
func (h *Handler) RiskTrustRisk(w http.ResponseWriter, r *http.Request) {
	minReviews := h.thresholds().RiskMinReviews
	NewAnalyticsQueryExecutor(h).Execute(w, r, "risk_trust_risk", func(ctx context.Context, req *FilterRequest) (interface{}, error) {
		return h.db.TrustRisk(ctx, req.Filter(), req.Ranking(minReviews, riskPageLimit))
	})
}

// RiskUndervalued returns undervalued restaurants.
func (h *Handler) RiskUndervalued(w http.ResponseWriter, r *http.Request) {
	NewAnalyticsQueryExecutor(h).Execute(w, r, "risk_undervalued", func(ctx context.Context, req *FilterRequest) (interface{}, error) {
		return h.db.Undervalued(ctx, req.Filter(), req.Ranking(0, riskPageLimit))
	})
}

// RiskUnstable ranks restaurants by sentiment volatility using the trust
// minimum instead of the stricter volatility minimum.
func (h *Handler) RiskUnstable(w http.ResponseWriter, r *http.Request) {
	minReviews := h.thresholds().MinReviews
	NewAnalyticsQueryExecutor(h).Execute(w, r, "risk_unstable", func(ctx context.Context, req *FilterRequest) (interface{}, error) {
		return h.db.SentimentVolatility(ctx, req.Filter(), req.Ranking(minReviews, riskPageLimit))
	})
}

// RiskExperience ranks restaurants by experience score with the risk page minimum.
func (h *Handler) RiskExperience(w http.ResponseWriter, r *http.Request) {
	minReviews := h.thresholds().RiskMinReviews
	NewAnalyticsQueryExecutor(h).Execute(w, r, "risk_experience", func(ctx context.Context, req *FilterRequest) (interface{}, error) {
		return h.db.BestExperience(ctx, req.Filter(), req.Ranking(minReviews, riskPageLimit))
	})
}
