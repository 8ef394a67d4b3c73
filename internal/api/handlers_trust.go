// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

package api

import (
	"context"
	"net/http"
)

// Trust page tables are uncapped unless the client sends top_n.

// TrustTrustRisk returns every trust-risk restaurant.
//
// @Summary Trust risk (trust page)
// @Tags Trust
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.CohortRow}
// @Router /trust/trust-risk [get]
func (h *Handler) TrustTrustRisk(w http.ResponseWriter, r *http.Request) {
	NewAnalyticsQueryExecutor(h).Execute(w, r, "trust_trust_risk", func(ctx context.Context, req *FilterRequest) (interface{}, error) {
		return h.db.TrustRisk(ctx, req.Filter(), req.Ranking(0, 0))
	})
}

// TrustUnderrated returns underrated gems.
func (h *Handler) TrustUnderrated(w http.ResponseWriter, r *http.Request) {
	NewAnalyticsQueryExecutor(h).Execute(w, r, "trust_underrated", func(ctx context.Context, req *FilterRequest) (interface{}, error) {
		return h.db.UnderratedGems(ctx, req.Filter(), req.Ranking(0, 0))
	})
}

// TrustVolatility ranks restaurants by sentiment volatility with the
// volatility review minimum.
func (h *Handler) TrustVolatility(w http.ResponseWriter, r *http.Request) {
	NewAnalyticsQueryExecutor(h).Execute(w, r, "trust_volatility", func(ctx context.Context, req *FilterRequest) (interface{}, error) {
		return h.db.SentimentVolatility(ctx, req.Filter(), req.Ranking(0, 0))
	})
}

// TrustExperience ranks restaurants by experience score.
func (h *Handler) TrustExperience(w http.ResponseWriter, r *http.Request) {
	NewAnalyticsQueryExecutor(h).Execute(w, r, "trust_experience", func(ctx context.Context, req *FilterRequest) (interface{}, error) {
		return h.db.BestExperience(ctx, req.Filter(), req.Ranking(0, 0))
	})
}

// TrustGap ranks restaurants by rating minus sentiment.
func (h *Handler) TrustGap(w http.ResponseWriter, r *http.Request) {
	NewAnalyticsQueryExecutor(h).Execute(w, r, "trust_gap", func(ctx context.Context, req *FilterRequest) (interface{}, error) {
		return h.db.TrustGapRanking(ctx, req.Filter(), req.Ranking(0, 0))
	})
}

// TrustRiskFlags labels every qualifying restaurant with exactly one risk flag.
//
// @Summary Risk flags
// @Description HIGH RISK, OPPORTUNITY, UNSTABLE or NORMAL, most reviewed first
// @Tags Trust
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.CohortRow}
// @Router /trust/risk-flags [get]
func (h *Handler) TrustRiskFlags(w http.ResponseWriter, r *http.Request) {
	NewAnalyticsQueryExecutor(h).Execute(w, r, "trust_risk_flags", func(ctx context.Context, req *FilterRequest) (interface{}, error) {
		return h.db.RiskFlags(ctx, req.Filter(), req.Ranking(0, 0))
	})
}
