// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

package api

import (
	"context"
	"net/http"
)

// MarketCities reports sentiment per city with enough restaurants.
//
// @Summary City performance
// @Tags Market
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.CrossTabRow}
// @Router /market/cities [get]
func (h *Handler) MarketCities(w http.ResponseWriter, r *http.Request) {
	NewAnalyticsQueryExecutor(h).Execute(w, r, "city_performance", func(ctx context.Context, req *FilterRequest) (interface{}, error) {
		return h.db.CityPerformance(ctx, req.Filter())
	})
}

// MarketCuisines reports sentiment per cuisine with enough records.
func (h *Handler) MarketCuisines(w http.ResponseWriter, r *http.Request) {
	NewAnalyticsQueryExecutor(h).Execute(w, r, "cuisine_performance", func(ctx context.Context, req *FilterRequest) (interface{}, error) {
		return h.db.CuisinePerformance(ctx, req.Filter())
	})
}

func (h *Handler) MarketCuisineDemand(w http.ResponseWriter, r *http.Request) {
	NewAnalyticsQueryExecutor(h).Execute(w, r, "cuisine_demand", func(ctx context.Context, req *FilterRequest) (interface{}, error) {
		return h.db.CuisineDemand(ctx, req.Filter())
	})
}

// MarketNiches returns (city, cuisine) pairs with few but positive reviews.
func (h *Handler) MarketNiches(w http.ResponseWriter, r *http.Request) {
	NewAnalyticsQueryExecutor(h).Execute(w, r, "city_cuisine_opportunities", func(ctx context.Context, req *FilterRequest) (interface{}, error) {
		return h.db.CityCuisineOpportunities(ctx, req.Filter())
	})
}

// MarketOvercrowded returns high volume cuisines with negative average sentiment.
func (h *Handler) MarketOvercrowded(w http.ResponseWriter, r *http.Request) {
	NewAnalyticsQueryExecutor(h).Execute(w, r, "overcrowded_cuisines", func(ctx context.Context, req *FilterRequest) (interface{}, error) {
		return h.db.OvercrowdedCuisines(ctx, req.Filter())
	})
}

// MarketExpansion returns mid-sized cities with positive sentiment.
func (h *Handler) MarketExpansion(w http.ResponseWriter, r *http.Request) {
	NewAnalyticsQueryExecutor(h).Execute(w, r, "expansion_opportunities", func(ctx context.Context, req *FilterRequest) (interface{}, error) {
		return h.db.ExpansionOpportunities(ctx, req.Filter())
	})
}
