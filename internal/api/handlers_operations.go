// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

package api

import (
	"context"
	"net/http"
)

// OperationsOnlineOrder compares restaurants with and without online ordering.
//
// @Summary Online order vs dine-in
// @Tags Operations
// @Produce json
// @Success 200 {object} models.APIResponse{data=[]models.CrossTabRow}
// @Router /operations/online-order [get]
func (h *Handler) OperationsOnlineOrder(w http.ResponseWriter, r *http.Request) {
	NewAnalyticsQueryExecutor(h).Execute(w, r, "online_vs_dine_in", func(ctx context.Context, req *FilterRequest) (interface{}, error) {
		return h.db.OnlineVsDineIn(ctx, req.Filter())
	})
}

// OperationsTableBooking compares restaurants with and without table booking.
func (h *Handler) OperationsTableBooking(w http.ResponseWriter, r *http.Request) {
	NewAnalyticsQueryExecutor(h).Execute(w, r, "table_booking_impact", func(ctx context.Context, req *FilterRequest) (interface{}, error) {
		return h.db.TableBookingImpact(ctx, req.Filter())
	})
}

func (h *Handler) OperationsCostEfficiency(w http.ResponseWriter, r *http.Request) {
	NewAnalyticsQueryExecutor(h).Execute(w, r, "cost_efficiency", func(ctx context.Context, req *FilterRequest) (interface{}, error) {
		return h.db.CostEfficiency(ctx, req.Filter())
	})
}

// OperationsReviewVolume buckets restaurants by vote count.
func (h *Handler) OperationsReviewVolume(w http.ResponseWriter, r *http.Request) {
	NewAnalyticsQueryExecutor(h).Execute(w, r, "review_volume_impact", func(ctx context.Context, req *FilterRequest) (interface{}, error) {
		return h.db.ReviewVolumeImpact(ctx, req.Filter())
	})
}

// OperationsPricePoints reports sentiment per approximate cost for two,
// ordered by price.
func (h *Handler) OperationsPricePoints(w http.ResponseWriter, r *http.Request) {
	NewAnalyticsQueryExecutor(h).Execute(w, r, "price_vs_happiness", func(ctx context.Context, req *FilterRequest) (interface{}, error) {
		return h.db.PriceVsHappiness(ctx, req.Filter())
	})
}
