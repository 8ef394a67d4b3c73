// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/tastelens/internal/database"
)

// CrossTab groups the filtered listings by one dimension.
//
// @Summary Generic cross-tab
// @Description Mean sentiment, mean rating, restaurant and record counts per group
// @Tags CrossTab
// @Produce json
// @Param dimension path string true "city, cost_category, online_order, book_table, cuisine, review_volume or price_point"
// @Param min_restaurants query int false "Drop groups with fewer restaurants"
// @Param min_records query int false "Drop groups with fewer records"
// @Success 200 {object} models.APIResponse{data=[]models.CrossTabRow}
// @Failure 400 {object} models.APIResponse
// @Router /crosstab/{dimension} [get]
func (h *Handler) CrossTab(w http.ResponseWriter, r *http.Request) {
	filter, apiErr := parseFilterRequest(r)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	ct, apiErr := parseCrossTabRequest(r, chi.URLParam(r, "dimension"))
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	dim, err := database.ParseDimension(ct.Dimension)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeValidation, "Unknown cross-tab dimension", err)
		return
	}

	NewAnalyticsQueryExecutor(h).run(w, r, "crosstab", func(ctx context.Context) (interface{}, error) {
		return h.db.CrossTab(ctx, filter.Filter(), dim, ct.Options())
	})
}
