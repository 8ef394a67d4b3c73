// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/tastelens/internal/logging"
)

// AnalyticsQueryExecutor runs catalog queries with the flow shared by every
// analytics endpoint:
//
//  1. Parse and validate the filter parameters (400 on failure)
//  2. Run the query against the store
//  3. Respond with the envelope, mapping store errors to 503 or 500
type AnalyticsQueryExecutor struct {
	handler *Handler
}

// NewAnalyticsQueryExecutor creates an executor bound to h.
func NewAnalyticsQueryExecutor(h *Handler) *AnalyticsQueryExecutor {
	return &AnalyticsQueryExecutor{handler: h}
}

// AnalyticsQueryFunc runs one catalog query for a validated filter request.
type AnalyticsQueryFunc func(ctx context.Context, req *FilterRequest) (interface{}, error)

// Execute parses the filter of r and serves queryFunc's result under name.
func (e *AnalyticsQueryExecutor) Execute(w http.ResponseWriter, r *http.Request, name string, queryFunc AnalyticsQueryFunc) {
	req, apiErr := parseFilterRequest(r)
	if apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	logging.Ctx(r.Context()).Debug().
		Str("query", name).
		Bool("filtered", !req.Filter().IsEmpty()).
		Strs("city", logging.SanitizeValues(req.Cities)).
		Strs("cost_category", logging.SanitizeValues(req.CostCategories)).
		Str("online_order", req.OnlineOrder).
		Msg("Catalog filter parsed")

	e.run(w, r, name, func(ctx context.Context) (interface{}, error) {
		return queryFunc(ctx, req)
	})
}

// run executes query and writes the envelope. Every call hits the store.
func (e *AnalyticsQueryExecutor) run(w http.ResponseWriter, r *http.Request, name string, query func(ctx context.Context) (interface{}, error)) {
	if e.handler.db == nil {
		respondError(w, r, http.StatusServiceUnavailable, CodeServiceUnavailable, "Store not available", nil)
		return
	}

	start := time.Now()
	data, err := query(r.Context())
	if err != nil {
		status, code := storeErrorStatus(err)
		respondError(w, r, status, code, queryFailureMessage(status, name), err)
		return
	}
	elapsed := time.Since(start)

	logging.Ctx(r.Context()).Debug().
		Str("query", name).
		Dur("duration", elapsed).
		Msg("Catalog query served")

	respondSuccess(w, data, elapsed)
}

func queryFailureMessage(status int, name string) string {
	switch status {
	case http.StatusServiceUnavailable:
		return "Store temporarily unavailable"
	case http.StatusBadRequest:
		return "Invalid query parameters"
	default:
		return "Failed to execute query: " + name
	}
}
