// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

package api

import (
	"net/http"
	"strings"

	"github.com/tomtom215/tastelens/internal/database"
	"github.com/tomtom215/tastelens/internal/models"
)

// FilterRequest is the validated form of the dashboard query parameters
// shared by every catalog endpoint.
type FilterRequest struct {
	Cities         []string `query:"city" validate:"max=50,dive,min=1,max=100,filtervalue"`
	CostCategories []string `query:"cost_category" validate:"max=10,dive,min=1,max=50,filtervalue"`
	OnlineOrder    string   `query:"online_order" validate:"omitempty,oneof=any yes no"`
	TopN           *int     `query:"top_n" validate:"omitempty,min=1,max=100"`
	MinReviews     *int     `query:"min_reviews" validate:"omitempty,min=1,max=100000"`
}

// Filter converts the request into the store filter.
func (fr *FilterRequest) Filter() database.ListingFilter {
	online, err := database.ParseOnlineOrder(fr.OnlineOrder)
	if err != nil {
		online = database.OnlineOrderAny
	}
	return database.ListingFilter{
		Cities:         fr.Cities,
		CostCategories: fr.CostCategories,
		OnlineOrder:    online,
	}
}

// Limit returns top_n when the client sent one, otherwise fallback.
func (fr *FilterRequest) Limit(fallback int) int {
	if fr.TopN != nil {
		return *fr.TopN
	}
	return fallback
}

// Ranking builds ranking options from the request. minReviews is the route's
// default minimum, replaced by an explicit min_reviews parameter.
func (fr *FilterRequest) Ranking(minReviews, limit int) database.RankingOptions {
	if fr.MinReviews != nil {
		minReviews = *fr.MinReviews
	}
	return database.RankingOptions{
		MinReviews: minReviews,
		Limit:      fr.Limit(limit),
	}
}

// parseFilterRequest reads and validates the filter parameters of r.
func parseFilterRequest(r *http.Request) (*FilterRequest, *models.APIError) {
	req := &FilterRequest{
		Cities:         multiValueParam(r, "city"),
		CostCategories: multiValueParam(r, "cost_category"),
		OnlineOrder:    strings.TrimSpace(r.URL.Query().Get("online_order")),
	}
	// Aliases (all, true, 0, ...) are normalized; anything else is left for
	// the validator to reject.
	if online, err := database.ParseOnlineOrder(req.OnlineOrder); err == nil {
		req.OnlineOrder = string(online)
	}

	var apiErr *models.APIError
	if req.TopN, apiErr = intParam(r, "top_n"); apiErr != nil {
		return nil, apiErr
	}
	if req.MinReviews, apiErr = intParam(r, "min_reviews"); apiErr != nil {
		return nil, apiErr
	}
	if apiErr = validateRequest(req); apiErr != nil {
		return nil, apiErr
	}
	return req, nil
}

// CrossTabRequest adds the post-aggregation group filters of the generic cross-tab.
type CrossTabRequest struct {
	Dimension      string `query:"dimension" validate:"required,oneof=city cost_category online_order book_table cuisine review_volume price_point"`
	MinRestaurants *int   `query:"min_restaurants" validate:"omitempty,min=0,max=100000"`
	MinRecords     *int   `query:"min_records" validate:"omitempty,min=0,max=10000000"`
}

// Options returns the cross-tab group filters; missing parameters disable a filter.
func (cr *CrossTabRequest) Options() database.CrossTabOptions {
	var opts database.CrossTabOptions
	if cr.MinRestaurants != nil {
		opts.MinRestaurants = *cr.MinRestaurants
	}
	if cr.MinRecords != nil {
		opts.MinRecords = *cr.MinRecords
	}
	return opts
}

func parseCrossTabRequest(r *http.Request, dimension string) (*CrossTabRequest, *models.APIError) {
	req := &CrossTabRequest{Dimension: strings.ToLower(strings.TrimSpace(dimension))}

	var apiErr *models.APIError
	if req.MinRestaurants, apiErr = intParam(r, "min_restaurants"); apiErr != nil {
		return nil, apiErr
	}
	if req.MinRecords, apiErr = intParam(r, "min_records"); apiErr != nil {
		return nil, apiErr
	}
	if apiErr = validateRequest(req); apiErr != nil {
		return nil, apiErr
	}
	return req, nil
}
