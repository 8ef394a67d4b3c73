// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

package models

// Listing is one (restaurant, review) observation from the listings table.
// Rows sharing a Name describe the same restaurant.
type Listing struct {
	Name             string  `json:"name"`
	City             string  `json:"city"`
	CostCategory     string  `json:"cost_category"`
	OnlineOrder      bool    `json:"online_order"`
	BookTable        bool    `json:"book_table"`
	Rating           float64 `json:"rate_clean"`
	SentimentScore   float64 `json:"sentiment_score"`
	Votes            int64   `json:"votes"`
	Cuisines         string  `json:"cuisines"`
	Sentiment        string  `json:"sentiment"`
	ApproxCostForTwo int     `json:"approx_cost_for_two"`
}

// Sentiment labels used by the precomputed sentiment column.
const (
	SentimentPositive = "Positive"
	SentimentNeutral  = "Neutral"
	SentimentNegative = "Negative"
)

// Cost categories produced by the upstream bucketing.
const (
	CostBudget   = "Budget"
	CostMidRange = "Mid-range"
	CostPremium  = "Premium"
	CostLuxury   = "Luxury"
)
