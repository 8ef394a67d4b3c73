// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

package models

// HeadlineKPIs summarizes the filtered listings.
// The means and the trust gap are null when no rows match.
type HeadlineKPIs struct {
	Restaurants  int64    `json:"restaurants"`
	Records      int64    `json:"records"`
	AvgRating    *float64 `json:"avg_rating"`
	AvgSentiment *float64 `json:"avg_sentiment"`
	TotalVotes   int64    `json:"total_votes"`
	TrustGap     *float64 `json:"trust_gap"`
}

// CategoryCount is a label with its record count.
type CategoryCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// CrossTabRow is one group of a cross-tab over a single dimension.
type CrossTabRow struct {
	Group        string  `json:"group"`
	AvgSentiment float64 `json:"avg_sentiment"`
	AvgRating    float64 `json:"avg_rating"`
	Restaurants  int64   `json:"restaurants"`
	Records      int64   `json:"records"`
}

// CohortRow is the per-restaurant aggregate returned by ranking queries.
type CohortRow struct {
	Name            string  `json:"name"`
	AvgRating       float64 `json:"avg_rating"`
	AvgSentiment    float64 `json:"avg_sentiment"`
	Reviews         int64   `json:"reviews"`
	Volatility      float64 `json:"sentiment_volatility"`
	ExperienceScore float64 `json:"experience_score"`
	TrustGap        float64 `json:"trust_gap"`
	Flag            string  `json:"risk_flag,omitempty"`
}

// CityOpportunity is a city whose market is neither empty nor saturated.
type CityOpportunity struct {
	City         string  `json:"city"`
	Restaurants  int64   `json:"restaurants"`
	AvgSentiment float64 `json:"avg_sentiment"`
	AvgRating    float64 `json:"avg_rating"`
}

// NicheOpportunity is a (city, cuisine) pair with few but happy reviews.
type NicheOpportunity struct {
	City         string  `json:"city"`
	Cuisine      string  `json:"cuisine"`
	Records      int64   `json:"records"`
	AvgSentiment float64 `json:"avg_sentiment"`
}

// CuisineDemand reports volume and satisfaction for one cuisine.
type CuisineDemand struct {
	Cuisine      string  `json:"cuisine"`
	Demand       int64   `json:"demand"`
	AvgSentiment float64 `json:"avg_sentiment"`
	AvgRating    float64 `json:"avg_rating"`
}

// FilterOptions populates the dashboard selectors.
type FilterOptions struct {
	Cities         []string `json:"cities"`
	CostCategories []string `json:"cost_categories"`
	OnlineOrder    []string `json:"online_order"`
	TopN           []int    `json:"top_n"`
	DefaultTopN    int      `json:"default_top_n"`
}
