// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

// Package cohort holds the per-restaurant cohort model shared by the query
// catalog and the configuration layer: the named thresholds that define each
// ranking family, the predicates built from them, risk classification and
// display rounding.
//
// A cohort is the group of listing records sharing a restaurant name. The
// database package reduces each cohort once into Stats (mean rating, mean
// sentiment, review count, sentiment volatility); everything in this package
// then works on those full-precision values. Rounding is applied only when a
// row is handed to the presentation layer.
package cohort

import (
	"errors"
	"fmt"
)

// Minimum-sample thresholds. Groups below these counts are suppressed as noise.
const (
	DefaultMinReviews           = 30
	DefaultRiskMinReviews       = 20
	DefaultVolatilityMinReviews = 50

	DefaultCityMinRestaurants    = 20
	DefaultCuisineMinRecords     = 50
	DefaultCuisineDemandMin      = 100
	DefaultOvercrowdedMinRecords = 200
	DefaultPricePointMinRecords  = 10
)

// Rating and sentiment thresholds for the ranking families.
const (
	DefaultHighRating        = 4.0
	DefaultNegativeSentiment = 0.0
	DefaultTrustedSentiment  = 0.25

	DefaultHiddenGemMaxRating    = 3.8
	DefaultHiddenGemMinSentiment = 0.3

	DefaultUndervaluedMaxRating    = 3.8
	DefaultUndervaluedMinSentiment = 0.25

	DefaultUnderratedMaxRating    = 3.5
	DefaultUnderratedMinSentiment = 0.2

	DefaultOpportunityMaxRating    = 3.0
	DefaultOpportunityMinSentiment = 0.2

	DefaultUnstableVolatility = 0.5
)

// Opportunity detection ranges ("present but not saturated").
const (
	DefaultExpansionMinRestaurants = 20
	DefaultExpansionMaxRestaurants = 80
	DefaultExpansionMinSentiment   = 0.25

	DefaultNicheMinRecords   = 10
	DefaultNicheMaxRecords   = 40
	DefaultNicheMinSentiment = 0.2
)

// Review volume buckets and experience score weights.
const (
	DefaultLowVotes  = 100
	DefaultHighVotes = 500

	DefaultRatingWeight    = 0.6
	DefaultSentimentWeight = 0.4
)

// Top-N display choices offered to the dashboard.
const DefaultTopN = 10

// TopNChoices lists the ranking sizes the dashboard selector offers.
var TopNChoices = []int{5, 10, 20}

// Thresholds collects every adjustable constant used by the query catalog.
// The zero value is not useful; start from Default().
type Thresholds struct {
	MinReviews           int `koanf:"min_reviews"`
	RiskMinReviews       int `koanf:"risk_min_reviews"`
	VolatilityMinReviews int `koanf:"volatility_min_reviews"`

	CityMinRestaurants    int `koanf:"city_min_restaurants"`
	CuisineMinRecords     int `koanf:"cuisine_min_records"`
	CuisineDemandMin      int `koanf:"cuisine_demand_min"`
	OvercrowdedMinRecords int `koanf:"overcrowded_min_records"`
	PricePointMinRecords  int `koanf:"price_point_min_records"`

	HighRating        float64 `koanf:"high_rating"`
	NegativeSentiment float64 `koanf:"negative_sentiment"`
	TrustedSentiment  float64 `koanf:"trusted_sentiment"`

	HiddenGemMaxRating    float64 `koanf:"hidden_gem_max_rating"`
	HiddenGemMinSentiment float64 `koanf:"hidden_gem_min_sentiment"`

	UndervaluedMaxRating    float64 `koanf:"undervalued_max_rating"`
	UndervaluedMinSentiment float64 `koanf:"undervalued_min_sentiment"`

	UnderratedMaxRating    float64 `koanf:"underrated_max_rating"`
	UnderratedMinSentiment float64 `koanf:"underrated_min_sentiment"`

	OpportunityMaxRating    float64 `koanf:"opportunity_max_rating"`
	OpportunityMinSentiment float64 `koanf:"opportunity_min_sentiment"`

	UnstableVolatility float64 `koanf:"unstable_volatility"`

	ExpansionMinRestaurants int     `koanf:"expansion_min_restaurants"`
	ExpansionMaxRestaurants int     `koanf:"expansion_max_restaurants"`
	ExpansionMinSentiment   float64 `koanf:"expansion_min_sentiment"`

	NicheMinRecords   int     `koanf:"niche_min_records"`
	NicheMaxRecords   int     `koanf:"niche_max_records"`
	NicheMinSentiment float64 `koanf:"niche_min_sentiment"`

	LowVotes  int `koanf:"low_votes"`
	HighVotes int `koanf:"high_votes"`

	RatingWeight    float64 `koanf:"rating_weight"`
	SentimentWeight float64 `koanf:"sentiment_weight"`

	DefaultTopN int `koanf:"default_top_n"`
}

// Default returns the thresholds the dashboard has always shipped with.
func Default() Thresholds {
	return Thresholds{
		MinReviews:              DefaultMinReviews,
		RiskMinReviews:          DefaultRiskMinReviews,
		VolatilityMinReviews:    DefaultVolatilityMinReviews,
		CityMinRestaurants:      DefaultCityMinRestaurants,
		CuisineMinRecords:       DefaultCuisineMinRecords,
		CuisineDemandMin:        DefaultCuisineDemandMin,
		OvercrowdedMinRecords:   DefaultOvercrowdedMinRecords,
		PricePointMinRecords:    DefaultPricePointMinRecords,
		HighRating:              DefaultHighRating,
		NegativeSentiment:       DefaultNegativeSentiment,
		TrustedSentiment:        DefaultTrustedSentiment,
		HiddenGemMaxRating:      DefaultHiddenGemMaxRating,
		HiddenGemMinSentiment:   DefaultHiddenGemMinSentiment,
		UndervaluedMaxRating:    DefaultUndervaluedMaxRating,
		UndervaluedMinSentiment: DefaultUndervaluedMinSentiment,
		UnderratedMaxRating:     DefaultUnderratedMaxRating,
		UnderratedMinSentiment:  DefaultUnderratedMinSentiment,
		OpportunityMaxRating:    DefaultOpportunityMaxRating,
		OpportunityMinSentiment: DefaultOpportunityMinSentiment,
		UnstableVolatility:      DefaultUnstableVolatility,
		ExpansionMinRestaurants: DefaultExpansionMinRestaurants,
		ExpansionMaxRestaurants: DefaultExpansionMaxRestaurants,
		ExpansionMinSentiment:   DefaultExpansionMinSentiment,
		NicheMinRecords:         DefaultNicheMinRecords,
		NicheMaxRecords:         DefaultNicheMaxRecords,
		NicheMinSentiment:       DefaultNicheMinSentiment,
		LowVotes:                DefaultLowVotes,
		HighVotes:               DefaultHighVotes,
		RatingWeight:            DefaultRatingWeight,
		SentimentWeight:         DefaultSentimentWeight,
		DefaultTopN:             DefaultTopN,
	}
}

// ErrInvalidThresholds is wrapped by every Validate failure.
var ErrInvalidThresholds = errors.New("invalid analytics thresholds")

// Validate checks ranges and the ordering of paired bounds.
func (t *Thresholds) Validate() error {
	counts := []struct {
		name  string
		value int
	}{
		{"min_reviews", t.MinReviews},
		{"risk_min_reviews", t.RiskMinReviews},
		{"volatility_min_reviews", t.VolatilityMinReviews},
		{"city_min_restaurants", t.CityMinRestaurants},
		{"cuisine_min_records", t.CuisineMinRecords},
		{"cuisine_demand_min", t.CuisineDemandMin},
		{"overcrowded_min_records", t.OvercrowdedMinRecords},
		{"price_point_min_records", t.PricePointMinRecords},
		{"expansion_min_restaurants", t.ExpansionMinRestaurants},
		{"niche_min_records", t.NicheMinRecords},
	}
	for _, c := range counts {
		if c.value < 1 {
			return fmt.Errorf("%w: %s must be at least 1, got %d", ErrInvalidThresholds, c.name, c.value)
		}
	}

	if t.ExpansionMaxRestaurants < t.ExpansionMinRestaurants {
		return fmt.Errorf("%w: expansion_max_restaurants (%d) is below expansion_min_restaurants (%d)",
			ErrInvalidThresholds, t.ExpansionMaxRestaurants, t.ExpansionMinRestaurants)
	}
	if t.NicheMaxRecords < t.NicheMinRecords {
		return fmt.Errorf("%w: niche_max_records (%d) is below niche_min_records (%d)",
			ErrInvalidThresholds, t.NicheMaxRecords, t.NicheMinRecords)
	}
	if t.LowVotes < 0 || t.HighVotes < t.LowVotes {
		return fmt.Errorf("%w: review volume buckets must satisfy 0 <= low_votes <= high_votes, got %d/%d",
			ErrInvalidThresholds, t.LowVotes, t.HighVotes)
	}
	if t.UnstableVolatility < 0 {
		return fmt.Errorf("%w: unstable_volatility must not be negative", ErrInvalidThresholds)
	}
	if t.RatingWeight < 0 || t.SentimentWeight < 0 || t.RatingWeight+t.SentimentWeight == 0 {
		return fmt.Errorf("%w: experience weights must be non-negative and not both zero", ErrInvalidThresholds)
	}
	if t.DefaultTopN < 1 || t.DefaultTopN > MaxTopN {
		return fmt.Errorf("%w: default_top_n must be between 1 and %d", ErrInvalidThresholds, MaxTopN)
	}
	return nil
}

// MaxTopN caps any ranking request.
const MaxTopN = 100
