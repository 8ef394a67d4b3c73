// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

package cohort

import "math"

// Stats is the full-precision reduction of one restaurant's listing records.
type Stats struct {
	Name         string
	AvgRating    float64
	AvgSentiment float64
	Reviews      int64
	// Volatility is the sample standard deviation of sentiment_score.
	// A cohort with a single review has no spread and reports 0.
	Volatility float64
}

// TrustGap is mean rating minus mean sentiment.
func (s Stats) TrustGap() float64 {
	return s.AvgRating - s.AvgSentiment
}

// ExperienceScore blends mean rating and mean sentiment with the configured weights.
func (s Stats) ExperienceScore(t *Thresholds) float64 {
	return ExperienceScore(s.AvgRating, s.AvgSentiment, t.RatingWeight, t.SentimentWeight)
}

// ExperienceScore computes ratingWeight*rating + sentimentWeight*sentiment.
func ExperienceScore(rating, sentiment, ratingWeight, sentimentWeight float64) float64 {
	return rating*ratingWeight + sentiment*sentimentWeight
}

// Predicate filters reduced cohorts. Minimums are inclusive, maximums are
// exclusive, nil bounds are ignored. SentimentAbove is a strict lower bound
// for presets that exclude the cutoff itself. The zero Predicate matches
// everything.
type Predicate struct {
	MinRating      *float64
	MaxRating      *float64
	MinSentiment   *float64
	SentimentAbove *float64
	MaxSentiment   *float64
	MinVolatility  *float64
}

// Float returns a pointer to v for building predicates.
func Float(v float64) *float64 {
	return &v
}

// Matches evaluates the predicate against full-precision stats.
func (p Predicate) Matches(s Stats) bool {
	if p.MinRating != nil && s.AvgRating < *p.MinRating {
		return false
	}
	if p.MaxRating != nil && s.AvgRating >= *p.MaxRating {
		return false
	}
	if p.MinSentiment != nil && s.AvgSentiment < *p.MinSentiment {
		return false
	}
	if p.SentimentAbove != nil && s.AvgSentiment <= *p.SentimentAbove {
		return false
	}
	if p.MaxSentiment != nil && s.AvgSentiment >= *p.MaxSentiment {
		return false
	}
	if p.MinVolatility != nil && s.Volatility < *p.MinVolatility {
		return false
	}
	return true
}

// TopTrusted selects highly rated restaurants whose reviews agree with the rating.
func (t *Thresholds) TopTrusted() Predicate {
	return Predicate{MinRating: Float(t.HighRating), MinSentiment: Float(t.TrustedSentiment)}
}

// TrustRisk selects highly rated restaurants with net negative review sentiment.
func (t *Thresholds) TrustRisk() Predicate {
	return Predicate{MinRating: Float(t.HighRating), MaxSentiment: Float(t.NegativeSentiment)}
}

// HiddenGem selects modestly rated restaurants with strongly positive sentiment.
func (t *Thresholds) HiddenGem() Predicate {
	return Predicate{MaxRating: Float(t.HiddenGemMaxRating), MinSentiment: Float(t.HiddenGemMinSentiment)}
}

// Undervalued is the risk page variant of HiddenGem. Its sentiment cutoff
// is strict: a restaurant sitting exactly on it is not undervalued.
func (t *Thresholds) Undervalued() Predicate {
	return Predicate{MaxRating: Float(t.UndervaluedMaxRating), SentimentAbove: Float(t.UndervaluedMinSentiment)}
}

// Underrated is the trust page variant of HiddenGem.
func (t *Thresholds) Underrated() Predicate {
	return Predicate{MaxRating: Float(t.UnderratedMaxRating), MinSentiment: Float(t.UnderratedMinSentiment)}
}

// Opportunity selects low rated restaurants that reviewers nonetheless like.
func (t *Thresholds) Opportunity() Predicate {
	return Predicate{MaxRating: Float(t.OpportunityMaxRating), MinSentiment: Float(t.OpportunityMinSentiment)}
}

// Unstable selects restaurants whose review sentiment swings widely.
func (t *Thresholds) Unstable() Predicate {
	return Predicate{MinVolatility: Float(t.UnstableVolatility)}
}

// RiskFlag labels a cohort for the experience risk table.
type RiskFlag string

const (
	FlagHighRisk    RiskFlag = "HIGH RISK"
	FlagOpportunity RiskFlag = "OPPORTUNITY"
	FlagUnstable    RiskFlag = "UNSTABLE"
	FlagNormal      RiskFlag = "NORMAL"
)

// RiskFlags lists every flag in evaluation order.
var RiskFlags = []RiskFlag{FlagHighRisk, FlagOpportunity, FlagUnstable, FlagNormal}

// Classify assigns exactly one flag, checking trust risk, then opportunity,
// then instability, and falling back to NORMAL.
func Classify(s Stats, t *Thresholds) RiskFlag {
	switch {
	case t.TrustRisk().Matches(s):
		return FlagHighRisk
	case t.Opportunity().Matches(s):
		return FlagOpportunity
	case t.Unstable().Matches(s):
		return FlagUnstable
	default:
		return FlagNormal
	}
}

// Display precisions.
const (
	RatingPrecision    = 2
	SentimentPrecision = 3
)

// Round rounds half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// RoundRating rounds a rating-scale value for display.
func RoundRating(v float64) float64 {
	return Round(v, RatingPrecision)
}

// RoundSentiment rounds a sentiment-scale value for display.
func RoundSentiment(v float64) float64 {
	return Round(v, SentimentPrecision)
}
