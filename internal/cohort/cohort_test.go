// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

package cohort

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	th := Default()

	tests := []struct {
		name  string
		stats Stats
		want  RiskFlag
	}{
		{"high rating negative sentiment", Stats{AvgRating: 4.4, AvgSentiment: -0.25}, FlagHighRisk},
		{"high risk wins over unstable", Stats{AvgRating: 4.5, AvgSentiment: -0.1, Volatility: 0.9}, FlagHighRisk},
		{"rating exactly at high bound", Stats{AvgRating: 4.0, AvgSentiment: -0.01}, FlagHighRisk},
		{"zero sentiment is not negative", Stats{AvgRating: 4.5, AvgSentiment: 0}, FlagNormal},
		{"low rating positive sentiment", Stats{AvgRating: 2.5, AvgSentiment: 0.2}, FlagOpportunity},
		{"opportunity wins over unstable", Stats{AvgRating: 2.9, AvgSentiment: 0.4, Volatility: 0.7}, FlagOpportunity},
		{"rating exactly 3 is not opportunity", Stats{AvgRating: 3.0, AvgSentiment: 0.4}, FlagNormal},
		{"volatile sentiment", Stats{AvgRating: 3.5, AvgSentiment: 0.1, Volatility: 0.5}, FlagUnstable},
		{"calm middling restaurant", Stats{AvgRating: 3.6, AvgSentiment: 0.1, Volatility: 0.2}, FlagNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.stats, &th); got != tt.want {
				t.Errorf("Classify(%+v) = %q, want %q", tt.stats, got, tt.want)
			}
		})
	}
}

func TestClassify_ExclusiveAndTotal(t *testing.T) {
	th := Default()
	for rating := 0.0; rating <= 5.0; rating += 0.25 {
		for sentiment := -1.0; sentiment <= 1.0; sentiment += 0.1 {
			for _, volatility := range []float64{0, 0.3, 0.5, 0.8} {
				s := Stats{AvgRating: rating, AvgSentiment: sentiment, Volatility: volatility}
				flag := Classify(s, &th)

				found := false
				for _, f := range RiskFlags {
					if f == flag {
						found = true
					}
				}
				if !found {
					t.Fatalf("Classify(%+v) returned unknown flag %q", s, flag)
				}
			}
		}
	}
}

func TestPredicate_Matches(t *testing.T) {
	th := Default()

	tests := []struct {
		name  string
		pred  Predicate
		stats Stats
		want  bool
	}{
		{"zero predicate matches", Predicate{}, Stats{AvgRating: 1}, true},
		{"trusted at both minimums", th.TopTrusted(), Stats{AvgRating: 4.0, AvgSentiment: 0.25}, true},
		{"trusted below sentiment", th.TopTrusted(), Stats{AvgRating: 4.2, AvgSentiment: 0.249}, false},
		{"hidden gem max is exclusive", th.HiddenGem(), Stats{AvgRating: 3.8, AvgSentiment: 0.5}, false},
		{"hidden gem just below max", th.HiddenGem(), Stats{AvgRating: 3.7999, AvgSentiment: 0.3}, true},
		{"underrated stricter rating", th.Underrated(), Stats{AvgRating: 3.6, AvgSentiment: 0.5}, false},
		{"undervalued accepts 3.6", th.Undervalued(), Stats{AvgRating: 3.6, AvgSentiment: 0.26}, true},
		{"undervalued cutoff is strict", th.Undervalued(), Stats{AvgRating: 3.5, AvgSentiment: 0.25}, false},
		{"strict bound alone", Predicate{SentimentAbove: Float(0)}, Stats{AvgSentiment: 0}, false},
		{"unstable inclusive", th.Unstable(), Stats{Volatility: 0.5}, true},
		{"unstable below", th.Unstable(), Stats{Volatility: 0.4999}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pred.Matches(tt.stats); got != tt.want {
				t.Errorf("Matches(%+v) = %v, want %v", tt.stats, got, tt.want)
			}
		})
	}
}

func TestPredicate_FullPrecision(t *testing.T) {
	th := Default()
	// 3.7996 displays as 3.80 but is still below the hidden gem bound.
	s := Stats{AvgRating: 3.7996, AvgSentiment: 0.31}
	if RoundRating(s.AvgRating) != 3.8 {
		t.Fatalf("RoundRating(3.7996) = %v, want 3.8", RoundRating(s.AvgRating))
	}
	if !th.HiddenGem().Matches(s) {
		t.Error("hidden gem predicate must compare unrounded rating")
	}
}

func TestStats_DerivedScores(t *testing.T) {
	th := Default()
	s := Stats{AvgRating: 4.4, AvgSentiment: -0.25}

	if got := RoundRating(s.TrustGap()); got != 4.65 {
		t.Errorf("TrustGap = %v, want 4.65", got)
	}
	if got := RoundRating(s.ExperienceScore(&th)); got != 2.54 {
		t.Errorf("ExperienceScore = %v, want 2.54", got)
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in     float64
		places int
		want   float64
	}{
		{4.4567, 2, 4.46},
		{0.12345, 3, 0.123},
		{-0.2504, 3, -0.25},
		{3, 2, 3},
		{0, 3, 0},
	}
	for _, tt := range tests {
		if got := Round(tt.in, tt.places); got != tt.want {
			t.Errorf("Round(%v, %d) = %v, want %v", tt.in, tt.places, got, tt.want)
		}
	}
}

func TestThresholds_Validate(t *testing.T) {
	valid := Default()
	if err := valid.Validate(); err != nil {
		t.Fatalf("Default thresholds should be valid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Thresholds)
	}{
		{"zero min reviews", func(th *Thresholds) { th.MinReviews = 0 }},
		{"inverted expansion range", func(th *Thresholds) { th.ExpansionMaxRestaurants = 10 }},
		{"inverted niche range", func(th *Thresholds) { th.NicheMaxRecords = 5 }},
		{"inverted vote buckets", func(th *Thresholds) { th.HighVotes = 50 }},
		{"negative volatility", func(th *Thresholds) { th.UnstableVolatility = -1 }},
		{"zero weights", func(th *Thresholds) { th.RatingWeight = 0; th.SentimentWeight = 0 }},
		{"top n too large", func(th *Thresholds) { th.DefaultTopN = MaxTopN + 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := Default()
			tt.mutate(&th)
			err := th.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalidThresholds) {
				t.Errorf("expected ErrInvalidThresholds, got %v", err)
			}
		})
	}
}
