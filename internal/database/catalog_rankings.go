// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/tomtom215/tastelens/internal/cohort"
	"github.com/tomtom215/tastelens/internal/metrics"
	"github.com/tomtom215/tastelens/internal/models"
)

// CohortSort selects the ordering of ranking results. Name is always the
// last tiebreak.
type CohortSort int

const (
	SortSentimentDesc CohortSort = iota
	SortSentimentAsc
	SortExperienceDesc
	SortVolatilityDesc
	SortTrustGapDesc
	SortReviewsDesc
)

// CohortQuery describes one pass of the per-restaurant reducer.
type CohortQuery struct {
	// MinReviews drops restaurants with fewer rows. Values below 1 are treated as 1.
	MinReviews int

	// Predicate is evaluated on full-precision aggregates.
	Predicate cohort.Predicate

	Sort CohortSort

	// Limit caps the result; <= 0 returns every qualifying restaurant.
	Limit int

	// Classify attaches a risk flag to each row.
	Classify bool

	// Preset names the query for metrics; empty means "custom".
	Preset string
}

// RankingOptions tunes a named ranking preset.
type RankingOptions struct {
	// MinReviews overrides the preset's default minimum (0 = default).
	MinReviews int

	// Limit caps the result (0 = no cap).
	Limit int
}

// cohortStatsSQL aggregates each restaurant once; the outer query applies the
// predicate, ordering and limit.
const cohortStatsSQL = `
	WITH cohort_stats AS (
		SELECT
			name,
			AVG(rate_clean) AS avg_rating,
			AVG(sentiment_score) AS avg_sentiment,
			COUNT(*) AS reviews,
			COALESCE(STDDEV_SAMP(sentiment_score), 0) AS volatility
		FROM listings
		WHERE %s
		GROUP BY name
		HAVING COUNT(*) >= ?
	)
	SELECT name, avg_rating, avg_sentiment, reviews, volatility
	FROM cohort_stats
	WHERE %s
	ORDER BY %s, name ASC`

// predicateSQL renders p as bound comparisons: minimums inclusive, maximums
// and SentimentAbove exclusive.
func predicateSQL(p cohort.Predicate) (string, []interface{}) {
	var (
		clauses []string
		args    []interface{}
	)
	add := func(clause string, v *float64) {
		if v != nil {
			clauses = append(clauses, clause)
			args = append(args, *v)
		}
	}
	add("avg_rating >= ?", p.MinRating)
	add("avg_rating < ?", p.MaxRating)
	add("avg_sentiment >= ?", p.MinSentiment)
	add("avg_sentiment > ?", p.SentimentAbove)
	add("avg_sentiment < ?", p.MaxSentiment)
	add("volatility >= ?", p.MinVolatility)

	if len(clauses) == 0 {
		return "1=1", nil
	}
	return strings.Join(clauses, " AND "), args
}

// orderSQL returns the ORDER BY expression for s. Weights come from validated
// configuration and are formatted as numeric literals.
func orderSQL(s CohortSort, t *cohort.Thresholds) (string, error) {
	switch s {
	case SortSentimentDesc:
		return "avg_sentiment DESC NULLS LAST, avg_rating DESC", nil
	case SortSentimentAsc:
		return "avg_sentiment ASC NULLS LAST", nil
	case SortExperienceDesc:
		return fmt.Sprintf("(%s * avg_rating + %s * avg_sentiment) DESC NULLS LAST",
			formatWeight(t.RatingWeight), formatWeight(t.SentimentWeight)), nil
	case SortVolatilityDesc:
		return "volatility DESC", nil
	case SortTrustGapDesc:
		return "(avg_rating - avg_sentiment) DESC NULLS LAST", nil
	case SortReviewsDesc:
		return "reviews DESC", nil
	default:
		return "", fmt.Errorf("unknown cohort sort %d", s)
	}
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// Cohorts runs the per-restaurant reducer: mean rating, mean sentiment,
// review count and sample standard deviation of sentiment are computed once per
// name, then filtered by q.Predicate, sorted and capped. Derived scores are
// display-rounded after all comparisons.
func (db *DB) Cohorts(ctx context.Context, f ListingFilter, q CohortQuery) ([]models.CohortRow, error) {
	order, err := orderSQL(q.Sort, &db.thresholds)
	if err != nil {
		return nil, err
	}

	minReviews := q.MinReviews
	if minReviews < 1 {
		minReviews = 1
	}

	where, args := f.Where()
	predicate, predArgs := predicateSQL(q.Predicate)
	args = append(args, minReviews)
	args = append(args, predArgs...)

	stmt := fmt.Sprintf(cohortStatsSQL, where, predicate, order)
	if q.Limit > 0 {
		stmt += "\n\tLIMIT ?"
		args = append(args, q.Limit)
	}

	preset := q.Preset
	if preset == "" {
		preset = "custom"
	}

	out := []models.CohortRow{}
	err = db.queryAndScan(ctx, "cohort_"+preset, stmt, args, func(rows *sql.Rows) error {
		var (
			s                       cohort.Stats
			avgRating, avgSentiment sql.NullFloat64
		)
		if err := rows.Scan(&s.Name, &avgRating, &avgSentiment, &s.Reviews, &s.Volatility); err != nil {
			return err
		}
		s.AvgRating = nullFloat(avgRating)
		s.AvgSentiment = nullFloat(avgSentiment)
		out = append(out, db.cohortRow(s, q.Classify))
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordCohortQuery(preset, len(out))
	return out, nil
}

// cohortRow derives scores from full-precision stats and rounds for display.
func (db *DB) cohortRow(s cohort.Stats, classify bool) models.CohortRow {
	row := models.CohortRow{
		Name:            s.Name,
		AvgRating:       cohort.RoundRating(s.AvgRating),
		AvgSentiment:    cohort.RoundSentiment(s.AvgSentiment),
		Reviews:         s.Reviews,
		Volatility:      cohort.RoundSentiment(s.Volatility),
		ExperienceScore: cohort.RoundRating(s.ExperienceScore(&db.thresholds)),
		TrustGap:        cohort.RoundRating(s.TrustGap()),
	}
	if classify {
		row.Flag = string(cohort.Classify(s, &db.thresholds))
	}
	return row
}

func pickMinReviews(override, fallback int) int {
	if override > 0 {
		return override
	}
	return fallback
}

// TopTrusted returns restaurants whose high ratings are backed by positive sentiment.
func (db *DB) TopTrusted(ctx context.Context, f ListingFilter, opts RankingOptions) ([]models.CohortRow, error) {
	return db.Cohorts(ctx, f, CohortQuery{
		MinReviews: pickMinReviews(opts.MinReviews, db.thresholds.MinReviews),
		Predicate:  db.thresholds.TopTrusted(),
		Sort:       SortSentimentDesc,
		Limit:      opts.Limit,
		Preset:     "top_trusted",
	})
}

// TrustRisk returns highly rated restaurants whose reviews read negative.
func (db *DB) TrustRisk(ctx context.Context, f ListingFilter, opts RankingOptions) ([]models.CohortRow, error) {
	return db.Cohorts(ctx, f, CohortQuery{
		MinReviews: pickMinReviews(opts.MinReviews, db.thresholds.MinReviews),
		Predicate:  db.thresholds.TrustRisk(),
		Sort:       SortSentimentAsc,
		Limit:      opts.Limit,
		Preset:     "trust_risk",
	})
}

// HiddenGems returns modestly rated restaurants with strongly positive reviews.
func (db *DB) HiddenGems(ctx context.Context, f ListingFilter, opts RankingOptions) ([]models.CohortRow, error) {
	return db.Cohorts(ctx, f, CohortQuery{
		MinReviews: pickMinReviews(opts.MinReviews, db.thresholds.MinReviews),
		Predicate:  db.thresholds.HiddenGem(),
		Sort:       SortSentimentDesc,
		Limit:      opts.Limit,
		Preset:     "hidden_gems",
	})
}

// Undervalued is the risk page variant of HiddenGems with a lower sentiment bar.
func (db *DB) Undervalued(ctx context.Context, f ListingFilter, opts RankingOptions) ([]models.CohortRow, error) {
	return db.Cohorts(ctx, f, CohortQuery{
		MinReviews: pickMinReviews(opts.MinReviews, db.thresholds.RiskMinReviews),
		Predicate:  db.thresholds.Undervalued(),
		Sort:       SortSentimentDesc,
		Limit:      opts.Limit,
		Preset:     "undervalued",
	})
}

// UnderratedGems returns restaurants rated below 3.5 that customers still like.
func (db *DB) UnderratedGems(ctx context.Context, f ListingFilter, opts RankingOptions) ([]models.CohortRow, error) {
	return db.Cohorts(ctx, f, CohortQuery{
		MinReviews: pickMinReviews(opts.MinReviews, db.thresholds.MinReviews),
		Predicate:  db.thresholds.Underrated(),
		Sort:       SortSentimentDesc,
		Limit:      opts.Limit,
		Preset:     "underrated_gems",
	})
}

// BestExperience ranks every qualifying restaurant by experience score.
func (db *DB) BestExperience(ctx context.Context, f ListingFilter, opts RankingOptions) ([]models.CohortRow, error) {
	return db.Cohorts(ctx, f, CohortQuery{
		MinReviews: pickMinReviews(opts.MinReviews, db.thresholds.MinReviews),
		Sort:       SortExperienceDesc,
		Limit:      opts.Limit,
		Preset:     "best_experience",
	})
}

// SentimentVolatility ranks restaurants by the spread of their review sentiment.
func (db *DB) SentimentVolatility(ctx context.Context, f ListingFilter, opts RankingOptions) ([]models.CohortRow, error) {
	return db.Cohorts(ctx, f, CohortQuery{
		MinReviews: pickMinReviews(opts.MinReviews, db.thresholds.VolatilityMinReviews),
		Sort:       SortVolatilityDesc,
		Limit:      opts.Limit,
		Preset:     "sentiment_volatility",
	})
}

// TrustGapRanking ranks restaurants by rating minus sentiment, widest gap first.
func (db *DB) TrustGapRanking(ctx context.Context, f ListingFilter, opts RankingOptions) ([]models.CohortRow, error) {
	return db.Cohorts(ctx, f, CohortQuery{
		MinReviews: pickMinReviews(opts.MinReviews, db.thresholds.MinReviews),
		Sort:       SortTrustGapDesc,
		Limit:      opts.Limit,
		Preset:     "trust_gap",
	})
}

// RiskFlags labels every qualifying restaurant HIGH RISK, OPPORTUNITY,
// UNSTABLE or NORMAL, most reviewed first.
func (db *DB) RiskFlags(ctx context.Context, f ListingFilter, opts RankingOptions) ([]models.CohortRow, error) {
	return db.Cohorts(ctx, f, CohortQuery{
		MinReviews: pickMinReviews(opts.MinReviews, db.thresholds.MinReviews),
		Sort:       SortReviewsDesc,
		Limit:      opts.Limit,
		Classify:   true,
		Preset:     "risk_flags",
	})
}
