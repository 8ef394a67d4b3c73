// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tomtom215/tastelens/internal/cohort"
	"github.com/tomtom215/tastelens/internal/models"
)

// HeadlineKPIs returns restaurant count, mean rating, mean sentiment, total
// votes and trust gap for the filtered rows. With no matching rows the counts
// are 0 and the means are nil.
func (db *DB) HeadlineKPIs(ctx context.Context, f ListingFilter) (*models.HeadlineKPIs, error) {
	where, args := f.Where()
	q := fmt.Sprintf(`
		SELECT
			COUNT(DISTINCT name),
			COUNT(*),
			AVG(rate_clean),
			AVG(sentiment_score),
			CAST(COALESCE(SUM(votes), 0) AS BIGINT)
		FROM listings
		WHERE %s`, where)

	var (
		kpis                    models.HeadlineKPIs
		avgRating, avgSentiment sql.NullFloat64
	)
	if err := db.queryRow(ctx, "headline_kpis", q, args,
		&kpis.Restaurants, &kpis.Records, &avgRating, &avgSentiment, &kpis.TotalVotes); err != nil {
		return nil, err
	}

	if avgRating.Valid {
		v := cohort.RoundRating(avgRating.Float64)
		kpis.AvgRating = &v
	}
	if avgSentiment.Valid {
		v := cohort.RoundSentiment(avgSentiment.Float64)
		kpis.AvgSentiment = &v
	}
	if avgRating.Valid && avgSentiment.Valid {
		gap := cohort.RoundRating(avgRating.Float64 - avgSentiment.Float64)
		kpis.TrustGap = &gap
	}
	return &kpis, nil
}

// SentimentDistribution counts records per sentiment label, most frequent first.
func (db *DB) SentimentDistribution(ctx context.Context, f ListingFilter) ([]models.CategoryCount, error) {
	where, args := f.whereWith("sentiment IS NOT NULL")
	q := fmt.Sprintf(`
		SELECT sentiment, COUNT(*) AS n
		FROM listings
		WHERE %s
		GROUP BY sentiment
		ORDER BY n DESC, sentiment ASC`, where)

	out := []models.CategoryCount{}
	err := db.queryAndScan(ctx, "sentiment_distribution", q, args, func(rows *sql.Rows) error {
		var c models.CategoryCount
		if err := rows.Scan(&c.Label, &c.Count); err != nil {
			return err
		}
		out = append(out, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FilterOptions returns the values that populate the dashboard selectors.
func (db *DB) FilterOptions(ctx context.Context) (*models.FilterOptions, error) {
	cities, err := db.distinctValues(ctx, "city")
	if err != nil {
		return nil, err
	}
	costs, err := db.distinctValues(ctx, "cost_category")
	if err != nil {
		return nil, err
	}

	online := make([]string, len(OnlineOrderChoices))
	for i, c := range OnlineOrderChoices {
		online[i] = string(c)
	}

	return &models.FilterOptions{
		Cities:         cities,
		CostCategories: costs,
		OnlineOrder:    online,
		TopN:           append([]int(nil), cohort.TopNChoices...),
		DefaultTopN:    db.thresholds.DefaultTopN,
	}, nil
}

// distinctValues returns the sorted non-blank values of a whitelisted column.
func (db *DB) distinctValues(ctx context.Context, column string) ([]string, error) {
	switch column {
	case "city", "cost_category":
	default:
		return nil, fmt.Errorf("distinct values: unsupported column %q", column)
	}

	q := fmt.Sprintf(`
		SELECT DISTINCT %[1]s
		FROM listings
		WHERE %[1]s IS NOT NULL AND TRIM(%[1]s) <> ''
		ORDER BY %[1]s`, column)

	out := []string{}
	err := db.queryAndScan(ctx, "distinct_"+column, q, nil, func(rows *sql.Rows) error {
		var v string
		if err := rows.Scan(&v); err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
