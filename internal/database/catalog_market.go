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

const cuisinePresent = "cuisines IS NOT NULL AND TRIM(cuisines) <> ''"

// ExpansionOpportunities returns cities with a mid-sized market and happy customers.
func (db *DB) ExpansionOpportunities(ctx context.Context, f ListingFilter) ([]models.CityOpportunity, error) {
	t := &db.thresholds
	where, args := f.whereWith("city IS NOT NULL")
	args = append(args, t.ExpansionMinRestaurants, t.ExpansionMaxRestaurants, t.ExpansionMinSentiment)

	q := fmt.Sprintf(`
		SELECT
			city,
			COUNT(DISTINCT name) AS restaurants,
			AVG(sentiment_score) AS avg_sentiment,
			AVG(rate_clean) AS avg_rating
		FROM listings
		WHERE %s
		GROUP BY city
		HAVING COUNT(DISTINCT name) BETWEEN ? AND ?
		   AND AVG(sentiment_score) >= ?
		ORDER BY avg_sentiment DESC, city ASC`, where)

	out := []models.CityOpportunity{}
	err := db.queryAndScan(ctx, "expansion_opportunities", q, args, func(rows *sql.Rows) error {
		var (
			o                       models.CityOpportunity
			avgSentiment, avgRating sql.NullFloat64
		)
		if err := rows.Scan(&o.City, &o.Restaurants, &avgSentiment, &avgRating); err != nil {
			return err
		}
		o.AvgSentiment = cohort.RoundSentiment(nullFloat(avgSentiment))
		o.AvgRating = cohort.RoundRating(nullFloat(avgRating))
		out = append(out, o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CityCuisineOpportunities returns (city, cuisine) niches with few records and
// high sentiment.
func (db *DB) CityCuisineOpportunities(ctx context.Context, f ListingFilter) ([]models.NicheOpportunity, error) {
	t := &db.thresholds
	where, args := f.whereWith("city IS NOT NULL", cuisinePresent)
	args = append(args, t.NicheMinRecords, t.NicheMaxRecords, t.NicheMinSentiment)

	q := fmt.Sprintf(`
		SELECT
			city,
			cuisines,
			COUNT(*) AS records,
			AVG(sentiment_score) AS avg_sentiment
		FROM listings
		WHERE %s
		GROUP BY city, cuisines
		HAVING COUNT(*) BETWEEN ? AND ?
		   AND AVG(sentiment_score) >= ?
		ORDER BY avg_sentiment DESC, city ASC, cuisines ASC`, where)

	out := []models.NicheOpportunity{}
	err := db.queryAndScan(ctx, "city_cuisine_opportunities", q, args, func(rows *sql.Rows) error {
		var (
			o            models.NicheOpportunity
			avgSentiment sql.NullFloat64
		)
		if err := rows.Scan(&o.City, &o.Cuisine, &o.Records, &avgSentiment); err != nil {
			return err
		}
		o.AvgSentiment = cohort.RoundSentiment(nullFloat(avgSentiment))
		out = append(out, o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CuisineDemand returns high-volume cuisines with their satisfaction, busiest first.
func (db *DB) CuisineDemand(ctx context.Context, f ListingFilter) ([]models.CuisineDemand, error) {
	return db.cuisineDemand(ctx, f, "cuisine_demand", db.thresholds.CuisineDemandMin, nil)
}

// OvercrowdedCuisines returns crowded cuisines whose mean sentiment is negative.
func (db *DB) OvercrowdedCuisines(ctx context.Context, f ListingFilter) ([]models.CuisineDemand, error) {
	maxSentiment := db.thresholds.NegativeSentiment
	return db.cuisineDemand(ctx, f, "overcrowded_cuisines", db.thresholds.OvercrowdedMinRecords, &maxSentiment)
}

func (db *DB) cuisineDemand(ctx context.Context, f ListingFilter, operation string, minRecords int, maxSentiment *float64) ([]models.CuisineDemand, error) {
	where, args := f.whereWith(cuisinePresent)
	args = append(args, minRecords)

	having := "COUNT(*) >= ?"
	if maxSentiment != nil {
		having += " AND AVG(sentiment_score) < ?"
		args = append(args, *maxSentiment)
	}

	q := fmt.Sprintf(`
		SELECT
			cuisines,
			COUNT(*) AS demand,
			AVG(sentiment_score) AS avg_sentiment,
			AVG(rate_clean) AS avg_rating
		FROM listings
		WHERE %s
		GROUP BY cuisines
		HAVING %s
		ORDER BY demand DESC, cuisines ASC`, where, having)

	out := []models.CuisineDemand{}
	err := db.queryAndScan(ctx, operation, q, args, func(rows *sql.Rows) error {
		var (
			c                       models.CuisineDemand
			avgSentiment, avgRating sql.NullFloat64
		)
		if err := rows.Scan(&c.Cuisine, &c.Demand, &avgSentiment, &avgRating); err != nil {
			return err
		}
		c.AvgSentiment = cohort.RoundSentiment(nullFloat(avgSentiment))
		c.AvgRating = cohort.RoundRating(nullFloat(avgRating))
		out = append(out, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
