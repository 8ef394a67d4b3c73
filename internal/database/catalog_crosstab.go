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

// Dimension is a whitelisted grouping for CrossTab.
type Dimension string

const (
	DimensionCity         Dimension = "city"
	DimensionCostCategory Dimension = "cost_category"
	DimensionOnlineOrder  Dimension = "online_order"
	DimensionBookTable    Dimension = "book_table"
	DimensionCuisine      Dimension = "cuisine"
	DimensionReviewVolume Dimension = "review_volume"
	DimensionPricePoint   Dimension = "price_point"
)

// Dimensions lists every supported cross-tab dimension.
var Dimensions = []Dimension{
	DimensionCity,
	DimensionCostCategory,
	DimensionOnlineOrder,
	DimensionBookTable,
	DimensionCuisine,
	DimensionReviewVolume,
	DimensionPricePoint,
}

// Group labels for the derived dimensions.
const (
	LabelOnlineOrder    = "Online Order"
	LabelDineInOnly     = "Dine-In Only"
	LabelTableBooking   = "Table Booking Available"
	LabelNoTableBooking = "No Table Booking"
	LabelLowReviews     = "Low Reviews"
	LabelMediumReviews  = "Medium Reviews"
	LabelHighReviews    = "High Reviews"
)

// ParseDimension validates a dimension name.
func ParseDimension(s string) (Dimension, error) {
	for _, d := range Dimensions {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDimension, s)
}

// CrossTabOptions filters groups after aggregation. Zero values disable a filter.
type CrossTabOptions struct {
	MinRestaurants int
	MinRecords     int
}

// dimensionSQL is the code-owned SQL for one dimension.
type dimensionSQL struct {
	group     string // GROUP BY expression
	label     string // selected label expression
	condition string // extra WHERE condition, "" for none
	order     string // ORDER BY clause
}

const bySentiment = "avg_sentiment DESC NULLS LAST, grp ASC"

// dimensionQuery returns the SQL fragments for d. Bucket bounds come from
// thresholds and are integers, so they are formatted into the statement.
func dimensionQuery(d Dimension, t *cohort.Thresholds) (dimensionSQL, error) {
	switch d {
	case DimensionCity, DimensionCostCategory:
		col := string(d)
		return dimensionSQL{
			group:     col,
			label:     col,
			condition: col + " IS NOT NULL",
			order:     bySentiment,
		}, nil
	case DimensionOnlineOrder:
		expr := fmt.Sprintf("CASE WHEN online_order THEN '%s' ELSE '%s' END", LabelOnlineOrder, LabelDineInOnly)
		return dimensionSQL{group: expr, label: expr, order: bySentiment}, nil
	case DimensionBookTable:
		expr := fmt.Sprintf("CASE WHEN book_table THEN '%s' ELSE '%s' END", LabelTableBooking, LabelNoTableBooking)
		return dimensionSQL{group: expr, label: expr, order: bySentiment}, nil
	case DimensionCuisine:
		return dimensionSQL{
			group:     "cuisines",
			label:     "cuisines",
			condition: "cuisines IS NOT NULL AND TRIM(cuisines) <> ''",
			order:     bySentiment,
		}, nil
	case DimensionReviewVolume:
		expr := fmt.Sprintf(
			"CASE WHEN votes < %d THEN '%s' WHEN votes <= %d THEN '%s' ELSE '%s' END",
			t.LowVotes, LabelLowReviews, t.HighVotes, LabelMediumReviews, LabelHighReviews)
		return dimensionSQL{group: expr, label: expr, order: bySentiment}, nil
	case DimensionPricePoint:
		return dimensionSQL{
			group:     "approx_cost_for_two",
			label:     "CAST(approx_cost_for_two AS VARCHAR)",
			condition: "approx_cost_for_two IS NOT NULL",
			order:     "approx_cost_for_two ASC",
		}, nil
	default:
		return dimensionSQL{}, fmt.Errorf("%w: %q", ErrUnknownDimension, d)
	}
}

// CrossTab groups the filtered rows by one dimension and reports mean
// sentiment, mean rating, distinct restaurants and record count per group.
func (db *DB) CrossTab(ctx context.Context, f ListingFilter, d Dimension, opts CrossTabOptions) ([]models.CrossTabRow, error) {
	dim, err := dimensionQuery(d, &db.thresholds)
	if err != nil {
		return nil, err
	}

	var conditions []string
	if dim.condition != "" {
		conditions = append(conditions, dim.condition)
	}
	where, args := f.whereWith(conditions...)
	args = append(args, opts.MinRestaurants, opts.MinRecords)

	q := fmt.Sprintf(`
		SELECT
			%s AS grp,
			AVG(sentiment_score) AS avg_sentiment,
			AVG(rate_clean) AS avg_rating,
			COUNT(DISTINCT name) AS restaurants,
			COUNT(*) AS records
		FROM listings
		WHERE %s
		GROUP BY %s
		HAVING COUNT(DISTINCT name) >= ? AND COUNT(*) >= ?
		ORDER BY %s`, dim.label, where, dim.group, dim.order)

	out := []models.CrossTabRow{}
	err = db.queryAndScan(ctx, "crosstab_"+string(d), q, args, func(rows *sql.Rows) error {
		var (
			row                     models.CrossTabRow
			avgSentiment, avgRating sql.NullFloat64
		)
		if err := rows.Scan(&row.Group, &avgSentiment, &avgRating, &row.Restaurants, &row.Records); err != nil {
			return err
		}
		row.AvgSentiment = cohort.RoundSentiment(nullFloat(avgSentiment))
		row.AvgRating = cohort.RoundRating(nullFloat(avgRating))
		out = append(out, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CostVsSentiment compares sentiment across cost categories.
func (db *DB) CostVsSentiment(ctx context.Context, f ListingFilter) ([]models.CrossTabRow, error) {
	return db.CrossTab(ctx, f, DimensionCostCategory, CrossTabOptions{})
}

// CitySentiment ranks cities with enough restaurants by mean sentiment.
func (db *DB) CitySentiment(ctx context.Context, f ListingFilter) ([]models.CrossTabRow, error) {
	return db.CrossTab(ctx, f, DimensionCity, CrossTabOptions{MinRestaurants: db.thresholds.CityMinRestaurants})
}

// OnlineVsDineIn compares restaurants with and without online ordering.
func (db *DB) OnlineVsDineIn(ctx context.Context, f ListingFilter) ([]models.CrossTabRow, error) {
	return db.CrossTab(ctx, f, DimensionOnlineOrder, CrossTabOptions{})
}

// TableBookingImpact compares restaurants with and without table booking.
func (db *DB) TableBookingImpact(ctx context.Context, f ListingFilter) ([]models.CrossTabRow, error) {
	return db.CrossTab(ctx, f, DimensionBookTable, CrossTabOptions{})
}

// CostEfficiency reports the experience delivered per price segment.
func (db *DB) CostEfficiency(ctx context.Context, f ListingFilter) ([]models.CrossTabRow, error) {
	return db.CrossTab(ctx, f, DimensionCostCategory, CrossTabOptions{})
}

// ReviewVolumeImpact compares low, medium and high review volume buckets.
func (db *DB) ReviewVolumeImpact(ctx context.Context, f ListingFilter) ([]models.CrossTabRow, error) {
	return db.CrossTab(ctx, f, DimensionReviewVolume, CrossTabOptions{})
}

// PriceVsHappiness reports sentiment per approximate cost for two, cheapest first.
func (db *DB) PriceVsHappiness(ctx context.Context, f ListingFilter) ([]models.CrossTabRow, error) {
	return db.CrossTab(ctx, f, DimensionPricePoint, CrossTabOptions{MinRecords: db.thresholds.PricePointMinRecords})
}

// CityPerformance ranks cities with enough restaurants for the market page.
func (db *DB) CityPerformance(ctx context.Context, f ListingFilter) ([]models.CrossTabRow, error) {
	return db.CrossTab(ctx, f, DimensionCity, CrossTabOptions{MinRestaurants: db.thresholds.CityMinRestaurants})
}

// CuisinePerformance ranks cuisines with enough records by mean sentiment.
func (db *DB) CuisinePerformance(ctx context.Context, f ListingFilter) ([]models.CrossTabRow, error) {
	return db.CrossTab(ctx, f, DimensionCuisine, CrossTabOptions{MinRecords: db.thresholds.CuisineMinRecords})
}
