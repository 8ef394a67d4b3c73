// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

package database

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"math/rand"

	"github.com/tomtom215/tastelens/internal/logging"
	"github.com/tomtom215/tastelens/internal/models"
)

// mockSeed fixes the generator so every seeded store holds identical rows.
const mockSeed = 20240611

// InsertListings appends rows to the listings table in one transaction.
func (db *DB) InsertListings(ctx context.Context, listings []models.Listing) error {
	if len(listings) == 0 {
		return nil
	}
	return db.run(ctx, "insert_listings", func(ctx context.Context, conn *sql.DB) error {
		tx, err := conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO listings (
				name, city, cost_category, online_order, book_table,
				rate_clean, sentiment_score, votes, cuisines, sentiment, approx_cost_for_two
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer closeWithLog(stmt, "insert statement")

		for i := range listings {
			l := &listings[i]
			if _, err := stmt.ExecContext(ctx,
				l.Name, l.City, l.CostCategory, l.OnlineOrder, l.BookTable,
				l.Rating, l.SentimentScore, l.Votes, l.Cuisines, l.Sentiment, l.ApproxCostForTwo,
			); err != nil {
				return fmt.Errorf("insert listing %q: %w", l.Name, err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		return nil
	})
}

// SeedMockData fills an empty listings table with deterministic demo data.
// A table that already holds rows is left unchanged.
func (db *DB) SeedMockData(ctx context.Context) error {
	count, err := db.ListingCount(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		logging.Info().Int64("listings", count).Msg("Listings already present, skipping mock data")
		return nil
	}

	listings := MockListings()
	if err := db.InsertListings(ctx, listings); err != nil {
		return fmt.Errorf("seed mock data: %w", err)
	}
	logging.Info().Int("listings", len(listings)).Msg("Seeded database with mock listings")
	return nil
}

// MockListings generates the deterministic demo data set used by SeedMockData.
func MockListings() []models.Listing {
	rng := rand.New(rand.NewSource(mockSeed)) //nolint:gosec // demo data, not security sensitive

	cities := []string{
		"BTM", "Banashankari", "Bannerghatta Road", "Indiranagar",
		"Jayanagar", "Koramangala", "MG Road", "Whitefield",
	}
	cuisines := []string{
		"North Indian", "South Indian", "Chinese", "North Indian, Chinese",
		"Cafe", "Biryani", "Italian, Pizza", "Desserts", "Fast Food", "Continental",
	}
	prefixes := []string{"Spice", "Urban", "Royal", "Green", "Golden", "Little", "Blue", "Masala"}
	suffixes := []string{"Kitchen", "Cafe", "Bistro", "Dhaba", "House", "Express", "Table", "Garden"}

	var listings []models.Listing
	for i := 0; i < 96; i++ {
		name := fmt.Sprintf("%s %s %d", prefixes[i%len(prefixes)], suffixes[(i/len(prefixes))%len(suffixes)], i+1)
		city := cities[rng.Intn(len(cities))]
		cuisine := cuisines[rng.Intn(len(cuisines))]
		cost := []int{200, 300, 400, 500, 600, 800, 1000, 1200, 1500, 2000, 2500}[rng.Intn(11)]
		online := rng.Intn(3) > 0
		book := cost >= 800 && rng.Intn(2) == 0

		// Restaurant profile: base rating and base sentiment, sometimes disagreeing.
		baseRating := 2.8 + rng.Float64()*1.9
		baseSentiment := (baseRating-3.5)/2 + (rng.Float64()-0.5)*0.4
		switch i % 12 {
		case 0: // rated well, reviewed badly
			baseRating = 4.1 + rng.Float64()*0.6
			baseSentiment = -0.1 - rng.Float64()*0.3
		case 5: // rated modestly, loved in reviews
			baseRating = 3.0 + rng.Float64()*0.7
			baseSentiment = 0.3 + rng.Float64()*0.3
		}
		spread := 0.1 + rng.Float64()*0.3
		if i%9 == 0 {
			spread = 0.7
		}

		reviews := 5 + rng.Intn(80)
		votes := int64(rng.Intn(1200))
		for r := 0; r < reviews; r++ {
			rating := clamp(baseRating+rng.NormFloat64()*0.25, 1, 5)
			sentiment := clamp(baseSentiment+rng.NormFloat64()*spread, -1, 1)
			listings = append(listings, models.Listing{
				Name:             name,
				City:             city,
				CostCategory:     costCategory(cost),
				OnlineOrder:      online,
				BookTable:        book,
				Rating:           math.Round(rating*10) / 10,
				SentimentScore:   math.Round(sentiment*1000) / 1000,
				Votes:            votes,
				Cuisines:         cuisine,
				Sentiment:        sentimentLabel(sentiment),
				ApproxCostForTwo: cost,
			})
		}
	}
	return listings
}

// costCategory buckets an approximate cost for two.
func costCategory(cost int) string {
	switch {
	case cost <= 400:
		return models.CostBudget
	case cost <= 800:
		return models.CostMidRange
	case cost <= 1500:
		return models.CostPremium
	default:
		return models.CostLuxury
	}
}

// sentimentLabel maps a polarity score to its categorical label.
func sentimentLabel(score float64) string {
	switch {
	case score > 0.05:
		return models.SentimentPositive
	case score < -0.05:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
