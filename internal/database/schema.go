// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

package database

import (
	"context"
	"database/sql"
	"fmt"
)

// listingsSchema is one row per (restaurant, review) observation.
// name is not unique; rows sharing a name are aggregated together.
const listingsSchema = `
CREATE TABLE IF NOT EXISTS listings (
	name                VARCHAR NOT NULL,
	city                VARCHAR,
	cost_category       VARCHAR,
	online_order        BOOLEAN,
	book_table          BOOLEAN,
	rate_clean          DOUBLE,
	sentiment_score     DOUBLE,
	votes               BIGINT,
	cuisines            VARCHAR,
	sentiment           VARCHAR,
	approx_cost_for_two INTEGER
)`

var listingsIndexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_listings_city ON listings(city)",
	"CREATE INDEX IF NOT EXISTS idx_listings_cost_category ON listings(cost_category)",
	"CREATE INDEX IF NOT EXISTS idx_listings_name ON listings(name)",
}

// createSchema creates the listings table and, unless skipped, its indexes.
func createSchema(ctx context.Context, conn *sql.DB, withIndexes bool) error {
	if _, err := conn.ExecContext(ctx, listingsSchema); err != nil {
		return fmt.Errorf("failed to create listings table: %w", err)
	}
	if !withIndexes {
		return nil
	}
	for _, stmt := range listingsIndexes {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
