// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/tomtom215/tastelens/internal/logging"
)

// importCSVSQL copies a CSV export with the listings column names. Boolean
// columns accept 1/0, true/false and Yes/No.
const importCSVSQL = `
	INSERT INTO listings
	SELECT
		CAST(name AS VARCHAR),
		CAST(city AS VARCHAR),
		CAST(cost_category AS VARCHAR),
		lower(CAST(online_order AS VARCHAR)) IN ('1', 'true', 't', 'yes', 'y'),
		lower(CAST(book_table AS VARCHAR)) IN ('1', 'true', 't', 'yes', 'y'),
		TRY_CAST(rate_clean AS DOUBLE),
		TRY_CAST(sentiment_score AS DOUBLE),
		TRY_CAST(votes AS BIGINT),
		CAST(cuisines AS VARCHAR),
		CAST(sentiment AS VARCHAR),
		TRY_CAST(approx_cost_for_two AS INTEGER)
	FROM read_csv_auto(%s, header = true)
	WHERE name IS NOT NULL`

// ImportCSV bulk loads a CSV export into an empty listings table and returns
// the number of rows loaded. A table that already holds rows is left unchanged.
func (db *DB) ImportCSV(ctx context.Context, path string) (int64, error) {
	if _, err := os.Stat(path); err != nil {
		return 0, fmt.Errorf("import csv: %w", err)
	}

	count, err := db.ListingCount(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		logging.Info().Int64("listings", count).Str("path", path).Msg("Listings already present, skipping CSV import")
		return 0, nil
	}

	var loaded int64
	err = db.run(ctx, "import_csv", func(ctx context.Context, conn *sql.DB) error {
		// read_csv_auto takes its file name as a literal, not a bound parameter.
		res, err := conn.ExecContext(ctx, fmt.Sprintf(importCSVSQL, quoteLiteral(path)))
		if err != nil {
			return fmt.Errorf("import csv %s: %w", path, err)
		}
		loaded, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}

	logging.Info().Int64("listings", loaded).Str("path", path).Msg("Imported listings from CSV")
	return loaded, nil
}

// quoteLiteral renders s as a single-quoted SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
