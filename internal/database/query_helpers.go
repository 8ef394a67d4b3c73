// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// queryRow executes a single-row query and scans into dest.
// sql.ErrNoRows leaves dest untouched.
func (db *DB) queryRow(ctx context.Context, operation, q string, args []interface{}, dest ...interface{}) error {
	return db.run(ctx, operation, func(ctx context.Context, conn *sql.DB) error {
		if err := conn.QueryRowContext(ctx, q, args...).Scan(dest...); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("scan row: %w", err)
		}
		return nil
	})
}

// queryAndScan executes q and calls scanner once per row.
func (db *DB) queryAndScan(ctx context.Context, operation, q string, args []interface{}, scanner func(*sql.Rows) error) error {
	return db.run(ctx, operation, func(ctx context.Context, conn *sql.DB) error {
		rows, err := conn.QueryContext(ctx, q, args...)
		if err != nil {
			return fmt.Errorf("query: %w", err)
		}
		defer closeWithLog(rows, "rows")

		for rows.Next() {
			if err := scanner(rows); err != nil {
				return fmt.Errorf("scan row: %w", err)
			}
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("rows iteration: %w", err)
		}
		return nil
	})
}

// nullFloat returns the value of n, or 0 when NULL.
func nullFloat(n sql.NullFloat64) float64 {
	if n.Valid {
		return n.Float64
	}
	return 0
}
