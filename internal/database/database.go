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
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/tastelens/internal/cohort"
	"github.com/tomtom215/tastelens/internal/config"
	"github.com/tomtom215/tastelens/internal/logging"
	"github.com/tomtom215/tastelens/internal/metrics"
)

// listingsTable is the label used for query metrics.
const listingsTable = "listings"

var (
	// ErrClosed is returned by every query issued after Close.
	ErrClosed = errors.New("database: store is closed")

	// ErrStoreUnavailable is returned while the circuit breaker is open.
	ErrStoreUnavailable = errors.New("database: store unavailable")
)

// DB owns the DuckDB handle behind the query catalog.
//
// The handle is opened lazily on first use, reused for the lifetime of the
// process and released by Close. All methods are safe for concurrent use.
type DB struct {
	cfg        *config.DatabaseConfig
	thresholds cohort.Thresholds
	breaker    *gobreaker.CircuitBreaker[interface{}]

	mu     sync.Mutex
	conn   *sql.DB
	closed bool
}

// Option customizes a DB created by New.
type Option func(*DB)

// WithThresholds sets the analytics thresholds used by the catalog presets.
func WithThresholds(t cohort.Thresholds) Option {
	return func(db *DB) {
		db.thresholds = t
	}
}

// WithBreaker configures the store circuit breaker.
func WithBreaker(cfg config.StoreConfig) Option {
	return func(db *DB) {
		db.breaker = newStoreBreaker(cfg)
	}
}

// New creates a store for cfg. No connection is made until the first query.
func New(cfg *config.DatabaseConfig, opts ...Option) (*DB, error) {
	if cfg == nil {
		return nil, errors.New("database: nil config")
	}

	db := &DB{
		cfg:        cfg,
		thresholds: cohort.Default(),
	}
	for _, opt := range opts {
		opt(db)
	}
	if db.breaker == nil {
		db.breaker = newStoreBreaker(config.StoreConfig{
			BreakerFailures: defaultBreakerFailures,
			BreakerTimeout:  defaultBreakerTimeout,
		})
	}
	if err := db.thresholds.Validate(); err != nil {
		return nil, err
	}
	return db, nil
}

// Thresholds returns the thresholds used by the catalog presets.
func (db *DB) Thresholds() cohort.Thresholds {
	return db.thresholds
}

// handle returns the open connection pool, opening it on first use.
func (db *DB) handle(ctx context.Context) (*sql.DB, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return nil, ErrClosed
	}
	if db.conn != nil {
		return db.conn, nil
	}

	conn, err := db.open(ctx)
	if err != nil {
		return nil, &openError{err: err}
	}
	db.conn = conn
	metrics.SetStoreOpen(true)
	return conn, nil
}

// open connects to DuckDB and prepares the schema (must be called with mu held).
func (db *DB) open(ctx context.Context) (*sql.DB, error) {
	if !db.cfg.IsInMemory() && !db.cfg.ReadOnly {
		dbDir := filepath.Dir(db.cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	conn, err := sql.Open("duckdb", db.connString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	maxConns := db.cfg.MaxOpenConns
	if maxConns < 1 {
		maxConns = 1
	}
	conn.SetMaxOpenConns(maxConns)
	conn.SetMaxIdleConns(maxConns)
	conn.SetConnMaxIdleTime(0)
	conn.SetConnMaxLifetime(0)

	if err := conn.PingContext(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if !db.cfg.ReadOnly {
		if err := createSchema(ctx, conn, !db.cfg.SkipIndexes); err != nil {
			closeQuietly(conn)
			return nil, err
		}
	}

	logging.Info().
		Str("path", db.cfg.Path).
		Int("max_open_conns", maxConns).
		Bool("read_only", db.cfg.ReadOnly).
		Msg("DuckDB store opened")
	return conn, nil
}

// connString builds the DuckDB DSN with tuning options.
func (db *DB) connString() string {
	threads := db.cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	accessMode := "read_write"
	if db.cfg.ReadOnly {
		accessMode = "read_only"
	}

	preserveOrder := "true"
	if !db.cfg.PreserveInsertionOrder {
		preserveOrder = "false"
	}

	path := db.cfg.Path
	if path == ":memory:" {
		path = ""
	}

	dsn := fmt.Sprintf("%s?access_mode=%s&threads=%d&preserve_insertion_order=%s",
		path, accessMode, threads, preserveOrder)
	if db.cfg.MaxMemory != "" {
		dsn += "&max_memory=" + db.cfg.MaxMemory
	}
	return dsn
}

// IsOpen reports whether the handle has been opened and not yet closed.
func (db *DB) IsOpen() bool {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.conn != nil && !db.closed
}

// Close releases the handle. File databases are checkpointed first.
// Close is idempotent; queries issued afterwards fail with ErrClosed.
func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return nil
	}
	db.closed = true

	if db.conn == nil {
		return nil
	}
	conn := db.conn
	db.conn = nil
	metrics.SetStoreOpen(false)

	if !db.cfg.IsInMemory() && !db.cfg.ReadOnly {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if _, err := conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
			logging.Warn().Err(err).Msg("Checkpoint before close failed")
		}
		cancel()
	}

	if err := conn.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	logging.Info().Str("path", db.cfg.Path).Msg("DuckDB store closed")
	return nil
}

// Ping opens the store if needed and verifies the connection.
func (db *DB) Ping(ctx context.Context) error {
	return db.run(ctx, "ping", func(ctx context.Context, conn *sql.DB) error {
		return conn.PingContext(ctx)
	})
}

// ListingCount returns the number of rows in the listings table.
func (db *DB) ListingCount(ctx context.Context) (int64, error) {
	var n int64
	err := db.run(ctx, "listing_count", func(ctx context.Context, conn *sql.DB) error {
		return conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM listings").Scan(&n)
	})
	return n, err
}

// run executes fn against the open handle through the circuit breaker and
// records query metrics under operation.
func (db *DB) run(ctx context.Context, operation string, fn func(context.Context, *sql.DB) error) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	_, err := db.breaker.Execute(func() (interface{}, error) {
		conn, err := db.handle(ctx)
		if err != nil {
			return nil, err
		}
		return nil, fn(ctx, conn)
	})
	err = db.translateBreakerError(err)
	metrics.RecordDBQuery(operation, listingsTable, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	return nil
}

// ensureContext applies a 30-second timeout when ctx has no deadline.
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), 30*time.Second)
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, 30*time.Second)
	}
	return ctx, func() {}
}
