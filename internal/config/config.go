// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/tastelens/internal/cohort"
)

// Config holds all application configuration.
type Config struct {
	Database  DatabaseConfig    `koanf:"database"`
	Server    ServerConfig      `koanf:"server"`
	Security  SecurityConfig    `koanf:"security"`
	Logging   LoggingConfig     `koanf:"logging"`
	Analytics cohort.Thresholds `koanf:"analytics"`
	Store     StoreConfig       `koanf:"store"`
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	Path                   string `koanf:"path"`
	MaxMemory              string `koanf:"max_memory"`
	Threads                int    `koanf:"threads"`                  // Number of DuckDB threads (0 = use NumCPU)
	MaxOpenConns           int    `koanf:"max_open_conns"`           // Connections kept by database/sql (default 1)
	PreserveInsertionOrder bool   `koanf:"preserve_insertion_order"` // DuckDB default is true
	ReadOnly               bool   `koanf:"read_only"`                // Open an existing file without schema changes
	SeedMockData           bool   `koanf:"seed_mock_data"`           // Fill an empty listings table with demo rows
	ImportCSV              string `koanf:"import_csv"`               // CSV export loaded into an empty listings table
	SkipIndexes            bool   `koanf:"skip_indexes"`             // Skip index creation (fast test setup)
}

// IsInMemory reports whether the database lives only in process memory.
func (d *DatabaseConfig) IsInMemory() bool {
	return d.Path == "" || d.Path == ":memory:"
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // "development", "staging" or "production"
}

// Addr returns the listen address for http.Server.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds CORS and rate limiting settings.
// The dashboard is read-only and unauthenticated; access control lives in front of it.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds zerolog settings.
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// StoreConfig tunes the store circuit breaker and the background health probe.
type StoreConfig struct {
	// BreakerFailures is the number of consecutive connection failures that opens the breaker.
	BreakerFailures uint32 `koanf:"breaker_failures"`

	// BreakerTimeout is how long the breaker stays open before probing again.
	BreakerTimeout time.Duration `koanf:"breaker_timeout"`

	// ProbeInterval is the period of the background store ping. 0 disables the probe.
	ProbeInterval time.Duration `koanf:"probe_interval"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load loads configuration from defaults, an optional config file and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
