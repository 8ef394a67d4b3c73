// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

package database

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/tastelens/internal/config"
	"github.com/tomtom215/tastelens/internal/logging"
	"github.com/tomtom215/tastelens/internal/metrics"
)

const (
	breakerName            = "duckdb-store"
	defaultBreakerFailures = 5
	defaultBreakerTimeout  = 30 * time.Second
)

// openError marks a failure to open the store. Only connectivity failures
// count against the circuit breaker; bad SQL or empty results never do.
type openError struct {
	err error
}

func (e *openError) Error() string { return e.err.Error() }
func (e *openError) Unwrap() error { return e.err }

// isConnectionError reports whether err means the store could not be reached.
func isConnectionError(err error) bool {
	var oe *openError
	return errors.As(err, &oe) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone)
}

// newStoreBreaker builds the circuit breaker that guards every store call.
// It opens after cfg.BreakerFailures consecutive connectivity failures and
// probes again after cfg.BreakerTimeout.
func newStoreBreaker(cfg config.StoreConfig) *gobreaker.CircuitBreaker[interface{}] {
	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = defaultBreakerFailures
	}
	timeout := cfg.BreakerTimeout
	if timeout <= 0 {
		timeout = defaultBreakerTimeout
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(breakerName).Set(0)

	return gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(breakerName).Set(float64(counts.ConsecutiveFailures))
			shouldTrip := counts.ConsecutiveFailures >= failures
			if shouldTrip {
				log := logging.WithComponent("store-breaker")
				log.Warn().Uint32("consecutive_failures", counts.ConsecutiveFailures).Msg("[CIRCUIT BREAKER] Opening store circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			log := logging.WithComponent("store-breaker")
			log.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},

		IsSuccessful: func(err error) bool {
			return err == nil || !isConnectionError(err)
		},
	})
}

// translateBreakerError maps breaker rejections to ErrStoreUnavailable and
// updates the request counters.
func (db *DB) translateBreakerError(err error) error {
	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
		return nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	case isConnectionError(err):
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
		return err
	}
}

// BreakerState returns the store circuit breaker state: closed, half-open or open.
func (db *DB) BreakerState() string {
	return stateToString(db.breaker.State())
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
