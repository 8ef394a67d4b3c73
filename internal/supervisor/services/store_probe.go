// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

package services

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/tastelens/internal/logging"
	"github.com/tomtom215/tastelens/internal/metrics"
)

const (
	// DefaultProbeInterval is used when NewStoreProbeService gets a non-positive interval.
	DefaultProbeInterval = 30 * time.Second

	// failureLogInterval limits repeated "store probe failed" warnings.
	failureLogInterval = time.Minute
)

// Pinger is the part of the listings store the probe needs.
// Satisfied by *database.DB.
type Pinger interface {
	Ping(ctx context.Context) error
	BreakerState() string
}

// StoreProbeService pings the store on a fixed interval and publishes the
// result as the tastelens_store_up gauge. Failures never stop the service;
// they are counted and logged at most once per minute.
type StoreProbeService struct {
	store    Pinger
	interval time.Duration
	timeout  time.Duration

	failureLog rate.Sometimes
	healthy    bool
	probed     bool
}

// NewStoreProbeService creates a probe for store. Each ping is bounded by
// half the interval.
func NewStoreProbeService(store Pinger, interval time.Duration) *StoreProbeService {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	return &StoreProbeService{
		store:      store,
		interval:   interval,
		timeout:    interval / 2,
		failureLog: rate.Sometimes{First: 1, Interval: failureLogInterval},
	}
}

// Serve implements suture.Service. The first probe runs immediately.
func (s *StoreProbeService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.probe(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.probe(ctx)
		}
	}
}

// probe runs one ping and records the outcome. It reports whether the store answered.
func (s *StoreProbeService) probe(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.store.Ping(pingCtx)
	if ctx.Err() != nil {
		// Shutdown interrupted the ping; nothing was learned about the store.
		return false
	}
	metrics.SetStoreUp(err == nil)

	if err != nil {
		s.failureLog.Do(func() {
			logging.Warn().
				Err(err).
				Str("breaker", s.store.BreakerState()).
				Msg("Store probe failed")
		})
	} else if s.probed && !s.healthy {
		logging.Info().Msg("Store probe recovered")
	}

	s.probed = true
	s.healthy = err == nil
	return s.healthy
}

// String names the service in supervisor events.
func (s *StoreProbeService) String() string {
	return "store-probe"
}
