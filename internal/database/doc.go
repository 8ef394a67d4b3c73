// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

/*
Package database implements the store and the aggregate query catalog over
the DuckDB listings table.

# Store

DB owns a single database/sql handle that is opened on first use, reused for
the lifetime of the process and released by Close:

	db, err := database.New(&cfg.Database,
	    database.WithThresholds(cfg.Analytics),
	    database.WithBreaker(cfg.Store))
	defer db.Close()

Every call goes through a gobreaker circuit breaker. Repeated connectivity
failures open it and later calls fail fast with ErrStoreUnavailable. Calls
after Close fail with ErrClosed. Contexts without a deadline get 30 seconds.

# Filters

ListingFilter carries the dashboard selections (cities, cost categories,
online ordering). Its predicate is built with query.WhereBuilder and every
value is bound as a parameter. Unknown values simply match nothing.

# Catalog

  - HeadlineKPIs, SentimentDistribution, FilterOptions
  - CrossTab over a whitelisted Dimension, plus named cross-tabs
    (CostVsSentiment, CitySentiment, OnlineVsDineIn, ...)
  - Cohorts: the per-restaurant reducer behind TopTrusted, TrustRisk,
    HiddenGems, Undervalued, UnderratedGems, BestExperience,
    SentimentVolatility, TrustGapRanking and RiskFlags
  - ExpansionOpportunities, CityCuisineOpportunities, CuisineDemand,
    OvercrowdedCuisines

Thresholds are compared against full-precision aggregates; results are
rounded for display afterwards. Grouped queries return an empty, non-nil
slice when nothing matches.
*/
package database
