// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

/*
Package models defines the data structures shared by the store and the HTTP API.

  - Listing: one row of the listings table
  - HeadlineKPIs, CategoryCount, CrossTabRow: overview and cross-tab results
  - CohortRow: per-restaurant ranking rows with derived scores and risk flag
  - CityOpportunity, NicheOpportunity, CuisineDemand: market queries
  - FilterOptions: selector values for the dashboard
  - APIResponse, APIError, Metadata: the JSON envelope

All float fields in result rows are display-rounded: two decimals on the
rating scale and three on the sentiment scale.
*/
package models
