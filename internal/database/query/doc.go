// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

// Package query builds parameterized SQL predicates for the listings table.
//
// The WhereBuilder collects conditions and their bound arguments; every
// user-selected value travels as a ? parameter:
//
//	wb := query.NewWhereBuilder()
//	wb.AddCities([]string{"BTM"})
//	wb.AddCostCategories([]string{"Budget", "Mid-range"})
//	whereClause, args := wb.Build()
//	// Result: "city IN (?) AND cost_category IN (?, ?)"
//	// Args:   ["BTM", "Budget", "Mid-range"]
//
// An empty builder yields the tautology "1=1", so callers can always write
// "WHERE " + clause.
package query
