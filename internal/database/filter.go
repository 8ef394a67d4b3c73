// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/tastelens/internal/database/query"
)

// OnlineOrderFilter is the tri-state online ordering selection.
type OnlineOrderFilter string

const (
	OnlineOrderAny OnlineOrderFilter = "any"
	OnlineOrderYes OnlineOrderFilter = "yes"
	OnlineOrderNo  OnlineOrderFilter = "no"
)

// OnlineOrderChoices lists the values offered by the dashboard selector.
var OnlineOrderChoices = []OnlineOrderFilter{OnlineOrderAny, OnlineOrderYes, OnlineOrderNo}

// ErrInvalidOnlineOrder is returned by ParseOnlineOrder for unrecognized input.
var ErrInvalidOnlineOrder = errors.New("invalid online_order value")

// ParseOnlineOrder accepts any/all/"" (any), yes/true/1 (yes) and no/false/0 (no),
// case-insensitively.
func ParseOnlineOrder(s string) (OnlineOrderFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any", "all":
		return OnlineOrderAny, nil
	case "yes", "true", "1":
		return OnlineOrderYes, nil
	case "no", "false", "0":
		return OnlineOrderNo, nil
	default:
		return OnlineOrderAny, fmt.Errorf("%w: %q", ErrInvalidOnlineOrder, s)
	}
}

// Bool returns nil for any, otherwise a pointer to the required column value.
func (o OnlineOrderFilter) Bool() *bool {
	var v bool
	switch o {
	case OnlineOrderYes:
		v = true
	case OnlineOrderNo:
		v = false
	default:
		return nil
	}
	return &v
}

// ListingFilter is the set of dashboard selections applied to every catalog query.
// Empty slices and OnlineOrderAny leave the corresponding column unconstrained.
type ListingFilter struct {
	Cities         []string
	CostCategories []string
	OnlineOrder    OnlineOrderFilter
}

// Where returns the parameterized predicate for f and its bound arguments.
// With no selections it returns "1=1" and no arguments.
func (f ListingFilter) Where() (string, []interface{}) {
	return f.builder().Build()
}

func (f ListingFilter) builder() *query.WhereBuilder {
	return query.NewWhereBuilder().
		AddCities(f.Cities).
		AddCostCategories(f.CostCategories).
		AddOnlineOrder(f.OnlineOrder.Bool())
}

// whereWith returns the filter predicate combined with fixed, code-owned conditions.
func (f ListingFilter) whereWith(conditions ...string) (string, []interface{}) {
	wb := f.builder()
	for _, c := range conditions {
		wb.AddClause(c)
	}
	return wb.Build()
}

// IsEmpty reports whether the filter selects every row.
func (f ListingFilter) IsEmpty() bool {
	return f.builder().IsEmpty()
}
