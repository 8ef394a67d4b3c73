// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

package query

import (
	"strings"
)

// Column names used by the listing filters.
const (
	ColumnCity         = "city"
	ColumnCostCategory = "cost_category"
	ColumnOnlineOrder  = "online_order"
)

// WhereBuilder constructs SQL WHERE clauses with parameterized arguments.
// Values are always bound as ? placeholders and never concatenated into SQL.
//
//	wb := query.NewWhereBuilder()
//	wb.AddCities([]string{"BTM", "Indiranagar"})
//	wb.AddOnlineOrder(&yes)
//	whereClause, args := wb.Build()
//	// city IN (?, ?) AND online_order = ?
type WhereBuilder struct {
	clauses []string
	args    []interface{}
}

// NewWhereBuilder creates a new WhereBuilder instance.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{
		clauses: []string{},
		args:    []interface{}{},
	}
}

// AddClause adds a raw condition with its arguments.
// The clause text must come from code, never from user input.
func (wb *WhereBuilder) AddClause(clause string, args ...interface{}) *WhereBuilder {
	wb.clauses = append(wb.clauses, clause)
	wb.args = append(wb.args, args...)
	return wb
}

// AddIn adds "column IN (?, ...)" for the distinct non-blank values.
// Nothing is added when no usable value remains, so an empty selection means "all".
func (wb *WhereBuilder) AddIn(column string, values []string) *WhereBuilder {
	distinct := Distinct(values)
	if len(distinct) == 0 {
		return wb
	}

	placeholders := make([]string, len(distinct))
	for i, v := range distinct {
		placeholders[i] = "?"
		wb.args = append(wb.args, v)
	}
	wb.clauses = append(wb.clauses, column+" IN ("+strings.Join(placeholders, ", ")+")")
	return wb
}

// AddCities restricts rows to the given cities.
func (wb *WhereBuilder) AddCities(cities []string) *WhereBuilder {
	return wb.AddIn(ColumnCity, cities)
}

// AddCostCategories restricts rows to the given cost buckets.
func (wb *WhereBuilder) AddCostCategories(categories []string) *WhereBuilder {
	return wb.AddIn(ColumnCostCategory, categories)
}

// AddOnlineOrder adds "online_order = ?". A nil value leaves the column unconstrained.
func (wb *WhereBuilder) AddOnlineOrder(online *bool) *WhereBuilder {
	if online == nil {
		return wb
	}
	return wb.AddClause(ColumnOnlineOrder+" = ?", *online)
}

// Build joins the clauses with AND. Returns ("1=1", []) if no clauses were added.
//
//	whereClause, args := wb.Build()
//	q := fmt.Sprintf("SELECT COUNT(*) FROM listings WHERE %s", whereClause)
//	db.QueryContext(ctx, q, args...)
func (wb *WhereBuilder) Build() (string, []interface{}) {
	if wb.IsEmpty() {
		return "1=1", []interface{}{}
	}
	return strings.Join(wb.clauses, " AND "), wb.args
}

// IsEmpty returns true if no clauses have been added.
func (wb *WhereBuilder) IsEmpty() bool {
	return len(wb.clauses) == 0
}

// Distinct trims values, drops blanks and duplicates, and keeps first-seen order.
func Distinct(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
