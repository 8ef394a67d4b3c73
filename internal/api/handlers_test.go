// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"github.com/tomtom215/tastelens/internal/database"
	"github.com/tomtom215/tastelens/internal/logging"
	"github.com/tomtom215/tastelens/internal/models"
)

func TestRoutes_CatalogEndpoints(t *testing.T) {
	handler, _, _ := setupTestServer(t)

	paths := []string{
		"/api/v1/filters",
		"/api/v1/overview/kpis",
		"/api/v1/overview/sentiment",
		"/api/v1/overview/top-trusted",
		"/api/v1/overview/trust-risk",
		"/api/v1/overview/hidden-gems",
		"/api/v1/overview/best-experience",
		"/api/v1/overview/cost",
		"/api/v1/overview/cities",
		"/api/v1/risk/trust-risk",
		"/api/v1/risk/undervalued",
		"/api/v1/risk/unstable",
		"/api/v1/risk/experience",
		"/api/v1/operations/online-order",
		"/api/v1/operations/table-booking",
		"/api/v1/operations/cost-efficiency",
		"/api/v1/operations/review-volume",
		"/api/v1/operations/price-points",
		"/api/v1/market/cities",
		"/api/v1/market/cuisines",
		"/api/v1/market/cuisine-demand",
		"/api/v1/market/niches",
		"/api/v1/market/overcrowded",
		"/api/v1/market/expansion",
		"/api/v1/trust/trust-risk",
		"/api/v1/trust/underrated",
		"/api/v1/trust/volatility",
		"/api/v1/trust/experience",
		"/api/v1/trust/trust-gap",
		"/api/v1/trust/risk-flags",
		"/api/v1/crosstab/cuisine",
		"/api/v1/health",
		"/api/v1/health/live",
		"/api/v1/health/ready",
		"/api/v1/performance",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			rec, env := doGet(t, handler, path)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			if env.Status != "success" || env.Error != nil {
				t.Errorf("envelope = %+v", env)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}
			if rec.Header().Get("X-Request-ID") == "" {
				t.Error("X-Request-ID header missing")
			}
		})
	}
}

func TestOverviewKPIs_Filters(t *testing.T) {
	handler, _, _ := setupTestServer(t)

	tests := []struct {
		name        string
		query       string
		restaurants int64
		records     int64
	}{
		{name: "all listings", query: "", restaurants: 5, records: 19},
		{name: "one city", query: "?city=Koramangala", restaurants: 2, records: 9},
		{name: "comma separated cities", query: "?city=BTM,Indiranagar", restaurants: 3, records: 10},
		{name: "repeated cities", query: "?city=BTM&city=Indiranagar", restaurants: 3, records: 10},
		{name: "cost category", query: "?cost_category=Budget", restaurants: 2, records: 9},
		{name: "online order alias", query: "?online_order=true", restaurants: 3, records: 13},
		{name: "dine-in only", query: "?online_order=no", restaurants: 2, records: 6},
		{name: "unknown city", query: "?city=Atlantis", restaurants: 0, records: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := doGet(t, handler, "/api/v1/overview/kpis"+tt.query)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			kpis := decodeData[models.HeadlineKPIs](t, env)
			if kpis.Restaurants != tt.restaurants || kpis.Records != tt.records {
				t.Errorf("restaurants/records = %d/%d, want %d/%d", kpis.Restaurants, kpis.Records, tt.restaurants, tt.records)
			}
			if tt.records == 0 && kpis.AvgRating != nil {
				t.Errorf("AvgRating = %v, want null for an empty selection", *kpis.AvgRating)
			}
		})
	}
}

func TestRankingEndpoints(t *testing.T) {
	handler, _, _ := setupTestServer(t)

	tests := []struct {
		name string
		path string
		want []string
	}{
		{name: "trust risk excludes small restaurants by default", path: "/api/v1/trust/trust-risk", want: []string{}},
		{name: "trust risk with min_reviews", path: "/api/v1/trust/trust-risk?min_reviews=4", want: []string{"Cafe X"}},
		{name: "top trusted", path: "/api/v1/overview/top-trusted?min_reviews=4", want: []string{"Trusted Grill"}},
		{name: "hidden gems", path: "/api/v1/overview/hidden-gems?min_reviews=4", want: []string{"Hidden Dosa"}},
		{
			name: "best experience capped by top_n",
			path: "/api/v1/overview/best-experience?min_reviews=1&top_n=2",
			want: []string{"Trusted Grill", "Cafe X"},
		},
		{
			name: "trust gap uncapped",
			path: "/api/v1/trust/trust-gap?min_reviews=1",
			want: []string{"Cafe X", "Trusted Grill", "Solo Snack", "Wobbly Wok", "Hidden Dosa"},
		},
		{
			name: "risk flags city scoped",
			path: "/api/v1/trust/risk-flags?min_reviews=1&city=BTM",
			want: []string{"Hidden Dosa", "Wobbly Wok"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := doGet(t, handler, tt.path)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			rows := decodeData[[]models.CohortRow](t, env)
			if got := names(rows); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("names = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrustRiskFlags_Labels(t *testing.T) {
	handler, _, _ := setupTestServer(t)

	_, env := doGet(t, handler, "/api/v1/trust/risk-flags?min_reviews=4")
	rows := decodeData[[]models.CohortRow](t, env)

	want := map[string]string{
		"Hidden Dosa":   "NORMAL",
		"Trusted Grill": "NORMAL",
		"Cafe X":        "HIGH RISK",
		"Wobbly Wok":    "UNSTABLE",
	}
	if len(rows) != len(want) {
		t.Fatalf("got %v, want %d rows", names(rows), len(want))
	}
	for _, row := range rows {
		if row.Flag != want[row.Name] {
			t.Errorf("%s flag = %q, want %q", row.Name, row.Flag, want[row.Name])
		}
	}
}

func TestCrossTab(t *testing.T) {
	handler, _, _ := setupTestServer(t)

	rec, env := doGet(t, handler, "/api/v1/crosstab/city?min_restaurants=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	rows := decodeData[[]models.CrossTabRow](t, env)
	want := []models.CrossTabRow{
		{Group: "BTM", AvgSentiment: 0.222, AvgRating: 3.54, Restaurants: 2, Records: 9},
		{Group: "Koramangala", AvgSentiment: 0.167, AvgRating: 4.4, Restaurants: 2, Records: 9},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %+v, want %+v", rows, want)
	}

	_, env = doGet(t, handler, "/api/v1/crosstab/city?city=Koramangala")
	rows = decodeData[[]models.CrossTabRow](t, env)
	if len(rows) != 1 || rows[0].Restaurants != 2 {
		t.Errorf("city scoped cross-tab = %+v", rows)
	}
}

func TestValidationErrors(t *testing.T) {
	handler, _, _ := setupTestServer(t)

	tests := []struct {
		name  string
		path  string
		field string
	}{
		{name: "bad online order", path: "/api/v1/overview/kpis?online_order=maybe", field: "online_order"},
		{name: "top_n zero", path: "/api/v1/overview/top-trusted?top_n=0", field: "top_n"},
		{name: "top_n too large", path: "/api/v1/overview/top-trusted?top_n=101", field: "top_n"},
		{name: "top_n not a number", path: "/api/v1/overview/top-trusted?top_n=ten", field: "top_n"},
		{name: "min_reviews negative", path: "/api/v1/trust/trust-gap?min_reviews=-1", field: "min_reviews"},
		{name: "control character", path: "/api/v1/overview/kpis?city=BTM%00", field: "city[0]"},
		{name: "unknown dimension", path: "/api/v1/crosstab/planet", field: "dimension"},
		{name: "negative min_records", path: "/api/v1/crosstab/city?min_records=-5", field: "min_records"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := doGet(t, handler, tt.path)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400, body = %s", rec.Code, rec.Body.String())
			}
			if env.Status != "error" || env.Error == nil || env.Error.Code != CodeValidation {
				t.Fatalf("envelope = %+v", env)
			}
			if env.Error.Details["field"] != tt.field {
				t.Errorf("details = %v, want field %q", env.Error.Details, tt.field)
			}
		})
	}
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	handler, _, _ := setupTestServer(t)

	rec, env := doGet(t, handler, "/api/v1/nope")
	if rec.Code != http.StatusNotFound || env.Error == nil || env.Error.Code != CodeNotFound {
		t.Errorf("GET /api/v1/nope = %d %+v", rec.Code, env.Error)
	}
	if id := rec.Header().Get("X-Request-ID"); id == "" || env.Metadata.RequestID != id {
		t.Errorf("metadata request_id = %q, header = %q", env.Metadata.RequestID, id)
	}
}

func TestIdempotentResponses(t *testing.T) {
	handler, _, _ := setupTestServer(t)

	for _, path := range []string{"/api/v1/trust/risk-flags?min_reviews=1", "/api/v1/market/cuisines", "/api/v1/overview/kpis?city=BTM"} {
		recA, a := doGet(t, handler, path)
		recB, b := doGet(t, handler, path)
		if string(a.Data) != string(b.Data) {
			t.Errorf("%s: responses differ: %s vs %s", path, a.Data, b.Data)
		}
		if etag := recA.Header().Get("ETag"); etag == "" {
			t.Errorf("%s: missing ETag", path)
		}
		if cc := recB.Header().Get("Cache-Control"); !strings.Contains(cc, "no-cache") {
			t.Errorf("%s: Cache-Control = %q, want no-cache", path, cc)
		}
	}
}

func TestClosedStoreReturnsServiceUnavailable(t *testing.T) {
	handler, _, db := setupTestServer(t)
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	rec, env := doGet(t, handler, "/api/v1/overview/kpis")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if env.Error == nil || env.Error.Code != CodeServiceUnavailable {
		t.Errorf("error = %+v", env.Error)
	}

	rec, env = doGet(t, handler, "/api/v1/health")
	health := decodeData[models.HealthStatus](t, env)
	if rec.Code != http.StatusOK || health.Status != "degraded" || health.StoreOpen {
		t.Errorf("health = %d %+v", rec.Code, health)
	}

	rec, _ = doGet(t, handler, "/api/v1/health/ready")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("ready status = %d, want 503", rec.Code)
	}
}

// failingCatalog fails headline KPI queries with a fixed error.
type failingCatalog struct {
	*database.DB
	err error
}

func (f *failingCatalog) HeadlineKPIs(context.Context, database.ListingFilter) (*models.HeadlineKPIs, error) {
	return nil, f.err
}

func TestStoreErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "query failure", err: errors.New("binder error"), status: http.StatusInternalServerError, code: CodeDatabase},
		{name: "breaker open", err: database.ErrStoreUnavailable, status: http.StatusServiceUnavailable, code: CodeServiceUnavailable},
		{name: "closed", err: database.ErrClosed, status: http.StatusServiceUnavailable, code: CodeServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := &failingCatalog{DB: setupTestDB(t), err: tt.err}
			handler := NewRouter(NewHandler(cat, testConfig()), nil).SetupChi()

			rec, env := doGet(t, handler, "/api/v1/overview/kpis")
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if env.Error == nil || env.Error.Code != tt.code {
				t.Errorf("error = %+v, want code %s", env.Error, tt.code)
			}
			if env.Error != nil && env.Error.Message == tt.err.Error() {
				t.Error("store error text must not leak to clients")
			}
		})
	}
}

func TestHealth(t *testing.T) {
	handler, _, _ := setupTestServer(t)

	rec, env := doGet(t, handler, "/api/v1/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	health := decodeData[models.HealthStatus](t, env)
	if health.Status != "healthy" || !health.StoreReady || !health.StoreOpen {
		t.Errorf("health = %+v", health)
	}
	if health.Listings != 19 || health.BreakerState != "closed" {
		t.Errorf("listings/breaker = %d/%s, want 19/closed", health.Listings, health.BreakerState)
	}
	if cc := rec.Header().Get("Cache-Control"); !strings.Contains(cc, "no-cache") {
		t.Errorf("health Cache-Control = %q, want no-cache headers", cc)
	}
}

func TestHealth_NoStore(t *testing.T) {
	handler := NewRouter(NewHandler(nil, testConfig()), nil).SetupChi()

	_, env := doGet(t, handler, "/api/v1/health")
	health := decodeData[models.HealthStatus](t, env)
	if health.Status != "degraded" || health.BreakerState != "unknown" {
		t.Errorf("health = %+v", health)
	}

	rec, env := doGet(t, handler, "/api/v1/overview/kpis")
	if rec.Code != http.StatusServiceUnavailable || env.Error.Code != CodeServiceUnavailable {
		t.Errorf("kpis without store = %d %+v", rec.Code, env.Error)
	}
}

func TestPerformance(t *testing.T) {
	handler, _, _ := setupTestServer(t)

	doGet(t, handler, "/api/v1/overview/kpis")
	doGet(t, handler, "/api/v1/overview/kpis")

	_, env := doGet(t, handler, "/api/v1/performance")
	report := decodeData[PerformanceReport](t, env)

	var found bool
	for _, ep := range report.Endpoints {
		if ep.Endpoint == "GET /api/v1/overview/kpis" {
			found = true
			if ep.RequestCount != 2 {
				t.Errorf("RequestCount = %d, want 2", ep.RequestCount)
			}
		}
	}
	if !found {
		t.Errorf("endpoints = %+v, want the kpis route", report.Endpoints)
	}
	if report.Slowest == nil || report.Slowest.Endpoint != "GET /api/v1/overview/kpis" {
		t.Errorf("slowest = %+v, want the kpis route", report.Slowest)
	}
	if len(report.Recent) != 2 {
		t.Fatalf("recent = %+v, want the two kpis requests", report.Recent)
	}
	for _, m := range report.Recent {
		if m.Route != "/api/v1/overview/kpis" || m.Method != http.MethodGet || m.StatusCode != http.StatusOK {
			t.Errorf("recent entry = %+v", m)
		}
	}
}

func TestExecute_LogsSanitizedFilter(t *testing.T) {
	handler, _, _ := setupTestServer(t)

	var buf bytes.Buffer
	logging.Init(logging.Config{Level: "debug", Output: &buf})
	t.Cleanup(func() { logging.Init(logging.DefaultConfig()) })

	cities := make([]string, 25)
	for i := range cities {
		cities[i] = fmt.Sprintf("city%02d", i)
	}
	rec, _ := doGet(t, handler, "/api/v1/overview/kpis?city="+strings.Join(cities, ","))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	out := buf.String()
	if !strings.Contains(out, "Catalog filter parsed") {
		t.Fatalf("filter log missing: %s", out)
	}
	if !strings.Contains(out, `"filtered":true`) {
		t.Errorf("filtered flag missing: %s", out)
	}
	// The logged list is capped at 20 values.
	if !strings.Contains(out, `"city19"`) || strings.Contains(out, `"city20"`) {
		t.Errorf("logged cities not capped at 20: %s", out)
	}
}
