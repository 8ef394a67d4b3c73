// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

package database

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/tomtom215/tastelens/internal/cohort"
	"github.com/tomtom215/tastelens/internal/config"
)

// smallMarket scales the market thresholds down to the fixture data.
func smallMarket() cohort.Thresholds {
	t := cohort.Default()
	t.ExpansionMinRestaurants = 1
	t.ExpansionMaxRestaurants = 2
	t.ExpansionMinSentiment = 0.05
	t.NicheMinRecords = 4
	t.NicheMaxRecords = 5
	t.NicheMinSentiment = 0.3
	t.CuisineDemandMin = 5
	t.OvercrowdedMinRecords = 4
	return t
}

func TestExpansionOpportunities(t *testing.T) {
	db := setupFixtureDB(t, WithThresholds(smallMarket()))

	got, err := db.ExpansionOpportunities(context.Background(), ListingFilter{})
	if err != nil {
		t.Fatalf("ExpansionOpportunities() error = %v", err)
	}
	var cities []string
	for _, o := range got {
		cities = append(cities, o.City)
	}
	want := []string{"BTM", "Koramangala", "Indiranagar"}
	if !reflect.DeepEqual(cities, want) {
		t.Errorf("cities = %v, want %v", cities, want)
	}
	if got[0].Restaurants != 2 || got[0].AvgSentiment != 0.222 {
		t.Errorf("BTM = %+v", got[0])
	}
}

func TestExpansionOpportunities_DefaultsExcludeSmallMarkets(t *testing.T) {
	db := setupFixtureDB(t)

	got, err := db.ExpansionOpportunities(context.Background(), ListingFilter{})
	if err != nil {
		t.Fatalf("ExpansionOpportunities() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("ExpansionOpportunities() = %#v, want empty non-nil slice", got)
	}
}

func TestCityCuisineOpportunities(t *testing.T) {
	db := setupFixtureDB(t, WithThresholds(smallMarket()))

	got, err := db.CityCuisineOpportunities(context.Background(), ListingFilter{})
	if err != nil {
		t.Fatalf("CityCuisineOpportunities() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("CityCuisineOpportunities() = %+v, want 2 niches", got)
	}
	if got[0].City != "Koramangala" || got[0].Cuisine != "North Indian" || got[0].AvgSentiment != 0.5 {
		t.Errorf("first niche = %+v", got[0])
	}
	if got[1].City != "BTM" || got[1].Cuisine != "South Indian" || got[1].Records != 5 {
		t.Errorf("second niche = %+v", got[1])
	}
}

func TestCuisineDemand(t *testing.T) {
	db := setupFixtureDB(t, WithThresholds(smallMarket()))
	ctx := context.Background()

	demand, err := db.CuisineDemand(ctx, ListingFilter{})
	if err != nil {
		t.Fatalf("CuisineDemand() error = %v", err)
	}
	var got []string
	for _, d := range demand {
		got = append(got, d.Cuisine)
	}
	if want := []string{"North Indian", "South Indian"}; !reflect.DeepEqual(got, want) {
		t.Errorf("CuisineDemand() = %v, want %v", got, want)
	}

	crowded, err := db.OvercrowdedCuisines(ctx, ListingFilter{})
	if err != nil {
		t.Fatalf("OvercrowdedCuisines() error = %v", err)
	}
	if len(crowded) != 1 || crowded[0].Cuisine != "Cafe" || crowded[0].AvgSentiment != -0.25 {
		t.Errorf("OvercrowdedCuisines() = %+v, want [Cafe]", crowded)
	}
}

func TestNew_RejectsInvalidThresholds(t *testing.T) {
	bad := cohort.Default()
	bad.NicheMaxRecords = bad.NicheMinRecords - 1

	_, err := New(&config.DatabaseConfig{Path: ":memory:"}, WithThresholds(bad))
	if !errors.Is(err, cohort.ErrInvalidThresholds) {
		t.Errorf("New() error = %v, want ErrInvalidThresholds", err)
	}
}
