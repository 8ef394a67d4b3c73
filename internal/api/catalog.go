// Tastelens - Restaurant Sentiment and Rating Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastelens

package api

import (
	"context"

	"github.com/tomtom215/tastelens/internal/cohort"
	"github.com/tomtom215/tastelens/internal/database"
	"github.com/tomtom215/tastelens/internal/models"
)

// Catalog is the query catalog served by the API. *database.DB implements it.
type Catalog interface {
	Store

	Thresholds() cohort.Thresholds

	HeadlineKPIs(ctx context.Context, f database.ListingFilter) (*models.HeadlineKPIs, error)
	SentimentDistribution(ctx context.Context, f database.ListingFilter) ([]models.CategoryCount, error)

	CrossTab(ctx context.Context, f database.ListingFilter, d database.Dimension, opts database.CrossTabOptions) ([]models.CrossTabRow, error)
	CostVsSentiment(ctx context.Context, f database.ListingFilter) ([]models.CrossTabRow, error)
	CitySentiment(ctx context.Context, f database.ListingFilter) ([]models.CrossTabRow, error)
	OnlineVsDineIn(ctx context.Context, f database.ListingFilter) ([]models.CrossTabRow, error)
	TableBookingImpact(ctx context.Context, f database.ListingFilter) ([]models.CrossTabRow, error)
	CostEfficiency(ctx context.Context, f database.ListingFilter) ([]models.CrossTabRow, error)
	ReviewVolumeImpact(ctx context.Context, f database.ListingFilter) ([]models.CrossTabRow, error)
	PriceVsHappiness(ctx context.Context, f database.ListingFilter) ([]models.CrossTabRow, error)
	CityPerformance(ctx context.Context, f database.ListingFilter) ([]models.CrossTabRow, error)
	CuisinePerformance(ctx context.Context, f database.ListingFilter) ([]models.CrossTabRow, error)

	TopTrusted(ctx context.Context, f database.ListingFilter, opts database.RankingOptions) ([]models.CohortRow, error)
	TrustRisk(ctx context.Context, f database.ListingFilter, opts database.RankingOptions) ([]models.CohortRow, error)
	HiddenGems(ctx context.Context, f database.ListingFilter, opts database.RankingOptions) ([]models.CohortRow, error)
	Undervalued(ctx context.Context, f database.ListingFilter, opts database.RankingOptions) ([]models.CohortRow, error)
	UnderratedGems(ctx context.Context, f database.ListingFilter, opts database.RankingOptions) ([]models.CohortRow, error)
	BestExperience(ctx context.Context, f database.ListingFilter, opts database.RankingOptions) ([]models.CohortRow, error)
	SentimentVolatility(ctx context.Context, f database.ListingFilter, opts database.RankingOptions) ([]models.CohortRow, error)
	TrustGapRanking(ctx context.Context, f database.ListingFilter, opts database.RankingOptions) ([]models.CohortRow, error)
	RiskFlags(ctx context.Context, f database.ListingFilter, opts database.RankingOptions) ([]models.CohortRow, error)

	ExpansionOpportunities(ctx context.Context, f database.ListingFilter) ([]models.CityOpportunity, error)
	CityCuisineOpportunities(ctx context.Context, f database.ListingFilter) ([]models.NicheOpportunity, error)
	CuisineDemand(ctx context.Context, f database.ListingFilter) ([]models.CuisineDemand, error)
	OvercrowdedCuisines(ctx context.Context, f database.ListingFilter) ([]models.CuisineDemand, error)
}

var _ Catalog = (*database.DB)(nil)
