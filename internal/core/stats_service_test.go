package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard(t *testing.T) {
	repo := &fakeStatsRepo{
		contracts: ContractStats{Total: 120, Active: 100, Expired: 15, AutoRenewal: 80},
		claims: ClaimStats{
			Total:                 40,
			Resolved:              25,
			AmicableResolutions:   19,
			LitigationResolutions: 5,
		},
		revenue:  RevenueStats{TotalRevenue: 15000, AvgPremium: 150},
		byStatus: []StatusCount{{Status: "NEW", Count: 10}},
		top:      []ProductCount{{ProductCode: "CLASSIC", Contracts: 60}},
		recent:   []Claim{{ID: 1, Reference: "SIN-2025-000001"}},
	}
	svc := NewStatsService(repo, DefaultRules())

	out, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, repo.contracts, out.Contracts)
	assert.Equal(t, repo.revenue, out.Revenue)
	assert.Equal(t, repo.byStatus, out.ClaimsByStatus)

	// 19 of 24 resolutions settled amicably -> 79%.
	assert.Equal(t, 79, out.AmicableRate)
	assert.Equal(t, 79.0, out.AmicableRateTarget)
}

func TestDashboard_NoResolutions(t *testing.T) {
	svc := NewStatsService(&fakeStatsRepo{}, DefaultRules())

	out, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Zero(t, out.AmicableRate)
}

func TestDashboard_StoreFailurePropagates(t *testing.T) {
	boom := errors.New("aggregation failed")
	svc := NewStatsService(&fakeStatsRepo{err: boom}, DefaultRules())

	_, err := svc.Dashboard(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestAmicableRateRounding(t *testing.T) {
	assert.Equal(t, 79, amicableRate(ClaimStats{AmicableResolutions: 19, LitigationResolutions: 5}))
	assert.Equal(t, 67, amicableRate(ClaimStats{AmicableResolutions: 2, LitigationResolutions: 1}))
	assert.Equal(t, 100, amicableRate(ClaimStats{AmicableResolutions: 3}))
	assert.Equal(t, 0, amicableRate(ClaimStats{}))
}
