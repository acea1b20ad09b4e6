package core

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"
)

const (
	recentClaimsLimit = 5
	topProductsLimit  = 5
)

type statsService struct {
	stats StatsRepo
	rules Rules
}

func NewStatsService(stats StatsRepo, rules Rules) StatsService {
	return &statsService{stats: stats, rules: rules}
}

// Dashboard gathers all roll-ups concurrently; any store failure fails the
// whole snapshot.
func (s *statsService) Dashboard(ctx context.Context) (DashboardStats, error) {
	var out DashboardStats

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Contracts, err = s.stats.ContractStats(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.Claims, err = s.stats.ClaimStats(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.Revenue, err = s.stats.RevenueStats(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.ClaimsByStatus, err = s.stats.ClaimsByStatus(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.TopProducts, err = s.stats.TopProducts(ctx, topProductsLimit)
		return err
	})
	g.Go(func() (err error) {
		out.RecentClaims, err = s.stats.RecentClaims(ctx, recentClaimsLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return DashboardStats{}, err
	}

	out.AmicableRate = amicableRate(out.Claims)
	out.AmicableRateTarget = s.rules.AmicableResolutionTarget * 100
	return out, nil
}

func amicableRate(c ClaimStats) int {
	resolved := c.AmicableResolutions + c.LitigationResolutions
	if resolved == 0 {
		return 0
	}
	return int(math.Round(float64(c.AmicableResolutions) / float64(resolved) * 100))
}
