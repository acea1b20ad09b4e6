package core

import "context"

// Dashboard roll-ups. Pure aggregation over the store; no business rules
// beyond the amicable-resolution rate.

type ContractStats struct {
	Total       int64 `json:"total"`
	Active      int64 `json:"active"`
	Expired     int64 `json:"expired"`
	AutoRenewal int64 `json:"auto_renewal"`
}

type ClaimStats struct {
	Total      int64 `json:"total"`
	New        int64 `json:"new"`
	InProgress int64 `json:"in_progress"`
	Resolved   int64 `json:"resolved"`
	Rejected   int64 `json:"rejected"`
	Closed     int64 `json:"closed"`

	AmicableResolutions   int64 `json:"amicable_resolutions"`
	LitigationResolutions int64 `json:"litigation_resolutions"`

	TotalClaimed  float64 `json:"total_claimed"`
	TotalApproved float64 `json:"total_approved"`
}

type RevenueStats struct {
	TotalRevenue     float64 `json:"total_revenue"`
	AvgPremium       float64 `json:"avg_premium"`
	MonthlyRevenue   float64 `json:"monthly_revenue"`
	QuarterlyRevenue float64 `json:"quarterly_revenue"`
	AnnualRevenue    float64 `json:"annual_revenue"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type ProductCount struct {
	ProductCode string `json:"product_code"`
	ProductName string `json:"product_name"`
	Contracts   int64  `json:"contracts"`
}

type DashboardStats struct {
	Contracts      ContractStats  `json:"contracts"`
	Claims         ClaimStats     `json:"claims"`
	Revenue        RevenueStats   `json:"revenue"`
	ClaimsByStatus []StatusCount  `json:"claims_by_status"`
	TopProducts    []ProductCount `json:"top_products"`
	RecentClaims   []Claim        `json:"recent_claims"`

	// Share of resolved claims settled amicably, as a percentage, against
	// the configured target.
	AmicableRate       int     `json:"amicable_rate"`
	AmicableRateTarget float64 `json:"amicable_rate_target"`
}

type StatsRepo interface {
	ContractStats(ctx context.Context) (ContractStats, error)
	ClaimStats(ctx context.Context) (ClaimStats, error)
	RevenueStats(ctx context.Context) (RevenueStats, error)
	ClaimsByStatus(ctx context.Context) ([]StatusCount, error)
	TopProducts(ctx context.Context, limit int) ([]ProductCount, error)
	RecentClaims(ctx context.Context, limit int) ([]Claim, error)
}

type StatsService interface {
	Dashboard(ctx context.Context) (DashboardStats, error)
}
