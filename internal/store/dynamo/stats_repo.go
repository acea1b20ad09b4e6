package dynamo

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/pverdonck/go-legalprotect/internal/core"
)

// StatsRepo computes dashboard roll-ups by scanning the contract and claim
// tables and aggregating client-side. DynamoDB has no server-side group-by,
// so the mongo backend's pipelines become in-memory passes here. Fine at
// back-office volumes.
type StatsRepo struct {
	client   *dynamodb.Client
	products *ProductRepo
}

func NewStatsRepo(client *dynamodb.Client, products *ProductRepo) *StatsRepo {
	return &StatsRepo{client: client, products: products}
}

func (r *StatsRepo) scanContracts(ctx context.Context) ([]ContractItem, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(TableContracts),
	})
	if err != nil {
		return nil, fmt.Errorf("stats.scanContracts: %w", err)
	}
	var items []ContractItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, fmt.Errorf("stats.unmarshalContracts: %w", err)
	}
	return items, nil
}

func (r *StatsRepo) scanClaims(ctx context.Context) ([]ClaimItem, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(TableClaims),
	})
	if err != nil {
		return nil, fmt.Errorf("stats.scanClaims: %w", err)
	}
	var items []ClaimItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, fmt.Errorf("stats.unmarshalClaims: %w", err)
	}
	return items, nil
}

func (r *StatsRepo) ContractStats(ctx context.Context) (core.ContractStats, error) {
	items, err := r.scanContracts(ctx)
	if err != nil {
		return core.ContractStats{}, err
	}

	var stats core.ContractStats
	stats.Total = int64(len(items))
	for _, c := range items {
		switch core.Status(c.Status) {
		case core.StatusActive:
			stats.Active++
		case core.StatusExpired:
			stats.Expired++
		}
		if c.AutoRenewal {
			stats.AutoRenewal++
		}
	}
	return stats, nil
}

func (r *StatsRepo) ClaimStats(ctx context.Context) (core.ClaimStats, error) {
	items, err := r.scanClaims(ctx)
	if err != nil {
		return core.ClaimStats{}, err
	}

	var stats core.ClaimStats
	stats.Total = int64(len(items))
	for _, c := range items {
		switch core.ClaimStatus(c.Status) {
		case core.ClaimStatusNew:
			stats.New++
		case core.ClaimStatusInProgress:
			stats.InProgress++
		case core.ClaimStatusResolved:
			stats.Resolved++
		case core.ClaimStatusRejected:
			stats.Rejected++
		case core.ClaimStatusClosed:
			stats.Closed++
		}
		switch core.ResolutionType(c.Resolution) {
		case core.ResolutionAmicable:
			stats.AmicableResolutions++
		case core.ResolutionLitigation:
			stats.LitigationResolutions++
		}
		stats.TotalClaimed += c.ClaimedAmount
		stats.TotalApproved += c.ApprovedAmount
	}
	return stats, nil
}

func (r *StatsRepo) RevenueStats(ctx context.Context) (core.RevenueStats, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(TableContracts),
		FilterExpression: aws.String("#st = :st"),
		ExpressionAttributeNames: map[string]string{
			"#st": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":st": &types.AttributeValueMemberS{Value: string(core.StatusActive)},
		},
	})
	if err != nil {
		return core.RevenueStats{}, fmt.Errorf("stats.scanActiveContracts: %w", err)
	}
	var items []ContractItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return core.RevenueStats{}, fmt.Errorf("stats.unmarshalContracts: %w", err)
	}

	var stats core.RevenueStats
	for _, c := range items {
		stats.TotalRevenue += c.TotalPremium
		switch core.PayFrequency(c.PayFrequency) {
		case core.PayMonthly:
			stats.MonthlyRevenue += c.TotalPremium
		case core.PayQuarterly:
			stats.QuarterlyRevenue += c.TotalPremium
		default:
			stats.AnnualRevenue += c.TotalPremium
		}
	}
	if len(items) > 0 {
		stats.AvgPremium = stats.TotalRevenue / float64(len(items))
	}
	return stats, nil
}

func (r *StatsRepo) ClaimsByStatus(ctx context.Context) ([]core.StatusCount, error) {
	items, err := r.scanClaims(ctx)
	if err != nil {
		return nil, err
	}

	byStatus := make(map[string]int64)
	for _, c := range items {
		byStatus[c.Status]++
	}

	counts := make([]core.StatusCount, 0, len(byStatus))
	for status, n := range byStatus {
		counts = append(counts, core.StatusCount{Status: status, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Status < counts[j].Status
	})
	return counts, nil
}

func (r *StatsRepo) TopProducts(ctx context.Context, limit int) ([]core.ProductCount, error) {
	items, err := r.scanContracts(ctx)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[int64]int64)
	for _, c := range items {
		byProduct[c.ProductID]++
	}

	counts := make([]core.ProductCount, 0, len(byProduct))
	for productID, n := range byProduct {
		pc := core.ProductCount{Contracts: n}
		p, err := r.products.GetByID(ctx, productID)
		if err == nil {
			pc.ProductCode = p.Code
			pc.ProductName = p.Name
		}
		counts = append(counts, pc)
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Contracts != counts[j].Contracts {
			return counts[i].Contracts > counts[j].Contracts
		}
		return counts[i].ProductCode < counts[j].ProductCode
	})
	if len(counts) > limit {
		counts = counts[:limit]
	}
	return counts, nil
}

func (r *StatsRepo) RecentClaims(ctx context.Context, limit int) ([]core.Claim, error) {
	items, err := r.scanClaims(ctx)
	if err != nil {
		return nil, err
	}

	claims := make([]core.Claim, len(items))
	for i, item := range items {
		claims[i] = item.ToCore()
	}
	sort.Slice(claims, func(i, j int) bool {
		return claims[i].DeclarationDate.After(claims[j].DeclarationDate)
	})
	if len(claims) > limit {
		claims = claims[:limit]
	}
	return claims, nil
}
