package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pverdonck/go-legalprotect/internal/core"
)

// StatsRepoMongo computes dashboard roll-ups with aggregation pipelines, the
// moral equivalent of the host's SUM(CASE WHEN ...) queries.
type StatsRepoMongo struct {
	contracts *mongodrv.Collection
	claims    *mongodrv.Collection
	products  *mongodrv.Collection
	opTimeout time.Duration
}

func NewStatsRepo(db *mongodrv.Database, opTimeout time.Duration) *StatsRepoMongo {
	return &StatsRepoMongo{
		contracts: db.Collection(ColContracts),
		claims:    db.Collection(ColClaims),
		products:  db.Collection(ColProducts),
		opTimeout: opTimeout,
	}
}

func countIf(field, value string) bson.M {
	return bson.M{"$sum": bson.M{"$cond": bson.A{
		bson.M{"$eq": bson.A{"$" + field, value}}, 1, 0,
	}}}
}

func (r *StatsRepoMongo) ContractStats(ctx context.Context) (core.ContractStats, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	pipeline := mongodrv.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"total":   bson.M{"$sum": 1},
			"active":  countIf("status", string(core.StatusActive)),
			"expired": countIf("status", string(core.StatusExpired)),
			"auto_renewal": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$auto_renewal", true}}, 1, 0,
			}}},
		}}},
	}

	var row struct {
		Total       int64 `bson:"total"`
		Active      int64 `bson:"active"`
		Expired     int64 `bson:"expired"`
		AutoRenewal int64 `bson:"auto_renewal"`
	}
	if err := r.aggregateOne(ctx, r.contracts, pipeline, &row); err != nil {
		return core.ContractStats{}, fmt.Errorf("stats.contracts: %w", err)
	}
	return core.ContractStats{
		Total:       row.Total,
		Active:      row.Active,
		Expired:     row.Expired,
		AutoRenewal: row.AutoRenewal,
	}, nil
}

func (r *StatsRepoMongo) ClaimStats(ctx context.Context) (core.ClaimStats, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	pipeline := mongodrv.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":            nil,
			"total":          bson.M{"$sum": 1},
			"new":            countIf("status", string(core.ClaimStatusNew)),
			"in_progress":    countIf("status", string(core.ClaimStatusInProgress)),
			"resolved":       countIf("status", string(core.ClaimStatusResolved)),
			"rejected":       countIf("status", string(core.ClaimStatusRejected)),
			"closed":         countIf("status", string(core.ClaimStatusClosed)),
			"amicable":       countIf("resolution", string(core.ResolutionAmicable)),
			"litigation":     countIf("resolution", string(core.ResolutionLitigation)),
			"total_claimed":  bson.M{"$sum": "$claimed_amount"},
			"total_approved": bson.M{"$sum": "$approved_amount"},
		}}},
	}

	var row struct {
		Total         int64   `bson:"total"`
		New           int64   `bson:"new"`
		InProgress    int64   `bson:"in_progress"`
		Resolved      int64   `bson:"resolved"`
		Rejected      int64   `bson:"rejected"`
		Closed        int64   `bson:"closed"`
		Amicable      int64   `bson:"amicable"`
		Litigation    int64   `bson:"litigation"`
		TotalClaimed  float64 `bson:"total_claimed"`
		TotalApproved float64 `bson:"total_approved"`
	}
	if err := r.aggregateOne(ctx, r.claims, pipeline, &row); err != nil {
		return core.ClaimStats{}, fmt.Errorf("stats.claims: %w", err)
	}
	return core.ClaimStats{
		Total:                 row.Total,
		New:                   row.New,
		InProgress:            row.InProgress,
		Resolved:              row.Resolved,
		Rejected:              row.Rejected,
		Closed:                row.Closed,
		AmicableResolutions:   row.Amicable,
		LitigationResolutions: row.Litigation,
		TotalClaimed:          row.TotalClaimed,
		TotalApproved:         row.TotalApproved,
	}, nil
}

func (r *StatsRepoMongo) RevenueStats(ctx context.Context) (core.RevenueStats, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	sumIf := func(freq core.PayFrequency) bson.M {
		return bson.M{"$sum": bson.M{"$cond": bson.A{
			bson.M{"$eq": bson.A{"$pay_frequency", string(freq)}},
			"$total_premium", 0,
		}}}
	}
	pipeline := mongodrv.Pipeline{
		{{Key: "$match", Value: bson.M{"status": string(core.StatusActive)}}},
		{{Key: "$group", Value: bson.M{
			"_id":       nil,
			"total":     bson.M{"$sum": "$total_premium"},
			"avg":       bson.M{"$avg": "$total_premium"},
			"monthly":   sumIf(core.PayMonthly),
			"quarterly": sumIf(core.PayQuarterly),
			"annual":    sumIf(core.PayAnnual),
		}}},
	}

	var row struct {
		Total     float64 `bson:"total"`
		Avg       float64 `bson:"avg"`
		Monthly   float64 `bson:"monthly"`
		Quarterly float64 `bson:"quarterly"`
		Annual    float64 `bson:"annual"`
	}
	if err := r.aggregateOne(ctx, r.contracts, pipeline, &row); err != nil {
		return core.RevenueStats{}, fmt.Errorf("stats.revenue: %w", err)
	}
	return core.RevenueStats{
		TotalRevenue:     row.Total,
		AvgPremium:       row.Avg,
		MonthlyRevenue:   row.Monthly,
		QuarterlyRevenue: row.Quarterly,
		AnnualRevenue:    row.Annual,
	}, nil
}

func (r *StatsRepoMongo) ClaimsByStatus(ctx context.Context) ([]core.StatusCount, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	pipeline := mongodrv.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}

	cur, err := r.claims.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("stats.claimsByStatus: %w", err)
	}
	defer cur.Close(ctx)

	var out []core.StatusCount
	for cur.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("stats.decode: %w", err)
		}
		out = append(out, core.StatusCount{Status: row.Status, Count: row.Count})
	}
	return out, cur.Err()
}

func (r *StatsRepoMongo) TopProducts(ctx context.Context, limit int) ([]core.ProductCount, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	pipeline := mongodrv.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$product_id", "contracts": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "contracts", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.M{
			"from":         ColProducts,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "product",
		}}},
		{{Key: "$unwind", Value: "$product"}},
	}

	cur, err := r.contracts.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("stats.topProducts: %w", err)
	}
	defer cur.Close(ctx)

	var out []core.ProductCount
	for cur.Next(ctx) {
		var row struct {
			Contracts int64 `bson:"contracts"`
			Product   struct {
				Code string `bson:"code"`
				Name string `bson:"name"`
			} `bson:"product"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("stats.decode: %w", err)
		}
		out = append(out, core.ProductCount{
			ProductCode: row.Product.Code,
			ProductName: row.Product.Name,
			Contracts:   row.Contracts,
		})
	}
	return out, cur.Err()
}

func (r *StatsRepoMongo) RecentClaims(ctx context.Context, limit int) ([]core.Claim, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	cur, err := r.claims.Find(ctx, bson.M{},
		options.Find().
			SetSort(bson.D{{Key: "declaration_date", Value: -1}}).
			SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("stats.recentClaims: %w", err)
	}
	defer cur.Close(ctx)

	var out []core.Claim
	for cur.Next(ctx) {
		var doc ClaimDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("stats.decode: %w", err)
		}
		out = append(out, fromClaimDoc(doc))
	}
	return out, cur.Err()
}

// aggregateOne runs a single-row aggregation; an empty collection yields the
// zero value.
func (r *StatsRepoMongo) aggregateOne(ctx context.Context, coll *mongodrv.Collection, pipeline mongodrv.Pipeline, out any) error {
	cur, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	if cur.Next(ctx) {
		if err := cur.Decode(out); err != nil {
			return err
		}
	}
	return cur.Err()
}
