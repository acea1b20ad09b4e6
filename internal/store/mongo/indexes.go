package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique and lookup indexes the repos rely on.
// Safe to call on every startup.
func EnsureIndexes(ctx context.Context, db *mongodrv.Database) error {
	unique := options.Index().SetUnique(true)

	specs := []struct {
		coll    string
		indexes []mongodrv.IndexModel
	}{
		{ColProducts, []mongodrv.IndexModel{
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: unique},
		}},
		{ColGuarantees, []mongodrv.IndexModel{
			{Keys: bson.D{{Key: "product_id", Value: 1}, {Key: "code", Value: 1}}, Options: unique},
		}},
		{ColContracts, []mongodrv.IndexModel{
			{Keys: bson.D{{Key: "reference", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "broker_id", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "end_date", Value: 1}}},
		}},
		{ColClaims, []mongodrv.IndexModel{
			{Keys: bson.D{{Key: "reference", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "contract_id", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "declaration_date", Value: -1}}},
		}},
	}

	for _, s := range specs {
		if _, err := db.Collection(s.coll).Indexes().CreateMany(ctx, s.indexes); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", s.coll, err)
		}
	}
	return nil
}
