package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pverdonck/go-legalprotect/internal/core"
)

type ClaimRepoMongo struct {
	claims    *mongodrv.Collection
	counters  *mongodrv.Collection
	opTimeout time.Duration
}

func NewClaimRepo(db *mongodrv.Database, opTimeout time.Duration) *ClaimRepoMongo {
	return &ClaimRepoMongo{
		claims:    db.Collection(ColClaims),
		counters:  db.Collection(ColCounters),
		opTimeout: opTimeout,
	}
}

func (r *ClaimRepoMongo) Create(ctx context.Context, c core.Claim) (core.Claim, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	if c.ID == 0 {
		id, err := nextSeq(ctx, r.counters, "claim_id")
		if err != nil {
			return core.Claim{}, err
		}
		c.ID = id
	}

	if _, err := r.claims.InsertOne(ctx, toClaimDoc(c)); err != nil {
		if mongodrv.IsDuplicateKeyError(err) {
			return core.Claim{}, fmt.Errorf("%w: claim %q", core.ErrConflict, c.Reference)
		}
		return core.Claim{}, fmt.Errorf("claims.insert: %w", err)
	}
	return c, nil
}

func (r *ClaimRepoMongo) Get(ctx context.Context, id int64) (core.Claim, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	var doc ClaimDoc
	err := r.claims.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return core.Claim{}, core.ErrNotFound
		}
		return core.Claim{}, fmt.Errorf("claims.findOne: %w", err)
	}
	return fromClaimDoc(doc), nil
}

func (r *ClaimRepoMongo) GetByReference(ctx context.Context, reference string) (core.Claim, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	var doc ClaimDoc
	err := r.claims.FindOne(ctx, bson.M{"reference": reference}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return core.Claim{}, core.ErrNotFound
		}
		return core.Claim{}, fmt.Errorf("claims.getByReference: %w", err)
	}
	return fromClaimDoc(doc), nil
}

// List returns claims by declaration date, newest first, optionally filtered
// by status.
func (r *ClaimRepoMongo) List(ctx context.Context, status core.ClaimStatus) ([]core.Claim, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = string(status)
	}

	cur, err := r.claims.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "declaration_date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("claims.find: %w", err)
	}
	defer cur.Close(ctx)

	var out []core.Claim
	for cur.Next(ctx) {
		var doc ClaimDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("claims.decode: %w", err)
		}
		out = append(out, fromClaimDoc(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("claims.cursor: %w", err)
	}
	return out, nil
}

// NextReference reserves a claim reference: SIN-YYYY-NNNNNN.
func (r *ClaimRepoMongo) NextReference(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	year := time.Now().Year()
	seq, err := nextSeq(ctx, r.counters, fmt.Sprintf("claim_%d", year))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("SIN-%d-%06d", year, seq), nil
}
