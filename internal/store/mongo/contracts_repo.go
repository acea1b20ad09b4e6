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

type ContractRepoMongo struct {
	contracts *mongodrv.Collection
	counters  *mongodrv.Collection
	opTimeout time.Duration
}

func NewContractRepo(db *mongodrv.Database, opTimeout time.Duration) *ContractRepoMongo {
	return &ContractRepoMongo{
		contracts: db.Collection(ColContracts),
		counters:  db.Collection(ColCounters),
		opTimeout: opTimeout,
	}
}

func (r *ContractRepoMongo) Create(ctx context.Context, c core.Contract) (core.Contract, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	if c.ID == 0 {
		id, err := nextSeq(ctx, r.counters, "contract_id")
		if err != nil {
			return core.Contract{}, err
		}
		c.ID = id
	}

	if _, err := r.contracts.InsertOne(ctx, toContractDoc(c)); err != nil {
		if mongodrv.IsDuplicateKeyError(err) {
			return core.Contract{}, fmt.Errorf("%w: contract %q", core.ErrConflict, c.Reference)
		}
		return core.Contract{}, fmt.Errorf("contracts.insert: %w", err)
	}
	return c, nil
}

func (r *ContractRepoMongo) Get(ctx context.Context, id int64) (core.Contract, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	var doc ContractDoc
	err := r.contracts.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return core.Contract{}, core.ErrNotFound
		}
		return core.Contract{}, fmt.Errorf("contracts.findOne: %w", err)
	}
	return fromContractDoc(doc), nil
}

func (r *ContractRepoMongo) GetByReference(ctx context.Context, reference string) (core.Contract, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	var doc ContractDoc
	err := r.contracts.FindOne(ctx, bson.M{"reference": reference}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return core.Contract{}, core.ErrNotFound
		}
		return core.Contract{}, fmt.Errorf("contracts.getByReference: %w", err)
	}
	return fromContractDoc(doc), nil
}

// List returns contracts newest first, optionally filtered by status.
func (r *ContractRepoMongo) List(ctx context.Context, status core.Status) ([]core.Contract, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = string(status)
	}
	return r.find(ctx, filter)
}

func (r *ContractRepoMongo) ListByBroker(ctx context.Context, brokerID int64) ([]core.Contract, error) {
	return r.find(ctx, bson.M{"broker_id": brokerID})
}

func (r *ContractRepoMongo) find(ctx context.Context, filter bson.M) ([]core.Contract, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	cur, err := r.contracts.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "start_date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("contracts.find: %w", err)
	}
	defer cur.Close(ctx)

	var out []core.Contract
	for cur.Next(ctx) {
		var doc ContractDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("contracts.decode: %w", err)
		}
		out = append(out, fromContractDoc(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("contracts.cursor: %w", err)
	}
	return out, nil
}

func (r *ContractRepoMongo) Update(ctx context.Context, c core.Contract) error {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	res, err := r.contracts.ReplaceOne(ctx, bson.M{"_id": c.ID}, toContractDoc(c))
	if err != nil {
		return fmt.Errorf("contracts.replace: %w", err)
	}
	if res.MatchedCount == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *ContractRepoMongo) FindExpired(ctx context.Context, asOf time.Time, limit int) ([]core.Contract, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	cur, err := r.contracts.Find(ctx,
		bson.M{
			"status":   string(core.StatusActive),
			"end_date": bson.M{"$lt": asOf},
		},
		options.Find().SetLimit(int64(limit)).SetSort(bson.D{{Key: "end_date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("contracts.findExpired: %w", err)
	}
	defer cur.Close(ctx)

	var out []core.Contract
	for cur.Next(ctx) {
		var doc ContractDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("contracts.decode: %w", err)
		}
		out = append(out, fromContractDoc(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("contracts.cursor: %w", err)
	}
	return out, nil
}

// NextReference reserves a contract reference: DAS-YYYY-BBBBB-NNNNNN, broker
// id zero-padded in the middle segment.
func (r *ContractRepoMongo) NextReference(ctx context.Context, brokerID int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	year := time.Now().Year()
	seq, err := nextSeq(ctx, r.counters, fmt.Sprintf("contract_%d", year))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("DAS-%d-%05d-%06d", year, brokerID, seq), nil
}
