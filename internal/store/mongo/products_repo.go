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

type ProductRepoMongo struct {
	products   *mongodrv.Collection
	guarantees *mongodrv.Collection
	counters   *mongodrv.Collection
	opTimeout  time.Duration
}

func NewProductRepo(db *mongodrv.Database, opTimeout time.Duration) *ProductRepoMongo {
	return &ProductRepoMongo{
		products:   db.Collection(ColProducts),
		guarantees: db.Collection(ColGuarantees),
		counters:   db.Collection(ColCounters),
		opTimeout:  opTimeout,
	}
}

// List returns active products ordered by code.
func (r *ProductRepoMongo) List(ctx context.Context) ([]core.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	cur, err := r.products.Find(ctx,
		bson.M{"status": string(core.StatusActive)},
		options.Find().SetSort(bson.D{{Key: "code", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("products.find: %w", err)
	}
	defer cur.Close(ctx)

	var out []core.Product
	for cur.Next(ctx) {
		var doc ProductDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("products.decode: %w", err)
		}
		out = append(out, fromProductDoc(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("products.cursor: %w", err)
	}
	return out, nil
}

func (r *ProductRepoMongo) GetByID(ctx context.Context, id int64) (core.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	var doc ProductDoc
	err := r.products.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return core.Product{}, core.ErrNotFound
		}
		return core.Product{}, fmt.Errorf("products.findOne: %w", err)
	}
	return fromProductDoc(doc), nil
}

func (r *ProductRepoMongo) GetByCode(ctx context.Context, code string) (core.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	var doc ProductDoc
	err := r.products.FindOne(ctx, bson.M{"code": code}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return core.Product{}, core.ErrNotFound
		}
		return core.Product{}, fmt.Errorf("products.getByCode: %w", err)
	}
	return fromProductDoc(doc), nil
}

// GuaranteesFor returns the active guarantees of a product ordered by code.
func (r *ProductRepoMongo) GuaranteesFor(ctx context.Context, productID int64) ([]core.Guarantee, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	cur, err := r.guarantees.Find(ctx,
		bson.M{"product_id": productID, "status": string(core.StatusActive)},
		options.Find().SetSort(bson.D{{Key: "code", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("guarantees.find: %w", err)
	}
	defer cur.Close(ctx)

	var out []core.Guarantee
	for cur.Next(ctx) {
		var doc GuaranteeDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("guarantees.decode: %w", err)
		}
		out = append(out, fromGuaranteeDoc(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("guarantees.cursor: %w", err)
	}
	return out, nil
}

func (r *ProductRepoMongo) GetGuarantee(ctx context.Context, productID int64, code string) (core.Guarantee, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	var doc GuaranteeDoc
	err := r.guarantees.FindOne(ctx, bson.M{"product_id": productID, "code": code}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return core.Guarantee{}, core.ErrNotFound
		}
		return core.Guarantee{}, fmt.Errorf("guarantees.findOne: %w", err)
	}
	return fromGuaranteeDoc(doc), nil
}

// Upsert writes a product and its guarantees, matching by code. Used by the
// seed command.
func (r *ProductRepoMongo) Upsert(ctx context.Context, p core.Product, guarantees []core.Guarantee) error {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	productID := p.ID
	if productID == 0 {
		existing, err := r.GetByCode(ctx, p.Code)
		switch {
		case err == nil:
			productID = existing.ID
		case errors.Is(err, core.ErrNotFound):
			productID, err = nextSeq(ctx, r.counters, "product_id")
			if err != nil {
				return err
			}
		default:
			return err
		}
	}

	set := bson.M{
		"code":           p.Code,
		"name":           p.Name,
		"category":       p.Category,
		"base_premium":   p.BasePremium,
		"coverage_limit": p.CoverageLimit,
		"min_threshold":  p.MinThreshold,
		"waiting_months": p.WaitingMonths,
		"status":         string(p.Status),
		"description":    p.Description,
	}
	_, err := r.products.UpdateOne(ctx,
		bson.M{"_id": productID},
		bson.M{"$set": set},
		options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("products.upsert: %w", err)
	}

	for _, g := range guarantees {
		guaranteeID := g.ID
		if guaranteeID == 0 {
			var doc GuaranteeDoc
			err := r.guarantees.FindOne(ctx, bson.M{"product_id": productID, "code": g.Code}).Decode(&doc)
			switch {
			case err == nil:
				guaranteeID = doc.ID
			case errors.Is(err, mongodrv.ErrNoDocuments):
				guaranteeID, err = nextSeq(ctx, r.counters, "guarantee_id")
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("guarantees.findOne: %w", err)
			}
		}

		gset := bson.M{
			"product_id":  productID,
			"code":        g.Code,
			"name":        g.Name,
			"status":      string(g.Status),
			"description": g.Description,
		}
		if g.WaitingMonths != nil {
			gset["waiting_months"] = *g.WaitingMonths
		}
		update := bson.M{"$set": gset}
		if g.WaitingMonths == nil {
			update["$unset"] = bson.M{"waiting_months": ""}
		}
		_, err = r.guarantees.UpdateOne(ctx,
			bson.M{"_id": guaranteeID},
			update,
			options.Update().SetUpsert(true))
		if err != nil {
			return fmt.Errorf("guarantees.upsert: %w", err)
		}
	}
	return nil
}
