package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/pverdonck/go-legalprotect/internal/core"
	"github.com/pverdonck/go-legalprotect/internal/platform/config"
	"github.com/pverdonck/go-legalprotect/internal/platform/logging"
	"github.com/pverdonck/go-legalprotect/internal/store/dynamo"
	"github.com/pverdonck/go-legalprotect/internal/store/mongo"
)

// Seeds the product catalog into the configured backend. Safe to rerun:
// products upsert by code.
func main() {
	cfg := config.MustLoad()
	log := logging.New(cfg.Env)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, err := openProductRepo(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open store backend", "db_type", cfg.DBType, "err", err)
		os.Exit(1)
	}

	log.Info("seeding product catalog", "db_type", cfg.DBType)

	for _, entry := range catalog() {
		if err := repo.Upsert(ctx, entry.product, entry.guarantees); err != nil {
			log.Error("failed to seed product", "code", entry.product.Code, "err", err)
			os.Exit(1)
		}
		log.Info("seeded product", "code", entry.product.Code, "guarantees", len(entry.guarantees))
	}

	log.Info("done seeding")
}

func openProductRepo(ctx context.Context, cfg *config.Config, log *slog.Logger) (core.ProductRepo, error) {
	if cfg.DBType == "dynamodb" {
		client, err := dynamo.NewClient(ctx, dynamo.Config{
			Region:          cfg.AWSRegion,
			Endpoint:        cfg.DynamoDBEndpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
		if err != nil {
			return nil, err
		}
		if err := dynamo.EnsureTables(ctx, client.DB, log); err != nil {
			return nil, err
		}
		return dynamo.NewProductRepo(client.DB), nil
	}

	client, err := mongo.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	if err := mongo.EnsureIndexes(ctx, client.DB); err != nil {
		return nil, err
	}
	return mongo.NewProductRepo(client.DB, 5*time.Second), nil
}

type catalogEntry struct {
	product    core.Product
	guarantees []core.Guarantee
}

// catalog returns the commercial catalog with TELEBIB2 guarantee codes.
// Waiting periods: product default, with per-guarantee overrides where the
// general conditions differ (an explicit 0 means immediate coverage).
func catalog() []catalogEntry {
	months := func(n int) *int { return &n }

	return []catalogEntry{
		{
			product: core.Product{
				Code:          "CLASSIC",
				Name:          "DAS Classic",
				Category:      "MOBILITY",
				BasePremium:   98.50,
				CoverageLimit: 200000,
				MinThreshold:  350,
				WaitingMonths: 3,
				Status:        core.StatusActive,
				Description:   "Legal protection for vehicle and traffic disputes.",
			},
			guarantees: []core.Guarantee{
				{Code: "CIV_RECOV", Name: "Civil recovery", WaitingMonths: months(0), Status: core.StatusActive},
				{Code: "CRIM_DEF", Name: "Criminal defense", WaitingMonths: months(0), Status: core.StatusActive},
				{Code: "INS_CONTR", Name: "Insurance contract disputes", Status: core.StatusActive},
			},
		},
		{
			product: core.Product{
				Code:          "CONNECT",
				Name:          "DAS Connect",
				Category:      "MOBILITY",
				BasePremium:   129.00,
				CoverageLimit: 200000,
				MinThreshold:  350,
				WaitingMonths: 3,
				Status:        core.StatusActive,
				Description:   "Mobility cover extended with e-commerce and online disputes.",
			},
			guarantees: []core.Guarantee{
				{Code: "CIV_RECOV", Name: "Civil recovery", WaitingMonths: months(0), Status: core.StatusActive},
				{Code: "CRIM_DEF", Name: "Criminal defense", WaitingMonths: months(0), Status: core.StatusActive},
				{Code: "INS_CONTR", Name: "Insurance contract disputes", Status: core.StatusActive},
				{Code: "CONTR_DISP", Name: "Consumer contract disputes", Status: core.StatusActive},
			},
		},
		{
			product: core.Product{
				Code:          "COMFORT",
				Name:          "DAS Comfort",
				Category:      "FAMILY",
				BasePremium:   185.00,
				CoverageLimit: 200000,
				MinThreshold:  350,
				WaitingMonths: 6,
				Status:        core.StatusActive,
				Description:   "Broad family protection across private-life disputes.",
			},
			guarantees: []core.Guarantee{
				{Code: "CIV_RECOV", Name: "Civil recovery", WaitingMonths: months(0), Status: core.StatusActive},
				{Code: "CRIM_DEF", Name: "Criminal defense", WaitingMonths: months(0), Status: core.StatusActive},
				{Code: "NEIGHBOR", Name: "Neighborhood disputes", Status: core.StatusActive},
				{Code: "MED_MALPR", Name: "Medical malpractice", WaitingMonths: months(12), Status: core.StatusActive},
				{Code: "INS_CONTR", Name: "Insurance contract disputes", Status: core.StatusActive},
			},
		},
		{
			product: core.Product{
				Code:          "VIE_PRIV",
				Name:          "DAS Vie Privee",
				Category:      "FAMILY",
				BasePremium:   142.00,
				CoverageLimit: 200000,
				MinThreshold:  350,
				WaitingMonths: 6,
				Status:        core.StatusActive,
				Description:   "Private-life legal protection.",
			},
			guarantees: []core.Guarantee{
				{Code: "CIV_RECOV", Name: "Civil recovery", WaitingMonths: months(0), Status: core.StatusActive},
				{Code: "NEIGHBOR", Name: "Neighborhood disputes", Status: core.StatusActive},
				{Code: "FAMILY", Name: "Family law", WaitingMonths: months(12), Status: core.StatusActive},
			},
		},
		{
			product: core.Product{
				Code:          "CONSOM",
				Name:          "DAS Consommateur",
				Category:      "CONSUMER",
				BasePremium:   76.00,
				CoverageLimit: 200000,
				MinThreshold:  350,
				WaitingMonths: 3,
				Status:        core.StatusActive,
				Description:   "Consumer dispute protection.",
			},
			guarantees: []core.Guarantee{
				{Code: "CONTR_DISP", Name: "Consumer contract disputes", Status: core.StatusActive},
				{Code: "INS_CONTR", Name: "Insurance contract disputes", Status: core.StatusActive},
			},
		},
		{
			product: core.Product{
				Code:          "FISCASST",
				Name:          "DAS Fiscale Bijstand",
				Category:      "TAX",
				BasePremium:   210.00,
				CoverageLimit: 200000,
				MinThreshold:  350,
				WaitingMonths: 12,
				Status:        core.StatusActive,
				Description:   "Tax and administrative law assistance.",
			},
			guarantees: []core.Guarantee{
				{Code: "TAX", Name: "Tax law", Status: core.StatusActive},
				{Code: "ADMIN", Name: "Administrative law", Status: core.StatusActive},
				{Code: "SUCCES", Name: "Succession rights", WaitingMonths: months(24), Status: core.StatusActive},
			},
		},
	}
}
