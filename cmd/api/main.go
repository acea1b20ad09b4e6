package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	_ "github.com/pverdonck/go-legalprotect/docs"
	"github.com/pverdonck/go-legalprotect/internal/core"
	transporthttp "github.com/pverdonck/go-legalprotect/internal/http"
	"github.com/pverdonck/go-legalprotect/internal/http/handlers"
	"github.com/pverdonck/go-legalprotect/internal/http/health"
	"github.com/pverdonck/go-legalprotect/internal/jobs"
	"github.com/pverdonck/go-legalprotect/internal/middleware"
	"github.com/pverdonck/go-legalprotect/internal/platform/config"
	"github.com/pverdonck/go-legalprotect/internal/platform/logging"
	"github.com/pverdonck/go-legalprotect/internal/store/dynamo"
	"github.com/pverdonck/go-legalprotect/internal/store/mongo"
)

type backend struct {
	products  core.ProductRepo
	contracts core.ContractRepo
	claims    core.ClaimRepo
	stats     core.StatsRepo
	pinger    health.Pinger
	close     func(context.Context) error
}

func main() {
	cfg := config.MustLoad()
	log := logging.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	be, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open store backend", "db_type", cfg.DBType, "err", err)
		os.Exit(1)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := be.close(closeCtx); err != nil {
			log.Warn("store close failed", "err", err)
		}
	}()

	// Services around the rule engine
	premiumSvc := core.NewPremiumService(be.products, cfg.Rules)
	coverageSvc := core.NewCoverageService(be.contracts, be.products)
	claimSvc := core.NewClaimService(be.claims, coverageSvc, cfg.Rules)
	contractSvc := core.NewContractService(be.contracts, be.products, premiumSvc, cfg.Rules)
	statsSvc := core.NewStatsService(be.stats, cfg.Rules)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPM, time.Minute)
	rateLimiter.StartWithContext(ctx)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(time.Duration(cfg.HTTPRequestTimeoutSec) * time.Second))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.LimitRequestBody(middleware.MaxBodySize))
	r.Use(middleware.SimpleAPIKey(cfg.APIKey))
	r.Use(rateLimiter.Middleware)

	opTimeout := time.Duration(cfg.MongoOpTimeoutMs) * time.Millisecond
	r.Mount("/", health.New(log, be.pinger, opTimeout))

	api := transporthttp.NewRouter(transporthttp.Deps{
		Mounts: []handlers.Mountable{
			handlers.NewProductHandler(be.products, log),
			handlers.NewPremiumHandler(premiumSvc, log),
			handlers.NewContractHandler(contractSvc, coverageSvc, log),
			handlers.NewClaimHandler(claimSvc, log),
			handlers.NewDashboardHandler(statsSvc, log),
		},
	})
	r.Mount("/api/v1", api)

	renewal := jobs.NewRenewalWorker(contractSvc,
		time.Duration(cfg.WorkerIntervalSec)*time.Second, cfg.WorkerBatchSize, log)
	go renewal.Start(ctx)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTPReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTPWriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.HTTPIdleTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", addr, "env", cfg.Env, "db_type", cfg.DBType)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		log.Error("server failed", "err", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "err", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// openBackend connects the configured store and wires its repositories.
func openBackend(ctx context.Context, cfg *config.Config, log *slog.Logger) (backend, error) {
	opTimeout := time.Duration(cfg.MongoOpTimeoutMs) * time.Millisecond

	switch cfg.DBType {
	case "mongo":
		client, err := mongo.NewClient(cfg)
		if err != nil {
			return backend{}, err
		}
		if err := mongo.EnsureIndexes(ctx, client.DB); err != nil {
			return backend{}, fmt.Errorf("ensure indexes: %w", err)
		}
		products := mongo.NewProductRepo(client.DB, opTimeout)
		return backend{
			products:  products,
			contracts: mongo.NewContractRepo(client.DB, opTimeout),
			claims:    mongo.NewClaimRepo(client.DB, opTimeout),
			stats:     mongo.NewStatsRepo(client.DB, opTimeout),
			pinger:    client,
			close:     client.Close,
		}, nil

	case "dynamodb":
		client, err := dynamo.NewClient(ctx, dynamo.Config{
			Region:          cfg.AWSRegion,
			Endpoint:        cfg.DynamoDBEndpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
		if err != nil {
			return backend{}, err
		}
		if err := dynamo.EnsureTables(ctx, client.DB, log); err != nil {
			return backend{}, fmt.Errorf("ensure tables: %w", err)
		}
		products := dynamo.NewProductRepo(client.DB)
		return backend{
			products:  products,
			contracts: dynamo.NewContractRepo(client.DB),
			claims:    dynamo.NewClaimRepo(client.DB),
			stats:     dynamo.NewStatsRepo(client.DB, products),
			pinger:    client,
			close:     func(context.Context) error { return nil },
		}, nil

	default:
		return backend{}, fmt.Errorf("unsupported DB_TYPE %q (want mongo or dynamodb)", cfg.DBType)
	}
}
