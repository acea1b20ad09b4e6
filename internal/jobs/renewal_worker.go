package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/pverdonck/go-legalprotect/internal/core"
)

// RenewalWorker sweeps active contracts past their end date: auto-renewal
// contracts get a fresh annual term, the rest are marked expired.
type RenewalWorker struct {
	BaseWorker
	contracts core.ContractService
	batchSize int
}

func NewRenewalWorker(
	contracts core.ContractService,
	interval time.Duration,
	batchSize int,
	log *slog.Logger,
) *RenewalWorker {
	return &RenewalWorker{
		BaseWorker: NewBaseWorker("renewal", interval, log),
		contracts:  contracts,
		batchSize:  batchSize,
	}
}

// Start begins the worker polling loop.
func (w *RenewalWorker) Start(ctx context.Context) {
	w.Poll(ctx, w.processExpired)
}

// Name returns the worker name.
func (w *RenewalWorker) Name() string {
	return w.name
}

func (w *RenewalWorker) processExpired(ctx context.Context) error {
	touched, err := w.contracts.ProcessExpired(ctx, w.batchSize)
	if err != nil {
		return err
	}
	if touched > 0 {
		w.log.Info("contracts renewed or expired", "count", touched)
	}
	return nil
}
