package core

import (
	"context"
	"fmt"
	"time"
)

type PayFrequency string

const (
	PayMonthly   PayFrequency = "M" // +5% surcharge
	PayQuarterly PayFrequency = "Q" // +2% surcharge
	PayAnnual    PayFrequency = "A" // no surcharge
)

type Contract struct {
	ID            int64        `json:"id"`
	Reference     string       `json:"reference"` // e.g. "DAS-2025-00001-000123"
	CustomerID    int64        `json:"customer_id"`
	BrokerID      int64        `json:"broker_id"`
	ProductID     int64        `json:"product_id"`
	StartDate     time.Time    `json:"start_date"`
	EndDate       time.Time    `json:"end_date"`
	Status        Status       `json:"status"`
	VehiclesCount int          `json:"vehicles_count"`
	PayFrequency  PayFrequency `json:"pay_frequency"`
	TotalPremium  float64      `json:"total_premium"`
	AutoRenewal   bool         `json:"auto_renewal"`
	Notes         string       `json:"notes,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

type ContractInput struct {
	CustomerID    int64        `json:"customer_id"`
	BrokerID      int64        `json:"broker_id"`
	ProductCode   string       `json:"product_code"`
	StartDate     time.Time    `json:"start_date"`
	VehiclesCount int          `json:"vehicles_count"`
	PayFrequency  PayFrequency `json:"pay_frequency"`
	AutoRenewal   bool         `json:"auto_renewal"`
	Notes         string       `json:"notes,omitempty"`
}

type ContractRepo interface {
	Create(ctx context.Context, c Contract) (Contract, error)
	Get(ctx context.Context, id int64) (Contract, error)
	GetByReference(ctx context.Context, reference string) (Contract, error)
	List(ctx context.Context, status Status) ([]Contract, error)
	ListByBroker(ctx context.Context, brokerID int64) ([]Contract, error)
	Update(ctx context.Context, c Contract) error

	// FindExpired returns active contracts whose end date lies before asOf.
	FindExpired(ctx context.Context, asOf time.Time, limit int) ([]Contract, error)

	// NextReference reserves the next contract reference for the given broker.
	NextReference(ctx context.Context, brokerID int64) (string, error)
}

func (in ContractInput) Validate() error {
	if in.CustomerID <= 0 {
		return fmt.Errorf("%w: missing customer id", ErrValidation)
	}
	if in.BrokerID <= 0 {
		return fmt.Errorf("%w: missing broker id", ErrValidation)
	}
	if in.ProductCode == "" {
		return fmt.Errorf("%w: missing product code", ErrValidation)
	}
	if in.StartDate.IsZero() {
		return fmt.Errorf("%w: missing start date", ErrValidation)
	}
	if in.VehiclesCount < 0 || in.VehiclesCount > 99 {
		return fmt.Errorf("%w: vehicles count must be between 0 and 99", ErrValidation)
	}
	switch in.PayFrequency {
	case PayMonthly, PayQuarterly, PayAnnual, "":
	default:
		return fmt.Errorf("%w: pay frequency must be one of M, Q, A", ErrValidation)
	}
	return nil
}

var ErrContractNotFound = fmt.Errorf("%w: contract not found", ErrNotFound)
