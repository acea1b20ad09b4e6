package core

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ContractService owns the contract lifecycle around the rule engine: creation
// (with an authoritative premium), lookups, and renewal/expiry handling.
type ContractService interface {
	Create(ctx context.Context, in ContractInput) (Contract, error)
	Get(ctx context.Context, id int64) (Contract, error)
	GetByReference(ctx context.Context, reference string) (Contract, error)
	List(ctx context.Context, status Status) ([]Contract, error)
	ListByBroker(ctx context.Context, brokerID int64) ([]Contract, error)

	// ProcessExpired renews or expires active contracts past their end date.
	// Returns how many contracts were touched.
	ProcessExpired(ctx context.Context, limit int) (int, error)
}

type contractService struct {
	contracts ContractRepo
	products  ProductRepo
	premiums  PremiumService
	rules     Rules
	clock     func() time.Time
}

func NewContractService(contracts ContractRepo, products ProductRepo, premiums PremiumService, rules Rules) ContractService {
	return &contractService{
		contracts: contracts,
		products:  products,
		premiums:  premiums,
		rules:     rules,
		clock:     time.Now,
	}
}

func (s *contractService) Create(ctx context.Context, in ContractInput) (Contract, error) {
	if err := in.Validate(); err != nil {
		return Contract{}, err
	}

	frequency := in.PayFrequency
	if frequency == "" {
		frequency = PayAnnual
	}

	// The premium engine is the single source of truth for the amount; the
	// caller never supplies it.
	breakdown, err := s.premiums.Calculate(ctx, in.ProductCode, in.VehiclesCount, frequency)
	if err != nil {
		return Contract{}, err
	}

	product, err := s.products.GetByCode(ctx, breakdown.ProductCode)
	if err != nil {
		return Contract{}, err
	}

	reference, err := s.contracts.NextReference(ctx, in.BrokerID)
	if err != nil {
		return Contract{}, fmt.Errorf("reserve contract reference: %w", err)
	}

	now := s.clock()
	contract := Contract{
		Reference:     reference,
		CustomerID:    in.CustomerID,
		BrokerID:      in.BrokerID,
		ProductID:     product.ID,
		StartDate:     in.StartDate,
		EndDate:       in.StartDate.AddDate(s.rules.ContractDurationYears, 0, 0),
		Status:        StatusActive,
		VehiclesCount: in.VehiclesCount,
		PayFrequency:  frequency,
		TotalPremium:  breakdown.FinalPremium,
		AutoRenewal:   in.AutoRenewal,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	return s.contracts.Create(ctx, contract)
}

func (s *contractService) Get(ctx context.Context, id int64) (Contract, error) {
	return s.contracts.Get(ctx, id)
}

func (s *contractService) GetByReference(ctx context.Context, reference string) (Contract, error) {
	return s.contracts.GetByReference(ctx, reference)
}

func (s *contractService) List(ctx context.Context, status Status) ([]Contract, error) {
	return s.contracts.List(ctx, status)
}

func (s *contractService) ListByBroker(ctx context.Context, brokerID int64) ([]Contract, error) {
	return s.contracts.ListByBroker(ctx, brokerID)
}

func (s *contractService) ProcessExpired(ctx context.Context, limit int) (int, error) {
	now := s.clock()
	expired, err := s.contracts.FindExpired(ctx, now, limit)
	if err != nil {
		return 0, err
	}

	touched := 0
	for _, c := range expired {
		if c.AutoRenewal {
			c.EndDate = c.EndDate.AddDate(s.rules.ContractDurationYears, 0, 0)
		} else {
			c.Status = StatusExpired
		}
		c.UpdatedAt = now

		if err := s.contracts.Update(ctx, c); err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return touched, err
		}
		touched++
	}
	return touched, nil
}
