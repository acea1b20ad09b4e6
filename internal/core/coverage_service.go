package core

import (
	"context"
	"errors"
	"time"
)

const (
	reasonContractNotActive = "Contract not found or not active"
	reasonNotCovered        = "Guarantee not covered by this product"
)

type coverageService struct {
	contracts ContractRepo
	products  ProductRepo
	clock     func() time.Time
}

func NewCoverageService(contracts ContractRepo, products ProductRepo) CoverageService {
	return &coverageService{
		contracts: contracts,
		products:  products,
		clock:     time.Now,
	}
}

func (s *coverageService) CheckCoverage(ctx context.Context, contractID int64, guaranteeCode string, asOf time.Time) (CoverageVerdict, error) {
	if asOf.IsZero() {
		asOf = s.clock()
	}

	// 1) contract must exist and be active, as must its product
	contract, err := s.contracts.Get(ctx, contractID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return CoverageVerdict{Reason: reasonContractNotActive}, nil
		}
		return CoverageVerdict{}, err
	}
	if contract.Status != StatusActive {
		return CoverageVerdict{Reason: reasonContractNotActive}, nil
	}

	product, err := s.products.GetByID(ctx, contract.ProductID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return CoverageVerdict{Reason: reasonContractNotActive}, nil
		}
		return CoverageVerdict{}, err
	}
	if product.Status != StatusActive {
		return CoverageVerdict{Reason: reasonContractNotActive}, nil
	}

	// 2) the guarantee must be offered (and active) under this product;
	// product info is included even on this failure path for UI context
	guarantee, err := s.products.GetGuarantee(ctx, product.ID, guaranteeCode)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return CoverageVerdict{}, err
	}
	if errors.Is(err, ErrNotFound) || guarantee.Status != StatusActive {
		return CoverageVerdict{
			Reason:            reasonNotCovered,
			ContractReference: contract.Reference,
			ProductCode:       product.Code,
			ProductName:       product.Name,
		}, nil
	}

	// 3) waiting period: guarantee override wins, calendar month arithmetic
	waitingMonths := EffectiveWaitingMonths(product, guarantee)
	waitingEnd := addMonths(contract.StartDate, waitingMonths)
	over := !asOf.Before(waitingEnd)

	startDate := contract.StartDate
	return CoverageVerdict{
		Covered:           true,
		WaitingPeriodOver: over,
		WaitingMonths:     waitingMonths,
		WaitingEndDate:    &waitingEnd,
		DaysUntilCoverage: daysUntil(asOf, waitingEnd),
		ContractReference: contract.Reference,
		ContractStartDate: &startDate,
		ProductCode:       product.Code,
		ProductName:       product.Name,
		GuaranteeCode:     guarantee.Code,
		GuaranteeName:     guarantee.Name,
	}, nil
}
