package core

import (
	"context"
	"fmt"
)

// Status codes shared across entities (3-letter host codes).
type Status string

const (
	StatusActive    Status = "ACT"
	StatusInactive  Status = "INA"
	StatusSuspended Status = "SUS"
	StatusPending   Status = "PEN"
	StatusExpired   Status = "EXP"
	StatusCancelled Status = "CAN"
)

type Product struct {
	ID            int64   `json:"id"`
	Code          string  `json:"code"` // unique, uppercase (e.g. "CLASSIC")
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	BasePremium   float64 `json:"base_premium"`   // annual base premium, EUR
	CoverageLimit float64 `json:"coverage_limit"` // EUR
	MinThreshold  float64 `json:"min_threshold"`  // minimum intervention, EUR
	WaitingMonths int     `json:"waiting_months"` // product-level default
	Status        Status  `json:"status"`
	Description   string  `json:"description,omitempty"`
}

// Guarantee is one coverage type under a product (TELEBIB2 code). A nil
// WaitingMonths falls back to the product default; an explicit 0 means no
// waiting period for that guarantee.
type Guarantee struct {
	ID            int64  `json:"id"`
	ProductID     int64  `json:"product_id"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	WaitingMonths *int   `json:"waiting_months,omitempty"`
	Status        Status `json:"status"`
	Description   string `json:"description,omitempty"`
}

// ProductRepo is the read side of the product catalog. Repos return records
// regardless of status; the services decide what "active" means.
type ProductRepo interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id int64) (Product, error)
	GetByCode(ctx context.Context, code string) (Product, error)
	GuaranteesFor(ctx context.Context, productID int64) ([]Guarantee, error)
	GetGuarantee(ctx context.Context, productID int64, code string) (Guarantee, error)
	Upsert(ctx context.Context, p Product, guarantees []Guarantee) error
}

// EffectiveWaitingMonths resolves the guarantee-level override against the
// product default (COALESCE semantics: an explicit 0 override counts).
func EffectiveWaitingMonths(p Product, g Guarantee) int {
	if g.WaitingMonths != nil {
		return *g.WaitingMonths
	}
	return p.WaitingMonths
}

func (p Product) Validate() error {
	if p.Code == "" {
		return fmt.Errorf("%w: missing product code", ErrValidation)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: missing product name", ErrValidation)
	}
	if p.BasePremium <= 0 {
		return fmt.Errorf("%w: base premium must be > 0", ErrValidation)
	}
	if p.WaitingMonths < 0 {
		return fmt.Errorf("%w: waiting months must be >= 0", ErrValidation)
	}
	return nil
}

var ErrProductNotFound = fmt.Errorf("%w: product not found", ErrNotFound)
