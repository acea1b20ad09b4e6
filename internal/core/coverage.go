package core

import (
	"context"
	"time"
)

// CoverageVerdict is the derived result of evaluating whether a
// contract-guarantee pair is payable. It is never persisted.
type CoverageVerdict struct {
	Covered bool   `json:"is_covered"`
	Reason  string `json:"reason,omitempty"` // set on the not-covered paths

	WaitingPeriodOver bool       `json:"is_waiting_period_over"`
	WaitingMonths     int        `json:"waiting_months"`
	WaitingEndDate    *time.Time `json:"waiting_end_date,omitempty"`
	DaysUntilCoverage int        `json:"days_until_coverage"`

	ContractReference string     `json:"contract_reference,omitempty"`
	ContractStartDate *time.Time `json:"contract_start_date,omitempty"`
	ProductCode       string     `json:"product_code,omitempty"`
	ProductName       string     `json:"product_name,omitempty"`
	GuaranteeCode     string     `json:"guarantee_code,omitempty"`
	GuaranteeName     string     `json:"guarantee_name,omitempty"`
}

// CoverageService decides whether a guarantee is covered by a contract's
// product and whether the waiting period has elapsed as of a reference date.
type CoverageService interface {
	// CheckCoverage evaluates coverage as of asOf; a zero asOf means today.
	// Business outcomes (not covered, waiting period pending) are reported in
	// the verdict; the error return is reserved for store failures.
	CheckCoverage(ctx context.Context, contractID int64, guaranteeCode string, asOf time.Time) (CoverageVerdict, error)
}
