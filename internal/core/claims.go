package core

import (
	"context"
	"fmt"
	"time"
)

type ClaimStatus string

const (
	ClaimStatusNew        ClaimStatus = "NEW"
	ClaimStatusInProgress ClaimStatus = "PRO"
	ClaimStatusResolved   ClaimStatus = "RES"
	ClaimStatusClosed     ClaimStatus = "CLO"
	ClaimStatusRejected   ClaimStatus = "REJ"
)

type ResolutionType string

const (
	ResolutionAmicable   ResolutionType = "AMI"
	ResolutionLitigation ResolutionType = "LIT"
	ResolutionRejected   ResolutionType = "REJ"
)

type Claim struct {
	ID               int64          `json:"id"`
	Reference        string         `json:"reference"`      // e.g. "SIN-2025-000045"
	FileReference    string         `json:"file_reference"` // dossier reference
	ContractID       int64          `json:"contract_id"`
	GuaranteeCode    string         `json:"guarantee_code"`
	CircumstanceCode string         `json:"circumstance_code"`
	DeclarationDate  time.Time      `json:"declaration_date"`
	IncidentDate     time.Time      `json:"incident_date"`
	ClaimedAmount    float64        `json:"claimed_amount"`
	ApprovedAmount   float64        `json:"approved_amount"`
	Description      string         `json:"description,omitempty"`
	Status           ClaimStatus    `json:"status"`
	Resolution       ResolutionType `json:"resolution,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}

type ClaimInput struct {
	ContractID       int64     `json:"contract_id"`
	GuaranteeCode    string    `json:"guarantee_code"`
	CircumstanceCode string    `json:"circumstance_code,omitempty"`
	DeclarationDate  time.Time `json:"declaration_date,omitempty"`
	IncidentDate     time.Time `json:"incident_date,omitempty"`
	ClaimedAmount    float64   `json:"claimed_amount"`
	Description      string    `json:"description,omitempty"`
}

// ClaimValidation is the structured verdict of the claim validator. Business
// failures live in Errors/Warnings; IsValid is true iff Errors is empty.
type ClaimValidation struct {
	IsValid  bool            `json:"is_valid"`
	Errors   []RuleViolation `json:"errors"`
	Warnings []RuleViolation `json:"warnings"`
	Coverage CoverageVerdict `json:"coverage"`
}

type ClaimRepo interface {
	Create(ctx context.Context, c Claim) (Claim, error)
	Get(ctx context.Context, id int64) (Claim, error)
	GetByReference(ctx context.Context, reference string) (Claim, error)
	List(ctx context.Context, status ClaimStatus) ([]Claim, error)

	// NextReference reserves the next claim reference (SIN-YYYY-NNNNNN).
	NextReference(ctx context.Context) (string, error)
}

func (in ClaimInput) Validate() error {
	if in.ContractID <= 0 {
		return fmt.Errorf("%w: missing contract id", ErrValidation)
	}
	if in.GuaranteeCode == "" {
		return fmt.Errorf("%w: missing guarantee code", ErrValidation)
	}
	if in.ClaimedAmount <= 0 {
		return fmt.Errorf("%w: claimed amount must be > 0", ErrValidation)
	}
	if !in.IncidentDate.IsZero() && !in.DeclarationDate.IsZero() &&
		in.IncidentDate.After(in.DeclarationDate) {
		return fmt.Errorf("%w: incident date after declaration date", ErrValidation)
	}
	return nil
}

var ErrClaimNotFound = fmt.Errorf("%w: claim not found", ErrNotFound)
