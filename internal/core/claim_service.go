package core

import (
	"context"
	"fmt"
	"time"

	"github.com/pverdonck/go-legalprotect/internal/platform/ids"
)

// ClaimService validates and declares claims. Validation is advisory: the
// verdict carries itemized business failures as data, and Declare re-runs it
// before persisting.
type ClaimService interface {
	Validate(ctx context.Context, in ClaimInput) (ClaimValidation, error)
	Declare(ctx context.Context, in ClaimInput) (Claim, error)
	Get(ctx context.Context, id int64) (Claim, error)
	GetByReference(ctx context.Context, reference string) (Claim, error)
	List(ctx context.Context, status ClaimStatus) ([]Claim, error)
}

type claimService struct {
	claims   ClaimRepo
	coverage CoverageService
	rules    Rules
	clock    func() time.Time
}

func NewClaimService(claims ClaimRepo, coverage CoverageService, rules Rules) ClaimService {
	return &claimService{
		claims:   claims,
		coverage: coverage,
		rules:    rules,
		clock:    time.Now,
	}
}

// Validate runs every check and accumulates violations; it never short-circuits
// so the caller sees all failures at once. Only store failures surface as
// errors.
func (s *claimService) Validate(ctx context.Context, in ClaimInput) (ClaimValidation, error) {
	v := ClaimValidation{
		IsValid:  true,
		Errors:   []RuleViolation{},
		Warnings: []RuleViolation{},
	}

	// 1) coverage and waiting period
	coverage, err := s.coverage.CheckCoverage(ctx, in.ContractID, in.GuaranteeCode, s.clock())
	if err != nil {
		return ClaimValidation{}, err
	}
	v.Coverage = coverage

	switch {
	case !coverage.Covered:
		v.IsValid = false
		v.Errors = append(v.Errors, RuleViolation{
			Code:    CodeNotCovered,
			Field:   "guarantee_code",
			Message: coverage.Reason,
		})
	case !coverage.WaitingPeriodOver:
		v.IsValid = false
		v.Errors = append(v.Errors, RuleViolation{
			Code:  CodeWaitingPeriod,
			Field: "guarantee_code",
			Message: fmt.Sprintf("Waiting period not over. Coverage starts on %s (%d days remaining)",
				coverage.WaitingEndDate.Format("2006-01-02"), coverage.DaysUntilCoverage),
		})
	}

	// 2) minimum intervention threshold. Amounts <= 0 are never flagged by
	// this rule; required-field validation owns that boundary.
	if in.ClaimedAmount > 0 && in.ClaimedAmount < s.rules.MinClaimThreshold {
		v.IsValid = false
		v.Errors = append(v.Errors, RuleViolation{
			Code:    CodeBelowThreshold,
			Field:   "claimed_amount",
			Message: fmt.Sprintf("Claim amount must be at least EUR %.0f", s.rules.MinClaimThreshold),
		})
	}

	// 3) coverage ceiling: a warning only, the claim stays valid
	if in.ClaimedAmount > s.rules.CoverageLimitMax {
		v.Warnings = append(v.Warnings, RuleViolation{
			Code:    CodeExceedsLimit,
			Field:   "claimed_amount",
			Message: fmt.Sprintf("Claim amount exceeds standard coverage limit of EUR %.0f", s.rules.CoverageLimitMax),
		})
	}

	return v, nil
}

// Declare validates the input and the business rules, reserves a claim
// reference and persists the claim with status NEW.
func (s *claimService) Declare(ctx context.Context, in ClaimInput) (Claim, error) {
	if err := in.Validate(); err != nil {
		return Claim{}, err
	}

	verdict, err := s.Validate(ctx, in)
	if err != nil {
		return Claim{}, err
	}
	if !verdict.IsValid {
		first := verdict.Errors[0]
		return Claim{}, fmt.Errorf("%w: %s: %s", ErrValidation, first.Code, first.Message)
	}

	reference, err := s.claims.NextReference(ctx)
	if err != nil {
		return Claim{}, fmt.Errorf("reserve claim reference: %w", err)
	}

	now := s.clock()
	declDate := in.DeclarationDate
	if declDate.IsZero() {
		declDate = now
	}

	claim := Claim{
		Reference:        reference,
		FileReference:    ids.DossierRef(),
		ContractID:       in.ContractID,
		GuaranteeCode:    in.GuaranteeCode,
		CircumstanceCode: in.CircumstanceCode,
		DeclarationDate:  declDate,
		IncidentDate:     in.IncidentDate,
		ClaimedAmount:    in.ClaimedAmount,
		Description:      in.Description,
		Status:           ClaimStatusNew,
		CreatedAt:        now,
	}

	return s.claims.Create(ctx, claim)
}

func (s *claimService) Get(ctx context.Context, id int64) (Claim, error) {
	return s.claims.Get(ctx, id)
}

func (s *claimService) GetByReference(ctx context.Context, reference string) (Claim, error) {
	return s.claims.GetByReference(ctx, reference)
}

func (s *claimService) List(ctx context.Context, status ClaimStatus) ([]Claim, error) {
	return s.claims.List(ctx, status)
}
