package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pverdonck/go-legalprotect/internal/core"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubPremiumService struct {
	breakdown core.PremiumBreakdown
	err       error
}

func (s *stubPremiumService) Calculate(context.Context, string, int, core.PayFrequency) (core.PremiumBreakdown, error) {
	return s.breakdown, s.err
}

type stubClaimService struct {
	verdict core.ClaimValidation
	claim   core.Claim
	err     error
}

func (s *stubClaimService) Validate(context.Context, core.ClaimInput) (core.ClaimValidation, error) {
	return s.verdict, s.err
}

func (s *stubClaimService) Declare(context.Context, core.ClaimInput) (core.Claim, error) {
	return s.claim, s.err
}

func (s *stubClaimService) Get(context.Context, int64) (core.Claim, error) {
	return s.claim, s.err
}

func (s *stubClaimService) GetByReference(context.Context, string) (core.Claim, error) {
	return s.claim, s.err
}

func (s *stubClaimService) List(context.Context, core.ClaimStatus) ([]core.Claim, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []core.Claim{s.claim}, nil
}

type stubCoverageService struct {
	verdict core.CoverageVerdict
	err     error
}

func (s *stubCoverageService) CheckCoverage(context.Context, int64, string, time.Time) (core.CoverageVerdict, error) {
	return s.verdict, s.err
}

type stubContractService struct {
	contract core.Contract
	err      error
}

func (s *stubContractService) Create(context.Context, core.ContractInput) (core.Contract, error) {
	return s.contract, s.err
}

func (s *stubContractService) Get(context.Context, int64) (core.Contract, error) {
	return s.contract, s.err
}

func (s *stubContractService) GetByReference(context.Context, string) (core.Contract, error) {
	return s.contract, s.err
}

func (s *stubContractService) List(context.Context, core.Status) ([]core.Contract, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []core.Contract{s.contract}, nil
}

func (s *stubContractService) ListByBroker(context.Context, int64) ([]core.Contract, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []core.Contract{s.contract}, nil
}

func (s *stubContractService) ProcessExpired(context.Context, int) (int, error) {
	return 0, s.err
}

func mountRouter(m Mountable) *chi.Mux {
	r := chi.NewRouter()
	m.Mount(r)
	return r
}

func TestCalculatePremiumEndpoint(t *testing.T) {
	h := NewPremiumHandler(&stubPremiumService{
		breakdown: core.PremiumBreakdown{ProductCode: "CLASSIC", FinalPremium: 157.50},
	}, testLogger())
	r := mountRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/premiums/calculate",
		strings.NewReader(`{"product_code":"CLASSIC","vehicles_count":2,"pay_frequency":"M"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out core.PremiumBreakdown
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 157.50, out.FinalPremium)
}

func TestCalculatePremiumEndpoint_BadJSON(t *testing.T) {
	h := NewPremiumHandler(&stubPremiumService{}, testLogger())
	r := mountRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/premiums/calculate", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestCalculatePremiumEndpoint_UnknownProduct(t *testing.T) {
	h := NewPremiumHandler(&stubPremiumService{err: core.ErrProductNotFound}, testLogger())
	r := mountRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/premiums/calculate",
		strings.NewReader(`{"product_code":"NOPE"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestValidateClaimEndpoint_InvalidVerdictIsStill200(t *testing.T) {
	h := NewClaimHandler(&stubClaimService{
		verdict: core.ClaimValidation{
			IsValid: false,
			Errors: []core.RuleViolation{
				{Code: "BUS006", Field: "claimed_amount", Message: "Claim amount must be at least EUR 350"},
			},
			Warnings: []core.RuleViolation{},
		},
	}, testLogger())
	r := mountRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/claims/validate",
		strings.NewReader(`{"contract_id":42,"guarantee_code":"NEIGHBOR","claimed_amount":100}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "validation dry-run reports the verdict, it does not fail")
	var out core.ClaimValidation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.False(t, out.IsValid)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "BUS006", out.Errors[0].Code)
}

func TestDeclareClaimEndpoint_RejectedWithViolations(t *testing.T) {
	h := NewClaimHandler(&stubClaimService{
		verdict: core.ClaimValidation{
			IsValid: false,
			Errors:  []core.RuleViolation{{Code: "BUS002", Field: "guarantee_code", Message: "Waiting period not over"}},
		},
	}, testLogger())
	r := mountRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/claims",
		strings.NewReader(`{"contract_id":42,"guarantee_code":"NEIGHBOR","claimed_amount":1000}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body struct {
		Violations []core.RuleViolation `json:"violations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Violations, 1)
	assert.Equal(t, "BUS002", body.Violations[0].Code)
}

func TestDeclareClaimEndpoint_Created(t *testing.T) {
	h := NewClaimHandler(&stubClaimService{
		verdict: core.ClaimValidation{IsValid: true},
		claim:   core.Claim{ID: 1, Reference: "SIN-2025-000001", Status: core.ClaimStatusNew},
	}, testLogger())
	r := mountRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/claims",
		strings.NewReader(`{"contract_id":42,"guarantee_code":"NEIGHBOR","claimed_amount":1000}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var out core.Claim
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "SIN-2025-000001", out.Reference)
}

func TestDeclareClaimEndpoint_MalformedInput(t *testing.T) {
	h := NewClaimHandler(&stubClaimService{}, testLogger())
	r := mountRouter(h)

	// Missing guarantee code fails input validation before the service runs.
	req := httptest.NewRequest(http.MethodPost, "/claims",
		strings.NewReader(`{"contract_id":42,"claimed_amount":1000}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetClaimEndpoint_BadID(t *testing.T) {
	h := NewClaimHandler(&stubClaimService{}, testLogger())
	r := mountRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/claims/abc", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckCoverageEndpoint(t *testing.T) {
	end := time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC)
	h := NewContractHandler(&stubContractService{}, &stubCoverageService{
		verdict: core.CoverageVerdict{Covered: true, WaitingPeriodOver: false, WaitingMonths: 6, WaitingEndDate: &end},
	}, testLogger())
	r := mountRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/contracts/42/coverage/NEIGHBOR?date=2024-03-01", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var out core.CoverageVerdict
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.Covered)
	assert.False(t, out.WaitingPeriodOver)
}

func TestCheckCoverageEndpoint_BadDate(t *testing.T) {
	h := NewContractHandler(&stubContractService{}, &stubCoverageService{}, testLogger())
	r := mountRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/contracts/42/coverage/NEIGHBOR?date=15-07-2024", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetContractEndpoint_NotFound(t *testing.T) {
	h := NewContractHandler(&stubContractService{err: core.ErrNotFound}, &stubCoverageService{}, testLogger())
	r := mountRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/contracts/42", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
