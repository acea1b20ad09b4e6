package core

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// claimFixture wires a claim service over the coverage fixture with the clock
// pinned to 2024-09-01, well past the COMFORT waiting period.
func claimFixture(t *testing.T) (*fakeContractRepo, *fakeClaimRepo, *claimService) {
	t.Helper()

	contracts, _, coverage := coverageFixture()
	claims := newFakeClaimRepo()

	svc := NewClaimService(claims, coverage, DefaultRules()).(*claimService)
	svc.clock = func() time.Time { return date(2024, time.September, 1) }
	return contracts, claims, svc
}

func validInput() ClaimInput {
	return ClaimInput{
		ContractID:       42,
		GuaranteeCode:    "NEIGHBOR",
		CircumstanceCode: "NEIGH_DISP",
		ClaimedAmount:    1250,
	}
}

func TestValidateClaim_Valid(t *testing.T) {
	_, _, svc := claimFixture(t)

	v, err := svc.Validate(context.Background(), validInput())
	require.NoError(t, err)
	assert.True(t, v.IsValid)
	assert.Empty(t, v.Errors)
	assert.Empty(t, v.Warnings)
	assert.True(t, v.Coverage.Covered)
}

func TestValidateClaim_BelowThreshold(t *testing.T) {
	_, _, svc := claimFixture(t)

	in := validInput()
	in.ClaimedAmount = 349.99

	v, err := svc.Validate(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, v.IsValid)
	require.Len(t, v.Errors, 1, "exactly one violation for an otherwise valid claim")
	assert.Equal(t, "BUS006", v.Errors[0].Code)
	assert.Equal(t, "claimed_amount", v.Errors[0].Field)
	assert.Contains(t, v.Errors[0].Message, "350")
}

func TestValidateClaim_ThresholdBoundary(t *testing.T) {
	_, _, svc := claimFixture(t)

	in := validInput()
	in.ClaimedAmount = 350

	v, err := svc.Validate(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, v.IsValid, "exactly the threshold is acceptable")
}

func TestValidateClaim_ZeroAmountNotFlaggedByThreshold(t *testing.T) {
	_, _, svc := claimFixture(t)

	// Required-field validation owns the <= 0 boundary; the threshold rule
	// must not double-report it.
	in := validInput()
	in.ClaimedAmount = 0

	v, err := svc.Validate(context.Background(), in)
	require.NoError(t, err)
	for _, e := range v.Errors {
		assert.NotEqual(t, "BUS006", e.Code)
	}
}

func TestValidateClaim_ExceedsLimitIsWarningOnly(t *testing.T) {
	_, _, svc := claimFixture(t)

	in := validInput()
	in.ClaimedAmount = 250000

	v, err := svc.Validate(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, v.IsValid, "exceeding the ceiling warns but does not reject")
	assert.Empty(t, v.Errors)
	require.Len(t, v.Warnings, 1)
	assert.Equal(t, "BUS003", v.Warnings[0].Code)
	assert.Contains(t, v.Warnings[0].Message, "200000")
}

func TestValidateClaim_NotCovered(t *testing.T) {
	_, _, svc := claimFixture(t)

	in := validInput()
	in.GuaranteeCode = "TAX"

	v, err := svc.Validate(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, v.IsValid)
	require.Len(t, v.Errors, 1)
	assert.Equal(t, "BUS001", v.Errors[0].Code)
	assert.Equal(t, "Guarantee not covered by this product", v.Errors[0].Message)
}

func TestValidateClaim_WaitingPeriodPending(t *testing.T) {
	_, _, svc := claimFixture(t)
	svc.clock = func() time.Time { return date(2024, time.March, 1) }

	v, err := svc.Validate(context.Background(), validInput())
	require.NoError(t, err)
	assert.False(t, v.IsValid)
	require.Len(t, v.Errors, 1)
	assert.Equal(t, "BUS002", v.Errors[0].Code)
	assert.Contains(t, v.Errors[0].Message, "2024-07-15")
	assert.Contains(t, v.Errors[0].Message, "days remaining")
}

func TestValidateClaim_AccumulatesAllFailures(t *testing.T) {
	_, _, svc := claimFixture(t)
	svc.clock = func() time.Time { return date(2024, time.March, 1) }

	in := validInput()
	in.ClaimedAmount = 100

	v, err := svc.Validate(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, v.IsValid)
	require.Len(t, v.Errors, 2, "waiting period and threshold both reported")
	assert.Equal(t, "BUS002", v.Errors[0].Code)
	assert.Equal(t, "BUS006", v.Errors[1].Code)
}

func TestValidateClaim_StoreFailurePropagates(t *testing.T) {
	contracts, _, svc := claimFixture(t)
	boom := errors.New("i/o timeout")
	contracts.err = boom

	_, err := svc.Validate(context.Background(), validInput())
	assert.ErrorIs(t, err, boom)
}

func TestDeclareClaim_Success(t *testing.T) {
	_, claims, svc := claimFixture(t)

	claim, err := svc.Declare(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, "SIN-2025-000001", claim.Reference)
	assert.True(t, strings.HasPrefix(claim.FileReference, "DOS-"))
	assert.Equal(t, ClaimStatusNew, claim.Status)
	assert.Equal(t, date(2024, time.September, 1), claim.DeclarationDate, "declaration date defaults to today")
	assert.NotZero(t, claim.ID)

	stored, err := claims.Get(context.Background(), claim.ID)
	require.NoError(t, err)
	assert.Equal(t, claim, stored)
}

func TestDeclareClaim_RejectsInvalidVerdict(t *testing.T) {
	_, claims, svc := claimFixture(t)

	in := validInput()
	in.ClaimedAmount = 100

	_, err := svc.Declare(context.Background(), in)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "BUS006")
	assert.Empty(t, claims.claims, "nothing persisted on rejection")
}

func TestDeclareClaim_RejectsMalformedInput(t *testing.T) {
	_, claims, svc := claimFixture(t)

	in := validInput()
	in.IncidentDate = date(2024, time.August, 10)
	in.DeclarationDate = date(2024, time.August, 1)

	_, err := svc.Declare(context.Background(), in)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, claims.claims)
}
