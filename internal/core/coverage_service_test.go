package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coverageFixture() (*fakeContractRepo, *fakeProductRepo, CoverageService) {
	products := &fakeProductRepo{
		products: []Product{
			{ID: 1, Code: "COMFORT", Name: "DAS Comfort", BasePremium: 185,
				CoverageLimit: 200000, MinThreshold: 350, WaitingMonths: 6, Status: StatusActive},
		},
		guarantees: []Guarantee{
			{ID: 10, ProductID: 1, Code: "NEIGHBOR", Name: "Neighborhood disputes", Status: StatusActive},
			{ID: 11, ProductID: 1, Code: "CIV_RECOV", Name: "Civil recovery", WaitingMonths: intPtr(0), Status: StatusActive},
			{ID: 12, ProductID: 1, Code: "MED_MALPR", Name: "Medical malpractice", WaitingMonths: intPtr(12), Status: StatusActive},
			{ID: 13, ProductID: 1, Code: "INS_CONTR", Name: "Insurance contract disputes", Status: StatusInactive},
		},
	}
	contracts := newFakeContractRepo(Contract{
		ID:        42,
		Reference: "DAS-2024-00007-000042",
		ProductID: 1,
		StartDate: date(2024, time.January, 15),
		EndDate:   date(2025, time.January, 15),
		Status:    StatusActive,
	})
	return contracts, products, NewCoverageService(contracts, products)
}

func TestCheckCoverage_WaitingPeriodBoundary(t *testing.T) {
	_, _, svc := coverageFixture()

	// Product default is 6 months: start 2024-01-15 covers from 2024-07-15.
	pending, err := svc.CheckCoverage(context.Background(), 42, "NEIGHBOR", date(2024, time.July, 14))
	require.NoError(t, err)
	assert.True(t, pending.Covered)
	assert.False(t, pending.WaitingPeriodOver)
	assert.Equal(t, 6, pending.WaitingMonths)
	require.NotNil(t, pending.WaitingEndDate)
	assert.Equal(t, date(2024, time.July, 15), *pending.WaitingEndDate)
	assert.Equal(t, 1, pending.DaysUntilCoverage)

	over, err := svc.CheckCoverage(context.Background(), 42, "NEIGHBOR", date(2024, time.July, 15))
	require.NoError(t, err)
	assert.True(t, over.Covered)
	assert.True(t, over.WaitingPeriodOver)
	assert.Equal(t, 0, over.DaysUntilCoverage)
}

func TestCheckCoverage_GuaranteeOverrideWins(t *testing.T) {
	_, _, svc := coverageFixture()

	// Explicit 0 override: covered from day one despite the product's 6 months.
	v, err := svc.CheckCoverage(context.Background(), 42, "CIV_RECOV", date(2024, time.January, 15))
	require.NoError(t, err)
	assert.True(t, v.Covered)
	assert.True(t, v.WaitingPeriodOver)
	assert.Equal(t, 0, v.WaitingMonths)

	// A longer override also wins over the product default.
	v, err = svc.CheckCoverage(context.Background(), 42, "MED_MALPR", date(2024, time.October, 1))
	require.NoError(t, err)
	assert.True(t, v.Covered)
	assert.False(t, v.WaitingPeriodOver)
	assert.Equal(t, 12, v.WaitingMonths)
	assert.Equal(t, date(2025, time.January, 15), *v.WaitingEndDate)
}

func TestCheckCoverage_GuaranteeNotUnderProduct(t *testing.T) {
	_, _, svc := coverageFixture()

	v, err := svc.CheckCoverage(context.Background(), 42, "TAX", date(2024, time.August, 1))
	require.NoError(t, err)
	assert.False(t, v.Covered)
	assert.Equal(t, "Guarantee not covered by this product", v.Reason)
	// Product context is still included for the UI.
	assert.Equal(t, "COMFORT", v.ProductCode)
	assert.Equal(t, "DAS-2024-00007-000042", v.ContractReference)
}

func TestCheckCoverage_InactiveGuarantee(t *testing.T) {
	_, _, svc := coverageFixture()

	v, err := svc.CheckCoverage(context.Background(), 42, "INS_CONTR", date(2024, time.August, 1))
	require.NoError(t, err)
	assert.False(t, v.Covered)
	assert.Equal(t, "Guarantee not covered by this product", v.Reason)
}

func TestCheckCoverage_ContractMissingOrInactive(t *testing.T) {
	contracts, _, svc := coverageFixture()

	v, err := svc.CheckCoverage(context.Background(), 999, "NEIGHBOR", date(2024, time.August, 1))
	require.NoError(t, err)
	assert.False(t, v.Covered)
	assert.Equal(t, "Contract not found or not active", v.Reason)

	c := contracts.contracts[42]
	c.Status = StatusExpired
	contracts.contracts[42] = c

	v, err = svc.CheckCoverage(context.Background(), 42, "NEIGHBOR", date(2024, time.August, 1))
	require.NoError(t, err)
	assert.False(t, v.Covered)
	assert.Equal(t, "Contract not found or not active", v.Reason)
}

func TestCheckCoverage_StoreFailurePropagates(t *testing.T) {
	contracts, _, svc := coverageFixture()
	boom := errors.New("connection reset")
	contracts.err = boom

	_, err := svc.CheckCoverage(context.Background(), 42, "NEIGHBOR", date(2024, time.August, 1))
	assert.ErrorIs(t, err, boom)
}

func TestCheckCoverage_MonthEndClamp(t *testing.T) {
	contracts, _, svc := coverageFixture()
	contracts.contracts[43] = Contract{
		ID:        43,
		Reference: "DAS-2024-00007-000043",
		ProductID: 1,
		StartDate: date(2024, time.January, 31),
		Status:    StatusActive,
	}

	// Jan 31 + 1 month clamps to Feb 29 in a leap year.
	products := &fakeProductRepo{
		products: []Product{{ID: 1, Code: "COMFORT", Name: "DAS Comfort", WaitingMonths: 6, Status: StatusActive}},
		guarantees: []Guarantee{{ID: 20, ProductID: 1, Code: "SHORT", Name: "One month wait",
			WaitingMonths: intPtr(1), Status: StatusActive}},
	}
	svc = NewCoverageService(contracts, products)

	v, err := svc.CheckCoverage(context.Background(), 43, "SHORT", date(2024, time.February, 28))
	require.NoError(t, err)
	assert.False(t, v.WaitingPeriodOver)
	assert.Equal(t, date(2024, time.February, 29), *v.WaitingEndDate)

	v, err = svc.CheckCoverage(context.Background(), 43, "SHORT", date(2024, time.February, 29))
	require.NoError(t, err)
	assert.True(t, v.WaitingPeriodOver)
}

func TestCheckCoverage_Deterministic(t *testing.T) {
	_, _, svc := coverageFixture()
	asOf := date(2024, time.March, 3)

	first, err := svc.CheckCoverage(context.Background(), 42, "NEIGHBOR", asOf)
	require.NoError(t, err)
	second, err := svc.CheckCoverage(context.Background(), 42, "NEIGHBOR", asOf)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
