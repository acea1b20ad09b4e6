package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractFixture(t *testing.T) (*fakeContractRepo, *contractService) {
	t.Helper()

	products := &fakeProductRepo{
		products: []Product{
			{ID: 1, Code: "CLASSIC", Name: "DAS Classic", BasePremium: 100, Status: StatusActive},
		},
	}
	contracts := newFakeContractRepo()
	premiums := NewPremiumService(products, DefaultRules())

	svc := NewContractService(contracts, products, premiums, DefaultRules()).(*contractService)
	svc.clock = func() time.Time { return date(2025, time.March, 10) }
	return contracts, svc
}

func TestCreateContract(t *testing.T) {
	contracts, svc := contractFixture(t)

	c, err := svc.Create(context.Background(), ContractInput{
		CustomerID:    7,
		BrokerID:      12,
		ProductCode:   "CLASSIC",
		StartDate:     date(2025, time.April, 1),
		VehiclesCount: 2,
		PayFrequency:  PayMonthly,
		AutoRenewal:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, "DAS-2025-00012-000001", c.Reference)
	assert.Equal(t, StatusActive, c.Status)
	assert.Equal(t, date(2026, time.April, 1), c.EndDate, "one-year term")
	assert.Equal(t, 157.50, c.TotalPremium, "premium computed by the engine")
	assert.Equal(t, int64(1), c.ProductID)

	stored, err := contracts.Get(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, stored)
}

func TestCreateContract_DefaultsToAnnual(t *testing.T) {
	_, svc := contractFixture(t)

	c, err := svc.Create(context.Background(), ContractInput{
		CustomerID:  7,
		BrokerID:    12,
		ProductCode: "CLASSIC",
		StartDate:   date(2025, time.April, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, PayAnnual, c.PayFrequency)
	assert.Equal(t, 100.0, c.TotalPremium)
}

func TestCreateContract_RejectsBadInput(t *testing.T) {
	_, svc := contractFixture(t)

	_, err := svc.Create(context.Background(), ContractInput{
		CustomerID:  7,
		BrokerID:    12,
		ProductCode: "CLASSIC",
		StartDate:   date(2025, time.April, 1),
		PayFrequency: "W",
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), ContractInput{
		BrokerID:    12,
		ProductCode: "CLASSIC",
		StartDate:   date(2025, time.April, 1),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateContract_UnknownProduct(t *testing.T) {
	_, svc := contractFixture(t)

	_, err := svc.Create(context.Background(), ContractInput{
		CustomerID:  7,
		BrokerID:    12,
		ProductCode: "NOPE",
		StartDate:   date(2025, time.April, 1),
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProcessExpired(t *testing.T) {
	contracts, svc := contractFixture(t)

	contracts.contracts[1] = Contract{
		ID: 1, Reference: "DAS-2024-00012-000001", ProductID: 1,
		StartDate: date(2024, time.February, 1), EndDate: date(2025, time.February, 1),
		Status: StatusActive, AutoRenewal: true,
	}
	contracts.contracts[2] = Contract{
		ID: 2, Reference: "DAS-2024-00012-000002", ProductID: 1,
		StartDate: date(2024, time.January, 15), EndDate: date(2025, time.January, 15),
		Status: StatusActive,
	}
	contracts.contracts[3] = Contract{
		ID: 3, Reference: "DAS-2025-00012-000003", ProductID: 1,
		StartDate: date(2025, time.March, 1), EndDate: date(2026, time.March, 1),
		Status: StatusActive,
	}

	touched, err := svc.ProcessExpired(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 2, touched)

	renewed := contracts.contracts[1]
	assert.Equal(t, StatusActive, renewed.Status)
	assert.Equal(t, date(2026, time.February, 1), renewed.EndDate, "auto-renewal extends the term")

	expired := contracts.contracts[2]
	assert.Equal(t, StatusExpired, expired.Status)

	untouched := contracts.contracts[3]
	assert.Equal(t, date(2026, time.March, 1), untouched.EndDate)
}

func TestProcessExpired_NothingToDo(t *testing.T) {
	_, svc := contractFixture(t)

	touched, err := svc.ProcessExpired(context.Background(), 10)
	require.NoError(t, err)
	assert.Zero(t, touched)
}
