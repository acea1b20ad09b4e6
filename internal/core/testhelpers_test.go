package core

import (
	"context"
	"fmt"
	"time"
)

// In-memory repo fakes shared by the service tests. Each fake can be primed
// with a forced error to exercise the infrastructure failure paths.

type fakeProductRepo struct {
	products   []Product
	guarantees []Guarantee
	err        error
}

func (f *fakeProductRepo) List(context.Context) ([]Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	var active []Product
	for _, p := range f.products {
		if p.Status == StatusActive {
			active = append(active, p)
		}
	}
	return active, nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id int64) (Product, error) {
	if f.err != nil {
		return Product{}, f.err
	}
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (f *fakeProductRepo) GetByCode(_ context.Context, code string) (Product, error) {
	if f.err != nil {
		return Product{}, f.err
	}
	for _, p := range f.products {
		if p.Code == code {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (f *fakeProductRepo) GuaranteesFor(_ context.Context, productID int64) ([]Guarantee, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []Guarantee
	for _, g := range f.guarantees {
		if g.ProductID == productID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) GetGuarantee(_ context.Context, productID int64, code string) (Guarantee, error) {
	if f.err != nil {
		return Guarantee{}, f.err
	}
	for _, g := range f.guarantees {
		if g.ProductID == productID && g.Code == code {
			return g, nil
		}
	}
	return Guarantee{}, ErrNotFound
}

func (f *fakeProductRepo) Upsert(_ context.Context, p Product, gs []Guarantee) error {
	if f.err != nil {
		return f.err
	}
	f.products = append(f.products, p)
	f.guarantees = append(f.guarantees, gs...)
	return nil
}

type fakeContractRepo struct {
	contracts map[int64]Contract
	nextID    int64
	refSeq    int
	err       error
}

func newFakeContractRepo(contracts ...Contract) *fakeContractRepo {
	f := &fakeContractRepo{contracts: make(map[int64]Contract)}
	for _, c := range contracts {
		f.contracts[c.ID] = c
		if c.ID > f.nextID {
			f.nextID = c.ID
		}
	}
	return f
}

func (f *fakeContractRepo) Create(_ context.Context, c Contract) (Contract, error) {
	if f.err != nil {
		return Contract{}, f.err
	}
	if c.ID == 0 {
		f.nextID++
		c.ID = f.nextID
	}
	f.contracts[c.ID] = c
	return c, nil
}

func (f *fakeContractRepo) Get(_ context.Context, id int64) (Contract, error) {
	if f.err != nil {
		return Contract{}, f.err
	}
	c, ok := f.contracts[id]
	if !ok {
		return Contract{}, ErrNotFound
	}
	return c, nil
}

func (f *fakeContractRepo) GetByReference(_ context.Context, reference string) (Contract, error) {
	if f.err != nil {
		return Contract{}, f.err
	}
	for _, c := range f.contracts {
		if c.Reference == reference {
			return c, nil
		}
	}
	return Contract{}, ErrNotFound
}

func (f *fakeContractRepo) List(_ context.Context, status Status) ([]Contract, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []Contract
	for _, c := range f.contracts {
		if status == "" || c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeContractRepo) ListByBroker(_ context.Context, brokerID int64) ([]Contract, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []Contract
	for _, c := range f.contracts {
		if c.BrokerID == brokerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeContractRepo) Update(_ context.Context, c Contract) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.contracts[c.ID]; !ok {
		return ErrNotFound
	}
	f.contracts[c.ID] = c
	return nil
}

func (f *fakeContractRepo) FindExpired(_ context.Context, asOf time.Time, limit int) ([]Contract, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []Contract
	for _, c := range f.contracts {
		if c.Status == StatusActive && c.EndDate.Before(asOf) {
			out = append(out, c)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeContractRepo) NextReference(_ context.Context, brokerID int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.refSeq++
	return fmt.Sprintf("DAS-2025-%05d-%06d", brokerID, f.refSeq), nil
}

type fakeClaimRepo struct {
	claims map[int64]Claim
	nextID int64
	refSeq int
	err    error
}

func newFakeClaimRepo(claims ...Claim) *fakeClaimRepo {
	f := &fakeClaimRepo{claims: make(map[int64]Claim)}
	for _, c := range claims {
		f.claims[c.ID] = c
		if c.ID > f.nextID {
			f.nextID = c.ID
		}
	}
	return f
}

func (f *fakeClaimRepo) Create(_ context.Context, c Claim) (Claim, error) {
	if f.err != nil {
		return Claim{}, f.err
	}
	if c.ID == 0 {
		f.nextID++
		c.ID = f.nextID
	}
	f.claims[c.ID] = c
	return c, nil
}

func (f *fakeClaimRepo) Get(_ context.Context, id int64) (Claim, error) {
	if f.err != nil {
		return Claim{}, f.err
	}
	c, ok := f.claims[id]
	if !ok {
		return Claim{}, ErrNotFound
	}
	return c, nil
}

func (f *fakeClaimRepo) GetByReference(_ context.Context, reference string) (Claim, error) {
	if f.err != nil {
		return Claim{}, f.err
	}
	for _, c := range f.claims {
		if c.Reference == reference {
			return c, nil
		}
	}
	return Claim{}, ErrNotFound
}

func (f *fakeClaimRepo) List(_ context.Context, status ClaimStatus) ([]Claim, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []Claim
	for _, c := range f.claims {
		if status == "" || c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeClaimRepo) NextReference(context.Context) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.refSeq++
	return fmt.Sprintf("SIN-2025-%06d", f.refSeq), nil
}

type fakeStatsRepo struct {
	contracts ContractStats
	claims    ClaimStats
	revenue   RevenueStats
	byStatus  []StatusCount
	top       []ProductCount
	recent    []Claim
	err       error
}

func (f *fakeStatsRepo) ContractStats(context.Context) (ContractStats, error) {
	return f.contracts, f.err
}

func (f *fakeStatsRepo) ClaimStats(context.Context) (ClaimStats, error) {
	return f.claims, f.err
}

func (f *fakeStatsRepo) RevenueStats(context.Context) (RevenueStats, error) {
	return f.revenue, f.err
}

func (f *fakeStatsRepo) ClaimsByStatus(context.Context) ([]StatusCount, error) {
	return f.byStatus, f.err
}

func (f *fakeStatsRepo) TopProducts(context.Context, int) ([]ProductCount, error) {
	return f.top, f.err
}

func (f *fakeStatsRepo) RecentClaims(context.Context, int) ([]Claim, error) {
	return f.recent, f.err
}

func intPtr(n int) *int { return &n }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
