package usecase_test

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kopsha/micro-invoicer/internal/application/dto"
	"github.com/kopsha/micro-invoicer/internal/application/usecase"
	"github.com/kopsha/micro-invoicer/internal/domain"
	"github.com/kopsha/micro-invoicer/internal/domain/entity"
	"github.com/kopsha/micro-invoicer/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory fakes: one store shared by every repository and the tx runner.
// Transactions are not simulated; tests only assert end-state semantics.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	registries map[string]*entity.Registry
	entities   map[string]*entity.FiscalEntity
	contracts  map[string]*entity.ServiceContract
	invoices   map[string]*entity.TimeInvoice
}

func newMemStore() *memStore {
	return &memStore{
		registries: map[string]*entity.Registry{},
		entities:   map[string]*entity.FiscalEntity{},
		contracts:  map[string]*entity.ServiceContract{},
		invoices:   map[string]*entity.TimeInvoice{},
	}
}

type memRegistryRepo struct{ s *memStore }

func (r *memRegistryRepo) Create(reg *entity.Registry) error {
	cp := *reg
	r.s.registries[reg.ID] = &cp
	return nil
}
func (r *memRegistryRepo) GetByID(id string) (*entity.Registry, error) {
	if reg, ok := r.s.registries[id]; ok {
		cp := *reg
		return &cp, nil
	}
	return nil, nil
}
func (r *memRegistryRepo) LockByID(id string) (*entity.Registry, error) { return r.GetByID(id) }
func (r *memRegistryRepo) List() ([]*entity.Registry, error) {
	var out []*entity.Registry
	for _, reg := range r.s.registries {
		cp := *reg
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
func (r *memRegistryRepo) Update(reg *entity.Registry) error {
	if _, ok := r.s.registries[reg.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *reg
	r.s.registries[reg.ID] = &cp
	return nil
}
func (r *memRegistryRepo) UpdateNextNumber(id string, nextNumber int) error {
	reg, ok := r.s.registries[id]
	if !ok {
		return domain.ErrNotFound
	}
	reg.NextNumber = nextNumber
	return nil
}
func (r *memRegistryRepo) Delete(id string) error {
	if _, ok := r.s.registries[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.registries, id)
	return nil
}

type memEntityRepo struct{ s *memStore }

func (r *memEntityRepo) Create(fe *entity.FiscalEntity) error {
	cp := *fe
	r.s.entities[fe.ID] = &cp
	return nil
}
func (r *memEntityRepo) GetByID(id string) (*entity.FiscalEntity, error) {
	if fe, ok := r.s.entities[id]; ok {
		cp := *fe
		return &cp, nil
	}
	return nil, nil
}
func (r *memEntityRepo) Update(fe *entity.FiscalEntity) error {
	if _, ok := r.s.entities[fe.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *fe
	r.s.entities[fe.ID] = &cp
	return nil
}

type memContractRepo struct{ s *memStore }

func (r *memContractRepo) Create(c *entity.ServiceContract) error {
	cp := *c
	r.s.contracts[c.ID] = &cp
	return nil
}
func (r *memContractRepo) GetByID(id string) (*entity.ServiceContract, error) {
	if c, ok := r.s.contracts[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}
func (r *memContractRepo) ListByRegistry(registryID string) ([]*entity.ServiceContract, error) {
	var out []*entity.ServiceContract
	for _, c := range r.s.contracts {
		if c.RegistryID == registryID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (r *memContractRepo) Update(c *entity.ServiceContract) error {
	if _, ok := r.s.contracts[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.s.contracts[c.ID] = &cp
	return nil
}
func (r *memContractRepo) Delete(id string) error {
	delete(r.s.contracts, id)
	return nil
}

type memInvoiceRepo struct{ s *memStore }

func (r *memInvoiceRepo) Create(inv *entity.TimeInvoice) error {
	cp := *inv
	r.s.invoices[inv.ID] = &cp
	return nil
}
func (r *memInvoiceRepo) GetByID(id string) (*entity.TimeInvoice, error) {
	if inv, ok := r.s.invoices[id]; ok {
		cp := *inv
		return &cp, nil
	}
	return nil, nil
}
func (r *memInvoiceRepo) GetLastByRegistry(registryID string) (*entity.TimeInvoice, error) {
	var last *entity.TimeInvoice
	for _, inv := range r.s.invoices {
		if inv.RegistryID != registryID {
			continue
		}
		if last == nil || inv.Number > last.Number {
			cp := *inv
			last = &cp
		}
	}
	return last, nil
}
func (r *memInvoiceRepo) ListByRegistry(registryID string) ([]*entity.TimeInvoice, error) {
	var out []*entity.TimeInvoice
	for _, inv := range r.s.invoices {
		if inv.RegistryID == registryID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number > out[j].Number })
	return out, nil
}
func (r *memInvoiceRepo) ListAll() ([]*entity.TimeInvoice, error) {
	var out []*entity.TimeInvoice
	for _, inv := range r.s.invoices {
		cp := *inv
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IssueDate.Before(out[j].IssueDate) })
	return out, nil
}
func (r *memInvoiceRepo) UpdateStatus(id string, status entity.InvoiceStatus) error {
	inv, ok := r.s.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Status = status
	return nil
}
func (r *memInvoiceRepo) Delete(id string) error {
	if _, ok := r.s.invoices[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.invoices, id)
	return nil
}
func (r *memInvoiceRepo) CountByRegistry(registryID string) (int, error) {
	count := 0
	for _, inv := range r.s.invoices {
		if inv.RegistryID == registryID {
			count++
		}
	}
	return count, nil
}

type memTxRunner struct{ s *memStore }

func (t *memTxRunner) RunIssuing(ctx context.Context, fn func(repos usecase.IssuingRepos) error) error {
	return fn(usecase.IssuingRepos{
		Registries: &memRegistryRepo{t.s},
		Entities:   &memEntityRepo{t.s},
		Contracts:  &memContractRepo{t.s},
		Invoices:   &memInvoiceRepo{t.s},
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture wiring
// ──────────────────────────────────────────────────────────────────────────────

type issueFixture struct {
	store    *memStore
	uc       *usecase.IssueInvoiceUseCase
	registry *entity.Registry
	contract *entity.ServiceContract
	seller   *entity.FiscalEntity
	buyer    *entity.FiscalEntity
}

func newIssueFixture(t *testing.T) *issueFixture {
	t.Helper()
	store := newMemStore()
	log := logger.New(logger.Config{Env: "test", Level: "error"})

	seller := &entity.FiscalEntity{ID: uuid.New().String(), Name: "Kopsha SRL", OwnerFullname: "Ana Kopsha", Country: "RO"}
	buyer := &entity.FiscalEntity{ID: uuid.New().String(), Name: "Clockwork AG", OwnerFullname: "Max Muster", Country: "CH"}
	store.entities[seller.ID] = seller
	store.entities[buyer.ID] = buyer

	registry := &entity.Registry{
		ID: uuid.New().String(), SellerID: seller.ID,
		InvoiceSeries: "AAA", NextNumber: 7, IncludeVAT: 0,
	}
	store.registries[registry.ID] = registry

	contract := &entity.ServiceContract{
		ID: uuid.New().String(), RegistryID: registry.ID, BuyerID: buyer.ID,
		RegistrationNo: "42", RegistrationDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		Currency: entity.CurrencyEUR, Unit: entity.UnitHour,
		UnitRate:             decimal.NewFromInt(50),
		InvoicingDescription: "Software services, {last_month}",
	}
	store.contracts[contract.ID] = contract

	uc := usecase.NewIssueInvoiceUseCase(
		&memTxRunner{store}, &memInvoiceRepo{store}, &memEntityRepo{store}, &memRegistryRepo{store}, log,
	)
	return &issueFixture{store: store, uc: uc, registry: registry, contract: contract, seller: seller, buyer: buyer}
}

func (f *issueFixture) issue(t *testing.T, quantity int64) *dto.InvoiceResponse {
	t.Helper()
	resp, err := f.uc.Issue(context.Background(), f.registry.ID, dto.IssueInvoiceRequest{
		ContractID: f.contract.ID,
		IssueDate:  time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		Quantity:   decimal.NewFromInt(quantity),
	})
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Publishing
// ──────────────────────────────────────────────────────────────────────────────

func TestIssueAssignsSequenceAndAdvancesCounter(t *testing.T) {
	f := newIssueFixture(t)

	first := f.issue(t, 120)
	second := f.issue(t, 80)

	assert.Equal(t, "AAA-0007", first.SeriesNumber)
	assert.Equal(t, "AAA-0008", second.SeriesNumber)
	assert.Equal(t, 9, f.store.registries[f.registry.ID].NextNumber)
	assert.Equal(t, "published", first.Status)
}

func TestIssueCopiesContractTermsAndValuates(t *testing.T) {
	f := newIssueFixture(t)

	resp := f.issue(t, 120)

	assert.Equal(t, entity.UnitHour, resp.Unit)
	assert.Equal(t, entity.CurrencyEUR, resp.Currency)
	assert.True(t, resp.UnitRate.Equal(decimal.NewFromInt(50)))
	assert.True(t, resp.Valuation.Total.Equal(decimal.NewFromInt(6000)),
		"50/h * 120h with no VAT should be 6000, got %s", resp.Valuation.Total)
}

func TestIssueResolvesDescriptionTemplate(t *testing.T) {
	f := newIssueFixture(t)

	resp := f.issue(t, 120)

	// buyer is international, so month names come out in English
	assert.Equal(t, "Software services, February 2026", resp.Description)
}

func TestIssueSnapshotsParties(t *testing.T) {
	f := newIssueFixture(t)

	resp := f.issue(t, 120)

	stored := f.store.invoices[resp.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, f.seller.ID, stored.SellerID, "invoice must reference a snapshot, not the live seller")
	assert.NotEqual(t, f.buyer.ID, stored.BuyerID)

	// mutating the live entity leaves the snapshot untouched
	f.store.entities[f.seller.ID].Name = "Renamed SRL"
	snap := f.store.entities[stored.SellerID]
	require.NotNil(t, snap)
	assert.Equal(t, "Kopsha SRL", snap.Name)
}

func TestIssueRejectsForeignContract(t *testing.T) {
	f := newIssueFixture(t)
	other := &entity.Registry{ID: uuid.New().String(), SellerID: f.seller.ID, InvoiceSeries: "BBB", NextNumber: 1}
	f.store.registries[other.ID] = other

	_, err := f.uc.Issue(context.Background(), other.ID, dto.IssueInvoiceRequest{
		ContractID: f.contract.ID,
		Quantity:   decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestIssueRejectsNonPositiveQuantity(t *testing.T) {
	f := newIssueFixture(t)

	_, err := f.uc.Issue(context.Background(), f.registry.ID, dto.IssueInvoiceRequest{
		ContractID: f.contract.ID,
		Quantity:   decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListInvoicesPaginates(t *testing.T) {
	f := newIssueFixture(t)
	for i := 0; i < 3; i++ {
		f.issue(t, 10)
	}

	first, err := f.uc.ListByRegistry(f.registry.ID, dto.PageRequest{Page: 1, Size: 2})
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "AAA-0009", first[0].SeriesNumber, "listing starts at the newest invoice")

	second, err := f.uc.ListByRegistry(f.registry.ID, dto.PageRequest{Page: 2, Size: 2})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "AAA-0007", second[0].SeriesNumber)

	beyond, err := f.uc.ListByRegistry(f.registry.ID, dto.PageRequest{Page: 9, Size: 2})
	require.NoError(t, err)
	assert.Empty(t, beyond, "pages past the end are empty, not an error")

	all, err := f.uc.ListByRegistry(f.registry.ID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 3, "zero values fall back to the first default-sized page")
}

// ──────────────────────────────────────────────────────────────────────────────
// Discarding (LIFO only)
// ──────────────────────────────────────────────────────────────────────────────

func TestDiscardLastInvoiceRewindsCounter(t *testing.T) {
	f := newIssueFixture(t)
	first := f.issue(t, 120)
	second := f.issue(t, 80)

	err := f.uc.Discard(context.Background(), f.registry.ID, second.ID)
	require.NoError(t, err)

	assert.Equal(t, 8, f.store.registries[f.registry.ID].NextNumber, "the discarded number goes back to the counter")
	assert.Nil(t, f.store.invoices[second.ID])
	assert.NotNil(t, f.store.invoices[first.ID], "older invoices stay put")

	// the next publish reuses the freed number
	third := f.issue(t, 40)
	assert.Equal(t, "AAA-0008", third.SeriesNumber)
}

func TestDiscardRefusesNonLastInvoice(t *testing.T) {
	f := newIssueFixture(t)
	first := f.issue(t, 120)
	f.issue(t, 80)

	err := f.uc.Discard(context.Background(), f.registry.ID, first.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "removing an older invoice would leave a hole in the series")
	assert.NotNil(t, f.store.invoices[first.ID])
}

func TestDiscardUnknownInvoice(t *testing.T) {
	f := newIssueFixture(t)
	f.issue(t, 120)

	err := f.uc.Discard(context.Background(), f.registry.ID, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Storno
// ──────────────────────────────────────────────────────────────────────────────

func TestStornoMovesStatusForwardOnce(t *testing.T) {
	f := newIssueFixture(t)
	issued := f.issue(t, 120)

	reversed, err := f.uc.Storno(issued.ID)
	require.NoError(t, err)
	assert.Equal(t, "storno", reversed.Status)
	assert.Equal(t, issued.SeriesNumber, reversed.SeriesNumber, "the sequence number stays consumed")

	_, err = f.uc.Storno(issued.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "status never moves backwards or repeats")
}

func TestStornoUnknownInvoice(t *testing.T) {
	f := newIssueFixture(t)

	_, err := f.uc.Storno(uuid.New().String())
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
