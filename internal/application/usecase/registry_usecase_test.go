package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kopsha/micro-invoicer/internal/application/dto"
	"github.com/kopsha/micro-invoicer/internal/application/usecase"
	"github.com/kopsha/micro-invoicer/internal/domain"
	"github.com/kopsha/micro-invoicer/pkg/logger"
)

func registryFixture(t *testing.T) (*memStore, *usecase.RegistryUseCase, *usecase.ContractUseCase) {
	t.Helper()
	store := newMemStore()
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	registryUC := usecase.NewRegistryUseCase(
		&memRegistryRepo{store}, &memEntityRepo{store}, &memInvoiceRepo{store}, log)
	contractUC := usecase.NewContractUseCase(
		&memRegistryRepo{store}, &memContractRepo{store}, &memEntityRepo{store}, log)
	return store, registryUC, contractUC
}

func sellerPayload() dto.FiscalEntityPayload {
	return dto.FiscalEntityPayload{
		Name: "Kopsha SRL", OwnerFullname: "Ana Kopsha", Country: "RO",
		RegistrationID: "J40/1/2020", FiscalCode: "RO123",
		Address: "Str. Lunga 1, Bucharest", BankAccount: "RO49AAAA1B31", BankName: "BT",
	}
}

func TestCreateRegistryDefaultsCounterToOne(t *testing.T) {
	store, uc, _ := registryFixture(t)

	resp, err := uc.Create(dto.CreateRegistryRequest{
		DisplayName: "freelancing", InvoiceSeries: "AAA", IncludeVAT: 19, Seller: sellerPayload(),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.NextNumber)
	assert.Equal(t, "AAA", resp.InvoiceSeries)
	assert.Equal(t, "Kopsha SRL", resp.Seller.Name)
	assert.NotNil(t, store.registries[resp.ID])
	assert.NotNil(t, store.entities[resp.Seller.ID], "the seller entity is stored alongside")
}

func TestCreateRegistryValidation(t *testing.T) {
	_, uc, _ := registryFixture(t)

	_, err := uc.Create(dto.CreateRegistryRequest{Seller: sellerPayload()})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "series is mandatory")

	_, err = uc.Create(dto.CreateRegistryRequest{InvoiceSeries: "AAA", IncludeVAT: 120, Seller: sellerPayload()})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "vat percentage is bounded")

	_, err = uc.Create(dto.CreateRegistryRequest{InvoiceSeries: "AAA"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "seller identity is mandatory")
}

func TestUpdateRegistrySettings(t *testing.T) {
	store, uc, _ := registryFixture(t)
	created, err := uc.Create(dto.CreateRegistryRequest{
		DisplayName: "freelancing", InvoiceSeries: "AAA", NextNumber: 5, Seller: sellerPayload(),
	})
	require.NoError(t, err)

	updated, err := uc.Update(created.ID, dto.UpdateRegistryRequest{DisplayName: "consulting", IncludeVAT: 19})
	require.NoError(t, err)

	assert.Equal(t, "consulting", updated.DisplayName)
	assert.Equal(t, 19, updated.IncludeVAT)
	assert.Equal(t, "AAA", updated.InvoiceSeries, "the series is immutable")
	assert.Equal(t, 5, store.registries[created.ID].NextNumber, "the counter is immutable")

	_, err = uc.Update(created.ID, dto.UpdateRegistryRequest{IncludeVAT: 120})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateSellerKeepsSnapshotsApart(t *testing.T) {
	_, uc, _ := registryFixture(t)
	created, err := uc.Create(dto.CreateRegistryRequest{InvoiceSeries: "AAA", Seller: sellerPayload()})
	require.NoError(t, err)

	renamed := sellerPayload()
	renamed.Name = "Kopsha Consulting SRL"
	updated, err := uc.UpdateSeller(created.ID, renamed)
	require.NoError(t, err)

	assert.Equal(t, "Kopsha Consulting SRL", updated.Seller.Name)
	assert.Equal(t, created.Seller.ID, updated.Seller.ID, "the live seller row is edited in place")
}

func TestDeleteRegistryRefusesWhenInvoicesExist(t *testing.T) {
	f := newIssueFixture(t)
	registryUC := usecase.NewRegistryUseCase(
		&memRegistryRepo{f.store}, &memEntityRepo{f.store}, &memInvoiceRepo{f.store},
		logger.New(logger.Config{Env: "test", Level: "error"}))
	f.issue(t, 120)

	err := registryUC.Delete(f.registry.ID)
	assert.ErrorIs(t, err, domain.ErrRegistryNotEmpty)
	assert.NotNil(t, f.store.registries[f.registry.ID])
}

func TestDeleteEmptyRegistry(t *testing.T) {
	store, uc, _ := registryFixture(t)
	created, err := uc.Create(dto.CreateRegistryRequest{InvoiceSeries: "AAA", Seller: sellerPayload()})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(created.ID))
	assert.Nil(t, store.registries[created.ID])
}

func TestCreateContractValidatesTerms(t *testing.T) {
	_, registryUC, contractUC := registryFixture(t)
	reg, err := registryUC.Create(dto.CreateRegistryRequest{InvoiceSeries: "AAA", Seller: sellerPayload()})
	require.NoError(t, err)

	valid := dto.CreateContractRequest{
		Buyer:            dto.FiscalEntityPayload{Name: "Clockwork AG", Country: "CH"},
		RegistrationNo:   "42",
		RegistrationDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		Currency:         "eur",
		Unit:             "hr",
		UnitRate:         decimal.NewFromInt(50),
	}

	resp, err := contractUC.Create(reg.ID, valid)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, resp.RegistryID)
	assert.Equal(t, "Clockwork AG", resp.Buyer.Name)

	bad := valid
	bad.Currency = "gbp"
	_, err = contractUC.Create(reg.ID, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "unsupported currency")

	bad = valid
	bad.Unit = "weeks"
	_, err = contractUC.Create(reg.ID, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "unsupported unit")

	bad = valid
	bad.UnitRate = decimal.Zero
	_, err = contractUC.Create(reg.ID, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "zero rate")

	_, err = contractUC.Create("missing-registry", valid)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateContractLeavesIssuedInvoicesAlone(t *testing.T) {
	f := newIssueFixture(t)
	contractUC := usecase.NewContractUseCase(
		&memRegistryRepo{f.store}, &memContractRepo{f.store}, &memEntityRepo{f.store},
		logger.New(logger.Config{Env: "test", Level: "error"}))

	issued := f.issue(t, 120)

	_, err := contractUC.Update(f.contract.ID, dto.CreateContractRequest{
		Currency: "eur", Unit: "hr", UnitRate: decimal.NewFromInt(75),
	})
	require.NoError(t, err)

	stored := f.store.invoices[issued.ID]
	require.NotNil(t, stored)
	assert.True(t, stored.UnitRate.Equal(decimal.NewFromInt(50)),
		"issued invoices keep the rate they were published with")
}
