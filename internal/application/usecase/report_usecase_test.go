package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kopsha/micro-invoicer/internal/application/usecase"
	"github.com/kopsha/micro-invoicer/internal/domain/entity"
	"github.com/kopsha/micro-invoicer/internal/infrastructure/rates"
	"github.com/kopsha/micro-invoicer/pkg/logger"
)

func reportFixture(t *testing.T) (*memStore, *usecase.ReportUseCase) {
	t.Helper()
	store := newMemStore()
	uc := usecase.NewReportUseCase(
		&memInvoiceRepo{store},
		rates.NewStaticProvider(nil),
		entity.CurrencyEUR,
		logger.New(logger.Config{Env: "test", Level: "error"}),
	)
	return store, uc
}

func addInvoice(store *memStore, issued time.Time, currency string, rate, qty int64, status entity.InvoiceStatus) {
	id := uuid.New().String()
	store.invoices[id] = &entity.TimeInvoice{
		ID: id, RegistryID: "reg-1", Series: "AAA", Number: len(store.invoices) + 1,
		Status:    status,
		Currency:  currency,
		Unit:      entity.UnitHour,
		UnitRate:  decimal.NewFromInt(rate),
		Quantity:  decimal.NewFromInt(qty),
		IssueDate: issued,
	}
}

func TestRevenueBucketsByMonthAndQuarter(t *testing.T) {
	store, uc := reportFixture(t)
	addInvoice(store, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), entity.CurrencyEUR, 50, 100, entity.StatusPublished)
	addInvoice(store, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), entity.CurrencyEUR, 50, 20, entity.StatusPublished)
	addInvoice(store, time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC), entity.CurrencyEUR, 50, 40, entity.StatusPublished)

	report, err := uc.Revenue(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Monthly, 2)
	assert.Equal(t, "2026-01", report.Monthly[0].Period)
	assert.Equal(t, 2, report.Monthly[0].Invoices)
	assert.True(t, report.Monthly[0].Revenue.Equal(decimal.NewFromInt(6000)),
		"January holds 5000 + 1000, got %s", report.Monthly[0].Revenue)
	assert.Equal(t, "2026-04", report.Monthly[1].Period)

	require.Len(t, report.Quarterly, 2)
	assert.Equal(t, "2026-Q1", report.Quarterly[0].Period)
	assert.Equal(t, "2026-Q2", report.Quarterly[1].Period)
	assert.True(t, report.Quarterly[1].Revenue.Equal(decimal.NewFromInt(2000)))
}

func TestRevenueConvertsForeignCurrencies(t *testing.T) {
	store, uc := reportFixture(t)
	// 4950 lei at the default 4.95 lei/EUR quote comes out as exactly 1000
	addInvoice(store, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), entity.CurrencyRON, 45, 110, entity.StatusPublished)

	report, err := uc.Revenue(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Monthly, 1)
	assert.Equal(t, entity.CurrencyEUR, report.Currency)
	assert.True(t, report.Monthly[0].Revenue.Equal(decimal.NewFromInt(1000)),
		"expected 4950 lei / 4.95 = 1000, got %s", report.Monthly[0].Revenue)
}

func TestRevenueSkipsReversedInvoices(t *testing.T) {
	store, uc := reportFixture(t)
	addInvoice(store, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), entity.CurrencyEUR, 50, 100, entity.StatusPublished)
	addInvoice(store, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), entity.CurrencyEUR, 50, 100, entity.StatusStorno)

	report, err := uc.Revenue(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Monthly, 1)
	assert.Equal(t, 1, report.Monthly[0].Invoices, "reversed invoices carry no revenue")
}

func TestRevenueEmptyLedger(t *testing.T) {
	_, uc := reportFixture(t)

	report, err := uc.Revenue(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Monthly)
	assert.Empty(t, report.Quarterly)
}

func TestRevenueFailsOnUnknownCurrency(t *testing.T) {
	store, uc := reportFixture(t)
	addInvoice(store, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), "gbp", 50, 10, entity.StatusPublished)

	_, err := uc.Revenue(context.Background())
	assert.Error(t, err, "an invoice in a currency without a quote cannot be reported")
}
