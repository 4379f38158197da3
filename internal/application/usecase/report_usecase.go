package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/kopsha/micro-invoicer/internal/application/dto"
	"github.com/kopsha/micro-invoicer/internal/domain/billing"
	"github.com/kopsha/micro-invoicer/internal/domain/entity"
	"github.com/kopsha/micro-invoicer/internal/domain/repository"
	"github.com/kopsha/micro-invoicer/pkg/logger"
)

// ReportUseCase aggregates published invoices into monthly and quarterly
// revenue buckets, converted into a single reporting currency.
type ReportUseCase struct {
	invoiceRepo repository.InvoiceRepository
	rates       RateProvider
	currency    string
	log         *logger.Logger
}

// NewReportUseCase builds the use case with its dependencies.
func NewReportUseCase(
	invoiceRepo repository.InvoiceRepository,
	rates RateProvider,
	currency string,
	log *logger.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		invoiceRepo: invoiceRepo,
		rates:       rates,
		currency:    currency,
		log:         log,
	}
}

type bucket struct {
	invoices int
	revenue  decimal.Decimal
}

// Revenue builds the revenue report over every published invoice. Invoice
// totals are divided by the exchange rate of their own currency, quoted
// against the reporting currency as of the issue date. Reversed invoices are
// excluded.
func (uc *ReportUseCase) Revenue(ctx context.Context) (*dto.RevenueReportResponse, error) {
	invoices, err := uc.invoiceRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}

	monthly := map[string]*bucket{}
	quarterly := map[string]*bucket{}

	for _, inv := range invoices {
		if inv.Status != entity.StatusPublished {
			continue
		}
		valuation, err := billing.Valuate(inv)
		if err != nil {
			return nil, err
		}

		revenue := valuation.Total
		if inv.Currency != uc.currency {
			rate, err := uc.rates.Rate(ctx, inv.Currency, inv.IssueDate)
			if err != nil {
				return nil, fmt.Errorf("resolving %s rate for %s: %w", inv.Currency, inv.SeriesNumber(), err)
			}
			revenue = revenue.Div(rate)
		}

		month := inv.IssueDate.Format("2006-01")
		quarter := fmt.Sprintf("%d-Q%d", inv.IssueDate.Year(), (int(inv.IssueDate.Month())-1)/3+1)
		accumulate(monthly, month, revenue)
		accumulate(quarterly, quarter, revenue)
	}

	resp := &dto.RevenueReportResponse{
		Currency:  uc.currency,
		Monthly:   flatten(monthly),
		Quarterly: flatten(quarterly),
	}

	uc.log.Debug().
		Int("months", len(resp.Monthly)).
		Int("quarters", len(resp.Quarterly)).
		Msg("revenue report built")

	return resp, nil
}

func accumulate(m map[string]*bucket, key string, revenue decimal.Decimal) {
	b, ok := m[key]
	if !ok {
		b = &bucket{}
		m[key] = b
	}
	b.invoices++
	b.revenue = b.revenue.Add(revenue)
}

func flatten(m map[string]*bucket) []dto.RevenuePeriod {
	out := make([]dto.RevenuePeriod, 0, len(m))
	for key, b := range m {
		out = append(out, dto.RevenuePeriod{Period: key, Invoices: b.invoices, Revenue: b.revenue})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}
