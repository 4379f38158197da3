// Package rates resolves currency conversion rates for the revenue report.
package rates

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kopsha/micro-invoicer/internal/application/usecase"
)

var _ usecase.RateProvider = (*StaticProvider)(nil)

// StaticProvider serves fixed rates quoted against the reporting currency.
// It stands in for a live quotation feed; the report divides invoice totals
// by these values.
type StaticProvider struct {
	rates map[string]decimal.Decimal
}

// NewStaticProvider builds a provider with the given quotes, on top of the
// built-in defaults (eur 1, ron 4.95, usd 1.08).
func NewStaticProvider(overrides map[string]decimal.Decimal) *StaticProvider {
	rates := map[string]decimal.Decimal{
		"eur": decimal.NewFromInt(1),
		"ron": decimal.RequireFromString("4.95"),
		"usd": decimal.RequireFromString("1.08"),
	}
	for currency, rate := range overrides {
		rates[strings.ToLower(currency)] = rate
	}
	return &StaticProvider{rates: rates}
}

// Rate returns the quote for one currency. The asOf date is accepted for
// interface compatibility; static quotes do not vary over time.
func (p *StaticProvider) Rate(ctx context.Context, currency string, asOf time.Time) (decimal.Decimal, error) {
	rate, ok := p.rates[strings.ToLower(currency)]
	if !ok || rate.IsZero() {
		return decimal.Decimal{}, fmt.Errorf("no rate quoted for %q", currency)
	}
	return rate, nil
}
