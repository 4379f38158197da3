// Package billing holds the pure invoice valuation logic: decimal-exact
// monetary computation over a TimeInvoice record, series number handling and
// description template resolution. It has no rendering or storage dependency.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/kopsha/micro-invoicer/internal/domain"
	"github.com/kopsha/micro-invoicer/internal/domain/entity"
)

var oneHundred = decimal.NewFromInt(100)

// Valuation carries every monetary quantity derived from one invoice.
// All values are exact decimals; rounding happens only at display time.
type Valuation struct {
	UnitPrice decimal.Decimal // unit_rate * conversion
	TimeValue decimal.Decimal // unit_rate * quantity * conversion
	VATValue  decimal.Decimal // time_value * include_vat / 100
	Total     decimal.Decimal // time_value + vat_value + attached_cost
}

// Valuate computes the invoice values.
//
// Absent conversion rate defaults to 1 and absent attached cost to 0; these
// are the only permitted silent defaults. A zero unit rate, zero quantity or
// empty currency is a data fault and yields a MissingInvoiceDataError so the
// caller aborts before any rendering starts.
func Valuate(inv *entity.TimeInvoice) (Valuation, error) {
	if inv.UnitRate.IsZero() {
		return Valuation{}, &domain.MissingInvoiceDataError{InvoiceID: inv.SeriesNumber(), Field: "unit_rate"}
	}
	if inv.Quantity.IsZero() {
		return Valuation{}, &domain.MissingInvoiceDataError{InvoiceID: inv.SeriesNumber(), Field: "quantity"}
	}
	if inv.Currency == "" {
		return Valuation{}, &domain.MissingInvoiceDataError{InvoiceID: inv.SeriesNumber(), Field: "currency"}
	}

	conversion := decimal.NewFromInt(1)
	if inv.ConversionRate.Valid {
		conversion = inv.ConversionRate.Decimal
	}

	v := Valuation{}
	v.UnitPrice = inv.UnitRate.Mul(conversion)
	v.TimeValue = inv.UnitRate.Mul(inv.Quantity).Mul(conversion)
	v.VATValue = v.TimeValue.Mul(decimal.NewFromInt(int64(inv.IncludeVAT))).Div(oneHundred)

	v.Total = v.TimeValue.Add(v.VATValue)
	if inv.AttachedCost.Valid {
		v.Total = v.Total.Add(inv.AttachedCost.Decimal)
	}
	return v, nil
}
