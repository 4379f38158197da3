package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus follows forward-only transitions: DRAFT → PUBLISHED → STORNO.
// A draft may still be discarded (LIFO only, see Registry); a published invoice
// keeps its consumed sequence number forever.
type InvoiceStatus int

const (
	StatusDraft InvoiceStatus = iota
	StatusPublished
	StatusStorno
)

func (s InvoiceStatus) String() string {
	switch s {
	case StatusDraft:
		return "draft"
	case StatusPublished:
		return "published"
	case StatusStorno:
		return "storno"
	}
	return "unknown"
}

// CanTransition reports whether moving to next follows the status chain by
// exactly one step. Skipping PUBLISHED is not allowed; only a published
// invoice can be reversed.
func (s InvoiceStatus) CanTransition(next InvoiceStatus) bool {
	return next == s+1
}

// TimeInvoice bills a quantity of time units against a service contract.
// Seller and buyer reference frozen FiscalEntity snapshots; unit, rate and
// currency are copies of the contract values at issue time.
type TimeInvoice struct {
	ID         string
	RegistryID string
	SellerID   string
	BuyerID    string
	ContractID string

	Series string
	Number int
	Status InvoiceStatus

	Description string
	Currency    string
	// ConversionRate converts the contract currency into the invoicing
	// currency (multiplicative, invoice-currency-per-contract-currency).
	// Absent means no conversion applies.
	ConversionRate      decimal.NullDecimal
	Unit                string
	UnitRate            decimal.Decimal
	AttachedCost        decimal.NullDecimal
	AttachedDescription string

	IssueDate  time.Time
	Quantity   decimal.Decimal
	IncludeVAT int // percentage, 0..100

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SeriesNumber is the human-readable invoice identifier, e.g. "AAA-0007".
func (i *TimeInvoice) SeriesNumber() string {
	return FormatSeriesNumber(i.Series, i.Number)
}

// FormatSeriesNumber concatenates series and zero-padded sequence number.
func FormatSeriesNumber(series string, number int) string {
	return fmt.Sprintf("%s-%04d", series, number)
}

// ParseSeriesNumber splits "AAA-0007" back into ("AAA", 7). The series itself
// may contain dashes; the number is everything after the last one.
func ParseSeriesNumber(s string) (series string, number int, err error) {
	at := strings.LastIndex(s, "-")
	if at <= 0 || at == len(s)-1 {
		return "", 0, fmt.Errorf("malformed series number %q", s)
	}
	number, err = strconv.Atoi(s[at+1:])
	if err != nil {
		return "", 0, fmt.Errorf("malformed series number %q: %w", s, err)
	}
	return s[:at], number, nil
}
