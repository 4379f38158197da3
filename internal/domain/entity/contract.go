package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Billing units.
const (
	UnitHour  = "hr"
	UnitDay   = "d"
	UnitMonth = "mo"
)

// Supported currencies (lowercase codes, as stored).
const (
	CurrencyRON = "ron"
	CurrencyEUR = "eur"
	CurrencyUSD = "usd"
)

// ServiceContract is an agreement with one buyer. Invoices copy unit, rate and
// currency from the contract at issue time instead of live-linking, so later
// contract edits never alter published invoices.
type ServiceContract struct {
	ID                string
	RegistryID        string
	BuyerID           string
	RegistrationNo    string
	RegistrationDate  time.Time
	Currency          string // billing currency
	Unit              string
	UnitRate          decimal.Decimal
	InvoicingCurrency string
	// Description template; may contain {this_month} / {last_month}
	// placeholders resolved when an invoice is issued.
	InvoicingDescription string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
