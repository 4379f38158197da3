package pdf

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/kopsha/micro-invoicer/internal/domain"
	"github.com/kopsha/micro-invoicer/internal/domain/billing"
	"github.com/kopsha/micro-invoicer/internal/domain/entity"
)

// Mode selects the document language and number conventions. It is resolved
// once per render from the buyer country and passed down; composers never
// switch locale mid-page.
type Mode int

const (
	ModeDomestic Mode = iota
	ModeInternational
)

// internationalCountries is the allow-list of recognized non-domestic buyer
// countries. Anything outside it is a configuration fault.
var internationalCountries = map[string]bool{
	"CH": true,
	"IE": true,
	"NL": true,
}

var countryNames = map[string]string{
	"RO": "Romania",
	"CH": "Switzerland",
	"IE": "Ireland",
	"NL": "Netherlands",
}

// ModeForCountry resolves the rendering mode from a buyer country code.
func ModeForCountry(country string) (Mode, error) {
	code := strings.ToUpper(country)
	switch {
	case code == "RO":
		return ModeDomestic, nil
	case internationalCountries[code]:
		return ModeInternational, nil
	}
	return 0, &domain.UnsupportedLocaleError{Country: country}
}

// Formatter renders numbers, dates and fixed labels for one document. Each
// render builds its own instance, so nothing locale-dependent leaks across
// concurrent renders.
type Formatter struct {
	mode    Mode
	printer *message.Printer
}

// NewFormatter builds the formatter for a resolved mode.
func NewFormatter(mode Mode) *Formatter {
	tag := language.English
	if mode == ModeDomestic {
		tag = language.Romanian
	}
	return &Formatter{mode: mode, printer: message.NewPrinter(tag)}
}

// Domestic reports whether the domestic conventions apply.
func (f *Formatter) Domestic() bool {
	return f.mode == ModeDomestic
}

// Quantity formats a unit count with locale grouping, trimming to at most two
// decimals.
func (f *Formatter) Quantity(d decimal.Decimal) string {
	v, _ := d.Float64()
	return f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

// Money formats an amount with locale grouping and two decimals. Domestic
// documents suffix the colloquial currency ("lei"); international ones prefix
// the ISO code.
func (f *Formatter) Money(d decimal.Decimal, currency string) string {
	v, _ := d.Float64()
	num := f.printer.Sprint(number.Decimal(v,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
	if f.Domestic() && strings.EqualFold(currency, entity.CurrencyRON) {
		return num + " lei"
	}
	if f.Domestic() {
		return num + " " + strings.ToUpper(currency)
	}
	return strings.ToUpper(currency) + " " + num
}

// Rate formats an exchange rate with four decimals.
func (f *Formatter) Rate(d decimal.Decimal) string {
	v, _ := d.Float64()
	return f.printer.Sprint(number.Decimal(v,
		number.MinFractionDigits(4), number.MaxFractionDigits(4)))
}

// Date formats a calendar date, e.g. "05-Mar-2026".
func (f *Formatter) Date(t time.Time) string {
	return t.Format("02-Jan-2006")
}

// MonthYear names a billing period, e.g. "Martie 2026" / "March 2026".
func (f *Formatter) MonthYear(t time.Time) string {
	return billing.MonthYear(t, f.Domestic())
}

// Unit translates a billing unit code for display.
func (f *Formatter) Unit(u string) string {
	units := map[string][2]string{
		entity.UnitHour:  {"ore", "hour(s)"},
		entity.UnitDay:   {"zile", "day(s)"},
		entity.UnitMonth: {"luni", "month(s)"},
	}
	tr, ok := units[u]
	if !ok {
		return u
	}
	if f.Domestic() {
		return tr[0]
	}
	return tr[1]
}

// CountryName resolves the display name of a recognized country code.
func (f *Formatter) CountryName(code string) string {
	if name, ok := countryNames[strings.ToUpper(code)]; ok {
		return name
	}
	return code
}

// InvoiceTitle is the big page title.
func (f *Formatter) InvoiceTitle() string {
	if f.Domestic() {
		return "FACTURA"
	}
	return "INVOICE"
}

// TimesheetTitle is the annex page title.
func (f *Formatter) TimesheetTitle() string {
	if f.Domestic() {
		return "Raport de activitate"
	}
	return "Timesheet report"
}

// SubtitleNo and SubtitleFrom label the series number and issue date lines.
func (f *Formatter) SubtitleNo() string {
	if f.Domestic() {
		return "nr:"
	}
	return "no:"
}

func (f *Formatter) SubtitleFrom() string {
	if f.Domestic() {
		return "din:"
	}
	return "date:"
}

// HeaderLines builds the label/value header block of one party. The country
// line appears only on international documents, where it matters.
func (f *Formatter) HeaderLines(fe *entity.FiscalEntity, seller bool) []string {
	if f.Domestic() {
		first := "Beneficiar: "
		if seller {
			first = "Furnizor: "
		}
		return []string{
			first + fe.Name,
			"Nr. ORC: " + fe.RegistrationID,
			"CUI: " + fe.FiscalCode,
			"Sediul: " + fe.Address,
			"Cont IBAN: " + fe.BankAccount,
			"Banca: " + fe.BankName,
		}
	}
	first := "Buyer: "
	if seller {
		first = "Supplier: "
	}
	return []string{
		first + fe.Name,
		"Comm.Reg.: " + fe.RegistrationID,
		"Tax Code: " + fe.FiscalCode,
		"Address: " + fe.Address,
		"Country: " + f.CountryName(fe.Country),
		"Bank account: " + fe.BankAccount,
		"Bank name: " + fe.BankName,
	}
}

// ItemHeadings returns the invoice item table headings paired with their
// column centers.
func (f *Formatter) ItemHeadings() []heading {
	if f.Domestic() {
		return []heading{
			{"Nr.", 2.5},
			{"Denumirea produsului / serviciului", 6},
			{"Cant.", 11},
			{"U.M.", 13},
			{"Pret unitar", 15.5},
			{"Valoarea", 18.35},
		}
	}
	return []heading{
		{"No.", 2.5},
		{"Product / service description", 6},
		{"Qty.", 11},
		{"Unit", 13},
		{"Unit price", 15.5},
		{"Value", 18.35},
	}
}

// TaskHeadings returns the timesheet table headings with their column centers.
func (f *Formatter) TaskHeadings() []heading {
	if f.Domestic() {
		return []heading{
			{"Data", 4},
			{"Cod client", 7},
			{"Descriere", 11},
			{"Ore", 18},
		}
	}
	return []heading{
		{"Date", 4},
		{"Client code", 7},
		{"Description", 11},
		{"Hours", 18},
	}
}

// TotalLabel captions the payable total row.
func (f *Formatter) TotalLabel() string {
	if f.Domestic() {
		return "Total de plata"
	}
	return "Total payable"
}

// VATLabel captions the VAT line with its percentage.
func (f *Formatter) VATLabel(percent string) string {
	if f.Domestic() {
		return "TVA " + percent
	}
	return "VAT " + percent
}

type heading struct {
	Text string
	X    float64
}
