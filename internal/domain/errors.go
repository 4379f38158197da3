package domain

import (
	"errors"
	"fmt"
)

// Domain errors (no external dependencies).
var (
	ErrNotFound         = errors.New("resource not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrDuplicate        = errors.New("duplicate resource")
	ErrConflict         = errors.New("conflict with current state")
	ErrRegistryNotEmpty = errors.New("registry still holds invoices")
)

// MissingInvoiceDataError reports a required monetary field that is absent at
// valuation time. Rendering must not start while one of these is pending.
type MissingInvoiceDataError struct {
	InvoiceID string
	Field     string
}

func (e *MissingInvoiceDataError) Error() string {
	return fmt.Sprintf("invoice %s: missing required field %q", e.InvoiceID, e.Field)
}

// UnsupportedLocaleError reports a buyer country outside the recognized set.
// This is a configuration fault, never silently downgraded to a fallback locale.
type UnsupportedLocaleError struct {
	Country string
}

func (e *UnsupportedLocaleError) Error() string {
	return fmt.Sprintf("locale settings not defined for %q", e.Country)
}

// LayoutOverflowError reports a block that cannot fit on a single page even
// after growing rows and carrying tables over to continuation pages.
type LayoutOverflowError struct {
	Document  string
	Needed    float64 // vertical space required, in page units (cm)
	Available float64
}

func (e *LayoutOverflowError) Error() string {
	return fmt.Sprintf("%s: block needs %.1fcm but only %.1fcm remain on the page",
		e.Document, e.Needed, e.Available)
}
