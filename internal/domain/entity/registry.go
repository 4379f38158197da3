package entity

import "time"

// Registry is the per-seller container of the invoice series counter, the
// contracts and the issued invoices. NextNumber moves on every publish and on
// every LIFO discard; the registry cannot be deleted while invoices exist.
type Registry struct {
	ID            string
	SellerID      string
	DisplayName   string
	InvoiceSeries string
	NextNumber    int
	IncludeVAT    int // default VAT percentage applied to new invoices
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
