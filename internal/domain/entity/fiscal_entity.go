package entity

import "time"

// FiscalEntity is a legal party on an invoice, either seller or buyer.
// Invoices reference an immutable snapshot row taken at issue time, so
// historical documents keep reproducing the entity state they were issued with.
type FiscalEntity struct {
	ID             string
	Name           string
	OwnerFullname  string
	RegistrationID string
	FiscalCode     string
	Address        string
	Country        string // ISO 3166-1 alpha-2, e.g. "RO"
	BankAccount    string
	BankName       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
