package repository

import "github.com/kopsha/micro-invoicer/internal/domain/entity"

// InvoiceRepository is the persistence port for time invoices.
type InvoiceRepository interface {
	Create(invoice *entity.TimeInvoice) error
	GetByID(id string) (*entity.TimeInvoice, error)
	// GetLastByRegistry returns the invoice holding the highest sequence
	// number of the registry, or nil when none were issued yet.
	GetLastByRegistry(registryID string) (*entity.TimeInvoice, error)
	ListByRegistry(registryID string) ([]*entity.TimeInvoice, error)
	// ListAll returns every invoice ordered by issue date, for reporting.
	ListAll() ([]*entity.TimeInvoice, error)
	UpdateStatus(id string, status entity.InvoiceStatus) error
	Delete(id string) error
	CountByRegistry(registryID string) (int, error)
}
