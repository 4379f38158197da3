package repository

import "github.com/kopsha/micro-invoicer/internal/domain/entity"

// FiscalEntityRepository is the persistence port for fiscal entities.
// Entities referenced by published invoices are frozen snapshots: they are
// inserted once and never updated through this port.
type FiscalEntityRepository interface {
	Create(fe *entity.FiscalEntity) error
	GetByID(id string) (*entity.FiscalEntity, error)
	Update(fe *entity.FiscalEntity) error
}
