package repository

import "github.com/kopsha/micro-invoicer/internal/domain/entity"

// RegistryRepository is the persistence port for invoice registries.
type RegistryRepository interface {
	Create(registry *entity.Registry) error
	GetByID(id string) (*entity.Registry, error)
	// LockByID reads the registry row with a row lock so the sequence counter
	// cannot race between concurrent issue/discard transactions.
	LockByID(id string) (*entity.Registry, error)
	List() ([]*entity.Registry, error)
	Update(registry *entity.Registry) error
	UpdateNextNumber(id string, nextNumber int) error
	Delete(id string) error
}
