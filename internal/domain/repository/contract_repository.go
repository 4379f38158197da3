package repository

import "github.com/kopsha/micro-invoicer/internal/domain/entity"

// ContractRepository is the persistence port for service contracts.
type ContractRepository interface {
	Create(contract *entity.ServiceContract) error
	GetByID(id string) (*entity.ServiceContract, error)
	ListByRegistry(registryID string) ([]*entity.ServiceContract, error)
	Update(contract *entity.ServiceContract) error
	Delete(id string) error
}
