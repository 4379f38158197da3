package usecase

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/kopsha/micro-invoicer/internal/application/dto"
	"github.com/kopsha/micro-invoicer/internal/domain"
	"github.com/kopsha/micro-invoicer/internal/domain/entity"
	"github.com/kopsha/micro-invoicer/internal/domain/repository"
	"github.com/kopsha/micro-invoicer/pkg/logger"
)

var validUnits = map[string]bool{
	entity.UnitHour:  true,
	entity.UnitDay:   true,
	entity.UnitMonth: true,
}

var validCurrencies = map[string]bool{
	entity.CurrencyRON: true,
	entity.CurrencyEUR: true,
	entity.CurrencyUSD: true,
}

// ContractUseCase manages service contracts and their buyer identities.
type ContractUseCase struct {
	registryRepo repository.RegistryRepository
	contractRepo repository.ContractRepository
	entityRepo   repository.FiscalEntityRepository
	log          *logger.Logger
}

// NewContractUseCase builds the use case with its dependencies.
func NewContractUseCase(
	registryRepo repository.RegistryRepository,
	contractRepo repository.ContractRepository,
	entityRepo repository.FiscalEntityRepository,
	log *logger.Logger,
) *ContractUseCase {
	return &ContractUseCase{
		registryRepo: registryRepo,
		contractRepo: contractRepo,
		entityRepo:   entityRepo,
		log:          log,
	}
}

// Create registers a contract under a registry, creating the buyer entity.
func (uc *ContractUseCase) Create(registryID string, req dto.CreateContractRequest) (*dto.ContractResponse, error) {
	reg, err := uc.registryRepo.GetByID(registryID)
	if err != nil {
		return nil, fmt.Errorf("loading registry %s: %w", registryID, err)
	}
	if reg == nil {
		return nil, fmt.Errorf("%w: registry %s", domain.ErrNotFound, registryID)
	}
	if err := validateContractFields(req.Currency, req.Unit, req.InvoicingCurrency); err != nil {
		return nil, err
	}
	if req.UnitRate.IsNegative() || req.UnitRate.IsZero() {
		return nil, fmt.Errorf("%w: unit_rate must be positive", domain.ErrInvalidInput)
	}
	if req.Buyer.Name == "" || req.Buyer.Country == "" {
		return nil, fmt.Errorf("%w: buyer name and country are required", domain.ErrInvalidInput)
	}

	buyer := req.Buyer.ToEntity()
	buyer.ID = uuid.New().String()
	if err := uc.entityRepo.Create(buyer); err != nil {
		return nil, fmt.Errorf("creating buyer entity: %w", err)
	}

	contract := &entity.ServiceContract{
		ID:                   uuid.New().String(),
		RegistryID:           registryID,
		BuyerID:              buyer.ID,
		RegistrationNo:       req.RegistrationNo,
		RegistrationDate:     req.RegistrationDate,
		Currency:             req.Currency,
		Unit:                 req.Unit,
		UnitRate:             req.UnitRate,
		InvoicingCurrency:    req.InvoicingCurrency,
		InvoicingDescription: req.InvoicingDescription,
	}
	if err := uc.contractRepo.Create(contract); err != nil {
		return nil, fmt.Errorf("creating contract: %w", err)
	}

	uc.log.Info().
		Str("contract_id", contract.ID).
		Str("registry_id", registryID).
		Str("buyer", buyer.Name).
		Msg("contract created")

	resp := dto.NewContractResponse(contract, buyer)
	return &resp, nil
}

// Get returns one contract with its buyer.
func (uc *ContractUseCase) Get(id string) (*dto.ContractResponse, error) {
	contract, buyer, err := uc.loadWithBuyer(id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewContractResponse(contract, buyer)
	return &resp, nil
}

// ListByRegistry returns the contracts of one registry.
func (uc *ContractUseCase) ListByRegistry(registryID string) ([]dto.ContractResponse, error) {
	contracts, err := uc.contractRepo.ListByRegistry(registryID)
	if err != nil {
		return nil, fmt.Errorf("listing contracts of registry %s: %w", registryID, err)
	}
	out := make([]dto.ContractResponse, 0, len(contracts))
	for _, c := range contracts {
		buyer, err := uc.entityRepo.GetByID(c.BuyerID)
		if err != nil {
			return nil, fmt.Errorf("loading buyer %s: %w", c.BuyerID, err)
		}
		if buyer == nil {
			return nil, fmt.Errorf("%w: buyer %s of contract %s", domain.ErrNotFound, c.BuyerID, c.ID)
		}
		out = append(out, dto.NewContractResponse(c, buyer))
	}
	return out, nil
}

// Update replaces the billing terms of a contract. Published invoices carry
// copies of these fields and are not affected.
func (uc *ContractUseCase) Update(id string, req dto.CreateContractRequest) (*dto.ContractResponse, error) {
	contract, buyer, err := uc.loadWithBuyer(id)
	if err != nil {
		return nil, err
	}
	if err := validateContractFields(req.Currency, req.Unit, req.InvoicingCurrency); err != nil {
		return nil, err
	}
	if req.UnitRate.IsNegative() || req.UnitRate.IsZero() {
		return nil, fmt.Errorf("%w: unit_rate must be positive", domain.ErrInvalidInput)
	}

	contract.RegistrationNo = req.RegistrationNo
	contract.RegistrationDate = req.RegistrationDate
	contract.Currency = req.Currency
	contract.Unit = req.Unit
	contract.UnitRate = req.UnitRate
	contract.InvoicingCurrency = req.InvoicingCurrency
	contract.InvoicingDescription = req.InvoicingDescription
	if err := uc.contractRepo.Update(contract); err != nil {
		return nil, fmt.Errorf("updating contract %s: %w", id, err)
	}

	if req.Buyer.Name != "" {
		updated := req.Buyer.ToEntity()
		updated.ID = buyer.ID
		updated.CreatedAt = buyer.CreatedAt
		if err := uc.entityRepo.Update(updated); err != nil {
			return nil, fmt.Errorf("updating buyer entity: %w", err)
		}
		buyer = updated
	}

	resp := dto.NewContractResponse(contract, buyer)
	return &resp, nil
}

// Delete removes a contract. Invoices already issued against it keep their
// copied terms and snapshots.
func (uc *ContractUseCase) Delete(id string) error {
	contract, err := uc.contractRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("loading contract %s: %w", id, err)
	}
	if contract == nil {
		return fmt.Errorf("%w: contract %s", domain.ErrNotFound, id)
	}
	if err := uc.contractRepo.Delete(id); err != nil {
		return fmt.Errorf("deleting contract %s: %w", id, err)
	}
	uc.log.Info().Str("contract_id", id).Msg("contract deleted")
	return nil
}

func (uc *ContractUseCase) loadWithBuyer(id string) (*entity.ServiceContract, *entity.FiscalEntity, error) {
	contract, err := uc.contractRepo.GetByID(id)
	if err != nil {
		return nil, nil, fmt.Errorf("loading contract %s: %w", id, err)
	}
	if contract == nil {
		return nil, nil, fmt.Errorf("%w: contract %s", domain.ErrNotFound, id)
	}
	buyer, err := uc.entityRepo.GetByID(contract.BuyerID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading buyer %s: %w", contract.BuyerID, err)
	}
	if buyer == nil {
		return nil, nil, fmt.Errorf("%w: buyer %s of contract %s", domain.ErrNotFound, contract.BuyerID, contract.ID)
	}
	return contract, buyer, nil
}

func validateContractFields(currency, unit, invoicingCurrency string) error {
	if !validCurrencies[currency] {
		return fmt.Errorf("%w: unsupported currency %q", domain.ErrInvalidInput, currency)
	}
	if !validUnits[unit] {
		return fmt.Errorf("%w: unsupported unit %q", domain.ErrInvalidInput, unit)
	}
	if invoicingCurrency != "" && !validCurrencies[invoicingCurrency] {
		return fmt.Errorf("%w: unsupported invoicing currency %q", domain.ErrInvalidInput, invoicingCurrency)
	}
	return nil
}
