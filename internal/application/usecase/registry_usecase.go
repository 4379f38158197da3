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

// RegistryUseCase manages invoice registries and their seller identity.
type RegistryUseCase struct {
	registryRepo repository.RegistryRepository
	entityRepo   repository.FiscalEntityRepository
	invoiceRepo  repository.InvoiceRepository
	log          *logger.Logger
}

// NewRegistryUseCase builds the use case with its dependencies.
func NewRegistryUseCase(
	registryRepo repository.RegistryRepository,
	entityRepo repository.FiscalEntityRepository,
	invoiceRepo repository.InvoiceRepository,
	log *logger.Logger,
) *RegistryUseCase {
	return &RegistryUseCase{
		registryRepo: registryRepo,
		entityRepo:   entityRepo,
		invoiceRepo:  invoiceRepo,
		log:          log,
	}
}

// Create opens a registry together with its seller entity.
func (uc *RegistryUseCase) Create(req dto.CreateRegistryRequest) (*dto.RegistryResponse, error) {
	if req.InvoiceSeries == "" {
		return nil, fmt.Errorf("%w: invoice_series is required", domain.ErrInvalidInput)
	}
	if req.Seller.Name == "" || req.Seller.Country == "" {
		return nil, fmt.Errorf("%w: seller name and country are required", domain.ErrInvalidInput)
	}
	if req.IncludeVAT < 0 || req.IncludeVAT > 100 {
		return nil, fmt.Errorf("%w: include_vat must be within 0..100", domain.ErrInvalidInput)
	}
	nextNumber := req.NextNumber
	if nextNumber < 1 {
		nextNumber = 1
	}

	seller := req.Seller.ToEntity()
	seller.ID = uuid.New().String()
	if err := uc.entityRepo.Create(seller); err != nil {
		return nil, fmt.Errorf("creating seller entity: %w", err)
	}

	reg := &entity.Registry{
		ID:            uuid.New().String(),
		SellerID:      seller.ID,
		DisplayName:   req.DisplayName,
		InvoiceSeries: req.InvoiceSeries,
		NextNumber:    nextNumber,
		IncludeVAT:    req.IncludeVAT,
	}
	if err := uc.registryRepo.Create(reg); err != nil {
		return nil, fmt.Errorf("creating registry: %w", err)
	}

	uc.log.Info().
		Str("registry_id", reg.ID).
		Str("series", reg.InvoiceSeries).
		Int("next_number", reg.NextNumber).
		Msg("registry created")

	resp := dto.NewRegistryResponse(reg, seller)
	return &resp, nil
}

// Get returns one registry with its seller.
func (uc *RegistryUseCase) Get(id string) (*dto.RegistryResponse, error) {
	reg, seller, err := uc.loadWithSeller(id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewRegistryResponse(reg, seller)
	return &resp, nil
}

// List returns every registry.
func (uc *RegistryUseCase) List() ([]dto.RegistryResponse, error) {
	regs, err := uc.registryRepo.List()
	if err != nil {
		return nil, fmt.Errorf("listing registries: %w", err)
	}
	out := make([]dto.RegistryResponse, 0, len(regs))
	for _, reg := range regs {
		seller, err := uc.entityRepo.GetByID(reg.SellerID)
		if err != nil {
			return nil, fmt.Errorf("loading seller %s: %w", reg.SellerID, err)
		}
		if seller == nil {
			return nil, fmt.Errorf("%w: seller %s of registry %s", domain.ErrNotFound, reg.SellerID, reg.ID)
		}
		out = append(out, dto.NewRegistryResponse(reg, seller))
	}
	return out, nil
}

// Update changes the display name and the default VAT of future invoices. The
// invoice series and the sequence counter never change once a registry exists;
// renumbering an open series would break the issued sequence.
func (uc *RegistryUseCase) Update(id string, req dto.UpdateRegistryRequest) (*dto.RegistryResponse, error) {
	if req.IncludeVAT < 0 || req.IncludeVAT > 100 {
		return nil, fmt.Errorf("%w: include_vat must be within 0..100", domain.ErrInvalidInput)
	}
	reg, seller, err := uc.loadWithSeller(id)
	if err != nil {
		return nil, err
	}

	reg.DisplayName = req.DisplayName
	reg.IncludeVAT = req.IncludeVAT
	if err := uc.registryRepo.Update(reg); err != nil {
		return nil, fmt.Errorf("updating registry %s: %w", id, err)
	}

	uc.log.Info().
		Str("registry_id", reg.ID).
		Int("include_vat", reg.IncludeVAT).
		Msg("registry settings updated")

	resp := dto.NewRegistryResponse(reg, seller)
	return &resp, nil
}

// UpdateSeller replaces the seller identity used by future invoices. Snapshots
// referenced by published invoices are separate rows and stay untouched.
func (uc *RegistryUseCase) UpdateSeller(id string, payload dto.FiscalEntityPayload) (*dto.RegistryResponse, error) {
	reg, seller, err := uc.loadWithSeller(id)
	if err != nil {
		return nil, err
	}
	if payload.Name == "" || payload.Country == "" {
		return nil, fmt.Errorf("%w: seller name and country are required", domain.ErrInvalidInput)
	}

	updated := payload.ToEntity()
	updated.ID = seller.ID
	updated.CreatedAt = seller.CreatedAt
	if err := uc.entityRepo.Update(updated); err != nil {
		return nil, fmt.Errorf("updating seller entity: %w", err)
	}

	resp := dto.NewRegistryResponse(reg, updated)
	return &resp, nil
}

// Delete removes an empty registry. Registries holding invoices are kept for
// the audit trail and refuse deletion.
func (uc *RegistryUseCase) Delete(id string) error {
	reg, err := uc.registryRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("loading registry %s: %w", id, err)
	}
	if reg == nil {
		return fmt.Errorf("%w: registry %s", domain.ErrNotFound, id)
	}

	count, err := uc.invoiceRepo.CountByRegistry(id)
	if err != nil {
		return fmt.Errorf("counting invoices of registry %s: %w", id, err)
	}
	if count > 0 {
		return fmt.Errorf("%w: registry %s holds %d invoices", domain.ErrRegistryNotEmpty, id, count)
	}

	if err := uc.registryRepo.Delete(id); err != nil {
		return fmt.Errorf("deleting registry %s: %w", id, err)
	}
	uc.log.Info().Str("registry_id", id).Msg("registry deleted")
	return nil
}

func (uc *RegistryUseCase) loadWithSeller(id string) (*entity.Registry, *entity.FiscalEntity, error) {
	reg, err := uc.registryRepo.GetByID(id)
	if err != nil {
		return nil, nil, fmt.Errorf("loading registry %s: %w", id, err)
	}
	if reg == nil {
		return nil, nil, fmt.Errorf("%w: registry %s", domain.ErrNotFound, id)
	}
	seller, err := uc.entityRepo.GetByID(reg.SellerID)
	if err != nil {
		return nil, nil, fmt.Errorf("loading seller %s: %w", reg.SellerID, err)
	}
	if seller == nil {
		return nil, nil, fmt.Errorf("%w: seller %s of registry %s", domain.ErrNotFound, reg.SellerID, reg.ID)
	}
	return reg, seller, nil
}
