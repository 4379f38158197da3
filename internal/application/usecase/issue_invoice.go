package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kopsha/micro-invoicer/internal/application/dto"
	"github.com/kopsha/micro-invoicer/internal/domain"
	"github.com/kopsha/micro-invoicer/internal/domain/billing"
	"github.com/kopsha/micro-invoicer/internal/domain/entity"
	"github.com/kopsha/micro-invoicer/internal/domain/repository"
	"github.com/kopsha/micro-invoicer/pkg/logger"
)

// IssueInvoiceUseCase publishes, discards and reverses invoices. Sequence
// numbers come from the registry counter under a row lock, so concurrent
// publishes never collide and the series stays gapless.
type IssueInvoiceUseCase struct {
	txRunner     IssuingTxRunner
	invoiceRepo  repository.InvoiceRepository
	entityRepo   repository.FiscalEntityRepository
	registryRepo repository.RegistryRepository
	log          *logger.Logger
}

// NewIssueInvoiceUseCase builds the use case with its dependencies.
func NewIssueInvoiceUseCase(
	txRunner IssuingTxRunner,
	invoiceRepo repository.InvoiceRepository,
	entityRepo repository.FiscalEntityRepository,
	registryRepo repository.RegistryRepository,
	log *logger.Logger,
) *IssueInvoiceUseCase {
	return &IssueInvoiceUseCase{
		txRunner:     txRunner,
		invoiceRepo:  invoiceRepo,
		entityRepo:   entityRepo,
		registryRepo: registryRepo,
		log:          log,
	}
}

// Issue publishes the next invoice of the registry against one of its
// contracts. Inside one transaction it locks the registry row, snapshots both
// parties, copies the contract terms, resolves the description template and
// advances the counter. Either everything lands or nothing does.
func (uc *IssueInvoiceUseCase) Issue(ctx context.Context, registryID string, req dto.IssueInvoiceRequest) (*dto.InvoiceResponse, error) {
	if req.Quantity.IsZero() || req.Quantity.IsNegative() {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}
	issueDate := req.IssueDate
	if issueDate.IsZero() {
		issueDate = time.Now()
	}

	var invoice *entity.TimeInvoice
	err := uc.txRunner.RunIssuing(ctx, func(repos IssuingRepos) error {
		reg, err := repos.Registries.LockByID(registryID)
		if err != nil {
			return fmt.Errorf("locking registry %s: %w", registryID, err)
		}
		if reg == nil {
			return fmt.Errorf("%w: registry %s", domain.ErrNotFound, registryID)
		}

		contract, err := repos.Contracts.GetByID(req.ContractID)
		if err != nil {
			return fmt.Errorf("loading contract %s: %w", req.ContractID, err)
		}
		if contract == nil {
			return fmt.Errorf("%w: contract %s", domain.ErrNotFound, req.ContractID)
		}
		if contract.RegistryID != reg.ID {
			return fmt.Errorf("%w: contract %s belongs to another registry", domain.ErrConflict, contract.ID)
		}

		seller, err := repos.Entities.GetByID(reg.SellerID)
		if err != nil {
			return fmt.Errorf("loading seller %s: %w", reg.SellerID, err)
		}
		buyer, err := repos.Entities.GetByID(contract.BuyerID)
		if err != nil {
			return fmt.Errorf("loading buyer %s: %w", contract.BuyerID, err)
		}
		if seller == nil || buyer == nil {
			return fmt.Errorf("%w: invoice parties", domain.ErrNotFound)
		}

		sellerSnap, err := snapshotEntity(repos.Entities, seller)
		if err != nil {
			return err
		}
		buyerSnap, err := snapshotEntity(repos.Entities, buyer)
		if err != nil {
			return err
		}

		description := req.OverrideDescription
		if description == "" {
			domestic := strings.EqualFold(buyer.Country, "RO")
			description = billing.ResolveDescription(contract.InvoicingDescription, issueDate, domestic)
		}

		invoice = &entity.TimeInvoice{
			ID:                  uuid.New().String(),
			RegistryID:          reg.ID,
			SellerID:            sellerSnap.ID,
			BuyerID:             buyerSnap.ID,
			ContractID:          contract.ID,
			Series:              reg.InvoiceSeries,
			Number:              reg.NextNumber,
			Status:              entity.StatusPublished,
			Description:         description,
			Currency:            billingCurrency(contract),
			ConversionRate:      req.ConversionRate,
			Unit:                contract.Unit,
			UnitRate:            contract.UnitRate,
			AttachedCost:        req.AttachedCost,
			AttachedDescription: req.AttachedDescription,
			IssueDate:           issueDate,
			Quantity:            req.Quantity,
			IncludeVAT:          reg.IncludeVAT,
		}

		if _, err := billing.Valuate(invoice); err != nil {
			return err
		}
		if err := repos.Invoices.Create(invoice); err != nil {
			return fmt.Errorf("storing invoice: %w", err)
		}
		if err := repos.Registries.UpdateNextNumber(reg.ID, reg.NextNumber+1); err != nil {
			return fmt.Errorf("advancing registry counter: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("invoice", invoice.SeriesNumber()).
		Str("registry_id", registryID).
		Str("contract_id", req.ContractID).
		Msg("invoice published")

	valuation, err := billing.Valuate(invoice)
	if err != nil {
		return nil, err
	}
	resp := dto.NewInvoiceResponse(invoice, valuation)
	return &resp, nil
}

// Discard removes the most recently issued invoice of a registry and hands its
// sequence number back to the counter. Only the last invoice may go; removing
// an older one would leave a hole in the series.
func (uc *IssueInvoiceUseCase) Discard(ctx context.Context, registryID, invoiceID string) error {
	var discarded string
	err := uc.txRunner.RunIssuing(ctx, func(repos IssuingRepos) error {
		reg, err := repos.Registries.LockByID(registryID)
		if err != nil {
			return fmt.Errorf("locking registry %s: %w", registryID, err)
		}
		if reg == nil {
			return fmt.Errorf("%w: registry %s", domain.ErrNotFound, registryID)
		}

		inv, err := repos.Invoices.GetByID(invoiceID)
		if err != nil {
			return fmt.Errorf("loading invoice %s: %w", invoiceID, err)
		}
		if inv == nil || inv.RegistryID != reg.ID {
			return fmt.Errorf("%w: invoice %s", domain.ErrNotFound, invoiceID)
		}
		last, err := repos.Invoices.GetLastByRegistry(reg.ID)
		if err != nil {
			return fmt.Errorf("loading last invoice of registry %s: %w", reg.ID, err)
		}
		if last == nil || last.ID != inv.ID {
			return fmt.Errorf("%w: only the last invoice %s can be discarded",
				domain.ErrConflict, entity.FormatSeriesNumber(reg.InvoiceSeries, reg.NextNumber-1))
		}

		if err := repos.Invoices.Delete(inv.ID); err != nil {
			return fmt.Errorf("deleting invoice %s: %w", inv.ID, err)
		}
		if err := repos.Registries.UpdateNextNumber(reg.ID, inv.Number); err != nil {
			return fmt.Errorf("rewinding registry counter: %w", err)
		}
		discarded = inv.SeriesNumber()
		return nil
	})
	if err != nil {
		return err
	}

	uc.log.Info().Str("invoice", discarded).Str("registry_id", registryID).Msg("invoice discarded")
	return nil
}

// Storno marks a published invoice as reversed. Status moves forward only; the
// sequence number stays consumed.
func (uc *IssueInvoiceUseCase) Storno(invoiceID string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, fmt.Errorf("loading invoice %s: %w", invoiceID, err)
	}
	if inv == nil {
		return nil, fmt.Errorf("%w: invoice %s", domain.ErrNotFound, invoiceID)
	}
	if !inv.Status.CanTransition(entity.StatusStorno) {
		return nil, fmt.Errorf("%w: invoice %s is already %s", domain.ErrConflict, inv.SeriesNumber(), inv.Status)
	}
	if err := uc.invoiceRepo.UpdateStatus(inv.ID, entity.StatusStorno); err != nil {
		return nil, fmt.Errorf("updating invoice status: %w", err)
	}
	inv.Status = entity.StatusStorno

	uc.log.Info().Str("invoice", inv.SeriesNumber()).Msg("invoice reversed")

	valuation, err := billing.Valuate(inv)
	if err != nil {
		return nil, err
	}
	resp := dto.NewInvoiceResponse(inv, valuation)
	return &resp, nil
}

// Get returns one invoice with its valuation.
func (uc *IssueInvoiceUseCase) Get(invoiceID string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, fmt.Errorf("loading invoice %s: %w", invoiceID, err)
	}
	if inv == nil {
		return nil, fmt.Errorf("%w: invoice %s", domain.ErrNotFound, invoiceID)
	}
	valuation, err := billing.Valuate(inv)
	if err != nil {
		return nil, err
	}
	resp := dto.NewInvoiceResponse(inv, valuation)
	return &resp, nil
}

// ListByRegistry returns one page of the registry's invoices, newest first,
// with their valuations.
func (uc *IssueInvoiceUseCase) ListByRegistry(registryID string, page dto.PageRequest) ([]dto.InvoiceResponse, error) {
	page.Normalize()
	invoices, err := uc.invoiceRepo.ListByRegistry(registryID)
	if err != nil {
		return nil, fmt.Errorf("listing invoices of registry %s: %w", registryID, err)
	}
	start := page.Offset()
	if start > len(invoices) {
		start = len(invoices)
	}
	end := start + page.Size
	if end > len(invoices) {
		end = len(invoices)
	}
	invoices = invoices[start:end]

	out := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		valuation, err := billing.Valuate(inv)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.NewInvoiceResponse(inv, valuation))
	}
	return out, nil
}

// snapshotEntity inserts a frozen copy of the entity under a fresh ID so later
// edits to the live row never alter issued documents.
func snapshotEntity(repo repository.FiscalEntityRepository, fe *entity.FiscalEntity) (*entity.FiscalEntity, error) {
	snap := *fe
	snap.ID = uuid.New().String()
	snap.CreatedAt = time.Time{}
	snap.UpdatedAt = time.Time{}
	if err := repo.Create(&snap); err != nil {
		return nil, fmt.Errorf("snapshotting entity %s: %w", fe.Name, err)
	}
	return &snap, nil
}

// billingCurrency picks the currency the invoice is denominated in: the
// contract's invoicing currency when set, otherwise its billing currency.
func billingCurrency(c *entity.ServiceContract) string {
	if c.InvoicingCurrency != "" {
		return c.InvoicingCurrency
	}
	return c.Currency
}
