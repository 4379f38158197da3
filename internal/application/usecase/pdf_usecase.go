package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/kopsha/micro-invoicer/internal/domain"
	"github.com/kopsha/micro-invoicer/internal/domain/billing"
	"github.com/kopsha/micro-invoicer/internal/domain/entity"
	"github.com/kopsha/micro-invoicer/internal/domain/repository"
	"github.com/kopsha/micro-invoicer/pkg/logger"
)

// PDFUseCase assembles the invoice aggregate and drives the renderer.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	entityRepo   repository.FiscalEntityRepository
	contractRepo repository.ContractRepository
	renderer     DocumentRenderer
	timesheets   TimesheetGenerator
	log          *logger.Logger
}

// NewPDFUseCase builds the use case with its dependencies.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	entityRepo repository.FiscalEntityRepository,
	contractRepo repository.ContractRepository,
	renderer DocumentRenderer,
	timesheets TimesheetGenerator,
	log *logger.Logger,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		entityRepo:   entityRepo,
		contractRepo: contractRepo,
		renderer:     renderer,
		timesheets:   timesheets,
		log:          log,
	}
}

// RenderInvoice produces the invoice PDF. Hourly invoices additionally get the
// work log annex appended. The returned filename follows the series number,
// e.g. "AAA-0007.pdf".
func (uc *PDFUseCase) RenderInvoice(ctx context.Context, invoiceID string) (string, []byte, error) {
	doc, err := uc.loadPrintable(invoiceID)
	if err != nil {
		return "", nil, err
	}

	var ts *entity.Timesheet
	if doc.Invoice.Unit == entity.UnitHour {
		ts, err = uc.generateTimesheet(doc)
		if err != nil {
			return "", nil, err
		}
	}

	data, err := uc.renderer.Render(ctx, doc, ts)
	if err != nil {
		return "", nil, fmt.Errorf("rendering invoice %s: %w", doc.Invoice.SeriesNumber(), err)
	}

	uc.log.Info().
		Str("invoice", doc.Invoice.SeriesNumber()).
		Int("bytes", len(data)).
		Msg("invoice document rendered")

	return doc.Invoice.SeriesNumber() + ".pdf", data, nil
}

// RenderTimesheet produces the standalone work log annex, e.g.
// "AAA-0007-timesheet.pdf".
func (uc *PDFUseCase) RenderTimesheet(ctx context.Context, invoiceID string) (string, []byte, error) {
	doc, err := uc.loadPrintable(invoiceID)
	if err != nil {
		return "", nil, err
	}
	if doc.Invoice.Unit != entity.UnitHour {
		return "", nil, fmt.Errorf("%w: invoice %s is not billed hourly", domain.ErrInvalidInput, doc.Invoice.SeriesNumber())
	}

	ts, err := uc.generateTimesheet(doc)
	if err != nil {
		return "", nil, err
	}

	data, err := uc.renderer.RenderTimesheet(ctx, doc, ts)
	if err != nil {
		return "", nil, fmt.Errorf("rendering timesheet of %s: %w", doc.Invoice.SeriesNumber(), err)
	}

	uc.log.Info().
		Str("invoice", doc.Invoice.SeriesNumber()).
		Int("tasks", len(ts.Tasks)).
		Msg("timesheet document rendered")

	return doc.Invoice.SeriesNumber() + "-timesheet.pdf", data, nil
}

// loadPrintable loads the invoice with its frozen party snapshots and its
// contract, validating the valuation before any rendering starts.
func (uc *PDFUseCase) loadPrintable(invoiceID string) (*PrintableInvoice, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, fmt.Errorf("loading invoice %s: %w", invoiceID, err)
	}
	if inv == nil {
		return nil, fmt.Errorf("%w: invoice %s", domain.ErrNotFound, invoiceID)
	}

	seller, err := uc.entityRepo.GetByID(inv.SellerID)
	if err != nil {
		return nil, fmt.Errorf("loading seller snapshot %s: %w", inv.SellerID, err)
	}
	buyer, err := uc.entityRepo.GetByID(inv.BuyerID)
	if err != nil {
		return nil, fmt.Errorf("loading buyer snapshot %s: %w", inv.BuyerID, err)
	}
	if seller == nil || buyer == nil {
		return nil, fmt.Errorf("%w: party snapshots of invoice %s", domain.ErrNotFound, inv.SeriesNumber())
	}

	contract, err := uc.contractRepo.GetByID(inv.ContractID)
	if err != nil {
		return nil, fmt.Errorf("loading contract %s: %w", inv.ContractID, err)
	}
	if contract == nil {
		return nil, fmt.Errorf("%w: contract %s of invoice %s", domain.ErrNotFound, inv.ContractID, inv.SeriesNumber())
	}

	if _, err := billing.Valuate(inv); err != nil {
		return nil, err
	}

	return &PrintableInvoice{Invoice: inv, Seller: seller, Buyer: buyer, Contract: contract}, nil
}

// generateTimesheet covers the billed period: the previous month when the
// contract bills in arrears, otherwise the issue month.
func (uc *PDFUseCase) generateTimesheet(doc *PrintableInvoice) (*entity.Timesheet, error) {
	start := firstOfMonth(doc.Invoice.IssueDate)
	if billing.UsesLastMonth(doc.Contract.InvoicingDescription) {
		start = billing.PreviousMonth(doc.Invoice.IssueDate)
	}

	ts, err := uc.timesheets.Generate(start, doc.Invoice.Description, doc.Buyer.Name,
		doc.Invoice.Quantity, doc.Invoice.Unit)
	if err != nil {
		return nil, fmt.Errorf("generating timesheet for %s: %w", doc.Invoice.SeriesNumber(), err)
	}
	return ts, nil
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
