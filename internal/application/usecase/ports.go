package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kopsha/micro-invoicer/internal/domain/entity"
	"github.com/kopsha/micro-invoicer/internal/domain/repository"
)

// IssuingRepos groups the repositories visible inside one issuing transaction.
// Every access through them hits the same database transaction.
type IssuingRepos struct {
	Registries repository.RegistryRepository
	Entities   repository.FiscalEntityRepository
	Contracts  repository.ContractRepository
	Invoices   repository.InvoiceRepository
}

// IssuingTxRunner executes fn atomically. A non-nil error rolls everything
// back, which keeps the registry counter and the invoice rows consistent.
type IssuingTxRunner interface {
	RunIssuing(ctx context.Context, fn func(repos IssuingRepos) error) error
}

// PrintableInvoice is the complete aggregate a renderer needs: the invoice
// plus the frozen party snapshots and the originating contract.
type PrintableInvoice struct {
	Invoice  *entity.TimeInvoice
	Seller   *entity.FiscalEntity
	Buyer    *entity.FiscalEntity
	Contract *entity.ServiceContract
}

// DocumentRenderer turns an invoice aggregate into finished PDF bytes.
// Render produces the invoice page (with the timesheet annex appended when a
// timesheet is given); RenderTimesheet produces the standalone annex.
type DocumentRenderer interface {
	Render(ctx context.Context, doc *PrintableInvoice, ts *entity.Timesheet) ([]byte, error)
	RenderTimesheet(ctx context.Context, doc *PrintableInvoice, ts *entity.Timesheet) ([]byte, error)
}

// RateProvider resolves a conversion rate from the given currency into the
// reporting currency, as of a date.
type RateProvider interface {
	Rate(ctx context.Context, currency string, asOf time.Time) (decimal.Decimal, error)
}

// TimesheetGenerator produces the work log annex covering one billing period.
type TimesheetGenerator interface {
	Generate(start time.Time, flavor, project string, quantity decimal.Decimal, unit string) (*entity.Timesheet, error)
}
