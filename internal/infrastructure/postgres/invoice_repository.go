package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kopsha/micro-invoicer/internal/domain"
	"github.com/kopsha/micro-invoicer/internal/domain/entity"
	"github.com/kopsha/micro-invoicer/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implements InvoiceRepository (usable with pool or tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the adapter. Pass a pool or tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, registry_id, seller_id, buyer_id, contract_id, series, number, status,
		description, currency, conversion_rate, unit, unit_rate, attached_cost, attached_description,
		issue_date, quantity, include_vat, created_at, updated_at`

func scanInvoice(row pgx.Row) (*entity.TimeInvoice, error) {
	var inv entity.TimeInvoice
	var status int
	err := row.Scan(
		&inv.ID, &inv.RegistryID, &inv.SellerID, &inv.BuyerID, &inv.ContractID, &inv.Series, &inv.Number, &status,
		&inv.Description, &inv.Currency, &inv.ConversionRate, &inv.Unit, &inv.UnitRate, &inv.AttachedCost, &inv.AttachedDescription,
		&inv.IssueDate, &inv.Quantity, &inv.IncludeVAT, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.Status = entity.InvoiceStatus(status)
	return &inv, nil
}

// Create persists a new invoice. The (registry_id, number) pair is unique, so
// a counter race surfaces as ErrDuplicate instead of a silent collision.
func (r *InvoiceRepo) Create(inv *entity.TimeInvoice) error {
	now := time.Now()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.RegistryID, inv.SellerID, inv.BuyerID, inv.ContractID, inv.Series, inv.Number, int(inv.Status),
		inv.Description, inv.Currency, inv.ConversionRate, inv.Unit, inv.UnitRate, inv.AttachedCost, inv.AttachedDescription,
		inv.IssueDate, inv.Quantity, inv.IncludeVAT, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID fetches an invoice by ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.TimeInvoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// GetLastByRegistry returns the invoice with the highest number of the
// registry, or nil when none exist.
func (r *InvoiceRepo) GetLastByRegistry(registryID string) (*entity.TimeInvoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE registry_id = $1 ORDER BY number DESC LIMIT 1`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, registryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get last invoice: %w", err)
	}
	return inv, nil
}

// ListByRegistry lists the invoices of one registry, newest first.
func (r *InvoiceRepo) ListByRegistry(registryID string) ([]*entity.TimeInvoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE registry_id = $1 ORDER BY number DESC`
	rows, err := r.q.Query(context.Background(), query, registryID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	return collectInvoices(rows)
}

// ListAll returns every invoice ordered by issue date, for reporting.
func (r *InvoiceRepo) ListAll() ([]*entity.TimeInvoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY issue_date`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list all invoices: %w", err)
	}
	defer rows.Close()
	return collectInvoices(rows)
}

func collectInvoices(rows pgx.Rows) ([]*entity.TimeInvoice, error) {
	var out []*entity.TimeInvoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// UpdateStatus moves the invoice status.
func (r *InvoiceRepo) UpdateStatus(id string, status entity.InvoiceStatus) error {
	query := `UPDATE invoices SET status = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, int(status), time.Now())
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes an invoice row (LIFO discard only).
func (r *InvoiceRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByRegistry counts the invoices of one registry.
func (r *InvoiceRepo) CountByRegistry(registryID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM invoices WHERE registry_id = $1`, registryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return count, nil
}
