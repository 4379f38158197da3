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

var _ repository.ContractRepository = (*ContractRepo)(nil)

// ContractRepo implements ContractRepository (usable with pool or tx).
type ContractRepo struct {
	q Querier
}

// NewContractRepository builds the adapter. Pass a pool or tx (Querier).
func NewContractRepository(q Querier) *ContractRepo {
	return &ContractRepo{q: q}
}

const contractColumns = `id, registry_id, buyer_id, registration_no, registration_date, currency, unit, unit_rate,
		invoicing_currency, invoicing_description, created_at, updated_at`

// Create persists a new service contract.
func (r *ContractRepo) Create(c *entity.ServiceContract) error {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	query := `
		INSERT INTO contracts (` + contractColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.RegistryID, c.BuyerID, c.RegistrationNo, c.RegistrationDate, c.Currency, c.Unit, c.UnitRate,
		c.InvoicingCurrency, c.InvoicingDescription, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert contract: %w", err)
	}
	return nil
}

// GetByID fetches a contract by ID.
func (r *ContractRepo) GetByID(id string) (*entity.ServiceContract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = $1`
	var c entity.ServiceContract
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.RegistryID, &c.BuyerID, &c.RegistrationNo, &c.RegistrationDate, &c.Currency, &c.Unit, &c.UnitRate,
		&c.InvoicingCurrency, &c.InvoicingDescription, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contract: %w", err)
	}
	return &c, nil
}

// ListByRegistry lists the contracts of one registry.
func (r *ContractRepo) ListByRegistry(registryID string) ([]*entity.ServiceContract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE registry_id = $1 ORDER BY registration_date`
	rows, err := r.q.Query(context.Background(), query, registryID)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	defer rows.Close()

	var out []*entity.ServiceContract
	for rows.Next() {
		var c entity.ServiceContract
		if err := rows.Scan(
			&c.ID, &c.RegistryID, &c.BuyerID, &c.RegistrationNo, &c.RegistrationDate, &c.Currency, &c.Unit, &c.UnitRate,
			&c.InvoicingCurrency, &c.InvoicingDescription, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan contract: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// Update rewrites the contract terms.
func (r *ContractRepo) Update(c *entity.ServiceContract) error {
	c.UpdatedAt = time.Now()
	query := `
		UPDATE contracts
		SET registration_no = $2, registration_date = $3, currency = $4, unit = $5, unit_rate = $6,
		    invoicing_currency = $7, invoicing_description = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		c.ID, c.RegistrationNo, c.RegistrationDate, c.Currency, c.Unit, c.UnitRate,
		c.InvoicingCurrency, c.InvoicingDescription, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update contract: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a contract row.
func (r *ContractRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM contracts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contract: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
