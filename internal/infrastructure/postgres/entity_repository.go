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

var _ repository.FiscalEntityRepository = (*FiscalEntityRepo)(nil)

// FiscalEntityRepo implements FiscalEntityRepository (usable with pool or tx).
type FiscalEntityRepo struct {
	q Querier
}

// NewFiscalEntityRepository builds the adapter. Pass a pool or tx (Querier).
func NewFiscalEntityRepository(q Querier) *FiscalEntityRepo {
	return &FiscalEntityRepo{q: q}
}

// Create persists a fiscal entity (live identity or frozen snapshot alike).
func (r *FiscalEntityRepo) Create(fe *entity.FiscalEntity) error {
	now := time.Now()
	fe.CreatedAt = now
	fe.UpdatedAt = now
	query := `
		INSERT INTO fiscal_entities (id, name, owner_fullname, registration_id, fiscal_code, address, country, bank_account, bank_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		fe.ID, fe.Name, fe.OwnerFullname, fe.RegistrationID, fe.FiscalCode, fe.Address, fe.Country,
		fe.BankAccount, fe.BankName, fe.CreatedAt, fe.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert fiscal entity: %w", err)
	}
	return nil
}

// GetByID fetches a fiscal entity by ID.
func (r *FiscalEntityRepo) GetByID(id string) (*entity.FiscalEntity, error) {
	query := `
		SELECT id, name, owner_fullname, registration_id, fiscal_code, address, country, bank_account, bank_name, created_at, updated_at
		FROM fiscal_entities WHERE id = $1`
	var fe entity.FiscalEntity
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&fe.ID, &fe.Name, &fe.OwnerFullname, &fe.RegistrationID, &fe.FiscalCode, &fe.Address, &fe.Country,
		&fe.BankAccount, &fe.BankName, &fe.CreatedAt, &fe.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fiscal entity: %w", err)
	}
	return &fe, nil
}

// Update rewrites a live fiscal entity. Snapshots are never updated.
func (r *FiscalEntityRepo) Update(fe *entity.FiscalEntity) error {
	fe.UpdatedAt = time.Now()
	query := `
		UPDATE fiscal_entities
		SET name = $2, owner_fullname = $3, registration_id = $4, fiscal_code = $5, address = $6,
		    country = $7, bank_account = $8, bank_name = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		fe.ID, fe.Name, fe.OwnerFullname, fe.RegistrationID, fe.FiscalCode, fe.Address, fe.Country,
		fe.BankAccount, fe.BankName, fe.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update fiscal entity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
