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

var _ repository.RegistryRepository = (*RegistryRepo)(nil)

// RegistryRepo implements RegistryRepository (usable with pool or tx).
type RegistryRepo struct {
	q Querier
}

// NewRegistryRepository builds the adapter. Pass a pool or tx (Querier).
func NewRegistryRepository(q Querier) *RegistryRepo {
	return &RegistryRepo{q: q}
}

// Create persists a new registry.
func (r *RegistryRepo) Create(reg *entity.Registry) error {
	now := time.Now()
	reg.CreatedAt = now
	reg.UpdatedAt = now
	query := `
		INSERT INTO registries (id, seller_id, display_name, invoice_series, next_number, include_vat, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		reg.ID, reg.SellerID, reg.DisplayName, reg.InvoiceSeries, reg.NextNumber, reg.IncludeVAT,
		reg.CreatedAt, reg.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert registry: %w", err)
	}
	return nil
}

// GetByID fetches a registry by ID.
func (r *RegistryRepo) GetByID(id string) (*entity.Registry, error) {
	return r.get(id, false)
}

// LockByID fetches a registry by ID with FOR UPDATE, serializing issue and
// discard transactions on the sequence counter.
func (r *RegistryRepo) LockByID(id string) (*entity.Registry, error) {
	return r.get(id, true)
}

func (r *RegistryRepo) get(id string, lock bool) (*entity.Registry, error) {
	query := `
		SELECT id, seller_id, display_name, invoice_series, next_number, include_vat, created_at, updated_at
		FROM registries WHERE id = $1`
	if lock {
		query += " FOR UPDATE"
	}
	var reg entity.Registry
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&reg.ID, &reg.SellerID, &reg.DisplayName, &reg.InvoiceSeries, &reg.NextNumber, &reg.IncludeVAT,
		&reg.CreatedAt, &reg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get registry: %w", err)
	}
	return &reg, nil
}

// List returns all registries ordered by creation time.
func (r *RegistryRepo) List() ([]*entity.Registry, error) {
	query := `
		SELECT id, seller_id, display_name, invoice_series, next_number, include_vat, created_at, updated_at
		FROM registries ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list registries: %w", err)
	}
	defer rows.Close()

	var out []*entity.Registry
	for rows.Next() {
		var reg entity.Registry
		if err := rows.Scan(
			&reg.ID, &reg.SellerID, &reg.DisplayName, &reg.InvoiceSeries, &reg.NextNumber, &reg.IncludeVAT,
			&reg.CreatedAt, &reg.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan registry: %w", err)
		}
		out = append(out, &reg)
	}
	return out, rows.Err()
}

// Update rewrites the mutable registry fields.
func (r *RegistryRepo) Update(reg *entity.Registry) error {
	reg.UpdatedAt = time.Now()
	query := `
		UPDATE registries
		SET display_name = $2, invoice_series = $3, next_number = $4, include_vat = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		reg.ID, reg.DisplayName, reg.InvoiceSeries, reg.NextNumber, reg.IncludeVAT, reg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update registry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateNextNumber moves the sequence counter.
func (r *RegistryRepo) UpdateNextNumber(id string, nextNumber int) error {
	query := `UPDATE registries SET next_number = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, nextNumber, time.Now())
	if err != nil {
		return fmt.Errorf("update registry counter: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a registry row.
func (r *RegistryRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM registries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete registry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
