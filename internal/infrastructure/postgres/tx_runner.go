package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kopsha/micro-invoicer/internal/application/usecase"
)

// Ensure TxRunner implements usecase.IssuingTxRunner.
var _ usecase.IssuingTxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside one PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunIssuing begins a transaction, runs fn with repositories bound to that
// transaction and commits, rolling back on any error.
func (r *TxRunner) RunIssuing(ctx context.Context, fn func(repos usecase.IssuingRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := usecase.IssuingRepos{
		Registries: NewRegistryRepository(tx),
		Entities:   NewFiscalEntityRepository(tx),
		Contracts:  NewContractRepository(tx),
		Invoices:   NewInvoiceRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
