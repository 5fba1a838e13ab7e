package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/agency-api/internal/application/provisioning"
	"github.com/jhoicas/agency-api/internal/domain/repository"
)

var _ provisioning.TenantTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunTenant inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o
// Rollback. Crear una agencia o sub-cuenta y sembrar sus filas ocurre aquí.
func (r *TxRunner) RunTenant(ctx context.Context, fn func(
	agencyRepo repository.AgencyRepository,
	subAccountRepo repository.SubAccountRepository,
	userRepo repository.UserRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewAgencyRepository(tx), NewSubAccountRepository(tx), NewUserRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", mapPostgresError(err))
	}
	return nil
}
