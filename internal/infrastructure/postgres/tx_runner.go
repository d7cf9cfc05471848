package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/temucosoft-api/internal/application/inventory"
	"github.com/jhoicas/temucosoft-api/internal/domain"
)

// maxTxAttempts intentos por transacción ante deadlock o fallo de serialización.
const maxTxAttempts = 3

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL (READ COMMITTED).
// Las filas de stock se serializan con SELECT ... FOR UPDATE dentro de la transacción.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Ante 40P01 o 40001 la transacción completa se repite; fn debe poder ejecutarse de nuevo.
func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	return retryTx(ctx, maxTxAttempts, func() error { return r.runOnce(ctx, fn) })
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := inventory.TxRepos{
		Stock:     NewStockRepository(tx),
		Purchases: NewPurchaseRepository(tx),
		Sales:     NewSaleRepository(tx),
		Orders:    NewOrderRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// retryTx repite fn mientras falle por deadlock o serialización. Agotados los intentos el error
// envuelve domain.ErrTxAborted (409 reintentable).
func retryTx(ctx context.Context, attempts int, fn func() error) error {
	var err error
	for i := 1; i <= attempts; i++ {
		if err = fn(); !isRetryable(err) {
			return err
		}
		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(i*20) * time.Millisecond):
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrTxAborted, err)
}
