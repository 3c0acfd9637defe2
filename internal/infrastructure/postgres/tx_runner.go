package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aarsoma/deliverynote-api/internal/application/customers"
	"github.com/aarsoma/deliverynote-api/internal/application/delivery"
	"github.com/aarsoma/deliverynote-api/internal/domain/repository"
)

// Ensure TxRunner implements delivery.TxRunner and customers.TxRunner.
var _ delivery.TxRunner = (*TxRunner)(nil)
var _ customers.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con el repo de notas atado a la
// tx y hace Commit o Rollback (creación atómica de nota + líneas).
func (r *TxRunner) Run(ctx context.Context, fn func(noteRepo repository.DeliveryNoteRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewDeliveryNoteRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCustomer inicia una transacción con repos de clientes y notas (para
// el borrado protegido: el chequeo de referencias y el DELETE comparten
// frontera de consistencia).
func (r *TxRunner) RunCustomer(ctx context.Context, fn func(
	customerRepo repository.CustomerRepository,
	noteRepo repository.DeliveryNoteRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCustomerRepository(tx), NewDeliveryNoteRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
