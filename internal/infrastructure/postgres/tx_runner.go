package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventario-pedidos/internal/application/order"
	"github.com/jhoicas/inventario-pedidos/internal/application/stock"
	"github.com/jhoicas/inventario-pedidos/internal/domain/repository"
)

// Ensure TxRunner implements order.TxRunner and stock.TxRunner.
var _ order.TxRunner = (*TxRunner)(nil)
var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// run inicia una transacción, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunLedger inicia una transacción con los repos del libro de asignaciones (asignar, enviar, cancelar).
func (r *TxRunner) RunLedger(ctx context.Context, fn func(
	orderRepo repository.SalesOrderRepository,
	allocRepo repository.AllocationRepository,
	stockRepo repository.StockItemRepository,
	trackingRepo repository.StockTrackingRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(
			NewSalesOrderRepository(tx),
			NewAllocationRepository(tx),
			NewStockItemRepository(tx),
			NewTrackingRepository(tx),
		)
	})
}

// RunStock inicia una transacción con los repos de existencias (ajustes, división, traslado).
func (r *TxRunner) RunStock(ctx context.Context, fn func(
	stockRepo repository.StockItemRepository,
	trackingRepo repository.StockTrackingRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewStockItemRepository(tx), NewTrackingRepository(tx))
	})
}
