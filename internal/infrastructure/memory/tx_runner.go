package memory

import (
	"context"

	"github.com/jhoicas/inventario-pedidos/internal/application/order"
	"github.com/jhoicas/inventario-pedidos/internal/application/stock"
	"github.com/jhoicas/inventario-pedidos/internal/domain/repository"
)

var _ order.TxRunner = (*TxRunner)(nil)
var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks de forma serializada sobre una copia del estado del Store.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

func (r *TxRunner) run(ctx context.Context, fn func(tx txAccess) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	tx := txAccess{st: r.store.st.clone()}
	if err := fn(tx); err != nil {
		return err
	}
	r.store.st = tx.st
	return nil
}

// RunLedger ejecuta fn con los repositorios del libro de asignaciones atados a la transacción.
func (r *TxRunner) RunLedger(ctx context.Context, fn func(
	orderRepo repository.SalesOrderRepository,
	allocRepo repository.AllocationRepository,
	stockRepo repository.StockItemRepository,
	trackingRepo repository.StockTrackingRepository,
) error) error {
	return r.run(ctx, func(tx txAccess) error {
		return fn(&SalesOrderRepo{db: tx}, &AllocationRepo{db: tx}, &StockItemRepo{db: tx}, &TrackingRepo{db: tx})
	})
}

// RunStock ejecuta fn con los repositorios de existencias atados a la transacción.
func (r *TxRunner) RunStock(ctx context.Context, fn func(
	stockRepo repository.StockItemRepository,
	trackingRepo repository.StockTrackingRepository,
) error) error {
	return r.run(ctx, func(tx txAccess) error {
		return fn(&StockItemRepo{db: tx}, &TrackingRepo{db: tx})
	})
}
