package order

import (
	"context"

	"github.com/jhoicas/inventario-pedidos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Asignar, enviar y cancelar se ejecutan completos o no se aplican.
type TxRunner interface {
	RunLedger(ctx context.Context, fn func(
		orderRepo repository.SalesOrderRepository,
		allocRepo repository.AllocationRepository,
		stockRepo repository.StockItemRepository,
		trackingRepo repository.StockTrackingRepository,
	) error) error
}
