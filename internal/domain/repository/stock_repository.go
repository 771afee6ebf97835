package repository

import (
	"context"

	"github.com/jhoicas/inventario-pedidos/internal/domain/entity"
)

// StockItemRepository define el puerto de persistencia de lotes de existencia.
// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT ... FOR UPDATE).
type StockItemRepository interface {
	Create(ctx context.Context, item *entity.StockItem) error
	GetByID(ctx context.Context, id string) (*entity.StockItem, error)
	GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error)
	Update(ctx context.Context, item *entity.StockItem) error
	ListByPart(ctx context.Context, partID string) ([]*entity.StockItem, error)
	ListBySalesOrder(ctx context.Context, orderID string) ([]*entity.StockItem, error)
}

// StockTrackingRepository historial de cambios por lote (solo inserción).
type StockTrackingRepository interface {
	Create(ctx context.Context, entry *entity.StockTracking) error
	ListByItem(ctx context.Context, stockItemID string) ([]*entity.StockTracking, error)
}
