package repository

import (
	"context"

	"github.com/jhoicas/inventario-pedidos/internal/domain/entity"
)

// SalesOrderRepository define el puerto de persistencia para pedidos de venta y sus líneas.
// CreateLine devuelve domain.ErrDuplicate si ya existe una línea con la misma (pedido, parte).
type SalesOrderRepository interface {
	Create(ctx context.Context, order *entity.SalesOrder) error
	GetByID(ctx context.Context, id string) (*entity.SalesOrder, error)
	GetForUpdate(ctx context.Context, id string) (*entity.SalesOrder, error)
	Update(ctx context.Context, order *entity.SalesOrder) error
	// List filtra por estado cuando statusCode > 0.
	List(ctx context.Context, statusCode int, limit, offset int) ([]*entity.SalesOrder, error)

	CreateLine(ctx context.Context, line *entity.SalesOrderLineItem) error
	GetLine(ctx context.Context, id string) (*entity.SalesOrderLineItem, error)
	ListLines(ctx context.Context, orderID string) ([]*entity.SalesOrderLineItem, error)
}

// AllocationRepository define el puerto de persistencia de asignaciones de existencia a líneas.
type AllocationRepository interface {
	Create(ctx context.Context, alloc *entity.SalesOrderAllocation) error
	GetByID(ctx context.Context, id string) (*entity.SalesOrderAllocation, error)
	ListByLine(ctx context.Context, lineID string) ([]*entity.SalesOrderAllocation, error)
	ListByOrder(ctx context.Context, orderID string) ([]*entity.SalesOrderAllocation, error)
	ListByStockItem(ctx context.Context, stockItemID string) ([]*entity.SalesOrderAllocation, error)
	Delete(ctx context.Context, id string) error
	// DeleteByOrder elimina todas las asignaciones del pedido y devuelve cuántas borró.
	DeleteByOrder(ctx context.Context, orderID string) (int, error)
}
