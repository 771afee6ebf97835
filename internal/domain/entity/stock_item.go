package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-pedidos/internal/domain/status"
)

// StockItem un lote físico de una Part. Quantity nunca es negativa.
// SalesOrderID se fija cuando el lote (o la parte separada) se consigna a un pedido enviado.
type StockItem struct {
	ID           string
	ParentID     string // lote del que se separó; vacío si es original
	PartID       string
	LocationID   string
	Quantity     decimal.Decimal
	Batch        string
	Serial       string
	Status       int
	SalesOrderID string
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// InStock true si el lote sigue en bodega: no está consignado a un pedido y su estado es disponible.
func (s *StockItem) InStock() bool {
	return s.SalesOrderID == "" && status.StockIsAvailable(s.Status)
}

// UnallocatedQuantity existencia no reservada por asignaciones (nunca negativa).
func (s *StockItem) UnallocatedQuantity(allocated decimal.Decimal) decimal.Decimal {
	left := s.Quantity.Sub(allocated)
	if left.IsNegative() {
		return decimal.Zero
	}
	return left
}
