package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-pedidos/internal/domain/status"
)

// SalesOrder pedido de venta contra un cliente.
// Estados: PENDING -> SHIPPED | CANCELLED (ambos terminales).
type SalesOrder struct {
	ID                string
	Reference         string
	CustomerID        string
	CustomerReference string
	Description       string
	Link              string
	Notes             string
	Status            int
	CreatedBy         string
	ShippedBy         string
	ShipmentDate      *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsPending true si el pedido aún acepta asignaciones, envío o cancelación.
func (o *SalesOrder) IsPending() bool {
	return o.Status == status.SalesOrderPending
}

// SalesOrderLineItem par (pedido, parte) con la cantidad solicitada. Único por pedido.
type SalesOrderLineItem struct {
	ID        string
	OrderID   string
	PartID    string
	Quantity  decimal.Decimal
	Reference string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SalesOrderAllocation reserva de Quantity unidades de un StockItem contra una línea.
type SalesOrderAllocation struct {
	ID          string
	LineID      string
	StockItemID string
	Quantity    decimal.Decimal
	CreatedAt   time.Time
}
