package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSalesOrderRequest body para POST /api/sales-orders.
type CreateSalesOrderRequest struct {
	Reference         string `json:"reference" validate:"required"`
	CustomerID        string `json:"customer_id" validate:"required"`
	CustomerReference string `json:"customer_reference"`
	Description       string `json:"description"`
	Link              string `json:"link"`
	Notes             string `json:"notes"`
}

// SalesOrderResponse salida de un pedido de venta.
type SalesOrderResponse struct {
	ID                string     `json:"id"`
	Reference         string     `json:"reference"`
	CustomerID        string     `json:"customer_id"`
	CustomerReference string     `json:"customer_reference"`
	Description       string     `json:"description"`
	Link              string     `json:"link"`
	Notes             string     `json:"notes"`
	Status            int        `json:"status"`
	StatusText        string     `json:"status_text"`
	CreatedBy         string     `json:"created_by,omitempty"`
	ShippedBy         string     `json:"shipped_by,omitempty"`
	ShipmentDate      *time.Time `json:"shipment_date,omitempty"`
	LineItems         int        `json:"line_items"`
	FullyAllocated    bool       `json:"fully_allocated"`
	CreatedAt         time.Time  `json:"created_at"`
}

// SalesOrderListResponse lista paginada de pedidos.
type SalesOrderListResponse struct {
	Items []SalesOrderResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// AddLineRequest body para POST /api/sales-orders/:id/lines.
type AddLineRequest struct {
	PartID    string          `json:"part_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reference string          `json:"reference"`
	Notes     string          `json:"notes"`
}

// LineItemResponse línea con sus cantidades calculadas.
type LineItemResponse struct {
	ID             string               `json:"id"`
	OrderID        string               `json:"order_id"`
	PartID         string               `json:"part_id"`
	Quantity       decimal.Decimal      `json:"quantity"`
	Allocated      decimal.Decimal      `json:"allocated"`
	Fulfilled      decimal.Decimal      `json:"fulfilled"`
	FullyAllocated bool                 `json:"fully_allocated"`
	OverAllocated  bool                 `json:"over_allocated"`
	Reference      string               `json:"reference"`
	Notes          string               `json:"notes"`
	Allocations    []AllocationResponse `json:"allocations"`
}

// AllocateRequest body para POST /api/sales-orders/lines/:lineId/allocations.
type AllocateRequest struct {
	StockItemID string          `json:"stock_item_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// AllocationResponse una asignación de existencia a una línea.
type AllocationResponse struct {
	ID          string          `json:"id"`
	LineID      string          `json:"line_id"`
	StockItemID string          `json:"stock_item_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Serial      string          `json:"serial,omitempty"`
	LocationID  string          `json:"location_id,omitempty"`
}

// ShipmentResponse resumen del envío de un pedido.
type ShipmentResponse struct {
	Order        SalesOrderResponse  `json:"order"`
	ShippedItems []StockItemResponse `json:"shipped_items"`
	Allocations  int                 `json:"allocations_consumed"`
}

// CancelResponse resumen de la cancelación de un pedido.
type CancelResponse struct {
	Order              SalesOrderResponse `json:"order"`
	AllocationsRemoved int                `json:"allocations_removed"`
}
