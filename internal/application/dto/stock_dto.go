package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStockItemRequest body para POST /api/stock (recepción de un lote).
type CreateStockItemRequest struct {
	PartID     string          `json:"part_id"`
	LocationID string          `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Batch      string          `json:"batch"`
	Serial     string          `json:"serial"`
	Status     int             `json:"status"` // 0 = OK
	Notes      string          `json:"notes"`
}

// StockAdjustRequest body para add/take/count.
type StockAdjustRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
	Notes    string          `json:"notes"`
}

// StockSplitRequest body para split.
type StockSplitRequest struct {
	Quantity   decimal.Decimal `json:"quantity"`
	LocationID string          `json:"location_id"`
	Notes      string          `json:"notes"`
}

// StockMoveRequest body para move. Quantity nil = todo el lote.
type StockMoveRequest struct {
	LocationID string           `json:"location_id"`
	Quantity   *decimal.Decimal `json:"quantity,omitempty"`
	Notes      string           `json:"notes"`
}

// StockItemResponse salida de un lote.
type StockItemResponse struct {
	ID                  string          `json:"id"`
	ParentID            string          `json:"parent_id,omitempty"`
	PartID              string          `json:"part_id"`
	LocationID          string          `json:"location_id,omitempty"`
	Quantity            decimal.Decimal `json:"quantity"`
	AllocatedQuantity   decimal.Decimal `json:"allocated_quantity"`
	UnallocatedQuantity decimal.Decimal `json:"unallocated_quantity"`
	Batch               string          `json:"batch,omitempty"`
	Serial              string          `json:"serial,omitempty"`
	Status              int             `json:"status"`
	StatusText          string          `json:"status_text"`
	SalesOrderID        string          `json:"sales_order_id,omitempty"`
	InStock             bool            `json:"in_stock"`
	Notes               string          `json:"notes,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// StockMoveResponse resultado de move/split: el lote original y el nuevo (si hubo separación).
type StockMoveResponse struct {
	Item StockItemResponse  `json:"item"`
	New  *StockItemResponse `json:"new,omitempty"`
}

// StockTrackingResponse una nota del historial de un lote.
type StockTrackingResponse struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Notes    string          `json:"notes"`
	Quantity decimal.Decimal `json:"quantity"`
	UserID   string          `json:"user_id,omitempty"`
	Date     time.Time       `json:"date"`
	System   bool            `json:"system"`
}
