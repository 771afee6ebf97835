package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockTracking nota de historial de un lote (recepción, ajuste, división, envío...).
type StockTracking struct {
	ID          string
	StockItemID string
	Title       string
	Notes       string
	Quantity    decimal.Decimal // cantidad del lote después del cambio
	UserID      string
	Date        time.Time
	System      bool // generada por el sistema, no por un usuario
}
