// Package status define los conjuntos de códigos de estado compartidos por
// pedidos de venta, pedidos de compra, órdenes de producción y existencias.
package status

import (
	"fmt"
	"strings"
)

// Option un código con su etiqueta y color de presentación.
type Option struct {
	Key   int    `json:"key"`
	Value string `json:"value"`
	Color string `json:"color,omitempty"`
}

// Codes conjunto ordenado de códigos de estado.
type Codes struct {
	name    string
	options []Option
}

func newCodes(name string, options ...Option) Codes {
	return Codes{name: name, options: options}
}

// Name nombre del conjunto (ej. "SalesOrderStatus").
func (c Codes) Name() string { return c.name }

// List devuelve las opciones en orden de declaración.
func (c Codes) List() []Option {
	out := make([]Option, len(c.options))
	copy(out, c.options)
	return out
}

// Label devuelve la etiqueta del código; si no existe devuelve el número como texto.
func (c Codes) Label(key int) string {
	for _, o := range c.options {
		if o.Key == key {
			return o.Value
		}
	}
	return fmt.Sprintf("%d", key)
}

// Color devuelve el color asociado o "grey".
func (c Codes) Color(key int) string {
	for _, o := range c.options {
		if o.Key == key && o.Color != "" {
			return o.Color
		}
	}
	return "grey"
}

// Value busca el código por etiqueta (sin distinguir mayúsculas).
func (c Codes) Value(label string) (int, error) {
	for _, o := range c.options {
		if strings.EqualFold(o.Value, label) {
			return o.Key, nil
		}
	}
	return 0, fmt.Errorf("%s: etiqueta %q no encontrada", c.name, label)
}

// Valid indica si el código pertenece al conjunto.
func (c Codes) Valid(key int) bool {
	for _, o := range c.options {
		if o.Key == key {
			return true
		}
	}
	return false
}

func contains(list []int, key int) bool {
	for _, k := range list {
		if k == key {
			return true
		}
	}
	return false
}

// ── Pedidos de venta ──────────────────────────────────────────────────────────

const (
	SalesOrderPending   = 10
	SalesOrderShipped   = 20
	SalesOrderCancelled = 40
	SalesOrderLost      = 50
	SalesOrderReturned  = 60
)

var SalesOrder = newCodes("SalesOrderStatus",
	Option{SalesOrderPending, "Pending", "blue"},
	Option{SalesOrderShipped, "Shipped", "green"},
	Option{SalesOrderCancelled, "Cancelled", "red"},
	Option{SalesOrderLost, "Lost", "yellow"},
	Option{SalesOrderReturned, "Returned", "yellow"},
)

var (
	SalesOrderOpen     = []int{SalesOrderPending}
	SalesOrderComplete = []int{SalesOrderShipped}
)

// SalesOrderIsOpen true si el pedido aún admite asignaciones.
func SalesOrderIsOpen(code int) bool { return contains(SalesOrderOpen, code) }

// ── Pedidos de compra ─────────────────────────────────────────────────────────

const (
	PurchaseOrderPending   = 10
	PurchaseOrderPlaced    = 20
	PurchaseOrderComplete  = 30
	PurchaseOrderCancelled = 40
	PurchaseOrderLost      = 50
	PurchaseOrderReturned  = 60
)

var PurchaseOrder = newCodes("PurchaseOrderStatus",
	Option{PurchaseOrderPending, "Pending", "blue"},
	Option{PurchaseOrderPlaced, "Placed", "blue"},
	Option{PurchaseOrderComplete, "Complete", "green"},
	Option{PurchaseOrderCancelled, "Cancelled", "red"},
	Option{PurchaseOrderLost, "Lost", "yellow"},
	Option{PurchaseOrderReturned, "Returned", "yellow"},
)

var (
	PurchaseOrderOpen   = []int{PurchaseOrderPending, PurchaseOrderPlaced}
	PurchaseOrderFailed = []int{PurchaseOrderCancelled, PurchaseOrderLost, PurchaseOrderReturned}
)

// ── Órdenes de producción ─────────────────────────────────────────────────────

const (
	BuildPending    = 10
	BuildProduction = 20
	BuildCancelled  = 30
	BuildComplete   = 40
)

var Build = newCodes("BuildStatus",
	Option{BuildPending, "Pending", "blue"},
	Option{BuildProduction, "Production", "blue"},
	Option{BuildCancelled, "Cancelled", "red"},
	Option{BuildComplete, "Complete", "green"},
)

var BuildActive = []int{BuildPending, BuildProduction}

// ── Existencias ───────────────────────────────────────────────────────────────

const (
	StockOK        = 10
	StockAttention = 50
	StockDamaged   = 55
	StockDestroyed = 60
	StockRejected  = 65
	StockLost      = 70
	StockReturned  = 85
)

var Stock = newCodes("StockStatus",
	Option{StockOK, "OK", "green"},
	Option{StockAttention, "Attention needed", "yellow"},
	Option{StockDamaged, "Damaged", "red"},
	Option{StockDestroyed, "Destroyed", "red"},
	Option{StockLost, "Lost", "grey"},
	Option{StockRejected, "Rejected", "red"},
	Option{StockReturned, "Returned", ""},
)

var (
	StockAvailable   = []int{StockOK, StockAttention, StockDamaged, StockReturned}
	StockUnavailable = []int{StockDestroyed, StockLost, StockRejected}
	StockReceiving   = []int{StockOK, StockAttention, StockDamaged, StockDestroyed, StockRejected}
)

// StockIsAvailable true si el código cuenta como existencia disponible.
func StockIsAvailable(code int) bool { return contains(StockAvailable, code) }

// All devuelve todos los conjuntos por nombre (para exponerlos por la API).
func All() map[string][]Option {
	return map[string][]Option{
		SalesOrder.Name():    SalesOrder.List(),
		PurchaseOrder.Name(): PurchaseOrder.List(),
		Build.Name():         Build.List(),
		Stock.Name():         Stock.List(),
	}
}
