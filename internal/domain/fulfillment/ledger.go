// Package fulfillment contiene las reglas puras del libro de asignaciones de pedidos de venta:
// suma de reservas, cantidades despachadas, validación de asignaciones y plan de envío por lote.
package fulfillment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-pedidos/internal/domain"
	"github.com/jhoicas/inventario-pedidos/internal/domain/entity"
)

// AllocatedQuantity suma de Quantity de las asignaciones dadas. Nunca negativa.
func AllocatedQuantity(allocs []*entity.SalesOrderAllocation) decimal.Decimal {
	total := decimal.Zero
	for _, a := range allocs {
		total = total.Add(a.Quantity)
	}
	return total
}

// FulfilledQuantity suma de los lotes consignados al pedido de la línea con la misma parte.
func FulfilledQuantity(line *entity.SalesOrderLineItem, shipped []*entity.StockItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range shipped {
		if it.SalesOrderID == line.OrderID && it.PartID == line.PartID {
			total = total.Add(it.Quantity)
		}
	}
	return total
}

// LineState cantidades calculadas de una línea de pedido.
type LineState struct {
	Quantity  decimal.Decimal
	Allocated decimal.Decimal
	Fulfilled decimal.Decimal
}

// NewLineState calcula el estado de la línea a partir de sus asignaciones y de los lotes enviados del pedido.
func NewLineState(line *entity.SalesOrderLineItem, allocs []*entity.SalesOrderAllocation, shipped []*entity.StockItem) LineState {
	return LineState{
		Quantity:  line.Quantity,
		Allocated: AllocatedQuantity(allocs),
		Fulfilled: FulfilledQuantity(line, shipped),
	}
}

// IsFullyAllocated reservado + despachado >= solicitado.
// Mientras el pedido está pendiente Fulfilled es cero y equivale a Allocated >= Quantity.
func (s LineState) IsFullyAllocated() bool {
	return s.Allocated.Add(s.Fulfilled).GreaterThanOrEqual(s.Quantity)
}

// IsOverAllocated reservado > solicitado. Se reporta, no se impide.
func (s LineState) IsOverAllocated() bool {
	return s.Allocated.GreaterThan(s.Quantity)
}

// OrderFullyAllocated true si todas las líneas están completamente asignadas.
func OrderFullyAllocated(lines []LineState) bool {
	for _, l := range lines {
		if !l.IsFullyAllocated() {
			return false
		}
	}
	return true
}

// ValidateAllocation verifica las precondiciones de una nueva asignación.
// Solo compara contra la cantidad total del lote, no contra su remanente sin asignar.
func ValidateAllocation(order *entity.SalesOrder, line *entity.SalesOrderLineItem, item *entity.StockItem, quantity decimal.Decimal) error {
	if !order.IsPending() {
		return domain.ErrOrderNotPending
	}
	if !quantity.IsPositive() {
		return domain.ErrQuantityNotPositive
	}
	if item.PartID != line.PartID {
		return domain.ErrPartMismatch
	}
	if !item.InStock() {
		return domain.ErrStockNotAvailable
	}
	if quantity.GreaterThan(item.Quantity) {
		return domain.ErrQuantityExceedsStock
	}
	return nil
}

// Transfer resultado de consumir una asignación sobre su lote.
// Source es el lote original actualizado; Shipped es el lote nuevo separado o nil si se consignó el lote completo.
type Transfer struct {
	Source  *entity.StockItem
	Shipped *entity.StockItem
}

// Consigned devuelve el lote que queda marcado con el pedido.
func (t Transfer) Consigned() *entity.StockItem {
	if t.Shipped != nil {
		return t.Shipped
	}
	return t.Source
}

// PlanTransfer calcula cómo se despacha quantity del lote para el pedido.
// El lote debe seguir en bodega: un estado no disponible posterior a la asignación bloquea el envío.
// Si queda remanente se separa un lote nuevo (newID) con la cantidad enviada; si se consume todo,
// el lote original se marca con el pedido. No modifica item.
func PlanTransfer(order *entity.SalesOrder, item *entity.StockItem, quantity decimal.Decimal, newID string, now time.Time) (Transfer, error) {
	if !quantity.IsPositive() {
		return Transfer{}, domain.ErrQuantityNotPositive
	}
	if !item.InStock() {
		return Transfer{}, domain.ErrStockNotAvailable
	}
	if quantity.GreaterThan(item.Quantity) {
		return Transfer{}, domain.ErrInsufficientStock
	}
	src := *item
	src.UpdatedAt = now
	if quantity.Equal(item.Quantity) {
		src.SalesOrderID = order.ID
		return Transfer{Source: &src}, nil
	}
	src.Quantity = item.Quantity.Sub(quantity)
	shipped := &entity.StockItem{
		ID:           newID,
		ParentID:     item.ID,
		PartID:       item.PartID,
		LocationID:   item.LocationID,
		Quantity:     quantity,
		Batch:        item.Batch,
		Status:       item.Status,
		SalesOrderID: order.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return Transfer{Source: &src, Shipped: shipped}, nil
}

// SplitItem separa quantity del lote hacia un lote nuevo en location (o la misma ubicación si está vacío).
// Devuelve (origen actualizado, nuevo). Requiere 0 < quantity < item.Quantity.
func SplitItem(item *entity.StockItem, quantity decimal.Decimal, location, newID string, now time.Time) (*entity.StockItem, *entity.StockItem, error) {
	if !quantity.IsPositive() {
		return nil, nil, domain.ErrQuantityNotPositive
	}
	if quantity.GreaterThanOrEqual(item.Quantity) {
		return nil, nil, domain.NewValidationError("quantity", "la cantidad a separar debe ser menor que la existencia del lote")
	}
	if location == "" {
		location = item.LocationID
	}
	src := *item
	src.Quantity = item.Quantity.Sub(quantity)
	src.UpdatedAt = now
	child := &entity.StockItem{
		ID:           newID,
		ParentID:     item.ID,
		PartID:       item.PartID,
		LocationID:   location,
		Quantity:     quantity,
		Batch:        item.Batch,
		Status:       item.Status,
		SalesOrderID: item.SalesOrderID,
		Notes:        item.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return &src, child, nil
}
