package fulfillment_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-pedidos/internal/domain"
	"github.com/jhoicas/inventario-pedidos/internal/domain/entity"
	"github.com/jhoicas/inventario-pedidos/internal/domain/fulfillment"
	"github.com/jhoicas/inventario-pedidos/internal/domain/status"
)

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func pendingOrder() *entity.SalesOrder {
	return &entity.SalesOrder{ID: "so-1", Reference: "1234", Status: status.SalesOrderPending}
}

func line(qty int64) *entity.SalesOrderLineItem {
	return &entity.SalesOrderLineItem{ID: "l-1", OrderID: "so-1", PartID: "p-1", Quantity: dec(qty)}
}

func batch(id string, qty int64) *entity.StockItem {
	return &entity.StockItem{ID: id, PartID: "p-1", Quantity: dec(qty), Status: status.StockOK}
}

// ──────────────────────────────────────────────────────────────────────────────
// Cantidades y banderas de línea
// ──────────────────────────────────────────────────────────────────────────────

func TestLineState_SinAsignaciones(t *testing.T) {
	s := fulfillment.NewLineState(line(50), nil, nil)
	assert.True(t, s.Allocated.IsZero())
	assert.True(t, s.Fulfilled.IsZero())
	assert.False(t, s.IsFullyAllocated())
	assert.False(t, s.IsOverAllocated())
}

func TestLineState_ParcialCompletaYExcedida(t *testing.T) {
	l := line(50)
	partial := []*entity.SalesOrderAllocation{{Quantity: dec(25)}, {Quantity: dec(20)}}
	full := []*entity.SalesOrderAllocation{{Quantity: dec(25)}, {Quantity: dec(25)}}
	over := []*entity.SalesOrderAllocation{{Quantity: dec(40)}, {Quantity: dec(25)}}

	s := fulfillment.NewLineState(l, partial, nil)
	assert.True(t, s.Allocated.Equal(dec(45)))
	assert.False(t, s.IsFullyAllocated())

	s = fulfillment.NewLineState(l, full, nil)
	assert.True(t, s.Allocated.Equal(dec(50)))
	assert.True(t, s.IsFullyAllocated())
	assert.False(t, s.IsOverAllocated())

	s = fulfillment.NewLineState(l, over, nil)
	assert.True(t, s.IsFullyAllocated())
	assert.True(t, s.IsOverAllocated())
}

func TestFulfilledQuantity_SoloLotesDelPedidoYParte(t *testing.T) {
	l := line(50)
	shipped := []*entity.StockItem{
		{PartID: "p-1", SalesOrderID: "so-1", Quantity: dec(25)},
		{PartID: "p-1", SalesOrderID: "so-1", Quantity: dec(25)},
		{PartID: "p-2", SalesOrderID: "so-1", Quantity: dec(7)},
		{PartID: "p-1", SalesOrderID: "so-2", Quantity: dec(9)},
	}
	assert.True(t, fulfillment.FulfilledQuantity(l, shipped).Equal(dec(50)))

	// Tras el envío: nada reservado, todo despachado, la línea sigue completa
	s := fulfillment.NewLineState(l, nil, shipped)
	assert.True(t, s.Allocated.IsZero())
	assert.True(t, s.IsFullyAllocated())
	assert.False(t, s.IsOverAllocated())
}

func TestOrderFullyAllocated(t *testing.T) {
	complete := fulfillment.LineState{Quantity: dec(10), Allocated: dec(10)}
	missing := fulfillment.LineState{Quantity: dec(10), Allocated: dec(3)}

	assert.True(t, fulfillment.OrderFullyAllocated(nil), "pedido sin líneas se considera completo")
	assert.True(t, fulfillment.OrderFullyAllocated([]fulfillment.LineState{complete}))
	assert.False(t, fulfillment.OrderFullyAllocated([]fulfillment.LineState{complete, missing}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación de asignaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateAllocation(t *testing.T) {
	cancelled := pendingOrder()
	cancelled.Status = status.SalesOrderCancelled
	consigned := batch("b-x", 100)
	consigned.SalesOrderID = "so-9"
	destroyed := batch("b-d", 100)
	destroyed.Status = status.StockDestroyed
	otherPart := batch("b-o", 100)
	otherPart.PartID = "p-2"

	cases := []struct {
		name  string
		order *entity.SalesOrder
		item  *entity.StockItem
		qty   decimal.Decimal
		want  error
	}{
		{"válida", pendingOrder(), batch("b-1", 100), dec(25), nil},
		{"todo el lote", pendingOrder(), batch("b-1", 100), dec(100), nil},
		{"pedido cancelado", cancelled, batch("b-1", 100), dec(25), domain.ErrOrderNotPending},
		{"cantidad cero", pendingOrder(), batch("b-1", 100), decimal.Zero, domain.ErrQuantityNotPositive},
		{"cantidad negativa", pendingOrder(), batch("b-1", 100), dec(-1), domain.ErrQuantityNotPositive},
		{"supera el lote", pendingOrder(), batch("b-1", 100), dec(101), domain.ErrQuantityExceedsStock},
		{"otra parte", pendingOrder(), otherPart, dec(5), domain.ErrPartMismatch},
		{"lote consignado", pendingOrder(), consigned, dec(5), domain.ErrStockNotAvailable},
		{"lote destruido", pendingOrder(), destroyed, dec(5), domain.ErrStockNotAvailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := fulfillment.ValidateAllocation(tc.order, line(50), tc.item, tc.qty)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, domain.ErrInvalidInput, "toda falla de validación es ErrInvalidInput")
			var ve *domain.ValidationError
			assert.True(t, errors.As(err, &ve))
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Plan de envío
// ──────────────────────────────────────────────────────────────────────────────

func TestPlanTransfer_Parcial_SeparaLote(t *testing.T) {
	now := time.Now()
	item := batch("b-1", 100)
	item.LocationID = "loc-1"

	tr, err := fulfillment.PlanTransfer(pendingOrder(), item, dec(25), "b-new", now)
	require.NoError(t, err)

	require.NotNil(t, tr.Shipped)
	assert.True(t, tr.Source.Quantity.Equal(dec(75)))
	assert.Empty(t, tr.Source.SalesOrderID)
	assert.Equal(t, "b-new", tr.Shipped.ID)
	assert.Equal(t, "b-1", tr.Shipped.ParentID)
	assert.Equal(t, "loc-1", tr.Shipped.LocationID)
	assert.Equal(t, "so-1", tr.Shipped.SalesOrderID)
	assert.True(t, tr.Shipped.Quantity.Equal(dec(25)))
	assert.Same(t, tr.Shipped, tr.Consigned())

	// El lote de entrada no se modifica
	assert.True(t, item.Quantity.Equal(dec(100)))
	// Conservación de cantidad
	assert.True(t, tr.Source.Quantity.Add(tr.Shipped.Quantity).Equal(dec(100)))
}

func TestPlanTransfer_Total_MarcaLoteOriginal(t *testing.T) {
	item := batch("b-1", 30)
	tr, err := fulfillment.PlanTransfer(pendingOrder(), item, dec(30), "b-new", time.Now())
	require.NoError(t, err)

	assert.Nil(t, tr.Shipped)
	assert.Equal(t, "so-1", tr.Source.SalesOrderID)
	assert.True(t, tr.Source.Quantity.Equal(dec(30)))
	assert.Same(t, tr.Source, tr.Consigned())
}

func TestPlanTransfer_ExistenciaInsuficiente(t *testing.T) {
	_, err := fulfillment.PlanTransfer(pendingOrder(), batch("b-1", 10), dec(11), "b-new", time.Now())
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestPlanTransfer_LoteNoDisponible(t *testing.T) {
	for _, st := range status.StockUnavailable {
		item := batch("b-1", 30)
		item.Status = st
		_, err := fulfillment.PlanTransfer(pendingOrder(), item, dec(10), "b-new", time.Now())
		assert.ErrorIs(t, err, domain.ErrStockNotAvailable, "estado %s", status.Stock.Label(st))
	}

	consigned := batch("b-2", 30)
	consigned.SalesOrderID = "so-otro"
	_, err := fulfillment.PlanTransfer(pendingOrder(), consigned, dec(10), "b-new", time.Now())
	assert.ErrorIs(t, err, domain.ErrStockNotAvailable)
}

func TestSplitItem(t *testing.T) {
	item := batch("b-1", 10)
	item.LocationID = "loc-1"

	src, child, err := fulfillment.SplitItem(item, dec(4), "", "b-2", time.Now())
	require.NoError(t, err)
	assert.True(t, src.Quantity.Equal(dec(6)))
	assert.True(t, child.Quantity.Equal(dec(4)))
	assert.Equal(t, "loc-1", child.LocationID)
	assert.Equal(t, "b-1", child.ParentID)

	_, _, err = fulfillment.SplitItem(item, dec(10), "", "b-3", time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "no se separa la cantidad completa")

	_, _, err = fulfillment.SplitItem(item, decimal.Zero, "", "b-3", time.Now())
	assert.ErrorIs(t, err, domain.ErrQuantityNotPositive)
}
