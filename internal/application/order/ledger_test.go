package order_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-pedidos/internal/application/dto"
	"github.com/jhoicas/inventario-pedidos/internal/application/order"
	"github.com/jhoicas/inventario-pedidos/internal/application/stock"
	"github.com/jhoicas/inventario-pedidos/internal/domain"
	"github.com/jhoicas/inventario-pedidos/internal/domain/entity"
	"github.com/jhoicas/inventario-pedidos/internal/domain/status"
	"github.com/jhoicas/inventario-pedidos/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: un cliente, una parte vendible, dos lotes (100 y 200) y un pedido
// ──────────────────────────────────────────────────────────────────────────────

const testUser = "00000000-0000-0000-0000-0000000000aa"

type fixture struct {
	ctx     context.Context
	stocks  *memory.StockItemRepo
	allocs  *memory.AllocationRepo
	orders  *order.SalesOrderUseCase
	ledger  *order.LedgerUseCase
	stockUC *stock.StockUseCase
	partID  string
	batchA  string
	batchB  string
	orderID string
}

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)
	parts := memory.NewPartRepository(store)
	companies := memory.NewCompanyRepository(store)
	locations := memory.NewLocationRepository(store)
	stocks := memory.NewStockItemRepository(store)
	tracking := memory.NewTrackingRepository(store)
	orderRepo := memory.NewSalesOrderRepository(store)
	allocs := memory.NewAllocationRepository(store)

	now := time.Now()
	require.NoError(t, companies.Create(ctx, &entity.Company{ID: "c-1", Name: "ACME", IsCustomer: true, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, parts.Create(ctx, &entity.Part{ID: "p-1", Name: "Tornillo M3", Salable: true, Active: true, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, locations.Create(ctx, &entity.StockLocation{ID: "loc-1", Name: "Bodega", CreatedAt: now, UpdatedAt: now}))

	f := &fixture{
		ctx:     ctx,
		stocks:  stocks,
		allocs:  allocs,
		orders:  order.NewSalesOrderUseCase(orderRepo, allocs, stocks, companies, parts),
		ledger:  order.NewLedgerUseCase(tx, orderRepo, allocs, stocks, zerolog.Nop()),
		stockUC: stock.NewStockUseCase(tx, stocks, tracking, allocs, parts, locations),
		partID:  "p-1",
	}

	a, err := f.stockUC.Create(ctx, testUser, dto.CreateStockItemRequest{PartID: "p-1", LocationID: "loc-1", Quantity: dec(100)})
	require.NoError(t, err)
	b, err := f.stockUC.Create(ctx, testUser, dto.CreateStockItemRequest{PartID: "p-1", LocationID: "loc-1", Quantity: dec(200)})
	require.NoError(t, err)
	f.batchA, f.batchB = a.ID, b.ID

	so, err := f.orders.Create(ctx, testUser, dto.CreateSalesOrderRequest{Reference: "1234", CustomerID: "c-1"})
	require.NoError(t, err)
	f.orderID = so.ID
	return f
}

func (f *fixture) addLine(t *testing.T, qty int64) string {
	t.Helper()
	l, err := f.orders.AddLine(f.ctx, f.orderID, dto.AddLineRequest{PartID: f.partID, Quantity: dec(qty)})
	require.NoError(t, err)
	return l.ID
}

func (f *fixture) allocate(t *testing.T, lineID, itemID string, qty int64) {
	t.Helper()
	_, err := f.ledger.Allocate(f.ctx, order.AllocateInput{LineID: lineID, StockItemID: itemID, Quantity: dec(qty)})
	require.NoError(t, err)
}

func (f *fixture) quantity(t *testing.T, itemID string) decimal.Decimal {
	t.Helper()
	it, err := f.stocks.GetByID(f.ctx, itemID)
	require.NoError(t, err)
	require.NotNil(t, it)
	return it.Quantity
}

func (f *fixture) totalStock(t *testing.T) decimal.Decimal {
	t.Helper()
	items, err := f.stocks.ListByPart(f.ctx, f.partID)
	require.NoError(t, err)
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Quantity)
	}
	return total
}

// ──────────────────────────────────────────────────────────────────────────────
// Asignación
// ──────────────────────────────────────────────────────────────────────────────

func TestAllocate_DosLotesCompletanLaLinea(t *testing.T) {
	f := newFixture(t)
	lineID := f.addLine(t, 50)

	f.allocate(t, lineID, f.batchA, 25)
	ok, err := f.ledger.IsFullyAllocated(f.ctx, f.orderID)
	require.NoError(t, err)
	assert.False(t, ok, "25 de 50 no completa la línea")

	f.allocate(t, lineID, f.batchB, 25)
	ok, err = f.ledger.IsFullyAllocated(f.ctx, f.orderID)
	require.NoError(t, err)
	assert.True(t, ok)

	line, err := f.ledger.Line(f.ctx, lineID)
	require.NoError(t, err)
	require.NotNil(t, line)
	assert.True(t, line.Allocated.Equal(dec(50)))
	assert.True(t, line.Fulfilled.IsZero())
	assert.Len(t, line.Allocations, 2)

	// la asignación no mueve existencia
	assert.True(t, f.quantity(t, f.batchA).Equal(dec(100)))
	assert.True(t, f.quantity(t, f.batchB).Equal(dec(200)))
}

func TestAllocate_Parcial(t *testing.T) {
	f := newFixture(t)
	lineID := f.addLine(t, 50)
	f.allocate(t, lineID, f.batchA, 45)

	ok, err := f.ledger.IsFullyAllocated(f.ctx, f.orderID)
	require.NoError(t, err)
	assert.False(t, ok)

	line, err := f.ledger.Line(f.ctx, lineID)
	require.NoError(t, err)
	assert.True(t, line.Allocated.Equal(dec(45)))
}

func TestAllocate_Rechazos(t *testing.T) {
	f := newFixture(t)
	lineID := f.addLine(t, 50)

	cases := []struct {
		name string
		in   order.AllocateInput
		want error
	}{
		{"cantidad cero", order.AllocateInput{LineID: lineID, StockItemID: f.batchA, Quantity: decimal.Zero}, domain.ErrQuantityNotPositive},
		{"cantidad negativa", order.AllocateInput{LineID: lineID, StockItemID: f.batchA, Quantity: dec(-1)}, domain.ErrQuantityNotPositive},
		{"supera el lote", order.AllocateInput{LineID: lineID, StockItemID: f.batchA, Quantity: dec(101)}, domain.ErrQuantityExceedsStock},
		{"lote inexistente", order.AllocateInput{LineID: lineID, StockItemID: "nope", Quantity: dec(1)}, domain.ErrNotFound},
		{"línea inexistente", order.AllocateInput{LineID: "nope", StockItemID: f.batchA, Quantity: dec(1)}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.ledger.Allocate(f.ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	allocs, err := f.allocs.ListByLine(f.ctx, lineID)
	require.NoError(t, err)
	assert.Empty(t, allocs)
}

func TestAllocate_SobreAsignacionSeInforma(t *testing.T) {
	f := newFixture(t)
	lineID := f.addLine(t, 50)
	f.allocate(t, lineID, f.batchA, 40)
	f.allocate(t, lineID, f.batchB, 40)

	line, err := f.ledger.Line(f.ctx, lineID)
	require.NoError(t, err)
	assert.True(t, line.OverAllocated)
	assert.True(t, line.FullyAllocated)
}

func TestDeleteAllocation_LiberaSinTocarExistencia(t *testing.T) {
	f := newFixture(t)
	lineID := f.addLine(t, 50)
	f.allocate(t, lineID, f.batchA, 25)

	allocs, err := f.allocs.ListByLine(f.ctx, lineID)
	require.NoError(t, err)
	require.Len(t, allocs, 1)
	require.NoError(t, f.ledger.DeleteAllocation(f.ctx, allocs[0].ID))

	line, err := f.ledger.Line(f.ctx, lineID)
	require.NoError(t, err)
	assert.True(t, line.Allocated.IsZero())
	assert.True(t, f.quantity(t, f.batchA).Equal(dec(100)))

	assert.ErrorIs(t, f.ledger.DeleteAllocation(f.ctx, allocs[0].ID), domain.ErrNotFound)
}

func TestAddLine_DuplicadaEsError(t *testing.T) {
	f := newFixture(t)
	f.addLine(t, 50)
	_, err := f.orders.AddLine(f.ctx, f.orderID, dto.AddLineRequest{PartID: f.partID, Quantity: dec(10)})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestIsFullyAllocated_PedidoVacio(t *testing.T) {
	f := newFixture(t)
	ok, err := f.ledger.IsFullyAllocated(f.ctx, f.orderID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = f.ledger.IsFullyAllocated(f.ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Envío
// ──────────────────────────────────────────────────────────────────────────────

func TestShipOrder_SeparaLotesYConsumeAsignaciones(t *testing.T) {
	f := newFixture(t)
	lineID := f.addLine(t, 50)
	f.allocate(t, lineID, f.batchA, 25)
	f.allocate(t, lineID, f.batchB, 25)
	before := f.totalStock(t)

	out, err := f.ledger.ShipOrder(f.ctx, f.orderID, testUser)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Allocations)
	assert.Len(t, out.ShippedItems, 2)
	assert.Equal(t, status.SalesOrderShipped, out.Order.Status)
	assert.NotNil(t, out.Order.ShipmentDate)
	assert.Equal(t, testUser, out.Order.ShippedBy)

	// los lotes originales quedan con el remanente
	assert.True(t, f.quantity(t, f.batchA).Equal(dec(75)))
	assert.True(t, f.quantity(t, f.batchB).Equal(dec(175)))

	// dos lotes nuevos de 25 marcados con el pedido
	shipped, err := f.stocks.ListBySalesOrder(f.ctx, f.orderID)
	require.NoError(t, err)
	require.Len(t, shipped, 2)
	for _, it := range shipped {
		assert.True(t, it.Quantity.Equal(dec(25)))
		assert.NotEmpty(t, it.ParentID)
		assert.False(t, it.InStock())
	}

	allocs, err := f.allocs.ListByOrder(f.ctx, f.orderID)
	require.NoError(t, err)
	assert.Empty(t, allocs)

	line, err := f.ledger.Line(f.ctx, lineID)
	require.NoError(t, err)
	assert.True(t, line.Fulfilled.Equal(dec(50)))
	assert.True(t, line.Allocated.IsZero())
	assert.True(t, line.FullyAllocated, "lo despachado cuenta para la asignación completa")

	assert.True(t, f.totalStock(t).Equal(before), "la cantidad total se conserva")
}

func TestShipOrder_ConsumeLoteCompleto(t *testing.T) {
	f := newFixture(t)
	lineID := f.addLine(t, 100)
	f.allocate(t, lineID, f.batchA, 100)

	_, err := f.ledger.ShipOrder(f.ctx, f.orderID, testUser)
	require.NoError(t, err)

	it, err := f.stocks.GetByID(f.ctx, f.batchA)
	require.NoError(t, err)
	assert.True(t, it.Quantity.Equal(dec(100)))
	assert.Equal(t, f.orderID, it.SalesOrderID, "el lote completo se marca con el pedido sin separar")

	items, err := f.stocks.ListByPart(f.ctx, f.partID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestShipOrder_SegundoEnvioFalla(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledger.ShipOrder(f.ctx, f.orderID, testUser)
	require.NoError(t, err)

	_, err = f.ledger.ShipOrder(f.ctx, f.orderID, testUser)
	assert.ErrorIs(t, err, domain.ErrOrderNotPending)

	lineErr := func() error {
		_, err := f.orders.AddLine(f.ctx, f.orderID, dto.AddLineRequest{PartID: f.partID, Quantity: dec(1)})
		return err
	}()
	assert.ErrorIs(t, lineErr, domain.ErrOrderNotPending)
}

func TestShipOrder_FalloDeshaceTodo(t *testing.T) {
	f := newFixture(t)
	lineID := f.addLine(t, 50)
	f.allocate(t, lineID, f.batchB, 25)
	f.allocate(t, lineID, f.batchA, 25)

	// el lote A baja a 10: ya no alcanza para la asignación de 25
	_, err := f.stockUC.Take(f.ctx, f.batchA, testUser, dto.StockAdjustRequest{Quantity: dec(90)})
	require.NoError(t, err)

	_, err = f.ledger.ShipOrder(f.ctx, f.orderID, testUser)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	so, err := f.orders.GetByID(f.ctx, f.orderID)
	require.NoError(t, err)
	assert.Equal(t, status.SalesOrderPending, so.Status)
	assert.True(t, f.quantity(t, f.batchA).Equal(dec(10)))
	assert.True(t, f.quantity(t, f.batchB).Equal(dec(200)))

	shipped, err := f.stocks.ListBySalesOrder(f.ctx, f.orderID)
	require.NoError(t, err)
	assert.Empty(t, shipped)

	allocs, err := f.allocs.ListByOrder(f.ctx, f.orderID)
	require.NoError(t, err)
	assert.Len(t, allocs, 2)
}

func TestShipOrder_LoteDadoDeBajaTrasAsignar(t *testing.T) {
	f := newFixture(t)
	lineID := f.addLine(t, 50)
	f.allocate(t, lineID, f.batchB, 25)
	f.allocate(t, lineID, f.batchA, 25)

	lost, err := f.stocks.GetByID(f.ctx, f.batchA)
	require.NoError(t, err)
	lost.Status = status.StockLost
	require.NoError(t, f.stocks.Update(f.ctx, lost))

	_, err = f.ledger.ShipOrder(f.ctx, f.orderID, testUser)
	assert.ErrorIs(t, err, domain.ErrStockNotAvailable)

	so, err := f.orders.GetByID(f.ctx, f.orderID)
	require.NoError(t, err)
	assert.Equal(t, status.SalesOrderPending, so.Status)
	assert.True(t, f.quantity(t, f.batchB).Equal(dec(200)), "el lote B no se separa")
	shipped, err := f.stocks.ListBySalesOrder(f.ctx, f.orderID)
	require.NoError(t, err)
	assert.Empty(t, shipped)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancelación
// ──────────────────────────────────────────────────────────────────────────────

func TestCancelOrder_LiberaAsignacionesSinTocarLotes(t *testing.T) {
	f := newFixture(t)
	lineID := f.addLine(t, 50)
	f.allocate(t, lineID, f.batchA, 25)
	f.allocate(t, lineID, f.batchB, 25)

	out, err := f.ledger.CancelOrder(f.ctx, f.orderID)
	require.NoError(t, err)
	assert.Equal(t, 2, out.AllocationsRemoved)
	assert.Equal(t, status.SalesOrderCancelled, out.Order.Status)

	assert.True(t, f.quantity(t, f.batchA).Equal(dec(100)))
	assert.True(t, f.quantity(t, f.batchB).Equal(dec(200)))
	allocs, err := f.allocs.ListByOrder(f.ctx, f.orderID)
	require.NoError(t, err)
	assert.Empty(t, allocs)

	_, err = f.ledger.ShipOrder(f.ctx, f.orderID, testUser)
	assert.ErrorIs(t, err, domain.ErrOrderNotPending)
	_, err = f.ledger.CancelOrder(f.ctx, f.orderID)
	assert.ErrorIs(t, err, domain.ErrOrderNotPending)
	_, err = f.ledger.Allocate(f.ctx, order.AllocateInput{LineID: lineID, StockItemID: f.batchA, Quantity: dec(1)})
	assert.ErrorIs(t, err, domain.ErrOrderNotPending)
}
