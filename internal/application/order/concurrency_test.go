package order_test

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-pedidos/internal/application/order"
	"github.com/jhoicas/inventario-pedidos/internal/domain"
	"github.com/jhoicas/inventario-pedidos/internal/domain/status"
)

// ──────────────────────────────────────────────────────────────────────────────
// Escritores concurrentes sobre un mismo pedido (correr con -race)
// ──────────────────────────────────────────────────────────────────────────────

func TestConcurrencia_EnvioYCancelacionCompiten(t *testing.T) {
	for round := 0; round < 20; round++ {
		f := newFixture(t)
		lineID := f.addLine(t, 50)
		f.allocate(t, lineID, f.batchA, 25)
		f.allocate(t, lineID, f.batchB, 25)
		before := f.totalStock(t)

		start := make(chan struct{})
		var wg sync.WaitGroup
		var shipErr, cancelErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start
			_, shipErr = f.ledger.ShipOrder(f.ctx, f.orderID, testUser)
		}()
		go func() {
			defer wg.Done()
			<-start
			_, cancelErr = f.ledger.CancelOrder(f.ctx, f.orderID)
		}()
		close(start)
		wg.Wait()

		// exactamente uno gana; el otro ve el pedido ya cerrado
		require.True(t, (shipErr == nil) != (cancelErr == nil), "ship=%v cancel=%v", shipErr, cancelErr)

		so, err := f.orders.GetByID(f.ctx, f.orderID)
		require.NoError(t, err)
		allocs, err := f.allocs.ListByOrder(f.ctx, f.orderID)
		require.NoError(t, err)
		assert.Empty(t, allocs)

		shipped, err := f.stocks.ListBySalesOrder(f.ctx, f.orderID)
		require.NoError(t, err)
		if shipErr == nil {
			assert.ErrorIs(t, cancelErr, domain.ErrOrderNotPending)
			assert.Equal(t, status.SalesOrderShipped, so.Status)
			assert.Len(t, shipped, 2)
		} else {
			assert.ErrorIs(t, shipErr, domain.ErrOrderNotPending)
			assert.Equal(t, status.SalesOrderCancelled, so.Status)
			assert.Empty(t, shipped)
			assert.True(t, f.quantity(t, f.batchA).Equal(dec(100)))
			assert.True(t, f.quantity(t, f.batchB).Equal(dec(200)))
		}
		assert.True(t, f.totalStock(t).Equal(before), "la cantidad total se conserva")
	}
}

func TestConcurrencia_AsignacionesParalelasSeSuman(t *testing.T) {
	f := newFixture(t)
	lineID := f.addLine(t, 100)

	const workers = 20
	start := make(chan struct{})
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		item := f.batchA
		if i%2 == 1 {
			item = f.batchB
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := f.ledger.Allocate(f.ctx, order.AllocateInput{LineID: lineID, StockItemID: item, Quantity: dec(5)})
			errs <- err
		}()
	}
	close(start)
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	line, err := f.ledger.Line(f.ctx, lineID)
	require.NoError(t, err)
	assert.True(t, line.Allocated.Equal(dec(100)), "asignado=%s", line.Allocated)
	assert.Len(t, line.Allocations, workers)
	assert.True(t, line.FullyAllocated)
	assert.False(t, line.OverAllocated)
}

func TestConcurrencia_AsignarMientrasSeEnvia(t *testing.T) {
	f := newFixture(t)
	lineID := f.addLine(t, 100)
	f.allocate(t, lineID, f.batchA, 5)
	before := f.totalStock(t)

	const workers = 10
	start := make(chan struct{})
	var (
		mu      sync.Mutex
		granted int
		wg      sync.WaitGroup
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := f.ledger.Allocate(f.ctx, order.AllocateInput{LineID: lineID, StockItemID: f.batchB, Quantity: dec(5)})
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrOrderNotPending)
				return
			}
			mu.Lock()
			granted++
			mu.Unlock()
		}()
	}
	wg.Add(1)
	var shipErr error
	go func() {
		defer wg.Done()
		<-start
		_, shipErr = f.ledger.ShipOrder(f.ctx, f.orderID, testUser)
	}()
	close(start)
	wg.Wait()
	require.NoError(t, shipErr)

	// lo asignado antes del envío queda despachado; lo posterior fue rechazado
	line, err := f.ledger.Line(f.ctx, lineID)
	require.NoError(t, err)
	assert.True(t, line.Allocated.IsZero())
	want := decimal.NewFromInt(int64(5 * (granted + 1)))
	assert.True(t, line.Fulfilled.Equal(want), "despachado=%s esperado=%s", line.Fulfilled, want)
	assert.True(t, f.totalStock(t).Equal(before), "la cantidad total se conserva")
}
