package status_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-pedidos/internal/domain/status"
)

func TestSalesOrder_LabelYValue(t *testing.T) {
	assert.Equal(t, "Pending", status.SalesOrder.Label(status.SalesOrderPending))
	assert.Equal(t, "Shipped", status.SalesOrder.Label(status.SalesOrderShipped))
	// Código desconocido: se devuelve el número tal cual
	assert.Equal(t, "99", status.SalesOrder.Label(99))

	v, err := status.SalesOrder.Value("cancelled")
	require.NoError(t, err)
	assert.Equal(t, status.SalesOrderCancelled, v)

	_, err = status.SalesOrder.Value("inexistente")
	assert.Error(t, err)
}

func TestSalesOrderIsOpen(t *testing.T) {
	assert.True(t, status.SalesOrderIsOpen(status.SalesOrderPending))
	assert.False(t, status.SalesOrderIsOpen(status.SalesOrderShipped))
	assert.False(t, status.SalesOrderIsOpen(status.SalesOrderCancelled))
}

func TestStockIsAvailable(t *testing.T) {
	for _, code := range status.StockAvailable {
		assert.True(t, status.StockIsAvailable(code), "código %d debe estar disponible", code)
	}
	for _, code := range status.StockUnavailable {
		assert.False(t, status.StockIsAvailable(code), "código %d no debe estar disponible", code)
	}
}

func TestCodes_ListYColor(t *testing.T) {
	list := status.Build.List()
	require.Len(t, list, 4)
	assert.Equal(t, status.BuildPending, list[0].Key)
	assert.Equal(t, "red", status.Build.Color(status.BuildCancelled))
	// Returned no tiene color definido en existencias
	assert.Equal(t, "grey", status.Stock.Color(status.StockReturned))

	all := status.All()
	assert.Contains(t, all, "SalesOrderStatus")
	assert.Contains(t, all, "StockStatus")
}
