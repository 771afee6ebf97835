package stock

import (
	"context"

	"github.com/jhoicas/inventario-pedidos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repositorios de existencias.
// La implementación (postgres o memoria) hace Commit si fn retorna nil, Rollback en caso contrario.
type TxRunner interface {
	RunStock(ctx context.Context, fn func(
		stockRepo repository.StockItemRepository,
		trackingRepo repository.StockTrackingRepository,
	) error) error
}
