package repository

import (
	"context"

	"github.com/jhoicas/inventario-pedidos/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para StockLocation.
type LocationRepository interface {
	Create(ctx context.Context, loc *entity.StockLocation) error
	GetByID(ctx context.Context, id string) (*entity.StockLocation, error)
	List(ctx context.Context, limit, offset int) ([]*entity.StockLocation, error)
}
