package repository

import (
	"context"

	"github.com/jhoicas/inventario-pedidos/internal/domain/entity"
)

// PartRepository define el puerto de persistencia para Part (DIP).
type PartRepository interface {
	Create(ctx context.Context, part *entity.Part) error
	GetByID(ctx context.Context, id string) (*entity.Part, error)
	Update(ctx context.Context, part *entity.Part) error
	List(ctx context.Context, limit, offset int) ([]*entity.Part, error)
}
