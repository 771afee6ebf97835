package repository

import (
	"context"

	"github.com/jhoicas/inventario-pedidos/internal/domain/entity"
)

// CompanyFilter filtros opcionales para listar empresas.
type CompanyFilter struct {
	CustomersOnly     bool
	SuppliersOnly     bool
	ManufacturersOnly bool
}

// CompanyRepository define el puerto de persistencia para Company. El nombre es único (ErrDuplicate).
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetByName(ctx context.Context, name string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	List(ctx context.Context, filter CompanyFilter, limit, offset int) ([]*entity.Company, error)
	ListNames(ctx context.Context) ([]string, error)
}
