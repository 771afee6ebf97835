package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-pedidos/internal/application/dto"
	"github.com/jhoicas/inventario-pedidos/internal/domain"
	"github.com/jhoicas/inventario-pedidos/internal/domain/entity"
	"github.com/jhoicas/inventario-pedidos/internal/domain/matching"
	"github.com/jhoicas/inventario-pedidos/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas (clientes, proveedores y fabricantes).
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create crea una nueva empresa. IsSupplier es true si no se envía.
// Devuelve domain.ErrDuplicate si el nombre ya existe.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "el nombre es requerido")
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	supplier := true
	if in.IsSupplier != nil {
		supplier = *in.IsSupplier
	}
	now := time.Now()
	company := &entity.Company{
		ID:             uuid.New().String(),
		Name:           name,
		Description:    in.Description,
		Website:        in.Website,
		Address:        in.Address,
		Phone:          in.Phone,
		Email:          in.Email,
		Contact:        in.Contact,
		Notes:          in.Notes,
		IsCustomer:     in.IsCustomer,
		IsSupplier:     supplier,
		IsManufacturer: in.IsManufacturer,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	return entityToCompanyResponse(company), nil
}

// List lista empresas con paginación y filtros por rol.
func (uc *CompanyUseCase) List(ctx context.Context, filter repository.CompanyFilter, limit, offset int) (*dto.CompanyListResponse, error) {
	list, err := uc.repo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// MatchManufacturers sugiere empresas existentes con nombre parecido a name.
// threshold <= 0 usa matching.DefaultThreshold.
func (uc *CompanyUseCase) MatchManufacturers(ctx context.Context, name string, threshold int) (*dto.ManufacturerMatchResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name", "el nombre es requerido")
	}
	if threshold <= 0 {
		threshold = matching.DefaultThreshold
	}
	if threshold > 100 {
		return nil, domain.NewValidationError("threshold", "el umbral debe estar entre 1 y 100")
	}
	names, err := uc.repo.ListNames(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.ManufacturerMatchResponse{Name: name, Threshold: threshold, Matches: []dto.ManufacturerMatch{}}
	if exact, ok := matching.ExactMatch(name, names); ok {
		out.Exact = exact
	}
	for _, m := range matching.Top(matching.FindMatches(name, names, threshold), matching.MaxSuggestions) {
		out.Matches = append(out.Matches, dto.ManufacturerMatch{Name: m.Name, Score: m.Score})
	}
	return out, nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:             c.ID,
		Name:           c.Name,
		Description:    c.Description,
		Website:        c.Website,
		Address:        c.Address,
		Phone:          c.Phone,
		Email:          c.Email,
		Contact:        c.Contact,
		Notes:          c.Notes,
		IsCustomer:     c.IsCustomer,
		IsSupplier:     c.IsSupplier,
		IsManufacturer: c.IsManufacturer,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
