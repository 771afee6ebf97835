package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-pedidos/internal/application/dto"
	"github.com/jhoicas/inventario-pedidos/internal/domain"
	"github.com/jhoicas/inventario-pedidos/internal/domain/entity"
	"github.com/jhoicas/inventario-pedidos/internal/domain/repository"
)

// PartUseCase casos de uso CRUD para partes del catálogo. La existencia se maneja por lotes.
type PartUseCase struct {
	repo repository.PartRepository
}

// NewPartUseCase construye el caso de uso.
func NewPartUseCase(repo repository.PartRepository) *PartUseCase {
	return &PartUseCase{repo: repo}
}

// Create crea una nueva parte activa.
func (uc *PartUseCase) Create(ctx context.Context, in dto.CreatePartRequest) (*dto.PartResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "el nombre es requerido")
	}
	now := time.Now()
	part := &entity.Part{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		IPN:         in.IPN,
		Units:       in.Units,
		Salable:     in.Salable,
		Trackable:   in.Trackable,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, part); err != nil {
		return nil, err
	}
	return toPartResponse(part), nil
}

// GetByID obtiene una parte por ID.
func (uc *PartUseCase) GetByID(ctx context.Context, id string) (*dto.PartResponse, error) {
	part, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, nil
	}
	return toPartResponse(part), nil
}

// Update actualiza los campos enviados de una parte.
func (uc *PartUseCase) Update(ctx context.Context, id string, in dto.UpdatePartRequest) (*dto.PartResponse, error) {
	part, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, nil
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("name", "el nombre es requerido")
		}
		part.Name = name
	}
	if in.Description != nil {
		part.Description = *in.Description
	}
	if in.IPN != nil {
		part.IPN = *in.IPN
	}
	if in.Units != nil {
		part.Units = *in.Units
	}
	if in.Salable != nil {
		part.Salable = *in.Salable
	}
	if in.Trackable != nil {
		part.Trackable = *in.Trackable
	}
	if in.Active != nil {
		part.Active = *in.Active
	}
	part.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, part); err != nil {
		return nil, err
	}
	return toPartResponse(part), nil
}

// List lista partes con paginación.
func (uc *PartUseCase) List(ctx context.Context, limit, offset int) (*dto.PartListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPartResponse(p))
	}
	return &dto.PartListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toPartResponse(p *entity.Part) *dto.PartResponse {
	if p == nil {
		return nil
	}
	return &dto.PartResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		IPN:         p.IPN,
		Units:       p.Units,
		Salable:     p.Salable,
		Trackable:   p.Trackable,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
