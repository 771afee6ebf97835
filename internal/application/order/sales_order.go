package order

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-pedidos/internal/application/dto"
	"github.com/jhoicas/inventario-pedidos/internal/domain"
	"github.com/jhoicas/inventario-pedidos/internal/domain/entity"
	"github.com/jhoicas/inventario-pedidos/internal/domain/repository"
	"github.com/jhoicas/inventario-pedidos/internal/domain/status"
)

// SalesOrderUseCase alta y consulta de pedidos de venta y sus líneas.
// Las asignaciones y el envío se manejan en LedgerUseCase.
type SalesOrderUseCase struct {
	read      reader
	customers repository.CompanyRepository
	parts     repository.PartRepository
}

// NewSalesOrderUseCase construye el caso de uso.
func NewSalesOrderUseCase(
	orderRepo repository.SalesOrderRepository,
	allocRepo repository.AllocationRepository,
	stockRepo repository.StockItemRepository,
	companyRepo repository.CompanyRepository,
	partRepo repository.PartRepository,
) *SalesOrderUseCase {
	return &SalesOrderUseCase{
		read:      reader{orders: orderRepo, allocs: allocRepo, stock: stockRepo},
		customers: companyRepo,
		parts:     partRepo,
	}
}

// Create crea un pedido PENDING. La referencia es única y el cliente debe estar marcado como cliente.
func (uc *SalesOrderUseCase) Create(ctx context.Context, userID string, in dto.CreateSalesOrderRequest) (*dto.SalesOrderResponse, error) {
	in.Reference = strings.TrimSpace(in.Reference)
	if in.Reference == "" {
		return nil, domain.NewValidationError("reference", "la referencia es requerida")
	}
	customer, err := uc.customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if !customer.IsCustomer {
		return nil, domain.ErrNotCustomer
	}
	now := time.Now()
	order := &entity.SalesOrder{
		ID:                uuid.New().String(),
		Reference:         in.Reference,
		CustomerID:        customer.ID,
		CustomerReference: in.CustomerReference,
		Description:       in.Description,
		Link:              in.Link,
		Notes:             in.Notes,
		Status:            status.SalesOrderPending,
		CreatedBy:         userID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.read.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return toSalesOrderResponse(order), nil
}

// GetByID obtiene un pedido con el conteo de líneas y si está completamente asignado.
func (uc *SalesOrderUseCase) GetByID(ctx context.Context, id string) (*dto.SalesOrderResponse, error) {
	order, err := uc.read.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	return uc.read.orderResponse(ctx, order)
}

// List lista pedidos; statusCode 0 = todos.
func (uc *SalesOrderUseCase) List(ctx context.Context, statusCode, limit, offset int) (*dto.SalesOrderListResponse, error) {
	if statusCode != 0 && !status.SalesOrder.Valid(statusCode) {
		return nil, domain.NewValidationError("status", "código de estado desconocido")
	}
	list, err := uc.read.orders.List(ctx, statusCode, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SalesOrderResponse, 0, len(list))
	for _, o := range list {
		r, err := uc.read.orderResponse(ctx, o)
		if err != nil {
			return nil, err
		}
		items = append(items, *r)
	}
	return &dto.SalesOrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// AddLine agrega una línea (pedido, parte) a un pedido pendiente.
// Una segunda línea con la misma parte la rechaza la restricción única del repositorio (ErrDuplicate).
func (uc *SalesOrderUseCase) AddLine(ctx context.Context, orderID string, in dto.AddLineRequest) (*dto.LineItemResponse, error) {
	order, err := uc.read.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !order.IsPending() {
		return nil, domain.ErrOrderNotPending
	}
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrQuantityNotPositive
	}
	part, err := uc.parts.GetByID(ctx, in.PartID)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	if !part.Salable {
		return nil, domain.ErrPartNotSalable
	}
	now := time.Now()
	line := &entity.SalesOrderLineItem{
		ID:        uuid.New().String(),
		OrderID:   order.ID,
		PartID:    part.ID,
		Quantity:  in.Quantity,
		Reference: in.Reference,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.read.orders.CreateLine(ctx, line); err != nil {
		return nil, err
	}
	return &dto.LineItemResponse{
		ID:          line.ID,
		OrderID:     line.OrderID,
		PartID:      line.PartID,
		Quantity:    line.Quantity,
		Reference:   line.Reference,
		Notes:       line.Notes,
		Allocations: []dto.AllocationResponse{},
	}, nil
}

// Lines lista las líneas del pedido con sus cantidades asignadas y despachadas.
func (uc *SalesOrderUseCase) Lines(ctx context.Context, orderID string) ([]dto.LineItemResponse, error) {
	order, err := uc.read.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return uc.read.lineResponses(ctx, order)
}
