package order

import (
	"context"

	"github.com/jhoicas/inventario-pedidos/internal/application/dto"
	"github.com/jhoicas/inventario-pedidos/internal/domain/entity"
	"github.com/jhoicas/inventario-pedidos/internal/domain/fulfillment"
	"github.com/jhoicas/inventario-pedidos/internal/domain/repository"
	"github.com/jhoicas/inventario-pedidos/internal/domain/status"
)

// reader consultas de solo lectura compartidas por los casos de uso de pedidos.
type reader struct {
	orders repository.SalesOrderRepository
	allocs repository.AllocationRepository
	stock  repository.StockItemRepository
}

// lineStates calcula el estado de cada línea del pedido.
func (r reader) lineStates(ctx context.Context, order *entity.SalesOrder) ([]*entity.SalesOrderLineItem, []fulfillment.LineState, map[string][]*entity.SalesOrderAllocation, error) {
	lines, err := r.orders.ListLines(ctx, order.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	shipped, err := r.stock.ListBySalesOrder(ctx, order.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	byLine := make(map[string][]*entity.SalesOrderAllocation, len(lines))
	states := make([]fulfillment.LineState, 0, len(lines))
	for _, l := range lines {
		allocs, err := r.allocs.ListByLine(ctx, l.ID)
		if err != nil {
			return nil, nil, nil, err
		}
		byLine[l.ID] = allocs
		states = append(states, fulfillment.NewLineState(l, allocs, shipped))
	}
	return lines, states, byLine, nil
}

func (r reader) orderResponse(ctx context.Context, order *entity.SalesOrder) (*dto.SalesOrderResponse, error) {
	lines, states, _, err := r.lineStates(ctx, order)
	if err != nil {
		return nil, err
	}
	out := toSalesOrderResponse(order)
	out.LineItems = len(lines)
	out.FullyAllocated = fulfillment.OrderFullyAllocated(states)
	return out, nil
}

func (r reader) lineResponses(ctx context.Context, order *entity.SalesOrder) ([]dto.LineItemResponse, error) {
	lines, states, byLine, err := r.lineStates(ctx, order)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LineItemResponse, 0, len(lines))
	for i, l := range lines {
		allocs := make([]dto.AllocationResponse, 0, len(byLine[l.ID]))
		for _, a := range byLine[l.ID] {
			item, err := r.stock.GetByID(ctx, a.StockItemID)
			if err != nil {
				return nil, err
			}
			allocs = append(allocs, toAllocationResponse(a, item))
		}
		s := states[i]
		out = append(out, dto.LineItemResponse{
			ID:             l.ID,
			OrderID:        l.OrderID,
			PartID:         l.PartID,
			Quantity:       l.Quantity,
			Allocated:      s.Allocated,
			Fulfilled:      s.Fulfilled,
			FullyAllocated: s.IsFullyAllocated(),
			OverAllocated:  s.IsOverAllocated(),
			Reference:      l.Reference,
			Notes:          l.Notes,
			Allocations:    allocs,
		})
	}
	return out, nil
}

func toSalesOrderResponse(o *entity.SalesOrder) *dto.SalesOrderResponse {
	return &dto.SalesOrderResponse{
		ID:                o.ID,
		Reference:         o.Reference,
		CustomerID:        o.CustomerID,
		CustomerReference: o.CustomerReference,
		Description:       o.Description,
		Link:              o.Link,
		Notes:             o.Notes,
		Status:            o.Status,
		StatusText:        status.SalesOrder.Label(o.Status),
		CreatedBy:         o.CreatedBy,
		ShippedBy:         o.ShippedBy,
		ShipmentDate:      o.ShipmentDate,
		CreatedAt:         o.CreatedAt,
	}
}

func toAllocationResponse(a *entity.SalesOrderAllocation, item *entity.StockItem) dto.AllocationResponse {
	out := dto.AllocationResponse{
		ID:          a.ID,
		LineID:      a.LineID,
		StockItemID: a.StockItemID,
		Quantity:    a.Quantity,
	}
	if item != nil {
		out.Serial = item.Serial
		out.LocationID = item.LocationID
	}
	return out
}
