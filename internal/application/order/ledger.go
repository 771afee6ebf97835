package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-pedidos/internal/application/dto"
	"github.com/jhoicas/inventario-pedidos/internal/application/stock"
	"github.com/jhoicas/inventario-pedidos/internal/domain"
	"github.com/jhoicas/inventario-pedidos/internal/domain/entity"
	"github.com/jhoicas/inventario-pedidos/internal/domain/fulfillment"
	"github.com/jhoicas/inventario-pedidos/internal/domain/repository"
	"github.com/jhoicas/inventario-pedidos/internal/domain/status"
)

// LedgerUseCase único punto de mutación de asignaciones y cantidades despachadas:
// asignar existencia a líneas, liberar asignaciones, enviar y cancelar pedidos.
// Cada operación corre en una transacción (TxRunner) con bloqueo del pedido y luego de los lotes.
type LedgerUseCase struct {
	txRunner TxRunner
	read     reader
	log      zerolog.Logger
	now      func() time.Time
	newID    func() string
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	orderRepo repository.SalesOrderRepository,
	allocRepo repository.AllocationRepository,
	stockRepo repository.StockItemRepository,
	log zerolog.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner: txRunner,
		read:     reader{orders: orderRepo, allocs: allocRepo, stock: stockRepo},
		log:      log.With().Str("component", "ledger").Logger(),
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// AllocateInput entrada para reservar existencia de un lote contra una línea.
type AllocateInput struct {
	LineID      string
	StockItemID string
	Quantity    decimal.Decimal
}

// Allocate crea una asignación. Falla con ValidationError si el pedido no está pendiente,
// si la cantidad no es positiva o supera la existencia total del lote.
// No compara contra lo ya reservado del lote por otras líneas: UnallocatedQuantity solo se informa.
func (uc *LedgerUseCase) Allocate(ctx context.Context, in AllocateInput) (*dto.AllocationResponse, error) {
	if in.LineID == "" || in.StockItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	var out dto.AllocationResponse
	err := uc.txRunner.RunLedger(ctx, func(
		orderRepo repository.SalesOrderRepository,
		allocRepo repository.AllocationRepository,
		stockRepo repository.StockItemRepository,
		_ repository.StockTrackingRepository,
	) error {
		line, err := orderRepo.GetLine(ctx, in.LineID)
		if err != nil {
			return err
		}
		if line == nil {
			return domain.ErrNotFound
		}
		order, err := orderRepo.GetForUpdate(ctx, line.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		item, err := stockRepo.GetForUpdate(ctx, in.StockItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if err := fulfillment.ValidateAllocation(order, line, item, in.Quantity); err != nil {
			return err
		}
		alloc := &entity.SalesOrderAllocation{
			ID:          uc.newID(),
			LineID:      line.ID,
			StockItemID: item.ID,
			Quantity:    in.Quantity,
			CreatedAt:   uc.now(),
		}
		if err := allocRepo.Create(ctx, alloc); err != nil {
			return err
		}
		out = toAllocationResponse(alloc, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Debug().Str("line_id", in.LineID).Str("stock_item_id", in.StockItemID).
		Str("quantity", in.Quantity.String()).Msg("existencia asignada")
	return &out, nil
}

// DeleteAllocation libera una asignación de un pedido pendiente sin tocar la existencia.
func (uc *LedgerUseCase) DeleteAllocation(ctx context.Context, allocationID string) error {
	return uc.txRunner.RunLedger(ctx, func(
		orderRepo repository.SalesOrderRepository,
		allocRepo repository.AllocationRepository,
		_ repository.StockItemRepository,
		_ repository.StockTrackingRepository,
	) error {
		alloc, err := allocRepo.GetByID(ctx, allocationID)
		if err != nil {
			return err
		}
		if alloc == nil {
			return domain.ErrNotFound
		}
		line, err := orderRepo.GetLine(ctx, alloc.LineID)
		if err != nil {
			return err
		}
		if line == nil {
			return domain.ErrNotFound
		}
		order, err := orderRepo.GetForUpdate(ctx, line.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.IsPending() {
			return domain.ErrOrderNotPending
		}
		return allocRepo.Delete(ctx, alloc.ID)
	})
}

// Line devuelve una línea con allocated, fulfilled y sus banderas de asignación.
func (uc *LedgerUseCase) Line(ctx context.Context, lineID string) (*dto.LineItemResponse, error) {
	line, err := uc.read.orders.GetLine(ctx, lineID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, nil
	}
	order, err := uc.read.orders.GetByID(ctx, line.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	lines, err := uc.read.lineResponses(ctx, order)
	if err != nil {
		return nil, err
	}
	for i := range lines {
		if lines[i].ID == lineID {
			return &lines[i], nil
		}
	}
	return nil, nil
}

// IsFullyAllocated true si todas las líneas del pedido están completamente asignadas.
func (uc *LedgerUseCase) IsFullyAllocated(ctx context.Context, orderID string) (bool, error) {
	order, err := uc.read.orders.GetByID(ctx, orderID)
	if err != nil {
		return false, err
	}
	if order == nil {
		return false, domain.ErrNotFound
	}
	_, states, _, err := uc.read.lineStates(ctx, order)
	if err != nil {
		return false, err
	}
	return fulfillment.OrderFullyAllocated(states), nil
}

// ShipOrder consume todas las asignaciones del pedido y lo marca SHIPPED, en una sola transacción.
// Por cada asignación: si queda remanente en el lote se separa un lote nuevo con lo enviado,
// marcado con el pedido; si se consume todo, se marca el lote original. La asignación se elimina.
// Cualquier error deshace todo (lotes, asignaciones y estado).
func (uc *LedgerUseCase) ShipOrder(ctx context.Context, orderID, userID string) (*dto.ShipmentResponse, error) {
	now := uc.now()
	var (
		shipped  *entity.SalesOrder
		consumed int
		items    []dto.StockItemResponse
	)
	err := uc.txRunner.RunLedger(ctx, func(
		orderRepo repository.SalesOrderRepository,
		allocRepo repository.AllocationRepository,
		stockRepo repository.StockItemRepository,
		trackingRepo repository.StockTrackingRepository,
	) error {
		order, err := orderRepo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.IsPending() {
			return domain.ErrOrderNotPending
		}
		allocs, err := allocRepo.ListByOrder(ctx, order.ID)
		if err != nil {
			return err
		}
		for _, a := range allocs {
			item, err := stockRepo.GetForUpdate(ctx, a.StockItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.ErrNotFound
			}
			tr, err := fulfillment.PlanTransfer(order, item, a.Quantity, uc.newID(), now)
			if err != nil {
				return fmt.Errorf("asignación %s: %w", a.ID, err)
			}
			if err := stockRepo.Update(ctx, tr.Source); err != nil {
				return err
			}
			if tr.Shipped != nil {
				if err := stockRepo.Create(ctx, tr.Shipped); err != nil {
					return err
				}
				if err := uc.track(ctx, trackingRepo, tr.Source, userID, now,
					"Separación de existencia",
					fmt.Sprintf("Se separaron %s unidades para el pedido %s", a.Quantity, order.Reference)); err != nil {
					return err
				}
			}
			if err := uc.track(ctx, trackingRepo, tr.Consigned(), userID, now,
				"Enviado al cliente",
				fmt.Sprintf("Enviado con el pedido %s", order.Reference)); err != nil {
				return err
			}
			if err := allocRepo.Delete(ctx, a.ID); err != nil {
				return err
			}
			items = append(items, stock.ToStockItemResponse(tr.Consigned(), decimal.Zero))
		}
		order.Status = status.SalesOrderShipped
		order.ShipmentDate = &now
		order.ShippedBy = userID
		order.UpdatedAt = now
		if err := orderRepo.Update(ctx, order); err != nil {
			return err
		}
		shipped = order
		consumed = len(allocs)
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("order_id", orderID).Msg("envío de pedido rechazado")
		return nil, err
	}
	uc.log.Info().Str("order_id", orderID).Str("user_id", userID).Int("allocations", consumed).Msg("pedido enviado")

	summary, err := uc.read.orderResponse(ctx, shipped)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []dto.StockItemResponse{}
	}
	return &dto.ShipmentResponse{Order: *summary, ShippedItems: items, Allocations: consumed}, nil
}

// CancelOrder elimina todas las asignaciones del pedido sin tocar la existencia y lo marca CANCELLED.
func (uc *LedgerUseCase) CancelOrder(ctx context.Context, orderID string) (*dto.CancelResponse, error) {
	now := uc.now()
	var (
		cancelled *entity.SalesOrder
		removed   int
	)
	err := uc.txRunner.RunLedger(ctx, func(
		orderRepo repository.SalesOrderRepository,
		allocRepo repository.AllocationRepository,
		_ repository.StockItemRepository,
		_ repository.StockTrackingRepository,
	) error {
		order, err := orderRepo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.IsPending() {
			return domain.ErrOrderNotPending
		}
		n, err := allocRepo.DeleteByOrder(ctx, order.ID)
		if err != nil {
			return err
		}
		order.Status = status.SalesOrderCancelled
		order.UpdatedAt = now
		if err := orderRepo.Update(ctx, order); err != nil {
			return err
		}
		cancelled = order
		removed = n
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("order_id", orderID).Msg("cancelación de pedido rechazada")
		return nil, err
	}
	uc.log.Info().Str("order_id", orderID).Int("allocations", removed).Msg("pedido cancelado")

	summary, err := uc.read.orderResponse(ctx, cancelled)
	if err != nil {
		return nil, err
	}
	return &dto.CancelResponse{Order: *summary, AllocationsRemoved: removed}, nil
}

func (uc *LedgerUseCase) track(
	ctx context.Context,
	trackingRepo repository.StockTrackingRepository,
	item *entity.StockItem,
	userID string,
	now time.Time,
	title, notes string,
) error {
	return trackingRepo.Create(ctx, &entity.StockTracking{
		ID:          uc.newID(),
		StockItemID: item.ID,
		Title:       title,
		Notes:       notes,
		Quantity:    item.Quantity,
		UserID:      userID,
		Date:        now,
		System:      true,
	})
}
