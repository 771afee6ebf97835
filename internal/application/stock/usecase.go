// Package stock agrupa los casos de uso de lotes de existencia: recepción, ajustes,
// división, traslado e historial.
package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-pedidos/internal/application/dto"
	"github.com/jhoicas/inventario-pedidos/internal/domain"
	"github.com/jhoicas/inventario-pedidos/internal/domain/entity"
	"github.com/jhoicas/inventario-pedidos/internal/domain/fulfillment"
	"github.com/jhoicas/inventario-pedidos/internal/domain/repository"
	"github.com/jhoicas/inventario-pedidos/internal/domain/status"
)

// StockUseCase operaciones sobre lotes. Toda mutación corre en TxRunner con el lote bloqueado.
type StockUseCase struct {
	txRunner  TxRunner
	stockRepo repository.StockItemRepository
	trackRepo repository.StockTrackingRepository
	allocRepo repository.AllocationRepository
	partRepo  repository.PartRepository
	locRepo   repository.LocationRepository
	now       func() time.Time
	newID     func() string
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	txRunner TxRunner,
	stockRepo repository.StockItemRepository,
	trackRepo repository.StockTrackingRepository,
	allocRepo repository.AllocationRepository,
	partRepo repository.PartRepository,
	locRepo repository.LocationRepository,
) *StockUseCase {
	return &StockUseCase{
		txRunner:  txRunner,
		stockRepo: stockRepo,
		trackRepo: trackRepo,
		allocRepo: allocRepo,
		partRepo:  partRepo,
		locRepo:   locRepo,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
}

// Create recibe un lote nuevo de una parte. Status 0 se toma como OK.
func (uc *StockUseCase) Create(ctx context.Context, userID string, in dto.CreateStockItemRequest) (*dto.StockItemResponse, error) {
	if in.PartID == "" {
		return nil, domain.NewValidationError("part_id", "la parte es requerida")
	}
	if in.Quantity.IsNegative() {
		return nil, domain.NewValidationError("quantity", "la cantidad no puede ser negativa")
	}
	if in.Status == 0 {
		in.Status = status.StockOK
	}
	if !status.Stock.Valid(in.Status) {
		return nil, domain.NewValidationError("status", "código de estado desconocido")
	}
	part, err := uc.partRepo.GetByID(ctx, in.PartID)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkLocation(ctx, in.LocationID); err != nil {
		return nil, err
	}

	now := uc.now()
	item := &entity.StockItem{
		ID:         uc.newID(),
		PartID:     part.ID,
		LocationID: in.LocationID,
		Quantity:   in.Quantity,
		Batch:      in.Batch,
		Serial:     in.Serial,
		Status:     in.Status,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err = uc.txRunner.RunStock(ctx, func(stockRepo repository.StockItemRepository, trackRepo repository.StockTrackingRepository) error {
		if err := stockRepo.Create(ctx, item); err != nil {
			return err
		}
		return uc.track(ctx, trackRepo, item, userID, now, "Existencia recibida", in.Notes)
	})
	if err != nil {
		return nil, err
	}
	out := ToStockItemResponse(item, decimal.Zero)
	return &out, nil
}

// GetByID devuelve el lote con su cantidad asignada. (nil, nil) si no existe.
func (uc *StockUseCase) GetByID(ctx context.Context, id string) (*dto.StockItemResponse, error) {
	item, err := uc.stockRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	allocated, err := uc.allocated(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	out := ToStockItemResponse(item, allocated)
	return &out, nil
}

// ListByPart lista los lotes de una parte, incluidos los ya consignados a pedidos.
func (uc *StockUseCase) ListByPart(ctx context.Context, partID string) ([]dto.StockItemResponse, error) {
	if partID == "" {
		return nil, domain.NewValidationError("part_id", "la parte es requerida")
	}
	items, err := uc.stockRepo.ListByPart(ctx, partID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockItemResponse, 0, len(items))
	for _, it := range items {
		allocated, err := uc.allocated(ctx, it.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, ToStockItemResponse(it, allocated))
	}
	return out, nil
}

// Add suma quantity al lote.
func (uc *StockUseCase) Add(ctx context.Context, id, userID string, in dto.StockAdjustRequest) (*dto.StockItemResponse, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrQuantityNotPositive
	}
	return uc.adjust(ctx, id, userID, "Existencia agregada", in.Notes, func(it *entity.StockItem) error {
		it.Quantity = it.Quantity.Add(in.Quantity)
		return nil
	})
}

// Take descuenta quantity del lote. ErrInsufficientStock si supera la existencia.
func (uc *StockUseCase) Take(ctx context.Context, id, userID string, in dto.StockAdjustRequest) (*dto.StockItemResponse, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrQuantityNotPositive
	}
	return uc.adjust(ctx, id, userID, "Existencia retirada", in.Notes, func(it *entity.StockItem) error {
		if in.Quantity.GreaterThan(it.Quantity) {
			return domain.ErrInsufficientStock
		}
		it.Quantity = it.Quantity.Sub(in.Quantity)
		return nil
	})
}

// Count fija la existencia del lote tras un conteo físico.
func (uc *StockUseCase) Count(ctx context.Context, id, userID string, in dto.StockAdjustRequest) (*dto.StockItemResponse, error) {
	if in.Quantity.IsNegative() {
		return nil, domain.NewValidationError("quantity", "la cantidad no puede ser negativa")
	}
	return uc.adjust(ctx, id, userID, "Existencia contada", in.Notes, func(it *entity.StockItem) error {
		it.Quantity = in.Quantity
		return nil
	})
}

// Split separa quantity del lote hacia un lote nuevo, opcionalmente en otra ubicación.
func (uc *StockUseCase) Split(ctx context.Context, id, userID string, in dto.StockSplitRequest) (*dto.StockMoveResponse, error) {
	if err := uc.checkLocation(ctx, in.LocationID); err != nil {
		return nil, err
	}
	return uc.split(ctx, id, userID, in.Quantity, in.LocationID, in.Notes)
}

// Move traslada el lote a otra ubicación. Con Quantity menor a la existencia separa primero la parte movida.
func (uc *StockUseCase) Move(ctx context.Context, id, userID string, in dto.StockMoveRequest) (*dto.StockMoveResponse, error) {
	if in.LocationID == "" {
		return nil, domain.NewValidationError("location_id", "la ubicación destino es requerida")
	}
	if err := uc.checkLocation(ctx, in.LocationID); err != nil {
		return nil, err
	}
	current, err := uc.stockRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	if in.Quantity != nil && in.Quantity.LessThan(current.Quantity) {
		return uc.split(ctx, id, userID, *in.Quantity, in.LocationID, in.Notes)
	}
	if in.Quantity != nil && in.Quantity.GreaterThan(current.Quantity) {
		return nil, domain.ErrInsufficientStock
	}
	item, err := uc.adjust(ctx, id, userID, "Existencia trasladada", in.Notes, func(it *entity.StockItem) error {
		it.LocationID = in.LocationID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.StockMoveResponse{Item: *item}, nil
}

// Tracking historial del lote, más antiguo primero.
func (uc *StockUseCase) Tracking(ctx context.Context, id string) ([]dto.StockTrackingResponse, error) {
	item, err := uc.stockRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	entries, err := uc.trackRepo.ListByItem(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockTrackingResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.StockTrackingResponse{
			ID:       e.ID,
			Title:    e.Title,
			Notes:    e.Notes,
			Quantity: e.Quantity,
			UserID:   e.UserID,
			Date:     e.Date,
			System:   e.System,
		})
	}
	return out, nil
}

// adjust bloquea el lote, verifica que siga en bodega, aplica mutate y registra el historial.
func (uc *StockUseCase) adjust(
	ctx context.Context,
	id, userID, title, notes string,
	mutate func(it *entity.StockItem) error,
) (*dto.StockItemResponse, error) {
	now := uc.now()
	var updated *entity.StockItem
	err := uc.txRunner.RunStock(ctx, func(stockRepo repository.StockItemRepository, trackRepo repository.StockTrackingRepository) error {
		item, err := stockRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if !item.InStock() {
			return domain.ErrStockNotAvailable
		}
		if err := mutate(item); err != nil {
			return err
		}
		item.UpdatedAt = now
		if err := stockRepo.Update(ctx, item); err != nil {
			return err
		}
		updated = item
		return uc.track(ctx, trackRepo, item, userID, now, title, notes)
	})
	if err != nil {
		return nil, err
	}
	allocated, err := uc.allocated(ctx, updated.ID)
	if err != nil {
		return nil, err
	}
	out := ToStockItemResponse(updated, allocated)
	return &out, nil
}

func (uc *StockUseCase) split(ctx context.Context, id, userID string, qty decimal.Decimal, location, notes string) (*dto.StockMoveResponse, error) {
	now := uc.now()
	var src, child *entity.StockItem
	err := uc.txRunner.RunStock(ctx, func(stockRepo repository.StockItemRepository, trackRepo repository.StockTrackingRepository) error {
		item, err := stockRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if !item.InStock() {
			return domain.ErrStockNotAvailable
		}
		src, child, err = fulfillment.SplitItem(item, qty, location, uc.newID(), now)
		if err != nil {
			return err
		}
		if err := stockRepo.Update(ctx, src); err != nil {
			return err
		}
		if err := stockRepo.Create(ctx, child); err != nil {
			return err
		}
		if err := uc.track(ctx, trackRepo, src, userID, now, "Separación de existencia", notes); err != nil {
			return err
		}
		return uc.track(ctx, trackRepo, child, userID, now, "Lote separado de "+src.ID, notes)
	})
	if err != nil {
		return nil, err
	}
	allocated, err := uc.allocated(ctx, src.ID)
	if err != nil {
		return nil, err
	}
	newItem := ToStockItemResponse(child, decimal.Zero)
	return &dto.StockMoveResponse{Item: ToStockItemResponse(src, allocated), New: &newItem}, nil
}

func (uc *StockUseCase) allocated(ctx context.Context, stockItemID string) (decimal.Decimal, error) {
	allocs, err := uc.allocRepo.ListByStockItem(ctx, stockItemID)
	if err != nil {
		return decimal.Zero, err
	}
	return fulfillment.AllocatedQuantity(allocs), nil
}

func (uc *StockUseCase) checkLocation(ctx context.Context, locationID string) error {
	if locationID == "" {
		return nil
	}
	loc, err := uc.locRepo.GetByID(ctx, locationID)
	if err != nil {
		return err
	}
	if loc == nil {
		return domain.NewValidationError("location_id", "la ubicación no existe")
	}
	return nil
}

func (uc *StockUseCase) track(
	ctx context.Context,
	trackRepo repository.StockTrackingRepository,
	item *entity.StockItem,
	userID string,
	now time.Time,
	title, notes string,
) error {
	return trackRepo.Create(ctx, &entity.StockTracking{
		ID:          uc.newID(),
		StockItemID: item.ID,
		Title:       title,
		Notes:       notes,
		Quantity:    item.Quantity,
		UserID:      userID,
		Date:        now,
	})
}

// ToStockItemResponse convierte un lote a DTO con su cantidad asignada.
func ToStockItemResponse(it *entity.StockItem, allocated decimal.Decimal) dto.StockItemResponse {
	return dto.StockItemResponse{
		ID:                  it.ID,
		ParentID:            it.ParentID,
		PartID:              it.PartID,
		LocationID:          it.LocationID,
		Quantity:            it.Quantity,
		AllocatedQuantity:   allocated,
		UnallocatedQuantity: it.UnallocatedQuantity(allocated),
		Batch:               it.Batch,
		Serial:              it.Serial,
		Status:              it.Status,
		StatusText:          status.Stock.Label(it.Status),
		SalesOrderID:        it.SalesOrderID,
		InStock:             it.InStock(),
		Notes:               it.Notes,
		CreatedAt:           it.CreatedAt,
		UpdatedAt:           it.UpdatedAt,
	}
}
