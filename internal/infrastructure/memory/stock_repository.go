package memory

import (
	"context"

	"github.com/jhoicas/inventario-pedidos/internal/domain"
	"github.com/jhoicas/inventario-pedidos/internal/domain/entity"
	"github.com/jhoicas/inventario-pedidos/internal/domain/repository"
)

var (
	_ repository.StockItemRepository     = (*StockItemRepo)(nil)
	_ repository.StockTrackingRepository = (*TrackingRepo)(nil)
)

// StockItemRepo implementación en memoria de StockItemRepository.
type StockItemRepo struct{ db access }

// NewStockItemRepository construye el repositorio sobre el almacén.
func NewStockItemRepository(s *Store) *StockItemRepo { return &StockItemRepo{db: s} }

func (r *StockItemRepo) Create(_ context.Context, it *entity.StockItem) error {
	if it.Quantity.IsNegative() {
		return domain.NewValidationError("quantity", "la existencia no puede ser negativa")
	}
	return r.db.update(func(st *state) error {
		if _, ok := st.items.get(it.ID); ok {
			return domain.ErrDuplicate
		}
		st.items.put(it.ID, *it)
		return nil
	})
}

func (r *StockItemRepo) GetByID(_ context.Context, id string) (*entity.StockItem, error) {
	var out *entity.StockItem
	err := r.db.view(func(st *state) error {
		if it, ok := st.items.get(id); ok {
			out = &it
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: las transacciones en memoria ya están serializadas.
func (r *StockItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error) {
	return r.GetByID(ctx, id)
}

func (r *StockItemRepo) Update(_ context.Context, it *entity.StockItem) error {
	if it.Quantity.IsNegative() {
		return domain.NewValidationError("quantity", "la existencia no puede ser negativa")
	}
	return r.db.update(func(st *state) error {
		if _, ok := st.items.get(it.ID); !ok {
			return domain.ErrNotFound
		}
		st.items.put(it.ID, *it)
		return nil
	})
}

func (r *StockItemRepo) listWhere(match func(entity.StockItem) bool) ([]*entity.StockItem, error) {
	var out []*entity.StockItem
	err := r.db.view(func(st *state) error {
		for _, it := range st.items.all() {
			if match(it) {
				out = append(out, &it)
			}
		}
		return nil
	})
	return out, err
}

func (r *StockItemRepo) ListByPart(_ context.Context, partID string) ([]*entity.StockItem, error) {
	return r.listWhere(func(it entity.StockItem) bool { return it.PartID == partID })
}

func (r *StockItemRepo) ListBySalesOrder(_ context.Context, orderID string) ([]*entity.StockItem, error) {
	return r.listWhere(func(it entity.StockItem) bool { return it.SalesOrderID == orderID })
}

// TrackingRepo implementación en memoria de StockTrackingRepository.
type TrackingRepo struct{ db access }

// NewTrackingRepository construye el repositorio sobre el almacén.
func NewTrackingRepository(s *Store) *TrackingRepo { return &TrackingRepo{db: s} }

func (r *TrackingRepo) Create(_ context.Context, e *entity.StockTracking) error {
	return r.db.update(func(st *state) error {
		st.tracking.put(e.ID, *e)
		return nil
	})
}

func (r *TrackingRepo) ListByItem(_ context.Context, stockItemID string) ([]*entity.StockTracking, error) {
	var out []*entity.StockTracking
	err := r.db.view(func(st *state) error {
		for _, e := range st.tracking.all() {
			if e.StockItemID == stockItemID {
				out = append(out, &e)
			}
		}
		return nil
	})
	return out, err
}
