package memory

import (
	"context"

	"github.com/jhoicas/inventario-pedidos/internal/domain"
	"github.com/jhoicas/inventario-pedidos/internal/domain/entity"
	"github.com/jhoicas/inventario-pedidos/internal/domain/repository"
)

var (
	_ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)
	_ repository.AllocationRepository = (*AllocationRepo)(nil)
)

// SalesOrderRepo implementación en memoria de SalesOrderRepository.
// Aplica las mismas restricciones únicas que el esquema SQL: referencia y (pedido, parte).
type SalesOrderRepo struct{ db access }

// NewSalesOrderRepository construye el repositorio sobre el almacén.
func NewSalesOrderRepository(s *Store) *SalesOrderRepo { return &SalesOrderRepo{db: s} }

func (r *SalesOrderRepo) Create(_ context.Context, o *entity.SalesOrder) error {
	return r.db.update(func(st *state) error {
		if _, ok := st.orders.get(o.ID); ok {
			return domain.ErrDuplicate
		}
		for _, other := range st.orders.all() {
			if other.Reference == o.Reference {
				return domain.ErrDuplicate
			}
		}
		st.orders.put(o.ID, *o)
		return nil
	})
}

func (r *SalesOrderRepo) GetByID(_ context.Context, id string) (*entity.SalesOrder, error) {
	var out *entity.SalesOrder
	err := r.db.view(func(st *state) error {
		if o, ok := st.orders.get(id); ok {
			out = &o
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: las transacciones en memoria ya están serializadas.
func (r *SalesOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.SalesOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *SalesOrderRepo) Update(_ context.Context, o *entity.SalesOrder) error {
	return r.db.update(func(st *state) error {
		if _, ok := st.orders.get(o.ID); !ok {
			return domain.ErrNotFound
		}
		st.orders.put(o.ID, *o)
		return nil
	})
}

func (r *SalesOrderRepo) List(_ context.Context, statusCode int, limit, offset int) ([]*entity.SalesOrder, error) {
	var out []*entity.SalesOrder
	err := r.db.view(func(st *state) error {
		var filtered []entity.SalesOrder
		for _, o := range st.orders.all() {
			if statusCode > 0 && o.Status != statusCode {
				continue
			}
			filtered = append(filtered, o)
		}
		for _, o := range page(filtered, limit, offset) {
			out = append(out, &o)
		}
		return nil
	})
	return out, err
}

func (r *SalesOrderRepo) CreateLine(_ context.Context, l *entity.SalesOrderLineItem) error {
	return r.db.update(func(st *state) error {
		if _, ok := st.orders.get(l.OrderID); !ok {
			return domain.ErrNotFound
		}
		for _, other := range st.lines.all() {
			if other.ID == l.ID || (other.OrderID == l.OrderID && other.PartID == l.PartID) {
				return domain.ErrDuplicate
			}
		}
		st.lines.put(l.ID, *l)
		return nil
	})
}

func (r *SalesOrderRepo) GetLine(_ context.Context, id string) (*entity.SalesOrderLineItem, error) {
	var out *entity.SalesOrderLineItem
	err := r.db.view(func(st *state) error {
		if l, ok := st.lines.get(id); ok {
			out = &l
		}
		return nil
	})
	return out, err
}

func (r *SalesOrderRepo) ListLines(_ context.Context, orderID string) ([]*entity.SalesOrderLineItem, error) {
	var out []*entity.SalesOrderLineItem
	err := r.db.view(func(st *state) error {
		for _, l := range st.lines.all() {
			if l.OrderID == orderID {
				out = append(out, &l)
			}
		}
		return nil
	})
	return out, err
}

// AllocationRepo implementación en memoria de AllocationRepository.
type AllocationRepo struct{ db access }

// NewAllocationRepository construye el repositorio sobre el almacén.
func NewAllocationRepository(s *Store) *AllocationRepo { return &AllocationRepo{db: s} }

func (r *AllocationRepo) Create(_ context.Context, a *entity.SalesOrderAllocation) error {
	return r.db.update(func(st *state) error {
		if _, ok := st.allocs.get(a.ID); ok {
			return domain.ErrDuplicate
		}
		if _, ok := st.lines.get(a.LineID); !ok {
			return domain.ErrNotFound
		}
		if _, ok := st.items.get(a.StockItemID); !ok {
			return domain.ErrNotFound
		}
		st.allocs.put(a.ID, *a)
		return nil
	})
}

func (r *AllocationRepo) GetByID(_ context.Context, id string) (*entity.SalesOrderAllocation, error) {
	var out *entity.SalesOrderAllocation
	err := r.db.view(func(st *state) error {
		if a, ok := st.allocs.get(id); ok {
			out = &a
		}
		return nil
	})
	return out, err
}

func (r *AllocationRepo) listWhere(match func(st *state, a entity.SalesOrderAllocation) bool) ([]*entity.SalesOrderAllocation, error) {
	var out []*entity.SalesOrderAllocation
	err := r.db.view(func(st *state) error {
		for _, a := range st.allocs.all() {
			if match(st, a) {
				out = append(out, &a)
			}
		}
		return nil
	})
	return out, err
}

func (r *AllocationRepo) ListByLine(_ context.Context, lineID string) ([]*entity.SalesOrderAllocation, error) {
	return r.listWhere(func(_ *state, a entity.SalesOrderAllocation) bool { return a.LineID == lineID })
}

func (r *AllocationRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.SalesOrderAllocation, error) {
	return r.listWhere(func(st *state, a entity.SalesOrderAllocation) bool {
		l, ok := st.lines.get(a.LineID)
		return ok && l.OrderID == orderID
	})
}

func (r *AllocationRepo) ListByStockItem(_ context.Context, stockItemID string) ([]*entity.SalesOrderAllocation, error) {
	return r.listWhere(func(_ *state, a entity.SalesOrderAllocation) bool { return a.StockItemID == stockItemID })
}

func (r *AllocationRepo) Delete(_ context.Context, id string) error {
	return r.db.update(func(st *state) error {
		if !st.allocs.del(id) {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *AllocationRepo) DeleteByOrder(_ context.Context, orderID string) (int, error) {
	n := 0
	err := r.db.update(func(st *state) error {
		for _, a := range st.allocs.all() {
			if l, ok := st.lines.get(a.LineID); ok && l.OrderID == orderID {
				st.allocs.del(a.ID)
				n++
			}
		}
		return nil
	})
	return n, err
}
