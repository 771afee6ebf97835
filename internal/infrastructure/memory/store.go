// Package memory implementa los puertos de persistencia en memoria del proceso.
// Se usa con STORAGE=memory (desarrollo) y en las pruebas de casos de uso.
//
// Las transacciones trabajan sobre una copia del estado y la publican al confirmar;
// si la función devuelve error la copia se descarta (rollback).
package memory

import (
	"sync"

	"github.com/jhoicas/inventario-pedidos/internal/domain/entity"
)

// table filas por ID conservando el orden de inserción.
type table[T any] struct {
	rows  map[string]T
	order []string
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]T)}
}

func (t *table[T]) get(id string) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) put(id string, v T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = v
}

func (t *table[T]) del(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, k := range t.order {
		if k == id {
			t.order = append(t.order[:i:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

func (t *table[T]) all() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out
}

func (t *table[T]) len() int { return len(t.order) }

func (t *table[T]) clone() *table[T] {
	c := &table[T]{rows: make(map[string]T, len(t.rows)), order: make([]string, len(t.order))}
	copy(c.order, t.order)
	for k, v := range t.rows {
		c.rows[k] = v
	}
	return c
}

// state todas las tablas. Las entidades se guardan por valor.
type state struct {
	parts     *table[entity.Part]
	companies *table[entity.Company]
	locations *table[entity.StockLocation]
	items     *table[entity.StockItem]
	tracking  *table[entity.StockTracking]
	orders    *table[entity.SalesOrder]
	lines     *table[entity.SalesOrderLineItem]
	allocs    *table[entity.SalesOrderAllocation]
	users     *table[entity.User]
}

func newState() *state {
	return &state{
		parts:     newTable[entity.Part](),
		companies: newTable[entity.Company](),
		locations: newTable[entity.StockLocation](),
		items:     newTable[entity.StockItem](),
		tracking:  newTable[entity.StockTracking](),
		orders:    newTable[entity.SalesOrder](),
		lines:     newTable[entity.SalesOrderLineItem](),
		allocs:    newTable[entity.SalesOrderAllocation](),
		users:     newTable[entity.User](),
	}
}

func (s *state) clone() *state {
	return &state{
		parts:     s.parts.clone(),
		companies: s.companies.clone(),
		locations: s.locations.clone(),
		items:     s.items.clone(),
		tracking:  s.tracking.clone(),
		orders:    s.orders.clone(),
		lines:     s.lines.clone(),
		allocs:    s.allocs.clone(),
		users:     s.users.clone(),
	}
}

// access abstrae el acceso al estado: directo con candado (Store) o dentro de una transacción (txAccess).
type access interface {
	view(fn func(st *state) error) error
	update(fn func(st *state) error) error
}

// Store base de datos en memoria. Seguro para uso concurrente.
type Store struct {
	mu sync.RWMutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

func (s *Store) view(fn func(st *state) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.st)
}

func (s *Store) update(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

// txAccess estado privado de una transacción en curso (el candado lo tiene el runner).
type txAccess struct {
	st *state
}

func (t txAccess) view(fn func(st *state) error) error   { return fn(t.st) }
func (t txAccess) update(fn func(st *state) error) error { return fn(t.st) }
