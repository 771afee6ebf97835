package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-pedidos/internal/domain"
	"github.com/jhoicas/inventario-pedidos/internal/domain/entity"
	"github.com/jhoicas/inventario-pedidos/internal/domain/repository"
)

var (
	_ repository.StockItemRepository     = (*StockItemRepo)(nil)
	_ repository.StockTrackingRepository = (*TrackingRepo)(nil)
)

// StockItemRepo implementación de StockItemRepository sobre PostgreSQL (usable con pool o tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

const stockItemColumns = `id, parent_id, part_id, location_id, quantity, batch, serial, status,
	sales_order_id, notes, created_at, updated_at`

func scanStockItem(row scanner) (*entity.StockItem, error) {
	var (
		s                 entity.StockItem
		parent, loc, soID *string
	)
	err := row.Scan(&s.ID, &parent, &s.PartID, &loc, &s.Quantity, &s.Batch, &s.Serial, &s.Status,
		&soID, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.ParentID = deref(parent)
	s.LocationID = deref(loc)
	s.SalesOrderID = deref(soID)
	return &s, nil
}

// Create inserta un lote. Cantidad negativa = ValidationError.
func (r *StockItemRepo) Create(ctx context.Context, s *entity.StockItem) error {
	query := `INSERT INTO stock_items (` + stockItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		s.ID, nullable(s.ParentID), s.PartID, nullable(s.LocationID), s.Quantity, s.Batch, s.Serial, s.Status,
		nullable(s.SalesOrderID), s.Notes, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.NewValidationError("quantity", "la cantidad no puede ser negativa")
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert stock item: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *StockItemRepo) GetByID(ctx context.Context, id string) (*entity.StockItem, error) {
	s, err := scanStockItem(r.q.QueryRow(ctx, `SELECT `+stockItemColumns+` FROM stock_items WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return s, nil
}

// GetForUpdate obtiene el lote y bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
func (r *StockItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockItem, error) {
	s, err := scanStockItem(r.q.QueryRow(ctx, `SELECT `+stockItemColumns+` FROM stock_items WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item for update: %w", err)
	}
	return s, nil
}

// Update actualiza cantidad, ubicación, estado y consignación del lote.
func (r *StockItemRepo) Update(ctx context.Context, s *entity.StockItem) error {
	query := `
		UPDATE stock_items SET location_id = $2, quantity = $3, batch = $4, serial = $5, status = $6,
			sales_order_id = $7, notes = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		s.ID, nullable(s.LocationID), s.Quantity, s.Batch, s.Serial, s.Status, nullable(s.SalesOrderID), s.Notes, s.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.NewValidationError("quantity", "la cantidad no puede ser negativa")
		}
		return fmt.Errorf("update stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByPart lista los lotes de una parte en orden de creación.
func (r *StockItemRepo) ListByPart(ctx context.Context, partID string) ([]*entity.StockItem, error) {
	return r.list(ctx, `SELECT `+stockItemColumns+` FROM stock_items WHERE part_id = $1 ORDER BY created_at, id`, partID)
}

// ListBySalesOrder lista los lotes consignados a un pedido.
func (r *StockItemRepo) ListBySalesOrder(ctx context.Context, orderID string) ([]*entity.StockItem, error) {
	return r.list(ctx, `SELECT `+stockItemColumns+` FROM stock_items WHERE sales_order_id = $1 ORDER BY created_at, id`, orderID)
}

func (r *StockItemRepo) list(ctx context.Context, query string, arg string) ([]*entity.StockItem, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()
	var out []*entity.StockItem
	for rows.Next() {
		s, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	return out, nil
}

// TrackingRepo historial de lotes sobre PostgreSQL.
type TrackingRepo struct {
	q Querier
}

// NewTrackingRepository construye el adaptador.
func NewTrackingRepository(q Querier) *TrackingRepo {
	return &TrackingRepo{q: q}
}

// Create inserta una nota de historial.
func (r *TrackingRepo) Create(ctx context.Context, e *entity.StockTracking) error {
	query := `
		INSERT INTO stock_tracking (id, stock_item_id, title, notes, quantity, user_id, date, system)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, e.ID, e.StockItemID, e.Title, e.Notes, e.Quantity, nullable(e.UserID), e.Date, e.System)
	if err != nil {
		return fmt.Errorf("insert stock tracking: %w", err)
	}
	return nil
}

// ListByItem historial del lote, más antiguo primero.
func (r *TrackingRepo) ListByItem(ctx context.Context, stockItemID string) ([]*entity.StockTracking, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, stock_item_id, title, notes, quantity, user_id, date, system
		FROM stock_tracking WHERE stock_item_id = $1 ORDER BY date, id`, stockItemID)
	if err != nil {
		return nil, fmt.Errorf("list stock tracking: %w", err)
	}
	defer rows.Close()
	var out []*entity.StockTracking
	for rows.Next() {
		var (
			e    entity.StockTracking
			user *string
		)
		if err := rows.Scan(&e.ID, &e.StockItemID, &e.Title, &e.Notes, &e.Quantity, &user, &e.Date, &e.System); err != nil {
			return nil, fmt.Errorf("scan stock tracking: %w", err)
		}
		e.UserID = deref(user)
		out = append(out, &e)
	}
	return out, rows.Err()
}
