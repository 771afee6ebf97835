package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-pedidos/internal/domain"
	"github.com/jhoicas/inventario-pedidos/internal/domain/entity"
	"github.com/jhoicas/inventario-pedidos/internal/domain/repository"
)

var (
	_ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)
	_ repository.AllocationRepository = (*AllocationRepo)(nil)
)

// SalesOrderRepo pedidos de venta y sus líneas sobre PostgreSQL.
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

const salesOrderColumns = `id, reference, customer_id, customer_reference, description, link, notes, status,
	created_by, shipped_by, shipment_date, created_at, updated_at`

func scanSalesOrder(row scanner) (*entity.SalesOrder, error) {
	var (
		o                  entity.SalesOrder
		createdBy, shipper *string
		shipped            *time.Time
	)
	err := row.Scan(&o.ID, &o.Reference, &o.CustomerID, &o.CustomerReference, &o.Description, &o.Link, &o.Notes, &o.Status,
		&createdBy, &shipper, &shipped, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.CreatedBy = deref(createdBy)
	o.ShippedBy = deref(shipper)
	o.ShipmentDate = shipped
	return &o, nil
}

// Create inserta un pedido. Referencia repetida = ErrDuplicate.
func (r *SalesOrderRepo) Create(ctx context.Context, o *entity.SalesOrder) error {
	query := `INSERT INTO sales_orders (` + salesOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.Reference, o.CustomerID, o.CustomerReference, o.Description, o.Link, o.Notes, o.Status,
		nullable(o.CreatedBy), nullable(o.ShippedBy), o.ShipmentDate, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert sales order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID.
func (r *SalesOrderRepo) GetByID(ctx context.Context, id string) (*entity.SalesOrder, error) {
	o, err := scanSalesOrder(r.q.QueryRow(ctx, `SELECT `+salesOrderColumns+` FROM sales_orders WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales order: %w", err)
	}
	return o, nil
}

// GetForUpdate obtiene el pedido bloqueando su fila (SELECT FOR UPDATE).
func (r *SalesOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.SalesOrder, error) {
	o, err := scanSalesOrder(r.q.QueryRow(ctx, `SELECT `+salesOrderColumns+` FROM sales_orders WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales order for update: %w", err)
	}
	return o, nil
}

// Update actualiza estado, datos de envío y campos descriptivos.
func (r *SalesOrderRepo) Update(ctx context.Context, o *entity.SalesOrder) error {
	query := `
		UPDATE sales_orders SET customer_reference = $2, description = $3, link = $4, notes = $5,
			status = $6, shipped_by = $7, shipment_date = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		o.ID, o.CustomerReference, o.Description, o.Link, o.Notes, o.Status, nullable(o.ShippedBy), o.ShipmentDate, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sales order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista pedidos, más recientes primero. statusCode > 0 filtra por estado.
func (r *SalesOrderRepo) List(ctx context.Context, statusCode int, limit, offset int) ([]*entity.SalesOrder, error) {
	lim, off := pageArgs(limit, offset)
	rows, err := r.q.Query(ctx, `
		SELECT `+salesOrderColumns+` FROM sales_orders
		WHERE ($1 = 0 OR status = $1)
		ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`, statusCode, lim, off)
	if err != nil {
		return nil, fmt.Errorf("list sales orders: %w", err)
	}
	defer rows.Close()
	var out []*entity.SalesOrder
	for rows.Next() {
		o, err := scanSalesOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sales order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// CreateLine inserta una línea. (pedido, parte) repetido = ErrDuplicate.
func (r *SalesOrderRepo) CreateLine(ctx context.Context, l *entity.SalesOrderLineItem) error {
	query := `
		INSERT INTO sales_order_lines (id, order_id, part_id, quantity, reference, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, l.ID, l.OrderID, l.PartID, l.Quantity, l.Reference, l.Notes, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		if isCheckViolation(err) {
			return domain.ErrQuantityNotPositive
		}
		return fmt.Errorf("insert sales order line: %w", err)
	}
	return nil
}

const lineColumns = `id, order_id, part_id, quantity, reference, notes, created_at, updated_at`

// GetLine obtiene una línea por ID.
func (r *SalesOrderRepo) GetLine(ctx context.Context, id string) (*entity.SalesOrderLineItem, error) {
	var l entity.SalesOrderLineItem
	err := r.q.QueryRow(ctx, `SELECT `+lineColumns+` FROM sales_order_lines WHERE id = $1`, id).Scan(
		&l.ID, &l.OrderID, &l.PartID, &l.Quantity, &l.Reference, &l.Notes, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales order line: %w", err)
	}
	return &l, nil
}

// ListLines lista las líneas de un pedido en orden de creación.
func (r *SalesOrderRepo) ListLines(ctx context.Context, orderID string) ([]*entity.SalesOrderLineItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+lineColumns+` FROM sales_order_lines WHERE order_id = $1 ORDER BY created_at, id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list sales order lines: %w", err)
	}
	defer rows.Close()
	var out []*entity.SalesOrderLineItem
	for rows.Next() {
		var l entity.SalesOrderLineItem
		if err := rows.Scan(&l.ID, &l.OrderID, &l.PartID, &l.Quantity, &l.Reference, &l.Notes, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sales order line: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

// AllocationRepo asignaciones de existencia sobre PostgreSQL.
type AllocationRepo struct {
	q Querier
}

// NewAllocationRepository construye el adaptador.
func NewAllocationRepository(q Querier) *AllocationRepo {
	return &AllocationRepo{q: q}
}

const allocationColumns = `a.id, a.line_id, a.stock_item_id, a.quantity, a.created_at`

// Create inserta una asignación. Línea o lote inexistente = ErrNotFound.
func (r *AllocationRepo) Create(ctx context.Context, a *entity.SalesOrderAllocation) error {
	query := `
		INSERT INTO sales_order_allocations (id, line_id, stock_item_id, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, a.ID, a.LineID, a.StockItemID, a.Quantity, a.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		if isCheckViolation(err) {
			return domain.ErrQuantityNotPositive
		}
		return fmt.Errorf("insert allocation: %w", err)
	}
	return nil
}

// GetByID obtiene una asignación por ID.
func (r *AllocationRepo) GetByID(ctx context.Context, id string) (*entity.SalesOrderAllocation, error) {
	var a entity.SalesOrderAllocation
	err := r.q.QueryRow(ctx, `SELECT `+allocationColumns+` FROM sales_order_allocations a WHERE a.id = $1`, id).Scan(
		&a.ID, &a.LineID, &a.StockItemID, &a.Quantity, &a.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get allocation: %w", err)
	}
	return &a, nil
}

// ListByLine asignaciones de una línea.
func (r *AllocationRepo) ListByLine(ctx context.Context, lineID string) ([]*entity.SalesOrderAllocation, error) {
	return r.list(ctx, `SELECT `+allocationColumns+` FROM sales_order_allocations a
		WHERE a.line_id = $1 ORDER BY a.created_at, a.id`, lineID)
}

// ListByOrder asignaciones de todas las líneas de un pedido.
func (r *AllocationRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.SalesOrderAllocation, error) {
	return r.list(ctx, `SELECT `+allocationColumns+` FROM sales_order_allocations a
		JOIN sales_order_lines l ON l.id = a.line_id
		WHERE l.order_id = $1 ORDER BY l.created_at, a.created_at, a.id`, orderID)
}

// ListByStockItem asignaciones que reservan un lote.
func (r *AllocationRepo) ListByStockItem(ctx context.Context, stockItemID string) ([]*entity.SalesOrderAllocation, error) {
	return r.list(ctx, `SELECT `+allocationColumns+` FROM sales_order_allocations a
		WHERE a.stock_item_id = $1 ORDER BY a.created_at, a.id`, stockItemID)
}

// Delete elimina una asignación.
func (r *AllocationRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM sales_order_allocations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete allocation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteByOrder elimina las asignaciones de todas las líneas del pedido.
func (r *AllocationRepo) DeleteByOrder(ctx context.Context, orderID string) (int, error) {
	tag, err := r.q.Exec(ctx, `
		DELETE FROM sales_order_allocations
		WHERE line_id IN (SELECT id FROM sales_order_lines WHERE order_id = $1)`, orderID)
	if err != nil {
		return 0, fmt.Errorf("delete allocations by order: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *AllocationRepo) list(ctx context.Context, query, arg string) ([]*entity.SalesOrderAllocation, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	defer rows.Close()
	var out []*entity.SalesOrderAllocation
	for rows.Next() {
		var a entity.SalesOrderAllocation
		if err := rows.Scan(&a.ID, &a.LineID, &a.StockItemID, &a.Quantity, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan allocation: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
