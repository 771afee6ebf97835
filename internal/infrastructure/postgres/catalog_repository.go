package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/inventario-pedidos/internal/domain"
	"github.com/jhoicas/inventario-pedidos/internal/domain/entity"
	"github.com/jhoicas/inventario-pedidos/internal/domain/repository"
)

var (
	_ repository.PartRepository     = (*PartRepo)(nil)
	_ repository.CompanyRepository  = (*CompanyRepo)(nil)
	_ repository.LocationRepository = (*LocationRepo)(nil)
	_ repository.UserRepository     = (*UserRepo)(nil)
)

// ─── Partes ───────────────────────────────────────────────────────────────────

// PartRepo implementación de PartRepository sobre PostgreSQL.
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

const partColumns = `id, name, description, ipn, units, salable, trackable, active, created_at, updated_at`

// Create persiste una nueva parte.
func (r *PartRepo) Create(ctx context.Context, p *entity.Part) error {
	query := `INSERT INTO parts (` + partColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.IPN, p.Units, p.Salable, p.Trackable, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert part: %w", err)
	}
	return nil
}

// GetByID obtiene una parte por ID.
func (r *PartRepo) GetByID(ctx context.Context, id string) (*entity.Part, error) {
	var p entity.Part
	err := r.q.QueryRow(ctx, `SELECT `+partColumns+` FROM parts WHERE id = $1`, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.IPN, &p.Units, &p.Salable, &p.Trackable, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part: %w", err)
	}
	return &p, nil
}

// Update actualiza los datos de una parte.
func (r *PartRepo) Update(ctx context.Context, p *entity.Part) error {
	query := `
		UPDATE parts SET name = $2, description = $3, ipn = $4, units = $5,
			salable = $6, trackable = $7, active = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, p.ID, p.Name, p.Description, p.IPN, p.Units, p.Salable, p.Trackable, p.Active, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update part: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista partes ordenadas por nombre.
func (r *PartRepo) List(ctx context.Context, limit, offset int) ([]*entity.Part, error) {
	lim, off := pageArgs(limit, offset)
	rows, err := r.q.Query(ctx, `SELECT `+partColumns+` FROM parts ORDER BY name, id LIMIT $1 OFFSET $2`, lim, off)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()
	var out []*entity.Part
	for rows.Next() {
		var p entity.Part
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.IPN, &p.Units, &p.Salable, &p.Trackable, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// ─── Empresas ─────────────────────────────────────────────────────────────────

// CompanyRepo implementación de CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

const companyColumns = `id, name, description, website, address, phone, email, contact, notes,
	is_customer, is_supplier, is_manufacturer, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanCompany(row scanner) (*entity.Company, error) {
	var c entity.Company
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Website, &c.Address, &c.Phone, &c.Email, &c.Contact, &c.Notes,
		&c.IsCustomer, &c.IsSupplier, &c.IsManufacturer, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste una nueva empresa. Nombre repetido (sin distinguir mayúsculas) = ErrDuplicate.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	query := `INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Description, c.Website, c.Address, c.Phone, c.Email, c.Contact, c.Notes,
		c.IsCustomer, c.IsSupplier, c.IsManufacturer, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	c, err := scanCompany(r.q.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// GetByName obtiene una empresa por nombre sin distinguir mayúsculas.
func (r *CompanyRepo) GetByName(ctx context.Context, name string) (*entity.Company, error) {
	c, err := scanCompany(r.q.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE lower(name) = lower($1)`, name))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company by name: %w", err)
	}
	return c, nil
}

// Update actualiza una empresa.
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	query := `
		UPDATE companies SET name = $2, description = $3, website = $4, address = $5, phone = $6,
			email = $7, contact = $8, notes = $9, is_customer = $10, is_supplier = $11,
			is_manufacturer = $12, updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Description, c.Website, c.Address, c.Phone, c.Email, c.Contact, c.Notes,
		c.IsCustomer, c.IsSupplier, c.IsManufacturer, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista empresas aplicando los filtros de rol.
func (r *CompanyRepo) List(ctx context.Context, filter repository.CompanyFilter, limit, offset int) ([]*entity.Company, error) {
	var where []string
	if filter.CustomersOnly {
		where = append(where, "is_customer")
	}
	if filter.SuppliersOnly {
		where = append(where, "is_supplier")
	}
	if filter.ManufacturersOnly {
		where = append(where, "is_manufacturer")
	}
	query := `SELECT ` + companyColumns + ` FROM companies`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY name, id LIMIT $1 OFFSET $2`
	lim, off := pageArgs(limit, offset)
	rows, err := r.q.Query(ctx, query, lim, off)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()
	var out []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListNames devuelve los nombres de todas las empresas (candidatos de búsqueda aproximada).
func (r *CompanyRepo) ListNames(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT name FROM companies ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list company names: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan company name: %w", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// ─── Ubicaciones ──────────────────────────────────────────────────────────────

// LocationRepo implementación de LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador.
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create persiste una ubicación.
func (r *LocationRepo) Create(ctx context.Context, l *entity.StockLocation) error {
	query := `
		INSERT INTO stock_locations (id, parent_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, l.ID, nullable(l.ParentID), l.Name, l.Description, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewValidationError("parent_id", "la ubicación padre no existe")
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID.
func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.StockLocation, error) {
	var (
		l      entity.StockLocation
		parent *string
	)
	err := r.q.QueryRow(ctx, `
		SELECT id, parent_id, name, description, created_at, updated_at
		FROM stock_locations WHERE id = $1`, id).Scan(
		&l.ID, &parent, &l.Name, &l.Description, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	l.ParentID = deref(parent)
	return &l, nil
}

// List lista ubicaciones ordenadas por nombre.
func (r *LocationRepo) List(ctx context.Context, limit, offset int) ([]*entity.StockLocation, error) {
	lim, off := pageArgs(limit, offset)
	rows, err := r.q.Query(ctx, `
		SELECT id, parent_id, name, description, created_at, updated_at
		FROM stock_locations ORDER BY name, id LIMIT $1 OFFSET $2`, lim, off)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var out []*entity.StockLocation
	for rows.Next() {
		var (
			l      entity.StockLocation
			parent *string
		)
		if err := rows.Scan(&l.ID, &parent, &l.Name, &l.Description, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		l.ParentID = deref(parent)
		out = append(out, &l)
	}
	return out, rows.Err()
}

// ─── Usuarios ─────────────────────────────────────────────────────────────────

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario. Email repetido = ErrEmailAlreadyExists.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, u.ID, u.Email, u.PasswordHash, u.Name, u.Role, u.Status, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, "id", id)
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "email", email)
}

func (r *UserRepo) findOne(ctx context.Context, column, value string) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(ctx, `
		SELECT id, email, password_hash, name, role, status, created_at, updated_at
		FROM users WHERE `+column+` = $1`, value).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by %s: %w", column, err)
	}
	return &u, nil
}
