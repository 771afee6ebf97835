package memory

import (
	"context"
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

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list
}

// ── Parts ─────────────────────────────────────────────────────────────────────

// PartRepo implementación en memoria de PartRepository.
type PartRepo struct{ db access }

// NewPartRepository construye el repositorio sobre el almacén.
func NewPartRepository(s *Store) *PartRepo { return &PartRepo{db: s} }

func (r *PartRepo) Create(_ context.Context, p *entity.Part) error {
	return r.db.update(func(st *state) error {
		if _, ok := st.parts.get(p.ID); ok {
			return domain.ErrDuplicate
		}
		st.parts.put(p.ID, *p)
		return nil
	})
}

func (r *PartRepo) GetByID(_ context.Context, id string) (*entity.Part, error) {
	var out *entity.Part
	err := r.db.view(func(st *state) error {
		if p, ok := st.parts.get(id); ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *PartRepo) Update(_ context.Context, p *entity.Part) error {
	return r.db.update(func(st *state) error {
		if _, ok := st.parts.get(p.ID); !ok {
			return domain.ErrNotFound
		}
		st.parts.put(p.ID, *p)
		return nil
	})
}

func (r *PartRepo) List(_ context.Context, limit, offset int) ([]*entity.Part, error) {
	var out []*entity.Part
	err := r.db.view(func(st *state) error {
		for _, p := range page(st.parts.all(), limit, offset) {
			out = append(out, &p)
		}
		return nil
	})
	return out, err
}

// ── Companies ─────────────────────────────────────────────────────────────────

// CompanyRepo implementación en memoria de CompanyRepository (nombre único).
type CompanyRepo struct{ db access }

// NewCompanyRepository construye el repositorio sobre el almacén.
func NewCompanyRepository(s *Store) *CompanyRepo { return &CompanyRepo{db: s} }

func nameTaken(st *state, name, exceptID string) bool {
	for _, c := range st.companies.all() {
		if c.ID != exceptID && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	return r.db.update(func(st *state) error {
		if _, ok := st.companies.get(c.ID); ok || nameTaken(st, c.Name, "") {
			return domain.ErrDuplicate
		}
		st.companies.put(c.ID, *c)
		return nil
	})
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	var out *entity.Company
	err := r.db.view(func(st *state) error {
		if c, ok := st.companies.get(id); ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CompanyRepo) GetByName(_ context.Context, name string) (*entity.Company, error) {
	var out *entity.Company
	err := r.db.view(func(st *state) error {
		for _, c := range st.companies.all() {
			if strings.EqualFold(c.Name, name) {
				out = &c
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *CompanyRepo) Update(_ context.Context, c *entity.Company) error {
	return r.db.update(func(st *state) error {
		if _, ok := st.companies.get(c.ID); !ok {
			return domain.ErrNotFound
		}
		if nameTaken(st, c.Name, c.ID) {
			return domain.ErrDuplicate
		}
		st.companies.put(c.ID, *c)
		return nil
	})
}

func (r *CompanyRepo) List(_ context.Context, f repository.CompanyFilter, limit, offset int) ([]*entity.Company, error) {
	var out []*entity.Company
	err := r.db.view(func(st *state) error {
		var filtered []entity.Company
		for _, c := range st.companies.all() {
			if (f.CustomersOnly && !c.IsCustomer) || (f.SuppliersOnly && !c.IsSupplier) || (f.ManufacturersOnly && !c.IsManufacturer) {
				continue
			}
			filtered = append(filtered, c)
		}
		for _, c := range page(filtered, limit, offset) {
			out = append(out, &c)
		}
		return nil
	})
	return out, err
}

func (r *CompanyRepo) ListNames(_ context.Context) ([]string, error) {
	var out []string
	err := r.db.view(func(st *state) error {
		for _, c := range st.companies.all() {
			out = append(out, c.Name)
		}
		return nil
	})
	return out, err
}

// ── Locations ─────────────────────────────────────────────────────────────────

// LocationRepo implementación en memoria de LocationRepository.
type LocationRepo struct{ db access }

// NewLocationRepository construye el repositorio sobre el almacén.
func NewLocationRepository(s *Store) *LocationRepo { return &LocationRepo{db: s} }

func (r *LocationRepo) Create(_ context.Context, l *entity.StockLocation) error {
	return r.db.update(func(st *state) error {
		if _, ok := st.locations.get(l.ID); ok {
			return domain.ErrDuplicate
		}
		st.locations.put(l.ID, *l)
		return nil
	})
}

func (r *LocationRepo) GetByID(_ context.Context, id string) (*entity.StockLocation, error) {
	var out *entity.StockLocation
	err := r.db.view(func(st *state) error {
		if l, ok := st.locations.get(id); ok {
			out = &l
		}
		return nil
	})
	return out, err
}

func (r *LocationRepo) List(_ context.Context, limit, offset int) ([]*entity.StockLocation, error) {
	var out []*entity.StockLocation
	err := r.db.view(func(st *state) error {
		for _, l := range page(st.locations.all(), limit, offset) {
			out = append(out, &l)
		}
		return nil
	})
	return out, err
}

// ── Users ─────────────────────────────────────────────────────────────────────

// UserRepo implementación en memoria de UserRepository (email único).
type UserRepo struct{ db access }

// NewUserRepository construye el repositorio sobre el almacén.
func NewUserRepository(s *Store) *UserRepo { return &UserRepo{db: s} }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.db.update(func(st *state) error {
		for _, other := range st.users.all() {
			if strings.EqualFold(other.Email, u.Email) {
				return domain.ErrDuplicate
			}
		}
		st.users.put(u.ID, *u)
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.db.view(func(st *state) error {
		if u, ok := st.users.get(id); ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.db.view(func(st *state) error {
		for _, u := range st.users.all() {
			if strings.EqualFold(u.Email, email) {
				out = &u
				break
			}
		}
		return nil
	})
	return out, err
}
