package memory

import (
	"context"
	"sort"

	"github.com/joachez17/bodega-api/internal/domain"
	"github.com/joachez17/bodega-api/internal/domain/entity"
)

type supplierRepo struct {
	s *Store
}

func (r *supplierRepo) Create(_ context.Context, v *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[v.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *v
	r.s.suppliers[v.ID] = &cp
	return nil
}

func (r *supplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *supplierRepo) Update(_ context.Context, v *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[v.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *v
	r.s.suppliers[v.ID] = &cp
	return nil
}

func (r *supplierRepo) List(_ context.Context, limit, offset int) ([]*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Supplier, 0, len(r.s.suppliers))
	for _, v := range r.s.suppliers {
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return page(out, limit, offset), nil
}

// Delete rechaza proveedores referenciados por productos o recepciones.
func (r *supplierRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.suppliers[id]; !ok {
		return domain.ErrNotFound
	}
	for _, p := range r.s.products {
		if p.SupplierID != nil && *p.SupplierID == id {
			return domain.ErrConflict
		}
	}
	for _, m := range r.s.movements {
		if m.SupplierID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.suppliers, id)
	return nil
}

type areaRepo struct {
	s *Store
}

func (r *areaRepo) Create(_ context.Context, v *entity.Area) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.areas[v.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *v
	r.s.areas[v.ID] = &cp
	return nil
}

func (r *areaRepo) GetByID(_ context.Context, id string) (*entity.Area, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.areas[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *areaRepo) Update(_ context.Context, v *entity.Area) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.areas[v.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *v
	r.s.areas[v.ID] = &cp
	return nil
}

func (r *areaRepo) List(_ context.Context, limit, offset int) ([]*entity.Area, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Area, 0, len(r.s.areas))
	for _, v := range r.s.areas {
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return page(out, limit, offset), nil
}

// Delete rechaza áreas con despachos.
func (r *areaRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.areas[id]; !ok {
		return domain.ErrNotFound
	}
	for _, m := range r.s.movements {
		if m.AreaID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.areas, id)
	return nil
}

type rackRepo struct {
	s *Store
}

func (r *rackRepo) Create(_ context.Context, v *entity.Rack) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.racks[v.Code]; ok {
		return domain.ErrDuplicate
	}
	cp := *v
	r.s.racks[v.Code] = &cp
	return nil
}

func (r *rackRepo) GetByCode(_ context.Context, code string) (*entity.Rack, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.racks[code]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *rackRepo) Update(_ context.Context, v *entity.Rack) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.racks[v.Code]; !ok {
		return domain.ErrNotFound
	}
	cp := *v
	r.s.racks[v.Code] = &cp
	return nil
}

func (r *rackRepo) List(_ context.Context, limit, offset int) ([]*entity.Rack, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Rack, 0, len(r.s.racks))
	for _, v := range r.s.racks {
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return page(out, limit, offset), nil
}

// Delete rechaza racks con productos asignados.
func (r *rackRepo) Delete(_ context.Context, code string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.racks[code]; !ok {
		return domain.ErrNotFound
	}
	for _, p := range r.s.products {
		if p.RackCode != nil && *p.RackCode == code {
			return domain.ErrConflict
		}
	}
	delete(r.s.racks, code)
	return nil
}
