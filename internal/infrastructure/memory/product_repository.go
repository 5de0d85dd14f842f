package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/joachez17/bodega-api/internal/domain"
	"github.com/joachez17/bodega-api/internal/domain/entity"
)

type productRepo struct {
	s *Store
}

func copyProduct(p *entity.Product) *entity.Product {
	cp := *p
	return &cp
}

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.Code]; ok {
		return domain.ErrDuplicate
	}
	r.s.products[p.Code] = copyProduct(p)
	return nil
}

func (r *productRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[code]
	if !ok {
		return nil, nil
	}
	return copyProduct(p), nil
}

// GetForUpdate fuera de una transacción no bloquea nada.
func (r *productRepo) GetForUpdate(ctx context.Context, code string) (*entity.Product, error) {
	p, err := r.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, code)
	}
	return p, nil
}

func (r *productRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[p.Code]
	if !ok {
		return domain.ErrNotFound
	}
	cp := copyProduct(p)
	cp.Stock = cur.Stock
	cp.CreatedAt = cur.CreatedAt
	r.s.products[p.Code] = cp
	return nil
}

func (r *productRepo) UpdateStock(_ context.Context, code string, stock int) error {
	if stock < 0 {
		return fmt.Errorf("%w: stock negativo para %s", domain.ErrInvalidInput, code)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[code]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	return nil
}

func (r *productRepo) sorted(keep func(*entity.Product) bool) []*entity.Product {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if keep(p) {
			out = append(out, copyProduct(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func (r *productRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	all := r.sorted(func(*entity.Product) bool { return true })
	return page(all, limit, offset), nil
}

func (r *productRepo) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.products), nil
}

func (r *productRepo) ListBelowMinimum(_ context.Context) ([]*entity.Product, error) {
	return r.sorted(func(p *entity.Product) bool { return p.BelowMinimum() }), nil
}

// Delete rechaza productos con historial de Kardex. Espera el bloqueo del producto como
// cualquier movimiento: una tx que lo tenga tomado termina antes de revisar el historial.
func (r *productRepo) Delete(ctx context.Context, code string) error {
	ch := r.s.lockFor(code)
	if err := acquire(ctx, ch, code); err != nil {
		return err
	}
	defer func() { <-ch }()
	return r.deleteLocked(code)
}

// deleteLocked asume el bloqueo del producto tomado.
func (r *productRepo) deleteLocked(code string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[code]; !ok {
		return domain.ErrNotFound
	}
	for _, e := range r.s.ledger {
		if e.ProductCode == code {
			return domain.ErrConflict
		}
	}
	delete(r.s.products, code)
	return nil
}

// txProductRepo ve el stock pendiente de su transacción y bloquea en GetForUpdate.
type txProductRepo struct {
	t *tx
}

func (r *txProductRepo) base() *productRepo { return &productRepo{s: r.t.s} }

func (r *txProductRepo) overlay(p *entity.Product) *entity.Product {
	if p == nil {
		return nil
	}
	if stock, ok := r.t.stock[p.Code]; ok {
		p.Stock = stock
	}
	return p
}

func (r *txProductRepo) Create(ctx context.Context, p *entity.Product) error {
	return r.base().Create(ctx, p)
}

func (r *txProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	p, err := r.base().GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return r.overlay(p), nil
}

func (r *txProductRepo) GetForUpdate(ctx context.Context, code string) (*entity.Product, error) {
	if p, _ := r.base().GetByCode(ctx, code); p == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, code)
	}
	if err := r.t.lock(ctx, code); err != nil {
		return nil, err
	}
	// releer después de obtener el bloqueo: otra tx pudo confirmar mientras esperábamos
	p, err := r.base().GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, code)
	}
	return r.overlay(p), nil
}

func (r *txProductRepo) Update(ctx context.Context, p *entity.Product) error {
	return r.base().Update(ctx, p)
}

func (r *txProductRepo) UpdateStock(_ context.Context, code string, stock int) error {
	if _, ok := r.t.held[code]; !ok {
		return fmt.Errorf("actualización de stock sin bloqueo previo: %s", code)
	}
	if stock < 0 {
		return fmt.Errorf("%w: stock negativo para %s", domain.ErrInvalidInput, code)
	}
	r.t.stock[code] = stock
	return nil
}

func (r *txProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	list, err := r.base().List(ctx, limit, offset)
	for _, p := range list {
		r.overlay(p)
	}
	return list, err
}

func (r *txProductRepo) Count(ctx context.Context) (int, error) {
	return r.base().Count(ctx)
}

func (r *txProductRepo) ListBelowMinimum(ctx context.Context) ([]*entity.Product, error) {
	all, err := r.base().List(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, p := range all {
		if r.overlay(p).BelowMinimum() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *txProductRepo) Delete(ctx context.Context, code string) error {
	if err := r.t.lock(ctx, code); err != nil {
		return err
	}
	for _, e := range r.t.ledger {
		if e.ProductCode == code {
			return domain.ErrConflict
		}
	}
	return r.base().deleteLocked(code)
}
