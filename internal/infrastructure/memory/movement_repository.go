package memory

import (
	"context"

	"github.com/joachez17/bodega-api/internal/domain"
	"github.com/joachez17/bodega-api/internal/domain/entity"
	"github.com/joachez17/bodega-api/internal/domain/repository"
)

type movementRepo struct {
	s *Store
}

func copyMovement(m *entity.Movement) *entity.Movement {
	cp := *m
	cp.Lines = append([]entity.MovementLine(nil), m.Lines...)
	return &cp
}

func (r *movementRepo) Create(_ context.Context, m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.movements[m.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := copyMovement(m)
	cp.Lines = nil
	r.s.movements[m.ID] = cp
	r.s.movementOrder = append(r.s.movementOrder, m.ID)
	return nil
}

func (r *movementRepo) AddLine(_ context.Context, l *entity.MovementLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.movements[l.MovementID]
	if !ok {
		return domain.ErrNotFound
	}
	m.Lines = append(m.Lines, *l)
	return nil
}

func (r *movementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.movements[id]
	if !ok {
		return nil, nil
	}
	return copyMovement(m), nil
}

func matchesMovement(m *entity.Movement, f repository.MovementFilter) bool {
	if f.Kind != "" && m.Kind != f.Kind {
		return false
	}
	if f.Since != nil && m.CreatedAt.Before(*f.Since) {
		return false
	}
	if f.Until != nil && m.CreatedAt.After(*f.Until) {
		return false
	}
	return true
}

// List recorre en orden inverso de inserción: más recientes primero.
func (r *movementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.Movement, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var filtered []*entity.Movement
	for i := len(r.s.movementOrder) - 1; i >= 0; i-- {
		m := r.s.movements[r.s.movementOrder[i]]
		if matchesMovement(m, f) {
			filtered = append(filtered, copyMovement(m))
		}
	}
	return page(filtered, f.Limit, f.Offset), len(filtered), nil
}

type txMovementRepo struct {
	t *tx
}

func (r *txMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	cp := copyMovement(m)
	cp.Lines = nil
	r.t.movements = append(r.t.movements, cp)
	return nil
}

func (r *txMovementRepo) AddLine(_ context.Context, l *entity.MovementLine) error {
	for _, m := range r.t.movements {
		if m.ID == l.MovementID {
			r.t.lines = append(r.t.lines, *l)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *txMovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	for _, m := range r.t.movements {
		if m.ID == id {
			cp := copyMovement(m)
			for _, l := range r.t.lines {
				if l.MovementID == id {
					cp.Lines = append(cp.Lines, l)
				}
			}
			return cp, nil
		}
	}
	return (&movementRepo{s: r.t.s}).GetByID(ctx, id)
}

// List solo ve movimientos confirmados.
func (r *txMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, int, error) {
	return (&movementRepo{s: r.t.s}).List(ctx, f)
}
