package memory

import (
	"context"

	"github.com/joachez17/bodega-api/internal/domain/entity"
)

type ledgerRepo struct {
	s *Store
}

// Append fuera de transacción se confirma de inmediato.
func (r *ledgerRepo) Append(_ context.Context, e *entity.LedgerEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.seq++
	cp := *e
	cp.Seq = r.s.seq
	e.Seq = cp.Seq
	r.s.ledger = append(r.s.ledger, &cp)
	return nil
}

func (r *ledgerRepo) ListByProduct(_ context.Context, code string) ([]*entity.LedgerEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.LedgerEntry
	for _, e := range r.s.ledger {
		if e.ProductCode == code {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *ledgerRepo) CountByProduct(ctx context.Context, code string) (int, error) {
	list, err := r.ListByProduct(ctx, code)
	return len(list), err
}

type txLedgerRepo struct {
	t *tx
}

func (r *txLedgerRepo) Append(_ context.Context, e *entity.LedgerEntry) error {
	cp := *e
	r.t.ledger = append(r.t.ledger, &cp)
	return nil
}

// ListByProduct incluye las filas pendientes de la tx al final.
func (r *txLedgerRepo) ListByProduct(ctx context.Context, code string) ([]*entity.LedgerEntry, error) {
	out, err := (&ledgerRepo{s: r.t.s}).ListByProduct(ctx, code)
	if err != nil {
		return nil, err
	}
	for _, e := range r.t.ledger {
		if e.ProductCode == code {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *txLedgerRepo) CountByProduct(ctx context.Context, code string) (int, error) {
	list, err := r.ListByProduct(ctx, code)
	return len(list), err
}
