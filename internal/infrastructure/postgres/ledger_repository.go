package postgres

import (
	"context"

	"github.com/joachez17/bodega-api/internal/domain/entity"
	"github.com/joachez17/bodega-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo Kardex sobre PostgreSQL. Solo INSERT y SELECT.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Append inserta la fila y devuelve en entry.Seq la secuencia asignada.
func (r *LedgerRepo) Append(ctx context.Context, entry *entity.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (id, product_code, kind, quantity, stock_before, stock_after, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING seq`
	err := r.q.QueryRow(ctx, query,
		entry.ID, entry.ProductCode, string(entry.Kind), entry.Quantity,
		entry.StockBefore, entry.StockAfter, entry.Reference, entry.CreatedAt,
	).Scan(&entry.Seq)
	return wrapErr("append ledger entry", err)
}

// ListByProduct Kardex del producto por orden de inserción.
func (r *LedgerRepo) ListByProduct(ctx context.Context, productCode string) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT id, seq, product_code, kind, quantity, stock_before, stock_after, reference, created_at
		FROM ledger_entries WHERE product_code = $1 ORDER BY seq`
	rows, err := r.q.Query(ctx, query, productCode)
	if err != nil {
		return nil, wrapErr("list ledger", err)
	}
	defer rows.Close()
	var list []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		var kind string
		if err := rows.Scan(&e.ID, &e.Seq, &e.ProductCode, &kind, &e.Quantity,
			&e.StockBefore, &e.StockAfter, &e.Reference, &e.CreatedAt); err != nil {
			return nil, wrapErr("scan ledger", err)
		}
		e.Kind = entity.MovementKind(kind)
		list = append(list, &e)
	}
	return list, wrapErr("list ledger", rows.Err())
}

// CountByProduct cantidad de filas de Kardex del producto.
func (r *LedgerRepo) CountByProduct(ctx context.Context, productCode string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM ledger_entries WHERE product_code = $1`, productCode).Scan(&n)
	if err != nil {
		return 0, wrapErr("count ledger", err)
	}
	return n, nil
}
