package repository

import (
	"context"

	"github.com/joachez17/bodega-api/internal/domain/entity"
)

// LedgerRepository puerto del Kardex: solo agrega filas y las lee, no hay update ni delete.
type LedgerRepository interface {
	Append(ctx context.Context, entry *entity.LedgerEntry) error

	// ListByProduct devuelve el Kardex del producto en orden cronológico ascendente.
	ListByProduct(ctx context.Context, productCode string) ([]*entity.LedgerEntry, error)
	CountByProduct(ctx context.Context, productCode string) (int, error)
}
