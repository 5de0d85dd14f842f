package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/joachez17/bodega-api/internal/domain/entity"
	kardex "github.com/joachez17/bodega-api/internal/domain/inventory"
	"github.com/joachez17/bodega-api/internal/domain/repository"
)

// ApplyDelta aplica delta al stock de un producto ya bloqueado (GetForUpdate) y agrega la fila
// de Kardex con stock anterior y nuevo. Debe llamarse dentro de TxRunner.Run con los repos de esa tx.
// Si stock + delta < 0 devuelve *domain.InsufficientStockError sin escribir nada.
func ApplyDelta(
	ctx context.Context,
	productRepo repository.ProductRepository,
	ledgerRepo repository.LedgerRepository,
	product *entity.Product,
	delta int,
	kind entity.MovementKind,
	reference string,
	at time.Time,
) (*entity.LedgerEntry, error) {
	entry, err := kardex.NextEntry(product, delta, kind, reference, at)
	if err != nil {
		return nil, err
	}
	entry.ID = uuid.New().String()
	if err := productRepo.UpdateStock(ctx, product.Code, entry.StockAfter); err != nil {
		return nil, err
	}
	if err := ledgerRepo.Append(ctx, entry); err != nil {
		return nil, err
	}
	product.Stock = entry.StockAfter
	product.UpdatedAt = at
	return entry, nil
}
