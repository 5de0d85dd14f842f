package repository

import (
	"context"

	"github.com/joachez17/bodega-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByCode devuelve (nil, nil) si no existe; GetForUpdate devuelve domain.ErrNotFound.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByCode(ctx context.Context, code string) (*entity.Product, error)

	// GetForUpdate obtiene el producto y bloquea su stock hasta que termine la transacción
	// que envuelve al repositorio. Solo tiene sentido dentro de TxRunner.Run.
	GetForUpdate(ctx context.Context, code string) (*entity.Product, error)

	// Update modifica los datos de catálogo. Nunca toca Stock (solo vía movimientos).
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, code string, stock int) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Count(ctx context.Context) (int, error)

	// ListBelowMinimum lista productos con MinimumStock > 0 y Stock <= MinimumStock.
	ListBelowMinimum(ctx context.Context) ([]*entity.Product, error)
	Delete(ctx context.Context, code string) error
}
