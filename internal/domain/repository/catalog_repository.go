package repository

import (
	"context"

	"github.com/joachez17/bodega-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para proveedores.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	List(ctx context.Context, limit, offset int) ([]*entity.Supplier, error)
	Delete(ctx context.Context, id string) error
}

// AreaRepository define el puerto de persistencia para áreas de destino.
type AreaRepository interface {
	Create(ctx context.Context, area *entity.Area) error
	GetByID(ctx context.Context, id string) (*entity.Area, error)
	Update(ctx context.Context, area *entity.Area) error
	List(ctx context.Context, limit, offset int) ([]*entity.Area, error)
	Delete(ctx context.Context, id string) error
}

// RackRepository define el puerto de persistencia para racks.
type RackRepository interface {
	Create(ctx context.Context, rack *entity.Rack) error
	GetByCode(ctx context.Context, code string) (*entity.Rack, error)
	Update(ctx context.Context, rack *entity.Rack) error
	List(ctx context.Context, limit, offset int) ([]*entity.Rack, error)
	Delete(ctx context.Context, code string) error
}
