package repository

import (
	"context"
	"time"

	"github.com/joachez17/bodega-api/internal/domain/entity"
)

// MovementFilter filtros para reportes de recepciones y despachos.
type MovementFilter struct {
	Kind   entity.MovementKind // vacío = todos
	Since  *time.Time
	Until  *time.Time
	Limit  int
	Offset int
}

// MovementRepository puerto de persistencia de cabeceras y líneas de movimiento.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	AddLine(ctx context.Context, line *entity.MovementLine) error

	// GetByID devuelve la cabecera con sus líneas, o (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Movement, error)

	// List devuelve la página pedida (más recientes primero) y el total que cumple el filtro.
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, int, error)
}
