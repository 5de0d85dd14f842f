package inventory

import (
	"context"

	"github.com/joachez17/bodega-api/internal/domain/entity"
	"github.com/joachez17/bodega-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback de todo lo aplicado; si no, Commit.
// Garantiza atomicidad para el motor de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		ledgerRepo repository.LedgerRepository,
	) error) error
}

// ThresholdNotifier recibe los cambios de stock de un movimiento ya confirmado.
// No devuelve error: la entrega de alertas es best-effort.
type ThresholdNotifier interface {
	Notify(ctx context.Context, actorID, movementID string, changes []entity.StockChange) []entity.StockAlert
}

// AuditRecorder registra eventos de dominio en la bitácora; nunca falla al llamador.
type AuditRecorder interface {
	Record(ctx context.Context, actorID string, action entity.AuditAction, subjectType, detail string)
}
