package repository

import (
	"context"
	"time"

	"github.com/joachez17/bodega-api/internal/domain/entity"
)

// AuditFilter filtros de la bitácora de auditoría.
type AuditFilter struct {
	ActorID     string
	Action      entity.AuditAction
	SubjectType string
	Since       *time.Time
	Until       *time.Time
	Limit       int
	Offset      int
}

// AuditRepository puerto de la bitácora (append-only).
type AuditRepository interface {
	Append(ctx context.Context, entry *entity.AuditEntry) error
	List(ctx context.Context, filter AuditFilter) ([]*entity.AuditEntry, int, error)
}
