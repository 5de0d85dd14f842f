package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/joachez17/bodega-api/internal/domain"
	"github.com/joachez17/bodega-api/internal/domain/entity"
	"github.com/joachez17/bodega-api/internal/domain/repository"
	"github.com/joachez17/bodega-api/pkg/logger"
)

// Recorder escribe la bitácora de auditoría. Es independiente del motor de movimientos:
// una falla al guardar se registra en el log y nunca se devuelve a la operación que la originó.
type Recorder struct {
	repo repository.AuditRepository
	log  *logger.Logger
	now  func() time.Time
}

// NewRecorder construye el registrador.
func NewRecorder(repo repository.AuditRepository, log *logger.Logger) *Recorder {
	return &Recorder{repo: repo, log: log, now: time.Now}
}

// Record agrega una entrada. actorID vacío = acción del sistema (se guarda NULL).
func (r *Recorder) Record(ctx context.Context, actorID string, action entity.AuditAction, subjectType, detail string) {
	entry := &entity.AuditEntry{
		ID:          uuid.New().String(),
		Action:      action,
		SubjectType: subjectType,
		Detail:      detail,
		CreatedAt:   r.now(),
	}
	if actorID != "" {
		entry.ActorID = &actorID
	}
	// La bitácora no debe perderse porque el request se haya cancelado.
	if err := r.repo.Append(context.WithoutCancel(ctx), entry); err != nil {
		r.log.Error().Err(err).
			Str("action", string(action)).
			Str("subject", subjectType).
			Msg("no se pudo guardar registro de auditoría")
	}
}

// Page página de la bitácora con el total que cumple el filtro.
type Page struct {
	Items  []*entity.AuditEntry
	Total  int
	Limit  int
	Offset int
}

// List consulta la bitácora (más recientes primero). Limit por defecto 20, máximo 100.
func (r *Recorder) List(ctx context.Context, filter repository.AuditFilter) (*Page, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.Action != "" && !validAction(filter.Action) {
		return nil, domain.ErrInvalidInput
	}
	items, total, err := r.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &Page{Items: items, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

func validAction(a entity.AuditAction) bool {
	switch a {
	case entity.AuditActionCreated, entity.AuditActionModified, entity.AuditActionDeleted, entity.AuditActionRegistered:
		return true
	}
	return false
}
