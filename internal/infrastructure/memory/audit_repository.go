package memory

import (
	"context"

	"github.com/joachez17/bodega-api/internal/domain/entity"
	"github.com/joachez17/bodega-api/internal/domain/repository"
)

type auditRepo struct {
	s *Store
}

func (r *auditRepo) Append(_ context.Context, e *entity.AuditEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *e
	r.s.audit = append(r.s.audit, &cp)
	return nil
}

func matchesAudit(e *entity.AuditEntry, f repository.AuditFilter) bool {
	if f.ActorID != "" && (e.ActorID == nil || *e.ActorID != f.ActorID) {
		return false
	}
	if f.Action != "" && e.Action != f.Action {
		return false
	}
	if f.SubjectType != "" && e.SubjectType != f.SubjectType {
		return false
	}
	if f.Since != nil && e.CreatedAt.Before(*f.Since) {
		return false
	}
	if f.Until != nil && e.CreatedAt.After(*f.Until) {
		return false
	}
	return true
}

func (r *auditRepo) List(_ context.Context, f repository.AuditFilter) ([]*entity.AuditEntry, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var filtered []*entity.AuditEntry
	for i := len(r.s.audit) - 1; i >= 0; i-- {
		if e := r.s.audit[i]; matchesAudit(e, f) {
			cp := *e
			filtered = append(filtered, &cp)
		}
	}
	return page(filtered, f.Limit, f.Offset), len(filtered), nil
}
