package audit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joachez17/bodega-api/internal/application/audit"
	"github.com/joachez17/bodega-api/internal/domain"
	"github.com/joachez17/bodega-api/internal/domain/entity"
	"github.com/joachez17/bodega-api/internal/domain/repository"
	"github.com/joachez17/bodega-api/pkg/logger"
)

type fakeAuditRepo struct {
	entries    []*entity.AuditEntry
	appendErr  error
	lastFilter repository.AuditFilter
	ctxErr     error
}

func (r *fakeAuditRepo) Append(ctx context.Context, e *entity.AuditEntry) error {
	r.ctxErr = ctx.Err()
	if r.appendErr != nil {
		return r.appendErr
	}
	r.entries = append(r.entries, e)
	return nil
}

func (r *fakeAuditRepo) List(_ context.Context, f repository.AuditFilter) ([]*entity.AuditEntry, int, error) {
	r.lastFilter = f
	return r.entries, len(r.entries), nil
}

func TestRecord_ActorVacioEsSistema(t *testing.T) {
	repo := &fakeAuditRepo{}
	rec := audit.NewRecorder(repo, logger.Nop())

	rec.Record(context.Background(), "", entity.AuditActionCreated, "Product", "Objeto: Guantes (P1)")

	require.Len(t, repo.entries, 1)
	e := repo.entries[0]
	assert.Nil(t, e.ActorID)
	assert.Equal(t, entity.SystemActor, e.ActorName())
	assert.Equal(t, entity.AuditActionCreated, e.Action)
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.CreatedAt.IsZero())
}

func TestRecord_ConActor(t *testing.T) {
	repo := &fakeAuditRepo{}
	rec := audit.NewRecorder(repo, logger.Nop())

	rec.Record(context.Background(), "user-7", entity.AuditActionRegistered, "Dispatch", "Dispatch #1 to area N/A")

	require.Len(t, repo.entries, 1)
	assert.Equal(t, "user-7", repo.entries[0].ActorName())
}

func TestRecord_FallaDeRepositorioNoSePropaga(t *testing.T) {
	repo := &fakeAuditRepo{appendErr: errors.New("db caída")}
	rec := audit.NewRecorder(repo, logger.Nop())

	assert.NotPanics(t, func() {
		rec.Record(context.Background(), "u", entity.AuditActionDeleted, "Rack", "Objeto: R1")
	})
	assert.Empty(t, repo.entries)
}

func TestRecord_ContextoCanceladoIgualSeGuarda(t *testing.T) {
	repo := &fakeAuditRepo{}
	rec := audit.NewRecorder(repo, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec.Record(ctx, "u", entity.AuditActionModified, "Area", "Objeto: Cocina")

	assert.NoError(t, repo.ctxErr)
	assert.Len(t, repo.entries, 1)
}

func TestList_LimitesPorDefecto(t *testing.T) {
	repo := &fakeAuditRepo{}
	rec := audit.NewRecorder(repo, logger.Nop())

	page, err := rec.List(context.Background(), repository.AuditFilter{Limit: 0, Offset: -3})
	require.NoError(t, err)
	assert.Equal(t, 20, page.Limit)
	assert.Equal(t, 0, page.Offset)

	page, err = rec.List(context.Background(), repository.AuditFilter{Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, 100, page.Limit)
	assert.Equal(t, 100, repo.lastFilter.Limit)
}

func TestList_AccionDesconocida(t *testing.T) {
	rec := audit.NewRecorder(&fakeAuditRepo{}, logger.Nop())
	_, err := rec.List(context.Background(), repository.AuditFilter{Action: "BORRADO"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
