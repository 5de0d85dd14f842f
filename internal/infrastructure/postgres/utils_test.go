package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/joachez17/bodega-api/internal/domain"
)

func TestWrapErr_LockTimeout(t *testing.T) {
	err := wrapErr("lock product", &pgconn.PgError{Code: "55P03", Message: "canceling statement due to lock timeout"})
	assert.ErrorIs(t, err, domain.ErrTransactionTimeout)
	assert.NotErrorIs(t, err, domain.ErrStorageFailure)
}

func TestWrapErr_ContextoVencido(t *testing.T) {
	err := wrapErr("commit transaction", fmt.Errorf("conn: %w", context.DeadlineExceeded))
	assert.ErrorIs(t, err, domain.ErrTransactionTimeout)
}

func TestWrapErr_ErrorDeDominioPasaIntacto(t *testing.T) {
	in := &domain.InsufficientStockError{ProductCode: "P1", Requested: 3, Available: 1}
	err := wrapErr("transaction", in)
	assert.Same(t, in, err)
}

func TestWrapErr_OtroEsFallaDePersistencia(t *testing.T) {
	cause := errors.New("connection reset")
	err := wrapErr("insert movement", cause)
	assert.ErrorIs(t, err, domain.ErrStorageFailure)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "insert movement")
}

func TestWrapErr_Nil(t *testing.T) {
	assert.NoError(t, wrapErr("x", nil))
}

func TestViolaciones(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isForeignKeyViolation(fmt.Errorf("delete: %w", &pgconn.PgError{Code: "23503"})))
	assert.False(t, isForeignKeyViolation(errors.New("otro")))
	assert.True(t, isLockTimeout(&pgconn.PgError{Code: "57014"}))
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	assert.Equal(t, "x", deref(nullIfEmpty("x")))
	assert.Equal(t, "", deref(nil))
}
