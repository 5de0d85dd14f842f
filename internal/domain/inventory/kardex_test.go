package inventory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joachez17/bodega-api/internal/domain"
	"github.com/joachez17/bodega-api/internal/domain/entity"
	"github.com/joachez17/bodega-api/internal/domain/inventory"
)

func TestNextEntry_Entrada(t *testing.T) {
	p := &entity.Product{Code: "P1", Stock: 10}
	now := time.Now()

	e, err := inventory.NextEntry(p, 5, entity.MovementKindReception, "Reception ID: r1", now)
	require.NoError(t, err)
	assert.Equal(t, 10, e.StockBefore)
	assert.Equal(t, 15, e.StockAfter)
	assert.Equal(t, 5, e.Quantity)
	assert.Equal(t, "Reception ID: r1", e.Reference)
	assert.Equal(t, 10, p.Stock, "NextEntry no debe mutar el producto")
}

func TestNextEntry_SalidaHastaCero(t *testing.T) {
	p := &entity.Product{Code: "P1", Stock: 4}
	e, err := inventory.NextEntry(p, -4, entity.MovementKindDispatch, "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, e.StockAfter)
}

func TestNextEntry_StockInsuficiente(t *testing.T) {
	p := &entity.Product{Code: "P1", Stock: 4}
	_, err := inventory.NextEntry(p, -20, entity.MovementKindDispatch, "", time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, "P1", ise.ProductCode)
	assert.Equal(t, 20, ise.Requested)
	assert.Equal(t, 4, ise.Available)
}

func TestVerifyChain(t *testing.T) {
	chain := []*entity.LedgerEntry{
		{Quantity: 10, StockBefore: 0, StockAfter: 10},
		{Quantity: -4, StockBefore: 10, StockAfter: 6},
		{Quantity: -2, StockBefore: 6, StockAfter: 4},
	}
	assert.True(t, inventory.VerifyChain(chain, 4))
	assert.False(t, inventory.VerifyChain(chain, 5), "el último StockAfter debe ser el stock actual")

	broken := []*entity.LedgerEntry{
		{Quantity: 10, StockBefore: 0, StockAfter: 10},
		{Quantity: -4, StockBefore: 9, StockAfter: 5},
	}
	assert.False(t, inventory.VerifyChain(broken, 5))
	assert.True(t, inventory.VerifyChain(nil, 7))
}
