package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joachez17/bodega-api/internal/application/inventory"
	"github.com/joachez17/bodega-api/internal/domain/entity"
	"github.com/joachez17/bodega-api/internal/infrastructure/memory"
)

func TestGenerateReplenishmentList_OrdenYCantidades(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	for _, p := range []struct {
		code         string
		stock, minim int
	}{
		{"OK", 20, 5},   // sobre el mínimo
		{"OFF", 0, 0},   // alertas desactivadas
		{"EDGE", 5, 5},  // déficit 0
		{"LOW", 1, 10},  // déficit 9
		{"ZERO", 0, 4},  // déficit 4
		{"ZERO2", 0, 4}, // mismo déficit y stock: desempata por código
	} {
		require.NoError(t, store.Products().Create(ctx, &entity.Product{Code: p.code, Name: p.code, MinimumStock: p.minim}))
		require.NoError(t, store.Products().UpdateStock(ctx, p.code, p.stock))
	}

	list, err := inventory.NewReplenishmentUseCase(store.Products()).GenerateReplenishmentList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 4)

	assert.Equal(t, "LOW", list[0].ProductCode)
	assert.Equal(t, 1, list[0].Priority)
	assert.Equal(t, 15, list[0].IdealStock)
	assert.Equal(t, 14, list[0].SuggestedOrderQty)
	assert.Equal(t, 9, list[0].Deficit)

	assert.Equal(t, "ZERO", list[1].ProductCode)
	assert.Equal(t, "ZERO2", list[2].ProductCode)
	assert.Equal(t, 6, list[1].SuggestedOrderQty)

	assert.Equal(t, "EDGE", list[3].ProductCode)
	assert.Equal(t, 0, list[3].Deficit)
	assert.Equal(t, 8, list[3].IdealStock)
	assert.Equal(t, 3, list[3].SuggestedOrderQty)
	assert.Equal(t, 4, list[3].Priority)
}
