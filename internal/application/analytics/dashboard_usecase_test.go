package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joachez17/bodega-api/internal/application/analytics"
	"github.com/joachez17/bodega-api/internal/application/audit"
	"github.com/joachez17/bodega-api/internal/application/inventory"
	"github.com/joachez17/bodega-api/internal/application/notification"
	"github.com/joachez17/bodega-api/internal/domain/entity"
	"github.com/joachez17/bodega-api/internal/infrastructure/memory"
	"github.com/joachez17/bodega-api/pkg/logger"
)

type discardAlerts struct{}

func (discardAlerts) Send(context.Context, entity.StockAlert) error { return nil }

func setup(t *testing.T) (*memory.Store, *inventory.MovementUseCase) {
	t.Helper()
	store := memory.NewStore()
	log := logger.Nop()
	uc := inventory.NewMovementUseCase(
		store, store.Products(), store.Movements(), store.Ledger(), store.Suppliers(), store.Areas(),
		notification.NewNotifier(discardAlerts{}, log), audit.NewRecorder(store.Audit(), log), log,
		inventory.MovementConfig{TxTimeout: time.Second},
	)
	ctx := context.Background()
	require.NoError(t, store.Suppliers().Create(ctx, &entity.Supplier{ID: "S1", Name: "Proveedor"}))
	for _, p := range []*entity.Product{
		{Code: "A", Name: "Arroz", MinimumStock: 10},
		{Code: "B", Name: "Azúcar", MinimumStock: 5},
		{Code: "C", Name: "Café"},
	} {
		require.NoError(t, store.Products().Create(ctx, p))
	}
	return store, uc
}

func TestDashboard_ResumenSinMovimientos(t *testing.T) {
	store, _ := setup(t)
	uc := analytics.NewDashboardUseCase(store.Products(), store.Movements())

	s, err := uc.GetSummary(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, s.ProductCount)
	// A y B tienen mínimo y stock 0; C no tiene alertas
	assert.Equal(t, 2, s.LowStockCount)
	assert.Empty(t, s.RecentMovements)
	assert.Zero(t, s.MonthReceptions)
	assert.NotEmpty(t, s.DateLabel)
}

func TestDashboard_CuentaMovimientosYOrdenaStockBajo(t *testing.T) {
	store, mov := setup(t)
	ctx := context.Background()
	_, err := mov.SubmitReception(ctx, inventory.ReceptionInput{
		SupplierID: "S1",
		Lines: []inventory.LineInput{
			{ProductCode: "A", Quantity: 8},
			{ProductCode: "B", Quantity: 20},
			{ProductCode: "C", Quantity: 1},
		},
	})
	require.NoError(t, err)
	_, err = mov.SubmitDispatch(ctx, inventory.DispatchInput{
		RequesterName: "Ana",
		Lines:         []inventory.LineInput{{ProductCode: "B", Quantity: 16}},
	})
	require.NoError(t, err)

	uc := analytics.NewDashboardUseCase(store.Products(), store.Movements())
	s, err := uc.GetSummary(ctx, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, s.TodayReceptions)
	assert.Equal(t, 1, s.TodayDispatches)
	assert.Equal(t, 1, s.MonthReceptions)
	assert.Equal(t, 1, s.MonthDispatches)

	// A: 8 <= 10, B: 4 <= 5; menor stock primero
	require.Equal(t, 2, s.LowStockCount)
	require.Len(t, s.LowStock, 2)
	assert.Equal(t, "B", s.LowStock[0].ProductCode)
	assert.Equal(t, "A", s.LowStock[1].ProductCode)
	assert.Len(t, s.RecentMovements, 2)
}

func TestDashboard_FiltroDeFechasSoloAfectaActividadReciente(t *testing.T) {
	store, mov := setup(t)
	ctx := context.Background()
	_, err := mov.SubmitReception(ctx, inventory.ReceptionInput{
		SupplierID: "S1",
		Lines:      []inventory.LineInput{{ProductCode: "C", Quantity: 3}},
	})
	require.NoError(t, err)

	future := time.Now().Add(time.Hour)
	uc := analytics.NewDashboardUseCase(store.Products(), store.Movements())
	s, err := uc.GetSummary(ctx, &future, nil)
	require.NoError(t, err)
	assert.Empty(t, s.RecentMovements)
	assert.Equal(t, 1, s.TodayReceptions)
}
