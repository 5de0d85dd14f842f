package notification_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joachez17/bodega-api/internal/application/notification"
	"github.com/joachez17/bodega-api/internal/domain/entity"
	"github.com/joachez17/bodega-api/pkg/logger"
)

type recordingSender struct {
	sent []entity.StockAlert
	err  error
}

func (s *recordingSender) Send(_ context.Context, a entity.StockAlert) error {
	s.sent = append(s.sent, a)
	return s.err
}

func TestCheckThreshold_SinMinimoNoAlerta(t *testing.T) {
	p := &entity.Product{Code: "P1", MinimumStock: 0}
	assert.Nil(t, notification.CheckThreshold(p, 5, 0), "mínimo 0 desactiva alertas aunque el stock sea 0")
}

func TestCheckThreshold_SobreMinimo(t *testing.T) {
	p := &entity.Product{Code: "P1", MinimumStock: 5}
	assert.Nil(t, notification.CheckThreshold(p, 10, 6))
}

func TestCheckThreshold_IgualAlMinimo(t *testing.T) {
	p := &entity.Product{Code: "P1", Name: "Guantes", MinimumStock: 5}
	alert := notification.CheckThreshold(p, 10, 5)
	require.NotNil(t, alert)
	assert.Equal(t, 5, alert.CurrentStock)
	assert.Equal(t, 5, alert.MinimumStock)
	assert.Equal(t, "Guantes", alert.ProductName)
}

func TestCheckThreshold_YaBajoElMinimoVuelveAAlertar(t *testing.T) {
	p := &entity.Product{Code: "P1", MinimumStock: 5}
	assert.NotNil(t, notification.CheckThreshold(p, 4, 3), "se alerta aunque el stock anterior ya estuviera bajo el mínimo")
}

func TestNotifier_EntregaSoloAlertas(t *testing.T) {
	sender := &recordingSender{}
	n := notification.NewNotifier(sender, logger.Nop())

	changes := []entity.StockChange{
		{Product: &entity.Product{Code: "A", MinimumStock: 5, Stock: 4}, Before: 10, After: 4},
		{Product: &entity.Product{Code: "B", MinimumStock: 5, Stock: 9}, Before: 10, After: 9},
		{Product: &entity.Product{Code: "C", MinimumStock: 0, Stock: 0}, Before: 1, After: 0},
	}
	alerts := n.Notify(context.Background(), "user-1", "mov-1", changes)

	require.Len(t, alerts, 1)
	assert.Equal(t, "A", alerts[0].ProductCode)
	assert.Equal(t, "user-1", alerts[0].ActorID)
	assert.Equal(t, "mov-1", alerts[0].MovementID)
	assert.False(t, alerts[0].GeneratedAt.IsZero())
	require.Len(t, sender.sent, 1)
}

func TestNotifier_FallaDeEntregaNoSePropaga(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp caído")}
	n := notification.NewNotifier(sender, logger.Nop())

	alerts := n.Notify(context.Background(), "", "mov-1", []entity.StockChange{
		{Product: &entity.Product{Code: "A", MinimumStock: 5}, Before: 6, After: 1},
	})
	assert.Len(t, alerts, 1, "la alerta se genera aunque la entrega falle")
}
