package notification

import (
	"context"
	"time"

	"github.com/joachez17/bodega-api/internal/domain/entity"
	"github.com/joachez17/bodega-api/pkg/logger"
)

// AlertSender entrega una alerta (correo, websocket, cola...). Es un colaborador externo:
// un error de entrega se registra y no afecta al movimiento ya confirmado.
type AlertSender interface {
	Send(ctx context.Context, alert entity.StockAlert) error
}

// CheckThreshold decide si el stock resultante amerita alerta.
// Condición: MinimumStock > 0 y stockAfter <= MinimumStock, sin importar stockBefore
// (se alerta en cada movimiento que termina en o bajo el mínimo, no solo al cruzarlo).
func CheckThreshold(product *entity.Product, stockBefore, stockAfter int) *entity.StockAlert {
	if product.MinimumStock <= 0 {
		return nil
	}
	if stockAfter > product.MinimumStock {
		return nil
	}
	return &entity.StockAlert{
		ProductCode:  product.Code,
		ProductName:  product.Name,
		CurrentStock: stockAfter,
		MinimumStock: product.MinimumStock,
	}
}

// Notifier revisa los productos tocados por un movimiento y entrega las alertas.
type Notifier struct {
	sender AlertSender
	log    *logger.Logger
	now    func() time.Time
}

// NewNotifier construye el notificador. sender puede ser nil (solo se registran las alertas).
func NewNotifier(sender AlertSender, log *logger.Logger) *Notifier {
	return &Notifier{sender: sender, log: log, now: time.Now}
}

// Notify evalúa cada cambio y entrega las alertas resultantes. Devuelve las alertas generadas.
func (n *Notifier) Notify(ctx context.Context, actorID, movementID string, changes []entity.StockChange) []entity.StockAlert {
	var alerts []entity.StockAlert
	for _, c := range changes {
		alert := CheckThreshold(c.Product, c.Before, c.After)
		if alert == nil {
			continue
		}
		alert.ActorID = actorID
		alert.MovementID = movementID
		alert.GeneratedAt = n.now()
		alerts = append(alerts, *alert)

		n.log.Warn().
			Str("product_code", alert.ProductCode).
			Int("current_stock", alert.CurrentStock).
			Int("minimum_stock", alert.MinimumStock).
			Str("movement_id", movementID).
			Msg("stock bajo el mínimo")

		if n.sender == nil {
			continue
		}
		if err := n.sender.Send(ctx, *alert); err != nil {
			n.log.Error().Err(err).Str("product_code", alert.ProductCode).Msg("entrega de alerta de stock")
		}
	}
	return alerts
}
