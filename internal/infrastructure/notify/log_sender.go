package notify

import (
	"context"

	"github.com/joachez17/bodega-api/internal/domain/entity"
	"github.com/joachez17/bodega-api/pkg/logger"
)

// LogSender deja cada alerta en el log estructurado. Siempre está activo.
type LogSender struct {
	log *logger.Logger
}

// NewLogSender construye el sender.
func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Name() string { return "log" }

func (s *LogSender) Send(_ context.Context, a entity.StockAlert) error {
	s.log.Warn().
		Str("product_code", a.ProductCode).
		Str("product", a.ProductName).
		Int("stock", a.CurrentStock).
		Int("minimum", a.MinimumStock).
		Str("movement_id", a.MovementID).
		Msg("stock bajo el mínimo")
	return nil
}
