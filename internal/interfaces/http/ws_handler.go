package http

import (
	"context"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/joachez17/bodega-api/internal/infrastructure/notify"
	"github.com/joachez17/bodega-api/pkg/jwt"
)

// AlertStream expone /ws/alerts: cada cliente recibe las alertas de stock mínimo en vivo.
// El navegador no puede mandar cabeceras en el handshake, así que el token viaja en ?token=.
type AlertStream struct {
	hub      *notify.Hub
	verifier *jwt.Verifier
}

// NewAlertStream construye el handler del stream de alertas.
func NewAlertStream(hub *notify.Hub, verifier *jwt.Verifier) *AlertStream {
	return &AlertStream{hub: hub, verifier: verifier}
}

// Upgrade valida que la petición sea un upgrade WebSocket con token válido.
func (s *AlertStream) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.SendStatus(fiber.StatusUpgradeRequired)
	}
	return authenticate(c, s.verifier, c.Query("token"))
}

// Handle registra la conexión en el hub y la mantiene viva hasta que el cliente cierre.
func (s *AlertStream) Handle() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		ctx := context.Background()
		s.hub.Register(ctx, conn)
		defer s.hub.Unregister(ctx, conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}
