package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/joachez17/bodega-api/internal/domain/entity"
	"github.com/joachez17/bodega-api/pkg/logger"
)

// ErrHubClosed el hub ya no atiende: Run terminó.
var ErrHubClosed = errors.New("notify: hub cerrado")

// Client conexión WebSocket suscrita a las alertas. *websocket.Conn la implementa.
type Client interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Hub reparte las alertas de stock entre los clientes conectados a /ws/alerts.
type Hub struct {
	clients    map[Client]bool
	register   chan Client
	unregister chan Client
	broadcast  chan []byte
	done       chan struct{}
	mutex      sync.Mutex
	log        *logger.Logger
}

// NewHub crea el hub. Run debe estar corriendo para registrar clientes y difundir.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[Client]bool),
		register:   make(chan Client),
		unregister: make(chan Client),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run atiende registros, bajas y difusiones hasta que ctx termine. Al salir cierra los clientes
// y desde entonces Register, Unregister y Send vuelven de inmediato. Se llama una sola vez.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for c := range h.clients {
				_ = c.Close()
				delete(h.clients, c)
			}
			h.mutex.Unlock()
			return

		case c := <-h.register:
			h.mutex.Lock()
			h.clients[c] = true
			n := len(h.clients)
			h.mutex.Unlock()
			h.log.Debug().Int("clients", n).Msg("cliente ws conectado")

		case c := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				_ = c.Close()
			}
			h.mutex.Unlock()

		case msg := <-h.broadcast:
			h.mutex.Lock()
			for c := range h.clients {
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					_ = c.Close()
					delete(h.clients, c)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Register suscribe un cliente. Bloquea hasta que Run lo atienda o ctx termine.
// Con el hub cerrado el cliente se cierra en el acto.
func (h *Hub) Register(ctx context.Context, c Client) {
	select {
	case h.register <- c:
	case <-h.done:
		_ = c.Close()
	case <-ctx.Done():
	}
}

// Unregister da de baja un cliente. Con el hub cerrado no hay nada que hacer: Run ya cerró a todos.
func (h *Hub) Unregister(ctx context.Context, c Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	case <-ctx.Done():
	}
}

// Clients cantidad de clientes conectados.
func (h *Hub) Clients() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Name implementa Sender.
func (h *Hub) Name() string { return "websocket" }

// Send encola la alerta para todos los clientes.
func (h *Hub) Send(ctx context.Context, alert entity.StockAlert) error {
	msg, err := json.Marshal(alertMessage{Type: "stock_alert", Data: alert})
	if err != nil {
		return err
	}
	select {
	case <-h.done:
		return ErrHubClosed
	default:
	}
	select {
	case h.broadcast <- msg:
		return nil
	case <-h.done:
		return ErrHubClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

type alertMessage struct {
	Type string            `json:"type"`
	Data entity.StockAlert `json:"data"`
}
