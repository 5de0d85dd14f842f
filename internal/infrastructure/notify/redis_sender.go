package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/joachez17/bodega-api/internal/domain/entity"
	"github.com/redis/go-redis/v9"
)

// RedisPublisher publica las alertas en un canal Redis (PUBLISH) para consumidores externos
// (correo, chat, tableros).
type RedisPublisher struct {
	rdb     redis.UniversalClient
	channel string
}

// NewRedisPublisher construye el publicador sobre un cliente ya configurado.
func NewRedisPublisher(rdb redis.UniversalClient, channel string) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, channel: channel}
}

// NewRedisClient crea el cliente y verifica la conexión.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return rdb, nil
}

func (p *RedisPublisher) Name() string { return "redis" }

func (p *RedisPublisher) Send(ctx context.Context, a entity.StockAlert) error {
	payload, err := encodeAlert(a)
	if err != nil {
		return err
	}
	if err := p.rdb.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", p.channel, err)
	}
	return nil
}

func encodeAlert(a entity.StockAlert) ([]byte, error) {
	return json.Marshal(alertMessage{Type: "stock_alert", Data: a})
}
