package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joachez17/bodega-api/internal/domain/entity"
	"github.com/joachez17/bodega-api/internal/infrastructure/notify"
	"github.com/joachez17/bodega-api/pkg/logger"
)

type fakeClient struct {
	mu       sync.Mutex
	msgs     [][]byte
	writeErr error
	closed   bool
}

func (c *fakeClient) WriteMessage(_ int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeErr != nil {
		return c.writeErr
	}
	c.msgs = append(c.msgs, data)
	return nil
}

func (c *fakeClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeClient) received() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.msgs)
}

func TestHub_DifundeAlertas(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := notify.NewHub(logger.Nop())
	go hub.Run(ctx)

	ok := &fakeClient{}
	broken := &fakeClient{writeErr: errors.New("roto")}
	hub.Register(ctx, ok)
	hub.Register(ctx, broken)
	require.Eventually(t, func() bool { return hub.Clients() == 2 }, time.Second, 5*time.Millisecond)

	require.NoError(t, hub.Send(ctx, entity.StockAlert{ProductCode: "P1", CurrentStock: 2, MinimumStock: 5}))

	require.Eventually(t, func() bool { return ok.received() == 1 }, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond, "el cliente roto se descarta")

	var msg struct {
		Type string            `json:"type"`
		Data entity.StockAlert `json:"data"`
	}
	ok.mu.Lock()
	require.NoError(t, json.Unmarshal(ok.msgs[0], &msg))
	ok.mu.Unlock()
	assert.Equal(t, "stock_alert", msg.Type)
	assert.Equal(t, "P1", msg.Data.ProductCode)
}

func TestHub_CierraClientesAlTerminar(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := notify.NewHub(logger.Nop())
	done := make(chan struct{})
	go func() { hub.Run(ctx); close(done) }()

	c := &fakeClient{}
	hub.Register(ctx, c)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	c.mu.Lock()
	defer c.mu.Unlock()
	assert.True(t, c.closed)
}

func TestHub_TrasCerrarNoBloquea(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := notify.NewHub(logger.Nop())
	done := make(chan struct{})
	go func() { hub.Run(ctx); close(done) }()

	c := &fakeClient{}
	hub.Register(ctx, c)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	returned := make(chan struct{})
	late := &fakeClient{}
	go func() {
		bg := context.Background()
		hub.Unregister(bg, c)
		hub.Register(bg, late)
		hub.Unregister(bg, late)
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Register/Unregister siguen bloqueados con el hub cerrado")
	}

	late.mu.Lock()
	assert.True(t, late.closed, "un cliente que llega tarde se cierra")
	late.mu.Unlock()

	err := hub.Send(context.Background(), entity.StockAlert{ProductCode: "P1"})
	assert.ErrorIs(t, err, notify.ErrHubClosed)
}
