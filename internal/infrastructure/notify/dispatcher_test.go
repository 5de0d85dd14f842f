package notify_test

import (
	"context"
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

type memSender struct {
	name  string
	err   error
	block chan struct{}
	mu    sync.Mutex
	got   []entity.StockAlert
}

func (s *memSender) Name() string { return s.name }

func (s *memSender) Send(_ context.Context, a entity.StockAlert) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, a)
	return s.err
}

func (s *memSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.got)
}

func TestDispatcher_RepartirATodos(t *testing.T) {
	a := &memSender{name: "a"}
	b := &memSender{name: "b", err: errors.New("caído")}
	d := notify.NewDispatcher(notify.DispatcherConfig{QueueSize: 8}, logger.Nop(), a, b)
	d.Start(context.Background())

	for _, code := range []string{"P1", "P2", "P3"} {
		require.NoError(t, d.Send(context.Background(), entity.StockAlert{ProductCode: code}))
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, d.Stop(ctx))

	assert.Equal(t, 3, a.count())
	assert.Equal(t, 3, b.count(), "un sender con error no frena a los demás")
	assert.Equal(t, "P1", a.got[0].ProductCode)
}

func TestDispatcher_ColaLlena(t *testing.T) {
	block := make(chan struct{})
	s := &memSender{name: "lento", block: block}
	d := notify.NewDispatcher(notify.DispatcherConfig{QueueSize: 1}, logger.Nop(), s)
	d.Start(context.Background())

	require.NoError(t, d.Send(context.Background(), entity.StockAlert{ProductCode: "1"}))
	// el worker toma la primera y queda bloqueado; la segunda ocupa la cola
	assert.Eventually(t, func() bool {
		return d.Send(context.Background(), entity.StockAlert{ProductCode: "2"}) == nil
	}, time.Second, 5*time.Millisecond)
	assert.ErrorIs(t, d.Send(context.Background(), entity.StockAlert{ProductCode: "3"}), notify.ErrQueueFull)

	close(block)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, d.Stop(ctx))
	assert.Equal(t, 2, s.count())
}

func TestDispatcher_DetenidoRechaza(t *testing.T) {
	d := notify.NewDispatcher(notify.DispatcherConfig{}, logger.Nop())
	d.Start(context.Background())
	require.NoError(t, d.Stop(context.Background()))
	assert.ErrorIs(t, d.Send(context.Background(), entity.StockAlert{}), notify.ErrDispatcherStopped)
	assert.NoError(t, d.Stop(context.Background()), "Stop es idempotente")
}
