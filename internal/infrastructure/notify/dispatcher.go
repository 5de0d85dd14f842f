package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/joachez17/bodega-api/internal/domain/entity"
	"github.com/joachez17/bodega-api/pkg/logger"
)

// ErrQueueFull la cola de alertas está llena; la alerta se descarta.
var ErrQueueFull = errors.New("cola de alertas llena")

// ErrDispatcherStopped el dispatcher ya no acepta alertas.
var ErrDispatcherStopped = errors.New("dispatcher detenido")

// Sender un canal de entrega de alertas.
type Sender interface {
	Name() string
	Send(ctx context.Context, alert entity.StockAlert) error
}

// DispatcherConfig cola y límite de envíos por segundo.
type DispatcherConfig struct {
	QueueSize   int
	RatePerSec  int
	Burst       int
	SendTimeout time.Duration
}

// Dispatcher entrega las alertas en segundo plano: Send solo encola, un worker las reparte a
// todos los senders en paralelo respetando el límite de envíos. Implementa notification.AlertSender,
// así el movimiento confirmado nunca espera a la red.
type Dispatcher struct {
	senders []Sender
	queue   chan entity.StockAlert
	limiter *rate.Limiter
	timeout time.Duration
	log     *logger.Logger

	mu      sync.RWMutex
	stopped bool
	done    chan struct{}
}

// NewDispatcher construye el dispatcher. Llamar Start antes de enviar.
func NewDispatcher(cfg DispatcherConfig, log *logger.Logger, senders ...Sender) *Dispatcher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	limit := rate.Inf
	if cfg.RatePerSec > 0 {
		limit = rate.Limit(cfg.RatePerSec)
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 5 * time.Second
	}
	return &Dispatcher{
		senders: senders,
		queue:   make(chan entity.StockAlert, cfg.QueueSize),
		limiter: rate.NewLimiter(limit, cfg.Burst),
		timeout: cfg.SendTimeout,
		log:     log,
		done:    make(chan struct{}),
	}
}

// Send encola la alerta sin bloquear.
func (d *Dispatcher) Send(_ context.Context, alert entity.StockAlert) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return ErrDispatcherStopped
	}
	select {
	case d.queue <- alert:
		return nil
	default:
		return ErrQueueFull
	}
}

// Start lanza el worker. ctx cancela las esperas del limitador y los envíos en curso.
func (d *Dispatcher) Start(ctx context.Context) {
	go func() {
		defer close(d.done)
		for alert := range d.queue {
			if err := d.limiter.Wait(ctx); err != nil {
				d.log.Warn().Err(err).Str("product_code", alert.ProductCode).Msg("alerta descartada")
				continue
			}
			d.deliver(ctx, alert)
		}
	}()
}

func (d *Dispatcher) deliver(ctx context.Context, alert entity.StockAlert) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	var g errgroup.Group
	for _, s := range d.senders {
		g.Go(func() error {
			if err := s.Send(ctx, alert); err != nil {
				d.log.Error().Err(err).
					Str("sender", s.Name()).
					Str("product_code", alert.ProductCode).
					Msg("no se pudo entregar alerta")
				return err
			}
			return nil
		})
	}
	_ = g.Wait()
}

// Stop deja de aceptar alertas y espera a que se entreguen las encoladas (o a que ctx venza).
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		close(d.queue)
	}
	d.mu.Unlock()
	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
