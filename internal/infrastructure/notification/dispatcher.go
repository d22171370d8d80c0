package notification

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/wms-api/internal/application/ports"
)

// Sink transporte de salida de las notificaciones (Kafka, log).
type Sink interface {
	Send(ctx context.Context, topic, key string, payload []byte) error
	Close() error
}

// Dispatcher implementa ports.StatusNotifier con un buffer acotado y un worker.
// Notify nunca bloquea: si el buffer está lleno el evento se descarta con un warning.
// Los errores del sink se registran y no llegan al motor de pedidos.
type Dispatcher struct {
	sink    Sink
	timeout time.Duration
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	events chan ports.StatusChange
	done   chan struct{}
}

var _ ports.StatusNotifier = (*Dispatcher)(nil)

// NewDispatcher crea el despachador. Run debe ejecutarse en su propia goroutine.
func NewDispatcher(sink Sink, bufferSize int, timeout time.Duration, log zerolog.Logger) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Dispatcher{
		sink:    sink,
		timeout: timeout,
		log:     log,
		events:  make(chan ports.StatusChange, bufferSize),
		done:    make(chan struct{}),
	}
}

// Notify encola el evento sin bloquear.
func (d *Dispatcher) Notify(_ context.Context, c ports.StatusChange) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.log.Warn().Str("order_id", c.OrderID).Msg("notificador cerrado, evento descartado")
		return
	}
	select {
	case d.events <- c:
	default:
		d.log.Warn().Str("order_id", c.OrderID).Str("new_status", string(c.NewStatus)).
			Msg("buffer de notificaciones lleno, evento descartado")
	}
}

// Run consume eventos hasta Close o hasta que ctx termine; en ambos casos vacía lo pendiente.
func (d *Dispatcher) Run(ctx context.Context) error {
	defer close(d.done)
	for {
		select {
		case c, ok := <-d.events:
			if !ok {
				return nil
			}
			d.deliver(c)
		case <-ctx.Done():
			d.drain()
			return nil
		}
	}
}

func (d *Dispatcher) drain() {
	for {
		select {
		case c, ok := <-d.events:
			if !ok {
				return
			}
			d.deliver(c)
		default:
			return
		}
	}
}

// Close deja de aceptar eventos, espera a que Run vacíe el buffer (o a que ctx expire)
// y cierra el sink.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.events)
	d.mu.Unlock()

	select {
	case <-d.done:
	case <-ctx.Done():
	}
	return d.sink.Close()
}

func (d *Dispatcher) deliver(c ports.StatusChange) {
	log := d.log.With().Str("order_id", c.OrderID).
		Str("from", string(c.OldStatus)).Str("to", string(c.NewStatus)).Logger()

	route, ok := RouteFor(c.NewStatus)
	if !ok {
		log.Info().Msg("cambio de estado sin destino de notificación")
		return
	}
	payload, err := json.Marshal(newMessage(route, c))
	if err != nil {
		log.Error().Err(err).Msg("serializar notificación")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	if err := d.sink.Send(ctx, route.Topic, route.Key, payload); err != nil {
		log.Warn().Err(err).Str("topic", route.Topic).Msg("no se pudo publicar la notificación")
		return
	}
	log.Debug().Str("topic", route.Topic).Str("key", route.Key).Msg("notificación publicada")
}
