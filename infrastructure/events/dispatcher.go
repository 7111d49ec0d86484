package events

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/hexa-dashboard-api/pkg/metrics"
)

const deliverTimeout = 5 * time.Second

// Dispatcher enfileira eventos e os entrega aos sinks numa goroutine própria.
// Com a fila cheia o evento é descartado e Publish devolve ErrQueueFull.
type Dispatcher struct {
	queue   chan Event
	sinks   []Sink
	metrics *metrics.Metrics
	now     func() time.Time

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(bufferSize int, m *metrics.Metrics, sinks ...Sink) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = 1
	}

	d := &Dispatcher{
		queue:   make(chan Event, bufferSize),
		sinks:   sinks,
		metrics: m,
		now:     time.Now,
		done:    make(chan struct{}),
	}
	go d.run()

	return d
}

func (d *Dispatcher) Publish(_ context.Context, topic string, payload any) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrDispatcherClosed
	}

	event := Event{Topic: topic, Payload: payload, OccurredAt: d.now()}

	select {
	case d.queue <- event:
		d.metrics.RecordEventPublished(topic)
		return nil
	default:
		d.metrics.RecordEventDropped(topic)
		logrus.WithField("topic", topic).Warn("Fila de eventos cheia, evento descartado")
		return ErrQueueFull
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for event := range d.queue {
		d.deliver(event)
	}
}

func (d *Dispatcher) deliver(event Event) {
	for _, sink := range d.sinks {
		ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
		if err := sink.Deliver(ctx, event); err != nil {
			logrus.WithFields(logrus.Fields{
				"sink":  sink.Name(),
				"topic": event.Topic,
			}).WithError(err).Warn("Erro ao entregar evento")
		}
		cancel()
	}
}

// Shutdown recusa novos eventos e espera a fila esvaziar
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
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
