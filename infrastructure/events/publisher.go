package events

import (
	"context"
	"errors"
	"time"
)

var (
	ErrQueueFull        = errors.New("fila de eventos cheia")
	ErrDispatcherClosed = errors.New("despachante de eventos encerrado")
)

// Publisher entrega eventos de domínio aos assinantes sem bloquear quem publica
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

type Event struct {
	Topic      string    `json:"topic"`
	Payload    any       `json:"payload"`
	OccurredAt time.Time `json:"timestamp"`
}

// Sink é um destino de eventos (websocket, histórico analítico)
type Sink interface {
	Name() string
	Deliver(ctx context.Context, event Event) error
}
