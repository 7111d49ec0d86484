package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/hexa-dashboard-api/pkg/metrics"
)

type recordingSink struct {
	name    string
	mu      sync.Mutex
	events  []Event
	err     error
	release chan struct{}
}

func (s *recordingSink) Name() string { return s.name }

func (s *recordingSink) Deliver(_ context.Context, event Event) error {
	if s.release != nil {
		<-s.release
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return s.err
}

func (s *recordingSink) received() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

func TestDispatcher_PublishEntregaATodosOsSinks(t *testing.T) {
	failing := &recordingSink{name: "falho", err: errors.New("indisponível")}
	healthy := &recordingSink{name: "saudável"}
	m := metrics.New()

	dispatcher := NewDispatcher(8, m, failing, healthy)
	fixed := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	dispatcher.now = func() time.Time { return fixed }

	require.NoError(t, dispatcher.Publish(context.Background(), "dashboard_update", map[string]any{"leads": 5}))
	require.NoError(t, dispatcher.Publish(context.Background(), "notification", "ok"))
	require.NoError(t, dispatcher.Shutdown(context.Background()))

	events := healthy.received()
	require.Len(t, events, 2)
	assert.Equal(t, "dashboard_update", events[0].Topic)
	assert.Equal(t, fixed, events[0].OccurredAt)
	assert.Len(t, failing.received(), 2, "erro num sink não impede os demais")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsPublishedTotal.WithLabelValues("dashboard_update")))
}

func TestDispatcher_FilaCheia(t *testing.T) {
	blocked := &recordingSink{name: "bloqueado", release: make(chan struct{})}
	m := metrics.New()
	dispatcher := NewDispatcher(1, m, blocked)

	// o primeiro evento fica preso no sink, o segundo ocupa a fila
	require.NoError(t, dispatcher.Publish(context.Background(), "a", 1))
	require.Eventually(t, func() bool { return len(dispatcher.queue) == 0 }, time.Second, 5*time.Millisecond)
	require.NoError(t, dispatcher.Publish(context.Background(), "b", 2))

	err := dispatcher.Publish(context.Background(), "c", 3)

	assert.ErrorIs(t, err, ErrQueueFull)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsDroppedTotal.WithLabelValues("c")))

	close(blocked.release)
	require.NoError(t, dispatcher.Shutdown(context.Background()))
	assert.Len(t, blocked.received(), 2)
}

func TestDispatcher_Shutdown(t *testing.T) {
	t.Run("Publicar depois de encerrar", func(t *testing.T) {
		dispatcher := NewDispatcher(4, nil)
		require.NoError(t, dispatcher.Shutdown(context.Background()))
		require.NoError(t, dispatcher.Shutdown(context.Background()))

		err := dispatcher.Publish(context.Background(), "x", nil)

		assert.ErrorIs(t, err, ErrDispatcherClosed)
	})

	t.Run("Prazo esgotado esperando a fila", func(t *testing.T) {
		blocked := &recordingSink{name: "bloqueado", release: make(chan struct{})}
		defer close(blocked.release)

		dispatcher := NewDispatcher(4, nil, blocked)
		require.NoError(t, dispatcher.Publish(context.Background(), "x", nil))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		assert.ErrorIs(t, dispatcher.Shutdown(ctx), context.DeadlineExceeded)
	})
}
