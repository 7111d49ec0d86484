package events

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialHub(t *testing.T, server *httptest.Server, origin string) (*websocket.Conn, *http.Response, error) {
	t.Helper()

	header := http.Header{}
	if origin != "" {
		header.Set("Origin", origin)
	}
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	return websocket.DefaultDialer.Dial(url, header)
}

func TestHub_Deliver(t *testing.T) {
	hub := NewHub([]string{"http://localhost:5173"})
	server := httptest.NewServer(hub)
	defer server.Close()
	defer hub.Close()

	conn, _, err := dialHub(t, server, "http://localhost:5173")
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)

	occurredAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	err = hub.Deliver(context.Background(), Event{
		Topic:      "dashboard_update",
		Payload:    map[string]any{"leads": 5, "revenue": 450.5},
		OccurredAt: occurredAt,
	})
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"topic":"dashboard_update","payload":{"leads":5,"revenue":450.5},"timestamp":"2025-03-10T12:00:00Z"}`,
		string(message),
	)
}

func TestHub_OrigemNaoPermitida(t *testing.T) {
	hub := NewHub([]string{"http://localhost:5173"})
	server := httptest.NewServer(hub)
	defer server.Close()

	_, resp, err := dialHub(t, server, "http://evil.example")

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, 0, hub.Clients())
}

func TestHub_DesconexaoRemoveCliente(t *testing.T) {
	hub := NewHub([]string{"*"})
	server := httptest.NewServer(hub)
	defer server.Close()

	conn, _, err := dialHub(t, server, "http://qualquer.origem")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool { return hub.Clients() == 0 }, time.Second, 5*time.Millisecond)
}

func TestHub_CloseRecusaNovosClientes(t *testing.T) {
	hub := NewHub(nil)
	server := httptest.NewServer(hub)
	defer server.Close()

	hub.Close()

	conn, _, err := dialHub(t, server, "")
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()

	assert.Error(t, err)
	assert.Equal(t, 0, hub.Clients())
}
