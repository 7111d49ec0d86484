package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/hexa-dashboard-api/pkg/apiErrors"
)

func TestRateLimit(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	handler := rateLimit(2, clock)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	do := func(target, remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("bloqueia após o limite por IP", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, do("/v1/campaigns", "10.0.0.1:5000").Code)
		assert.Equal(t, http.StatusNoContent, do("/v1/leads", "10.0.0.1:5001").Code)

		rec := do("/v1/campaigns", "10.0.0.1:5002")
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "30", rec.Header().Get("Retry-After"))

		var apiErr apiErrors.APIError
		require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &apiErr))
		assert.Equal(t, apiErrors.ErrTooManyRequests, apiErr.Code)
	})

	t.Run("outro IP tem seu próprio limite", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, do("/v1/campaigns", "10.0.0.2:5000").Code)
	})

	t.Run("rotas fora de /v1 não são limitadas", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, do("/healthcheck", "10.0.0.1:5003").Code)
		assert.Equal(t, http.StatusNoContent, do("/metrics", "10.0.0.1:5004").Code)
	})

	t.Run("libera de novo após o intervalo", func(t *testing.T) {
		now = now.Add(30 * time.Second)
		assert.Equal(t, http.StatusNoContent, do("/v1/campaigns", "10.0.0.1:5005").Code)
		assert.Equal(t, http.StatusTooManyRequests, do("/v1/campaigns", "10.0.0.1:5006").Code)
	})
}

func TestRateLimit_Desligado(t *testing.T) {
	handler := RateLimitMiddleware(0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for i := 0; i < 50; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/campaigns", nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	}
}

func TestIPRateLimiter_DescartaVisitantesParados(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	limiter := newIPRateLimiter(10, func() time.Time { return now })

	assert.True(t, limiter.allow("10.0.0.1"))
	assert.True(t, limiter.allow("10.0.0.2"))
	require.Len(t, limiter.visitors, 2)

	now = now.Add(visitorTTL + time.Second)
	assert.True(t, limiter.allow("10.0.0.2"))

	assert.Len(t, limiter.visitors, 1)
	assert.Contains(t, limiter.visitors, "10.0.0.2")
}
