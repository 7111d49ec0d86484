package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/hexa-dashboard-api/internal/domain"
)

func TestParseToken(t *testing.T) {
	key := []byte("segredo")

	sign := func(method jwt.SigningMethod, signingKey any, subject string) string {
		claims := &domain.Claims{
			Role: domain.RoleAdmin,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   subject,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(method, claims).SignedString(signingKey)
		require.NoError(t, err)
		return token
	}

	t.Run("token válido", func(t *testing.T) {
		claims, err := ParseToken(sign(jwt.SigningMethodHS256, key, "user-1"), key)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID())
		assert.True(t, claims.IsAdmin())
	})

	t.Run("algoritmo none é recusado", func(t *testing.T) {
		_, err := ParseToken(sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, "user-1"), key)
		assert.Error(t, err)
	})

	t.Run("subject ausente", func(t *testing.T) {
		_, err := ParseToken(sign(jwt.SigningMethodHS256, key, ""), key)
		assert.ErrorIs(t, err, errMissingSubject)
	})
}

func TestTokenFromRequest(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		header   string
		expected string
		ok       bool
	}{
		{name: "bearer no header", target: "/v1/leads", header: "Bearer abc", expected: "abc", ok: true},
		{name: "header sem bearer", target: "/v1/leads", header: "abc"},
		{name: "bearer vazio", target: "/v1/leads", header: "Bearer "},
		{name: "query no websocket", target: "/v1/ws?token=xyz", expected: "xyz", ok: true},
		{name: "query fora do websocket", target: "/v1/leads?token=xyz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			token, ok := tokenFromRequest(req)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, token)
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name           string
		claims         *domain.Claims
		expectedStatus int
	}{
		{name: "sem sessão", expectedStatus: http.StatusUnauthorized},
		{name: "usuário comum", claims: &domain.Claims{Role: domain.RoleUser}, expectedStatus: http.StatusForbidden},
		{name: "administrador", claims: &domain.Claims{Role: domain.RoleAdmin}, expectedStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil)
			if tt.claims != nil {
				req = req.WithContext(WithClaims(req.Context(), tt.claims))
			}

			rec := httptest.NewRecorder()
			AdminOnly()(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestLogPanicMiddleware(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("falha inesperada")
	})

	rec := httptest.NewRecorder()
	LogPanicMiddleware()(panicking).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/leads", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "SRV_001")
}

func TestLoggingResponseWriterKeepsFirstStatus(t *testing.T) {
	lrw := newLoggingResponseWriter(httptest.NewRecorder())

	lrw.WriteHeader(http.StatusConflict)
	lrw.WriteHeader(http.StatusOK)

	assert.Equal(t, http.StatusConflict, lrw.statusCode)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "500 µs", formatDuration(500*time.Microsecond))
	assert.Equal(t, "42 ms", formatDuration(42*time.Millisecond))
	assert.Equal(t, "1.50 s", formatDuration(1500*time.Millisecond))
}
