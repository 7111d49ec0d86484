package gemini

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/hexa-dashboard-api/internal/config"
)

func TestClient_GenerateContent(t *testing.T) {
	tests := []struct {
		name        string
		apiKey      string
		status      int
		body        string
		expected    string
		expectedErr error
	}{
		{
			name:     "Texto do primeiro candidato",
			apiKey:   "key",
			status:   http.StatusOK,
			body:     `{"candidates":[{"content":{"parts":[{"text":"[\"💰 Aumente o budget\"]"}]}}]}`,
			expected: `["💰 Aumente o budget"]`,
		},
		{
			name:        "Sem chave configurada",
			expectedErr: ErrMissingAPIKey,
		},
		{
			name:        "Limite de requisições",
			apiKey:      "key",
			status:      http.StatusTooManyRequests,
			body:        `{"error":{"code":429}}`,
			expectedErr: ErrRateLimited,
		},
		{
			name:        "Resposta vazia",
			apiKey:      "key",
			status:      http.StatusOK,
			body:        `{"candidates":[]}`,
			expectedErr: ErrEmptyResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotKey, gotBody string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				data, _ := io.ReadAll(r.Body)
				gotPath = r.URL.Path
				gotKey = r.Header.Get("x-goog-api-key")
				gotBody = string(data)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(config.AI{
				APIKey:  tt.apiKey,
				BaseURL: server.URL,
				Model:   "gemini-2.0-flash",
				Timeout: time.Second,
			})

			text, err := client.GenerateContent(context.Background(), "Analise")
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, text)
			assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", gotPath)
			assert.Equal(t, "key", gotKey)
			assert.JSONEq(t, `{"contents":[{"parts":[{"text":"Analise"}]}]}`, gotBody)
		})
	}
}
