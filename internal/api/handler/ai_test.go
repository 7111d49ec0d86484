package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/hexa-dashboard-api/internal/api/handler"
	"github.com/vfg2006/hexa-dashboard-api/internal/domain"
	"github.com/vfg2006/hexa-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/hexa-dashboard-api/internal/usecases/insighting/mocks"
	"github.com/vfg2006/hexa-dashboard-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func TestGenerateInsights(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(m *mocks.MockInsighter)
		expectedStatus int
		expectedCode   string
		expectedMock   bool
	}{
		{
			name: "insights gerados",
			body: `{"metrics":{"totalLeads":50}}`,
			setupMock: func(m *mocks.MockInsighter) {
				m.EXPECT().Enabled().Return(true)
				m.EXPECT().GenerateInsights(gomock.Any(), domain.MetricsSummary{"totalLeads": float64(50)}).
					Return(&domain.InsightsResponse{Insights: []string{"💰 a", "🚀 b", "⚠️ c"}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "sem chave responde 503 com insights demonstrativos",
			body: `{}`,
			setupMock: func(m *mocks.MockInsighter) {
				m.EXPECT().Enabled().Return(false)
				m.EXPECT().GenerateInsights(gomock.Any(), domain.MetricsSummary{}).
					Return(&domain.InsightsResponse{Insights: []string{"a", "b", "c"}, Mock: true}, nil)
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedMock:   true,
		},
		{
			name: "métricas ausentes",
			body: `{}`,
			setupMock: func(m *mocks.MockInsighter) {
				m.EXPECT().Enabled().Return(true)
				m.EXPECT().GenerateInsights(gomock.Any(), gomock.Nil()).Return(nil, insighting.ErrMetricsRequired)
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apiErrors.ErrMissingRequiredData,
		},
		{
			name: "erro de serialização",
			body: `{"metrics":{"x":1}}`,
			setupMock: func(m *mocks.MockInsighter) {
				m.EXPECT().Enabled().Return(true)
				m.EXPECT().GenerateInsights(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   apiErrors.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := mocks.NewMockInsighter(ctrl)
			tt.setupMock(service)

			rec := httptest.NewRecorder()
			handler.GenerateInsights(service).ServeHTTP(rec, newRequest(http.MethodPost, "/v1/ai/insights", tt.body))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeAPIError(rec).Code)
				return
			}

			var body domain.InsightsResponse
			require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &body))
			assert.Len(t, body.Insights, 3)
			assert.Equal(t, tt.expectedMock, body.Mock)
		})
	}
}

func TestChat(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(m *mocks.MockInsighter)
		expectedStatus int
		expectedCode   string
		expectedReply  string
	}{
		{
			name: "resposta do assistente",
			body: `{"message":"Como está meu ROI?","context":{"page":"dashboard"}}`,
			setupMock: func(m *mocks.MockInsighter) {
				m.EXPECT().Chat(gomock.Any(), "Como está meu ROI?", map[string]any{"page": "dashboard"}).
					Return(&domain.ChatReply{Reply: "Seu ROI está em 20%."}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedReply:  "Seu ROI está em 20%.",
		},
		{
			name: "mensagem vazia",
			body: `{"message":""}`,
			setupMock: func(m *mocks.MockInsighter) {
				m.EXPECT().Chat(gomock.Any(), "", gomock.Nil()).Return(nil, insighting.ErrMessageRequired)
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apiErrors.ErrMissingRequiredData,
		},
		{
			name: "falha do gerador",
			body: `{"message":"oi"}`,
			setupMock: func(m *mocks.MockInsighter) {
				m.EXPECT().Chat(gomock.Any(), "oi", gomock.Nil()).Return(nil, errors.New("upstream 500"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   apiErrors.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := mocks.NewMockInsighter(ctrl)
			tt.setupMock(service)

			rec := httptest.NewRecorder()
			handler.Chat(service).ServeHTTP(rec, newRequest(http.MethodPost, "/v1/ai/chat", tt.body))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeAPIError(rec).Code)
				return
			}

			var body domain.ChatReply
			require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedReply, body.Reply)
		})
	}
}
