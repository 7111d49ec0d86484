package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/hexa-dashboard-api/internal/domain"
	"github.com/vfg2006/hexa-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/hexa-dashboard-api/pkg/apiErrors"
)

type insightsRequest struct {
	Metrics domain.MetricsSummary `json:"metrics"`
}

type chatRequest struct {
	Message string         `json:"message"`
	Context map[string]any `json:"context"`
}

// GenerateInsights responde 503 com insights demonstrativos quando a IA não está configurada
func GenerateInsights(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := sessionUser(w, r); !ok {
			return
		}

		var request insightsRequest
		if !decodeBody(w, r, &request) {
			return
		}

		if !service.Enabled() {
			summary := request.Metrics
			if summary == nil {
				summary = domain.MetricsSummary{}
			}

			response, err := service.GenerateInsights(r.Context(), summary)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrAIUnavailable, "Serviço de IA indisponível", nil)
				return
			}
			writeJSON(w, http.StatusServiceUnavailable, response)
			return
		}

		response, err := service.GenerateInsights(r.Context(), request.Metrics)
		if err != nil {
			if errors.Is(err, insighting.ErrMetricsRequired) {
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Métricas são obrigatórias", nil)
				return
			}

			logrus.WithError(err).Error("Erro ao gerar insights")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar insights", nil)
			return
		}

		writeJSON(w, http.StatusOK, response)
	})
}

func Chat(service insighting.Insighter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := sessionUser(w, r); !ok {
			return
		}

		var request chatRequest
		if !decodeBody(w, r, &request) {
			return
		}

		reply, err := service.Chat(r.Context(), request.Message, request.Context)
		if err != nil {
			if errors.Is(err, insighting.ErrMessageRequired) {
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Mensagem é obrigatória", nil)
				return
			}

			logrus.WithError(err).Error("Erro ao processar mensagem do chat")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao processar mensagem do chat", nil)
			return
		}

		writeJSON(w, http.StatusOK, reply)
	})
}
