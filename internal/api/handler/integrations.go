package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/hexa-dashboard-api/internal/domain"
	"github.com/vfg2006/hexa-dashboard-api/internal/usecases/integrating"
	"github.com/vfg2006/hexa-dashboard-api/pkg/apiErrors"
)

type connectIntegrationRequest struct {
	Platform string `json:"platform"`
	AuthCode string `json:"authCode"`
}

func ListIntegrations(service integrating.Integrator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := sessionUser(w, r)
		if !ok {
			return
		}

		integrations, err := service.List(r.Context(), userID)
		if err != nil {
			writeIntegrationError(w, err, "Erro ao listar integrações")
			return
		}

		if integrations == nil {
			integrations = []*domain.IntegrationSummary{}
		}
		writeJSON(w, http.StatusOK, integrations)
	})
}

func ConnectIntegration(service integrating.Integrator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ConnectIntegration")

		userID, ok := sessionUser(w, r)
		if !ok {
			return
		}

		var request connectIntegrationRequest
		if !decodeBody(w, r, &request) {
			return
		}

		if request.Platform == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Plataforma é obrigatória", nil)
			return
		}

		integration, err := service.Connect(r.Context(), userID, request.Platform, request.AuthCode)
		if err != nil {
			writeIntegrationError(w, err, "Erro ao conectar plataforma")
			return
		}

		writeJSON(w, http.StatusCreated, integration)
	})
}

func DisconnectIntegration(service integrating.Integrator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := sessionUser(w, r)
		if !ok {
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da integração é obrigatório", nil)
			return
		}

		if err := service.Disconnect(r.Context(), userID, id); err != nil {
			writeIntegrationError(w, err, "Erro ao desconectar integração")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

func SyncIntegrationNow(service integrating.Integrator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := sessionUser(w, r)
		if !ok {
			return
		}

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da integração é obrigatório", nil)
			return
		}

		result, err := service.SyncNow(r.Context(), userID, id)
		if err != nil {
			writeIntegrationError(w, err, "Erro ao sincronizar integração")
			return
		}

		writeJSON(w, http.StatusOK, result)
	})
}

func writeIntegrationError(w http.ResponseWriter, err error, message string) {
	logrus.WithError(err).Error(message)

	var integrationErr *integrating.IntegrationError
	if errors.As(err, &integrationErr) {
		var details map[string]any
		if integrationErr.IntegrationID != "" {
			details = map[string]any{"integration_id": integrationErr.IntegrationID}
		}
		apiErrors.WriteError(w, integrationErr.Code, integrationErr.Error(), details)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, message, nil)
}
