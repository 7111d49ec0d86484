package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/hexa-dashboard-api/internal/domain"
	"github.com/vfg2006/hexa-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/hexa-dashboard-api/pkg/apiErrors"
)

func GetDashboardMetrics(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := sessionUser(w, r)
		if !ok {
			return
		}

		metrics, err := service.GetDashboardMetrics(r.Context(), userID)
		if err != nil {
			writeAggregationError(w, err, "Erro ao carregar métricas do dashboard")
			return
		}

		writeJSON(w, http.StatusOK, metrics)
	})
}

func ListCampaigns(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := sessionUser(w, r)
		if !ok {
			return
		}

		campaigns, err := service.ListCampaigns(r.Context(), userID)
		if err != nil {
			writeAggregationError(w, err, "Erro ao listar campanhas")
			return
		}

		if campaigns == nil {
			campaigns = []*domain.CampaignOverview{}
		}
		writeJSON(w, http.StatusOK, campaigns)
	})
}

func ListLeads(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := sessionUser(w, r)
		if !ok {
			return
		}

		leads, err := service.ListLeads(r.Context(), userID)
		if err != nil {
			writeAggregationError(w, err, "Erro ao listar leads")
			return
		}

		if leads == nil {
			leads = []*domain.LeadEntry{}
		}
		writeJSON(w, http.StatusOK, leads)
	})
}

// writeAggregationError mapeia falhas de leitura do dashboard para 503
func writeAggregationError(w http.ResponseWriter, err error, message string) {
	var aggregationErr *domain.AggregationError
	if errors.As(err, &aggregationErr) {
		logrus.WithFields(logrus.Fields{
			"user_id": aggregationErr.UserID,
			"step":    aggregationErr.Step,
		}).WithError(err).Error(message)

		apiErrors.WriteError(w, apiErrors.ErrMetricsUnavailable, message, map[string]any{
			"step": aggregationErr.Step,
		})
		return
	}

	logrus.WithError(err).Error(message)
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, message, nil)
}
