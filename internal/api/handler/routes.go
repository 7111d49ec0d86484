package handler

import (
	"net/http"

	"github.com/vfg2006/hexa-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/hexa-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/hexa-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/hexa-dashboard-api/internal/usecases/integrating"
	"github.com/vfg2006/hexa-dashboard-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

// Metrics expõe o registry do Prometheus
func Metrics(handler http.Handler) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: handler,
		},
	}
}

func Dashboard(service dashboarding.Dashboarder) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dashboard/metrics",
			Method:      http.MethodGet,
			Handler:     GetDashboardMetrics(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Authenticated()},
		},
		{
			Path:        "/v1/campaigns",
			Method:      http.MethodGet,
			Handler:     ListCampaigns(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Authenticated()},
		},
		{
			Path:        "/v1/leads",
			Method:      http.MethodGet,
			Handler:     ListLeads(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Authenticated()},
		},
	}
}

func Integrations(service integrating.Integrator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/integrations",
			Method:      http.MethodGet,
			Handler:     ListIntegrations(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Authenticated()},
		},
		{
			Path:        "/v1/integrations",
			Method:      http.MethodPost,
			Handler:     ConnectIntegration(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Authenticated()},
		},
		{
			Path:        "/v1/integrations/:id",
			Method:      http.MethodDelete,
			Handler:     DisconnectIntegration(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Authenticated()},
		},
		{
			Path:        "/v1/integrations/:id/sync",
			Method:      http.MethodPost,
			Handler:     SyncIntegrationNow(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Authenticated()},
		},
	}
}

func AI(service insighting.Insighter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/ai/insights",
			Method:      http.MethodPost,
			Handler:     GenerateInsights(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Authenticated()},
		},
		{
			Path:        "/v1/ai/chat",
			Method:      http.MethodPost,
			Handler:     Chat(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Authenticated()},
		},
	}
}

// Realtime registra o websocket do dashboard; o token vem na query string
func Realtime(hub http.Handler) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/ws",
			Method:      http.MethodGet,
			Handler:     hub,
			Middlewares: []func(http.Handler) http.Handler{middleware.Authenticated()},
		},
	}
}

func CronJobs(controller SyncController) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/sync/run",
			Method:      http.MethodPost,
			Handler:     RunSync(controller),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetSyncStatus(controller),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
