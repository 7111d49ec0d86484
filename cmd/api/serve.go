package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/hexa-dashboard-api/infrastructure/events"
	"github.com/vfg2006/hexa-dashboard-api/infrastructure/integrator/gemini"
	"github.com/vfg2006/hexa-dashboard-api/internal/api"
	"github.com/vfg2006/hexa-dashboard-api/internal/scheduler"
	"github.com/vfg2006/hexa-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/hexa-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/hexa-dashboard-api/internal/usecases/integrating"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Inicia a API HTTP e o agendador de sincronização",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	hub := events.NewHub(cfg.Server.AllowedOrigins)
	defer hub.Close()

	dispatcher, closeSinks := newPublisher(ctx, cfg, a.metrics, hub)
	defer closeSinks()
	defer shutdownDispatcher(dispatcher)

	syncService := scheduler.NewSyncService(cfg.Sync, cfg.App.Location, a.reconciler, dispatcher, a.metrics)
	if err := syncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização")
	} else if cfg.Sync.Enabled {
		logrus.Info("Agendador de sincronização iniciado com sucesso")
	}
	defer syncService.Stop()

	dashboardService := dashboarding.NewService(a.dailyMetricRepo, a.campaignRepo, a.integrationRepo, cfg.App.Location)
	integrationService := integrating.NewService(a.providers, a.integrationRepo, a.reconciler, dispatcher)
	insightService := insighting.NewService(gemini.NewClient(cfg.AI))

	server, err := api.New(cfg, api.Services{
		Dashboard:    dashboardService,
		Integrations: integrationService,
		Insights:     insightService,
		Sync:         syncService,
		Realtime:     hub,
		Metrics:      a.metrics,
	})
	if err != nil {
		return err
	}

	return server.Run(ctx)
}
