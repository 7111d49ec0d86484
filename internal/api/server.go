package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/hexa-dashboard-api/internal/api/handler"
	"github.com/vfg2006/hexa-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/hexa-dashboard-api/internal/config"
	"github.com/vfg2006/hexa-dashboard-api/internal/usecases/dashboarding"
	"github.com/vfg2006/hexa-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/hexa-dashboard-api/internal/usecases/integrating"
	"github.com/vfg2006/hexa-dashboard-api/pkg/metrics"
	"github.com/vfg2006/hexa-dashboard-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

// Services agrupa as dependências expostas pela API
type Services struct {
	Dashboard    dashboarding.Dashboarder
	Integrations integrating.Integrator
	Insights     insighting.Insighter
	Sync         handler.SyncController
	Realtime     http.Handler
	Metrics      *metrics.Metrics
}

func New(cfg *config.Config, services Services) (*Server, error) {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           NewHandler(cfg, services),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}, nil
}

// NewHandler monta as rotas e a cadeia de middlewares globais
func NewHandler(cfg *config.Config, services Services) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Metrics(services.Metrics.Handler())...),
		router.WithRoutes(handler.Dashboard(services.Dashboard)...),
		router.WithRoutes(handler.Integrations(services.Integrations)...),
		router.WithRoutes(handler.AI(services.Insights)...),
		router.WithRoutes(handler.Realtime(services.Realtime)...),
		router.WithRoutes(handler.CronJobs(services.Sync)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(services.Metrics),
		middleware.Cors(cfg.Server.AllowedOrigins),
		middleware.RateLimitMiddleware(cfg.Server.RateLimit),
		middleware.AuthMiddleware(cfg.Auth.Secret),
	}

	return alice.New(middlewares...).Then(rt)
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": shutdownTimeout.String(),
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
