package main

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/hexa-dashboard-api/infrastructure/crypto"
	"github.com/vfg2006/hexa-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/hexa-dashboard-api/infrastructure/events"
	"github.com/vfg2006/hexa-dashboard-api/infrastructure/integrator"
	"github.com/vfg2006/hexa-dashboard-api/infrastructure/integrator/catalog"
	"github.com/vfg2006/hexa-dashboard-api/infrastructure/integrator/meta"
	"github.com/vfg2006/hexa-dashboard-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/hexa-dashboard-api/infrastructure/migration"
	"github.com/vfg2006/hexa-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/hexa-dashboard-api/internal/config"
	"github.com/vfg2006/hexa-dashboard-api/internal/usecases/syncing"
	"github.com/vfg2006/hexa-dashboard-api/pkg/log"
	"github.com/vfg2006/hexa-dashboard-api/pkg/metrics"
)

// app reúne as dependências compartilhadas pelos comandos
type app struct {
	cfg             *config.Config
	conn            *postgres.Connection
	metrics         *metrics.Metrics
	integrationRepo repository.IntegrationRepository
	campaignRepo    repository.CampaignRepository
	dailyMetricRepo repository.DailyMetricRepository
	providers       *integrator.Registry
	reconciler      *syncing.Reconciler
}

func loadConfig() *config.Config {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Configuração inválida")
	}

	log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	return cfg
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	if cfg.Database.AutoMigrate {
		if err := migration.Up(cfg.Database.DSN); err != nil {
			return nil, errors.Wrap(err, "erro ao migrar o banco de dados")
		}
	}

	conn, err := pgconn(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	sealer, err := crypto.NewSecretBox(cfg.Auth.CredentialsSecret)
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "erro ao preparar criptografia de credenciais")
	}

	providers, err := newProviderRegistry(cfg)
	if err != nil {
		conn.Close()
		return nil, err
	}

	m := metrics.New()
	location := cfg.App.Location

	a := &app{
		cfg:             cfg,
		conn:            conn,
		metrics:         m,
		integrationRepo: repository.NewIntegrationRepository(conn, sealer),
		campaignRepo:    repository.NewCampaignRepository(conn),
		dailyMetricRepo: repository.NewDailyMetricRepository(conn, location),
		providers:       providers,
	}

	a.reconciler = syncing.NewReconciler(
		providers,
		repository.NewReconciliationStore(conn, location),
		a.integrationRepo,
		m,
		location,
		cfg.Sync.MaxConcurrentJobs,
	)

	return a, nil
}

func (a *app) Close() {
	if err := a.conn.Close(); err != nil {
		logrus.WithError(err).Warn("Erro ao fechar conexão com PostgreSQL")
	}
}

// newProviderRegistry registra os adaptadores de demonstração de todas as plataformas.
// No modo live o Facebook passa a usar a Graph API.
func newProviderRegistry(cfg *config.Config) (*integrator.Registry, error) {
	demoProviders, err := catalog.Load(catalog.Options{
		Drift:    cfg.Providers.DemoDrift,
		Location: cfg.App.Location,
	})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao carregar catálogo de campanhas de demonstração")
	}

	registry := integrator.NewRegistry()
	for _, provider := range demoProviders {
		registry.Register(provider)
	}

	if cfg.Providers.FacebookMode == config.ProviderModeLive {
		registry.Register(meta.New(metaclient.NewClient(cfg.Meta)))
		logrus.Info("Adaptador do Facebook em modo live (Graph API)")
	}

	logrus.WithField("platforms", registry.Platforms()).Info("Adaptadores de plataforma registrados")
	return registry, nil
}

// newPublisher cria o despachante de eventos com o hub websocket e, se habilitado, o histórico no ClickHouse
func newPublisher(ctx context.Context, cfg *config.Config, m *metrics.Metrics, hub *events.Hub) (*events.Dispatcher, func()) {
	sinks := []events.Sink{hub}
	cleanup := func() {}

	if cfg.Events.ClickHouseEnabled {
		sink, err := events.NewClickHouseSink(ctx, cfg.ClickHouse)
		if err != nil {
			logrus.WithError(err).Error("Erro ao conectar no ClickHouse, histórico de eventos desabilitado")
		} else {
			sinks = append(sinks, sink)
			cleanup = func() {
				if err := sink.Close(); err != nil {
					logrus.WithError(err).Warn("Erro ao fechar conexão com ClickHouse")
				}
			}
		}
	}

	return events.NewDispatcher(cfg.Events.BufferSize, m, sinks...), cleanup
}

func shutdownDispatcher(dispatcher *events.Dispatcher) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := dispatcher.Shutdown(ctx); err != nil {
		logrus.WithError(err).Warn("Fila de eventos não esvaziou a tempo")
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) (*postgres.Connection, error) {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn, nil
}
