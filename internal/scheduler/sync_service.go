package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/hexa-dashboard-api/infrastructure/events"
	"github.com/vfg2006/hexa-dashboard-api/internal/config"
	"github.com/vfg2006/hexa-dashboard-api/internal/domain"
	"github.com/vfg2006/hexa-dashboard-api/internal/usecases/syncing"
	"github.com/vfg2006/hexa-dashboard-api/pkg/metrics"
)

var (
	// ErrPassRunning indica que um ciclo anterior ainda não terminou
	ErrPassRunning = errors.New("ciclo de sincronização já em andamento")
	ErrStopped     = errors.New("agendador de sincronização parado")
)

const (
	passResultSuccess = "success"
	passResultEmpty   = "empty"
	passResultError   = "error"
)

// SyncService dispara o ciclo de reconciliação em intervalo fixo e publica os deltas
type SyncService struct {
	scheduler    *gocron.Scheduler
	config       config.Sync
	synchronizer syncing.Synchronizer
	publisher    events.Publisher
	metrics      *metrics.Metrics
	now          func() time.Time

	// contexto dos ciclos; só é cancelado quando o Stop estoura o tempo de espera
	passCtx    context.Context
	cancelPass context.CancelFunc
	passWG     sync.WaitGroup
	stopOnce   sync.Once

	syncMutex           sync.Mutex
	syncRunning         bool
	stopped             bool
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastOutcome         *domain.SyncOutcome
	lastError           string
}

func NewSyncService(
	cfg config.Sync,
	location *time.Location,
	synchronizer syncing.Synchronizer,
	publisher events.Publisher,
	m *metrics.Metrics,
) *SyncService {
	if location == nil {
		location = time.Local
	}

	passCtx, cancel := context.WithCancel(context.Background())

	logrus.WithFields(logrus.Fields{
		"sync_enabled":        cfg.Enabled,
		"sync_interval":       cfg.Interval.String(),
		"max_concurrent_jobs": cfg.MaxConcurrentJobs,
		"pass_timeout":        cfg.PassTimeout.String(),
		"shutdown_timeout":    cfg.ShutdownTimeout.String(),
	}).Info("Configuração do agendador de sincronização carregada")

	return &SyncService{
		scheduler:    gocron.NewScheduler(location),
		config:       cfg,
		synchronizer: synchronizer,
		publisher:    publisher,
		metrics:      m,
		now:          time.Now,
		passCtx:      passCtx,
		cancelPass:   cancel,
	}
}

// Start agenda o ciclo. O primeiro disparo ocorre após um intervalo completo.
func (s *SyncService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Sincronização de integrações desabilitada por configuração")
		return nil
	}

	logrus.WithField("interval", s.config.Interval.String()).Info("Iniciando agendador de sincronização de integrações")

	_, err := s.scheduler.Every(s.config.Interval).SingletonMode().WaitForSchedule().Do(func() {
		_, _ = s.RunPass(s.passCtx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de integrações: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop para o agendador e aguarda o ciclo em andamento até SYNC_SHUTDOWN_TIMEOUT
func (s *SyncService) Stop() {
	s.stopOnce.Do(func() {
		logrus.Info("Parando agendador de sincronização de integrações")
		s.scheduler.Stop()

		s.syncMutex.Lock()
		s.stopped = true
		s.syncMutex.Unlock()

		done := make(chan struct{})
		go func() {
			s.passWG.Wait()
			close(done)
		}()

		select {
		case <-done:
			logrus.Info("Agendador de sincronização parado")
		case <-time.After(s.config.ShutdownTimeout):
			logrus.WithField("shutdown_timeout", s.config.ShutdownTimeout.String()).
				Warn("Ciclo de sincronização não terminou a tempo, cancelando")
			s.cancelPass()
			<-done
		}

		s.cancelPass()
	})
}

// RunPass executa um ciclo completo. Retorna ErrPassRunning quando outro ciclo está em andamento
// e nil, nil quando não há integrações conectadas.
func (s *SyncService) RunPass(ctx context.Context) (*domain.SyncOutcome, error) {
	s.syncMutex.Lock()
	if s.stopped {
		s.syncMutex.Unlock()
		return nil, ErrStopped
	}
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de integrações já em andamento, ignorando")
		s.metrics.RecordSyncSkipped()
		return nil, ErrPassRunning
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	s.passWG.Add(1)
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = s.now()
		s.syncMutex.Unlock()
		s.passWG.Done()
	}()

	passCtx, cancel := context.WithTimeout(ctx, s.config.PassTimeout)
	defer cancel()

	startTime := time.Now()
	outcome, err := s.synchronizer.SyncAll(passCtx)
	duration := time.Since(startTime)

	if err != nil {
		logrus.WithError(err).Error("Erro no ciclo de sincronização de integrações")
		s.metrics.RecordSyncPass(passResultError, duration)
		s.record(nil, err)
		return nil, err
	}

	if outcome == nil {
		s.metrics.RecordSyncPass(passResultEmpty, duration)
		s.record(nil, nil)
		return nil, nil
	}

	s.metrics.RecordSyncPass(passResultSuccess, duration)
	s.record(outcome, nil)

	logrus.WithFields(logrus.Fields{
		"duration":             duration.String(),
		"integrations_synced":  outcome.IntegrationsSynced,
		"integrations_failed":  outcome.IntegrationsFailed,
		"integrations_skipped": outcome.IntegrationsSkipped,
		"campaigns_failed":     outcome.CampaignsFailed,
		"new_leads":            outcome.NewLeads,
		"new_revenue":          outcome.NewRevenue,
		"corrections":          len(outcome.Corrections),
	}).Info("Ciclo de sincronização concluído")

	syncing.AnnounceOutcome(ctx, s.publisher, outcome)

	return outcome, nil
}

// TriggerManualSync dispara um ciclo fora do agendamento. Retorna false se já houver um em andamento
// ou se o agendador foi parado.
func (s *SyncService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	if s.syncRunning || s.stopped {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de integrações em andamento ou parada, ignorando solicitação manual")
		return false
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual de integrações")
	go func() {
		_, _ = s.RunPass(s.passCtx)
	}()

	return true
}

// GetStatus retorna o status atual do agendador
func (s *SyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_interval":          s.config.Interval.String(),
		"sync_max_concurrent":    s.config.MaxConcurrentJobs,
		"sync_pass_timeout":      s.config.PassTimeout.String(),
		"sync_running":           s.syncRunning,
		"sync_stopped":           s.stopped,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_outcome":           s.lastOutcome,
		"last_error":             s.lastError,
	}
}

func (s *SyncService) record(outcome *domain.SyncOutcome, err error) {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if err != nil {
		s.lastError = err.Error()
		return
	}
	s.lastError = ""
	if outcome != nil {
		s.lastOutcome = outcome
	}
}
