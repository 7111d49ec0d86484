package syncing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/hexa-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/hexa-dashboard-api/internal/domain"
	"github.com/vfg2006/hexa-dashboard-api/pkg/metrics"
	"github.com/vfg2006/hexa-dashboard-api/pkg/utils"
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
	resultSkipped = "skipped"
)

// Reconciler compara os totais cumulativos dos provedores com o snapshot salvo do dia
// e calcula apenas o que é novo desde o último ciclo
type Reconciler struct {
	providers         ProviderRegistry
	store             repository.ReconciliationStore
	integrationRepo   repository.IntegrationRepository
	metrics           *metrics.Metrics
	location          *time.Location
	maxConcurrentJobs int
	now               func() time.Time

	inFlightMutex sync.Mutex
	inFlight      map[string]struct{}
}

// NewReconciler cria o motor de reconciliação. maxConcurrentJobs limita quantas integrações
// são processadas em paralelo no SyncAll.
func NewReconciler(
	providers ProviderRegistry,
	store repository.ReconciliationStore,
	integrationRepo repository.IntegrationRepository,
	m *metrics.Metrics,
	location *time.Location,
	maxConcurrentJobs int,
) *Reconciler {
	if maxConcurrentJobs <= 0 {
		maxConcurrentJobs = 1
	}
	if location == nil {
		location = time.Local
	}

	return &Reconciler{
		providers:         providers,
		store:             store,
		integrationRepo:   integrationRepo,
		metrics:           m,
		location:          location,
		maxConcurrentJobs: maxConcurrentJobs,
		now:               time.Now,
		inFlight:          make(map[string]struct{}),
	}
}

// WithClock troca a fonte de horário (usado nos testes para virar o dia)
func (r *Reconciler) WithClock(now func() time.Time) *Reconciler {
	r.now = now
	return r
}

// SyncIntegration busca as campanhas da integração e grava o snapshot do dia de cada uma.
// O delta de leads e receita é max(0, reportado - anterior); quedas viram Correction.
func (r *Reconciler) SyncIntegration(ctx context.Context, integration *domain.Integration) (*domain.IntegrationSyncResult, error) {
	if !r.acquire(integration.ID) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSyncInProgress, integration.ID)
	}
	defer r.release(integration.ID)

	logger := logrus.WithFields(logrus.Fields{
		"integration_id": integration.ID,
		"platform":       integration.Platform,
	})

	provider, ok := r.providers.Get(integration.Platform)
	if !ok {
		r.metrics.RecordIntegrationSync(string(integration.Platform), resultFailure)
		return nil, domain.NewProviderFetchError(integration.Platform, integration.ID, domain.ErrProviderNotFound)
	}

	snapshots, err := provider.FetchCampaigns(ctx, integration.AccessToken)
	if err != nil {
		fetchErr := domain.NewProviderFetchError(integration.Platform, integration.ID, err)
		if fetchErr.AuthExpired {
			logger.WithField("auth_expired", true).WithError(err).Warn("Credencial do provedor expirada, integração mantida para o próximo ciclo")
		} else {
			logger.WithError(err).Error("Erro ao buscar campanhas no provedor")
		}
		r.metrics.RecordIntegrationSync(string(integration.Platform), resultFailure)
		return nil, fetchErr
	}

	now := r.now()
	day := utils.DayBucket(now, r.location)

	result := &domain.IntegrationSyncResult{
		IntegrationID: integration.ID,
		Platform:      integration.Platform,
		SyncedAt:      now,
	}

	for _, snapshot := range snapshots {
		snapshot = roundMoney(snapshot)

		previous, err := r.store.ReconcileCampaignDay(ctx, integration.ID, snapshot, day)
		if err != nil {
			logger.WithFields(logrus.Fields{
				"campaign_external_id": snapshot.ExternalID,
				"date":                 day.Format(utils.DateLayout),
			}).WithError(err).Error("Erro ao gravar métrica da campanha, delta ignorado neste ciclo")
			result.CampaignsFailed++
			r.metrics.RecordCampaignWriteFailed(string(integration.Platform))
			continue
		}

		newLeads, newRevenue, corrections := computeDelta(integration.ID, snapshot, previous)
		result.NewLeads += newLeads
		result.NewRevenue = utils.RoundWithTwoDecimalPlace(result.NewRevenue + newRevenue)
		result.Corrections = append(result.Corrections, corrections...)
		result.CampaignsSynced++

		for _, c := range corrections {
			logger.WithFields(logrus.Fields{
				"campaign_external_id": c.CampaignExternalID,
				"metric":               c.Metric,
				"previous":             c.Previous,
				"reported":             c.Reported,
			}).Warn("Provedor reportou valor cumulativo menor que o anterior")
			r.metrics.RecordCorrection(c.Metric)
		}
	}

	if err := r.integrationRepo.TouchLastSync(ctx, integration.ID, now); err != nil {
		logger.WithError(err).Warn("Erro ao atualizar last_sync da integração")
	}

	r.metrics.RecordIntegrationSync(string(integration.Platform), resultSuccess)
	r.metrics.RecordDeltas(result.NewLeads, result.NewRevenue)

	logger.WithFields(logrus.Fields{
		"campaigns":        len(snapshots),
		"campaigns_failed": result.CampaignsFailed,
		"new_leads":        result.NewLeads,
		"new_revenue":      result.NewRevenue,
	}).Debug("Integração reconciliada")

	return result, nil
}

// SyncAll reconcilia todas as integrações conectadas. Falhas de uma integração não
// interrompem as demais; o erro só é retornado quando a listagem falha.
func (r *Reconciler) SyncAll(ctx context.Context) (*domain.SyncOutcome, error) {
	integrations, err := r.integrationRepo.ListActive(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar integrações ativas: %w", err)
	}

	if len(integrations) == 0 {
		logrus.Debug("Nenhuma integração conectada para sincronizar")
		return nil, nil
	}

	outcome := &domain.SyncOutcome{}
	var outcomeMutex sync.Mutex

	semaphore := make(chan struct{}, r.maxConcurrentJobs)
	var wg sync.WaitGroup

	for _, integration := range integrations {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(in *domain.Integration) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			result, err := r.SyncIntegration(ctx, in)

			outcomeMutex.Lock()
			defer outcomeMutex.Unlock()

			switch {
			case errors.Is(err, domain.ErrSyncInProgress):
				logrus.WithField("integration_id", in.ID).Info("Integração ainda em sincronização, ignorando")
				r.metrics.RecordIntegrationSync(string(in.Platform), resultSkipped)
				outcome.IntegrationsSkipped++
			case err != nil:
				outcome.IntegrationsFailed++
			default:
				outcome.Merge(result)
			}
		}(integration)
	}

	wg.Wait()

	outcome.Timestamp = r.now()
	return outcome, nil
}

func (r *Reconciler) acquire(integrationID string) bool {
	r.inFlightMutex.Lock()
	defer r.inFlightMutex.Unlock()

	if _, running := r.inFlight[integrationID]; running {
		return false
	}
	r.inFlight[integrationID] = struct{}{}
	return true
}

func (r *Reconciler) release(integrationID string) {
	r.inFlightMutex.Lock()
	defer r.inFlightMutex.Unlock()

	delete(r.inFlight, integrationID)
}

// roundMoney deixa investimento e receita com duas casas, a mesma precisão das colunas
// NUMERIC(14,2). Sem isso o valor salvo e o reportado divergem a cada ciclo.
func roundMoney(snapshot domain.CampaignSnapshot) domain.CampaignSnapshot {
	snapshot.Spend = utils.RoundWithTwoDecimalPlace(snapshot.Spend)
	snapshot.Revenue = utils.RoundWithTwoDecimalPlace(snapshot.Revenue)
	return snapshot
}

// computeDelta devolve o que é novo no snapshot em relação ao valor salvo do dia.
// previous nil significa primeira leitura do dia, com base zero.
func computeDelta(integrationID string, snapshot domain.CampaignSnapshot, previous *domain.DailyMetric) (int64, float64, []domain.Correction) {
	var (
		previousLeads   int64
		previousRevenue float64
		corrections     []domain.Correction
	)
	if previous != nil {
		previousLeads = previous.Leads
		previousRevenue = previous.Revenue
	}

	var newLeads int64
	if snapshot.Leads > previousLeads {
		newLeads = snapshot.Leads - previousLeads
	} else if snapshot.Leads < previousLeads {
		corrections = append(corrections, domain.Correction{
			IntegrationID:      integrationID,
			CampaignExternalID: snapshot.ExternalID,
			Metric:             domain.CorrectionMetricLeads,
			Previous:           float64(previousLeads),
			Reported:           float64(snapshot.Leads),
		})
	}

	var newRevenue float64
	if snapshot.Revenue > previousRevenue {
		newRevenue = utils.RoundWithTwoDecimalPlace(snapshot.Revenue - previousRevenue)
	} else if snapshot.Revenue < previousRevenue {
		corrections = append(corrections, domain.Correction{
			IntegrationID:      integrationID,
			CampaignExternalID: snapshot.ExternalID,
			Metric:             domain.CorrectionMetricRevenue,
			Previous:           previousRevenue,
			Reported:           snapshot.Revenue,
		})
	}

	return newLeads, newRevenue, corrections
}
