package syncing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	providermocks "github.com/vfg2006/hexa-dashboard-api/infrastructure/integrator/mocks"
	repomocks "github.com/vfg2006/hexa-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/hexa-dashboard-api/internal/domain"
	"github.com/vfg2006/hexa-dashboard-api/internal/usecases/syncing/mocks"
	"github.com/vfg2006/hexa-dashboard-api/pkg/metrics"
	"github.com/vfg2006/hexa-dashboard-api/pkg/utils"
	"go.uber.org/mock/gomock"
)

// memoryStore guarda o último snapshot por (integração, campanha, dia), como a tabela daily_metrics,
// arredondando valores monetários como as colunas NUMERIC(14,2)
type memoryStore struct {
	mu      sync.Mutex
	metrics map[string]domain.DailyMetric
	failOn  map[string]error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		metrics: make(map[string]domain.DailyMetric),
		failOn:  make(map[string]error),
	}
}

func (s *memoryStore) key(integrationID, externalID string, day time.Time) string {
	return integrationID + "|" + externalID + "|" + day.Format(utils.DateLayout)
}

func (s *memoryStore) ReconcileCampaignDay(_ context.Context, integrationID string, snapshot domain.CampaignSnapshot, day time.Time) (*domain.DailyMetric, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err, ok := s.failOn[snapshot.ExternalID]; ok {
		return nil, &domain.StoreWriteError{Op: "upsert daily metric", CampaignExternalID: snapshot.ExternalID, Err: err}
	}

	k := s.key(integrationID, snapshot.ExternalID, day)
	previous, seen := s.metrics[k]
	s.metrics[k] = domain.DailyMetric{
		Date:        day,
		Spend:       utils.RoundWithTwoDecimalPlace(snapshot.Spend),
		Impressions: snapshot.Impressions,
		Clicks:      snapshot.Clicks,
		Leads:       snapshot.Leads,
		Revenue:     utils.RoundWithTwoDecimalPlace(snapshot.Revenue),
	}
	if !seen {
		return nil, nil
	}
	return &previous, nil
}

func (s *memoryStore) stored(integrationID, externalID string, day time.Time) (domain.DailyMetric, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.metrics[s.key(integrationID, externalID, day)]
	return m, ok
}

type reconcilerFixture struct {
	registry     *mocks.MockProviderRegistry
	provider     *providermocks.MockProvider
	integrations *repomocks.MockIntegrationRepository
	store        *memoryStore
	metrics      *metrics.Metrics
	clock        *time.Time
	reconciler   *Reconciler
}

func saoPaulo(t *testing.T) *time.Location {
	t.Helper()

	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	return loc
}

func newReconcilerFixture(t *testing.T) *reconcilerFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &reconcilerFixture{
		registry:     mocks.NewMockProviderRegistry(ctrl),
		provider:     providermocks.NewMockProvider(ctrl),
		integrations: repomocks.NewMockIntegrationRepository(ctrl),
		store:        newMemoryStore(),
		metrics:      metrics.New(),
	}

	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	f.clock = &now

	f.reconciler = NewReconciler(f.registry, f.store, f.integrations, f.metrics, saoPaulo(t), 2).
		WithClock(func() time.Time { return *f.clock })

	return f
}

func facebookIntegration(id string) *domain.Integration {
	return &domain.Integration{
		ID:          id,
		UserID:      "user-1",
		Platform:    domain.PlatformFacebook,
		AccessToken: "fb_access_" + id,
		Status:      domain.IntegrationStatusConnected,
	}
}

func summerCampaign(leads int64, revenue float64) domain.CampaignSnapshot {
	return domain.CampaignSnapshot{
		ExternalID:  "fb_cmp_123",
		Name:        "Campanha Verão 2025 - FB",
		Status:      domain.CampaignStatusActive,
		Spend:       1250.50,
		Leads:       leads,
		Revenue:     revenue,
		Impressions: 15000,
		Clicks:      850,
	}
}

func TestReconciler_SyncIntegration_CumulativeSequence(t *testing.T) {
	f := newReconcilerFixture(t)
	integration := facebookIntegration("int-1")
	day := utils.DayBucket(*f.clock, saoPaulo(t))

	f.registry.EXPECT().Get(domain.PlatformFacebook).Return(f.provider, true).AnyTimes()
	f.integrations.EXPECT().TouchLastSync(gomock.Any(), "int-1", *f.clock).Return(nil).Times(3)
	gomock.InOrder(
		f.provider.EXPECT().FetchCampaigns(gomock.Any(), "fb_access_int-1").Return([]domain.CampaignSnapshot{summerCampaign(45, 4500)}, nil),
		f.provider.EXPECT().FetchCampaigns(gomock.Any(), "fb_access_int-1").Return([]domain.CampaignSnapshot{summerCampaign(45, 4500)}, nil),
		f.provider.EXPECT().FetchCampaigns(gomock.Any(), "fb_access_int-1").Return([]domain.CampaignSnapshot{summerCampaign(50, 4500)}, nil),
	)

	first, err := f.reconciler.SyncIntegration(context.Background(), integration)
	require.NoError(t, err)
	assert.Equal(t, int64(45), first.NewLeads)
	assert.Equal(t, 4500.0, first.NewRevenue)
	assert.Equal(t, 1, first.CampaignsSynced)

	stored, ok := f.store.stored("int-1", "fb_cmp_123", day)
	require.True(t, ok)
	assert.Equal(t, int64(45), stored.Leads)
	assert.Equal(t, 4500.0, stored.Revenue)
	assert.Equal(t, 1250.50, stored.Spend)

	second, err := f.reconciler.SyncIntegration(context.Background(), integration)
	require.NoError(t, err)
	assert.Zero(t, second.NewLeads)
	assert.Zero(t, second.NewRevenue)
	assert.Empty(t, second.Corrections)

	third, err := f.reconciler.SyncIntegration(context.Background(), integration)
	require.NoError(t, err)
	assert.Equal(t, int64(5), third.NewLeads)
	assert.Zero(t, third.NewRevenue)

	assert.Equal(t, 50.0, testutil.ToFloat64(f.metrics.NewLeadsTotal))
	assert.Equal(t, 4500.0, testutil.ToFloat64(f.metrics.NewRevenueTotal))
}

func TestReconciler_SyncIntegration_MoneyPrecision(t *testing.T) {
	f := newReconcilerFixture(t)
	integration := facebookIntegration("int-1")
	day := utils.DayBucket(*f.clock, saoPaulo(t))

	snapshot := summerCampaign(45, 4500.006)
	snapshot.Spend = 1250.504

	f.registry.EXPECT().Get(domain.PlatformFacebook).Return(f.provider, true).AnyTimes()
	f.integrations.EXPECT().TouchLastSync(gomock.Any(), "int-1", *f.clock).Return(nil).Times(2)
	f.provider.EXPECT().FetchCampaigns(gomock.Any(), "fb_access_int-1").Return([]domain.CampaignSnapshot{snapshot}, nil).Times(2)

	first, err := f.reconciler.SyncIntegration(context.Background(), integration)
	require.NoError(t, err)
	assert.Equal(t, 4500.01, first.NewRevenue)

	stored, ok := f.store.stored("int-1", "fb_cmp_123", day)
	require.True(t, ok)
	assert.Equal(t, 4500.01, stored.Revenue)
	assert.Equal(t, 1250.50, stored.Spend)

	second, err := f.reconciler.SyncIntegration(context.Background(), integration)
	require.NoError(t, err)
	assert.Zero(t, second.NewRevenue)
	assert.Empty(t, second.Corrections)
	assert.Zero(t, testutil.ToFloat64(f.metrics.CorrectionsTotal.WithLabelValues(string(domain.CorrectionMetricRevenue))))
}

func TestReconciler_SyncIntegration_Deltas(t *testing.T) {
	tests := []struct {
		name                string
		first               domain.CampaignSnapshot
		second              domain.CampaignSnapshot
		advanceDay          bool
		expectedLeads       int64
		expectedRevenue     float64
		expectedCorrections []string
	}{
		{
			name:            "Snapshots idênticos não contam em dobro",
			first:           summerCampaign(45, 4500),
			second:          summerCampaign(45, 4500),
			expectedLeads:   0,
			expectedRevenue: 0,
		},
		{
			name:            "Somente a diferença positiva é nova",
			first:           summerCampaign(45, 4500),
			second:          summerCampaign(48, 4780.25),
			expectedLeads:   3,
			expectedRevenue: 280.25,
		},
		{
			name:                "Queda no cumulativo nunca gera delta negativo",
			first:               summerCampaign(45, 4500),
			second:              summerCampaign(40, 4000),
			expectedLeads:       0,
			expectedRevenue:     0,
			expectedCorrections: []string{domain.CorrectionMetricLeads, domain.CorrectionMetricRevenue},
		},
		{
			name:                "Queda só de receita registra uma correção",
			first:               summerCampaign(45, 4500),
			second:              summerCampaign(47, 4400),
			expectedLeads:       2,
			expectedRevenue:     0,
			expectedCorrections: []string{domain.CorrectionMetricRevenue},
		},
		{
			name:            "Virada do dia zera a base",
			first:           summerCampaign(100, 9000),
			second:          summerCampaign(10, 500),
			advanceDay:      true,
			expectedLeads:   10,
			expectedRevenue: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newReconcilerFixture(t)
			integration := facebookIntegration("int-1")

			f.registry.EXPECT().Get(domain.PlatformFacebook).Return(f.provider, true).AnyTimes()
			f.integrations.EXPECT().TouchLastSync(gomock.Any(), "int-1", gomock.Any()).Return(nil).Times(2)
			gomock.InOrder(
				f.provider.EXPECT().FetchCampaigns(gomock.Any(), gomock.Any()).Return([]domain.CampaignSnapshot{tt.first}, nil),
				f.provider.EXPECT().FetchCampaigns(gomock.Any(), gomock.Any()).Return([]domain.CampaignSnapshot{tt.second}, nil),
			)

			first, err := f.reconciler.SyncIntegration(context.Background(), integration)
			require.NoError(t, err)
			assert.Equal(t, tt.first.Leads, first.NewLeads)
			assert.Equal(t, tt.first.Revenue, first.NewRevenue)

			if tt.advanceDay {
				next := f.clock.Add(24 * time.Hour)
				f.clock = &next
			}

			second, err := f.reconciler.SyncIntegration(context.Background(), integration)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedLeads, second.NewLeads)
			assert.Equal(t, tt.expectedRevenue, second.NewRevenue)
			assert.GreaterOrEqual(t, second.NewLeads, int64(0))
			assert.GreaterOrEqual(t, second.NewRevenue, 0.0)

			metricsSeen := make([]string, 0, len(second.Corrections))
			for _, c := range second.Corrections {
				assert.Equal(t, "int-1", c.IntegrationID)
				assert.Equal(t, "fb_cmp_123", c.CampaignExternalID)
				metricsSeen = append(metricsSeen, c.Metric)
			}
			assert.ElementsMatch(t, tt.expectedCorrections, metricsSeen)
		})
	}
}

func TestReconciler_SyncIntegration_Failures(t *testing.T) {
	t.Run("Falha na busca do provedor mantém a integração intacta", func(t *testing.T) {
		f := newReconcilerFixture(t)

		f.registry.EXPECT().Get(domain.PlatformFacebook).Return(f.provider, true)
		f.provider.EXPECT().FetchCampaigns(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))

		result, err := f.reconciler.SyncIntegration(context.Background(), facebookIntegration("int-1"))

		assert.Nil(t, result)
		var fetchErr *domain.ProviderFetchError
		require.True(t, errors.As(err, &fetchErr))
		assert.Equal(t, "int-1", fetchErr.IntegrationID)
		assert.False(t, fetchErr.AuthExpired)
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.IntegrationSyncsTotal.WithLabelValues("FACEBOOK", "failure")))
	})

	t.Run("Credencial expirada é sinalizada sem desconectar", func(t *testing.T) {
		f := newReconcilerFixture(t)

		f.registry.EXPECT().Get(domain.PlatformFacebook).Return(f.provider, true)
		f.provider.EXPECT().FetchCampaigns(gomock.Any(), gomock.Any()).
			Return(nil, domain.ErrAuthExpired)

		_, err := f.reconciler.SyncIntegration(context.Background(), facebookIntegration("int-1"))

		var fetchErr *domain.ProviderFetchError
		require.True(t, errors.As(err, &fetchErr))
		assert.True(t, fetchErr.AuthExpired)
		assert.ErrorIs(t, err, domain.ErrAuthExpired)
	})

	t.Run("Plataforma sem adaptador vira erro de busca", func(t *testing.T) {
		f := newReconcilerFixture(t)
		integration := facebookIntegration("int-9")
		integration.Platform = domain.PlatformYouTube

		f.registry.EXPECT().Get(domain.PlatformYouTube).Return(nil, false)

		_, err := f.reconciler.SyncIntegration(context.Background(), integration)

		var fetchErr *domain.ProviderFetchError
		require.True(t, errors.As(err, &fetchErr))
		assert.ErrorIs(t, err, domain.ErrProviderNotFound)
	})

	t.Run("Falha de escrita exclui só a campanha afetada", func(t *testing.T) {
		f := newReconcilerFixture(t)
		f.store.failOn["fb_cmp_456"] = errors.New("deadlock detected")

		retargeting := domain.CampaignSnapshot{ExternalID: "fb_cmp_456", Name: "Retargeting Black Friday", Leads: 12, Revenue: 1200}
		last := domain.CampaignSnapshot{ExternalID: "fb_cmp_789", Name: "Lançamento", Leads: 3, Revenue: 150}

		f.registry.EXPECT().Get(domain.PlatformFacebook).Return(f.provider, true)
		f.provider.EXPECT().FetchCampaigns(gomock.Any(), gomock.Any()).
			Return([]domain.CampaignSnapshot{summerCampaign(45, 4500), retargeting, last}, nil)
		f.integrations.EXPECT().TouchLastSync(gomock.Any(), "int-1", gomock.Any()).Return(nil)

		result, err := f.reconciler.SyncIntegration(context.Background(), facebookIntegration("int-1"))

		require.NoError(t, err)
		assert.Equal(t, int64(48), result.NewLeads)
		assert.Equal(t, 4650.0, result.NewRevenue)
		assert.Equal(t, 2, result.CampaignsSynced)
		assert.Equal(t, 1, result.CampaignsFailed)
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CampaignWritesFailedTotal.WithLabelValues("FACEBOOK")))
	})

	t.Run("Erro ao atualizar last_sync não invalida o resultado", func(t *testing.T) {
		f := newReconcilerFixture(t)

		f.registry.EXPECT().Get(domain.PlatformFacebook).Return(f.provider, true)
		f.provider.EXPECT().FetchCampaigns(gomock.Any(), gomock.Any()).
			Return([]domain.CampaignSnapshot{summerCampaign(45, 4500)}, nil)
		f.integrations.EXPECT().TouchLastSync(gomock.Any(), "int-1", gomock.Any()).Return(errors.New("timeout"))

		result, err := f.reconciler.SyncIntegration(context.Background(), facebookIntegration("int-1"))

		require.NoError(t, err)
		assert.Equal(t, int64(45), result.NewLeads)
	})
}

func TestReconciler_SyncIntegration_InFlightGuard(t *testing.T) {
	f := newReconcilerFixture(t)
	integration := facebookIntegration("int-1")

	started := make(chan struct{})
	release := make(chan struct{})

	f.registry.EXPECT().Get(domain.PlatformFacebook).Return(f.provider, true).Times(2)
	f.integrations.EXPECT().TouchLastSync(gomock.Any(), "int-1", gomock.Any()).Return(nil).Times(2)
	gomock.InOrder(
		f.provider.EXPECT().FetchCampaigns(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, token string) ([]domain.CampaignSnapshot, error) {
				close(started)
				<-release
				return []domain.CampaignSnapshot{summerCampaign(45, 4500)}, nil
			}),
		f.provider.EXPECT().FetchCampaigns(gomock.Any(), gomock.Any()).
			Return([]domain.CampaignSnapshot{summerCampaign(45, 4500)}, nil),
	)

	done := make(chan *domain.IntegrationSyncResult)
	go func() {
		result, err := f.reconciler.SyncIntegration(context.Background(), integration)
		assert.NoError(t, err)
		done <- result
	}()

	<-started
	_, err := f.reconciler.SyncIntegration(context.Background(), integration)
	assert.ErrorIs(t, err, domain.ErrSyncInProgress)

	close(release)
	first := <-done
	assert.Equal(t, int64(45), first.NewLeads)

	// liberado após o término
	again, err := f.reconciler.SyncIntegration(context.Background(), integration)
	require.NoError(t, err)
	assert.Zero(t, again.NewLeads)
}

func TestReconciler_SyncAll(t *testing.T) {
	t.Run("Sem integrações conectadas", func(t *testing.T) {
		f := newReconcilerFixture(t)
		f.integrations.EXPECT().ListActive(gomock.Any(), nil).Return([]*domain.Integration{}, nil)

		outcome, err := f.reconciler.SyncAll(context.Background())

		assert.NoError(t, err)
		assert.Nil(t, outcome)
	})

	t.Run("Erro ao listar integrações", func(t *testing.T) {
		f := newReconcilerFixture(t)
		f.integrations.EXPECT().ListActive(gomock.Any(), nil).Return(nil, errors.New("connection refused"))

		outcome, err := f.reconciler.SyncAll(context.Background())

		assert.Nil(t, outcome)
		assert.ErrorContains(t, err, "connection refused")
	})

	t.Run("Falha de uma integração não impede as demais", func(t *testing.T) {
		f := newReconcilerFixture(t)
		ctrl := gomock.NewController(t)
		tiktok := providermocks.NewMockProvider(ctrl)

		broken := facebookIntegration("int-a")
		healthy := &domain.Integration{
			ID:          "int-b",
			UserID:      "user-2",
			Platform:    domain.PlatformTikTok,
			AccessToken: "tiktok_access_b",
			Status:      domain.IntegrationStatusConnected,
		}

		f.integrations.EXPECT().ListActive(gomock.Any(), nil).Return([]*domain.Integration{broken, healthy}, nil)
		f.registry.EXPECT().Get(domain.PlatformFacebook).Return(f.provider, true)
		f.registry.EXPECT().Get(domain.PlatformTikTok).Return(tiktok, true)
		f.provider.EXPECT().FetchCampaigns(gomock.Any(), "fb_access_int-a").Return(nil, errors.New("503 service unavailable"))
		tiktok.EXPECT().FetchCampaigns(gomock.Any(), "tiktok_access_b").Return([]domain.CampaignSnapshot{
			{ExternalID: "tt_cmp_101", Name: "Viral Challenge", Leads: 80, Revenue: 8000, Spend: 2000},
		}, nil)
		f.integrations.EXPECT().TouchLastSync(gomock.Any(), "int-b", gomock.Any()).Return(nil)

		outcome, err := f.reconciler.SyncAll(context.Background())

		require.NoError(t, err)
		require.NotNil(t, outcome)
		assert.Equal(t, int64(80), outcome.NewLeads)
		assert.Equal(t, 8000.0, outcome.NewRevenue)
		assert.Equal(t, 1, outcome.IntegrationsSynced)
		assert.Equal(t, 1, outcome.IntegrationsFailed)
		assert.Equal(t, 1, outcome.CampaignsSynced)
		assert.True(t, outcome.HasConversions())
		assert.Equal(t, *f.clock, outcome.Timestamp)
	})

	t.Run("Soma os deltas de várias integrações", func(t *testing.T) {
		f := newReconcilerFixture(t)

		integrations := []*domain.Integration{facebookIntegration("int-1"), facebookIntegration("int-2"), facebookIntegration("int-3")}
		f.integrations.EXPECT().ListActive(gomock.Any(), nil).Return(integrations, nil)
		f.registry.EXPECT().Get(domain.PlatformFacebook).Return(f.provider, true).Times(3)
		f.provider.EXPECT().FetchCampaigns(gomock.Any(), gomock.Any()).
			Return([]domain.CampaignSnapshot{summerCampaign(10, 1000)}, nil).Times(3)
		f.integrations.EXPECT().TouchLastSync(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(3)

		outcome, err := f.reconciler.SyncAll(context.Background())

		require.NoError(t, err)
		assert.Equal(t, int64(30), outcome.NewLeads)
		assert.Equal(t, 3000.0, outcome.NewRevenue)
		assert.Equal(t, 3, outcome.IntegrationsSynced)
	})
}
