package dashboarding

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/hexa-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/hexa-dashboard-api/internal/domain"
	"github.com/vfg2006/hexa-dashboard-api/pkg/utils"
)

// LeadsFeedLimit é a quantidade de linhas do feed de leads
const LeadsFeedLimit = 100

type Service struct {
	dailyMetricRepo repository.DailyMetricRepository
	campaignRepo    repository.CampaignRepository
	integrationRepo repository.IntegrationRepository
	location        *time.Location
	now             func() time.Time
}

func NewService(
	dailyMetricRepo repository.DailyMetricRepository,
	campaignRepo repository.CampaignRepository,
	integrationRepo repository.IntegrationRepository,
	location *time.Location,
) *Service {
	if location == nil {
		location = time.Local
	}

	return &Service{
		dailyMetricRepo: dailyMetricRepo,
		campaignRepo:    campaignRepo,
		integrationRepo: integrationRepo,
		location:        location,
		now:             time.Now,
	}
}

// WithClock troca a fonte de horário
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// GetDashboardMetrics soma as métricas de todas as integrações do usuário e compara hoje
// com ontem e com a média de ontem e anteontem. Qualquer falha de leitura vira AggregationError.
func (s *Service) GetDashboardMetrics(ctx context.Context, userID string) (*domain.DashboardMetrics, error) {
	totals, err := s.dailyMetricRepo.AggregateSum(ctx, userID, nil, nil)
	if err != nil {
		return nil, s.aggregationError(userID, "totals", err)
	}

	today := utils.DayBucket(s.now(), s.location)
	yesterday := today.AddDate(0, 0, -1)
	dayBefore := today.AddDate(0, 0, -2)

	todayTotals, err := s.sumDay(ctx, userID, today)
	if err != nil {
		return nil, s.aggregationError(userID, "today", err)
	}

	yesterdayTotals, err := s.sumDay(ctx, userID, yesterday)
	if err != nil {
		return nil, s.aggregationError(userID, "yesterday", err)
	}

	dayBeforeTotals, err := s.sumDay(ctx, userID, dayBefore)
	if err != nil {
		return nil, s.aggregationError(userID, "day before yesterday", err)
	}

	activeIntegrations, err := s.integrationRepo.ListActive(ctx, &userID)
	if err != nil {
		return nil, s.aggregationError(userID, "active integrations", err)
	}

	campaignsCount, err := s.campaignRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, s.aggregationError(userID, "campaigns count", err)
	}

	return &domain.DashboardMetrics{
		TotalLeads:         totals.Leads,
		TotalSpend:         totals.Spend,
		TotalRevenue:       totals.Revenue,
		ROI:                domain.CalculateROI(totals.Revenue, totals.Spend),
		ActiveIntegrations: len(activeIntegrations),
		CampaignsCount:     campaignsCount,
		Trends:             domain.CompareTotals(*todayTotals, domain.BaselineOf(*yesterdayTotals)),
		TrendsVsAvg:        domain.CompareTotals(*todayTotals, domain.AverageBaseline(*yesterdayTotals, *dayBeforeTotals)),
	}, nil
}

func (s *Service) ListCampaigns(ctx context.Context, userID string) ([]*domain.CampaignOverview, error) {
	campaigns, err := s.campaignRepo.ListOverviewByUser(ctx, userID)
	if err != nil {
		return nil, s.aggregationError(userID, "campaigns", err)
	}
	return campaigns, nil
}

func (s *Service) ListLeads(ctx context.Context, userID string) ([]*domain.LeadEntry, error) {
	leads, err := s.dailyMetricRepo.ListRecentByUser(ctx, userID, LeadsFeedLimit)
	if err != nil {
		return nil, s.aggregationError(userID, "leads", err)
	}
	return leads, nil
}

func (s *Service) sumDay(ctx context.Context, userID string, day time.Time) (*domain.MetricTotals, error) {
	return s.dailyMetricRepo.AggregateSum(ctx, userID, &day, &day)
}

func (s *Service) aggregationError(userID, step string, err error) error {
	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"step":    step,
	}).WithError(err).Error("Erro ao ler métricas do dashboard")

	return &domain.AggregationError{UserID: userID, Step: step, Err: err}
}
