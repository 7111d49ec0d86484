package dashboarding

import (
	"context"

	"github.com/vfg2006/hexa-dashboard-api/internal/domain"
)

// Dashboarder define as leituras do dashboard de um usuário
type Dashboarder interface {
	// GetDashboardMetrics retorna os totais históricos, o ROI e as tendências do dia
	GetDashboardMetrics(ctx context.Context, userID string) (*domain.DashboardMetrics, error)

	// ListCampaigns retorna as campanhas do usuário com a métrica mais recente
	ListCampaigns(ctx context.Context, userID string) ([]*domain.CampaignOverview, error)

	// ListLeads retorna as últimas linhas de métricas diárias do usuário
	ListLeads(ctx context.Context, userID string) ([]*domain.LeadEntry, error)
}
