package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/vfg2006/hexa-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/hexa-dashboard-api/internal/domain"
)

const (
	campaignsTable = "campaigns"
)

const latestMetricJoin = `LATERAL (
	SELECT dm.spend, dm.leads, dm.revenue, dm.impressions, dm.clicks
	FROM daily_metrics dm
	WHERE dm.campaign_id = c.id
	ORDER BY dm.date DESC
	LIMIT 1
) m ON TRUE`

type CampaignRepository interface {
	UpsertByExternalKey(ctx context.Context, integrationID string, snapshot domain.CampaignSnapshot) (*domain.Campaign, error)
	ListOverviewByUser(ctx context.Context, userID string) ([]*domain.CampaignOverview, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}

type campaignRepository struct {
	conn postgres.Queryer
}

func NewCampaignRepository(conn postgres.Queryer) CampaignRepository {
	return &campaignRepository{
		conn: conn,
	}
}

// UpsertByExternalKey cria ou atualiza a campanha pela chave (integration_id, external_id).
// Dentro de uma transação a linha fica travada até o commit.
func (r *campaignRepository) UpsertByExternalKey(ctx context.Context, integrationID string, snapshot domain.CampaignSnapshot) (*domain.Campaign, error) {
	status := snapshot.Status
	if status == "" {
		status = domain.CampaignStatusActive
	}

	campaign := &domain.Campaign{
		IntegrationID: integrationID,
		ExternalID:    snapshot.ExternalID,
		Name:          snapshot.Name,
		Status:        status,
	}

	query, args, err := squirrel.
		Insert(campaignsTable).
		Columns("id", "integration_id", "external_id", "name", "status").
		Values(uuid.NewString(), integrationID, snapshot.ExternalID, snapshot.Name, string(status)).
		Suffix(`
			ON CONFLICT (integration_id, external_id) DO UPDATE SET
				name = EXCLUDED.name,
				status = EXCLUDED.status,
				updated_at = NOW()
			RETURNING id, created_at, updated_at
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&campaign.ID, &campaign.CreatedAt, &campaign.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return nil, fmt.Errorf("erro ao salvar campanha: %w", err)
	}

	return campaign, nil
}

func (r *campaignRepository) ListOverviewByUser(ctx context.Context, userID string) ([]*domain.CampaignOverview, error) {
	query, args, err := squirrel.
		Select(
			"c.id",
			"c.name",
			"i.platform",
			"c.status",
			"COALESCE(m.spend, 0)",
			"COALESCE(m.leads, 0)",
			"COALESCE(m.revenue, 0)",
			"COALESCE(m.impressions, 0)",
			"COALESCE(m.clicks, 0)",
			"c.updated_at",
		).
		From(campaignsTable + " c").
		Join("integrations i ON i.id = c.integration_id").
		LeftJoin(latestMetricJoin).
		Where(squirrel.Eq{"i.user_id": userID}).
		OrderBy("c.updated_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	campaigns := make([]*domain.CampaignOverview, 0)
	for rows.Next() {
		var (
			overview domain.CampaignOverview
			platform string
			status   string
		)

		err := rows.Scan(
			&overview.ID,
			&overview.Name,
			&platform,
			&status,
			&overview.Spend,
			&overview.Leads,
			&overview.Revenue,
			&overview.Impressions,
			&overview.Clicks,
			&overview.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear campanha: %w", err)
		}

		overview.Platform = domain.Platform(platform)
		overview.Status = domain.CampaignStatus(status)
		overview.ROI = domain.CalculateROI(overview.Revenue, overview.Spend)
		campaigns = append(campaigns, &overview)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return campaigns, nil
}

func (r *campaignRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(campaignsTable + " c").
		Join("integrations i ON i.id = c.integration_id").
		Where(squirrel.Eq{"i.user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar campanhas: %w", err)
	}

	return count, nil
}
