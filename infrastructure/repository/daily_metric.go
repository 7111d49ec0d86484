package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/vfg2006/hexa-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/hexa-dashboard-api/internal/domain"
	"github.com/vfg2006/hexa-dashboard-api/pkg/utils"
)

const (
	dailyMetricsTable = "daily_metrics"
)

var dailyMetricColumns = []string{
	"id",
	"campaign_id",
	"date",
	"spend",
	"impressions",
	"clicks",
	"leads",
	"revenue",
	"created_at",
	"updated_at",
}

type DailyMetricRepository interface {
	Upsert(ctx context.Context, metric *domain.DailyMetric) error
	FindForDay(ctx context.Context, campaignID string, day time.Time) (*domain.DailyMetric, error)
	AggregateSum(ctx context.Context, userID string, from, to *time.Time) (*domain.MetricTotals, error)
	ListRecentByUser(ctx context.Context, userID string, limit int) ([]*domain.LeadEntry, error)
}

type dailyMetricRepository struct {
	conn     postgres.Queryer
	location *time.Location
}

func NewDailyMetricRepository(conn postgres.Queryer, location *time.Location) DailyMetricRepository {
	return &dailyMetricRepository{
		conn:     conn,
		location: location,
	}
}

// Upsert sobrescreve o snapshot do dia; cria a linha no primeiro ciclo do dia
func (r *dailyMetricRepository) Upsert(ctx context.Context, metric *domain.DailyMetric) error {
	if metric.ID == "" {
		metric.ID = uuid.NewString()
	}

	query, args, err := squirrel.
		Insert(dailyMetricsTable).
		Columns("id", "campaign_id", "date", "spend", "impressions", "clicks", "leads", "revenue").
		Values(
			metric.ID,
			metric.CampaignID,
			metric.Date.Format(utils.DateLayout),
			metric.Spend,
			metric.Impressions,
			metric.Clicks,
			metric.Leads,
			metric.Revenue,
		).
		Suffix(`
			ON CONFLICT (campaign_id, date) DO UPDATE SET
				spend = EXCLUDED.spend,
				impressions = EXCLUDED.impressions,
				clicks = EXCLUDED.clicks,
				leads = EXCLUDED.leads,
				revenue = EXCLUDED.revenue,
				updated_at = NOW()
			RETURNING id, created_at, updated_at
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&metric.ID, &metric.CreatedAt, &metric.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao salvar métrica diária: %w", err)
	}

	return nil
}

// FindForDay retorna nil, nil quando ainda não há métrica da campanha no dia
func (r *dailyMetricRepository) FindForDay(ctx context.Context, campaignID string, day time.Time) (*domain.DailyMetric, error) {
	query, args, err := squirrel.
		Select(dailyMetricColumns...).
		From(dailyMetricsTable).
		Where(squirrel.Eq{"campaign_id": campaignID, "date": day.Format(utils.DateLayout)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var metric domain.DailyMetric
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&metric.ID,
		&metric.CampaignID,
		&metric.Date,
		&metric.Spend,
		&metric.Impressions,
		&metric.Clicks,
		&metric.Leads,
		&metric.Revenue,
		&metric.CreatedAt,
		&metric.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar métrica diária: %w", err)
	}

	metric.Date = utils.DateInLocation(metric.Date, r.location)
	return &metric, nil
}

// AggregateSum soma as métricas de todas as campanhas do usuário no intervalo [from, to].
// Limites nulos deixam o intervalo aberto.
func (r *dailyMetricRepository) AggregateSum(ctx context.Context, userID string, from, to *time.Time) (*domain.MetricTotals, error) {
	builder := squirrel.
		Select(
			"COALESCE(SUM(dm.leads), 0)",
			"COALESCE(SUM(dm.spend), 0)",
			"COALESCE(SUM(dm.revenue), 0)",
		).
		From(dailyMetricsTable + " dm").
		Join("campaigns c ON c.id = dm.campaign_id").
		Join("integrations i ON i.id = c.integration_id").
		Where(squirrel.Eq{"i.user_id": userID})

	if from != nil {
		builder = builder.Where(squirrel.GtOrEq{"dm.date": from.Format(utils.DateLayout)})
	}
	if to != nil {
		builder = builder.Where(squirrel.LtOrEq{"dm.date": to.Format(utils.DateLayout)})
	}

	query, args, err := builder.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var totals domain.MetricTotals
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&totals.Leads, &totals.Spend, &totals.Revenue); err != nil {
		return nil, fmt.Errorf("erro ao agregar métricas: %w", err)
	}

	totals.Spend = utils.RoundWithTwoDecimalPlace(totals.Spend)
	totals.Revenue = utils.RoundWithTwoDecimalPlace(totals.Revenue)

	return &totals, nil
}

func (r *dailyMetricRepository) ListRecentByUser(ctx context.Context, userID string, limit int) ([]*domain.LeadEntry, error) {
	query, args, err := squirrel.
		Select(
			"dm.id",
			"c.name",
			"i.platform",
			"dm.date",
			"dm.leads",
			"dm.spend",
			"dm.revenue",
		).
		From(dailyMetricsTable+" dm").
		Join("campaigns c ON c.id = dm.campaign_id").
		Join("integrations i ON i.id = c.integration_id").
		Where(squirrel.Eq{"i.user_id": userID}).
		OrderBy("dm.date DESC", "dm.updated_at DESC").
		Limit(uint64(limit)).
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

	entries := make([]*domain.LeadEntry, 0)
	for rows.Next() {
		var (
			entry    domain.LeadEntry
			platform string
		)

		if err := rows.Scan(
			&entry.ID,
			&entry.CampaignName,
			&platform,
			&entry.Date,
			&entry.Leads,
			&entry.Spend,
			&entry.Revenue,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear métrica: %w", err)
		}

		entry.Platform = domain.Platform(platform)
		entry.Date = utils.DateInLocation(entry.Date, r.location)
		if entry.Leads > 0 {
			entry.CostPerLead = utils.RoundWithTwoDecimalPlace(entry.Spend / float64(entry.Leads))
		}
		entries = append(entries, &entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return entries, nil
}
