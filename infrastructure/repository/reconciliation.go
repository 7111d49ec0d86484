package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vfg2006/hexa-dashboard-api/internal/domain"
)

// Transactor é implementado por *postgres.Connection
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error
}

// ReconciliationStore grava o snapshot de uma campanha e devolve o estado anterior do dia,
// tudo numa única transação.
type ReconciliationStore interface {
	ReconcileCampaignDay(ctx context.Context, integrationID string, snapshot domain.CampaignSnapshot, day time.Time) (*domain.DailyMetric, error)
}

type reconciliationStore struct {
	conn     Transactor
	location *time.Location
}

func NewReconciliationStore(conn Transactor, location *time.Location) ReconciliationStore {
	return &reconciliationStore{
		conn:     conn,
		location: location,
	}
}

// ReconcileCampaignDay faz upsert da campanha, lê a métrica do dia e a sobrescreve.
// O upsert trava a linha da campanha até o commit, então dois ciclos concorrentes
// para a mesma campanha nunca leem a mesma base. Retorna nil quando não havia métrica no dia.
func (s *reconciliationStore) ReconcileCampaignDay(
	ctx context.Context,
	integrationID string,
	snapshot domain.CampaignSnapshot,
	day time.Time,
) (*domain.DailyMetric, error) {
	var previous *domain.DailyMetric

	err := s.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		campaigns := NewCampaignRepository(tx)
		metrics := NewDailyMetricRepository(tx, s.location)

		campaign, err := campaigns.UpsertByExternalKey(ctx, integrationID, snapshot)
		if err != nil {
			return &domain.StoreWriteError{Op: "upsert campaign", CampaignExternalID: snapshot.ExternalID, Err: err}
		}

		previous, err = metrics.FindForDay(ctx, campaign.ID, day)
		if err != nil {
			return &domain.StoreWriteError{Op: "find previous daily metric", CampaignExternalID: snapshot.ExternalID, Err: err}
		}

		current := &domain.DailyMetric{
			CampaignID:  campaign.ID,
			Date:        day,
			Spend:       snapshot.Spend,
			Impressions: snapshot.Impressions,
			Clicks:      snapshot.Clicks,
			Leads:       snapshot.Leads,
			Revenue:     snapshot.Revenue,
		}
		if previous != nil {
			current.ID = previous.ID
		}

		if err := metrics.Upsert(ctx, current); err != nil {
			return &domain.StoreWriteError{Op: "upsert daily metric", CampaignExternalID: snapshot.ExternalID, Err: err}
		}

		return nil
	})
	if err != nil {
		var writeErr *domain.StoreWriteError
		if errors.As(err, &writeErr) {
			return nil, err
		}
		return nil, &domain.StoreWriteError{Op: "commit", CampaignExternalID: snapshot.ExternalID, Err: err}
	}

	return previous, nil
}
