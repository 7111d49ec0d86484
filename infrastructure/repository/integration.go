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
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/hexa-dashboard-api/infrastructure/crypto"
	"github.com/vfg2006/hexa-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/hexa-dashboard-api/internal/domain"
)

const (
	integrationsTable = "integrations"
)

var integrationColumns = []string{
	"id",
	"user_id",
	"platform",
	"access_token",
	"refresh_token",
	"status",
	"last_sync",
	"created_at",
	"updated_at",
}

type IntegrationRepository interface {
	SaveOrUpdate(ctx context.Context, integration *domain.Integration) error
	GetByID(ctx context.Context, id string) (*domain.Integration, error)
	ListActive(ctx context.Context, userID *string) ([]*domain.Integration, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Integration, error)
	UpdateStatus(ctx context.Context, id string, status domain.IntegrationStatus) error
	TouchLastSync(ctx context.Context, id string, syncedAt time.Time) error
}

type integrationRepository struct {
	conn   postgres.Queryer
	sealer crypto.Sealer
}

func NewIntegrationRepository(conn postgres.Queryer, sealer crypto.Sealer) IntegrationRepository {
	return &integrationRepository{
		conn:   conn,
		sealer: sealer,
	}
}

func (r *integrationRepository) SaveOrUpdate(ctx context.Context, integration *domain.Integration) error {
	if integration.ID == "" {
		integration.ID = uuid.NewString()
	}

	accessToken, err := r.sealer.Seal(integration.AccessToken)
	if err != nil {
		return fmt.Errorf("erro ao cifrar access token: %w", err)
	}
	refreshToken, err := r.sealer.Seal(integration.RefreshToken)
	if err != nil {
		return fmt.Errorf("erro ao cifrar refresh token: %w", err)
	}

	query, args, err := squirrel.
		Insert(integrationsTable).
		Columns("id", "user_id", "platform", "access_token", "refresh_token", "status", "last_sync").
		Values(
			integration.ID,
			integration.UserID,
			string(integration.Platform),
			accessToken,
			refreshToken,
			string(integration.Status),
			integration.LastSync,
		).
		Suffix(`
			ON CONFLICT (id) DO UPDATE SET
				access_token = EXCLUDED.access_token,
				refresh_token = EXCLUDED.refresh_token,
				status = EXCLUDED.status,
				last_sync = EXCLUDED.last_sync,
				updated_at = NOW()
			RETURNING created_at, updated_at
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&integration.CreatedAt, &integration.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao salvar integração: %w", err)
	}

	return nil
}

func (r *integrationRepository) GetByID(ctx context.Context, id string) (*domain.Integration, error) {
	query, args, err := squirrel.
		Select(integrationColumns...).
		From(integrationsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	integration, err := r.scanIntegration(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrIntegrationNotFound
		}
		return nil, fmt.Errorf("erro ao buscar integração %s: %w", id, err)
	}

	return integration, nil
}

func (r *integrationRepository) ListActive(ctx context.Context, userID *string) ([]*domain.Integration, error) {
	builder := squirrel.
		Select(integrationColumns...).
		From(integrationsTable).
		Where(squirrel.Eq{"status": string(domain.IntegrationStatusConnected)})

	if userID != nil {
		builder = builder.Where(squirrel.Eq{"user_id": *userID})
	}

	query, args, err := builder.
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.list(ctx, query, args...)
}

func (r *integrationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Integration, error) {
	query, args, err := squirrel.
		Select(integrationColumns...).
		From(integrationsTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.list(ctx, query, args...)
}

func (r *integrationRepository) UpdateStatus(ctx context.Context, id string, status domain.IntegrationStatus) error {
	query, args, err := squirrel.
		Update(integrationsTable).
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.execSingleRow(ctx, query, args...)
}

func (r *integrationRepository) TouchLastSync(ctx context.Context, id string, syncedAt time.Time) error {
	query, args, err := squirrel.
		Update(integrationsTable).
		Set("last_sync", syncedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.execSingleRow(ctx, query, args...)
}

func (r *integrationRepository) execSingleRow(ctx context.Context, query string, args ...any) error {
	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrIntegrationNotFound
	}

	return nil
}

func (r *integrationRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Integration, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	integrations := make([]*domain.Integration, 0)
	for rows.Next() {
		integration, err := r.scanIntegration(rows)
		if err != nil {
			// credencial ilegível não pode derrubar o ciclo inteiro
			if errors.Is(err, crypto.ErrDecryptFailed) || errors.Is(err, crypto.ErrMalformed) {
				logrus.WithError(err).Warn("Integração com credencial ilegível ignorada")
				continue
			}
			return nil, fmt.Errorf("erro ao escanear integração: %w", err)
		}
		integrations = append(integrations, integration)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return integrations, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *integrationRepository) scanIntegration(row rowScanner) (*domain.Integration, error) {
	var (
		integration  domain.Integration
		platform     string
		status       string
		accessToken  string
		refreshToken string
		lastSync     sql.NullTime
	)

	err := row.Scan(
		&integration.ID,
		&integration.UserID,
		&platform,
		&accessToken,
		&refreshToken,
		&status,
		&lastSync,
		&integration.CreatedAt,
		&integration.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	integration.Platform = domain.Platform(platform)
	integration.Status = domain.IntegrationStatus(status)
	if lastSync.Valid {
		integration.LastSync = &lastSync.Time
	}

	if integration.AccessToken, err = r.sealer.Open(accessToken); err != nil {
		return nil, fmt.Errorf("integração %s: %w", integration.ID, err)
	}
	if integration.RefreshToken, err = r.sealer.Open(refreshToken); err != nil {
		return nil, fmt.Errorf("integração %s: %w", integration.ID, err)
	}

	return &integration, nil
}
