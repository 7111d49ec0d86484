package integrating

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/hexa-dashboard-api/infrastructure/events"
	"github.com/vfg2006/hexa-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/hexa-dashboard-api/internal/domain"
	"github.com/vfg2006/hexa-dashboard-api/internal/usecases/syncing"
	"github.com/vfg2006/hexa-dashboard-api/pkg/apiErrors"
)

type Service struct {
	providers       syncing.ProviderRegistry
	integrationRepo repository.IntegrationRepository
	synchronizer    syncing.Synchronizer
	publisher       events.Publisher
	now             func() time.Time
}

func NewService(
	providers syncing.ProviderRegistry,
	integrationRepo repository.IntegrationRepository,
	synchronizer syncing.Synchronizer,
	publisher events.Publisher,
) *Service {
	return &Service{
		providers:       providers,
		integrationRepo: integrationRepo,
		synchronizer:    synchronizer,
		publisher:       publisher,
		now:             time.Now,
	}
}

func (s *Service) Connect(ctx context.Context, userID string, platformName string, credential string) (*domain.Integration, error) {
	platform, ok := domain.ParsePlatform(platformName)
	if !ok {
		return nil, NewIntegrationError(domain.ErrPlatformNotSupported, apiErrors.ErrPlatformNotSupported, platformName)
	}

	provider, ok := s.providers.Get(platform)
	if !ok {
		return nil, NewIntegrationError(domain.ErrPlatformNotSupported, apiErrors.ErrPlatformNotSupported, platformName)
	}

	if credential == "" {
		return nil, NewIntegrationError(ErrCredentialRequired, apiErrors.ErrMissingRequiredData, "authCode")
	}

	logger := logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"platform": platform,
	})

	tokens, err := provider.Connect(ctx, credential)
	if err != nil {
		logger.WithError(err).Error("Erro ao conectar com o provedor")
		return nil, NewIntegrationError(fmt.Errorf("%w: %w", ErrProviderConnect, err), apiErrors.ErrIntegrationConnect, string(platform))
	}

	s.warnDuplicate(ctx, userID, platform)

	now := s.now()
	integration := &domain.Integration{
		UserID:       userID,
		Platform:     platform,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		Status:       domain.IntegrationStatusConnected,
		LastSync:     &now,
	}

	if err := s.integrationRepo.SaveOrUpdate(ctx, integration); err != nil {
		logger.WithError(err).Error("Erro ao salvar integração")
		return nil, NewIntegrationError(err, apiErrors.ErrDatabaseOperation, "erro ao salvar integração")
	}

	logger.WithField("integration_id", integration.ID).Info("Integração conectada, executando sincronização inicial")

	// a conexão é mantida mesmo que a primeira sincronização falhe
	if _, err := s.sync(ctx, integration); err != nil {
		logger.WithField("integration_id", integration.ID).WithError(err).Warn("Sincronização inicial falhou, será refeita no próximo ciclo")
	}

	return integration, nil
}

func (s *Service) Disconnect(ctx context.Context, userID string, integrationID string) error {
	if _, err := s.ownedIntegration(ctx, userID, integrationID); err != nil {
		return err
	}

	if err := s.integrationRepo.UpdateStatus(ctx, integrationID, domain.IntegrationStatusDisconnected); err != nil {
		if errors.Is(err, domain.ErrIntegrationNotFound) {
			return NewIntegrationErrorWithID(err, apiErrors.ErrIntegrationNotFound, integrationID, "")
		}
		return NewIntegrationErrorWithID(err, apiErrors.ErrDatabaseOperation, integrationID, "erro ao desconectar integração")
	}

	logrus.WithFields(logrus.Fields{
		"user_id":        userID,
		"integration_id": integrationID,
	}).Info("Integração desconectada")

	return nil
}

func (s *Service) List(ctx context.Context, userID string) ([]*domain.IntegrationSummary, error) {
	integrations, err := s.integrationRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, NewIntegrationError(err, apiErrors.ErrDatabaseOperation, "erro ao listar integrações")
	}

	summaries := make([]*domain.IntegrationSummary, 0, len(integrations))
	for _, integration := range integrations {
		summaries = append(summaries, &domain.IntegrationSummary{
			ID:       integration.ID,
			Platform: integration.Platform,
			Status:   integration.Status,
			LastSync: integration.LastSync,
		})
	}

	return summaries, nil
}

func (s *Service) SyncNow(ctx context.Context, userID string, integrationID string) (*domain.IntegrationSyncResult, error) {
	integration, err := s.ownedIntegration(ctx, userID, integrationID)
	if err != nil {
		return nil, err
	}

	if !integration.IsConnected() {
		return nil, NewIntegrationErrorWithID(ErrNotConnected, apiErrors.ErrIntegrationNotConnected, integrationID, string(integration.Status))
	}

	result, err := s.sync(ctx, integration)
	if err != nil {
		var fetchErr *domain.ProviderFetchError
		switch {
		case errors.Is(err, domain.ErrSyncInProgress):
			return nil, NewIntegrationErrorWithID(err, apiErrors.ErrSyncInProgress, integrationID, "")
		case errors.As(err, &fetchErr):
			return nil, NewIntegrationErrorWithID(err, apiErrors.ErrSyncProviderFetch, integrationID, "")
		default:
			return nil, NewIntegrationErrorWithID(err, apiErrors.ErrInternalServer, integrationID, "")
		}
	}

	return result, nil
}

// sync reconcilia uma integração fora do agendador e publica os deltas encontrados
func (s *Service) sync(ctx context.Context, integration *domain.Integration) (*domain.IntegrationSyncResult, error) {
	result, err := s.synchronizer.SyncIntegration(ctx, integration)
	if err != nil {
		return nil, err
	}

	outcome := &domain.SyncOutcome{Timestamp: result.SyncedAt}
	outcome.Merge(result)
	syncing.AnnounceOutcome(ctx, s.publisher, outcome)

	return result, nil
}

func (s *Service) ownedIntegration(ctx context.Context, userID string, integrationID string) (*domain.Integration, error) {
	integration, err := s.integrationRepo.GetByID(ctx, integrationID)
	if err != nil {
		if errors.Is(err, domain.ErrIntegrationNotFound) {
			return nil, NewIntegrationErrorWithID(err, apiErrors.ErrIntegrationNotFound, integrationID, "")
		}
		return nil, NewIntegrationErrorWithID(err, apiErrors.ErrDatabaseOperation, integrationID, "erro ao buscar integração")
	}

	if integration.UserID != userID {
		return nil, NewIntegrationErrorWithID(domain.ErrIntegrationForbidden, apiErrors.ErrIntegrationForbidden, integrationID, "")
	}

	return integration, nil
}

// warnDuplicate registra quando o usuário já tem a mesma plataforma conectada; a nova linha é criada mesmo assim
func (s *Service) warnDuplicate(ctx context.Context, userID string, platform domain.Platform) {
	active, err := s.integrationRepo.ListActive(ctx, &userID)
	if err != nil {
		logrus.WithError(err).Debug("Não foi possível verificar integrações duplicadas")
		return
	}

	for _, integration := range active {
		if integration.Platform == platform {
			logrus.WithFields(logrus.Fields{
				"user_id":        userID,
				"platform":       platform,
				"integration_id": integration.ID,
			}).Warn("Usuário já possui integração conectada para a plataforma")
			return
		}
	}
}
