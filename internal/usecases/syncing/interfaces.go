package syncing

import (
	"context"

	"github.com/vfg2006/hexa-dashboard-api/internal/domain"
)

// ProviderRegistry resolve o adaptador de uma plataforma
type ProviderRegistry interface {
	Get(platform domain.Platform) (domain.Provider, bool)
}

// Synchronizer define a interface do motor de reconciliação usada pelo agendador e pelos handlers
type Synchronizer interface {
	// SyncIntegration reconcilia todas as campanhas de uma integração e devolve os deltas do ciclo
	SyncIntegration(ctx context.Context, integration *domain.Integration) (*domain.IntegrationSyncResult, error)

	// SyncAll reconcilia todas as integrações conectadas e soma os deltas num único resultado
	SyncAll(ctx context.Context) (*domain.SyncOutcome, error)
}
