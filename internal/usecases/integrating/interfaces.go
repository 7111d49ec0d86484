package integrating

import (
	"context"

	"github.com/vfg2006/hexa-dashboard-api/internal/domain"
)

// Integrator define o ciclo de vida das integrações de um usuário
type Integrator interface {
	// Connect troca a credencial no provedor, grava a integração e executa a primeira sincronização
	Connect(ctx context.Context, userID string, platform string, credential string) (*domain.Integration, error)

	// Disconnect marca a integração como DISCONNECTED; o histórico é mantido
	Disconnect(ctx context.Context, userID string, integrationID string) error

	// List retorna as integrações do usuário sem credenciais
	List(ctx context.Context, userID string) ([]*domain.IntegrationSummary, error)

	// SyncNow reconcilia imediatamente uma integração conectada do usuário
	SyncNow(ctx context.Context, userID string, integrationID string) (*domain.IntegrationSyncResult, error)
}
