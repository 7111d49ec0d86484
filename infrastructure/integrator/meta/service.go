package meta

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/hexa-dashboard-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/hexa-dashboard-api/internal/domain"
)

// Provider é o adaptador real do Facebook Ads sobre a Graph API
type Provider struct {
	client metaclient.Client
}

func New(client metaclient.Client) *Provider {
	return &Provider{
		client: client,
	}
}

func (p *Provider) Platform() domain.Platform {
	return domain.PlatformFacebook
}

// Connect valida o token recebido do login do Facebook e, com as credenciais do app
// configuradas, troca-o por um token de longa duração. A Graph API não usa refresh token.
func (p *Provider) Connect(ctx context.Context, credential string) (*domain.ProviderTokens, error) {
	user, err := p.client.GetMe(ctx, credential)
	if err != nil {
		return nil, fmt.Errorf("token do Facebook inválido: %w", err)
	}

	accessToken := credential
	if p.client.CanExchangeTokens() {
		token, err := p.client.ExchangeLongLivedToken(ctx, credential)
		if err != nil {
			return nil, err
		}
		accessToken = token.AccessToken
	}

	logrus.WithField("meta_user_id", user.ID).Info("Conta do Facebook conectada")

	return &domain.ProviderTokens{AccessToken: accessToken}, nil
}

// FetchCampaigns lê os acumulados do dia de todas as contas de anúncio do usuário.
// Falha numa conta interrompe a leitura inteira para não gravar um retrato parcial.
func (p *Provider) FetchCampaigns(ctx context.Context, accessToken string) ([]domain.CampaignSnapshot, error) {
	accounts, err := p.client.ListAdAccounts(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar contas de anúncio: %w", err)
	}

	snapshots := make([]domain.CampaignSnapshot, 0)
	for _, account := range accounts {
		campaigns, err := p.client.ListCampaigns(ctx, accessToken, account.ID)
		if err != nil {
			return nil, fmt.Errorf("erro ao listar campanhas da conta %s: %w", account.ID, err)
		}

		statuses := make(map[string]string, len(campaigns))
		for _, c := range campaigns {
			statuses[c.ID] = c.Status
		}

		insights, err := p.client.GetCampaignInsightsToday(ctx, accessToken, account.ID)
		if err != nil {
			return nil, fmt.Errorf("erro ao buscar insights da conta %s: %w", account.ID, err)
		}

		for i := range insights {
			snapshot, err := insights[i].ToSnapshot(statuses[insights[i].CampaignID])
			if err != nil {
				return nil, fmt.Errorf("erro ao ler insights da conta %s: %w", account.ID, err)
			}
			snapshots = append(snapshots, snapshot)
		}

		logrus.WithFields(logrus.Fields{
			"account_id": account.ID,
			"campaigns":  len(insights),
		}).Debug("insights: contas processadas")
	}

	return snapshots, nil
}
