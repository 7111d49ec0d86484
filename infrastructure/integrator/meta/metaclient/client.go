package metaclient

import (
	"context"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/hexa-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/hexa-dashboard-api/internal/config"
	"github.com/vfg2006/hexa-dashboard-api/internal/domain"
	"github.com/vfg2006/hexa-dashboard-api/pkg/httpclient"
)

type Client interface {
	GetMe(ctx context.Context, accessToken string) (*metadomain.User, error)
	ExchangeLongLivedToken(ctx context.Context, shortLivedToken string) (*TokenResponse, error)
	ListAdAccounts(ctx context.Context, accessToken string) ([]metadomain.AdAccount, error)
	ListCampaigns(ctx context.Context, accessToken, accountID string) ([]metadomain.Campaign, error)
	GetCampaignInsightsToday(ctx context.Context, accessToken, accountID string) ([]metadomain.CampaignInsight, error)
	CanExchangeTokens() bool
}

type MetaClient struct {
	cfg  config.Meta
	http *httpclient.Client
}

func NewClient(cfg config.Meta) Client {
	return &MetaClient{
		cfg: cfg,
		http: httpclient.New(httpclient.Config{
			BaseURL:   cfg.URL,
			RateLimit: cfg.RateLimit,
		}),
	}
}

func (c *MetaClient) CanExchangeTokens() bool {
	return c.cfg.AppID != "" && c.cfg.AppSecret != ""
}

// translateError converte respostas de erro da Graph API. Erros de credencial
// envolvem domain.ErrAuthExpired para que o chamador não precise conhecer a API.
func translateError(err error) error {
	var statusErr *httpclient.StatusError
	if !errors.As(err, &statusErr) {
		return err
	}

	var errorResp metadomain.ErrorResponse
	if jsonErr := jsoniter.Unmarshal(statusErr.Body, &errorResp); jsonErr == nil && errorResp.Error.Code != 0 {
		if errorResp.IsTokenExpired() {
			logrus.WithFields(logrus.Fields{
				"code":    errorResp.Error.Code,
				"subcode": errorResp.Error.ErrorSubcode,
			}).Warn("Token expirado detectado pela API Meta")
			return fmt.Errorf("%w: %s", domain.ErrAuthExpired, errorResp.Error.Message)
		}
		return fmt.Errorf("erro na API Meta (código %d): %s", errorResp.Error.Code, errorResp.Error.Message)
	}

	if metadomain.IsTokenExpiredMessage(string(statusErr.Body)) {
		return fmt.Errorf("%w: %s", domain.ErrAuthExpired, string(statusErr.Body))
	}

	return fmt.Errorf("erro na resposta da API Meta: %w", err)
}
