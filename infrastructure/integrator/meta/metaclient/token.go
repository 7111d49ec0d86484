package metaclient

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/hexa-dashboard-api/infrastructure/integrator/meta/domain"
)

// TokenResponse representa a resposta da API do Meta ao trocar um token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

var ErrEmptyToken = errors.New("token de acesso não pode ser vazio")

// GetMe valida o token consultando o endpoint /me
func (c *MetaClient) GetMe(ctx context.Context, accessToken string) (*metadomain.User, error) {
	if accessToken == "" {
		return nil, ErrEmptyToken
	}

	params := url.Values{}
	params.Add("fields", "id,name")
	params.Add("access_token", accessToken)

	resp, err := c.http.Get(ctx, "me", params)
	if err != nil {
		return nil, translateError(err)
	}

	var user metadomain.User
	if err := resp.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

// ExchangeLongLivedToken troca um token de curta duração por um de longa duração
func (c *MetaClient) ExchangeLongLivedToken(ctx context.Context, shortLivedToken string) (*TokenResponse, error) {
	if shortLivedToken == "" {
		return nil, ErrEmptyToken
	}

	params := url.Values{}
	params.Add("grant_type", "fb_exchange_token")
	params.Add("client_id", c.cfg.AppID)
	params.Add("client_secret", c.cfg.AppSecret)
	params.Add("fb_exchange_token", shortLivedToken)

	resp, err := c.http.Get(ctx, "oauth/access_token", params)
	if err != nil {
		return nil, fmt.Errorf("erro ao obter token de longa duração: %w", translateError(err))
	}

	var tokenResp TokenResponse
	if err := resp.Decode(&tokenResp); err != nil {
		return nil, err
	}

	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("token retornado pela API é vazio")
	}

	logrus.Infof("Token de longa duração obtido com sucesso. Expira em %s.", FormatDuration(tokenResp.ExpiresIn))

	return &tokenResp, nil
}

// FormatDuration formata a duração em segundos para um formato legível
func FormatDuration(seconds int64) string {
	duration := time.Duration(seconds) * time.Second
	days := duration / (24 * time.Hour)
	hours := (duration % (24 * time.Hour)) / time.Hour
	minutes := (duration % time.Hour) / time.Minute

	return fmt.Sprintf("%d dias, %d horas e %d minutos", days, hours, minutes)
}
