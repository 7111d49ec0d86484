package domain

import (
	"context"
	"strings"
	"time"
)

type Platform string

const (
	PlatformFacebook  Platform = "FACEBOOK"
	PlatformGoogle    Platform = "GOOGLE"
	PlatformTikTok    Platform = "TIKTOK"
	PlatformInstagram Platform = "INSTAGRAM"
	PlatformYouTube   Platform = "YOUTUBE"
)

// Platforms lista as plataformas suportadas na ordem exibida no dashboard
var Platforms = []Platform{
	PlatformFacebook,
	PlatformGoogle,
	PlatformTikTok,
	PlatformInstagram,
	PlatformYouTube,
}

// ParsePlatform normaliza o nome recebido da API (ex: "facebook") para a constante
func ParsePlatform(value string) (Platform, bool) {
	candidate := Platform(strings.ToUpper(strings.TrimSpace(value)))
	for _, p := range Platforms {
		if p == candidate {
			return p, true
		}
	}
	return "", false
}

type IntegrationStatus string

const (
	IntegrationStatusConnected    IntegrationStatus = "CONNECTED"
	IntegrationStatusDisconnected IntegrationStatus = "DISCONNECTED"
	IntegrationStatusPending      IntegrationStatus = "PENDING"
)

type Integration struct {
	ID           string            `json:"id"`
	UserID       string            `json:"user_id"`
	Platform     Platform          `json:"platform"`
	AccessToken  string            `json:"-"`
	RefreshToken string            `json:"-"`
	Status       IntegrationStatus `json:"status"`
	LastSync     *time.Time        `json:"last_sync"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

func (i *Integration) IsConnected() bool {
	return i.Status == IntegrationStatusConnected
}

// IntegrationSummary é a visão pública de uma integração (sem credenciais)
type IntegrationSummary struct {
	ID       string            `json:"id"`
	Platform Platform          `json:"platform"`
	Status   IntegrationStatus `json:"status"`
	LastSync *time.Time        `json:"lastSync"`
}

type ProviderTokens struct {
	AccessToken  string
	RefreshToken string
}

// Provider é o contrato de um adaptador de plataforma de anúncios.
// FetchCampaigns devolve totais cumulativos do dia corrente, nunca deltas.
type Provider interface {
	Platform() Platform
	Connect(ctx context.Context, credential string) (*ProviderTokens, error)
	FetchCampaigns(ctx context.Context, accessToken string) ([]CampaignSnapshot, error)
}
