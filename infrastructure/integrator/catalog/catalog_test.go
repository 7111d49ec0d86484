package catalog

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/hexa-dashboard-api/internal/domain"
)

func providerFor(t *testing.T, providers []*Provider, platform domain.Platform) *Provider {
	t.Helper()

	for _, p := range providers {
		if p.Platform() == platform {
			return p
		}
	}
	t.Fatalf("adaptador %s não encontrado", platform)
	return nil
}

func TestLoad(t *testing.T) {
	providers, err := Load(Options{})
	require.NoError(t, err)
	require.Len(t, providers, len(domain.Platforms))

	facebook := providerFor(t, providers, domain.PlatformFacebook)
	snapshots, err := facebook.FetchCampaigns(context.Background(), "fb_access_x")
	require.NoError(t, err)
	require.Len(t, snapshots, 2)

	assert.Equal(t, domain.CampaignSnapshot{
		ExternalID:  "fb_cmp_123",
		Name:        "Campanha Verão 2025 - FB",
		Status:      domain.CampaignStatusActive,
		Spend:       1250.50,
		Leads:       45,
		Revenue:     4500,
		Impressions: 15000,
		Clicks:      850,
	}, snapshots[0])
	assert.Equal(t, domain.CampaignStatusPaused, snapshots[1].Status)
}

func TestProvider_Connect(t *testing.T) {
	providers, err := Load(Options{})
	require.NoError(t, err)

	tests := []struct {
		name       string
		platform   domain.Platform
		credential string
		prefix     string
		wantErr    error
	}{
		{name: "Facebook", platform: domain.PlatformFacebook, credential: "code-1", prefix: "fb_"},
		{name: "TikTok", platform: domain.PlatformTikTok, credential: "code-2", prefix: "tiktok_"},
		{name: "YouTube", platform: domain.PlatformYouTube, credential: "code-3", prefix: "yt_"},
		{name: "Credencial vazia", platform: domain.PlatformGoogle, credential: "  ", wantErr: ErrEmptyCredential},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := providerFor(t, providers, tt.platform)

			tokens, err := p.Connect(context.Background(), tt.credential)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(tokens.AccessToken, tt.prefix+"access_"))
			assert.True(t, strings.HasPrefix(tokens.RefreshToken, tt.prefix+"refresh_"))
			assert.Len(t, tokens.AccessToken, len(tt.prefix+"access_")+handleSize)
		})
	}
}

func TestProvider_FetchCampaigns_Drift(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	now := time.Date(2025, 3, 10, 0, 2, 0, 0, loc)
	clock := func() time.Time { return now }

	fetch := func(t *testing.T, providers []*Provider, handle string) []domain.CampaignSnapshot {
		t.Helper()
		snapshots, err := providerFor(t, providers, domain.PlatformFacebook).FetchCampaigns(context.Background(), handle)
		require.NoError(t, err)
		return snapshots
	}

	providers, err := Load(Options{Drift: true, Location: loc, Now: clock})
	require.NoError(t, err)

	first := fetch(t, providers, "fb_access_a")
	assert.Equal(t, int64(45), first[0].Leads, "primeiro intervalo do dia usa o catálogo")

	now = now.Add(5 * time.Minute)
	second := fetch(t, providers, "fb_access_a")
	assert.Equal(t, int64(46), second[0].Leads)
	assert.Equal(t, 4595.0, second[0].Revenue)

	now = now.Add(5 * time.Minute)
	third := fetch(t, providers, "fb_access_a")
	assert.Equal(t, int64(47), third[0].Leads)
	assert.Equal(t, 1275.5, third[0].Spend)
	assert.Equal(t, int64(5), third[1].Leads, "campanha pausada não cresce")

	restarted, err := Load(Options{Drift: true, Location: loc, Now: clock})
	require.NoError(t, err)
	assert.Equal(t, third, fetch(t, restarted, "fb_access_b"), "reinício não faz os valores voltarem")

	now = time.Date(2025, 3, 11, 0, 1, 0, 0, loc)
	nextDay := fetch(t, providers, "fb_access_a")
	assert.Equal(t, int64(45), nextDay[0].Leads, "virada do dia recomeça do catálogo")
}

func TestProvider_FetchCampaigns_Erros(t *testing.T) {
	providers, err := Load(Options{})
	require.NoError(t, err)
	google := providerFor(t, providers, domain.PlatformGoogle)

	_, err = google.FetchCampaigns(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrAuthExpired)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = google.FetchCampaigns(ctx, "google_access_x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParse_Invalido(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "YAML malformado", data: "platforms: [\n"},
		{name: "Plataforma desconhecida", data: "platforms:\n  - platform: ORKUT\n    token_prefix: ok\n"},
		{name: "Sem prefixo", data: "platforms:\n  - platform: GOOGLE\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), Options{})
			assert.Error(t, err)
		})
	}
}
