package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/hexa-dashboard-api/internal/domain"
	"github.com/vfg2006/hexa-dashboard-api/pkg/utils"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

const (
	handleSize    = 12
	driftInterval = 5 * time.Minute
)

var ErrEmptyCredential = errors.New("credencial de autorização vazia")

type platformEntry struct {
	Platform    domain.Platform           `yaml:"platform"`
	TokenPrefix string                    `yaml:"token_prefix"`
	Campaigns   []domain.CampaignSnapshot `yaml:"campaigns"`
}

type document struct {
	Platforms []platformEntry `yaml:"platforms"`
}

// Options controla os adaptadores de demonstração. Com Drift os contadores das campanhas
// ativas crescem um passo a cada driftInterval desde a meia-noite em Location, simulando
// conversões ao vivo. O passo depende só do relógio: reiniciar o processo não faz os
// valores voltarem, e a virada do dia zera o crescimento junto com o bucket diário.
type Options struct {
	Drift    bool
	Location *time.Location
	Now      func() time.Time
}

// Provider é um adaptador de demonstração que devolve campanhas fixas do catálogo
type Provider struct {
	platform  domain.Platform
	prefix    string
	campaigns []domain.CampaignSnapshot
	drift     bool
	location  *time.Location
	now       func() time.Time
}

// Load lê o catálogo embutido e cria um adaptador por plataforma
func Load(opts Options) ([]*Provider, error) {
	return Parse(defaultCatalog, opts)
}

func Parse(data []byte, opts Options) ([]*Provider, error) {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("erro ao ler catálogo de campanhas: %w", err)
	}

	providers := make([]*Provider, 0, len(doc.Platforms))
	for _, entry := range doc.Platforms {
		platform, ok := domain.ParsePlatform(string(entry.Platform))
		if !ok {
			return nil, fmt.Errorf("plataforma desconhecida no catálogo: %s", entry.Platform)
		}
		if entry.TokenPrefix == "" {
			return nil, fmt.Errorf("plataforma %s sem token_prefix", platform)
		}

		providers = append(providers, &Provider{
			platform:  platform,
			prefix:    entry.TokenPrefix,
			campaigns: entry.Campaigns,
			drift:     opts.Drift,
			location:  opts.Location,
			now:       opts.Now,
		})
	}

	return providers, nil
}

func (p *Provider) Platform() domain.Platform {
	return p.platform
}

// Connect troca o código de autorização por handles opacos no formato <prefixo>_access_<id>
func (p *Provider) Connect(_ context.Context, credential string) (*domain.ProviderTokens, error) {
	if strings.TrimSpace(credential) == "" {
		return nil, ErrEmptyCredential
	}

	access, err := utils.GenerateToken(handleSize)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar token de acesso: %w", err)
	}
	refresh, err := utils.GenerateToken(handleSize)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar refresh token: %w", err)
	}

	logrus.WithField("platform", p.platform).Debug("Integração de demonstração conectada")

	return &domain.ProviderTokens{
		AccessToken:  fmt.Sprintf("%s_access_%s", p.prefix, access),
		RefreshToken: fmt.Sprintf("%s_refresh_%s", p.prefix, refresh),
	}, nil
}

// FetchCampaigns devolve os totais cumulativos do catálogo para o handle informado
func (p *Provider) FetchCampaigns(ctx context.Context, accessToken string) ([]domain.CampaignSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if accessToken == "" {
		return nil, domain.ErrAuthExpired
	}

	var step int64
	if p.drift {
		now := p.now()
		step = int64(now.Sub(utils.DayBucket(now, p.location)) / driftInterval)
	}

	snapshots := make([]domain.CampaignSnapshot, len(p.campaigns))
	for i, c := range p.campaigns {
		snapshots[i] = c
		if step > 0 && c.Status == domain.CampaignStatusActive {
			snapshots[i] = grow(c, step)
		}
	}

	return snapshots, nil
}

func grow(c domain.CampaignSnapshot, step int64) domain.CampaignSnapshot {
	c.Leads += step
	c.Spend = utils.RoundWithTwoDecimalPlace(c.Spend + float64(step)*12.5)
	c.Revenue = utils.RoundWithTwoDecimalPlace(c.Revenue + float64(step)*95)
	c.Impressions += step * 300
	c.Clicks += step * 15
	return c
}
