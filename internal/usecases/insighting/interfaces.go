package insighting

import (
	"context"

	"github.com/vfg2006/hexa-dashboard-api/internal/domain"
)

// Insighter gera textos sobre as métricas do dashboard
type Insighter interface {
	// Enabled indica se há chave de API configurada para o gerador
	Enabled() bool

	// GenerateInsights devolve de 3 a 4 insights; falhas do gerador viram insights demonstrativos
	GenerateInsights(ctx context.Context, summary domain.MetricsSummary) (*domain.InsightsResponse, error)

	// Chat responde uma pergunta do usuário no contexto da página atual
	Chat(ctx context.Context, message string, pageContext map[string]any) (*domain.ChatReply, error)
}
