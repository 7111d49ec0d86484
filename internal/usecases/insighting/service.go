package insighting

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/hexa-dashboard-api/infrastructure/integrator/gemini"
	"github.com/vfg2006/hexa-dashboard-api/internal/domain"
)

const maxLineInsights = 4

var (
	ErrMetricsRequired = errors.New("metrics data is required")
	ErrMessageRequired = errors.New("message is required")
)

var (
	json           = jsoniter.ConfigCompatibleWithStandardLibrary
	jsonArrayRegex = regexp.MustCompile(`\[[\s\S]*\]`)
)

const insightsPrompt = `
Atue como um Especialista em Marketing e Análise de Dados Sênior.
Analise as seguintes métricas do dashboard e forneça 3-4 insights estratégicos, curtos e altamente acionáveis.

Dados do Dashboard: %s

Requisitos:
1. Responda APENAS com um array JSON de strings. SEM markdown, SEM aspas extras fora do array.
2. Cada insight deve ter no máximo 20 palavras.
3. Use emojis no início de cada insight para categorizar (ex: 💰, 🚀, ⚠️).
4. Foco em ROI, otimização de campanhas e crescimento.

Exemplo de formato:
["💰 Aumente o budget em Vídeo Ads pois o ROI está 15%% acima da média.", "🚀 Foque em retenção: LTV subiu mas novos leads caíram.", "⚠️ Otimize a Landing Page: Taxa de rejeição aumentou 5%%."]
`

const chatPrompt = `
Contexto do Sistema: Dashboard Administrativo "Hexa Dashboard".
Contexto Atual da Página/Dados: %s

Pergunta do Usuário: %s

Responda de forma concisa, profissional e útil, como um assistente virtual do dashboard.
`

type Service struct {
	generator gemini.Generator
	pick      func(n int) int
}

func NewService(generator gemini.Generator) *Service {
	return &Service{
		generator: generator,
		pick:      rand.Intn,
	}
}

func (s *Service) Enabled() bool {
	return s.generator != nil && s.generator.Enabled()
}

// GenerateInsights pede ao gerador insights sobre o resumo. Sem chave, com limite excedido
// ou em qualquer outra falha devolve insights demonstrativos com Mock=true.
func (s *Service) GenerateInsights(ctx context.Context, summary domain.MetricsSummary) (*domain.InsightsResponse, error) {
	if summary == nil {
		return nil, ErrMetricsRequired
	}

	if !s.Enabled() {
		logrus.Warn("Chave da API de IA não configurada, retornando insights demonstrativos")
		return fallbackResponse(messageMissingAPIKey, missingAPIKeyInsights), nil
	}

	payload, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar métricas: %w", err)
	}

	text, err := s.generator.GenerateContent(ctx, fmt.Sprintf(insightsPrompt, payload))
	if err != nil {
		if errors.Is(err, gemini.ErrRateLimited) {
			logrus.WithError(err).Warn("Limite da IA excedido, retornando insights demonstrativos")
			return fallbackResponse(messageRateLimited, rateLimitedInsights), nil
		}

		logrus.WithError(err).Error("Erro ao gerar insights, retornando insights demonstrativos")
		return fallbackResponse(messageUnavailable, unavailableInsights), nil
	}

	logrus.WithField("raw_response", text).Debug("Resposta da IA recebida")

	return &domain.InsightsResponse{Insights: ParseInsights(text)}, nil
}

// Chat responde à mensagem do usuário. Sem chave responde em modo demonstração.
func (s *Service) Chat(ctx context.Context, message string, pageContext map[string]any) (*domain.ChatReply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrMessageRequired
	}

	if !s.Enabled() {
		reply := mockChatReplies[s.pick(len(mockChatReplies))]
		return &domain.ChatReply{Reply: chatMockPrefix + reply, Mock: true}, nil
	}

	if pageContext == nil {
		pageContext = map[string]any{}
	}

	payload, err := json.Marshal(pageContext)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar contexto: %w", err)
	}

	text, err := s.generator.GenerateContent(ctx, fmt.Sprintf(chatPrompt, payload, message))
	if err != nil {
		if errors.Is(err, gemini.ErrRateLimited) {
			logrus.WithError(err).Warn("Limite da IA excedido no chat")
			return &domain.ChatReply{Reply: chatRateLimitedReply, Mock: true}, nil
		}
		return nil, fmt.Errorf("erro ao processar mensagem do chat: %w", err)
	}

	return &domain.ChatReply{Reply: text}, nil
}

// ParseInsights extrai o array JSON da resposta; sem array, usa as linhas não vazias (até 4)
func ParseInsights(text string) []string {
	if match := jsonArrayRegex.FindString(text); match != "" {
		var insights []string
		if err := json.Unmarshal([]byte(match), &insights); err == nil {
			return insights
		}
		logrus.Warn("Array de insights inválido, usando a resposta inteira")
		return []string{text}
	}

	insights := make([]string, 0, maxLineInsights)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "[") || strings.HasPrefix(line, "]") {
			continue
		}
		insights = append(insights, line)
		if len(insights) == maxLineInsights {
			break
		}
	}

	return insights
}
