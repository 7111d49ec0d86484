package insighting

import "github.com/vfg2006/hexa-dashboard-api/internal/domain"

const (
	messageMissingAPIKey = "AI service unavailable (API Key not configured)"
	messageRateLimited   = "IA sobrecarregada. Exibindo insights demonstrativos."
	messageUnavailable   = "IA indisponível no momento. Exibindo insights demonstrativos."

	chatMockPrefix       = "🤖 [MOCK]: "
	chatRateLimitedReply = chatMockPrefix + "Estou com muitas requisições no momento. Tente novamente em alguns segundos. (Rate Limit Exceeded)"
)

var missingAPIKeyInsights = []string{
	"⚠️ Configure a API Key do Gemini no arquivo .env para receber insights reais.",
	"📈 O tráfego aumentou 20% em relação à semana passada.",
	"🎯 A taxa de conversão de leads está acima da média.",
}

var rateLimitedInsights = []string{
	"⚠️ Tráfego intenso na API da IA. Estes são insights demonstrativos.",
	"💰 Aumente o budget em Vídeo Ads pois o ROI está 15% acima da média.",
	"🚀 Foque em retenção: LTV subiu mas novos leads caíram.",
	"⚠️ Otimize a Landing Page: Taxa de rejeição aumentou 5%.",
}

var unavailableInsights = []string{
	"⚠️ Não foi possível consultar a IA agora. Estes são insights demonstrativos.",
	"💰 Aumente o budget em Vídeo Ads pois o ROI está 15% acima da média.",
	"🚀 Foque em retenção: LTV subiu mas novos leads caíram.",
}

var mockChatReplies = []string{
	"Como estou em modo de demonstração (sem API Key), não posso analisar seus dados reais, mas posso dizer que seus resultados parecem promissores!",
	"Interessante pergunta! No modo completo, eu analisaria seus leads e ROI para responder isso.",
	"Estou operando em modo offline. Configure a GEMINI_API_KEY para habilitar minha inteligência total.",
	"Baseado no que vejo (simulado), recomendo focar em otimizar suas campanhas de vídeo.",
}

// fallbackResponse copia os insights para que quem recebe a resposta não altere os valores padrão
func fallbackResponse(message string, insights []string) *domain.InsightsResponse {
	out := make([]string, len(insights))
	copy(out, insights)

	return &domain.InsightsResponse{
		Insights: out,
		Message:  message,
		Mock:     true,
	}
}
