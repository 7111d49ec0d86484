package domain

// MetricsSummary é o resumo enviado ao gerador de insights.
// O conteúdo é livre; normalmente é o próprio DashboardMetrics do usuário.
type MetricsSummary map[string]any

type InsightsResponse struct {
	Insights []string `json:"insights"`
	Message  string   `json:"message,omitempty"`
	Mock     bool     `json:"mock,omitempty"`
}

type ChatReply struct {
	Reply string `json:"reply"`
	Mock  bool   `json:"mock,omitempty"`
}
