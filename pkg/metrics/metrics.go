package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hexa"

// Metrics concentra os coletores do serviço num registry próprio.
// Todos os métodos aceitam receptor nil, então o coletor é opcional para quem o usa.
type Metrics struct {
	SyncPassesTotal           *prometheus.CounterVec
	SyncPassDuration          prometheus.Histogram
	SyncSkippedTotal          prometheus.Counter
	IntegrationSyncsTotal     *prometheus.CounterVec
	CampaignWritesFailedTotal *prometheus.CounterVec
	NewLeadsTotal             prometheus.Counter
	NewRevenueTotal           prometheus.Counter
	CorrectionsTotal          *prometheus.CounterVec

	APIRequestsTotal   *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec

	EventsPublishedTotal *prometheus.CounterVec
	EventsDroppedTotal   *prometheus.CounterVec

	registry *prometheus.Registry
}

func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		SyncPassesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sync_passes_total",
				Help:      "Ciclos de sincronização executados por resultado",
			},
			[]string{"result"},
		),
		SyncPassDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "sync_pass_duration_seconds",
				Help:      "Duração de cada ciclo de sincronização",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
		),
		SyncSkippedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sync_skipped_total",
				Help:      "Disparos ignorados porque um ciclo anterior ainda estava em execução",
			},
		),
		IntegrationSyncsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "integration_syncs_total",
				Help:      "Sincronizações de integração por plataforma e resultado",
			},
			[]string{"platform", "result"},
		),
		CampaignWritesFailedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "campaign_writes_failed_total",
				Help:      "Campanhas que não puderam ser gravadas",
			},
			[]string{"platform"},
		),
		NewLeadsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "new_leads_total",
				Help:      "Leads novos detectados pela reconciliação",
			},
		),
		NewRevenueTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "new_revenue_total",
				Help:      "Receita nova detectada pela reconciliação",
			},
		),
		CorrectionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "corrections_total",
				Help:      "Reduções de valores acumulados reportadas pelos provedores",
			},
			[]string{"metric"},
		),
		APIRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Requisições HTTP atendidas",
			},
			[]string{"method", "path", "status"},
		),
		APIRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_request_duration_seconds",
				Help:      "Latência das requisições HTTP",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		EventsPublishedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_published_total",
				Help:      "Eventos aceitos pelo despachante",
			},
			[]string{"topic"},
		),
		EventsDroppedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_dropped_total",
				Help:      "Eventos descartados com a fila cheia",
			},
			[]string{"topic"},
		),
		registry: reg,
	}

	reg.MustRegister(
		m.SyncPassesTotal,
		m.SyncPassDuration,
		m.SyncSkippedTotal,
		m.IntegrationSyncsTotal,
		m.CampaignWritesFailedTotal,
		m.NewLeadsTotal,
		m.NewRevenueTotal,
		m.CorrectionsTotal,
		m.APIRequestsTotal,
		m.APIRequestDuration,
		m.EventsPublishedTotal,
		m.EventsDroppedTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler expõe o registry no formato do Prometheus
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordSyncPass(result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.SyncPassesTotal.WithLabelValues(result).Inc()
	m.SyncPassDuration.Observe(duration.Seconds())
}

func (m *Metrics) RecordSyncSkipped() {
	if m == nil {
		return
	}
	m.SyncSkippedTotal.Inc()
}

func (m *Metrics) RecordIntegrationSync(platform, result string) {
	if m == nil {
		return
	}
	m.IntegrationSyncsTotal.WithLabelValues(platform, result).Inc()
}

func (m *Metrics) RecordCampaignWriteFailed(platform string) {
	if m == nil {
		return
	}
	m.CampaignWritesFailedTotal.WithLabelValues(platform).Inc()
}

func (m *Metrics) RecordDeltas(leads int64, revenue float64) {
	if m == nil {
		return
	}
	if leads > 0 {
		m.NewLeadsTotal.Add(float64(leads))
	}
	if revenue > 0 {
		m.NewRevenueTotal.Add(revenue)
	}
}

func (m *Metrics) RecordCorrection(metric string) {
	if m == nil {
		return
	}
	m.CorrectionsTotal.WithLabelValues(metric).Inc()
}

func (m *Metrics) RecordAPIRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.APIRequestsTotal.WithLabelValues(method, path, statusClass(status)).Inc()
	m.APIRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *Metrics) RecordEventPublished(topic string) {
	if m == nil {
		return
	}
	m.EventsPublishedTotal.WithLabelValues(topic).Inc()
}

func (m *Metrics) RecordEventDropped(topic string) {
	if m == nil {
		return
	}
	m.EventsDroppedTotal.WithLabelValues(topic).Inc()
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
