package domain

import "time"

const (
	CorrectionMetricLeads   = "leads"
	CorrectionMetricRevenue = "revenue"
)

// Correction registra uma queda no valor cumulativo dentro do mesmo dia.
// A queda nunca gera delta negativo; fica apenas registrada.
type Correction struct {
	IntegrationID      string  `json:"integrationId"`
	CampaignExternalID string  `json:"campaignExternalId"`
	Metric             string  `json:"metric"`
	Previous           float64 `json:"previous"`
	Reported           float64 `json:"reported"`
}

// IntegrationSyncResult é o resultado da reconciliação de uma integração
type IntegrationSyncResult struct {
	IntegrationID   string       `json:"integrationId"`
	Platform        Platform     `json:"platform"`
	NewLeads        int64        `json:"newLeads"`
	NewRevenue      float64      `json:"newRevenue"`
	CampaignsSynced int          `json:"campaignsSynced"`
	CampaignsFailed int          `json:"campaignsFailed"`
	Corrections     []Correction `json:"corrections,omitempty"`
	SyncedAt        time.Time    `json:"syncedAt"`
}

// SyncOutcome agrega o resultado de um ciclo completo de sincronização
type SyncOutcome struct {
	NewLeads            int64        `json:"newLeads"`
	NewRevenue          float64      `json:"newRevenue"`
	Corrections         []Correction `json:"corrections,omitempty"`
	IntegrationsSynced  int          `json:"integrationsSynced"`
	IntegrationsFailed  int          `json:"integrationsFailed"`
	IntegrationsSkipped int          `json:"integrationsSkipped"`
	CampaignsSynced     int          `json:"campaignsSynced"`
	CampaignsFailed     int          `json:"campaignsFailed"`
	Timestamp           time.Time    `json:"timestamp"`
}

// Merge soma o resultado de uma integração ao agregado do ciclo
func (o *SyncOutcome) Merge(result *IntegrationSyncResult) {
	if result == nil {
		return
	}
	o.NewLeads += result.NewLeads
	o.NewRevenue += result.NewRevenue
	o.CampaignsSynced += result.CampaignsSynced
	o.CampaignsFailed += result.CampaignsFailed
	o.Corrections = append(o.Corrections, result.Corrections...)
	o.IntegrationsSynced++
}

// HasConversions indica se o ciclo trouxe leads ou receita novos
func (o *SyncOutcome) HasConversions() bool {
	return o.NewLeads > 0 || o.NewRevenue > 0
}

const (
	TopicDashboardUpdate = "dashboard_update"
	TopicNotification    = "notification"
	TopicSyncCorrection  = "sync_correction"
)

type DashboardUpdate struct {
	Leads     int64     `json:"leads"`
	Revenue   float64   `json:"revenue"`
	Timestamp time.Time `json:"timestamp"`
}

type Notification struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
}
