package domain

import "time"

type CampaignStatus string

const (
	CampaignStatusActive CampaignStatus = "ACTIVE"
	CampaignStatusPaused CampaignStatus = "PAUSED"
)

type Campaign struct {
	ID            string         `json:"id"`
	IntegrationID string         `json:"integration_id"`
	ExternalID    string         `json:"external_id"`
	Name          string         `json:"name"`
	Status        CampaignStatus `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// CampaignSnapshot é o estado cumulativo de uma campanha reportado pelo provedor
type CampaignSnapshot struct {
	ExternalID  string         `json:"externalId" yaml:"external_id"`
	Name        string         `json:"name" yaml:"name"`
	Status      CampaignStatus `json:"status" yaml:"status"`
	Spend       float64        `json:"spend" yaml:"spend"`
	Leads       int64          `json:"leads" yaml:"leads"`
	Revenue     float64        `json:"revenue" yaml:"revenue"`
	Impressions int64          `json:"impressions" yaml:"impressions"`
	Clicks      int64          `json:"clicks" yaml:"clicks"`
}

// CampaignOverview junta a campanha com a métrica mais recente para a listagem do dashboard
type CampaignOverview struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Platform    Platform       `json:"platform"`
	Status      CampaignStatus `json:"status"`
	Spend       float64        `json:"spend"`
	Leads       int64          `json:"leads"`
	Revenue     float64        `json:"revenue"`
	Impressions int64          `json:"impressions"`
	Clicks      int64          `json:"clicks"`
	ROI         float64        `json:"roi"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}
