package domain

import "time"

// DailyMetric guarda o snapshot cumulativo de uma campanha para um dia.
// Date é sempre a meia-noite local do dia (ver utils.DayBucket).
type DailyMetric struct {
	ID          string    `json:"id"`
	CampaignID  string    `json:"campaign_id"`
	Date        time.Time `json:"date"`
	Spend       float64   `json:"spend"`
	Impressions int64     `json:"impressions"`
	Clicks      int64     `json:"clicks"`
	Leads       int64     `json:"leads"`
	Revenue     float64   `json:"revenue"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type MetricTotals struct {
	Leads   int64   `json:"leads"`
	Spend   float64 `json:"spend"`
	Revenue float64 `json:"revenue"`
}

// LeadEntry é uma linha do feed de leads do dashboard
type LeadEntry struct {
	ID           string    `json:"id"`
	CampaignName string    `json:"campaignName"`
	Platform     Platform  `json:"platform"`
	Date         time.Time `json:"date"`
	Leads        int64     `json:"leads"`
	Spend        float64   `json:"spend"`
	Revenue      float64   `json:"revenue"`
	CostPerLead  float64   `json:"costPerLead"`
}
