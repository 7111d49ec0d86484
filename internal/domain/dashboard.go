package domain

import "github.com/vfg2006/hexa-dashboard-api/pkg/utils"

// Trends guarda a variação percentual de cada métrica. Nil significa sem base de comparação.
type Trends struct {
	Leads   *float64 `json:"leads"`
	Spend   *float64 `json:"spend"`
	Revenue *float64 `json:"revenue"`
	ROI     *float64 `json:"roi"`
}

type DashboardMetrics struct {
	TotalLeads         int64   `json:"totalLeads"`
	TotalSpend         float64 `json:"totalSpend"`
	TotalRevenue       float64 `json:"totalRevenue"`
	ROI                float64 `json:"roi"`
	ActiveIntegrations int     `json:"activeIntegrations"`
	CampaignsCount     int     `json:"campaignsCount"`
	Trends             Trends  `json:"trends"`
	TrendsVsAvg        Trends  `json:"trendsVsAvg"`
}

// CalculateROI retorna (receita - investimento) / investimento * 100, ou 0 sem investimento
func CalculateROI(revenue, spend float64) float64 {
	if spend <= 0 {
		return 0
	}
	return utils.RoundWithTwoDecimalPlace((revenue - spend) / spend * 100)
}

// CalculateTrend retorna a variação percentual de current sobre baseline
func CalculateTrend(current, baseline float64) *float64 {
	if baseline == 0 {
		return nil
	}
	trend := utils.RoundWithTwoDecimalPlace((current - baseline) / baseline * 100)
	return &trend
}

// TrendBaseline é a base de comparação de um período (um dia ou média de dias)
type TrendBaseline struct {
	Leads   float64
	Spend   float64
	Revenue float64
	ROI     float64
}

func BaselineOf(totals MetricTotals) TrendBaseline {
	return TrendBaseline{
		Leads:   float64(totals.Leads),
		Spend:   totals.Spend,
		Revenue: totals.Revenue,
		ROI:     CalculateROI(totals.Revenue, totals.Spend),
	}
}

// AverageBaseline faz a média simples das bases; o ROI é a média dos ROIs diários
func AverageBaseline(days ...MetricTotals) TrendBaseline {
	var avg TrendBaseline
	if len(days) == 0 {
		return avg
	}

	for _, day := range days {
		b := BaselineOf(day)
		avg.Leads += b.Leads
		avg.Spend += b.Spend
		avg.Revenue += b.Revenue
		avg.ROI += b.ROI
	}

	n := float64(len(days))
	avg.Leads /= n
	avg.Spend /= n
	avg.Revenue /= n
	avg.ROI /= n

	return avg
}

// CompareTotals calcula as tendências de leads, investimento, receita e ROI
func CompareTotals(current MetricTotals, baseline TrendBaseline) Trends {
	return Trends{
		Leads:   CalculateTrend(float64(current.Leads), baseline.Leads),
		Spend:   CalculateTrend(current.Spend, baseline.Spend),
		Revenue: CalculateTrend(current.Revenue, baseline.Revenue),
		ROI:     CalculateTrend(CalculateROI(current.Revenue, current.Spend), baseline.ROI),
	}
}
