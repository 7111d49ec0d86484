package metadomain

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/vfg2006/hexa-dashboard-api/internal/domain"
	"github.com/vfg2006/hexa-dashboard-api/pkg/utils"
)

// Tipos de ação considerados, em ordem de preferência. A Graph API repete a mesma
// conversão em mais de um tipo, então só o primeiro encontrado é usado.
var (
	LeadActionTypes = []string{
		"lead",
		"onsite_conversion.lead_grouped",
		"offsite_conversion.fb_pixel_lead",
	}
	PurchaseActionTypes = []string{
		"omni_purchase",
		"purchase",
		"offsite_conversion.fb_pixel_purchase",
	}
)

// ErrMalformedInsight indica um valor numérico que a Graph API devolveu fora do formato
var ErrMalformedInsight = errors.New("insight com valor numérico inválido")

type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

type Campaign struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type CampaignInsight struct {
	AccountID    string   `json:"account_id"`
	CampaignID   string   `json:"campaign_id"`
	CampaignName string   `json:"campaign_name"`
	Spend        string   `json:"spend"`
	Impressions  string   `json:"impressions"`
	Clicks       string   `json:"clicks"`
	Actions      []Action `json:"actions"`
	ActionValues []Action `json:"action_values"`
	DateStart    string   `json:"date_start"`
	DateStop     string   `json:"date_stop"`
}

func (c *CampaignInsight) Leads() (int64, error) {
	value, ok := findAction(c.Actions, LeadActionTypes)
	if !ok {
		return 0, nil
	}

	leads, err := parseFloat(value, c.CampaignID, "actions")
	if err != nil {
		return 0, err
	}
	return int64(leads), nil
}

func (c *CampaignInsight) Revenue() (float64, error) {
	value, ok := findAction(c.ActionValues, PurchaseActionTypes)
	if !ok {
		return 0, nil
	}

	revenue, err := parseFloat(value, c.CampaignID, "action_values")
	if err != nil {
		return 0, err
	}
	return utils.RoundWithTwoDecimalPlace(revenue), nil
}

// ToSnapshot converte o insight do dia em totais cumulativos. Status vazio vira ACTIVE.
// Um valor numérico inválido invalida o insight inteiro: gravar zero viraria correção
// e a próxima leitura válida contaria os mesmos leads de novo.
func (c *CampaignInsight) ToSnapshot(status string) (domain.CampaignSnapshot, error) {
	snapshotStatus := domain.CampaignStatusActive
	if status != "" && status != "ACTIVE" {
		snapshotStatus = domain.CampaignStatusPaused
	}

	spend, err := parseFloat(c.Spend, c.CampaignID, "spend")
	if err != nil {
		return domain.CampaignSnapshot{}, err
	}
	leads, err := c.Leads()
	if err != nil {
		return domain.CampaignSnapshot{}, err
	}
	revenue, err := c.Revenue()
	if err != nil {
		return domain.CampaignSnapshot{}, err
	}
	impressions, err := parseInt(c.Impressions, c.CampaignID, "impressions")
	if err != nil {
		return domain.CampaignSnapshot{}, err
	}
	clicks, err := parseInt(c.Clicks, c.CampaignID, "clicks")
	if err != nil {
		return domain.CampaignSnapshot{}, err
	}

	return domain.CampaignSnapshot{
		ExternalID:  c.CampaignID,
		Name:        c.CampaignName,
		Status:      snapshotStatus,
		Spend:       utils.RoundWithTwoDecimalPlace(spend),
		Leads:       leads,
		Revenue:     revenue,
		Impressions: impressions,
		Clicks:      clicks,
	}, nil
}

func findAction(actions []Action, types []string) (string, bool) {
	for _, t := range types {
		for _, a := range actions {
			if a.ActionType == t {
				return a.Value, true
			}
		}
	}
	return "", false
}

func parseFloat(value, campaignID, field string) (float64, error) {
	if value == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, malformed(campaignID, field, value)
	}
	return f, nil
}

func parseInt(value, campaignID, field string) (int64, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, malformed(campaignID, field, value)
	}
	return n, nil
}

func malformed(campaignID, field, value string) error {
	return fmt.Errorf("%w: campanha %s, campo %s = %q", ErrMalformedInsight, campaignID, field, value)
}
