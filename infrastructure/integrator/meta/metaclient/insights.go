package metaclient

import (
	"context"
	"fmt"
	"net/url"

	metadomain "github.com/vfg2006/hexa-dashboard-api/infrastructure/integrator/meta/domain"
)

const maxPages = 20

type page[T any] struct {
	Data   []T               `json:"data"`
	Paging metadomain.Paging `json:"paging"`
}

// fetchAll percorre as páginas pelo cursor "after" até a última ou até maxPages
func fetchAll[T any](ctx context.Context, c *MetaClient, path string, params url.Values) ([]T, error) {
	results := make([]T, 0)

	for i := 0; i < maxPages; i++ {
		resp, err := c.http.Get(ctx, path, params)
		if err != nil {
			return nil, translateError(err)
		}

		var p page[T]
		if err := resp.Decode(&p); err != nil {
			return nil, err
		}
		results = append(results, p.Data...)

		if !p.Paging.HasNext() {
			return results, nil
		}
		params.Set("after", p.Paging.Cursors.After)
	}

	return results, nil
}

func (c *MetaClient) ListAdAccounts(ctx context.Context, accessToken string) ([]metadomain.AdAccount, error) {
	params := url.Values{}
	params.Add("fields", "id,account_id,name")
	params.Add("limit", "100")
	params.Add("access_token", accessToken)

	return fetchAll[metadomain.AdAccount](ctx, c, "me/adaccounts", params)
}

func (c *MetaClient) ListCampaigns(ctx context.Context, accessToken, accountID string) ([]metadomain.Campaign, error) {
	params := url.Values{}
	params.Add("fields", "id,name,status")
	params.Add("limit", "200")
	params.Add("access_token", accessToken)

	return fetchAll[metadomain.Campaign](ctx, c, fmt.Sprintf("%s/campaigns", accountID), params)
}

// GetCampaignInsightsToday devolve os acumulados do dia corrente por campanha
func (c *MetaClient) GetCampaignInsightsToday(ctx context.Context, accessToken, accountID string) ([]metadomain.CampaignInsight, error) {
	params := url.Values{}
	params.Add("level", "campaign")
	params.Add("date_preset", "today")
	params.Add("fields", "account_id,campaign_id,campaign_name,spend,impressions,clicks,actions,action_values")
	params.Add("limit", "200")
	params.Add("access_token", accessToken)

	return fetchAll[metadomain.CampaignInsight](ctx, c, fmt.Sprintf("%s/insights", accountID), params)
}
