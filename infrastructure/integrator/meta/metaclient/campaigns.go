package metaclient

import (
	"context"
	"fmt"
	"net/url"

	metadomain "github.com/vfg2006/campaign-tracker-api/infrastructure/integrator/meta/domain"
)

type ResponseCampaigns struct {
	Data   []metadomain.Campaign `json:"data"`
	Paging metadomain.Paging     `json:"paging"`
}

// GetCampaignsByAccountID busca todas as campanhas ativas da conta,
// seguindo os cursores de paginação até o fim
func (c *MetaClient) GetCampaignsByAccountID(ctx context.Context, accountID string) ([]metadomain.Campaign, error) {
	endpoint := fmt.Sprintf("%s/act_%s/campaigns", c.Cfg.Meta.URL, accountID)

	params := url.Values{}
	params.Add("fields", "id,name,status,objective")
	params.Add("effective_status", "['ACTIVE']")
	params.Add("limit", "100")
	params.Add("access_token", c.Cfg.Meta.AccessToken)

	campaigns := make([]metadomain.Campaign, 0)

	for {
		body, err := c.doGet(ctx, "campaigns", endpoint, params)
		if err != nil {
			return nil, err
		}

		var response ResponseCampaigns
		if err := json.Unmarshal(body, &response); err != nil {
			return nil, fmt.Errorf("erro ao decodificar resposta de campanhas: %w", err)
		}

		campaigns = append(campaigns, response.Data...)

		after := response.Paging.Cursors.After
		if after == "" || len(response.Data) == 0 {
			break
		}
		params.Set("after", after)
	}

	return campaigns, nil
}
