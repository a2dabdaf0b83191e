package metaclient

import (
	"context"
	"fmt"
	"net/url"

	metadomain "github.com/vfg2006/campaign-tracker-api/infrastructure/integrator/meta/domain"
)

type ResponseAdSets struct {
	Data   []metadomain.AdSet `json:"data"`
	Paging metadomain.Paging  `json:"paging"`
}

// GetAdSetsByCampaignID busca todos os conjuntos de anúncios de uma campanha,
// seguindo os cursores de paginação até o fim
func (c *MetaClient) GetAdSetsByCampaignID(ctx context.Context, campaignID string) ([]metadomain.AdSet, error) {
	endpoint := fmt.Sprintf("%s/%s/adsets", c.Cfg.Meta.URL, campaignID)

	params := url.Values{}
	params.Add("fields", "id,name,status,campaign_id")
	params.Add("limit", "100")
	params.Add("access_token", c.Cfg.Meta.AccessToken)

	adSets := make([]metadomain.AdSet, 0)

	for {
		body, err := c.doGet(ctx, "adsets", endpoint, params)
		if err != nil {
			return nil, err
		}

		var response ResponseAdSets
		if err := json.Unmarshal(body, &response); err != nil {
			return nil, fmt.Errorf("erro ao decodificar resposta de conjuntos de anúncios: %w", err)
		}

		adSets = append(adSets, response.Data...)

		after := response.Paging.Cursors.After
		if after == "" || len(response.Data) == 0 {
			break
		}
		params.Set("after", after)
	}

	return adSets, nil
}
