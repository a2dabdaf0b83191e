package metaclient

import (
	"context"
	"fmt"
	"net/url"
	"time"

	metadomain "github.com/vfg2006/campaign-tracker-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaign-tracker-api/internal/domain"
)

type ResponseInsights struct {
	Data   []metadomain.InsightRow `json:"data"`
	Paging metadomain.Paging       `json:"paging"`
}

// GetInsightsByAdSetID busca os insights diários de um conjunto de anúncios
// no intervalo informado, seguindo os cursores de paginação até o fim
func (c *MetaClient) GetInsightsByAdSetID(ctx context.Context, adSetID string, filters *domain.InsightFilters) ([]metadomain.InsightRow, error) {
	if err := filters.Validate(c.Cfg.Meta.MaxLookbackDays); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s/insights", c.Cfg.Meta.URL, adSetID)

	timeRange := fmt.Sprintf(`{"since":"%s","until":"%s"}`,
		filters.StartDate.Format(time.DateOnly),
		filters.EndDate.Format(time.DateOnly),
	)

	params := url.Values{}
	params.Add("fields", "adset_id,adset_name,objective,impressions,clicks,spend,reach,frequency,actions,date_start,date_stop")
	params.Add("time_range", timeRange)
	params.Add("time_increment", "1") // Uma linha por dia
	params.Add("limit", "100")
	params.Add("access_token", c.Cfg.Meta.AccessToken)

	rows := make([]metadomain.InsightRow, 0)

	for {
		body, err := c.doGet(ctx, "insights", endpoint, params)
		if err != nil {
			return nil, err
		}

		var response ResponseInsights
		if err := json.Unmarshal(body, &response); err != nil {
			return nil, fmt.Errorf("erro ao decodificar resposta de insights: %w", err)
		}

		rows = append(rows, response.Data...)

		after := response.Paging.Cursors.After
		if after == "" || len(response.Data) == 0 {
			break
		}
		params.Set("after", after)
	}

	return rows, nil
}
