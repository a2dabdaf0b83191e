package metadomain

// AdSet é o conjunto de anúncios como retornado pela API do Meta
type AdSet struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	CampaignID string `json:"campaign_id"`
}
