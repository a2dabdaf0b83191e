package domain

// Campaign representa uma campanha de anúncios ativa no Meta
type Campaign struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	Objective string `json:"objective"`
}

// AdSet representa um conjunto de anúncios vinculado a uma campanha
type AdSet struct {
	ID         string `json:"id"`
	CampaignID string `json:"campaign_id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
}
