package domain

import "time"

// ProcessedMetric representa as métricas derivadas de um conjunto de anúncios
// agregadas na janela de comparação
type ProcessedMetric struct {
	EntityID        string    `json:"entity_id"`
	EntityName      string    `json:"entity_name"`
	Date            time.Time `json:"date"`
	Impressions     int64     `json:"impressions"`
	Clicks          int64     `json:"clicks"`
	Spend           float64   `json:"spend"`
	Results         int64     `json:"results"`
	ResultsValue    float64   `json:"results_value"`
	CTR             float64   `json:"ctr"`
	CPM             float64   `json:"cpm"`
	ROAS            float64   `json:"roas"`
	EfficiencyScore float64   `json:"efficiency_score"`
	Rank            int       `json:"rank"`
}
