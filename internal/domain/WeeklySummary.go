package domain

import "time"

// WeeklySummary representa o consolidado semanal de um conjunto de anúncios,
// calculado a partir dos snapshots diários dos últimos 7 dias
type WeeklySummary struct {
	EntityID         string    `json:"entity_id"`
	EntityName       string    `json:"entity_name"`
	WeekStart        time.Time `json:"week_start"`
	WeekEnd          time.Time `json:"week_end"`
	TotalSpend       float64   `json:"total_spend"`
	TotalImpressions int64     `json:"total_impressions"`
	TotalClicks      int64     `json:"total_clicks"`
	TotalResults     int64     `json:"total_results"`
	AvgCTR           float64   `json:"avg_ctr"`
	AvgCPM           float64   `json:"avg_cpm"`
	AvgROAS          float64   `json:"avg_roas"`
}
