package domain

import "time"

// Métricas acompanhadas na análise de tendência diária
const (
	MetricROAS        = "roas"
	MetricSpend       = "spend"
	MetricConversions = "conversions"
	MetricCTR         = "ctr"
)

// TrendPoint representa a variação diária de uma métrica de um conjunto de anúncios.
// DeltaPct fica nulo quando a linha de base do dia anterior é zero ou inexistente.
type TrendPoint struct {
	EntityID            string    `json:"entity_id"`
	EntityName          string    `json:"entity_name"`
	Metric              string    `json:"metric"`
	Date                time.Time `json:"date"`
	Current             float64   `json:"current"`
	Previous            float64   `json:"previous"`
	DeltaPct            *float64  `json:"delta_pct"`
	BaselineUnavailable bool      `json:"baseline_unavailable"`
}
