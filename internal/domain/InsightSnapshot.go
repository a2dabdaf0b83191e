package domain

import "time"

// InsightSnapshot representa as métricas diárias de um conjunto de anúncios
// persistidas no banco. É a linha de base do cálculo de tendência e a fonte
// da agregação semanal.
type InsightSnapshot struct {
	ID         int64            `json:"id"`
	EntityID   string           `json:"entity_id"`
	EntityName string           `json:"entity_name"`
	Date       time.Time        `json:"date"`
	Metrics    *ProcessedMetric `json:"metrics"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}
