package domain

import (
	"fmt"
	"time"
)

// InsightRecord representa uma linha diária de métricas de um conjunto de anúncios,
// já normalizada para tipos nativos
type InsightRecord struct {
	EntityID    string    `json:"entity_id"`
	EntityName  string    `json:"entity_name"`
	Date        time.Time `json:"date"`
	Impressions int64     `json:"impressions"`
	Clicks      int64     `json:"clicks"`
	Spend       float64   `json:"spend"`
	Results     int64     `json:"results"`
	Reach       int64     `json:"reach"`
	Frequency   float64   `json:"frequency"`
}

// InsightFilters define o intervalo de datas de uma consulta de insights
type InsightFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// Validate verifica se o intervalo é consistente e respeita o limite de lookback
func (f *InsightFilters) Validate(maxLookbackDays int) error {
	if f == nil || f.StartDate == nil || f.EndDate == nil {
		return fmt.Errorf("período de consulta não informado")
	}

	if f.StartDate.After(*f.EndDate) {
		return fmt.Errorf("data inicial %s posterior à data final %s",
			f.StartDate.Format(time.DateOnly), f.EndDate.Format(time.DateOnly))
	}

	if f.EndDate.Sub(*f.StartDate) > time.Duration(maxLookbackDays)*24*time.Hour {
		return fmt.Errorf("período de consulta excede o limite de %d dias", maxLookbackDays)
	}

	return nil
}
