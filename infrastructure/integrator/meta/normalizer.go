package meta

import (
	"fmt"
	"strconv"
	"time"

	metadomain "github.com/vfg2006/campaign-tracker-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaign-tracker-api/internal/domain"
)

// NormalizeInsightRow converte uma linha bruta da API em InsightRecord tipado.
// Campos numéricos ausentes viram zero; campos malformados retornam
// NormalizationError identificando o campo e o índice do registro.
func NormalizeInsightRow(row metadomain.InsightRow, index int) (*domain.InsightRecord, error) {
	impressions, err := parseInt(row.Impressions, "impressions", index)
	if err != nil {
		return nil, err
	}

	clicks, err := parseInt(row.Clicks, "clicks", index)
	if err != nil {
		return nil, err
	}

	spend, err := parseFloat(row.Spend, "spend", index)
	if err != nil {
		return nil, err
	}

	reach, err := parseInt(row.Reach, "reach", index)
	if err != nil {
		return nil, err
	}

	frequency, err := parseFloat(row.Frequency, "frequency", index)
	if err != nil {
		return nil, err
	}

	if row.DateStart == "" {
		return nil, &domain.NormalizationError{
			Field: "date_start",
			Index: index,
			Err:   fmt.Errorf("data ausente"),
		}
	}

	date, err := time.Parse(time.DateOnly, row.DateStart)
	if err != nil {
		return nil, &domain.NormalizationError{
			Field: "date_start",
			Index: index,
			Value: row.DateStart,
			Err:   err,
		}
	}

	if date.After(time.Now()) {
		return nil, &domain.NormalizationError{
			Field: "date_start",
			Index: index,
			Value: row.DateStart,
			Err:   fmt.Errorf("data no futuro"),
		}
	}

	results, err := extractResults(row, index)
	if err != nil {
		return nil, err
	}

	return &domain.InsightRecord{
		EntityID:    row.AdSetID,
		EntityName:  row.AdSetName,
		Date:        date,
		Impressions: impressions,
		Clicks:      clicks,
		Spend:       spend,
		Results:     results,
		Reach:       reach,
		Frequency:   frequency,
	}, nil
}

// extractResults busca nas ações o tipo mapeado pelo objetivo da campanha
func extractResults(row metadomain.InsightRow, index int) (int64, error) {
	actionType, ok := metadomain.MetaObjectiveToActionType[row.Objective]
	if !ok {
		return 0, nil
	}

	for _, action := range row.Actions {
		if action.ActionType != actionType {
			continue
		}

		value, err := strconv.ParseInt(action.Value, 10, 64)
		if err != nil {
			return 0, &domain.NormalizationError{
				Field: "actions",
				Index: index,
				Value: action.Value,
				Err:   err,
			}
		}

		return value, nil
	}

	return 0, nil
}

func parseInt(raw, field string, index int) (int64, error) {
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &domain.NormalizationError{Field: field, Index: index, Value: raw, Err: err}
	}

	return value, nil
}

func parseFloat(raw, field string, index int) (float64, error) {
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &domain.NormalizationError{Field: field, Index: index, Value: raw, Err: err}
	}

	return value, nil
}
