package meta

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	metadomain "github.com/vfg2006/campaign-tracker-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/campaign-tracker-api/internal/domain"
)

func validRow() metadomain.InsightRow {
	return metadomain.InsightRow{
		AdSetID:     "AS001",
		AdSetName:   "Conjunto A",
		Objective:   "OUTCOME_SALES",
		Impressions: "1000",
		Clicks:      "50",
		Spend:       "100.50",
		Reach:       "800",
		Frequency:   "1.25",
		Actions: []metadomain.Action{
			{ActionType: "link_click", Value: "45"},
			{ActionType: "offsite_conversion.fb_pixel_purchase", Value: "10"},
		},
		DateStart: "2025-08-30",
		DateStop:  "2025-08-30",
	}
}

func TestNormalizeInsightRow(t *testing.T) {
	t.Run("Linha válida deve ser convertida para tipos nativos", func(t *testing.T) {
		record, err := NormalizeInsightRow(validRow(), 0)

		assert.NoError(t, err)
		assert.Equal(t, "AS001", record.EntityID)
		assert.Equal(t, "Conjunto A", record.EntityName)
		assert.Equal(t, int64(1000), record.Impressions)
		assert.Equal(t, int64(50), record.Clicks)
		assert.Equal(t, 100.50, record.Spend)
		assert.Equal(t, int64(800), record.Reach)
		assert.Equal(t, 1.25, record.Frequency)
		assert.Equal(t, time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC), record.Date)
	})

	t.Run("Resultados devem vir da ação mapeada pelo objetivo da campanha", func(t *testing.T) {
		record, err := NormalizeInsightRow(validRow(), 0)

		assert.NoError(t, err)
		assert.Equal(t, int64(10), record.Results)
	})

	t.Run("Objetivo sem mapeamento deve resultar em zero resultados", func(t *testing.T) {
		row := validRow()
		row.Objective = "BRAND_AWARENESS"

		record, err := NormalizeInsightRow(row, 0)

		assert.NoError(t, err)
		assert.Equal(t, int64(0), record.Results)
	})

	t.Run("Campos numéricos ausentes devem virar zero", func(t *testing.T) {
		row := validRow()
		row.Impressions = ""
		row.Spend = ""
		row.Frequency = ""

		record, err := NormalizeInsightRow(row, 0)

		assert.NoError(t, err)
		assert.Equal(t, int64(0), record.Impressions)
		assert.Equal(t, 0.0, record.Spend)
		assert.Equal(t, 0.0, record.Frequency)
	})

	tests := []struct {
		name          string
		mutate        func(row *metadomain.InsightRow)
		expectedField string
	}{
		{
			name:          "Impressões malformadas devem identificar o campo",
			mutate:        func(row *metadomain.InsightRow) { row.Impressions = "abc" },
			expectedField: "impressions",
		},
		{
			name:          "Gasto malformado deve identificar o campo",
			mutate:        func(row *metadomain.InsightRow) { row.Spend = "12,50" },
			expectedField: "spend",
		},
		{
			name:          "Data ausente deve ser rejeitada",
			mutate:        func(row *metadomain.InsightRow) { row.DateStart = "" },
			expectedField: "date_start",
		},
		{
			name:          "Data malformada deve ser rejeitada",
			mutate:        func(row *metadomain.InsightRow) { row.DateStart = "30/08/2025" },
			expectedField: "date_start",
		},
		{
			name:          "Data no futuro deve ser rejeitada",
			mutate:        func(row *metadomain.InsightRow) { row.DateStart = "2099-01-01" },
			expectedField: "date_start",
		},
		{
			name: "Valor de ação malformado deve identificar o campo",
			mutate: func(row *metadomain.InsightRow) {
				row.Actions = []metadomain.Action{
					{ActionType: "offsite_conversion.fb_pixel_purchase", Value: "dez"},
				}
			},
			expectedField: "actions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := validRow()
			tt.mutate(&row)

			record, err := NormalizeInsightRow(row, 7)

			assert.Nil(t, record)

			var normErr *domain.NormalizationError
			assert.ErrorAs(t, err, &normErr)
			assert.Equal(t, tt.expectedField, normErr.Field)
			assert.Equal(t, 7, normErr.Index)
		})
	}
}
