package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"github.com/vfg2006/campaign-tracker-api/internal/config"
	"github.com/vfg2006/campaign-tracker-api/internal/domain"
)

// Exporter gera o relatório local em xlsx quando a planilha remota está
// desabilitada ou como artefato adicional da execução
type Exporter interface {
	ExportWorkbook(metrics []*domain.ProcessedMetric, summaries []*domain.WeeklySummary) (string, error)
}

type Service struct {
	cfg *config.Config
}

func NewService(cfg *config.Config) *Service {
	return &Service{cfg: cfg}
}

// ExportWorkbook escreve as abas com a mesma ordem de colunas da planilha
// remota e retorna o caminho do arquivo gerado
func (s *Service) ExportWorkbook(metrics []*domain.ProcessedMetric, summaries []*domain.WeeklySummary) (string, error) {
	file := excelize.NewFile()
	defer file.Close()

	comparisonSheet := "Comparativo"
	if err := file.SetSheetName("Sheet1", comparisonSheet); err != nil {
		return "", errors.Wrap(err, "erro ao renomear aba inicial")
	}

	header := []any{
		"ID", "Nome", "Gasto", "Impressões", "Cliques", "Resultados",
		"CTR", "CPM", "ROAS", "Score", "Posição", "Atualizado Em",
	}
	if err := writeRow(file, comparisonSheet, 1, header); err != nil {
		return "", err
	}

	now := time.Now()
	for i, m := range metrics {
		row := []any{
			m.EntityID,
			m.EntityName,
			m.Spend,
			m.Impressions,
			m.Clicks,
			m.Results,
			m.CTR,
			m.CPM,
			m.ROAS,
			m.EfficiencyScore,
			m.Rank,
			now.Format("2006-01-02 15:04"),
		}
		if err := writeRow(file, comparisonSheet, i+2, row); err != nil {
			return "", err
		}
	}

	if len(summaries) > 0 {
		summarySheet := "ResumoSemanal"
		if _, err := file.NewSheet(summarySheet); err != nil {
			return "", errors.Wrap(err, "erro ao criar aba de resumo semanal")
		}

		summaryHeader := []any{
			"Chave", "ID", "Nome", "Início", "Fim", "Gasto Total", "Impressões",
			"Cliques", "Resultados", "CTR Médio", "CPM Médio", "ROAS Médio",
		}
		if err := writeRow(file, summarySheet, 1, summaryHeader); err != nil {
			return "", err
		}

		for i, w := range summaries {
			row := []any{
				fmt.Sprintf("%s|%s", w.EntityID, w.WeekStart.Format(time.DateOnly)),
				w.EntityID,
				w.EntityName,
				w.WeekStart.Format(time.DateOnly),
				w.WeekEnd.Format(time.DateOnly),
				w.TotalSpend,
				w.TotalImpressions,
				w.TotalClicks,
				w.TotalResults,
				w.AvgCTR,
				w.AvgCPM,
				w.AvgROAS,
			}
			if err := writeRow(file, summarySheet, i+2, row); err != nil {
				return "", err
			}
		}
	}

	if err := applyFormats(file, comparisonSheet, len(metrics)); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.cfg.Export.Directory, 0o755); err != nil {
		return "", errors.Wrap(err, "erro ao criar diretório de relatórios")
	}

	path := filepath.Join(s.cfg.Export.Directory,
		fmt.Sprintf("relatorio_%s.xlsx", now.Format("20060102_150405")))

	if err := file.SaveAs(path); err != nil {
		return "", errors.Wrap(err, "erro ao salvar relatório xlsx")
	}

	logrus.WithFields(logrus.Fields{
		"path":     path,
		"entities": len(metrics),
	}).Info("Relatório xlsx gerado com sucesso")

	return path, nil
}

func writeRow(file *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return errors.Wrap(err, "erro ao montar coordenada da célula")
	}

	if err := file.SetSheetRow(sheet, cell, &values); err != nil {
		return errors.Wrap(err, "erro ao escrever linha no xlsx")
	}

	return nil
}

// applyFormats aplica os padrões numéricos nas colunas de dados
func applyFormats(file *excelize.File, sheet string, rowCount int) error {
	if rowCount == 0 {
		return nil
	}

	currency := "R$ #,##0.00"
	percent := "0.00%"
	integer := "#,##0"
	decimal := "#,##0.00"

	columns := map[string]string{
		"C": currency, // Gasto
		"D": integer,  // Impressões
		"E": integer,  // Cliques
		"F": integer,  // Resultados
		"G": percent,  // CTR
		"H": currency, // CPM
		"I": decimal,  // ROAS
		"J": decimal,  // Score
		"K": integer,  // Posição
	}

	for column, pattern := range columns {
		style, err := file.NewStyle(&excelize.Style{CustomNumFmt: &pattern})
		if err != nil {
			return errors.Wrap(err, "erro ao criar estilo de coluna")
		}

		if err := file.SetColStyle(sheet, column, style); err != nil {
			return errors.Wrap(err, "erro ao aplicar estilo de coluna")
		}
	}

	return nil
}
