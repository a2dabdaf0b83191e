package sheets

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	sheetsdomain "github.com/vfg2006/campaign-tracker-api/infrastructure/integrator/sheets/domain"
	"github.com/vfg2006/campaign-tracker-api/infrastructure/integrator/sheets/sheetsclient"
	"github.com/vfg2006/campaign-tracker-api/infrastructure/repository"
	"github.com/vfg2006/campaign-tracker-api/internal/config"
	"github.com/vfg2006/campaign-tracker-api/internal/domain"
)

// Synchronizer sincroniza as abas lógicas da planilha remota de forma
// idempotente: linhas existentes são sobrescritas no lugar, novas são
// acrescentadas, e nenhuma chave é duplicada
type Synchronizer interface {
	SyncComparison(ctx context.Context, metrics []*domain.ProcessedMetric) (int, error)
	SyncDailyTrend(ctx context.Context, metrics []*domain.ProcessedMetric) (int, error)
	SyncWeeklySummary(ctx context.Context, summaries []*domain.WeeklySummary) (int, error)
}

type Service struct {
	cfg           *config.Config
	client        sheetsclient.Client
	syncStateRepo repository.SyncStateRepository
}

func NewService(cfg *config.Config, client sheetsclient.Client, syncStateRepo repository.SyncStateRepository) *Service {
	return &Service{
		cfg:           cfg,
		client:        client,
		syncStateRepo: syncStateRepo,
	}
}

// pendingRow é uma linha aguardando escrita. rowIndex zero indica acréscimo.
type pendingRow struct {
	key      string
	rowIndex int
	values   []any
}

// SyncComparison sincroniza a aba comparativa de conjuntos de anúncios.
// A chave de cada linha é o ID do conjunto.
func (s *Service) SyncComparison(ctx context.Context, metrics []*domain.ProcessedMetric) (int, error) {
	header := []any{
		"ID", "Nome", "Gasto", "Impressões", "Cliques", "Resultados",
		"CTR", "CPM", "ROAS", "Score", "Posição", "Atualizado Em",
	}

	formats := []sheetsdomain.ColumnFormat{
		{Column: 2, Pattern: sheetsdomain.FormatCurrency},
		{Column: 3, Pattern: sheetsdomain.FormatInteger},
		{Column: 4, Pattern: sheetsdomain.FormatInteger},
		{Column: 5, Pattern: sheetsdomain.FormatInteger},
		{Column: 6, Pattern: sheetsdomain.FormatPercent},
		{Column: 7, Pattern: sheetsdomain.FormatCurrency},
		{Column: 8, Pattern: sheetsdomain.FormatDecimal},
		{Column: 9, Pattern: sheetsdomain.FormatDecimal},
		{Column: 10, Pattern: sheetsdomain.FormatInteger},
		{Column: 11, Pattern: sheetsdomain.FormatDateTime},
	}

	now := time.Now()
	keys := make([]string, 0, len(metrics))
	rows := make([][]any, 0, len(metrics))
	for _, m := range metrics {
		keys = append(keys, m.EntityID)
		rows = append(rows, []any{
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
		})
	}

	return s.syncSheet(ctx, sheetsdomain.SheetComparison, header, keys, rows, formats)
}

// SyncDailyTrend sincroniza a aba de tendência diária.
// A chave de cada linha é a composição id|data, o que torna o upsert
// idempotente por conjunto e dia.
func (s *Service) SyncDailyTrend(ctx context.Context, metrics []*domain.ProcessedMetric) (int, error) {
	header := []any{
		"Chave", "ID", "Nome", "Data", "Gasto", "Impressões",
		"Cliques", "Resultados", "CTR", "CPM", "ROAS",
	}

	formats := []sheetsdomain.ColumnFormat{
		{Column: 4, Pattern: sheetsdomain.FormatCurrency},
		{Column: 5, Pattern: sheetsdomain.FormatInteger},
		{Column: 6, Pattern: sheetsdomain.FormatInteger},
		{Column: 7, Pattern: sheetsdomain.FormatInteger},
		{Column: 8, Pattern: sheetsdomain.FormatPercent},
		{Column: 9, Pattern: sheetsdomain.FormatCurrency},
		{Column: 10, Pattern: sheetsdomain.FormatDecimal},
	}

	keys := make([]string, 0, len(metrics))
	rows := make([][]any, 0, len(metrics))
	for _, m := range metrics {
		key := fmt.Sprintf("%s|%s", m.EntityID, m.Date.Format(time.DateOnly))
		keys = append(keys, key)
		rows = append(rows, []any{
			key,
			m.EntityID,
			m.EntityName,
			m.Date.Format(time.DateOnly),
			m.Spend,
			m.Impressions,
			m.Clicks,
			m.Results,
			m.CTR,
			m.CPM,
			m.ROAS,
		})
	}

	return s.syncSheet(ctx, sheetsdomain.SheetDailyTrend, header, keys, rows, formats)
}

// SyncWeeklySummary sincroniza a aba de resumo semanal.
// A chave de cada linha é a composição id|início-da-semana.
func (s *Service) SyncWeeklySummary(ctx context.Context, summaries []*domain.WeeklySummary) (int, error) {
	header := []any{
		"Chave", "ID", "Nome", "Início", "Fim", "Gasto Total", "Impressões",
		"Cliques", "Resultados", "CTR Médio", "CPM Médio", "ROAS Médio",
	}

	formats := []sheetsdomain.ColumnFormat{
		{Column: 5, Pattern: sheetsdomain.FormatCurrency},
		{Column: 6, Pattern: sheetsdomain.FormatInteger},
		{Column: 7, Pattern: sheetsdomain.FormatInteger},
		{Column: 8, Pattern: sheetsdomain.FormatInteger},
		{Column: 9, Pattern: sheetsdomain.FormatPercent},
		{Column: 10, Pattern: sheetsdomain.FormatCurrency},
		{Column: 11, Pattern: sheetsdomain.FormatDecimal},
	}

	keys := make([]string, 0, len(summaries))
	rows := make([][]any, 0, len(summaries))
	for _, w := range summaries {
		key := fmt.Sprintf("%s|%s", w.EntityID, w.WeekStart.Format(time.DateOnly))
		keys = append(keys, key)
		rows = append(rows, []any{
			key,
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
		})
	}

	return s.syncSheet(ctx, sheetsdomain.SheetWeeklySummary, header, keys, rows, formats)
}

// syncSheet aplica o lote na aba: lê as chaves existentes uma única vez,
// sobrescreve no lugar as já presentes e acrescenta as novas. Em falha de
// escrita, o lote restante é retentado até o limite configurado; esgotado,
// retorna SyncError com a contabilidade exata de confirmadas e pendentes.
func (s *Service) syncSheet(ctx context.Context, sheetName string, header []any, keys []string, rows [][]any, formats []sheetsdomain.ColumnFormat) (int, error) {
	existing, err := s.client.ReadRange(ctx, sheetName+"!A:A")
	if err != nil {
		return 0, &domain.SyncError{
			Sheet:   sheetName,
			Pending: keys,
			Err:     err,
		}
	}

	nextRow := len(existing) + 1

	// Aba vazia recebe o cabeçalho antes das linhas de dados
	if len(existing) == 0 {
		if err := s.client.UpdateRange(ctx, sheetName+"!A1", [][]any{header}); err != nil {
			return 0, &domain.SyncError{
				Sheet:   sheetName,
				Pending: keys,
				Err:     err,
			}
		}
		nextRow = 2
	}

	rowIndexByKey := make(map[string]int, len(existing))
	for i, row := range existing {
		if i == 0 || len(row) == 0 {
			continue
		}
		rowIndexByKey[row[0]] = i + 1 // Índice de linha baseado em 1
	}

	// Chaves repetidas dentro do lote colapsam na última ocorrência
	pending := make([]pendingRow, 0, len(rows))
	plannedAt := make(map[string]int, len(rows))
	for i, key := range keys {
		if pos, ok := plannedAt[key]; ok {
			pending[pos].values = rows[i]
			continue
		}

		p := pendingRow{key: key, values: rows[i]}
		if rowIndex, ok := rowIndexByKey[key]; ok {
			p.rowIndex = rowIndex
		}
		plannedAt[key] = len(pending)
		pending = append(pending, p)
	}

	confirmed := make([]string, 0, len(pending))
	retries := 0

	for len(pending) > 0 {
		p := pending[0]

		var writeErr error
		if p.rowIndex > 0 {
			writeErr = s.client.UpdateRange(ctx, fmt.Sprintf("%s!A%d", sheetName, p.rowIndex), [][]any{p.values})
		} else {
			writeErr = s.client.AppendRows(ctx, sheetName+"!A:Z", [][]any{p.values})
		}

		if writeErr != nil {
			retries++
			if retries >= s.cfg.Sheets.MaxSyncRetries {
				pendingKeys := make([]string, 0, len(pending))
				for _, row := range pending {
					pendingKeys = append(pendingKeys, row.key)
				}

				return len(confirmed), &domain.SyncError{
					Sheet:     sheetName,
					Confirmed: confirmed,
					Pending:   pendingKeys,
					Err:       writeErr,
				}
			}

			logrus.WithFields(logrus.Fields{
				"sheet":   sheetName,
				"key":     p.key,
				"retries": retries,
				"error":   writeErr.Error(),
			}).Warn("Falha de escrita na planilha, retentando lote")

			select {
			case <-ctx.Done():
				pendingKeys := make([]string, 0, len(pending))
				for _, row := range pending {
					pendingKeys = append(pendingKeys, row.key)
				}
				return len(confirmed), &domain.SyncError{
					Sheet:     sheetName,
					Confirmed: confirmed,
					Pending:   pendingKeys,
					Err:       ctx.Err(),
				}
			case <-time.After(time.Second):
			}
			continue
		}

		if p.rowIndex == 0 {
			nextRow++
		}
		confirmed = append(confirmed, p.key)
		pending = pending[1:]
	}

	// Formatos reaplicados a cada escrita; falha aqui não invalida os dados
	if len(confirmed) > 0 {
		if err := s.client.ApplyColumnFormats(ctx, sheetName, nextRow-1, formats); err != nil {
			logrus.WithFields(logrus.Fields{
				"sheet": sheetName,
				"error": err.Error(),
			}).Warn("Falha ao reaplicar formatos de coluna")
		}
	}

	s.advanceSyncState(sheetName, confirmed, nextRow-1)

	logrus.WithFields(logrus.Fields{
		"sheet":     sheetName,
		"confirmed": len(confirmed),
		"row_count": nextRow - 1,
	}).Info("Sincronização da aba concluída")

	return len(confirmed), nil
}

// advanceSyncState avança a marca d'água da aba após confirmação de escrita
func (s *Service) advanceSyncState(sheetName string, confirmed []string, rowCount int) {
	if s.syncStateRepo == nil || len(confirmed) == 0 {
		return
	}

	state := &domain.SyncState{
		SheetName:  sheetName,
		LastRowKey: confirmed[len(confirmed)-1],
		RowCount:   rowCount,
		SyncedAt:   time.Now(),
	}

	if err := s.syncStateRepo.SaveOrUpdate(state); err != nil {
		logrus.WithFields(logrus.Fields{
			"sheet": sheetName,
			"error": err.Error(),
		}).Error("Erro ao salvar estado de sincronização da aba")
	}
}
