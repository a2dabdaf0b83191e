package sheets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/campaign-tracker-api/infrastructure/integrator/sheets/sheetsclient/mocks"
	"github.com/vfg2006/campaign-tracker-api/internal/config"
	"github.com/vfg2006/campaign-tracker-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func newSheetsConfig() *config.Config {
	return &config.Config{
		Sheets: config.Sheets{
			Enabled:        true,
			MaxSyncRetries: 2,
		},
	}
}

func testMetrics() []*domain.ProcessedMetric {
	date := time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC)
	return []*domain.ProcessedMetric{
		{EntityID: "AS001", EntityName: "Conjunto A", Date: date, Spend: 100.0, Impressions: 1000, Clicks: 50, Results: 10, CTR: 0.05, CPM: 100.0, ROAS: 0.1, EfficiencyScore: 1.0, Rank: 1},
		{EntityID: "AS002", EntityName: "Conjunto B", Date: date, Spend: 50.0, Impressions: 500, Clicks: 10, Results: 2, CTR: 0.02, CPM: 100.0, ROAS: 0.04, EfficiencyScore: 0.0, Rank: 2},
	}
}

func TestService_SyncComparison_AbaVazia(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	service := NewService(newSheetsConfig(), mockClient, nil)

	// Aba vazia: cabeçalho primeiro, depois as duas linhas acrescentadas
	mockClient.EXPECT().
		ReadRange(gomock.Any(), "Comparativo!A:A").
		Return([][]string{}, nil)

	mockClient.EXPECT().
		UpdateRange(gomock.Any(), "Comparativo!A1", gomock.Any()).
		Return(nil)

	mockClient.EXPECT().
		AppendRows(gomock.Any(), "Comparativo!A:Z", gomock.Any()).
		Return(nil).
		Times(2)

	mockClient.EXPECT().
		ApplyColumnFormats(gomock.Any(), "Comparativo", 3, gomock.Any()).
		Return(nil)

	synced, err := service.SyncComparison(context.Background(), testMetrics())

	assert.NoError(t, err)
	assert.Equal(t, 2, synced)
}

func TestService_SyncComparison_ChaveExistenteSobrescritaNoLugar(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	service := NewService(newSheetsConfig(), mockClient, nil)

	// AS001 já existe na linha 2: deve ser sobrescrito no lugar, nunca duplicado
	mockClient.EXPECT().
		ReadRange(gomock.Any(), "Comparativo!A:A").
		Return([][]string{{"ID"}, {"AS001"}}, nil)

	mockClient.EXPECT().
		UpdateRange(gomock.Any(), "Comparativo!A2", gomock.Any()).
		Return(nil)

	mockClient.EXPECT().
		AppendRows(gomock.Any(), "Comparativo!A:Z", gomock.Any()).
		Return(nil)

	mockClient.EXPECT().
		ApplyColumnFormats(gomock.Any(), "Comparativo", 3, gomock.Any()).
		Return(nil)

	synced, err := service.SyncComparison(context.Background(), testMetrics())

	assert.NoError(t, err)
	assert.Equal(t, 2, synced)
}

func TestService_SyncComparison_SegundaExecucaoIdempotente(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	service := NewService(newSheetsConfig(), mockClient, nil)

	// Segunda execução com as mesmas chaves: apenas sobrescritas, nenhum acréscimo
	mockClient.EXPECT().
		ReadRange(gomock.Any(), "Comparativo!A:A").
		Return([][]string{{"ID"}, {"AS001"}, {"AS002"}}, nil)

	mockClient.EXPECT().
		UpdateRange(gomock.Any(), "Comparativo!A2", gomock.Any()).
		Return(nil)

	mockClient.EXPECT().
		UpdateRange(gomock.Any(), "Comparativo!A3", gomock.Any()).
		Return(nil)

	mockClient.EXPECT().
		ApplyColumnFormats(gomock.Any(), "Comparativo", 3, gomock.Any()).
		Return(nil)

	synced, err := service.SyncComparison(context.Background(), testMetrics())

	assert.NoError(t, err)
	assert.Equal(t, 2, synced)
}

func TestService_SyncComparison_ChavesRepetidasNoLote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	service := NewService(newSheetsConfig(), mockClient, nil)

	date := time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC)
	metrics := []*domain.ProcessedMetric{
		{EntityID: "AS001", EntityName: "Primeira ocorrência", Date: date, Spend: 10.0},
		{EntityID: "AS001", EntityName: "Última ocorrência", Date: date, Spend: 20.0},
	}

	mockClient.EXPECT().
		ReadRange(gomock.Any(), "Comparativo!A:A").
		Return([][]string{{"ID"}}, nil)

	// Chave repetida colapsa na última ocorrência: uma única escrita
	mockClient.EXPECT().
		AppendRows(gomock.Any(), "Comparativo!A:Z", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, values [][]any) error {
			assert.Len(t, values, 1)
			assert.Equal(t, "Última ocorrência", values[0][1])
			return nil
		})

	mockClient.EXPECT().
		ApplyColumnFormats(gomock.Any(), "Comparativo", 2, gomock.Any()).
		Return(nil)

	synced, err := service.SyncComparison(context.Background(), metrics)

	assert.NoError(t, err)
	assert.Equal(t, 1, synced)
}

func TestService_SyncComparison_FalhaDeEscritaComContabilidade(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	service := NewService(newSheetsConfig(), mockClient, nil)

	mockClient.EXPECT().
		ReadRange(gomock.Any(), "Comparativo!A:A").
		Return([][]string{{"ID"}}, nil)

	// Primeira linha confirma, segunda falha até esgotar as tentativas
	gomock.InOrder(
		mockClient.EXPECT().
			AppendRows(gomock.Any(), "Comparativo!A:Z", gomock.Any()).
			Return(nil),
		mockClient.EXPECT().
			AppendRows(gomock.Any(), "Comparativo!A:Z", gomock.Any()).
			Return(errors.New("quota excedida")).
			Times(2),
	)

	synced, err := service.SyncComparison(context.Background(), testMetrics())

	assert.Equal(t, 1, synced)
	assert.Error(t, err)

	var syncErr *domain.SyncError
	assert.ErrorAs(t, err, &syncErr)
	assert.Equal(t, "Comparativo", syncErr.Sheet)
	assert.Equal(t, []string{"AS001"}, syncErr.Confirmed)
	assert.Equal(t, []string{"AS002"}, syncErr.Pending)
}

func TestService_SyncComparison_FalhaDeLeitura(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	service := NewService(newSheetsConfig(), mockClient, nil)

	mockClient.EXPECT().
		ReadRange(gomock.Any(), "Comparativo!A:A").
		Return(nil, errors.New("token expirado"))

	synced, err := service.SyncComparison(context.Background(), testMetrics())

	assert.Equal(t, 0, synced)

	var syncErr *domain.SyncError
	assert.ErrorAs(t, err, &syncErr)
	assert.Empty(t, syncErr.Confirmed)
	assert.Equal(t, []string{"AS001", "AS002"}, syncErr.Pending)
}

func TestService_SyncDailyTrend_ChaveComposta(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	service := NewService(newSheetsConfig(), mockClient, nil)

	date := time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC)
	metrics := []*domain.ProcessedMetric{
		{EntityID: "AS001", EntityName: "Conjunto A", Date: date, Spend: 100.0},
	}

	// A chave id|data do dia já existe: a linha é sobrescrita
	mockClient.EXPECT().
		ReadRange(gomock.Any(), "TendenciaDiaria!A:A").
		Return([][]string{{"Chave"}, {"AS001|2025-08-29"}, {"AS001|2025-08-30"}}, nil)

	mockClient.EXPECT().
		UpdateRange(gomock.Any(), "TendenciaDiaria!A3", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, values [][]any) error {
			assert.Equal(t, "AS001|2025-08-30", values[0][0])
			return nil
		})

	mockClient.EXPECT().
		ApplyColumnFormats(gomock.Any(), "TendenciaDiaria", 3, gomock.Any()).
		Return(nil)

	synced, err := service.SyncDailyTrend(context.Background(), metrics)

	assert.NoError(t, err)
	assert.Equal(t, 1, synced)
}
