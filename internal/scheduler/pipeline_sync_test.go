package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	metamocks "github.com/vfg2006/campaign-tracker-api/infrastructure/integrator/meta/mocks"
	sheetsmocks "github.com/vfg2006/campaign-tracker-api/infrastructure/integrator/sheets/mocks"
	"github.com/vfg2006/campaign-tracker-api/infrastructure/repository/mocks"
	"github.com/vfg2006/campaign-tracker-api/internal/config"
	"github.com/vfg2006/campaign-tracker-api/internal/domain"
	"github.com/vfg2006/campaign-tracker-api/internal/usecases/alerting"
	"github.com/vfg2006/campaign-tracker-api/internal/usecases/processing"
	"go.uber.org/mock/gomock"
)

func newPipelineConfig() *config.Config {
	return &config.Config{
		PipelineSync: config.PipelineSync{
			UpdateIntervalHours:  1,
			DailyReportTime:      "09:00",
			LookbackDays:         30,
			ComparisonWindowDays: 7,
			Enabled:              false,
		},
		Sheets: config.Sheets{
			Enabled:        true,
			MaxSyncRetries: 3,
		},
		Metrics: config.Metrics{
			WeightROAS:  0.5,
			WeightCTR:   0.3,
			WeightCPM:   0.2,
			ResultValue: 1.0,
		},
		Alerts: config.Alerts{
			RoasDeclineThreshold:       -15.0,
			SpendIncreaseThreshold:     20.0,
			ConversionDeclineThreshold: -20.0,
			CriticalMultiplier:         2.0,
		},
	}
}

func newPipelineService(cfg *config.Config, fetcher *metamocks.MockFetcher, synchronizer *sheetsmocks.MockSynchronizer, snapshotRepo *mocks.MockSnapshotRepository) *PipelineSyncService {
	return NewPipelineSyncService(
		fetcher,
		processing.NewService(cfg),
		alerting.NewService(cfg, alerting.NewLogSink()),
		synchronizer,
		nil,
		snapshotRepo,
		cfg,
	)
}

func TestPipelineSyncService_runPipeline(t *testing.T) {
	today := time.Now().Truncate(24 * time.Hour)

	t.Run("Execução completa deve atualizar os contadores e suceder", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockFetcher := metamocks.NewMockFetcher(ctrl)
		mockSynchronizer := sheetsmocks.NewMockSynchronizer(ctrl)
		mockSnapshotRepo := mocks.NewMockSnapshotRepository(ctrl)

		mockFetcher.EXPECT().
			FetchCampaigns(gomock.Any()).
			Return([]domain.Campaign{{ID: "C001", Name: "Campanha 1"}}, nil)

		mockFetcher.EXPECT().
			FetchAdSets(gomock.Any(), "C001").
			Return([]domain.AdSet{
				{ID: "AS001", CampaignID: "C001", Name: "Conjunto A"},
				{ID: "AS002", CampaignID: "C001", Name: "Conjunto B"},
			}, nil)

		mockFetcher.EXPECT().
			FetchInsights(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]domain.InsightRecord{
				{EntityID: "AS001", EntityName: "Conjunto A", Date: today, Impressions: 1000, Clicks: 50, Spend: 100.0, Results: 10},
				{EntityID: "AS002", EntityName: "Conjunto B", Date: today, Impressions: 500, Clicks: 10, Spend: 50.0, Results: 2},
			}, 1, nil)

		mockSnapshotRepo.EXPECT().
			SaveOrUpdate(gomock.Any()).
			Return(nil).
			Times(2)

		mockSnapshotRepo.EXPECT().
			GetByDateRange(gomock.Any(), gomock.Any()).
			Return([]*domain.InsightSnapshot{}, nil)

		mockSynchronizer.EXPECT().
			SyncComparison(gomock.Any(), gomock.Any()).
			Return(2, nil)

		mockSynchronizer.EXPECT().
			SyncDailyTrend(gomock.Any(), gomock.Any()).
			Return(2, nil)

		mockSnapshotRepo.EXPECT().
			DeleteOlderThan(30).
			Return(int64(0), nil)

		service := newPipelineService(newPipelineConfig(), mockFetcher, mockSynchronizer, mockSnapshotRepo)
		service.runPipeline(context.Background())

		status := service.GetStatus()
		assert.Equal(t, domain.RunStateSucceeded, status.State)
		assert.NotEmpty(t, status.LastRunID)
		assert.Empty(t, status.LastError)
		assert.Equal(t, 1, status.Counters.CampaignsFetched)
		assert.Equal(t, 2, status.Counters.AdSetsFetched)
		assert.Equal(t, 2, status.Counters.RecordsNormalized)
		assert.Equal(t, 1, status.Counters.RecordsSkipped)
		assert.Equal(t, 0, status.Counters.AlertsTriggered)
		assert.Equal(t, 4, status.Counters.RowsSynced)
	})

	t.Run("Janela de comparação configurada deve definir o intervalo da coleta", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockFetcher := metamocks.NewMockFetcher(ctrl)
		mockSynchronizer := sheetsmocks.NewMockSynchronizer(ctrl)
		mockSnapshotRepo := mocks.NewMockSnapshotRepository(ctrl)

		mockFetcher.EXPECT().
			FetchCampaigns(gomock.Any()).
			Return([]domain.Campaign{{ID: "C001"}}, nil)

		mockFetcher.EXPECT().
			FetchAdSets(gomock.Any(), "C001").
			Return([]domain.AdSet{{ID: "AS001", CampaignID: "C001"}}, nil)

		mockFetcher.EXPECT().
			FetchInsights(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ []domain.AdSet, filters *domain.InsightFilters) ([]domain.InsightRecord, int, error) {
				// Janela de 7 dias terminando hoje
				assert.Equal(t, today, *filters.EndDate)
				assert.Equal(t, today.AddDate(0, 0, -6), *filters.StartDate)
				return []domain.InsightRecord{}, 0, nil
			})

		mockSnapshotRepo.EXPECT().
			GetByDateRange(gomock.Any(), gomock.Any()).
			Return([]*domain.InsightSnapshot{}, nil)

		mockSynchronizer.EXPECT().SyncComparison(gomock.Any(), gomock.Any()).Return(0, nil)
		mockSynchronizer.EXPECT().SyncDailyTrend(gomock.Any(), gomock.Any()).Return(0, nil)
		mockSnapshotRepo.EXPECT().DeleteOlderThan(30).Return(int64(2), nil)

		service := newPipelineService(newPipelineConfig(), mockFetcher, mockSynchronizer, mockSnapshotRepo)
		service.runPipeline(context.Background())

		assert.Equal(t, domain.RunStateSucceeded, service.GetStatus().State)
	})

	t.Run("Falha na coleta deve marcar a execução como falha", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockFetcher := metamocks.NewMockFetcher(ctrl)
		mockSynchronizer := sheetsmocks.NewMockSynchronizer(ctrl)
		mockSnapshotRepo := mocks.NewMockSnapshotRepository(ctrl)

		mockFetcher.EXPECT().
			FetchCampaigns(gomock.Any()).
			Return(nil, errors.New("api indisponível"))

		service := newPipelineService(newPipelineConfig(), mockFetcher, mockSynchronizer, mockSnapshotRepo)
		service.runPipeline(context.Background())

		status := service.GetStatus()
		assert.Equal(t, domain.RunStateFailed, status.State)
		assert.Contains(t, status.LastError, "api indisponível")
		assert.Equal(t, 0, status.Counters.CampaignsFetched)
	})

	t.Run("Sem campanhas a execução deve suceder sem buscar conjuntos", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockFetcher := metamocks.NewMockFetcher(ctrl)
		mockSynchronizer := sheetsmocks.NewMockSynchronizer(ctrl)
		mockSnapshotRepo := mocks.NewMockSnapshotRepository(ctrl)

		mockFetcher.EXPECT().
			FetchCampaigns(gomock.Any()).
			Return([]domain.Campaign{}, nil)

		service := newPipelineService(newPipelineConfig(), mockFetcher, mockSynchronizer, mockSnapshotRepo)
		service.runPipeline(context.Background())

		status := service.GetStatus()
		assert.Equal(t, domain.RunStateSucceeded, status.State)
		assert.Equal(t, 0, status.Counters.AdSetsFetched)
	})

	t.Run("Falha na sincronização deve falhar mantendo as linhas confirmadas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockFetcher := metamocks.NewMockFetcher(ctrl)
		mockSynchronizer := sheetsmocks.NewMockSynchronizer(ctrl)
		mockSnapshotRepo := mocks.NewMockSnapshotRepository(ctrl)

		mockFetcher.EXPECT().
			FetchCampaigns(gomock.Any()).
			Return([]domain.Campaign{{ID: "C001"}}, nil)

		mockFetcher.EXPECT().
			FetchAdSets(gomock.Any(), "C001").
			Return([]domain.AdSet{{ID: "AS001", CampaignID: "C001"}}, nil)

		mockFetcher.EXPECT().
			FetchInsights(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]domain.InsightRecord{
				{EntityID: "AS001", Date: today, Impressions: 1000, Clicks: 50, Spend: 100.0},
			}, 0, nil)

		mockSnapshotRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil)
		mockSnapshotRepo.EXPECT().GetByDateRange(gomock.Any(), gomock.Any()).Return(nil, nil)

		mockSynchronizer.EXPECT().
			SyncComparison(gomock.Any(), gomock.Any()).
			Return(1, nil)

		mockSynchronizer.EXPECT().
			SyncDailyTrend(gomock.Any(), gomock.Any()).
			Return(0, &domain.SyncError{Sheet: "TendenciaDiaria", Pending: []string{"AS001|2025-08-30"}})

		mockSnapshotRepo.EXPECT().
			DeleteOlderThan(30).
			Return(int64(0), nil)

		service := newPipelineService(newPipelineConfig(), mockFetcher, mockSynchronizer, mockSnapshotRepo)
		service.runPipeline(context.Background())

		status := service.GetStatus()
		assert.Equal(t, domain.RunStateFailed, status.State)
		assert.Equal(t, 1, status.Counters.RowsSynced)
	})
}

func TestPipelineSyncService_TriggerManualSync(t *testing.T) {
	t.Run("Gatilho com pipeline em andamento deve ser recusado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockFetcher := metamocks.NewMockFetcher(ctrl)
		mockSynchronizer := sheetsmocks.NewMockSynchronizer(ctrl)
		mockSnapshotRepo := mocks.NewMockSnapshotRepository(ctrl)

		service := newPipelineService(newPipelineConfig(), mockFetcher, mockSynchronizer, mockSnapshotRepo)

		service.statusMutex.Lock()
		service.status.State = domain.RunStateRunning
		service.statusMutex.Unlock()

		err := service.TriggerManualSync()
		assert.Error(t, err)
	})
}

func TestWeeklySummaryService_buildWeeklySummary(t *testing.T) {
	monday := time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC)

	t.Run("Deve consolidar os snapshots da semana e sincronizar a aba", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockSynchronizer := sheetsmocks.NewMockSynchronizer(ctrl)
		mockSnapshotRepo := mocks.NewMockSnapshotRepository(ctrl)

		cfg := newPipelineConfig()
		cfg.WeeklySummary = config.WeeklySummary{Day: "monday", Time: "10:00", Enabled: true}

		mockSnapshotRepo.EXPECT().
			GetByDateRange(gomock.Any(), gomock.Any()).
			Return([]*domain.InsightSnapshot{
				{
					EntityID:   "AS001",
					EntityName: "Conjunto A",
					Date:       monday,
					Metrics:    &domain.ProcessedMetric{Spend: 100.0, Impressions: 1000, Clicks: 50, Results: 10},
				},
			}, nil)

		mockSynchronizer.EXPECT().
			SyncWeeklySummary(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, summaries []*domain.WeeklySummary) (int, error) {
				assert.Len(t, summaries, 1)
				assert.Equal(t, "AS001", summaries[0].EntityID)
				assert.Equal(t, 100.0, summaries[0].TotalSpend)
				return 1, nil
			})

		service := NewWeeklySummaryService(processing.NewService(cfg), mockSynchronizer, mockSnapshotRepo, cfg)
		service.buildWeeklySummary(context.Background())
	})

	t.Run("Sem snapshots não deve sincronizar nada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockSynchronizer := sheetsmocks.NewMockSynchronizer(ctrl)
		mockSnapshotRepo := mocks.NewMockSnapshotRepository(ctrl)

		cfg := newPipelineConfig()

		mockSnapshotRepo.EXPECT().
			GetByDateRange(gomock.Any(), gomock.Any()).
			Return([]*domain.InsightSnapshot{}, nil)

		service := NewWeeklySummaryService(processing.NewService(cfg), mockSynchronizer, mockSnapshotRepo, cfg)
		service.buildWeeklySummary(context.Background())
	})
}
