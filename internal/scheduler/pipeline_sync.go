package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-tracker-api/infrastructure/export"
	"github.com/vfg2006/campaign-tracker-api/infrastructure/integrator/meta"
	"github.com/vfg2006/campaign-tracker-api/infrastructure/integrator/sheets"
	"github.com/vfg2006/campaign-tracker-api/infrastructure/repository"
	"github.com/vfg2006/campaign-tracker-api/internal/config"
	"github.com/vfg2006/campaign-tracker-api/internal/domain"
	"github.com/vfg2006/campaign-tracker-api/internal/usecases/alerting"
	"github.com/vfg2006/campaign-tracker-api/internal/usecases/processing"
	"github.com/vfg2006/campaign-tracker-api/pkg/utils"
)

// PipelineSyncConfig representa a configuração do orquestrador da pipeline
type PipelineSyncConfig struct {
	UpdateIntervalHours  int
	DailyReportTime      string
	LookbackDays         int
	ComparisonWindowDays int
	SyncEnabled          bool
}

// PipelineSyncService orquestra a pipeline completa: coleta dos insights do
// Meta, derivação de métricas, avaliação de alertas e sincronização com a
// planilha. Execuções nunca se sobrepõem: gatilhos durante uma execução em
// andamento são ignorados, não enfileirados.
type PipelineSyncService struct {
	scheduler    *gocron.Scheduler
	config       PipelineSyncConfig
	appConfig    *config.Config
	fetcher      meta.Fetcher
	processor    *processing.Service
	alerter      *alerting.Service
	synchronizer sheets.Synchronizer
	exporter     export.Exporter
	snapshotRepo repository.SnapshotRepository

	statusMutex sync.Mutex
	status      domain.RunStatus
}

// NewPipelineSyncService cria uma nova instância do orquestrador da pipeline
func NewPipelineSyncService(
	fetcher meta.Fetcher,
	processor *processing.Service,
	alerter *alerting.Service,
	synchronizer sheets.Synchronizer,
	exporter export.Exporter,
	snapshotRepo repository.SnapshotRepository,
	appConfig *config.Config,
) *PipelineSyncService {
	pipelineConfig := PipelineSyncConfig{
		UpdateIntervalHours:  appConfig.PipelineSync.UpdateIntervalHours,
		DailyReportTime:      appConfig.PipelineSync.DailyReportTime,
		LookbackDays:         appConfig.PipelineSync.LookbackDays,
		ComparisonWindowDays: appConfig.PipelineSync.ComparisonWindowDays,
		SyncEnabled:          appConfig.PipelineSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"update_interval_hours":  pipelineConfig.UpdateIntervalHours,
		"daily_report_time":      pipelineConfig.DailyReportTime,
		"lookback_days":          pipelineConfig.LookbackDays,
		"comparison_window_days": pipelineConfig.ComparisonWindowDays,
		"sync_enabled":           pipelineConfig.SyncEnabled,
	}).Info("Configuração do orquestrador da pipeline carregada")

	return &PipelineSyncService{
		scheduler:    scheduler,
		config:       pipelineConfig,
		appConfig:    appConfig,
		fetcher:      fetcher,
		processor:    processor,
		alerter:      alerter,
		synchronizer: synchronizer,
		exporter:     exporter,
		snapshotRepo: snapshotRepo,
		status: domain.RunStatus{
			State: domain.RunStateIdle,
		},
	}
}

// Start agenda a atualização horária e o relatório diário
func (s *PipelineSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Pipeline de coleta e sincronização desabilitada por configuração")
		return nil
	}

	logrus.WithFields(logrus.Fields{
		"interval_hours": s.config.UpdateIntervalHours,
		"daily_time":     s.config.DailyReportTime,
	}).Info("Iniciando orquestrador da pipeline")

	_, err := s.scheduler.Every(s.config.UpdateIntervalHours).Hours().Do(func() {
		s.runPipeline(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar atualização periódica da pipeline: %w", err)
	}

	_, err = s.scheduler.Every(1).Day().At(s.config.DailyReportTime).Do(func() {
		s.runPipeline(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar relatório diário da pipeline: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando orquestrador da pipeline")
		s.scheduler.Stop()
	}()

	return nil
}

// runPipeline executa uma passagem completa da pipeline. A máquina de estados
// garante execução única: um gatilho que chega com a pipeline em andamento é
// descartado.
func (s *PipelineSyncService) runPipeline(ctx context.Context) {
	s.statusMutex.Lock()
	if s.status.State == domain.RunStateRunning {
		s.statusMutex.Unlock()
		logrus.Info("Pipeline já em andamento, ignorando gatilho")
		return
	}

	runID, err := utils.GenerateID()
	if err != nil {
		s.statusMutex.Unlock()
		logrus.WithError(err).Error("Erro ao gerar identificador da execução da pipeline")
		return
	}

	s.status.State = domain.RunStateRunning
	s.status.LastRunID = runID
	s.status.LastStartedAt = time.Now()
	s.status.LastError = ""
	s.status.Counters = domain.RunCounters{}
	s.statusMutex.Unlock()

	logger := logrus.WithField("run_id", runID)
	logger.Info("Iniciando execução da pipeline")

	counters, err := s.executeStages(ctx, runID, logger)

	s.statusMutex.Lock()
	s.status.Counters = counters
	s.status.LastCompletedAt = time.Now()
	if err != nil {
		s.status.State = domain.RunStateFailed
		s.status.LastError = err.Error()
	} else {
		s.status.State = domain.RunStateSucceeded
	}
	duration := s.status.LastCompletedAt.Sub(s.status.LastStartedAt)
	s.statusMutex.Unlock()

	if err != nil {
		logger.WithFields(logrus.Fields{
			"duration": duration.String(),
			"error":    err.Error(),
		}).Error("Execução da pipeline falhou")
		return
	}

	logger.WithFields(logrus.Fields{
		"duration":           duration.String(),
		"campaigns_fetched":  counters.CampaignsFetched,
		"ad_sets_fetched":    counters.AdSetsFetched,
		"records_normalized": counters.RecordsNormalized,
		"records_skipped":    counters.RecordsSkipped,
		"alerts_triggered":   counters.AlertsTriggered,
		"rows_synced":        counters.RowsSynced,
	}).Info("Execução da pipeline concluída com sucesso")
}

// executeStages percorre os estágios da pipeline em ordem. Falha em coleta
// encerra a execução; registros malformados apenas incrementam o contador.
func (s *PipelineSyncService) executeStages(ctx context.Context, runID string, logger *logrus.Entry) (domain.RunCounters, error) {
	counters := domain.RunCounters{}

	campaigns, err := s.fetcher.FetchCampaigns(ctx)
	if err != nil {
		return counters, fmt.Errorf("erro ao buscar campanhas: %w", err)
	}
	counters.CampaignsFetched = len(campaigns)

	if len(campaigns) == 0 {
		logger.Info("Nenhuma campanha para acompanhar, encerrando execução")
		return counters, nil
	}

	adSets := make([]domain.AdSet, 0)
	for _, campaign := range campaigns {
		if err := ctx.Err(); err != nil {
			return counters, fmt.Errorf("execução cancelada: %w", err)
		}

		campaignAdSets, err := s.fetcher.FetchAdSets(ctx, campaign.ID)
		if err != nil {
			return counters, fmt.Errorf("erro ao buscar conjuntos da campanha %s: %w", campaign.ID, err)
		}
		adSets = append(adSets, campaignAdSets...)
	}
	counters.AdSetsFetched = len(adSets)

	if len(adSets) == 0 {
		logger.Info("Nenhum conjunto de anúncios encontrado, encerrando execução")
		return counters, nil
	}

	reference := time.Now().Truncate(24 * time.Hour)
	windowStart := reference.AddDate(0, 0, -(s.comparisonWindowDays() - 1))
	filters := &domain.InsightFilters{
		StartDate: &windowStart,
		EndDate:   &reference,
	}

	records, skipped, err := s.fetcher.FetchInsights(ctx, adSets, filters)
	counters.RecordsSkipped = skipped
	if err != nil {
		return counters, fmt.Errorf("erro ao buscar insights: %w", err)
	}
	counters.RecordsNormalized = len(records)

	metrics := s.processor.BuildMetrics(records)

	s.saveSnapshots(metrics, logger)

	trends := s.processor.BuildTrends(metrics, s.previousDayBaseline(reference, logger))

	alerts := s.alerter.Evaluate(ctx, runID, trends)
	counters.AlertsTriggered = len(alerts)

	if err := ctx.Err(); err != nil {
		return counters, fmt.Errorf("execução cancelada: %w", err)
	}

	rowsSynced, syncErr := s.syncSheets(ctx, metrics, logger)
	counters.RowsSynced = rowsSynced

	s.exportWorkbook(metrics, logger)

	s.cleanupSnapshots(logger)

	if syncErr != nil {
		return counters, syncErr
	}

	return counters, nil
}

// comparisonWindowDays retorna o tamanho da janela de agregação comparativa,
// nunca menor que um dia
func (s *PipelineSyncService) comparisonWindowDays() int {
	if s.config.ComparisonWindowDays < 1 {
		return 1
	}
	return s.config.ComparisonWindowDays
}

// saveSnapshots persiste o retrato diário de cada conjunto. Falha de
// persistência não interrompe a execução.
func (s *PipelineSyncService) saveSnapshots(metrics []*domain.ProcessedMetric, logger *logrus.Entry) {
	if s.snapshotRepo == nil {
		return
	}

	for _, metric := range metrics {
		snapshot := &domain.InsightSnapshot{
			EntityID:   metric.EntityID,
			EntityName: metric.EntityName,
			Date:       metric.Date,
			Metrics:    metric,
		}

		if err := s.snapshotRepo.SaveOrUpdate(snapshot); err != nil {
			logger.WithFields(logrus.Fields{
				"entity_id": metric.EntityID,
				"error":     err.Error(),
			}).Error("Erro ao salvar snapshot diário")
		}
	}
}

// cleanupSnapshots remove os snapshots além do período de retenção. Falha na
// limpeza não interrompe a execução.
func (s *PipelineSyncService) cleanupSnapshots(logger *logrus.Entry) {
	if s.snapshotRepo == nil || s.config.LookbackDays <= 0 {
		return
	}

	deleted, err := s.snapshotRepo.DeleteOlderThan(s.config.LookbackDays)
	if err != nil {
		logger.WithError(err).Error("Erro ao remover snapshots antigos")
		return
	}

	if deleted > 0 {
		logger.WithFields(logrus.Fields{
			"deleted":        deleted,
			"retention_days": s.config.LookbackDays,
		}).Info("Snapshots antigos removidos")
	}
}

// previousDayBaseline busca os snapshots do dia anterior para a comparação
// diária. Sem snapshots, todos os pontos saem sem linha de base.
func (s *PipelineSyncService) previousDayBaseline(reference time.Time, logger *logrus.Entry) map[string]*domain.ProcessedMetric {
	if s.snapshotRepo == nil {
		return map[string]*domain.ProcessedMetric{}
	}

	previousDay := reference.AddDate(0, 0, -1)
	snapshots, err := s.snapshotRepo.GetByDateRange(previousDay, previousDay)
	if err != nil {
		logger.WithError(err).Warn("Erro ao buscar linha de base do dia anterior")
		return map[string]*domain.ProcessedMetric{}
	}

	return processing.PreviousDayBaseline(snapshots, reference)
}

// syncSheets sincroniza as abas comparativa e de tendência diária. A aba
// comparativa sempre tenta primeiro; o total de linhas confirmadas é somado
// mesmo em falha parcial.
func (s *PipelineSyncService) syncSheets(ctx context.Context, metrics []*domain.ProcessedMetric, logger *logrus.Entry) (int, error) {
	if s.synchronizer == nil || !s.appConfig.Sheets.Enabled {
		return 0, nil
	}

	total := 0

	synced, err := s.synchronizer.SyncComparison(ctx, metrics)
	total += synced
	if err != nil {
		return total, fmt.Errorf("erro ao sincronizar aba comparativa: %w", err)
	}

	synced, err = s.synchronizer.SyncDailyTrend(ctx, metrics)
	total += synced
	if err != nil {
		return total, fmt.Errorf("erro ao sincronizar aba de tendência diária: %w", err)
	}

	logger.WithField("rows_synced", total).Info("Sincronização com a planilha concluída")

	return total, nil
}

// exportWorkbook gera o relatório xlsx local quando habilitado. Falha aqui
// não derruba a execução.
func (s *PipelineSyncService) exportWorkbook(metrics []*domain.ProcessedMetric, logger *logrus.Entry) {
	if s.exporter == nil || !s.appConfig.Export.Enabled {
		return
	}

	path, err := s.exporter.ExportWorkbook(metrics, nil)
	if err != nil {
		logger.WithError(err).Error("Erro ao gerar relatório xlsx")
		return
	}

	logger.WithField("path", path).Info("Relatório xlsx gerado")
}

// TriggerManualSync inicia manualmente uma execução da pipeline.
// Retorna erro se já houver execução em andamento.
func (s *PipelineSyncService) TriggerManualSync() error {
	s.statusMutex.Lock()
	running := s.status.State == domain.RunStateRunning
	s.statusMutex.Unlock()

	if running {
		logrus.Info("Pipeline já em andamento, ignorando solicitação manual")
		return fmt.Errorf("pipeline já em andamento")
	}

	logrus.Info("Iniciando execução manual da pipeline")
	go s.runPipeline(context.Background())

	return nil
}

// GetStatus retorna o retrato atual da máquina de execução
func (s *PipelineSyncService) GetStatus() domain.RunStatus {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()
	return s.status
}
