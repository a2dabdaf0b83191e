package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-tracker-api/infrastructure/integrator/sheets"
	"github.com/vfg2006/campaign-tracker-api/infrastructure/repository"
	"github.com/vfg2006/campaign-tracker-api/internal/config"
	"github.com/vfg2006/campaign-tracker-api/internal/usecases/processing"
)

// WeeklySummaryConfig representa a configuração do agendador do resumo semanal
type WeeklySummaryConfig struct {
	Day     string
	Time    string
	Enabled bool
}

// WeeklySummaryService consolida os snapshots dos últimos 7 dias e
// sincroniza a aba de resumo semanal
type WeeklySummaryService struct {
	scheduler    *gocron.Scheduler
	config       WeeklySummaryConfig
	processor    *processing.Service
	synchronizer sheets.Synchronizer
	snapshotRepo repository.SnapshotRepository

	syncRunning bool
	syncMutex   sync.Mutex
	lastRunAt   time.Time
}

// NewWeeklySummaryService cria uma nova instância do agendador do resumo semanal
func NewWeeklySummaryService(
	processor *processing.Service,
	synchronizer sheets.Synchronizer,
	snapshotRepo repository.SnapshotRepository,
	appConfig *config.Config,
) *WeeklySummaryService {
	summaryConfig := WeeklySummaryConfig{
		Day:     appConfig.WeeklySummary.Day,
		Time:    appConfig.WeeklySummary.Time,
		Enabled: appConfig.WeeklySummary.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"day":     summaryConfig.Day,
		"time":    summaryConfig.Time,
		"enabled": summaryConfig.Enabled,
	}).Info("Configuração do agendador de resumo semanal carregada")

	return &WeeklySummaryService{
		scheduler:    scheduler,
		config:       summaryConfig,
		processor:    processor,
		synchronizer: synchronizer,
		snapshotRepo: snapshotRepo,
	}
}

// Start agenda a geração semanal do resumo
func (s *WeeklySummaryService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Resumo semanal desabilitado por configuração")
		return nil
	}

	job := s.scheduler.Every(1).Week()
	switch strings.ToLower(s.config.Day) {
	case "sunday":
		job = job.Sunday()
	case "monday":
		job = job.Monday()
	case "tuesday":
		job = job.Tuesday()
	case "wednesday":
		job = job.Wednesday()
	case "thursday":
		job = job.Thursday()
	case "friday":
		job = job.Friday()
	case "saturday":
		job = job.Saturday()
	default:
		return fmt.Errorf("dia do resumo semanal inválido: %s", s.config.Day)
	}

	logrus.WithFields(logrus.Fields{
		"day":  s.config.Day,
		"time": s.config.Time,
	}).Info("Iniciando agendador de resumo semanal")

	_, err := job.At(s.config.Time).Do(func() {
		s.buildWeeklySummary(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar resumo semanal: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de resumo semanal")
		s.scheduler.Stop()
	}()

	return nil
}

// buildWeeklySummary consolida os snapshots da última semana e sincroniza a aba
func (s *WeeklySummaryService) buildWeeklySummary(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Resumo semanal já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	startTime := time.Now()
	s.lastRunAt = startTime

	endDate := time.Now().AddDate(0, 0, -1)
	startDate := endDate.AddDate(0, 0, -6)

	logrus.WithFields(logrus.Fields{
		"start_date": startDate.Format(time.DateOnly),
		"end_date":   endDate.Format(time.DateOnly),
	}).Info("Iniciando consolidação do resumo semanal")

	snapshots, err := s.snapshotRepo.GetByDateRange(startDate, endDate)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar snapshots para o resumo semanal")
		return
	}

	if len(snapshots) == 0 {
		logrus.Info("Nenhum snapshot encontrado para o resumo semanal")
		return
	}

	summaries := s.processor.BuildWeeklySummaries(snapshots)

	synced, err := s.synchronizer.SyncWeeklySummary(ctx, summaries)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"synced": synced,
			"error":  err.Error(),
		}).Error("Erro ao sincronizar aba de resumo semanal")
		return
	}

	logrus.WithFields(logrus.Fields{
		"duration":  time.Since(startTime).String(),
		"entities":  len(summaries),
		"snapshots": len(snapshots),
		"synced":    synced,
	}).Info("Resumo semanal concluído com sucesso")
}

// GetStatus retorna o status atual do agendador
func (s *WeeklySummaryService) GetStatus() map[string]any {
	return map[string]any{
		"enabled":     s.config.Enabled,
		"day":         s.config.Day,
		"time":        s.config.Time,
		"last_run_at": s.lastRunAt,
	}
}
