package handler

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-tracker-api/infrastructure/repository"
	"github.com/vfg2006/campaign-tracker-api/internal/usecases/alerting"
	"github.com/vfg2006/campaign-tracker-api/pkg/apiErrors"
)

// ReportServices contém as fontes de leitura expostas pela API administrativa
type ReportServices struct {
	AlertSink    *alerting.MemorySink
	SnapshotRepo repository.SnapshotRepository
}

// GetLatestAlerts retorna os alertas disparados na execução mais recente
func GetLatestAlerts(services ReportServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetLatestAlerts")

		if services.AlertSink == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Sink de alertas não disponível", nil)
			return
		}

		events := services.AlertSink.Latest()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"count":  len(events),
			"alerts": events,
		})
	}
}

// GetLatestReport retorna os snapshots de métricas do dia corrente, recuando
// para o dia anterior quando a pipeline de hoje ainda não rodou
func GetLatestReport(services ReportServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetLatestReport")

		if services.SnapshotRepo == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Repositório de snapshots não disponível", nil)
			return
		}

		reference := time.Now().Truncate(24 * time.Hour)
		snapshots, err := services.SnapshotRepo.GetByDateRange(reference, reference)
		if err != nil {
			logrus.WithError(err).Error("Erro ao buscar snapshots do relatório")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao buscar o relatório", nil)
			return
		}

		if len(snapshots) == 0 {
			previousDay := reference.AddDate(0, 0, -1)
			snapshots, err = services.SnapshotRepo.GetByDateRange(previousDay, previousDay)
			if err != nil {
				logrus.WithError(err).Error("Erro ao buscar snapshots do dia anterior")
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao buscar o relatório", nil)
				return
			}
			reference = previousDay
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"date":      reference.Format("2006-01-02"),
			"count":     len(snapshots),
			"snapshots": snapshots,
		})
	}
}
