package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-tracker-api/internal/scheduler"
	"github.com/vfg2006/campaign-tracker-api/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PipelineServices contém os agendadores expostos pela API administrativa
type PipelineServices struct {
	PipelineSyncService  *scheduler.PipelineSyncService
	WeeklySummaryService *scheduler.WeeklySummaryService
}

// RunPipeline dispara manualmente uma execução completa da pipeline
func RunPipeline(services PipelineServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunPipeline")

		if services.PipelineSyncService == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço da pipeline não disponível", nil)
			return
		}

		if err := services.PipelineSyncService.TriggerManualSync(); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrSyncInProgress, "Pipeline já em andamento", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Execução da pipeline iniciada com sucesso",
		})
	}
}

// GetPipelineStatus retorna o estado atual da pipeline e dos agendadores
func GetPipelineStatus(services PipelineServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetPipelineStatus")

		if services.PipelineSyncService == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço da pipeline não disponível", nil)
			return
		}

		status := map[string]any{
			"pipeline": services.PipelineSyncService.GetStatus(),
		}

		if services.WeeklySummaryService != nil {
			status["weekly_summary"] = services.WeeklySummaryService.GetStatus()
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(status)
	}
}
