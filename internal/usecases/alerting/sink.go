package alerting

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-tracker-api/internal/domain"
)

// LogSink publica os alertas no log estruturado da aplicação
type LogSink struct{}

func NewLogSink() *LogSink {
	return &LogSink{}
}

func (s *LogSink) Publish(_ context.Context, event *domain.AlertEvent) error {
	logger := logrus.WithFields(logrus.Fields{
		"alert_id":    event.ID,
		"run_id":      event.RunID,
		"entity_id":   event.EntityID,
		"entity_name": event.EntityName,
		"metric":      event.Metric,
		"rule":        event.Rule,
		"delta_pct":   event.DeltaPct,
		"threshold":   event.Threshold,
		"severity":    event.Severity,
	})

	if event.Severity == domain.AlertSeverityCritical {
		logger.Error("Alerta crítico de performance disparado")
	} else {
		logger.Warn("Alerta de performance disparado")
	}

	return nil
}
