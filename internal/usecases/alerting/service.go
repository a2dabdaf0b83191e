package alerting

import (
	"context"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-tracker-api/internal/config"
	"github.com/vfg2006/campaign-tracker-api/internal/domain"
	"github.com/vfg2006/campaign-tracker-api/pkg/utils"
)

// Sink recebe os alertas disparados durante uma execução da pipeline
type Sink interface {
	Publish(ctx context.Context, event *domain.AlertEvent) error
}

// rule é uma regra de limiar sobre a variação diária de uma métrica.
// Limiares negativos disparam em queda, positivos em alta.
type rule struct {
	name      string
	metric    string
	threshold func(cfg *config.Config) float64
}

// Conjunto fechado de regras avaliadas a cada execução
var rules = []rule{
	{
		name:      "roas_decline",
		metric:    domain.MetricROAS,
		threshold: func(cfg *config.Config) float64 { return cfg.Alerts.RoasDeclineThreshold },
	},
	{
		name:      "spend_increase",
		metric:    domain.MetricSpend,
		threshold: func(cfg *config.Config) float64 { return cfg.Alerts.SpendIncreaseThreshold },
	},
	{
		name:      "conversion_decline",
		metric:    domain.MetricConversions,
		threshold: func(cfg *config.Config) float64 { return cfg.Alerts.ConversionDeclineThreshold },
	},
}

// Service avalia as regras de alerta sobre os pontos de tendência de uma
// execução, garantindo no máximo um alerta por par (conjunto, métrica)
type Service struct {
	cfg  *config.Config
	sink Sink
}

func NewService(cfg *config.Config, sink Sink) *Service {
	return &Service{
		cfg:  cfg,
		sink: sink,
	}
}

// Evaluate percorre os pontos de tendência e dispara os alertas cujas
// variações cruzaram os limiares. Pontos sem linha de base nunca alertam.
func (s *Service) Evaluate(ctx context.Context, runID string, trends []*domain.TrendPoint) []*domain.AlertEvent {
	events := make([]*domain.AlertEvent, 0)
	seen := make(map[string]bool)

	for _, point := range trends {
		if point.BaselineUnavailable || point.DeltaPct == nil {
			continue
		}

		for _, r := range rules {
			if r.metric != point.Metric {
				continue
			}

			threshold := r.threshold(s.cfg)
			if !crossed(*point.DeltaPct, threshold) {
				continue
			}

			// No máximo um alerta por (conjunto, métrica) por execução
			dedupKey := point.EntityID + "|" + point.Metric
			if seen[dedupKey] {
				continue
			}
			seen[dedupKey] = true

			id, err := utils.GenerateID()
			if err != nil {
				logrus.WithError(err).Error("alerting: erro ao gerar ID do alerta")
				continue
			}

			event := &domain.AlertEvent{
				ID:          id,
				RunID:       runID,
				EntityID:    point.EntityID,
				EntityName:  point.EntityName,
				Metric:      point.Metric,
				Rule:        r.name,
				DeltaPct:    *point.DeltaPct,
				Threshold:   threshold,
				Severity:    s.severity(*point.DeltaPct, threshold),
				TriggeredAt: time.Now(),
			}

			events = append(events, event)

			if s.sink != nil {
				if err := s.sink.Publish(ctx, event); err != nil {
					logrus.WithFields(logrus.Fields{
						"entity_id": event.EntityID,
						"rule":      event.Rule,
						"error":     err.Error(),
					}).Error("alerting: erro ao publicar alerta")
				}
			}
		}
	}

	return events
}

// crossed verifica se a variação cruzou o limiar na direção configurada
func crossed(deltaPct, threshold float64) bool {
	if threshold < 0 {
		return deltaPct <= threshold
	}
	return deltaPct >= threshold
}

// severity classifica o alerta pela razão entre variação e limiar:
// a partir do multiplicador crítico vira critical, abaixo fica warning
func (s *Service) severity(deltaPct, threshold float64) domain.AlertSeverity {
	ratio := math.Abs(deltaPct) / math.Abs(threshold)
	if ratio >= s.cfg.Alerts.CriticalMultiplier {
		return domain.AlertSeverityCritical
	}
	return domain.AlertSeverityWarning
}
