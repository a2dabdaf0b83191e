package alerting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/campaign-tracker-api/internal/config"
	"github.com/vfg2006/campaign-tracker-api/internal/domain"
)

// captureSink acumula os alertas publicados durante o teste
type captureSink struct {
	events []*domain.AlertEvent
}

func (s *captureSink) Publish(_ context.Context, event *domain.AlertEvent) error {
	s.events = append(s.events, event)
	return nil
}

func newAlertConfig() *config.Config {
	return &config.Config{
		Alerts: config.Alerts{
			RoasDeclineThreshold:       -15.0,
			SpendIncreaseThreshold:     20.0,
			ConversionDeclineThreshold: -20.0,
			CriticalMultiplier:         2.0,
		},
	}
}

func floatPtr(f float64) *float64 {
	return &f
}

func TestService_Evaluate(t *testing.T) {
	date := time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		trends   []*domain.TrendPoint
		validate func(t *testing.T, events []*domain.AlertEvent)
	}{
		{
			name: "Queda de ROAS além do limiar deve disparar alerta",
			trends: []*domain.TrendPoint{
				{EntityID: "AS001", EntityName: "Conjunto A", Metric: domain.MetricROAS, Date: date, DeltaPct: floatPtr(-20.0)},
			},
			validate: func(t *testing.T, events []*domain.AlertEvent) {
				assert.Len(t, events, 1)
				assert.Equal(t, "roas_decline", events[0].Rule)
				assert.Equal(t, -20.0, events[0].DeltaPct)
				assert.Equal(t, -15.0, events[0].Threshold)
				assert.Equal(t, domain.AlertSeverityWarning, events[0].Severity)
				assert.NotEmpty(t, events[0].ID)
			},
		},
		{
			name: "Variação dentro do limiar não deve disparar alerta",
			trends: []*domain.TrendPoint{
				{EntityID: "AS001", Metric: domain.MetricROAS, Date: date, DeltaPct: floatPtr(-10.0)},
				{EntityID: "AS001", Metric: domain.MetricSpend, Date: date, DeltaPct: floatPtr(15.0)},
			},
			validate: func(t *testing.T, events []*domain.AlertEvent) {
				assert.Empty(t, events)
			},
		},
		{
			name: "Queda de ROAS no dobro do limiar deve ser crítica",
			trends: []*domain.TrendPoint{
				{EntityID: "AS001", Metric: domain.MetricROAS, Date: date, DeltaPct: floatPtr(-30.0)},
			},
			validate: func(t *testing.T, events []*domain.AlertEvent) {
				assert.Len(t, events, 1)
				assert.Equal(t, domain.AlertSeverityCritical, events[0].Severity)
			},
		},
		{
			name: "Alta de gasto além do limiar deve disparar alerta de direção positiva",
			trends: []*domain.TrendPoint{
				{EntityID: "AS001", Metric: domain.MetricSpend, Date: date, DeltaPct: floatPtr(25.0)},
			},
			validate: func(t *testing.T, events []*domain.AlertEvent) {
				assert.Len(t, events, 1)
				assert.Equal(t, "spend_increase", events[0].Rule)
				assert.Equal(t, domain.AlertSeverityWarning, events[0].Severity)
			},
		},
		{
			name: "Queda de conversões além do limiar deve disparar alerta",
			trends: []*domain.TrendPoint{
				{EntityID: "AS001", Metric: domain.MetricConversions, Date: date, DeltaPct: floatPtr(-45.0)},
			},
			validate: func(t *testing.T, events []*domain.AlertEvent) {
				assert.Len(t, events, 1)
				assert.Equal(t, "conversion_decline", events[0].Rule)
				assert.Equal(t, domain.AlertSeverityCritical, events[0].Severity)
			},
		},
		{
			name: "Ponto sem linha de base nunca deve disparar alerta",
			trends: []*domain.TrendPoint{
				{EntityID: "AS001", Metric: domain.MetricROAS, Date: date, BaselineUnavailable: true},
				{EntityID: "AS002", Metric: domain.MetricSpend, Date: date, DeltaPct: nil},
			},
			validate: func(t *testing.T, events []*domain.AlertEvent) {
				assert.Empty(t, events)
			},
		},
		{
			name: "No máximo um alerta por conjunto e métrica por execução",
			trends: []*domain.TrendPoint{
				{EntityID: "AS001", Metric: domain.MetricROAS, Date: date, DeltaPct: floatPtr(-20.0)},
				{EntityID: "AS001", Metric: domain.MetricROAS, Date: date, DeltaPct: floatPtr(-25.0)},
			},
			validate: func(t *testing.T, events []*domain.AlertEvent) {
				assert.Len(t, events, 1)
				assert.Equal(t, -20.0, events[0].DeltaPct)
			},
		},
		{
			name: "Conjuntos distintos devem gerar alertas independentes",
			trends: []*domain.TrendPoint{
				{EntityID: "AS001", Metric: domain.MetricROAS, Date: date, DeltaPct: floatPtr(-20.0)},
				{EntityID: "AS002", Metric: domain.MetricROAS, Date: date, DeltaPct: floatPtr(-18.0)},
			},
			validate: func(t *testing.T, events []*domain.AlertEvent) {
				assert.Len(t, events, 2)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &captureSink{}
			service := NewService(newAlertConfig(), sink)

			events := service.Evaluate(context.Background(), "run-001", tt.trends)

			tt.validate(t, events)
			assert.Equal(t, len(events), len(sink.events))

			for _, event := range events {
				assert.Equal(t, "run-001", event.RunID)
			}
		})
	}
}

func TestCrossed(t *testing.T) {
	tests := []struct {
		name      string
		deltaPct  float64
		threshold float64
		expected  bool
	}{
		{"Limiar negativo dispara em queda igual ao limiar", -15.0, -15.0, true},
		{"Limiar negativo dispara em queda maior que o limiar", -16.0, -15.0, true},
		{"Limiar negativo não dispara em queda menor", -14.9, -15.0, false},
		{"Limiar negativo não dispara em alta", 30.0, -15.0, false},
		{"Limiar positivo dispara em alta igual ao limiar", 20.0, 20.0, true},
		{"Limiar positivo não dispara em alta menor", 19.9, 20.0, false},
		{"Limiar positivo não dispara em queda", -30.0, 20.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, crossed(tt.deltaPct, tt.threshold))
		})
	}
}
