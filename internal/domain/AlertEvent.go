package domain

import "time"

// AlertSeverity indica a gravidade de um alerta de performance
type AlertSeverity string

const (
	AlertSeverityWarning  AlertSeverity = "warning"
	AlertSeverityCritical AlertSeverity = "critical"
)

// AlertEvent representa um alerta disparado por uma regra de limiar
// durante uma execução da pipeline
type AlertEvent struct {
	ID          string        `json:"id"`
	RunID       string        `json:"run_id"`
	EntityID    string        `json:"entity_id"`
	EntityName  string        `json:"entity_name"`
	Metric      string        `json:"metric"`
	Rule        string        `json:"rule"`
	DeltaPct    float64       `json:"delta_pct"`
	Threshold   float64       `json:"threshold"`
	Severity    AlertSeverity `json:"severity"`
	TriggeredAt time.Time     `json:"triggered_at"`
}
