package domain

import "time"

// RunState indica o estado da máquina de execução da pipeline
type RunState string

const (
	RunStateIdle      RunState = "idle"
	RunStateRunning   RunState = "running"
	RunStateSucceeded RunState = "succeeded"
	RunStateFailed    RunState = "failed"
)

// RunCounters acumula os contadores de uma execução da pipeline
type RunCounters struct {
	CampaignsFetched  int `json:"campaigns_fetched"`
	AdSetsFetched     int `json:"ad_sets_fetched"`
	RecordsNormalized int `json:"records_normalized"`
	RecordsSkipped    int `json:"records_skipped"`
	AlertsTriggered   int `json:"alerts_triggered"`
	RowsSynced        int `json:"rows_synced"`
}

// RunStatus é o retrato do estado atual do orquestrador, exposto pela API
type RunStatus struct {
	State           RunState    `json:"state"`
	LastRunID       string      `json:"last_run_id"`
	LastStartedAt   time.Time   `json:"last_started_at"`
	LastCompletedAt time.Time   `json:"last_completed_at"`
	LastError       string      `json:"last_error,omitempty"`
	Counters        RunCounters `json:"counters"`
}
