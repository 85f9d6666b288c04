package models

// Run statuses, in the order a run moves through them.
const (
	StatusIdle    = "idle"
	StatusWaiting = "waiting"
	StatusDone    = "done"
	StatusError   = "error"
)

// RunLog stores one chat run for the dashboard history view.
// Parameters and Metrics are JSON-encoded blobs (temperature, max tokens,
// latency, cost, token counts) whose shape is owned by the engine.
type RunLog struct {
	ID         string `gorm:"primaryKey" json:"id"`
	SessionID  string `gorm:"index" json:"session_id,omitempty"`
	Timestamp  int64  `gorm:"index" json:"timestamp"`
	Provider   string `gorm:"index" json:"provider,omitempty"`
	Model      string `gorm:"index" json:"model,omitempty"`
	Status     string `gorm:"index" json:"status"`
	ChatInput  string `gorm:"type:text" json:"chat_input,omitempty"`
	ChatOutput string `gorm:"type:text" json:"chat_output,omitempty"`
	Parameters string `gorm:"type:text" json:"parameters,omitempty"`
	Metrics    string `gorm:"type:text" json:"metrics,omitempty"`
	Error      string `json:"error,omitempty"`
}

// RunStats holds aggregated counters for run logs.
type RunStats struct {
	TotalRuns  int64 `json:"total_runs"`
	DoneCount  int64 `json:"done_count"`
	ErrorCount int64 `json:"error_count"`
}
