package service

import "time"

// Pipeline stage names as they appear in run reports.
const (
	StageCooldown = "cooldown"
	StageProducts = "products"
	StageSales    = "sales"
	StageTransit  = "transit"
	StageStocks   = "stocks"
	StageFinish   = "finish"
)

// StageEvent is one timestamped step of an update run.
type StageEvent struct {
	Stage     string    `json:"stage"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Count     int       `json:"count,omitempty"`
	Skipped   int       `json:"skipped,omitempty"`
}

// RunReport is the structured result of one update run, returned
// directly to the caller. There is no ambient log target: everything a
// trigger surface wants to show lives here.
type RunReport struct {
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Events     []StageEvent `json:"events"`
	Success    bool         `json:"success"`
	Error      string       `json:"error,omitempty"`
}

func (r *RunReport) addEvent(now time.Time, stage, message string, count, skipped int) {
	r.Events = append(r.Events, StageEvent{
		Stage:     stage,
		Timestamp: now,
		Message:   message,
		Count:     count,
		Skipped:   skipped,
	})
}
