package storage

import "time"

// Run is one recorded suite run.
type Run struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Total      int       `json:"total"`
	Failed     int       `json:"failed"`
	CacheHits  int       `json:"cacheHits"`
}

// StepRecord is one persisted step outcome belonging to a run.
type StepRecord struct {
	RunID      string `json:"runId"`
	Position   int    `json:"position"`
	Command    string `json:"command"`
	ExitCode   int    `json:"exitCode"`
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
	DurationMS int64  `json:"durationMs"`
	Cached     bool   `json:"cached"`
}

// RunStore persists suite runs and their per-step results.
type RunStore interface {
	Init() error
	CreateRun(run *Run) error
	AddStepResult(record *StepRecord) error
	GetRuns() ([]*Run, error)
	GetRun(id string) (*Run, error)
	GetStepResults(runID string) ([]*StepRecord, error)
	DeleteRun(id string) error
	Close() error
}
