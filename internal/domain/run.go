package domain

import "time"

// TaskFlush is the task name used for keyspace flush runs.
const TaskFlush = "flush"

// RunStatus tracks the outcome of a task run.
type RunStatus string

const (
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
)

// RunRecord is the persisted outcome of one task run.
type RunRecord struct {
	ID        string
	Task      string
	StartedAt time.Time
	Duration  time.Duration
	Status    RunStatus
	Keyspaces []string
	Error     string
}
