package persist

import "time"

// RunStatus is the outcome of a generation run.
type RunStatus string

const (
	StatusRunning RunStatus = "running"
	StatusOK      RunStatus = "ok"
	StatusFailed  RunStatus = "failed"
)

// Run is one recorded invocation of the generator.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Source     string // batch file path or tool name
	Category   string
	QuestCount int
	Host       string
	OS         string
	Status     RunStatus
	Error      string
}

// Output is one quest file produced by a run.
type Output struct {
	RunID   string
	QuestID string
	Path    string
	SHA256  string
	Content string
}
