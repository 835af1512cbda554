package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
)

// Func is the work run on every tick.
type Func func(ctx context.Context) error

// Job is one scheduled task.
type Job struct {
	ID        string
	Name      string
	Schedule  string // normalized 6-field expression or descriptor
	CreatedAt time.Time
	LastRun   *time.Time
	LastError string
	Runs      int

	fn      Func
	entryID cron.EntryID
}

// Clone returns a copy without the runtime fields.
func (j *Job) Clone() *Job {
	c := &Job{
		ID:        j.ID,
		Name:      j.Name,
		Schedule:  j.Schedule,
		CreatedAt: j.CreatedAt,
		LastError: j.LastError,
		Runs:      j.Runs,
	}
	if j.LastRun != nil {
		t := *j.LastRun
		c.LastRun = &t
	}
	return c
}
