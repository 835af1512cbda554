// Package scheduler runs named jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/kayz/questgen/internal/logger"
)

// DefaultTimeout bounds a single job execution.
const DefaultTimeout = 5 * time.Minute

var parser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Scheduler manages scheduled jobs.
type Scheduler struct {
	cron    *cron.Cron
	jobs    map[string]*Job
	mu      sync.RWMutex
	timeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a scheduler with second-level precision. A job that is still
// running when its next tick arrives skips that tick.
func New() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		jobs:    make(map[string]*Job),
		timeout: DefaultTimeout,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// SetTimeout changes the per-run timeout. d <= 0 restores the default.
func (s *Scheduler) SetTimeout(d time.Duration) {
	if d <= 0 {
		d = DefaultTimeout
	}
	s.mu.Lock()
	s.timeout = d
	s.mu.Unlock()
}

// normalizeCron prepends "0 " to standard 5-field cron expressions
// so they work with the 6-field (with seconds) parser.
func normalizeCron(schedule string) string {
	schedule = strings.TrimSpace(schedule)
	if len(strings.Fields(schedule)) == 5 {
		return "0 " + schedule
	}
	return schedule
}

// Validate reports whether schedule is accepted by Add.
func Validate(schedule string) error {
	if _, err := parser.Parse(normalizeCron(schedule)); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", schedule, err)
	}
	return nil
}

// Add schedules fn under name and returns a copy of the job.
func (s *Scheduler) Add(name, schedule string, fn Func) (*Job, error) {
	if fn == nil {
		return nil, fmt.Errorf("job %s: nil func", name)
	}
	normalized := normalizeCron(schedule)
	sched, err := parser.Parse(normalized)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", schedule, err)
	}

	job := &Job{
		ID:        uuid.New().String(),
		Name:      name,
		Schedule:  normalized,
		CreatedAt: time.Now(),
		fn:        fn,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	job.entryID = s.cron.Schedule(sched, cron.FuncJob(func() { s.execute(job) }))
	s.jobs[job.ID] = job

	logger.Info("[CRON] Job created: %s (%s) - schedule: %s", job.ID, job.Name, job.Schedule)
	return job.Clone(), nil
}

// Remove unschedules a job.
func (s *Scheduler) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return fmt.Errorf("job not found: %s", id)
	}
	s.cron.Remove(job.entryID)
	delete(s.jobs, id)

	logger.Info("[CRON] Job removed: %s (%s)", job.ID, job.Name)
	return nil
}

// Jobs returns copies of all jobs ordered by creation time.
func (s *Scheduler) Jobs() []*Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, j.Clone())
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].CreatedAt.Before(out[b].CreatedAt) })
	return out
}

// RunNow executes a job synchronously outside its schedule.
func (s *Scheduler) RunNow(id string) error {
	s.mu.RLock()
	job, ok := s.jobs[id]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("job not found: %s", id)
	}
	return s.execute(job)
}

// Start begins firing scheduled jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.mu.RLock()
	n := len(s.jobs)
	s.mu.RUnlock()
	logger.Info("[CRON] Scheduler started with %d jobs", n)
}

// Stop cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() {
	s.cancel()
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("[CRON] Scheduler stopped")
}

func (s *Scheduler) execute(job *Job) error {
	s.mu.RLock()
	timeout := s.timeout
	s.mu.RUnlock()

	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()

	now := time.Now()
	logger.Debug("[CRON] Running job: %s (%s)", job.ID, job.Name)
	err := job.fn(ctx)

	s.mu.Lock()
	job.LastRun = &now
	job.Runs++
	if err != nil {
		job.LastError = err.Error()
	} else {
		job.LastError = ""
	}
	s.mu.Unlock()

	if err != nil {
		logger.Error("[CRON] Job failed: %s (%s) - error: %v", job.ID, job.Name, err)
		return err
	}
	logger.Debug("[CRON] Job completed: %s (%s)", job.ID, job.Name)
	return nil
}
