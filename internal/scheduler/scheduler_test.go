package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestNormalizeCron(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"*/5 * * * *", "0 */5 * * * *"},
		{"30 */5 * * * *", "30 */5 * * * *"},
		{" @every 30s ", "@every 30s"},
		{"@hourly", "@hourly"},
	}
	for _, tc := range tests {
		if got := normalizeCron(tc.in); got != tc.want {
			t.Fatalf("normalizeCron(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAddRejectsInvalidSchedule(t *testing.T) {
	s := New()
	if _, err := s.Add("bad", "every minute", func(context.Context) error { return nil }); err == nil {
		t.Fatalf("expected invalid schedule error")
	}
	if err := Validate("61 * * * *"); err == nil {
		t.Fatalf("expected Validate to reject minute 61")
	}
	if err := Validate("@every 1m"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAddListRemove(t *testing.T) {
	s := New()
	noop := func(context.Context) error { return nil }

	a, err := s.Add("a", "*/5 * * * *", noop)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if a.ID == "" || a.Schedule != "0 */5 * * * *" {
		t.Fatalf("unexpected job: %+v", a)
	}
	time.Sleep(time.Millisecond)
	b, err := s.Add("b", "@every 1h", noop)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	jobs := s.Jobs()
	if len(jobs) != 2 || jobs[0].ID != a.ID || jobs[1].ID != b.ID {
		t.Fatalf("unexpected jobs: %+v", jobs)
	}

	if err := s.Remove(a.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := s.Remove(a.ID); err == nil {
		t.Fatalf("expected error removing twice")
	}
	if len(s.Jobs()) != 1 {
		t.Fatalf("expected 1 job after removal")
	}
}

func TestRunNowRecordsOutcome(t *testing.T) {
	s := New()
	fail := true
	job, err := s.Add("gen", "@every 1h", func(context.Context) error {
		if fail {
			return errors.New("boom")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := s.RunNow(job.ID); err == nil {
		t.Fatalf("expected job error")
	}
	if got := s.Jobs()[0]; got.LastError != "boom" || got.Runs != 1 || got.LastRun == nil {
		t.Fatalf("unexpected job state: %+v", got)
	}

	fail = false
	if err := s.RunNow(job.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Jobs()[0]; got.LastError != "" || got.Runs != 2 {
		t.Fatalf("unexpected job state: %+v", got)
	}
}

func TestScheduledJobFires(t *testing.T) {
	s := New()
	var runs atomic.Int32
	done := make(chan struct{}, 1)
	if _, err := s.Add("tick", "@every 1s", func(context.Context) error {
		if runs.Add(1) == 1 {
			done <- struct{}{}
		}
		return nil
	}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	s.Start()
	defer s.Stop()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("job did not fire")
	}
}

func TestStopCancelsRunningJobs(t *testing.T) {
	s := New()
	started := make(chan struct{}, 1)
	var cancelled atomic.Bool
	if _, err := s.Add("slow", "@every 1s", func(ctx context.Context) error {
		select {
		case started <- struct{}{}:
		default:
		}
		<-ctx.Done()
		cancelled.Store(true)
		return ctx.Err()
	}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	s.Start()
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatalf("job did not start")
	}
	s.Stop()
	if !cancelled.Load() {
		t.Fatalf("Stop must cancel the running job")
	}
}
