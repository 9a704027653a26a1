// Package scheduler refreshes cached upstream data on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

// Job is a named refresh function
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// Scheduler runs all jobs on start and then on every tick of the cron schedule
type Scheduler struct {
	spec     string
	schedule cron.Schedule
	jobs     []Job
	timeout  time.Duration
	cron     *cron.Cron
	wg       sync.WaitGroup
	cancel   context.CancelFunc
	mu       sync.Mutex // prevents overlapping runs
}

// New makes scheduler for standard cron spec, e.g. "*/5 * * * *", timeout limits a single run
func New(spec string, timeout time.Duration, jobs ...Job) (*Scheduler, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", spec, err)
	}
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &Scheduler{spec: spec, schedule: schedule, jobs: jobs, timeout: timeout}, nil
}

// Start runs jobs immediately in background and schedules the following runs
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.cron = cron.New()
	s.cron.Schedule(s.schedule, cron.FuncJob(func() { s.RunOnce(ctx) }))
	s.cron.Start()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.RunOnce(ctx)
	}()

	lgr.Printf("[INFO] scheduler started, %d jobs on %q", len(s.jobs), s.spec)
}

// Stop cancels running jobs and waits for them to finish
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// RunOnce runs all jobs concurrently, failures are logged and don't affect other jobs.
// A run started while the previous one is still active is skipped.
func (s *Scheduler) RunOnce(ctx context.Context) {
	if !s.mu.TryLock() {
		lgr.Printf("[DEBUG] previous refresh still running, skip")
		return
	}
	defer s.mu.Unlock()

	if ctx.Err() != nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	st := time.Now()
	var g errgroup.Group
	for _, job := range s.jobs {
		g.Go(func() error {
			if err := job.Run(ctx); err != nil {
				lgr.Printf("[WARN] refresh %s failed: %v", job.Name, err)
				return nil
			}
			lgr.Printf("[DEBUG] refreshed %s", job.Name)
			return nil
		})
	}
	_ = g.Wait()
	lgr.Printf("[DEBUG] refresh of %d jobs completed in %v", len(s.jobs), time.Since(st))
}
