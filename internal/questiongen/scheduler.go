package questiongen

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

// Runner is what the scheduler triggers. *Pipeline satisfies it.
type Runner interface {
	Run(ctx context.Context) (*Result, error)
}

// Scheduler runs the pipeline on a cron expression. Runs never overlap.
type Scheduler struct {
	cron   *gocron.Scheduler
	job    *gocron.Job
	runner Runner
	logger *slog.Logger

	mu  sync.Mutex
	ctx context.Context
}

// NewScheduler parses spec and registers the pipeline job. The job does
// not run until Run is called.
func NewScheduler(spec string, runner Runner, loc *time.Location, logger *slog.Logger) (*Scheduler, error) {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Scheduler{
		cron:   gocron.NewScheduler(loc),
		runner: runner,
		logger: logger,
	}
	s.cron.SingletonModeAll()
	if err := s.register(spec); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) register(spec string) error {
	job, err := s.cron.Cron(spec).Do(s.runOnce)
	if err != nil {
		return fmt.Errorf("schedule %q: %w", spec, err)
	}
	s.job = job
	return nil
}

func (s *Scheduler) setContext(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx = ctx
}

// runContext returns the ctx passed to Run so a job in flight observes its
// cancellation.
func (s *Scheduler) runContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx == nil {
		return context.Background()
	}
	return s.ctx
}

func (s *Scheduler) runOnce() {
	ctx := s.runContext()
	start := time.Now()
	res, err := s.runner.Run(ctx)
	if err != nil {
		s.logger.Error("scheduled pipeline run failed", "error", err, "duration", time.Since(start))
		return
	}
	s.logger.Info("scheduled pipeline run finished",
		"saved", res.Saved, "passed", res.Passed, "rejected", res.Rejected, "duration", time.Since(start))
}

// Run starts the scheduler and blocks until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	s.setContext(ctx)
	s.cron.StartAsync()
	s.logger.Info("pipeline scheduler started", "next_run", s.NextRun())

	<-ctx.Done()
	s.cron.Stop()
	s.logger.Info("pipeline scheduler stopped")
	return nil
}

// NextRun is the time of the next scheduled run, zero before Run.
func (s *Scheduler) NextRun() time.Time {
	if s.job == nil {
		return time.Time{}
	}
	return s.job.NextRun()
}
