// Package jobs runs the periodic refresh work on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// Job is one named unit of scheduled work.
type Job struct {
	Name     string
	Schedule string
	Run      func(ctx context.Context) error
	// Timeout overrides the scheduler deadline for this job when positive.
	Timeout time.Duration
}

// ErrorReporter receives the failure of a job run.
type ErrorReporter func(job, runID string, err error)

// Scheduler wraps a cron runner. Runs of the same job never overlap and panics are
// recovered.
type Scheduler struct {
	cron     *cron.Cron
	logger   *slog.Logger
	timeout  time.Duration
	report   ErrorReporter
	entries  map[string]cron.EntryID
	baseCtx  context.Context
	cancelFn context.CancelFunc
}

// Option customizes a Scheduler.
type Option func(*Scheduler)

// WithErrorReporter replaces the Sentry reporter.
func WithErrorReporter(r ErrorReporter) Option {
	return func(s *Scheduler) { s.report = r }
}

// NewScheduler creates a scheduler whose runs are bounded by timeout.
func NewScheduler(logger *slog.Logger, timeout time.Duration, opts ...Option) *Scheduler {
	cl := cronLogger{logger: logger}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cl),
			cron.SkipIfStillRunning(cl),
		)),
		logger:   logger,
		timeout:  timeout,
		report:   SentryReporter,
		entries:  make(map[string]cron.EntryID),
		baseCtx:  ctx,
		cancelFn: cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register schedules job. Names must be unique.
func (s *Scheduler) Register(job Job) error {
	if _, exists := s.entries[job.Name]; exists {
		return fmt.Errorf("job %q already registered", job.Name)
	}
	id, err := s.cron.AddFunc(job.Schedule, func() { s.run(job) })
	if err != nil {
		return fmt.Errorf("invalid schedule %q for job %q: %w", job.Schedule, job.Name, err)
	}
	s.entries[job.Name] = id
	s.logger.Info("Job registered", slog.String("job", job.Name), slog.String("schedule", job.Schedule))
	return nil
}

// Start begins running the registered jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling and waits for in-flight runs until ctx expires. In-flight runs
// see their context cancelled only when ctx expires first.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.cancelFn()
		return nil
	case <-ctx.Done():
		s.cancelFn()
		return ctx.Err()
	}
}

// run executes one run of job with its own run id and deadline. Errors are logged,
// reported and swallowed.
func (s *Scheduler) run(job Job) {
	runID := uuid.NewString()
	logger := s.logger.With(slog.String("job", job.Name), slog.String("run_id", runID))
	ctx, cancel := context.WithTimeout(s.baseCtx, s.deadline(job))
	defer cancel()

	start := time.Now()
	logger.Info("Job started")
	if err := job.Run(ctx); err != nil {
		logger.Error("Job failed", slog.String("error", err.Error()), slog.Duration("duration", time.Since(start)))
		s.report(job.Name, runID, err)
		return
	}
	logger.Info("Job finished", slog.Duration("duration", time.Since(start)))
}

func (s *Scheduler) deadline(job Job) time.Duration {
	if job.Timeout > 0 {
		return job.Timeout
	}
	return s.timeout
}

// SentryReporter captures the error tagged with the job and run id. It is a no-op
// when Sentry was not initialised.
func SentryReporter(job, runID string, err error) {
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("job", job)
		scope.SetTag("run_id", runID)
		sentry.CaptureException(err)
	})
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
