package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type reported struct {
	mu     sync.Mutex
	jobs   []string
	runIDs []string
	errs   []error
}

func (r *reported) reporter(job, runID string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = append(r.jobs, job)
	r.runIDs = append(r.runIDs, runID)
	r.errs = append(r.errs, err)
}

func TestScheduler_RunReportsAndSwallowsErrors(t *testing.T) {
	rep := &reported{}
	s := NewScheduler(discard, time.Minute, WithErrorReporter(rep.reporter))
	boom := errors.New("provider down")

	var deadlineSet bool
	job := Job{Name: "failing", Schedule: "@hourly", Run: func(ctx context.Context) error {
		_, deadlineSet = ctx.Deadline()
		return boom
	}}
	s.run(job)
	s.run(job)

	assert.True(t, deadlineSet)
	require.Len(t, rep.errs, 2)
	assert.ErrorIs(t, rep.errs[0], boom)
	assert.Equal(t, []string{"failing", "failing"}, rep.jobs)
	assert.NotEqual(t, rep.runIDs[0], rep.runIDs[1])
}

func TestScheduler_RunAppliesTimeout(t *testing.T) {
	rep := &reported{}
	s := NewScheduler(discard, 20*time.Millisecond, WithErrorReporter(rep.reporter))

	s.run(Job{Name: "slow", Run: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}})

	require.Len(t, rep.errs, 1)
	assert.ErrorIs(t, rep.errs[0], context.DeadlineExceeded)
}

func TestScheduler_JobTimeoutOverridesDefault(t *testing.T) {
	s := NewScheduler(discard, time.Hour, WithErrorReporter((&reported{}).reporter))

	var remaining time.Duration
	s.run(Job{Name: "maintenance", Timeout: 50 * time.Millisecond, Run: func(ctx context.Context) error {
		deadline, _ := ctx.Deadline()
		remaining = time.Until(deadline)
		return nil
	}})

	assert.LessOrEqual(t, remaining, 50*time.Millisecond)
}

func TestScheduler_Register(t *testing.T) {
	s := NewScheduler(discard, time.Minute)
	noop := func(context.Context) error { return nil }

	require.NoError(t, s.Register(Job{Name: "rates", Schedule: "0 */6 * * *", Run: noop}))
	assert.Error(t, s.Register(Job{Name: "rates", Schedule: "@hourly", Run: noop}))
	assert.Error(t, s.Register(Job{Name: "broken", Schedule: "every tuesday", Run: noop}))
}

func TestScheduler_SkipsOverlappingRuns(t *testing.T) {
	s := NewScheduler(discard, time.Minute)
	release := make(chan struct{})
	started := make(chan struct{}, 2)
	var mu sync.Mutex
	runs := 0

	require.NoError(t, s.Register(Job{Name: "long", Schedule: "@hourly", Run: func(ctx context.Context) error {
		mu.Lock()
		runs++
		mu.Unlock()
		started <- struct{}{}
		<-release
		return nil
	}}))
	wrapped := s.cron.Entry(s.entries["long"]).WrappedJob

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		wrapped.Run()
	}()
	<-started
	wrapped.Run() // returns immediately: the first run still holds the slot
	close(release)
	wg.Wait()

	assert.Equal(t, 1, runs)
}

func TestScheduler_StopWithNothingRunning(t *testing.T) {
	s := NewScheduler(discard, time.Minute)
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
}

type fakeRates struct{ base string }

func (f *fakeRates) UpdateCurrencyRates(_ context.Context, base string) error {
	f.base = base
	return nil
}

type fakeHoldings struct{ err error }

func (f fakeHoldings) RefreshHoldingPrices(context.Context) (*domain.PriceRefreshSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.PriceRefreshSummary{Updated: 3}, nil
}

func TestRefreshJobs(t *testing.T) {
	rates := &fakeRates{}
	job := RefreshCurrencyRatesJob(rates, "EUR", "0 */6 * * *")
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, "EUR", rates.base)

	assert.NoError(t, RefreshHoldingsJob(fakeHoldings{}, discard, "@hourly").Run(context.Background()))
	assert.Error(t, RefreshHoldingsJob(fakeHoldings{err: errors.New("db down")}, discard, "@hourly").Run(context.Background()))
}

type fakeMaintainer struct {
	calls int
	err   error
}

func (f *fakeMaintainer) PerformMaintenance(context.Context) (*domain.MaintenanceReport, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &domain.MaintenanceReport{SizeBefore: 2048, SizeAfter: 1024}, nil
}

func TestDatabaseMaintenanceJob(t *testing.T) {
	svc := &fakeMaintainer{}
	job := DatabaseMaintenanceJob(svc, discard, "CRON_TZ=UTC 0 2 1 * *", 2*time.Hour)

	assert.Equal(t, "database-maintenance", job.Name)
	assert.Equal(t, 2*time.Hour, job.Timeout)
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 1, svc.calls)

	s := NewScheduler(discard, time.Minute)
	require.NoError(t, s.Register(job))

	failing := DatabaseMaintenanceJob(&fakeMaintainer{err: errors.New("lock timeout")}, discard, "@monthly", time.Hour)
	assert.Error(t, failing.Run(context.Background()))
}
