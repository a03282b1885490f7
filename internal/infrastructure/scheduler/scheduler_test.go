package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	appbilling "github.com/plazafl/backend/internal/application/billing"
	"github.com/plazafl/backend/internal/domain/shared"
	"github.com/plazafl/backend/internal/domain/tenancy"
	"github.com/plazafl/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubPlazaProvider struct {
	plazas []tenancy.Plaza
	err    error
}

func (s *stubPlazaProvider) FindActive(ctx context.Context) ([]tenancy.Plaza, error) {
	return s.plazas, s.err
}

type recordingBillRunner struct {
	mu     sync.Mutex
	calls  []uuid.UUID
	failOn map[uuid.UUID]error
}

func (r *recordingBillRunner) GenerateRentBills(ctx context.Context, plazaID uuid.UUID, now time.Time) (*appbilling.GenerationResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, plazaID)
	if err, ok := r.failOn[plazaID]; ok {
		return nil, err
	}
	return &appbilling.GenerationResult{Success: true}, nil
}

func (r *recordingBillRunner) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

type recordingSweeper struct {
	mu    sync.Mutex
	calls []uuid.UUID
}

func (r *recordingSweeper) SweepOverdue(ctx context.Context, plazaID uuid.UUID) (*appbilling.OverdueSweepResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, plazaID)
	return &appbilling.OverdueSweepResult{}, nil
}

func (r *recordingSweeper) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func testPlaza(id uuid.UUID) tenancy.Plaza {
	p := tenancy.Plaza{Status: tenancy.PlazaStatusActive}
	p.BaseAggregateRoot = shared.NewBaseAggregateRoot()
	p.ID = id
	return p
}

func newTestScheduler(t *testing.T, plazas PlazaProvider, runner RentBillRunner, sweeper OverdueSweeper) *BillingScheduler {
	t.Helper()
	s, err := NewBillingScheduler(config.SchedulerConfig{
		Enabled:           true,
		BillingCron:       "0 5 * * *",
		OverdueSweepCron:  "30 5 * * *",
		MaxConcurrentJobs: 2,
		JobTimeout:        time.Minute,
	}, plazas, runner, sweeper, zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestParseDailySpec(t *testing.T) {
	t.Run("parses daily schedule", func(t *testing.T) {
		spec, err := parseDailySpec("30 5 * * *")
		require.NoError(t, err)
		assert.Equal(t, 5, spec.hour)
		assert.Equal(t, 30, spec.minute)
	})

	t.Run("rejects wrong field count", func(t *testing.T) {
		_, err := parseDailySpec("30 5 * *")
		assert.Error(t, err)
	})

	t.Run("rejects non-daily schedules", func(t *testing.T) {
		_, err := parseDailySpec("0 5 1 * *")
		assert.Error(t, err)
	})

	t.Run("rejects out-of-range fields", func(t *testing.T) {
		_, err := parseDailySpec("60 5 * * *")
		assert.Error(t, err)

		_, err = parseDailySpec("0 24 * * *")
		assert.Error(t, err)
	})
}

func TestDailySpec_Reached(t *testing.T) {
	spec := dailySpec{hour: 5, minute: 30}

	assert.False(t, spec.reached(time.Date(2026, 3, 1, 5, 29, 0, 0, time.UTC)))
	assert.True(t, spec.reached(time.Date(2026, 3, 1, 5, 30, 0, 0, time.UTC)))
	assert.True(t, spec.reached(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)))
}

func TestBillingScheduler_Tick(t *testing.T) {
	plazaA := uuid.New()
	plazaB := uuid.New()

	t.Run("fires both jobs after their times and only once per day", func(t *testing.T) {
		provider := &stubPlazaProvider{plazas: []tenancy.Plaza{testPlaza(plazaA), testPlaza(plazaB)}}
		runner := &recordingBillRunner{}
		sweeper := &recordingSweeper{}
		s := newTestScheduler(t, provider, runner, sweeper)

		now := time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)
		s.clock = func() time.Time { return now }

		s.tick(context.Background())
		assert.Equal(t, 2, runner.callCount(), "one rent run per plaza")
		assert.Equal(t, 2, sweeper.callCount(), "one sweep per plaza")

		// Same day, later tick: nothing fires again
		now = now.Add(time.Hour)
		s.tick(context.Background())
		assert.Equal(t, 2, runner.callCount())
		assert.Equal(t, 2, sweeper.callCount())

		// Next day fires again
		now = now.Add(24 * time.Hour)
		s.tick(context.Background())
		assert.Equal(t, 4, runner.callCount())
		assert.Equal(t, 4, sweeper.callCount())
	})

	t.Run("does not fire before the scheduled time", func(t *testing.T) {
		provider := &stubPlazaProvider{plazas: []tenancy.Plaza{testPlaza(plazaA)}}
		runner := &recordingBillRunner{}
		sweeper := &recordingSweeper{}
		s := newTestScheduler(t, provider, runner, sweeper)

		s.clock = func() time.Time { return time.Date(2026, 3, 1, 4, 59, 0, 0, time.UTC) }

		s.tick(context.Background())
		assert.Zero(t, runner.callCount())
		assert.Zero(t, sweeper.callCount())
	})

	t.Run("fires the bill run but not the sweep between the two times", func(t *testing.T) {
		provider := &stubPlazaProvider{plazas: []tenancy.Plaza{testPlaza(plazaA)}}
		runner := &recordingBillRunner{}
		sweeper := &recordingSweeper{}
		s := newTestScheduler(t, provider, runner, sweeper)

		s.clock = func() time.Time { return time.Date(2026, 3, 1, 5, 10, 0, 0, time.UTC) }

		s.tick(context.Background())
		assert.Equal(t, 1, runner.callCount())
		assert.Zero(t, sweeper.callCount())
	})

	t.Run("one plaza failing does not stop the others", func(t *testing.T) {
		provider := &stubPlazaProvider{plazas: []tenancy.Plaza{testPlaza(plazaA), testPlaza(plazaB)}}
		runner := &recordingBillRunner{failOn: map[uuid.UUID]error{plazaA: errors.New("db down")}}
		sweeper := &recordingSweeper{}
		s := newTestScheduler(t, provider, runner, sweeper)

		s.clock = func() time.Time { return time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC) }

		s.tick(context.Background())
		assert.Equal(t, 2, runner.callCount(), "both plazas attempted")
	})
}

func TestBillingScheduler_StartStop(t *testing.T) {
	provider := &stubPlazaProvider{}
	runner := &recordingBillRunner{}
	sweeper := &recordingSweeper{}
	s := newTestScheduler(t, provider, runner, sweeper)

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()), "second start is a no-op")

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(stopCtx))
	require.NoError(t, s.Stop(stopCtx), "second stop is a no-op")
}

func TestNewBillingScheduler_InvalidSchedule(t *testing.T) {
	_, err := NewBillingScheduler(config.SchedulerConfig{
		BillingCron:      "bad",
		OverdueSweepCron: "30 5 * * *",
	}, &stubPlazaProvider{}, &recordingBillRunner{}, &recordingSweeper{}, zap.NewNop())
	assert.Error(t, err)
}
