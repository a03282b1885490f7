// Package scheduler runs the daily billing jobs: the rent bill run and the
// overdue sweep. Each job fires once per day at its configured time and
// iterates every active plaza.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	appbilling "github.com/plazafl/backend/internal/application/billing"
	"github.com/plazafl/backend/internal/domain/tenancy"
	"github.com/plazafl/backend/internal/infrastructure/config"
	"github.com/plazafl/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// PlazaProvider lists the plazas the scheduled jobs iterate
type PlazaProvider interface {
	FindActive(ctx context.Context) ([]tenancy.Plaza, error)
}

// RentBillRunner runs the monthly rent batch for one plaza
type RentBillRunner interface {
	GenerateRentBills(ctx context.Context, plazaID uuid.UUID, now time.Time) (*appbilling.GenerationResult, error)
}

// OverdueSweeper marks past-due bills as overdue for one plaza
type OverdueSweeper interface {
	SweepOverdue(ctx context.Context, plazaID uuid.UUID) (*appbilling.OverdueSweepResult, error)
}

// BillingScheduler drives the daily billing jobs. It checks once a minute
// whether a job's daily time has arrived and tracks the last date each job
// ran so a restart inside the window does not double-fire.
type BillingScheduler struct {
	cfg       config.SchedulerConfig
	plazas    PlazaProvider
	billRun   RentBillRunner
	sweeper   OverdueSweeper
	logger    *zap.Logger
	clock     func() time.Time
	interval  time.Duration
	billSpec  dailySpec
	sweepSpec dailySpec

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool

	lastBillRunDate string
	lastSweepDate   string
}

// NewBillingScheduler creates a new BillingScheduler. It returns an error
// when a configured schedule cannot be parsed.
func NewBillingScheduler(
	cfg config.SchedulerConfig,
	plazas PlazaProvider,
	billRun RentBillRunner,
	sweeper OverdueSweeper,
	log *zap.Logger,
) (*BillingScheduler, error) {
	billSpec, err := parseDailySpec(cfg.BillingCron)
	if err != nil {
		return nil, err
	}
	sweepSpec, err := parseDailySpec(cfg.OverdueSweepCron)
	if err != nil {
		return nil, err
	}

	return &BillingScheduler{
		cfg:       cfg,
		plazas:    plazas,
		billRun:   billRun,
		sweeper:   sweeper,
		logger:    log,
		clock:     time.Now,
		interval:  time.Minute,
		billSpec:  billSpec,
		sweepSpec: sweepSpec,
	}, nil
}

// Start starts the scheduler loop
func (s *BillingScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("Billing scheduler started",
		zap.String("billing_schedule", s.cfg.BillingCron),
		zap.String("overdue_sweep_schedule", s.cfg.OverdueSweepCron),
	)

	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *BillingScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Billing scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *BillingScheduler) runLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick fires any job whose daily time has been reached and which has not
// run yet today
func (s *BillingScheduler) tick(ctx context.Context) {
	now := s.clock()
	today := now.Format("2006-01-02")

	s.mu.Lock()
	runBills := s.lastBillRunDate != today && s.billSpec.reached(now)
	if runBills {
		s.lastBillRunDate = today
	}
	runSweep := s.lastSweepDate != today && s.sweepSpec.reached(now)
	if runSweep {
		s.lastSweepDate = today
	}
	s.mu.Unlock()

	if runBills {
		s.runForEachPlaza(ctx, "rent_bill_run", func(jobCtx context.Context, plazaID uuid.UUID) error {
			result, err := s.billRun.GenerateRentBills(jobCtx, plazaID, now)
			if err != nil {
				return err
			}
			s.logger.Info("Rent bill run completed",
				zap.String("plaza_id", plazaID.String()),
				zap.Int("generated", result.Statistics.Generated),
				zap.Int("skipped", result.Statistics.Skipped),
				zap.Int("failed", result.Statistics.Failed))
			return nil
		})
	}
	if runSweep {
		s.runForEachPlaza(ctx, "overdue_sweep", func(jobCtx context.Context, plazaID uuid.UUID) error {
			result, err := s.sweeper.SweepOverdue(jobCtx, plazaID)
			if err != nil {
				return err
			}
			s.logger.Info("Overdue sweep completed",
				zap.String("plaza_id", plazaID.String()),
				zap.Int("checked", result.Checked),
				zap.Int("marked", result.Marked))
			return nil
		})
	}
}

// runForEachPlaza runs a job for every active plaza with bounded
// concurrency. A failure for one plaza never stops the others.
func (s *BillingScheduler) runForEachPlaza(ctx context.Context, jobName string, job func(ctx context.Context, plazaID uuid.UUID) error) {
	plazas, err := s.plazas.FindActive(ctx)
	if err != nil {
		s.logger.Error("Failed to list active plazas for scheduled job",
			zap.String("job", jobName),
			zap.Error(err))
		return
	}

	maxConcurrent := s.cfg.MaxConcurrentJobs
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	sem := make(chan struct{}, maxConcurrent)

	var wg sync.WaitGroup
	for _, plaza := range plazas {
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(plazaID uuid.UUID) {
			defer wg.Done()
			defer func() { <-sem }()

			jobCtx := ctx
			var cancel context.CancelFunc
			if s.cfg.JobTimeout > 0 {
				jobCtx, cancel = context.WithTimeout(ctx, s.cfg.JobTimeout)
				defer cancel()
			}

			log := s.logger.With(
				zap.String("job", jobName),
				zap.String("plaza_id", plazaID.String()),
			)
			jobCtx, _ = logger.WithPlazaID(jobCtx, log, plazaID.String())

			start := s.clock()
			if err := job(jobCtx, plazaID); err != nil {
				log.Error("Scheduled job failed",
					zap.Duration("elapsed", s.clock().Sub(start)),
					zap.Error(err))
				return
			}
			log.Info("Scheduled job finished",
				zap.Duration("elapsed", s.clock().Sub(start)))
		}(plaza.ID)
	}

	wg.Wait()
}
