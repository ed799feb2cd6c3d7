package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

const reconcileJobName = "reconcile-campaign-totals"

// Recalculator refreshes every campaign's donation total
type Recalculator interface {
	RecalculateAll(ctx context.Context) (int, error)
}

// ReconcileJob periodically recomputes campaign totals from their donations
type ReconcileJob struct {
	scheduler gocron.Scheduler
	recalc    Recalculator
	interval  time.Duration
	log       *zap.Logger
}

// NewReconcileJob creates the job. A non-positive interval disables it.
func NewReconcileJob(recalc Recalculator, interval time.Duration, log *zap.Logger) (*ReconcileJob, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return &ReconcileJob{
		scheduler: s,
		recalc:    recalc,
		interval:  interval,
		log:       log,
	}, nil
}

// Start registers the job and starts the scheduler
func (j *ReconcileJob) Start() error {
	if j.interval <= 0 {
		j.log.Info("Reconcile job disabled")
		return nil
	}

	_, err := j.scheduler.NewJob(
		gocron.DurationJob(j.interval),
		gocron.NewTask(j.Run),
		gocron.WithName(reconcileJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to register job %s: %w", reconcileJobName, err)
	}

	j.scheduler.Start()
	j.log.Info("Reconcile job started", zap.Duration("interval", j.interval))
	return nil
}

// Run performs one reconciliation pass
func (j *ReconcileJob) Run() {
	timeout := j.interval
	if timeout <= 0 {
		timeout = time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	refreshed, err := j.recalc.RecalculateAll(ctx)
	if err != nil {
		j.log.Error("Reconcile pass failed", zap.Int("refreshed", refreshed), zap.Error(err))
		return
	}
	j.log.Debug("Reconcile pass finished",
		zap.Int("refreshed", refreshed),
		zap.Duration("took", time.Since(start)),
	)
}

// Stop shuts the scheduler down, waiting for a running pass
func (j *ReconcileJob) Stop() error {
	if err := j.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("failed to shutdown scheduler: %w", err)
	}
	j.log.Info("Reconcile job stopped")
	return nil
}
