package jobs

import (
	"context"
	"log/slog"
	"time"

	"laundry/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// DefaultCompletionSchedule runs the sweep every minute, on the minute.
const DefaultCompletionSchedule = "0 * * * * *"

// Sweeper completes delivered orders that stayed idle past the confirmation window.
type Sweeper interface {
	SweepOverdueOrders(ctx context.Context, now time.Time) ([]kernel.UUID, error)
}

// OrderCompletionJob closes delivered orders the customer never confirmed.
type OrderCompletionJob struct {
	sweeper  Sweeper
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
	now      func() time.Time
}

// NewOrderCompletionJob takes a six-field cron expression (seconds first). An
// empty schedule falls back to DefaultCompletionSchedule.
func NewOrderCompletionJob(sweeper Sweeper, schedule string, logger *slog.Logger) *OrderCompletionJob {
	if schedule == "" {
		schedule = DefaultCompletionSchedule
	}
	return &OrderCompletionJob{
		sweeper:  sweeper,
		schedule: schedule,
		timeout:  30 * time.Second,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "order_completion_job"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (j *OrderCompletionJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.RunOnce); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order completion job started", "schedule", j.schedule)
	return nil
}

// RunOnce performs a single sweep.
func (j *OrderCompletionJob) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	completed, err := j.sweeper.SweepOverdueOrders(ctx, j.now())
	if err != nil {
		j.logger.ErrorContext(ctx, "Order completion job failed", "error", err)
		return
	}
	if len(completed) > 0 {
		j.logger.InfoContext(ctx, "Auto-completed delivered orders", "count", len(completed))
	}
}

// Stop waits for a running sweep to finish.
func (j *OrderCompletionJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order completion job stopped")
}
