package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager starts and stops the background jobs together.
type JobManager struct {
	orderCompletionJob *OrderCompletionJob
}

func NewJobManager(sweeper Sweeper, completionSchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		orderCompletionJob: NewOrderCompletionJob(sweeper, completionSchedule, logger),
	}
}

func (jm *JobManager) StartAll() error {
	if err := jm.orderCompletionJob.Start(); err != nil {
		return fmt.Errorf("failed to start order completion job: %w", err)
	}
	return nil
}

func (jm *JobManager) StopAll() {
	jm.orderCompletionJob.Stop()
}
