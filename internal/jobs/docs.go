// Package jobs holds the cron-driven background work of the laundry service,
// scheduled with github.com/robfig/cron/v3.
//
// OrderCompletionJob sweeps delivered orders whose customer neither confirmed
// receipt nor opened a dispute within the idle window and completes them. The
// sweep itself is idempotent, so overlapping or repeated runs complete each
// order at most once; overlapping runs are skipped anyway.
//
// Usage:
//
//	jobManager := jobs.NewJobManager(orchestrator, "0 * * * * *", logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
package jobs
