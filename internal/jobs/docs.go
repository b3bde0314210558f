// Package jobs provides scheduled background tasks for the ordering system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the order service.
//
// # Available Jobs
//
// 1. StaleOrderJob - Runs every minute to cancel orders abandoned in Pending status
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(cancelStaleOrdersHandler, staleOrderTTL, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The stale order job uses the cron expression "* * * * *", running once a
// minute. Sweeps are idempotent: an order cancelled by one sweep is no
// longer Pending and never reappears in the next one.
//
// # Error Handling
//
// - Sweep failures are logged and retried on the next tick
// - Failed job starts will stop any already running jobs
package jobs
