// Package jobs provides scheduled background tasks for the storefront.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the service.
//
// # Available Jobs
//
// 1. NotificationDispatchJob - Drains the notification outbox every few
// seconds and hands the batch to the delivery channel
// 2. SessionCleanupJob - Sweeps checkout sessions idle past their TTL once
// a minute
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(outbox, sessionStore, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Both jobs log failures and keep running; a failed sweep or dispatch batch
// is retried on the next tick.
package jobs
