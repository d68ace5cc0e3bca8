// Package jobs provides scheduled background tasks for the dispatch service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. PresenceSweepJob - Evicts couriers whose last report is older than the
// presence TTL and refreshes the dashboards of the affected stores.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	sweep := jobs.NewPresenceSweepJob(sweepHandler, "@every 60s", 10*time.Minute, time.Now, logger)
//	jobManager := jobs.NewJobManager(sweep)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the standard cron parser, so both five-field expressions
// and descriptors such as "@every 30s" are accepted.
//
// # Error Handling
//
// A failed run is logged and the next run proceeds normally. An invalid
// schedule makes StartAll fail.
package jobs
