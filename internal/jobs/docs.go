// Package jobs provides scheduled background tasks for the logistics core.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic operations the simulation needs.
//
// # Available Jobs
//
// 1. OrderFulfillmentJob - Runs every second to plan deliveries for open market orders
// 2. OrderExpiryJob - Runs every second to delist orders past their deadline
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(fulfillmentJob, expiryJob, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Both jobs use the cron expression "* * * * * *" which means they run every
// second, matching the simulation's tick cadence.
//
// # Error Handling
//
//   - The fulfillment job ignores expected business outcomes (no suppliers,
//     no free stock, nothing reachable) since supply fluctuates tick to tick
//   - The expiry job logs all errors as they indicate system issues
//   - A failed job start stops any already running jobs
//
// # Concurrency
//
// The domain core is single threaded. Every job tick takes the world mutex
// owned by the composition root before touching any domain structure.
package jobs
