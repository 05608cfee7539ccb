// Package jobs provides scheduled background tasks of the terminal.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds field enabled).
//
// # Available Jobs
//
// OrderBoardRefreshJob re-fetches the order list so kitchen and cashier screens see orders
// placed at other terminals. It runs every 10 seconds by default.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(logger, jobs.NewOrderBoardRefreshJob(refreshHandler, schedule, logger))
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed refresh is logged and the board keeps its previous contents. A run that is still in
// progress when the next tick fires causes that tick to be skipped.
package jobs
