// Package jobs provides scheduled background tasks for the dispatch engine.
//
// Two mechanisms live here:
//
//  1. DispatchRetryJob - a cron job (github.com/robfig/cron/v3) that
//     periodically re-runs automatic courier assignment over delivery orders
//     that are still unassigned. This is the retry path of the
//     no-courier-available outcome: a failed assignment parks the order, the
//     job picks it up on the next tick.
//  2. PickupCompletionScheduler - one-shot timers behind the clock port that
//     auto-complete pickup orders a grace interval after they reach picked_up.
//     The order is re-read at fire time and the completion is skipped when the
//     state moved on, so a stale timer can never corrupt an order.
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(assignCourierHandler, dispatchUoWFactory, cronSpec, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// Expected business outcomes (no courier free, order already terminal) are not
// logged as errors; everything else is.
package jobs
