// Package jobs provides scheduled background tasks for the marketplace.
//
// Jobs are cron-based (github.com/robfig/cron/v3) and managed through
// JobManager, which offers a unified start/stop interface:
//
//	jobManager := jobs.NewJobManager(expireProposalsHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// The only job today is ProposalExpiryJob, which runs once a minute and
// expires pending proposals whose validity deadline has passed. The sweep
// is safe to race against buyer and seller decisions: the expiry command
// skips any proposal that was decided after the sweep read it.
package jobs
