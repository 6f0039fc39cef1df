package jobs

import (
	"fmt"
	"log/slog"

	"agromarket/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	proposalExpiryJob *ProposalExpiryJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	expireProposalsHandler commands.ExpireProposalsCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		proposalExpiryJob: NewProposalExpiryJob(expireProposalsHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.proposalExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start proposal expiry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.proposalExpiryJob.Stop()
}
