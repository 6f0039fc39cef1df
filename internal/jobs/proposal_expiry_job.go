package jobs

import (
	"context"
	"log/slog"
	"time"

	"agromarket/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ProposalExpiryJob sweeps pending proposals whose validity deadline has
// passed and expires them. Runs every minute; a proposal decided between the
// sweep's read and its write is simply skipped by the handler, so the job
// never races a buyer or seller decision.
type ProposalExpiryJob struct {
	handler commands.ExpireProposalsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewProposalExpiryJob creates the expiry sweep job.
func NewProposalExpiryJob(handler commands.ExpireProposalsCommandHandler, logger *slog.Logger) *ProposalExpiryJob {
	return &ProposalExpiryJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "proposal_expiry_job"),
	}
}

// Start begins the expiry sweep, running once a minute.
func (j *ProposalExpiryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewExpireProposalsCommand(time.Now().UTC())
		if err != nil {
			j.logger.ErrorContext(ctx, "failed to build expiry command", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "proposal expiry sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "proposal expiry job started (running every minute)")
	return nil
}

// Stop stops the expiry sweep.
func (j *ProposalExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "proposal expiry job stopped")
}
