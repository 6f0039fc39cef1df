package commands

import (
	"context"
	"errors"

	"agromarket/internal/core/domain/model/proposal"
	"agromarket/internal/pkg/errs"
)

// ExpireProposalsCommandHandler sweeps pending proposals whose validity
// deadline has passed and marks them Expired. Proposals raced to a decision
// between the read and the sweep are skipped.
type ExpireProposalsCommandHandler struct {
	uowFactory ProposalUoWFactory
}

// NewExpireProposalsCommandHandler creates a handler for the expiry sweep.
func NewExpireProposalsCommandHandler(uowFactory ProposalUoWFactory) ExpireProposalsCommandHandler {
	return ExpireProposalsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the sweep command.
func (h *ExpireProposalsCommandHandler) Handle(ctx context.Context, cmd ExpireProposalsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	proposalRepo := uow.ProposalRepository()
	expired, err := proposalRepo.GetExpiredPending(ctx, cmd.Now())
	if err != nil {
		return err
	}

	for _, prop := range expired {
		if err = prop.Expire(cmd.Now()); err != nil {
			continue
		}
		err = proposalRepo.TransitionStatus(ctx, prop.ID(), proposal.Pending, proposal.Expired)
		if errors.Is(err, errs.ErrConflict) {
			// Decided between the read and the sweep; leave it be.
			continue
		}
		if err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
