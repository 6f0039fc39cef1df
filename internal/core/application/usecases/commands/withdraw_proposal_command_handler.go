package commands

import (
	"context"

	"agromarket/internal/core/domain/model/proposal"
)

// WithdrawProposalCommandHandler moves a pending proposal to Withdrawn on
// behalf of the buyer who submitted it.
type WithdrawProposalCommandHandler struct {
	uowFactory ProposalUoWFactory
}

// NewWithdrawProposalCommandHandler creates a handler for proposal withdrawal.
func NewWithdrawProposalCommandHandler(uowFactory ProposalUoWFactory) WithdrawProposalCommandHandler {
	return WithdrawProposalCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the proposal withdrawal command.
func (h *WithdrawProposalCommandHandler) Handle(ctx context.Context, cmd WithdrawProposalCommand) error {
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
	aggregate, err := proposalRepo.Get(ctx, cmd.ProposalID())
	if err != nil {
		return err
	}
	if err = aggregate.Withdraw(cmd.Actor()); err != nil {
		return err
	}

	if err = proposalRepo.TransitionStatus(ctx, aggregate.ID(), proposal.Pending, proposal.Withdrawn); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
