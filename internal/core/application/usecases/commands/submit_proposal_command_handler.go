package commands

import (
	"context"
	"time"

	"agromarket/internal/core/domain/model/proposal"
)

// SubmitProposalCommandHandler records a buyer's proposal against a listing
// that still takes reservations. Fees are derived once here, inside the
// aggregate constructor, and stored with the proposal.
type SubmitProposalCommandHandler struct {
	uowFactory NegotiationUoWFactory
}

// NewSubmitProposalCommandHandler creates a handler for proposal submission.
func NewSubmitProposalCommandHandler(uowFactory NegotiationUoWFactory) SubmitProposalCommandHandler {
	return SubmitProposalCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the proposal submission command.
func (h *SubmitProposalCommandHandler) Handle(ctx context.Context, cmd SubmitProposalCommand) error {
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

	lst, err := uow.ListingRepository().Get(ctx, cmd.ListingID())
	if err != nil {
		return err
	}
	if err = lst.Status().ValidateReservable(); err != nil {
		return err
	}

	aggregate, err := proposal.NewProposal(
		cmd.ProposalID(), lst.ID(), lst.SellerID(), cmd.Actor().ID(),
		cmd.Quantity(), cmd.PricePerKg(), cmd.Message(),
		cmd.ValidUntil(), time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = uow.ProposalRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
