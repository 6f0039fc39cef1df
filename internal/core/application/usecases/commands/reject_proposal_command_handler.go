package commands

import (
	"context"
	"log/slog"
	"time"

	"agromarket/internal/core/application/events"
	"agromarket/internal/core/domain/model/proposal"
	"agromarket/internal/core/ports"
)

// RejectProposalCommandHandler moves a pending proposal to Rejected on
// behalf of the owning seller.
type RejectProposalCommandHandler struct {
	uowFactory ProposalUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewRejectProposalCommandHandler creates a handler for proposal rejection.
func NewRejectProposalCommandHandler(
	uowFactory ProposalUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) RejectProposalCommandHandler {
	return RejectProposalCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the proposal rejection command.
func (h *RejectProposalCommandHandler) Handle(ctx context.Context, cmd RejectProposalCommand) error {
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
	if err = aggregate.Reject(cmd.Actor()); err != nil {
		return err
	}

	if err = proposalRepo.TransitionStatus(ctx, aggregate.ID(), proposal.Pending, proposal.Rejected); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvent(ctx, h.publisher, h.logger, events.ProposalDecided{
		ProposalID: aggregate.ID().String(),
		ListingID:  aggregate.ListingID().String(),
		SellerID:   aggregate.SellerID().String(),
		BuyerID:    aggregate.BuyerID().String(),
		Decision:   proposal.Rejected.String(),
		OccurredAt: time.Now().UTC(),
	})
	return nil
}
