package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"agromarket/internal/core/application/events"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/domain/model/proposal"
	"agromarket/internal/core/ports"
)

// AcceptProposalCommandHandler handles the seller's acceptance of a
// proposal. Acceptance re-validates against the listing's current
// availability: the quantity may have been taken by other orders or accepted
// proposals since submission, so the reservation here is the same
// conditional update direct orders use, and the first acceptance to win it
// takes the stock. The Pending -> Accepted move is itself conditional, so a
// second acceptance of the same proposal conflicts and its transaction rolls
// back the reservation and the materialized order. Sibling proposals against
// the same listing stay pending.
//
// A proposal past its validity deadline is moved to Expired instead; the
// expiry is persisted, a conflict is returned, and nothing is reserved.
type AcceptProposalCommandHandler struct {
	uowFactory NegotiationUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewAcceptProposalCommandHandler creates a handler for proposal acceptance.
func NewAcceptProposalCommandHandler(
	uowFactory NegotiationUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AcceptProposalCommandHandler {
	return AcceptProposalCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the proposal acceptance command.
func (h *AcceptProposalCommandHandler) Handle(ctx context.Context, cmd AcceptProposalCommand) error {
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
	prop, err := proposalRepo.Get(ctx, cmd.ProposalID())
	if err != nil {
		return err
	}

	if err = prop.Accept(cmd.Actor(), time.Now().UTC()); err != nil {
		if errors.Is(err, proposal.ErrProposalExpired) {
			return h.persistExpiry(ctx, uow, prop, err)
		}
		return err
	}

	if err = uow.ListingRepository().Reserve(ctx, prop.ListingID(), prop.Quantity()); err != nil {
		return err
	}

	aggregate, err := order.NewAcceptedOrder(
		cmd.OrderID(), prop.ListingID(), prop.SellerID(), prop.BuyerID(),
		prop.Quantity(), prop.PricePerKg(),
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}
	if err = proposalRepo.TransitionStatus(ctx, prop.ID(), proposal.Pending, proposal.Accepted); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvent(ctx, h.publisher, h.logger, events.ProposalDecided{
		ProposalID: prop.ID().String(),
		ListingID:  prop.ListingID().String(),
		SellerID:   prop.SellerID().String(),
		BuyerID:    prop.BuyerID().String(),
		Decision:   proposal.Accepted.String(),
		OrderID:    aggregate.ID().String(),
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// persistExpiry commits the Pending -> Expired transition discovered during
// acceptance and surfaces the original conflict to the caller.
func (h *AcceptProposalCommandHandler) persistExpiry(
	ctx context.Context,
	uow NegotiationUoW,
	prop *proposal.Proposal,
	expiryErr error,
) error {
	if err := uow.ProposalRepository().TransitionStatus(ctx, prop.ID(), proposal.Pending, proposal.Expired); err != nil {
		return err
	}
	if err := uow.Commit(ctx); err != nil {
		return err
	}

	publishEvent(ctx, h.publisher, h.logger, events.ProposalDecided{
		ProposalID: prop.ID().String(),
		ListingID:  prop.ListingID().String(),
		SellerID:   prop.SellerID().String(),
		BuyerID:    prop.BuyerID().String(),
		Decision:   proposal.Expired.String(),
		OccurredAt: time.Now().UTC(),
	})
	return expiryErr
}
