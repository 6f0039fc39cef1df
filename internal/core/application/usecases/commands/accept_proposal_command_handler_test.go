package commands_test

import (
	"testing"
	"time"

	"agromarket/internal/core/application/usecases/commands"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/proposal"
	"agromarket/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAcceptProposalCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newMarketFixture(t)
	prop := f.newPendingProposal(t, time.Now().Add(48*time.Hour))
	cmd, err := commands.NewAcceptProposalCommand(prop.ID(), kernel.NewUUID(), f.seller)
	require.NoError(t, err)

	listingRepo := new(MockListingRepository)
	orderRepo := new(MockOrderRepository)
	proposalRepo := new(MockProposalRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProposalRepository").Return(proposalRepo).Once(),
		proposalRepo.On("Get", mock.Anything, prop.ID()).Return(prop, nil).Once(),
		uow.On("ListingRepository").Return(listingRepo).Once(),
		listingRepo.On("Reserve", mock.Anything, prop.ListingID(), prop.Quantity()).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		proposalRepo.On("TransitionStatus", mock.Anything, prop.ID(), proposal.Pending, proposal.Accepted).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockNegotiationUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.AnythingOfType("events.ProposalDecided")).Return(nil).Once()

	h := commands.NewAcceptProposalCommandHandler(factory, publisher, testLogger)
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, proposal.Accepted, prop.Status())
	proposalRepo.AssertExpectations(t)
	listingRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestAcceptProposalCommandHandler_Handle_ExpiredIsPersisted(t *testing.T) {
	ctx := t.Context()
	f := newMarketFixture(t)
	prop := f.newPendingProposal(t, time.Now().Add(-time.Hour))
	cmd, err := commands.NewAcceptProposalCommand(prop.ID(), kernel.NewUUID(), f.seller)
	require.NoError(t, err)

	listingRepo := new(MockListingRepository)
	proposalRepo := new(MockProposalRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProposalRepository").Return(proposalRepo).Once(),
		proposalRepo.On("Get", mock.Anything, prop.ID()).Return(prop, nil).Once(),
		// The expiry transition is committed even though the command fails.
		uow.On("ProposalRepository").Return(proposalRepo).Once(),
		proposalRepo.On("TransitionStatus", mock.Anything, prop.ID(), proposal.Pending, proposal.Expired).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockNegotiationUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.AnythingOfType("events.ProposalDecided")).Return(nil).Once()

	h := commands.NewAcceptProposalCommandHandler(factory, publisher, testLogger)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, proposal.Expired, prop.Status())
	proposalRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	// No stock was touched.
	listingRepo.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything)
}

func TestAcceptProposalCommandHandler_Handle_ReservationLostKeepsProposalPending(t *testing.T) {
	ctx := t.Context()
	f := newMarketFixture(t)
	prop := f.newPendingProposal(t, time.Now().Add(48*time.Hour))
	cmd, err := commands.NewAcceptProposalCommand(prop.ID(), kernel.NewUUID(), f.seller)
	require.NoError(t, err)

	stockErr := errs.NewInsufficientStockError(prop.ListingID().String(), 40, 10)

	listingRepo := new(MockListingRepository)
	proposalRepo := new(MockProposalRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProposalRepository").Return(proposalRepo).Once(),
		proposalRepo.On("Get", mock.Anything, prop.ID()).Return(prop, nil).Once(),
		uow.On("ListingRepository").Return(listingRepo).Once(),
		listingRepo.On("Reserve", mock.Anything, prop.ListingID(), prop.Quantity()).Return(stockErr).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockNegotiationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAcceptProposalCommandHandler(factory, new(MockEventPublisher), testLogger)
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrInsufficientStock)
	// The in-memory Accepted flip was rolled back with the transaction; the
	// stored row is still Pending.
	proposalRepo.AssertNotCalled(t, "TransitionStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAcceptProposalCommandHandler_Handle_SecondDecisionLosesTransition(t *testing.T) {
	ctx := t.Context()
	f := newMarketFixture(t)
	prop := f.newPendingProposal(t, time.Now().Add(48*time.Hour))
	cmd, err := commands.NewAcceptProposalCommand(prop.ID(), kernel.NewUUID(), f.seller)
	require.NoError(t, err)

	// Another decision committed between this handler's read and its write;
	// the conditional transition matches zero rows.
	transitionErr := errs.NewConflictError("proposal",
		"cannot move from Pending to Accepted, current status is Accepted")

	listingRepo := new(MockListingRepository)
	orderRepo := new(MockOrderRepository)
	proposalRepo := new(MockProposalRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProposalRepository").Return(proposalRepo).Once(),
		proposalRepo.On("Get", mock.Anything, prop.ID()).Return(prop, nil).Once(),
		uow.On("ListingRepository").Return(listingRepo).Once(),
		listingRepo.On("Reserve", mock.Anything, prop.ListingID(), prop.Quantity()).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		proposalRepo.On("TransitionStatus", mock.Anything, prop.ID(), proposal.Pending, proposal.Accepted).
			Return(transitionErr).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockNegotiationUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)

	h := commands.NewAcceptProposalCommandHandler(factory, publisher, testLogger)
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrConflict)
	// The rollback takes the loser's reservation and order with it; nothing
	// is committed and no event goes out.
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	proposalRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}
