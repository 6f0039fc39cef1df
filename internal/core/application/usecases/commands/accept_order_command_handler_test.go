package commands_test

import (
	"testing"

	"agromarket/internal/core/application/usecases/commands"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAcceptOrderCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	f := newMarketFixture(t)
	ord := f.newPendingOrder(t)
	cmd, err := commands.NewAcceptOrderCommand(ord.ID(), f.seller)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		orderRepo.On("TransitionStatus", mock.Anything, ord.ID(), order.Pending, order.Accepted).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.AnythingOfType("events.OrderStatusChanged")).Return(nil).Once()

	h := commands.NewAcceptOrderCommandHandler(factory, publisher, testLogger)
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, order.Accepted, ord.Status())
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestAcceptOrderCommandHandler_Handle_BuyerCannotAccept(t *testing.T) {
	ctx := t.Context()
	f := newMarketFixture(t)
	ord := f.newPendingOrder(t)
	cmd, err := commands.NewAcceptOrderCommand(ord.ID(), f.buyer)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)

	h := commands.NewAcceptOrderCommandHandler(factory, publisher, testLogger)
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrNotAuthorized)
	assert.Equal(t, order.Pending, ord.Status())
	orderRepo.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestAcceptOrderCommandHandler_Handle_LostConditionalTransition(t *testing.T) {
	ctx := t.Context()
	f := newMarketFixture(t)
	ord := f.newPendingOrder(t)
	cmd, err := commands.NewAcceptOrderCommand(ord.ID(), f.seller)
	require.NoError(t, err)

	transitionErr := errs.NewConflictError("order", "status is not Pending")

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		orderRepo.On("TransitionStatus", mock.Anything, ord.ID(), order.Pending, order.Accepted).
			Return(transitionErr).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)

	h := commands.NewAcceptOrderCommandHandler(factory, publisher, testLogger)
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrConflict)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}
