package commands_test

import (
	"testing"

	"agromarket/internal/core/application/usecases/commands"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestClaimShipmentCommandHandler_Handle_WinnerCreatesShipment(t *testing.T) {
	ctx := t.Context()
	f := newMarketFixture(t)
	orderID := kernel.NewUUID()
	cmd, err := commands.NewClaimShipmentCommand(kernel.NewUUID(), orderID, f.carrier)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Claim", mock.Anything, orderID, f.carrier.ID()).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Add", mock.Anything, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.AnythingOfType("events.DeliveryStatusChanged")).Return(nil).Once()

	h := commands.NewClaimShipmentCommandHandler(factory, publisher, testLogger)
	require.NoError(t, h.Handle(ctx, cmd))
	orderRepo.AssertExpectations(t)
	shipmentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestClaimShipmentCommandHandler_Handle_LoserGetsConflict(t *testing.T) {
	ctx := t.Context()
	f := newMarketFixture(t)
	orderID := kernel.NewUUID()
	cmd, err := commands.NewClaimShipmentCommand(kernel.NewUUID(), orderID, f.carrier)
	require.NoError(t, err)

	claimErr := errs.NewConflictError("order", "already claimed")

	orderRepo := new(MockOrderRepository)
	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Claim", mock.Anything, orderID, f.carrier.ID()).Return(claimErr).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewClaimShipmentCommandHandler(factory, new(MockEventPublisher), testLogger)
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrConflict)
	shipmentRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestNewClaimShipmentCommand_RejectsNonCarrier(t *testing.T) {
	f := newMarketFixture(t)
	_, err := commands.NewClaimShipmentCommand(kernel.NewUUID(), kernel.NewUUID(), f.buyer)
	require.ErrorIs(t, err, errs.ErrNotAuthorized)
}
