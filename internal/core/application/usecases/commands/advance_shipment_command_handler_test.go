package commands_test

import (
	"testing"
	"time"

	"agromarket/internal/core/application/usecases/commands"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// inTransitFulfillment builds an order in InTransit with advance paid and
// its shipment already on the road.
func inTransitFulfillment(t *testing.T, f marketFixture) (*order.Order, *shipment.Shipment) {
	t.Helper()

	ord := f.newPendingOrder(t)
	require.NoError(t, ord.Accept(f.seller))
	require.NoError(t, ord.MarkAdvancePaid())
	require.NoError(t, ord.MarkReady(f.seller))
	require.NoError(t, ord.AssignCarrier(f.carrier.ID()))

	shp, err := shipment.NewShipment(kernel.NewUUID(), ord.ID(), f.carrier.ID(), time.Now())
	require.NoError(t, err)
	require.NoError(t, shp.MarkPickedUp(f.carrier, time.Now()))
	require.NoError(t, shp.StartTransit(f.carrier))
	return ord, shp
}

func TestAdvanceShipmentCommandHandler_Handle_DeliverySettles(t *testing.T) {
	ctx := t.Context()
	f := newMarketFixture(t)
	ord, shp := inTransitFulfillment(t, f)
	cmd, err := commands.NewAdvanceShipmentCommand(shp.ID(), f.carrier, shipment.Delivered)
	require.NoError(t, err)

	listingRepo := new(MockListingRepository)
	orderRepo := new(MockOrderRepository)
	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", mock.Anything, shp.ID()).Return(shp, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		orderRepo.On("TransitionStatus", mock.Anything, ord.ID(), order.InTransit, order.Delivered).Return(nil).Once(),
		orderRepo.On("TransitionStatus", mock.Anything, ord.ID(), order.Delivered, order.Completed).Return(nil).Once(),
		orderRepo.On("Update", mock.Anything, ord).Return(nil).Once(),
		uow.On("ListingRepository").Return(listingRepo).Once(),
		listingRepo.On("Settle", mock.Anything, ord.ListingID(), ord.Quantity()).Return(nil).Once(),
		shipmentRepo.On("Update", mock.Anything, shp, shipment.InTransit).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.AnythingOfType("events.DeliveryStatusChanged")).Return(nil).Once()

	h := commands.NewAdvanceShipmentCommandHandler(factory, publisher, testLogger)
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, shipment.Delivered, shp.Status())
	assert.Equal(t, order.PaymentFullPaid, ord.PaymentStatus())
	listingRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	shipmentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAdvanceShipmentCommandHandler_Handle_FailureKeepsReservation(t *testing.T) {
	ctx := t.Context()
	f := newMarketFixture(t)
	_, shp := inTransitFulfillment(t, f)
	cmd, err := commands.NewAdvanceShipmentCommand(shp.ID(), f.carrier, shipment.Failed)
	require.NoError(t, err)

	listingRepo := new(MockListingRepository)
	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", mock.Anything, shp.ID()).Return(shp, nil).Once(),
		shipmentRepo.On("Update", mock.Anything, shp, shipment.InTransit).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSettlementUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", mock.Anything, mock.AnythingOfType("events.DeliveryStatusChanged")).Return(nil).Once()

	h := commands.NewAdvanceShipmentCommandHandler(factory, publisher, testLogger)
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, shipment.Failed, shp.Status())
	// The reservation stays held for manual resolution.
	listingRepo.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything, mock.Anything)
	listingRepo.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything)
}

func TestNewAdvanceShipmentCommand_RejectsInitialStage(t *testing.T) {
	f := newMarketFixture(t)
	_, err := commands.NewAdvanceShipmentCommand(kernel.NewUUID(), f.carrier, shipment.Assigned)
	require.Error(t, err)
}
