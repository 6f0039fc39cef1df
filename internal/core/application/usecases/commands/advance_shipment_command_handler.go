package commands

import (
	"context"
	"log/slog"
	"time"

	"agromarket/internal/core/application/events"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/domain/model/shipment"
	"agromarket/internal/core/ports"
)

// AdvanceShipmentCommandHandler progresses a shipment through its stages on
// behalf of the assigned carrier. Delivery is the settlement point: in one
// transaction the order moves Delivered then Completed, the full payment is
// recorded, and the listing ledger consumes the reserved quantity, which
// takes a fully sold-out listing to Sold. A failed delivery leaves the
// reservation in place for manual resolution.
type AdvanceShipmentCommandHandler struct {
	uowFactory SettlementUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewAdvanceShipmentCommandHandler creates a handler for shipment progress.
func NewAdvanceShipmentCommandHandler(
	uowFactory SettlementUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AdvanceShipmentCommandHandler {
	return AdvanceShipmentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the stage advance command.
func (h *AdvanceShipmentCommandHandler) Handle(ctx context.Context, cmd AdvanceShipmentCommand) error {
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

	shipmentRepo := uow.ShipmentRepository()
	shp, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}
	oldStatus := shp.Status()

	now := time.Now().UTC()
	switch cmd.Target() {
	case shipment.PickedUp:
		err = shp.MarkPickedUp(cmd.Actor(), now)
	case shipment.InTransit:
		err = shp.StartTransit(cmd.Actor())
	case shipment.Delivered:
		err = shp.Deliver(cmd.Actor(), now)
	case shipment.Failed:
		err = shp.Fail(cmd.Actor(), now)
	}
	if err != nil {
		return err
	}

	if cmd.Target() == shipment.Delivered {
		if err = h.settle(ctx, uow, shp); err != nil {
			return err
		}
	}

	if err = shipmentRepo.Update(ctx, shp, oldStatus); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvent(ctx, h.publisher, h.logger, events.DeliveryStatusChanged{
		ShipmentID: shp.ID().String(),
		OrderID:    shp.OrderID().String(),
		CarrierID:  shp.CarrierID().String(),
		OldStatus:  oldStatus.String(),
		NewStatus:  shp.Status().String(),
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// settle completes the delivered order and consumes its reservation from the
// listing ledger.
func (h *AdvanceShipmentCommandHandler) settle(
	ctx context.Context,
	uow SettlementUoW,
	shp *shipment.Shipment,
) error {
	orderRepo := uow.OrderRepository()
	ord, err := orderRepo.Get(ctx, shp.OrderID())
	if err != nil {
		return err
	}

	if err = orderRepo.TransitionStatus(ctx, ord.ID(), order.InTransit, order.Delivered); err != nil {
		return err
	}
	if err = orderRepo.TransitionStatus(ctx, ord.ID(), order.Delivered, order.Completed); err != nil {
		return err
	}

	if err = ord.MarkFullPaid(); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	return uow.ListingRepository().Settle(ctx, ord.ListingID(), ord.Quantity())
}
