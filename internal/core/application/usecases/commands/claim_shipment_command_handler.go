package commands

import (
	"context"
	"log/slog"
	"time"

	"agromarket/internal/core/application/events"
	"agromarket/internal/core/domain/model/shipment"
	"agromarket/internal/core/ports"
)

// ClaimShipmentCommandHandler performs the exclusive carrier claim: one
// conditional update assigns the carrier and moves the order from
// ReadyForPickup to InTransit, precondition no carrier assigned. The
// shipment record is created in the same transaction, so a won claim always
// has its shipment and a lost claim creates nothing.
type ClaimShipmentCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewClaimShipmentCommandHandler creates a handler for the carrier claim.
func NewClaimShipmentCommandHandler(
	uowFactory FulfillmentUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ClaimShipmentCommandHandler {
	return ClaimShipmentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the claim command.
func (h *ClaimShipmentCommandHandler) Handle(ctx context.Context, cmd ClaimShipmentCommand) error {
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

	if err := uow.OrderRepository().Claim(ctx, cmd.OrderID(), cmd.Actor().ID()); err != nil {
		return err
	}

	aggregate, err := shipment.NewShipment(
		cmd.ShipmentID(), cmd.OrderID(), cmd.Actor().ID(), time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvent(ctx, h.publisher, h.logger, events.DeliveryStatusChanged{
		ShipmentID: aggregate.ID().String(),
		OrderID:    aggregate.OrderID().String(),
		CarrierID:  aggregate.CarrierID().String(),
		OldStatus:  "",
		NewStatus:  shipment.Assigned.String(),
		OccurredAt: time.Now().UTC(),
	})
	return nil
}
