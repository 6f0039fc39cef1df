package commands

import (
	"context"
	"log/slog"
	"time"

	"agromarket/internal/core/application/events"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/ports"
)

// CancelOrderCommandHandler moves a pending order to Cancelled on behalf of
// the buyer who placed it and releases the reservation. Like rejection, the
// conditional transition guards the single release.
type CancelOrderCommandHandler struct {
	uowFactory MarketUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory MarketUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the order cancellation command.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = aggregate.Cancel(cmd.Actor()); err != nil {
		return err
	}

	if err = orderRepo.TransitionStatus(ctx, aggregate.ID(), order.Pending, order.Cancelled); err != nil {
		return err
	}
	if err = uow.ListingRepository().Release(ctx, aggregate.ListingID(), aggregate.Quantity()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvent(ctx, h.publisher, h.logger, events.OrderStatusChanged{
		OrderID:    aggregate.ID().String(),
		ListingID:  aggregate.ListingID().String(),
		OldStatus:  order.Pending.String(),
		NewStatus:  order.Cancelled.String(),
		OccurredAt: time.Now().UTC(),
	})
	return nil
}
