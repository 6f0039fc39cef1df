package commands

import (
	"context"
	"log/slog"
	"time"

	"agromarket/internal/core/application/events"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/ports"
)

// AcceptOrderCommandHandler moves a pending order to Accepted on behalf of
// the owning seller. The persisted transition is conditional on the order
// still being Pending, so concurrent decisions on the same order resolve to
// exactly one winner.
type AcceptOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewAcceptOrderCommandHandler creates a handler for order acceptance.
func NewAcceptOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the order acceptance command.
func (h *AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
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
	if err = aggregate.Accept(cmd.Actor()); err != nil {
		return err
	}

	if err = orderRepo.TransitionStatus(ctx, aggregate.ID(), order.Pending, order.Accepted); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvent(ctx, h.publisher, h.logger, events.OrderStatusChanged{
		OrderID:    aggregate.ID().String(),
		ListingID:  aggregate.ListingID().String(),
		OldStatus:  order.Pending.String(),
		NewStatus:  order.Accepted.String(),
		OccurredAt: time.Now().UTC(),
	})
	return nil
}
