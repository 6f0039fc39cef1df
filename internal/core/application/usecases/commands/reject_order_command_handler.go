package commands

import (
	"context"
	"log/slog"
	"time"

	"agromarket/internal/core/application/events"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/ports"
)

// RejectOrderCommandHandler moves a pending order to Rejected and releases
// its reservation. The conditional Pending->Rejected transition runs before
// the release, so a doubled rejection fails on the transition and can never
// release the same quantity twice.
type RejectOrderCommandHandler struct {
	uowFactory MarketUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewRejectOrderCommandHandler creates a handler for order rejection.
func NewRejectOrderCommandHandler(
	uowFactory MarketUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) RejectOrderCommandHandler {
	return RejectOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the order rejection command.
func (h *RejectOrderCommandHandler) Handle(ctx context.Context, cmd RejectOrderCommand) error {
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
	if err = aggregate.Reject(cmd.Actor()); err != nil {
		return err
	}

	if err = orderRepo.TransitionStatus(ctx, aggregate.ID(), order.Pending, order.Rejected); err != nil {
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
		NewStatus:  order.Rejected.String(),
		OccurredAt: time.Now().UTC(),
	})
	return nil
}
