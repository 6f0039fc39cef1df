package commands

import (
	"context"
	"log/slog"
	"time"

	"agromarket/internal/core/application/events"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/ports"
	"agromarket/internal/pkg/errs"
)

// MarkOrderReadyCommandHandler moves an accepted order to ReadyForPickup on
// behalf of the owning seller. Dispatch is gated on a completed agreement:
// goods do not go on the road before both parties have signed.
type MarkOrderReadyCommandHandler struct {
	uowFactory AgreementUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewMarkOrderReadyCommandHandler creates a handler for readiness marking.
func NewMarkOrderReadyCommandHandler(
	uowFactory AgreementUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) MarkOrderReadyCommandHandler {
	return MarkOrderReadyCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the readiness command.
func (h *MarkOrderReadyCommandHandler) Handle(ctx context.Context, cmd MarkOrderReadyCommand) error {
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
	if err = aggregate.MarkReady(cmd.Actor()); err != nil {
		return err
	}

	agr, err := uow.AgreementRepository().GetByOrderID(ctx, aggregate.ID())
	if err != nil {
		return err
	}
	if !agr.IsFullySigned() {
		return errs.NewConflictError("order",
			"cannot mark ready before the agreement is completed, agreement status is "+agr.Status().String())
	}

	if err = orderRepo.TransitionStatus(ctx, aggregate.ID(), order.Accepted, order.ReadyForPickup); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvent(ctx, h.publisher, h.logger, events.OrderStatusChanged{
		OrderID:    aggregate.ID().String(),
		ListingID:  aggregate.ListingID().String(),
		OldStatus:  order.Accepted.String(),
		NewStatus:  order.ReadyForPickup.String(),
		OccurredAt: time.Now().UTC(),
	})
	return nil
}
