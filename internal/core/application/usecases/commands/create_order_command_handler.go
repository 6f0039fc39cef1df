package commands

import (
	"context"
	"log/slog"
	"time"

	"agromarket/internal/core/application/events"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for direct order
// placement. The reservation is a conditional update on the listing ledger:
// if two buyers race for the last of the stock, exactly one order is created
// and the other buyer gets an insufficient-stock conflict naming the
// remaining quantity.
type CreateOrderCommandHandler struct {
	uowFactory MarketUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(
	uowFactory MarketUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the order placement command. Listing lookup, conditional
// reservation, and order insert run in one transaction; rollback of the
// transaction is the compensating release.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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

	listingRepo := uow.ListingRepository()
	lst, err := listingRepo.Get(ctx, cmd.ListingID())
	if err != nil {
		return err
	}
	if err = lst.Status().ValidateReservable(); err != nil {
		return err
	}

	if err = listingRepo.Reserve(ctx, lst.ID(), cmd.Quantity()); err != nil {
		return err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(), lst.ID(), lst.SellerID(), cmd.Actor().ID(),
		cmd.Quantity(), lst.PricePerKg(),
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvent(ctx, h.publisher, h.logger, events.OrderCreated{
		OrderID:    aggregate.ID().String(),
		ListingID:  aggregate.ListingID().String(),
		SellerID:   aggregate.SellerID().String(),
		BuyerID:    aggregate.BuyerID().String(),
		QuantityKg: aggregate.Quantity().Kilograms(),
		TotalPrice: aggregate.TotalPrice().String(),
		Status:     aggregate.Status().String(),
		OccurredAt: time.Now().UTC(),
	})
	return nil
}
