package commands

import (
	"context"

	"agromarket/internal/core/domain/model/listing"
)

// CreateListingCommandHandler handles the business logic for publishing a
// new listing in Available status with nothing reserved.
type CreateListingCommandHandler struct {
	uowFactory ListingUoWFactory
}

// NewCreateListingCommandHandler creates a handler for listing publication.
func NewCreateListingCommandHandler(uowFactory ListingUoWFactory) CreateListingCommandHandler {
	return CreateListingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the listing creation command.
func (h *CreateListingCommandHandler) Handle(ctx context.Context, cmd CreateListingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := listing.NewListing(
		cmd.ListingID(), cmd.Actor().ID(),
		cmd.Crop(), cmd.Grade(), cmd.PickupAddress(),
		cmd.Quantity(), cmd.PricePerKg(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ListingRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
