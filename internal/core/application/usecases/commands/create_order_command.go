package commands

import (
	"errors"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/errs"
	"agromarket/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a buyer's direct purchase against a listing
// at the listed price. Placing the order immediately reserves the requested
// quantity; the reservation and the order insert share one transaction.
//
// Example:
//
//	qty, _ := kernel.NewQuantity(30, kernel.UnitKilogram)
//	cmd, err := NewCreateOrderCommand(orderID, listingID, buyer, qty)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher, logger)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	listingID kernel.UUID
	actor     kernel.Actor
	quantity  kernel.Quantity

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a direct order.
// The actor must be a buyer.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	listingID kernel.UUID,
	actor kernel.Actor,
	quantity kernel.Quantity,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setListingID(listingID),
		cmd.setActor(actor),
		cmd.setQuantity(quantity),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ListingID returns the listing being purchased from.
func (c CreateOrderCommand) ListingID() kernel.UUID {
	return c.listingID
}

// Actor returns the buying party issuing the command.
func (c CreateOrderCommand) Actor() kernel.Actor {
	return c.actor
}

// Quantity returns the requested weight.
func (c CreateOrderCommand) Quantity() kernel.Quantity {
	return c.quantity
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setListingID(listingID kernel.UUID) error {
	if err := listingID.Validate(); err != nil {
		return err
	}
	c.listingID = listingID
	return nil
}

func (c *CreateOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.Role() != kernel.RoleBuyer {
		return errs.NewNotAuthorizedError(actor.ID().String(), "create order")
	}
	c.actor = actor
	return nil
}

func (c *CreateOrderCommand) setQuantity(quantity kernel.Quantity) error {
	if err := quantity.Validate(); err != nil {
		return err
	}
	c.quantity = quantity
	return nil
}
