package commands

import (
	"errors"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/errs"
	"agromarket/internal/pkg/guard"
)

var ErrClaimShipmentCommandIsNotConstructed = errors.New(
	"ClaimShipmentCommand must be created via NewClaimShipmentCommand constructor",
)

// ClaimShipmentCommand represents a carrier claiming a ready order for
// delivery. The claim is exclusive: the first carrier to win the conditional
// assignment gets the shipment, everyone else gets a conflict.
type ClaimShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	orderID    kernel.UUID
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

// NewClaimShipmentCommand creates a command to claim a ready order.
// The actor must be a carrier.
func NewClaimShipmentCommand(
	shipmentID kernel.UUID,
	orderID kernel.UUID,
	actor kernel.Actor,
) (ClaimShipmentCommand, error) {
	cmd := ClaimShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return ClaimShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimShipmentCommand) Validate() error {
	return c.guard.Validate(ErrClaimShipmentCommandIsNotConstructed)
}

// ShipmentID returns the identifier for the new shipment.
func (c ClaimShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// OrderID returns the order being claimed.
func (c ClaimShipmentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the claiming carrier.
func (c ClaimShipmentCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *ClaimShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *ClaimShipmentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ClaimShipmentCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.Role() != kernel.RoleCarrier {
		return errs.NewNotAuthorizedError(actor.ID().String(), "claim shipment")
	}
	c.actor = actor
	return nil
}
