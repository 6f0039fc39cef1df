package commands

import (
	"errors"
	"fmt"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/shipment"
	"agromarket/internal/pkg/errs"
	"agromarket/internal/pkg/guard"
)

var ErrAdvanceShipmentCommandIsNotConstructed = errors.New(
	"AdvanceShipmentCommand must be created via NewAdvanceShipmentCommand constructor",
)

// AdvanceShipmentCommand represents the assigned carrier moving a shipment
// to its next stage: PickedUp, InTransit, Delivered, or Failed. Delivered
// triggers settlement; Failed abandons delivery but keeps the reservation.
type AdvanceShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	actor      kernel.Actor
	target     shipment.Status

	guard guard.ConstructorGuard
}

// NewAdvanceShipmentCommand creates a command to advance a shipment stage.
// The actor must be a carrier; the target must be a non-initial stage.
func NewAdvanceShipmentCommand(
	shipmentID kernel.UUID,
	actor kernel.Actor,
	target shipment.Status,
) (AdvanceShipmentCommand, error) {
	cmd := AdvanceShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setActor(actor),
		cmd.setTarget(target),
	); err != nil {
		return AdvanceShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceShipmentCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceShipmentCommandIsNotConstructed)
}

// ShipmentID returns the shipment being advanced.
func (c AdvanceShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Actor returns the carrier issuing the command.
func (c AdvanceShipmentCommand) Actor() kernel.Actor {
	return c.actor
}

// Target returns the requested stage.
func (c AdvanceShipmentCommand) Target() shipment.Status {
	return c.target
}

func (c *AdvanceShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *AdvanceShipmentCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.Role() != kernel.RoleCarrier {
		return errs.NewNotAuthorizedError(actor.ID().String(), "advance shipment")
	}
	c.actor = actor
	return nil
}

func (c *AdvanceShipmentCommand) setTarget(target shipment.Status) error {
	switch target {
	case shipment.PickedUp, shipment.InTransit, shipment.Delivered, shipment.Failed:
		c.target = target
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("target",
			fmt.Errorf("%s is not a reachable shipment stage", target))
	}
}
