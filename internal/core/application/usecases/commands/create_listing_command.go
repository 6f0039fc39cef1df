package commands

import (
	"errors"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/listing"
	"agromarket/internal/pkg/errs"
	"agromarket/internal/pkg/guard"
)

var ErrCreateListingCommandIsNotConstructed = errors.New(
	"CreateListingCommand must be created via NewCreateListingCommand constructor",
)

// CreateListingCommand represents a seller's request to put a crop batch on
// the market. Quantity arrives in any supported weight unit and is
// normalized to kilograms before it reaches the command.
//
// Example:
//
//	qty, _ := kernel.NewQuantity(5, kernel.UnitTon)
//	price, _ := kernel.NewMoneyFromString("48.50")
//	cmd, err := NewCreateListingCommand(listingID, seller, "wheat", listing.GradeA,
//	    "12 Mill Road", qty, price)
//	if err != nil {
//	    return fmt.Errorf("invalid listing data: %w", err)
//	}
type CreateListingCommand struct { //nolint:recvcheck //using for validation
	listingID     kernel.UUID
	actor         kernel.Actor
	crop          string
	grade         listing.Grade
	pickupAddress string
	quantity      kernel.Quantity
	pricePerKg    kernel.Money

	guard guard.ConstructorGuard
}

// NewCreateListingCommand creates a command to publish a new listing.
// The actor must be a seller; the published listing is owned by them.
func NewCreateListingCommand(
	listingID kernel.UUID,
	actor kernel.Actor,
	crop string,
	grade listing.Grade,
	pickupAddress string,
	quantity kernel.Quantity,
	pricePerKg kernel.Money,
) (CreateListingCommand, error) {
	cmd := CreateListingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setListingID(listingID),
		cmd.setActor(actor),
		cmd.setCrop(crop),
		cmd.setGrade(grade),
		cmd.setPickupAddress(pickupAddress),
		cmd.setQuantity(quantity),
		cmd.setPricePerKg(pricePerKg),
	); err != nil {
		return CreateListingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateListingCommand) Validate() error {
	return c.guard.Validate(ErrCreateListingCommandIsNotConstructed)
}

// ListingID returns the identifier for the new listing.
func (c CreateListingCommand) ListingID() kernel.UUID {
	return c.listingID
}

// Actor returns the selling party issuing the command.
func (c CreateListingCommand) Actor() kernel.Actor {
	return c.actor
}

// Crop returns the crop name.
func (c CreateListingCommand) Crop() string {
	return c.crop
}

// Grade returns the quality grade.
func (c CreateListingCommand) Grade() listing.Grade {
	return c.grade
}

// PickupAddress returns where carriers collect the goods.
func (c CreateListingCommand) PickupAddress() string {
	return c.pickupAddress
}

// Quantity returns the offered weight.
func (c CreateListingCommand) Quantity() kernel.Quantity {
	return c.quantity
}

// PricePerKg returns the unit price.
func (c CreateListingCommand) PricePerKg() kernel.Money {
	return c.pricePerKg
}

func (c *CreateListingCommand) setListingID(listingID kernel.UUID) error {
	if err := listingID.Validate(); err != nil {
		return err
	}
	c.listingID = listingID
	return nil
}

func (c *CreateListingCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.Role() != kernel.RoleSeller {
		return errs.NewNotAuthorizedError(actor.ID().String(), "create listing")
	}
	c.actor = actor
	return nil
}

func (c *CreateListingCommand) setCrop(crop string) error {
	if crop == "" {
		return errs.NewValueIsRequiredError("crop")
	}
	c.crop = crop
	return nil
}

func (c *CreateListingCommand) setGrade(grade listing.Grade) error {
	if err := grade.Validate(); err != nil {
		return err
	}
	c.grade = grade
	return nil
}

func (c *CreateListingCommand) setPickupAddress(pickupAddress string) error {
	if pickupAddress == "" {
		return errs.NewValueIsRequiredError("pickupAddress")
	}
	c.pickupAddress = pickupAddress
	return nil
}

func (c *CreateListingCommand) setQuantity(quantity kernel.Quantity) error {
	if err := quantity.Validate(); err != nil {
		return err
	}
	c.quantity = quantity
	return nil
}

func (c *CreateListingCommand) setPricePerKg(pricePerKg kernel.Money) error {
	if err := pricePerKg.Validate(); err != nil {
		return err
	}
	c.pricePerKg = pricePerKg
	return nil
}
