package commands

import (
	"errors"
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/errs"
	"agromarket/internal/pkg/guard"
)

var ErrSubmitProposalCommandIsNotConstructed = errors.New(
	"SubmitProposalCommand must be created via NewSubmitProposalCommand constructor",
)

// SubmitProposalCommand represents a buyer's counter-bid against a listing:
// their own price and quantity, an optional message, and a validity
// deadline. Submission reserves nothing.
type SubmitProposalCommand struct { //nolint:recvcheck //using for validation
	proposalID kernel.UUID
	listingID  kernel.UUID
	actor      kernel.Actor
	quantity   kernel.Quantity
	pricePerKg kernel.Money
	message    string
	validUntil time.Time

	guard guard.ConstructorGuard
}

// NewSubmitProposalCommand creates a command to submit a proposal.
// The actor must be a buyer.
func NewSubmitProposalCommand(
	proposalID kernel.UUID,
	listingID kernel.UUID,
	actor kernel.Actor,
	quantity kernel.Quantity,
	pricePerKg kernel.Money,
	message string,
	validUntil time.Time,
) (SubmitProposalCommand, error) {
	cmd := SubmitProposalCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProposalID(proposalID),
		cmd.setListingID(listingID),
		cmd.setActor(actor),
		cmd.setQuantity(quantity),
		cmd.setPricePerKg(pricePerKg),
		cmd.setValidUntil(validUntil),
	); err != nil {
		return SubmitProposalCommand{}, err
	}

	cmd.message = message
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitProposalCommand) Validate() error {
	return c.guard.Validate(ErrSubmitProposalCommandIsNotConstructed)
}

// ProposalID returns the identifier for the new proposal.
func (c SubmitProposalCommand) ProposalID() kernel.UUID {
	return c.proposalID
}

// ListingID returns the listing the proposal bids against.
func (c SubmitProposalCommand) ListingID() kernel.UUID {
	return c.listingID
}

// Actor returns the buying party issuing the command.
func (c SubmitProposalCommand) Actor() kernel.Actor {
	return c.actor
}

// Quantity returns the proposed weight.
func (c SubmitProposalCommand) Quantity() kernel.Quantity {
	return c.quantity
}

// PricePerKg returns the proposed unit price.
func (c SubmitProposalCommand) PricePerKg() kernel.Money {
	return c.pricePerKg
}

// Message returns the free-form note to the seller.
func (c SubmitProposalCommand) Message() string {
	return c.message
}

// ValidUntil returns the validity deadline.
func (c SubmitProposalCommand) ValidUntil() time.Time {
	return c.validUntil
}

func (c *SubmitProposalCommand) setProposalID(proposalID kernel.UUID) error {
	if err := proposalID.Validate(); err != nil {
		return err
	}
	c.proposalID = proposalID
	return nil
}

func (c *SubmitProposalCommand) setListingID(listingID kernel.UUID) error {
	if err := listingID.Validate(); err != nil {
		return err
	}
	c.listingID = listingID
	return nil
}

func (c *SubmitProposalCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if actor.Role() != kernel.RoleBuyer {
		return errs.NewNotAuthorizedError(actor.ID().String(), "submit proposal")
	}
	c.actor = actor
	return nil
}

func (c *SubmitProposalCommand) setQuantity(quantity kernel.Quantity) error {
	if err := quantity.Validate(); err != nil {
		return err
	}
	c.quantity = quantity
	return nil
}

func (c *SubmitProposalCommand) setPricePerKg(pricePerKg kernel.Money) error {
	if err := pricePerKg.Validate(); err != nil {
		return err
	}
	c.pricePerKg = pricePerKg
	return nil
}

func (c *SubmitProposalCommand) setValidUntil(validUntil time.Time) error {
	if validUntil.IsZero() {
		return errs.NewValueIsRequiredError("validUntil")
	}
	c.validUntil = validUntil
	return nil
}
