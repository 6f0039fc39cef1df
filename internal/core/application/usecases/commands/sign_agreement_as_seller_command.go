package commands

import (
	"errors"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/guard"
)

var ErrSignAgreementAsSellerCommandIsNotConstructed = errors.New(
	"SignAgreementAsSellerCommand must be created via NewSignAgreementAsSellerCommand constructor",
)

// SignAgreementAsSellerCommand represents the owning seller opening and
// signing the purchase agreement for an accepted order. The seller's
// signature fixes the advance/final payment split.
type SignAgreementAsSellerCommand struct { //nolint:recvcheck //using for validation
	agreementID   kernel.UUID
	orderID       kernel.UUID
	actor         kernel.Actor
	termsAccepted bool

	guard guard.ConstructorGuard
}

// NewSignAgreementAsSellerCommand creates a command to sign as the seller.
func NewSignAgreementAsSellerCommand(
	agreementID kernel.UUID,
	orderID kernel.UUID,
	actor kernel.Actor,
	termsAccepted bool,
) (SignAgreementAsSellerCommand, error) {
	cmd := SignAgreementAsSellerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAgreementID(agreementID),
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return SignAgreementAsSellerCommand{}, err
	}

	cmd.termsAccepted = termsAccepted
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SignAgreementAsSellerCommand) Validate() error {
	return c.guard.Validate(ErrSignAgreementAsSellerCommandIsNotConstructed)
}

// AgreementID returns the identifier for the new agreement.
func (c SignAgreementAsSellerCommand) AgreementID() kernel.UUID {
	return c.agreementID
}

// OrderID returns the order the agreement is attached to.
func (c SignAgreementAsSellerCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the party issuing the command.
func (c SignAgreementAsSellerCommand) Actor() kernel.Actor {
	return c.actor
}

// TermsAccepted reports whether the seller ticked the terms checkbox.
func (c SignAgreementAsSellerCommand) TermsAccepted() bool {
	return c.termsAccepted
}

func (c *SignAgreementAsSellerCommand) setAgreementID(agreementID kernel.UUID) error {
	if err := agreementID.Validate(); err != nil {
		return err
	}
	c.agreementID = agreementID
	return nil
}

func (c *SignAgreementAsSellerCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *SignAgreementAsSellerCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
