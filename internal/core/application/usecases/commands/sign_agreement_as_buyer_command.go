package commands

import (
	"errors"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/guard"
)

var ErrSignAgreementAsBuyerCommandIsNotConstructed = errors.New(
	"SignAgreementAsBuyerCommand must be created via NewSignAgreementAsBuyerCommand constructor",
)

// SignAgreementAsBuyerCommand represents the buyer countersigning the
// agreement the seller already signed. Completion marks the order's advance
// payment as made.
type SignAgreementAsBuyerCommand struct { //nolint:recvcheck //using for validation
	agreementID   kernel.UUID
	actor         kernel.Actor
	termsAccepted bool

	guard guard.ConstructorGuard
}

// NewSignAgreementAsBuyerCommand creates a command to countersign as the buyer.
func NewSignAgreementAsBuyerCommand(
	agreementID kernel.UUID,
	actor kernel.Actor,
	termsAccepted bool,
) (SignAgreementAsBuyerCommand, error) {
	cmd := SignAgreementAsBuyerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAgreementID(agreementID),
		cmd.setActor(actor),
	); err != nil {
		return SignAgreementAsBuyerCommand{}, err
	}

	cmd.termsAccepted = termsAccepted
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SignAgreementAsBuyerCommand) Validate() error {
	return c.guard.Validate(ErrSignAgreementAsBuyerCommandIsNotConstructed)
}

// AgreementID returns the agreement being countersigned.
func (c SignAgreementAsBuyerCommand) AgreementID() kernel.UUID {
	return c.agreementID
}

// Actor returns the party issuing the command.
func (c SignAgreementAsBuyerCommand) Actor() kernel.Actor {
	return c.actor
}

// TermsAccepted reports whether the buyer ticked the terms checkbox.
func (c SignAgreementAsBuyerCommand) TermsAccepted() bool {
	return c.termsAccepted
}

func (c *SignAgreementAsBuyerCommand) setAgreementID(agreementID kernel.UUID) error {
	if err := agreementID.Validate(); err != nil {
		return err
	}
	c.agreementID = agreementID
	return nil
}

func (c *SignAgreementAsBuyerCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
