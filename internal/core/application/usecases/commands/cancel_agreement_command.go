package commands

import (
	"errors"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/guard"
)

var ErrCancelAgreementCommandIsNotConstructed = errors.New(
	"CancelAgreementCommand must be created via NewCancelAgreementCommand constructor",
)

// CancelAgreementCommand represents either party withdrawing from the
// agreement while the order has not been dispatched.
type CancelAgreementCommand struct { //nolint:recvcheck //using for validation
	agreementID kernel.UUID
	actor       kernel.Actor

	guard guard.ConstructorGuard
}

// NewCancelAgreementCommand creates a command to cancel an agreement.
func NewCancelAgreementCommand(agreementID kernel.UUID, actor kernel.Actor) (CancelAgreementCommand, error) {
	cmd := CancelAgreementCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAgreementID(agreementID),
		cmd.setActor(actor),
	); err != nil {
		return CancelAgreementCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelAgreementCommand) Validate() error {
	return c.guard.Validate(ErrCancelAgreementCommandIsNotConstructed)
}

// AgreementID returns the agreement being cancelled.
func (c CancelAgreementCommand) AgreementID() kernel.UUID {
	return c.agreementID
}

// Actor returns the party issuing the command.
func (c CancelAgreementCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *CancelAgreementCommand) setAgreementID(agreementID kernel.UUID) error {
	if err := agreementID.Validate(); err != nil {
		return err
	}
	c.agreementID = agreementID
	return nil
}

func (c *CancelAgreementCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
