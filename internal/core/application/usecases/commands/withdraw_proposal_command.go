package commands

import (
	"errors"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/guard"
)

var ErrWithdrawProposalCommandIsNotConstructed = errors.New(
	"WithdrawProposalCommand must be created via NewWithdrawProposalCommand constructor",
)

// WithdrawProposalCommand represents the proposing buyer retracting a
// still-pending proposal.
type WithdrawProposalCommand struct { //nolint:recvcheck //using for validation
	proposalID kernel.UUID
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

// NewWithdrawProposalCommand creates a command to withdraw a proposal.
func NewWithdrawProposalCommand(proposalID kernel.UUID, actor kernel.Actor) (WithdrawProposalCommand, error) {
	cmd := WithdrawProposalCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProposalID(proposalID),
		cmd.setActor(actor),
	); err != nil {
		return WithdrawProposalCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c WithdrawProposalCommand) Validate() error {
	return c.guard.Validate(ErrWithdrawProposalCommandIsNotConstructed)
}

// ProposalID returns the proposal being withdrawn.
func (c WithdrawProposalCommand) ProposalID() kernel.UUID {
	return c.proposalID
}

// Actor returns the party issuing the command.
func (c WithdrawProposalCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *WithdrawProposalCommand) setProposalID(proposalID kernel.UUID) error {
	if err := proposalID.Validate(); err != nil {
		return err
	}
	c.proposalID = proposalID
	return nil
}

func (c *WithdrawProposalCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
