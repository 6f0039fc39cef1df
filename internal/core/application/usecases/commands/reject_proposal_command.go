package commands

import (
	"errors"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/guard"
)

var ErrRejectProposalCommandIsNotConstructed = errors.New(
	"RejectProposalCommand must be created via NewRejectProposalCommand constructor",
)

// RejectProposalCommand represents the owning seller declining a pending
// proposal. Sibling proposals against the same listing are untouched.
type RejectProposalCommand struct { //nolint:recvcheck //using for validation
	proposalID kernel.UUID
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

// NewRejectProposalCommand creates a command to reject a proposal.
func NewRejectProposalCommand(proposalID kernel.UUID, actor kernel.Actor) (RejectProposalCommand, error) {
	cmd := RejectProposalCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProposalID(proposalID),
		cmd.setActor(actor),
	); err != nil {
		return RejectProposalCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectProposalCommand) Validate() error {
	return c.guard.Validate(ErrRejectProposalCommandIsNotConstructed)
}

// ProposalID returns the proposal being rejected.
func (c RejectProposalCommand) ProposalID() kernel.UUID {
	return c.proposalID
}

// Actor returns the party issuing the command.
func (c RejectProposalCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *RejectProposalCommand) setProposalID(proposalID kernel.UUID) error {
	if err := proposalID.Validate(); err != nil {
		return err
	}
	c.proposalID = proposalID
	return nil
}

func (c *RejectProposalCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
