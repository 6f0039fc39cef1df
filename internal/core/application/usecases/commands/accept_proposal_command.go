package commands

import (
	"errors"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/guard"
)

var ErrAcceptProposalCommandIsNotConstructed = errors.New(
	"AcceptProposalCommand must be created via NewAcceptProposalCommand constructor",
)

// AcceptProposalCommand represents the owning seller accepting a pending
// proposal. Acceptance reserves the proposed quantity against current
// availability and materializes an order at the proposed terms; the caller
// supplies the identifier the new order will carry.
type AcceptProposalCommand struct { //nolint:recvcheck //using for validation
	proposalID kernel.UUID
	orderID    kernel.UUID
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

// NewAcceptProposalCommand creates a command to accept a proposal.
func NewAcceptProposalCommand(
	proposalID kernel.UUID,
	orderID kernel.UUID,
	actor kernel.Actor,
) (AcceptProposalCommand, error) {
	cmd := AcceptProposalCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProposalID(proposalID),
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return AcceptProposalCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptProposalCommand) Validate() error {
	return c.guard.Validate(ErrAcceptProposalCommandIsNotConstructed)
}

// ProposalID returns the proposal being accepted.
func (c AcceptProposalCommand) ProposalID() kernel.UUID {
	return c.proposalID
}

// OrderID returns the identifier for the materialized order.
func (c AcceptProposalCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the party issuing the command.
func (c AcceptProposalCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *AcceptProposalCommand) setProposalID(proposalID kernel.UUID) error {
	if err := proposalID.Validate(); err != nil {
		return err
	}
	c.proposalID = proposalID
	return nil
}

func (c *AcceptProposalCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AcceptProposalCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
