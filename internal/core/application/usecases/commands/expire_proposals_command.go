package commands

import (
	"errors"
	"time"

	"agromarket/internal/pkg/errs"
	"agromarket/internal/pkg/guard"
)

var ErrExpireProposalsCommandIsNotConstructed = errors.New(
	"ExpireProposalsCommand must be created via NewExpireProposalsCommand constructor",
)

// ExpireProposalsCommand represents the periodic sweep that moves pending
// proposals past their validity deadline to Expired. Issued by the job
// scheduler, not by a marketplace participant.
type ExpireProposalsCommand struct { //nolint:recvcheck //using for validation
	now time.Time

	guard guard.ConstructorGuard
}

// NewExpireProposalsCommand creates a sweep command for the given instant.
func NewExpireProposalsCommand(now time.Time) (ExpireProposalsCommand, error) {
	cmd := ExpireProposalsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if now.IsZero() {
		return ExpireProposalsCommand{}, errs.NewValueIsRequiredError("now")
	}
	cmd.now = now

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpireProposalsCommand) Validate() error {
	return c.guard.Validate(ErrExpireProposalsCommandIsNotConstructed)
}

// Now returns the sweep instant deadlines are compared against.
func (c ExpireProposalsCommand) Now() time.Time {
	return c.now
}
