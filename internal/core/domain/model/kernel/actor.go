package kernel

import (
	"fmt"

	"agromarket/internal/pkg/errs"
)

// Role names the resolved role of an acting subject. Identity issuance is
// external; the core trusts the resolved pairing and enforces ownership and
// role preconditions itself.
type Role string

const (
	// RoleSeller owns listings and decides on orders and proposals against them.
	RoleSeller Role = "seller"
	// RoleBuyer places orders and submits proposals.
	RoleBuyer Role = "buyer"
	// RoleCarrier claims ready orders and advances their delivery.
	RoleCarrier Role = "carrier"
)

// Validate checks the role is one of the known values.
func (r Role) Validate() error {
	switch r {
	case RoleSeller, RoleBuyer, RoleCarrier:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%q is not a known role", r))
	}
}

// Actor is the explicit capability token passed into every core operation:
// a resolved subject identifier paired with its role. It replaces any notion
// of an ambient current user; a handler only ever trusts the actor it was
// handed for this one call.
type Actor struct {
	id   UUID
	role Role
}

// NewActor creates an actor from a resolved subject and role.
func NewActor(id UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

// ID returns the subject identifier.
func (a Actor) ID() UUID {
	return a.id
}

// Role returns the resolved role.
func (a Actor) Role() Role {
	return a.role
}

// Is reports whether the actor is the given subject.
func (a Actor) Is(id UUID) bool {
	return a.id.IsEqual(id)
}

// Validate checks the actor carries a constructed subject and a known role.
func (a Actor) Validate() error {
	if err := a.id.Validate(); err != nil {
		return err
	}
	return a.role.Validate()
}
