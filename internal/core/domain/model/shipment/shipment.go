package shipment

import (
	"errors"
	"time"

	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/errs"
)

// ErrShipmentIsNotConstructed is returned when a Shipment was not created
// through NewShipment or RestoreShipment.
var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

// Shipment tracks the delivery of one order by the carrier who won the
// exclusive claim. Each stage timestamp is written exactly once, at the
// transition that enters the stage, and never overwritten.
type Shipment struct {
	id        kernel.UUID
	orderID   kernel.UUID
	carrierID kernel.UUID
	status    Status

	assignedAt  time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time
	failedAt    *time.Time

	isConstructed bool
}

// NewShipment creates a shipment for the order claimed by the carrier.
func NewShipment(id, orderID, carrierID kernel.UUID, now time.Time) (*Shipment, error) {
	s := &Shipment{
		status:        Assigned,
		assignedAt:    now,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setOrderID(orderID),
		s.setCarrierID(carrierID),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreShipment reconstructs a shipment from persistence.
func RestoreShipment(
	id kernel.UUID,
	orderID kernel.UUID,
	carrierID kernel.UUID,
	status Status,
	assignedAt time.Time,
	pickedUpAt *time.Time,
	deliveredAt *time.Time,
	failedAt *time.Time,
) (*Shipment, error) {
	s := &Shipment{
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setOrderID(orderID),
		s.setCarrierID(carrierID),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	s.status = status
	s.assignedAt = assignedAt
	s.pickedUpAt = pickedUpAt
	s.deliveredAt = deliveredAt
	s.failedAt = failedAt
	return s, nil
}

// Validate ensures the Shipment was created through a constructor.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// OrderID returns the order being delivered.
func (s *Shipment) OrderID() kernel.UUID {
	return s.orderID
}

// CarrierID returns the carrier who claimed the shipment.
func (s *Shipment) CarrierID() kernel.UUID {
	return s.carrierID
}

// Status returns the delivery stage.
func (s *Shipment) Status() Status {
	return s.status
}

// AssignedAt returns when the claim was won.
func (s *Shipment) AssignedAt() time.Time {
	return s.assignedAt
}

// PickedUpAt returns when the goods were picked up, or nil.
func (s *Shipment) PickedUpAt() *time.Time {
	return s.pickedUpAt
}

// DeliveredAt returns when the goods were handed over, or nil.
func (s *Shipment) DeliveredAt() *time.Time {
	return s.deliveredAt
}

// FailedAt returns when delivery was abandoned, or nil.
func (s *Shipment) FailedAt() *time.Time {
	return s.failedAt
}

// MarkPickedUp records the pickup by the assigned carrier.
func (s *Shipment) MarkPickedUp(actor kernel.Actor, now time.Time) error {
	if err := s.requireCarrier(actor, "mark shipment picked up"); err != nil {
		return err
	}
	if s.status != Assigned {
		return s.stageConflict("mark picked up")
	}

	s.status = PickedUp
	at := now
	s.pickedUpAt = &at
	return nil
}

// StartTransit records departure towards the buyer.
func (s *Shipment) StartTransit(actor kernel.Actor) error {
	if err := s.requireCarrier(actor, "start shipment transit"); err != nil {
		return err
	}
	if s.status != PickedUp {
		return s.stageConflict("start transit")
	}

	s.status = InTransit
	return nil
}

// Deliver records the handoff to the buyer. Settlement follows.
func (s *Shipment) Deliver(actor kernel.Actor, now time.Time) error {
	if err := s.requireCarrier(actor, "deliver shipment"); err != nil {
		return err
	}
	if s.status != InTransit {
		return s.stageConflict("deliver")
	}

	s.status = Delivered
	at := now
	s.deliveredAt = &at
	return nil
}

// Fail abandons delivery from any live stage. The order's reservation stays
// intact; resolving it is a manual follow-up.
func (s *Shipment) Fail(actor kernel.Actor, now time.Time) error {
	if err := s.requireCarrier(actor, "fail shipment"); err != nil {
		return err
	}
	if !s.status.IsLive() {
		return s.stageConflict("fail")
	}

	s.status = Failed
	at := now
	s.failedAt = &at
	return nil
}

func (s *Shipment) requireCarrier(actor kernel.Actor, action string) error {
	if actor.Role() != kernel.RoleCarrier || !actor.Is(s.carrierID) {
		return errs.NewNotAuthorizedError(actor.ID().String(), action)
	}
	return nil
}

func (s *Shipment) stageConflict(action string) error {
	return errs.NewConflictError("shipment",
		"cannot "+action+" from status "+s.status.String())
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	s.id = id
	return nil
}

func (s *Shipment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("orderID", err)
	}
	s.orderID = orderID
	return nil
}

func (s *Shipment) setCarrierID(carrierID kernel.UUID) error {
	if err := carrierID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("carrierID", err)
	}
	s.carrierID = carrierID
	return nil
}
