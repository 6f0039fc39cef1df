// Package events defines the integration events published after a command
// commits. Consumers receive entity snapshots, never references into the
// domain model.
package events

import "time"

// DomainEvent is implemented by every published event.
type DomainEvent interface {
	// EventType returns the routing name of the event, e.g. "order.created".
	EventType() string
}

// OrderCreated is published when a buyer's order wins its reservation.
type OrderCreated struct {
	OrderID    string    `json:"order_id"`
	ListingID  string    `json:"listing_id"`
	SellerID   string    `json:"seller_id"`
	BuyerID    string    `json:"buyer_id"`
	QuantityKg int64     `json:"quantity_kg"`
	TotalPrice string    `json:"total_price"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (OrderCreated) EventType() string { return "order.created" }

// OrderStatusChanged is published on every order lifecycle transition.
type OrderStatusChanged struct {
	OrderID    string    `json:"order_id"`
	ListingID  string    `json:"listing_id"`
	OldStatus  string    `json:"old_status"`
	NewStatus  string    `json:"new_status"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (OrderStatusChanged) EventType() string { return "order.status_changed" }

// ProposalDecided is published when a proposal leaves the Pending state.
type ProposalDecided struct {
	ProposalID string    `json:"proposal_id"`
	ListingID  string    `json:"listing_id"`
	SellerID   string    `json:"seller_id"`
	BuyerID    string    `json:"buyer_id"`
	Decision   string    `json:"decision"`
	OrderID    string    `json:"order_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (ProposalDecided) EventType() string { return "proposal.decided" }

// DeliveryStatusChanged is published on every shipment stage transition.
type DeliveryStatusChanged struct {
	ShipmentID string    `json:"shipment_id"`
	OrderID    string    `json:"order_id"`
	CarrierID  string    `json:"carrier_id"`
	OldStatus  string    `json:"old_status"`
	NewStatus  string    `json:"new_status"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (DeliveryStatusChanged) EventType() string { return "delivery.status_changed" }
