// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, conditional persistence, and post-commit events.
package commands

import (
	"context"
	"log/slog"

	"agromarket/internal/core/application/events"
	"agromarket/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Each handler depends on the narrowest composition that covers
// the aggregates it touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ListingRepoFactory provides access to the listing repository within a
	// transaction.
	ListingRepoFactory interface {
		ListingRepository() ports.ListingRepository
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ProposalRepoFactory provides access to the proposal repository within a
	// transaction.
	ProposalRepoFactory interface {
		ProposalRepository() ports.ProposalRepository
	}

	// AgreementRepoFactory provides access to the agreement repository within
	// a transaction.
	AgreementRepoFactory interface {
		AgreementRepository() ports.AgreementRepository
	}

	// ShipmentRepoFactory provides access to the shipment repository within a
	// transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// ListingUoW manages transactions for listing-only operations.
	ListingUoW interface {
		TxManager
		ListingRepoFactory
	}

	// ListingUoWFactory creates new listing unit of work instances.
	ListingUoWFactory interface {
		Create() ListingUoW
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// ProposalUoW manages transactions for proposal-only operations.
	ProposalUoW interface {
		TxManager
		ProposalRepoFactory
	}

	// ProposalUoWFactory creates new proposal unit of work instances.
	ProposalUoWFactory interface {
		Create() ProposalUoW
	}

	// MarketUoW coordinates the listing ledger with order writes. Reserve
	// and release always commit or roll back together with the order change
	// they compensate for.
	MarketUoW interface {
		TxManager
		ListingRepoFactory
		OrderRepoFactory
	}

	// MarketUoWFactory creates new market unit of work instances.
	MarketUoWFactory interface {
		Create() MarketUoW
	}

	// NegotiationUoW coordinates proposals with the listing ledger and order
	// materialization on acceptance.
	NegotiationUoW interface {
		TxManager
		ListingRepoFactory
		OrderRepoFactory
		ProposalRepoFactory
	}

	// NegotiationUoWFactory creates new negotiation unit of work instances.
	NegotiationUoWFactory interface {
		Create() NegotiationUoW
	}

	// AgreementUoW coordinates agreement signatures with the order they are
	// attached to.
	AgreementUoW interface {
		TxManager
		OrderRepoFactory
		AgreementRepoFactory
	}

	// AgreementUoWFactory creates new agreement unit of work instances.
	AgreementUoWFactory interface {
		Create() AgreementUoW
	}

	// FulfillmentUoW coordinates the carrier claim with shipment creation.
	FulfillmentUoW interface {
		TxManager
		OrderRepoFactory
		ShipmentRepoFactory
	}

	// FulfillmentUoWFactory creates new fulfillment unit of work instances.
	FulfillmentUoWFactory interface {
		Create() FulfillmentUoW
	}

	// SettlementUoW coordinates shipment progress with order completion and
	// the listing ledger settle on delivery.
	SettlementUoW interface {
		TxManager
		ListingRepoFactory
		OrderRepoFactory
		ShipmentRepoFactory
	}

	// SettlementUoWFactory creates new settlement unit of work instances.
	SettlementUoWFactory interface {
		Create() SettlementUoW
	}
)

// publishEvent delivers an integration event after a successful commit.
// Publishing is best effort: a broker failure is logged and never surfaced
// to the caller, because the state change is already durable.
func publishEvent(ctx context.Context, publisher ports.EventPublisher, logger *slog.Logger, event events.DomainEvent) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.WarnContext(ctx, "failed to publish event",
			slog.String("event_type", event.EventType()),
			slog.Any("error", err))
	}
}
