package commands_test

import (
	"context"
	"time"

	"agromarket/internal/core/application/events"
	"agromarket/internal/core/application/usecases/commands"
	"agromarket/internal/core/domain/model/agreement"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/listing"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/core/domain/model/proposal"
	"agromarket/internal/core/domain/model/shipment"
	"agromarket/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockListingRepository struct{ mock.Mock }

func (m *MockListingRepository) Add(ctx context.Context, l *listing.Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}
func (m *MockListingRepository) Update(ctx context.Context, l *listing.Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}
func (m *MockListingRepository) Get(ctx context.Context, id kernel.UUID) (*listing.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listing.Listing), args.Error(1)
}
func (m *MockListingRepository) Reserve(ctx context.Context, id kernel.UUID, q kernel.Quantity) error {
	args := m.Called(ctx, id, q)
	return args.Error(0)
}
func (m *MockListingRepository) Release(ctx context.Context, id kernel.UUID, q kernel.Quantity) error {
	args := m.Called(ctx, id, q)
	return args.Error(0)
}
func (m *MockListingRepository) Settle(ctx context.Context, id kernel.UUID, q kernel.Quantity) error {
	args := m.Called(ctx, id, q)
	return args.Error(0)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockOrderRepository) TransitionStatus(ctx context.Context, id kernel.UUID, from, to order.Status) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}
func (m *MockOrderRepository) Claim(ctx context.Context, id kernel.UUID, carrierID kernel.UUID) error {
	args := m.Called(ctx, id, carrierID)
	return args.Error(0)
}

type MockProposalRepository struct{ mock.Mock }

func (m *MockProposalRepository) Add(ctx context.Context, p *proposal.Proposal) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProposalRepository) TransitionStatus(ctx context.Context, id kernel.UUID, from, to proposal.Status) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}
func (m *MockProposalRepository) Get(ctx context.Context, id kernel.UUID) (*proposal.Proposal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*proposal.Proposal), args.Error(1)
}
func (m *MockProposalRepository) GetExpiredPending(ctx context.Context, now time.Time) ([]*proposal.Proposal, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*proposal.Proposal), args.Error(1)
}

type MockAgreementRepository struct{ mock.Mock }

func (m *MockAgreementRepository) Add(ctx context.Context, a *agreement.Agreement) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAgreementRepository) Update(ctx context.Context, a *agreement.Agreement, from agreement.Status) error {
	args := m.Called(ctx, a, from)
	return args.Error(0)
}
func (m *MockAgreementRepository) Get(ctx context.Context, id kernel.UUID) (*agreement.Agreement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agreement.Agreement), args.Error(1)
}
func (m *MockAgreementRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*agreement.Agreement, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agreement.Agreement), args.Error(1)
}

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment, from shipment.Status) error {
	args := m.Called(ctx, s, from)
	return args.Error(0)
}
func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}
func (m *MockShipmentRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

// MockUoW satisfies every unit-of-work composition the handlers use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) ListingRepository() ports.ListingRepository {
	args := m.Called()
	return args.Get(0).(ports.ListingRepository)
}
func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}
func (m *MockUoW) ProposalRepository() ports.ProposalRepository {
	args := m.Called()
	return args.Get(0).(ports.ProposalRepository)
}
func (m *MockUoW) AgreementRepository() ports.AgreementRepository {
	args := m.Called()
	return args.Get(0).(ports.AgreementRepository)
}
func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

type MockListingUoWFactory struct{ mock.Mock }

func (m *MockListingUoWFactory) Create() commands.ListingUoW {
	args := m.Called()
	return args.Get(0).(commands.ListingUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockProposalUoWFactory struct{ mock.Mock }

func (m *MockProposalUoWFactory) Create() commands.ProposalUoW {
	args := m.Called()
	return args.Get(0).(commands.ProposalUoW)
}

type MockMarketUoWFactory struct{ mock.Mock }

func (m *MockMarketUoWFactory) Create() commands.MarketUoW {
	args := m.Called()
	return args.Get(0).(commands.MarketUoW)
}

type MockNegotiationUoWFactory struct{ mock.Mock }

func (m *MockNegotiationUoWFactory) Create() commands.NegotiationUoW {
	args := m.Called()
	return args.Get(0).(commands.NegotiationUoW)
}

type MockAgreementUoWFactory struct{ mock.Mock }

func (m *MockAgreementUoWFactory) Create() commands.AgreementUoW {
	args := m.Called()
	return args.Get(0).(commands.AgreementUoW)
}

type MockFulfillmentUoWFactory struct{ mock.Mock }

func (m *MockFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	args := m.Called()
	return args.Get(0).(commands.FulfillmentUoW)
}

type MockSettlementUoWFactory struct{ mock.Mock }

func (m *MockSettlementUoWFactory) Create() commands.SettlementUoW {
	args := m.Called()
	return args.Get(0).(commands.SettlementUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockEventPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
