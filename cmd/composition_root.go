package cmd

import (
	"log/slog"

	"agromarket/internal/adapters/out/postgres"
	"agromarket/internal/core/application/usecases/commands"
	"agromarket/internal/core/application/usecases/queries"
	"agromarket/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires repositories, unit of work factories, and handlers.
// Handlers are created per request through the Create* methods; they share
// the database pool, the publisher, and the logger.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, publisher ports.EventPublisher, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateListingCommandHandler() commands.CreateListingCommandHandler {
	var f commands.ListingUoWFactory = FuncListingUoWFactory(func() commands.ListingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateListingCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.MarketUoWFactory = FuncMarketUoWFactory(func() commands.MarketUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptOrderCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateRejectOrderCommandHandler() commands.RejectOrderCommandHandler {
	var f commands.MarketUoWFactory = FuncMarketUoWFactory(func() commands.MarketUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRejectOrderCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.MarketUoWFactory = FuncMarketUoWFactory(func() commands.MarketUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateMarkOrderReadyCommandHandler() commands.MarkOrderReadyCommandHandler {
	var f commands.AgreementUoWFactory = FuncAgreementUoWFactory(func() commands.AgreementUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkOrderReadyCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateSubmitProposalCommandHandler() commands.SubmitProposalCommandHandler {
	var f commands.NegotiationUoWFactory = FuncNegotiationUoWFactory(func() commands.NegotiationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitProposalCommandHandler(f)
}

func (c *CompositionRoot) CreateAcceptProposalCommandHandler() commands.AcceptProposalCommandHandler {
	var f commands.NegotiationUoWFactory = FuncNegotiationUoWFactory(func() commands.NegotiationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptProposalCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateRejectProposalCommandHandler() commands.RejectProposalCommandHandler {
	var f commands.ProposalUoWFactory = FuncProposalUoWFactory(func() commands.ProposalUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRejectProposalCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateWithdrawProposalCommandHandler() commands.WithdrawProposalCommandHandler {
	var f commands.ProposalUoWFactory = FuncProposalUoWFactory(func() commands.ProposalUoW {
		return c.uowFactory.Create()
	})
	return commands.NewWithdrawProposalCommandHandler(f)
}

func (c *CompositionRoot) CreateExpireProposalsCommandHandler() commands.ExpireProposalsCommandHandler {
	var f commands.ProposalUoWFactory = FuncProposalUoWFactory(func() commands.ProposalUoW {
		return c.uowFactory.Create()
	})
	return commands.NewExpireProposalsCommandHandler(f)
}

func (c *CompositionRoot) CreateSignAgreementAsSellerCommandHandler() commands.SignAgreementAsSellerCommandHandler {
	var f commands.AgreementUoWFactory = FuncAgreementUoWFactory(func() commands.AgreementUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSignAgreementAsSellerCommandHandler(f)
}

func (c *CompositionRoot) CreateSignAgreementAsBuyerCommandHandler() commands.SignAgreementAsBuyerCommandHandler {
	var f commands.AgreementUoWFactory = FuncAgreementUoWFactory(func() commands.AgreementUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSignAgreementAsBuyerCommandHandler(f)
}

func (c *CompositionRoot) CreateCancelAgreementCommandHandler() commands.CancelAgreementCommandHandler {
	var f commands.AgreementUoWFactory = FuncAgreementUoWFactory(func() commands.AgreementUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelAgreementCommandHandler(f)
}

func (c *CompositionRoot) CreateClaimShipmentCommandHandler() commands.ClaimShipmentCommandHandler {
	var f commands.FulfillmentUoWFactory = FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewClaimShipmentCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAdvanceShipmentCommandHandler() commands.AdvanceShipmentCommandHandler {
	var f commands.SettlementUoWFactory = FuncSettlementUoWFactory(func() commands.SettlementUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceShipmentCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateGetAvailableListingsQueryHandler() queries.GetAvailableListingsQueryHandler {
	return queries.NewGetAvailableListingsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetParticipantOrdersQueryHandler() queries.GetParticipantOrdersQueryHandler {
	return queries.NewGetParticipantOrdersQueryHandler(c.gormDB)
}

type FuncListingUoWFactory func() commands.ListingUoW

func (f FuncListingUoWFactory) Create() commands.ListingUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncProposalUoWFactory func() commands.ProposalUoW

func (f FuncProposalUoWFactory) Create() commands.ProposalUoW {
	return f()
}

type FuncMarketUoWFactory func() commands.MarketUoW

func (f FuncMarketUoWFactory) Create() commands.MarketUoW {
	return f()
}

type FuncNegotiationUoWFactory func() commands.NegotiationUoW

func (f FuncNegotiationUoWFactory) Create() commands.NegotiationUoW {
	return f()
}

type FuncAgreementUoWFactory func() commands.AgreementUoW

func (f FuncAgreementUoWFactory) Create() commands.AgreementUoW {
	return f()
}

type FuncFulfillmentUoWFactory func() commands.FulfillmentUoW

func (f FuncFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	return f()
}

type FuncSettlementUoWFactory func() commands.SettlementUoW

func (f FuncSettlementUoWFactory) Create() commands.SettlementUoW {
	return f()
}
