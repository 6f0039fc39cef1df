// Package http exposes the marketplace use cases over a REST API.
// The acting subject arrives in the X-Subject-Id and X-Subject-Role headers;
// every mutating route builds a kernel.Actor from them before constructing
// the command, so authorization failures surface before any transaction
// opens.
package http

import (
	"errors"
	"net/http"
	"time"

	"agromarket/internal/core/application/usecases/commands"
	"agromarket/internal/core/application/usecases/queries"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/core/domain/model/listing"
	"agromarket/internal/core/domain/model/shipment"
	"agromarket/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createListingHandler        commands.CreateListingCommandHandler
	createOrderHandler          commands.CreateOrderCommandHandler
	acceptOrderHandler          commands.AcceptOrderCommandHandler
	rejectOrderHandler          commands.RejectOrderCommandHandler
	cancelOrderHandler          commands.CancelOrderCommandHandler
	markOrderReadyHandler       commands.MarkOrderReadyCommandHandler
	submitProposalHandler       commands.SubmitProposalCommandHandler
	acceptProposalHandler       commands.AcceptProposalCommandHandler
	rejectProposalHandler       commands.RejectProposalCommandHandler
	withdrawProposalHandler     commands.WithdrawProposalCommandHandler
	signAgreementSellerHandler  commands.SignAgreementAsSellerCommandHandler
	signAgreementBuyerHandler   commands.SignAgreementAsBuyerCommandHandler
	cancelAgreementHandler      commands.CancelAgreementCommandHandler
	claimShipmentHandler        commands.ClaimShipmentCommandHandler
	advanceShipmentHandler      commands.AdvanceShipmentCommandHandler
	availableListingsHandler    queries.GetAvailableListingsQueryHandler
	participantOrdersHandler    queries.GetParticipantOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	createListingHandler commands.CreateListingCommandHandler,
	createOrderHandler commands.CreateOrderCommandHandler,
	acceptOrderHandler commands.AcceptOrderCommandHandler,
	rejectOrderHandler commands.RejectOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	markOrderReadyHandler commands.MarkOrderReadyCommandHandler,
	submitProposalHandler commands.SubmitProposalCommandHandler,
	acceptProposalHandler commands.AcceptProposalCommandHandler,
	rejectProposalHandler commands.RejectProposalCommandHandler,
	withdrawProposalHandler commands.WithdrawProposalCommandHandler,
	signAgreementSellerHandler commands.SignAgreementAsSellerCommandHandler,
	signAgreementBuyerHandler commands.SignAgreementAsBuyerCommandHandler,
	cancelAgreementHandler commands.CancelAgreementCommandHandler,
	claimShipmentHandler commands.ClaimShipmentCommandHandler,
	advanceShipmentHandler commands.AdvanceShipmentCommandHandler,
	availableListingsHandler queries.GetAvailableListingsQueryHandler,
	participantOrdersHandler queries.GetParticipantOrdersQueryHandler,
) *Server {
	return &Server{
		createListingHandler:       createListingHandler,
		createOrderHandler:         createOrderHandler,
		acceptOrderHandler:         acceptOrderHandler,
		rejectOrderHandler:         rejectOrderHandler,
		cancelOrderHandler:         cancelOrderHandler,
		markOrderReadyHandler:      markOrderReadyHandler,
		submitProposalHandler:      submitProposalHandler,
		acceptProposalHandler:      acceptProposalHandler,
		rejectProposalHandler:      rejectProposalHandler,
		withdrawProposalHandler:    withdrawProposalHandler,
		signAgreementSellerHandler: signAgreementSellerHandler,
		signAgreementBuyerHandler:  signAgreementBuyerHandler,
		cancelAgreementHandler:     cancelAgreementHandler,
		claimShipmentHandler:       claimShipmentHandler,
		advanceShipmentHandler:     advanceShipmentHandler,
		availableListingsHandler:   availableListingsHandler,
		participantOrdersHandler:   participantOrdersHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.GET("/listings", s.GetAvailableListings)
	api.POST("/listings", s.CreateListing)

	api.GET("/orders", s.GetParticipantOrders)
	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:orderID/accept", s.AcceptOrder)
	api.POST("/orders/:orderID/reject", s.RejectOrder)
	api.POST("/orders/:orderID/cancel", s.CancelOrder)
	api.POST("/orders/:orderID/ready", s.MarkOrderReady)
	api.POST("/orders/:orderID/agreement", s.SignAgreementAsSeller)

	api.POST("/proposals", s.SubmitProposal)
	api.POST("/proposals/:proposalID/accept", s.AcceptProposal)
	api.POST("/proposals/:proposalID/reject", s.RejectProposal)
	api.POST("/proposals/:proposalID/withdraw", s.WithdrawProposal)

	api.POST("/agreements/:agreementID/sign", s.SignAgreementAsBuyer)
	api.POST("/agreements/:agreementID/cancel", s.CancelAgreement)

	api.POST("/shipments", s.ClaimShipment)
	api.POST("/shipments/:shipmentID/advance", s.AdvanceShipment)
}

// Error is the uniform error payload.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreatedResponse returns the server-generated identifier of a new resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

// NewListingRequest is the payload for creating a listing.
type NewListingRequest struct {
	Crop          string `json:"crop"`
	Grade         string `json:"grade"`
	PickupAddress string `json:"pickup_address"`
	QuantityKg    int64  `json:"quantity_kg"`
	PricePerKg    string `json:"price_per_kg"`
}

// NewOrderRequest is the payload for placing an order against a listing.
type NewOrderRequest struct {
	ListingID  string `json:"listing_id"`
	QuantityKg int64  `json:"quantity_kg"`
}

// NewProposalRequest is the payload for submitting a price proposal.
type NewProposalRequest struct {
	ListingID  string    `json:"listing_id"`
	QuantityKg int64     `json:"quantity_kg"`
	PricePerKg string    `json:"price_per_kg"`
	Message    string    `json:"message"`
	ValidUntil time.Time `json:"valid_until"`
}

// AcceptProposalRequest carries the identifier the materialized order will
// be created under.
type AcceptProposalRequest struct {
	OrderID string `json:"order_id"`
}

// SignAgreementRequest is the payload for either signature.
type SignAgreementRequest struct {
	TermsAccepted bool `json:"terms_accepted"`
}

// NewShipmentRequest is the payload for a carrier claiming an order.
type NewShipmentRequest struct {
	OrderID string `json:"order_id"`
}

// AdvanceShipmentRequest names the delivery stage the carrier reports.
type AdvanceShipmentRequest struct {
	Target string `json:"target"`
}

// GetAvailableListings handles GET /api/v1/listings.
func (s *Server) GetAvailableListings(ctx echo.Context) error {
	query := queries.NewGetAvailableListingsQuery()

	listings, err := s.availableListingsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, listings)
}

// CreateListing handles POST /api/v1/listings.
func (s *Server) CreateListing(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req NewListingRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	quantity, err := kernel.QuantityFromKilograms(req.QuantityKg)
	if err != nil {
		return writeError(ctx, err)
	}
	pricePerKg, err := kernel.NewMoneyFromString(req.PricePerKg)
	if err != nil {
		return writeError(ctx, err)
	}

	listingID := kernel.NewUUID()
	cmd, err := commands.NewCreateListingCommand(
		listingID, actor, req.Crop, listing.Grade(req.Grade), req.PickupAddress, quantity, pricePerKg)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.createListingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: listingID.String()})
}

// GetParticipantOrders handles GET /api/v1/orders. The subject sees every
// non-completed order it participates in, whatever the role.
func (s *Server) GetParticipantOrders(ctx echo.Context) error {
	subjectID, err := kernel.UUIDFromString(ctx.Request().Header.Get("X-Subject-Id"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetParticipantOrdersQuery(subjectID)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.participantOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orders)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req NewOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	listingID, err := kernel.UUIDFromString(req.ListingID)
	if err != nil {
		return writeError(ctx, err)
	}
	quantity, err := kernel.QuantityFromKilograms(req.QuantityKg)
	if err != nil {
		return writeError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, listingID, actor, quantity)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: orderID.String()})
}

// AcceptOrder handles POST /api/v1/orders/:orderID/accept.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	actor, orderID, err := actorAndID(ctx, "orderID")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.acceptOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RejectOrder handles POST /api/v1/orders/:orderID/reject.
func (s *Server) RejectOrder(ctx echo.Context) error {
	actor, orderID, err := actorAndID(ctx, "orderID")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewRejectOrderCommand(orderID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.rejectOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:orderID/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	actor, orderID, err := actorAndID(ctx, "orderID")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkOrderReady handles POST /api/v1/orders/:orderID/ready.
func (s *Server) MarkOrderReady(ctx echo.Context) error {
	actor, orderID, err := actorAndID(ctx, "orderID")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewMarkOrderReadyCommand(orderID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.markOrderReadyHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SubmitProposal handles POST /api/v1/proposals.
func (s *Server) SubmitProposal(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req NewProposalRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	listingID, err := kernel.UUIDFromString(req.ListingID)
	if err != nil {
		return writeError(ctx, err)
	}
	quantity, err := kernel.QuantityFromKilograms(req.QuantityKg)
	if err != nil {
		return writeError(ctx, err)
	}
	pricePerKg, err := kernel.NewMoneyFromString(req.PricePerKg)
	if err != nil {
		return writeError(ctx, err)
	}

	proposalID := kernel.NewUUID()
	cmd, err := commands.NewSubmitProposalCommand(
		proposalID, listingID, actor, quantity, pricePerKg, req.Message, req.ValidUntil)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.submitProposalHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: proposalID.String()})
}

// AcceptProposal handles POST /api/v1/proposals/:proposalID/accept.
func (s *Server) AcceptProposal(ctx echo.Context) error {
	actor, proposalID, err := actorAndID(ctx, "proposalID")
	if err != nil {
		return writeError(ctx, err)
	}

	var req AcceptProposalRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderID := kernel.NewUUID()
	if req.OrderID != "" {
		orderID, err = kernel.UUIDFromString(req.OrderID)
		if err != nil {
			return writeError(ctx, err)
		}
	}

	cmd, err := commands.NewAcceptProposalCommand(proposalID, orderID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.acceptProposalHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: orderID.String()})
}

// RejectProposal handles POST /api/v1/proposals/:proposalID/reject.
func (s *Server) RejectProposal(ctx echo.Context) error {
	actor, proposalID, err := actorAndID(ctx, "proposalID")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewRejectProposalCommand(proposalID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.rejectProposalHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// WithdrawProposal handles POST /api/v1/proposals/:proposalID/withdraw.
func (s *Server) WithdrawProposal(ctx echo.Context) error {
	actor, proposalID, err := actorAndID(ctx, "proposalID")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewWithdrawProposalCommand(proposalID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.withdrawProposalHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SignAgreementAsSeller handles POST /api/v1/orders/:orderID/agreement.
// Creates the agreement for the order and records the seller's signature in
// one step.
func (s *Server) SignAgreementAsSeller(ctx echo.Context) error {
	actor, orderID, err := actorAndID(ctx, "orderID")
	if err != nil {
		return writeError(ctx, err)
	}

	var req SignAgreementRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	agreementID := kernel.NewUUID()
	cmd, err := commands.NewSignAgreementAsSellerCommand(agreementID, orderID, actor, req.TermsAccepted)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.signAgreementSellerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: agreementID.String()})
}

// SignAgreementAsBuyer handles POST /api/v1/agreements/:agreementID/sign.
func (s *Server) SignAgreementAsBuyer(ctx echo.Context) error {
	actor, agreementID, err := actorAndID(ctx, "agreementID")
	if err != nil {
		return writeError(ctx, err)
	}

	var req SignAgreementRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewSignAgreementAsBuyerCommand(agreementID, actor, req.TermsAccepted)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.signAgreementBuyerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelAgreement handles POST /api/v1/agreements/:agreementID/cancel.
func (s *Server) CancelAgreement(ctx echo.Context) error {
	actor, agreementID, err := actorAndID(ctx, "agreementID")
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCancelAgreementCommand(agreementID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.cancelAgreementHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ClaimShipment handles POST /api/v1/shipments. The claim is exclusive: the
// first carrier to hit this route for a ready order wins, everyone else gets
// a conflict.
func (s *Server) ClaimShipment(ctx echo.Context) error {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var req NewShipmentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return writeError(ctx, err)
	}

	shipmentID := kernel.NewUUID()
	cmd, err := commands.NewClaimShipmentCommand(shipmentID, orderID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.claimShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: shipmentID.String()})
}

// AdvanceShipment handles POST /api/v1/shipments/:shipmentID/advance.
func (s *Server) AdvanceShipment(ctx echo.Context) error {
	actor, shipmentID, err := actorAndID(ctx, "shipmentID")
	if err != nil {
		return writeError(ctx, err)
	}

	var req AdvanceShipmentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	target, err := parseShipmentTarget(req.Target)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAdvanceShipmentCommand(shipmentID, actor, target)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.advanceShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// actorFromHeaders builds the acting subject from the identity headers.
func actorFromHeaders(ctx echo.Context) (kernel.Actor, error) {
	subjectID, err := kernel.UUIDFromString(ctx.Request().Header.Get("X-Subject-Id"))
	if err != nil {
		return kernel.Actor{}, err
	}

	return kernel.NewActor(subjectID, kernel.Role(ctx.Request().Header.Get("X-Subject-Role")))
}

// actorAndID is the common prologue of routes keyed by a path parameter.
func actorAndID(ctx echo.Context, param string) (kernel.Actor, kernel.UUID, error) {
	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return kernel.Actor{}, kernel.UUID{}, err
	}

	id, err := kernel.UUIDFromString(ctx.Param(param))
	if err != nil {
		return kernel.Actor{}, kernel.UUID{}, err
	}

	return actor, id, nil
}

// parseShipmentTarget maps the wire stage name to a shipment status.
func parseShipmentTarget(target string) (shipment.Status, error) {
	switch target {
	case "picked_up":
		return shipment.PickedUp, nil
	case "in_transit":
		return shipment.InTransit, nil
	case "delivered":
		return shipment.Delivered, nil
	case "failed":
		return shipment.Failed, nil
	default:
		return shipment.Unknown, errs.NewValueIsInvalidError("target")
	}
}

// writeError maps application errors onto HTTP status codes.
func writeError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrNotAuthorized):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrConflict):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}
