package commands

import (
	"context"
	"time"

	"agromarket/internal/core/domain/model/agreement"
	"agromarket/internal/core/domain/model/order"
	"agromarket/internal/pkg/errs"
)

// SignAgreementAsSellerCommandHandler creates the purchase agreement for an
// accepted order and records the seller's signature, which fixes the
// advance/final split from the order total. The order must still be in
// Accepted status; a second agreement for the same order fails on insert.
type SignAgreementAsSellerCommandHandler struct {
	uowFactory AgreementUoWFactory
}

// NewSignAgreementAsSellerCommandHandler creates a handler for the seller
// signature.
func NewSignAgreementAsSellerCommandHandler(uowFactory AgreementUoWFactory) SignAgreementAsSellerCommandHandler {
	return SignAgreementAsSellerCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the seller signature command.
func (h *SignAgreementAsSellerCommandHandler) Handle(ctx context.Context, cmd SignAgreementAsSellerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ord, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if ord.Status() != order.Accepted {
		return errs.NewConflictError("order",
			"agreement requires an accepted order, status is "+ord.Status().String())
	}

	aggregate, err := agreement.NewAgreement(
		cmd.AgreementID(), ord.ID(), ord.SellerID(), ord.BuyerID(), ord.TotalPrice(),
	)
	if err != nil {
		return err
	}
	if err = aggregate.SignAsSeller(cmd.Actor(), cmd.TermsAccepted(), time.Now().UTC()); err != nil {
		return err
	}

	if err = uow.AgreementRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
