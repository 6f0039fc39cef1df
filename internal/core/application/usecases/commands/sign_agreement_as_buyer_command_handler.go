package commands

import (
	"context"
	"time"
)

// SignAgreementAsBuyerCommandHandler records the buyer's countersignature,
// completing the agreement and marking the order's advance payment as made
// in the same transaction.
type SignAgreementAsBuyerCommandHandler struct {
	uowFactory AgreementUoWFactory
}

// NewSignAgreementAsBuyerCommandHandler creates a handler for the buyer
// countersignature.
func NewSignAgreementAsBuyerCommandHandler(uowFactory AgreementUoWFactory) SignAgreementAsBuyerCommandHandler {
	return SignAgreementAsBuyerCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the buyer countersignature command.
func (h *SignAgreementAsBuyerCommandHandler) Handle(ctx context.Context, cmd SignAgreementAsBuyerCommand) error {
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

	agreementRepo := uow.AgreementRepository()
	aggregate, err := agreementRepo.Get(ctx, cmd.AgreementID())
	if err != nil {
		return err
	}
	oldStatus := aggregate.Status()
	if err = aggregate.SignAsBuyer(cmd.Actor(), cmd.TermsAccepted(), time.Now().UTC()); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	ord, err := orderRepo.Get(ctx, aggregate.OrderID())
	if err != nil {
		return err
	}
	if err = ord.MarkAdvancePaid(); err != nil {
		return err
	}

	if err = agreementRepo.Update(ctx, aggregate, oldStatus); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
