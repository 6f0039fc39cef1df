package commands

import (
	"context"

	"agromarket/internal/pkg/errs"
)

// CancelAgreementCommandHandler cancels an agreement on behalf of either
// signing party. Cancellation is only legal while the order is still in its
// negotiation phase; once the goods are marked ready the agreement is
// binding.
type CancelAgreementCommandHandler struct {
	uowFactory AgreementUoWFactory
}

// NewCancelAgreementCommandHandler creates a handler for agreement
// cancellation.
func NewCancelAgreementCommandHandler(uowFactory AgreementUoWFactory) CancelAgreementCommandHandler {
	return CancelAgreementCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the agreement cancellation command.
func (h *CancelAgreementCommandHandler) Handle(ctx context.Context, cmd CancelAgreementCommand) error {
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

	ord, err := uow.OrderRepository().Get(ctx, aggregate.OrderID())
	if err != nil {
		return err
	}
	if !ord.Status().IsPreDispatch() {
		return errs.NewConflictError("agreement",
			"cannot cancel once the order is dispatched, order status is "+ord.Status().String())
	}

	oldStatus := aggregate.Status()
	if err = aggregate.Cancel(cmd.Actor()); err != nil {
		return err
	}

	if err = agreementRepo.Update(ctx, aggregate, oldStatus); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
