package commands_test

import (
	"testing"

	"agromarket/internal/core/application/usecases/commands"
	"agromarket/internal/core/domain/model/agreement"
	"agromarket/internal/core/domain/model/kernel"
	"agromarket/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelAgreementCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	f := newMarketFixture(t)
	ord := f.newPendingOrder(t)
	require.NoError(t, ord.Accept(f.seller))

	agr, err := agreement.NewAgreement(
		kernel.NewUUID(), ord.ID(), f.seller.ID(), f.buyer.ID(), ord.TotalPrice(),
	)
	require.NoError(t, err)

	cmd, err := commands.NewCancelAgreementCommand(agr.ID(), f.buyer)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	agreementRepo := new(MockAgreementRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AgreementRepository").Return(agreementRepo).Once(),
		agreementRepo.On("Get", mock.Anything, agr.ID()).Return(agr, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		agreementRepo.On("Update", mock.Anything, agr, agreement.PendingSeller).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAgreementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelAgreementCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, agreement.Cancelled, agr.Status())
	agreementRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCancelAgreementCommandHandler_Handle_DispatchedOrderIsBinding(t *testing.T) {
	ctx := t.Context()
	f := newMarketFixture(t)
	ord := f.newPendingOrder(t)
	require.NoError(t, ord.Accept(f.seller))
	require.NoError(t, ord.MarkAdvancePaid())
	require.NoError(t, ord.MarkReady(f.seller))

	agr, err := agreement.NewAgreement(
		kernel.NewUUID(), ord.ID(), f.seller.ID(), f.buyer.ID(), ord.TotalPrice(),
	)
	require.NoError(t, err)

	cmd, err := commands.NewCancelAgreementCommand(agr.ID(), f.seller)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	agreementRepo := new(MockAgreementRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AgreementRepository").Return(agreementRepo).Once(),
		agreementRepo.On("Get", mock.Anything, agr.ID()).Return(agr, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAgreementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelAgreementCommandHandler(factory)
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrConflict)
	assert.Equal(t, agreement.PendingSeller, agr.Status())
	agreementRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestCancelAgreementCommandHandler_Handle_StrangerNotAllowed(t *testing.T) {
	ctx := t.Context()
	f := newMarketFixture(t)
	ord := f.newPendingOrder(t)

	agr, err := agreement.NewAgreement(
		kernel.NewUUID(), ord.ID(), f.seller.ID(), f.buyer.ID(), ord.TotalPrice(),
	)
	require.NoError(t, err)

	stranger := newMarketFixture(t).buyer
	cmd, err := commands.NewCancelAgreementCommand(agr.ID(), stranger)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	agreementRepo := new(MockAgreementRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AgreementRepository").Return(agreementRepo).Once(),
		agreementRepo.On("Get", mock.Anything, agr.ID()).Return(agr, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAgreementUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelAgreementCommandHandler(factory)
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrNotAuthorized)
	agreementRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}
