//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"store-fulfillment/internal/domain/delivery"
	"store-fulfillment/internal/domain/inventory"
	"store-fulfillment/internal/domain/order"
	"store-fulfillment/internal/domain/payment"
	"store-fulfillment/internal/domain/user"
	"store-fulfillment/internal/pkg/errs"
	"store-fulfillment/internal/usecase/commands"
	"store-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	errBankDown     = errs.Classify(errors.New("bank: status 503"), errs.ErrExternalService)
	errDeliveryDown = errs.Classify(errors.New("delivery: status 503"), errs.ErrExternalService)
)

func TestCreateOrder(t *testing.T) {
	t.Run("reserves stock and prices the order", func(t *testing.T) {
		f := newStoreFixture(t, 5, 8)

		o, err := f.saga.CreateOrder(context.Background(), f.userID, f.productID, 10)

		require.NoError(t, err)
		assert.Equal(t, order.StatusPending, o.Status())
		assert.Equal(t, delivery.StatusEmpty, o.DeliveryStatus())
		assert.Equal(t, unitPrice*10, o.Amount())
		assert.Equal(t, []int{3, 0}, f.lotQuantities())

		total := 0
		for _, r := range f.records(t, o.ID()) {
			total += r.Quantity()
			assert.Equal(t, inventory.RecordDispatched, r.Status())
		}
		assert.Equal(t, 10, total)
	})

	t.Run("insufficient stock persists nothing", func(t *testing.T) {
		f := newStoreFixture(t, 5)

		_, err := f.saga.CreateOrder(context.Background(), f.userID, f.productID, 6)

		assert.ErrorIs(t, err, inventory.ErrInsufficientStock)
		assert.True(t, errs.IsBusinessRule(err))
		assert.Equal(t, []int{5}, f.lotQuantities())
	})

	t.Run("validation and lookups", func(t *testing.T) {
		f := newStoreFixture(t, 5)
		ctx := context.Background()

		_, err := f.saga.CreateOrder(ctx, f.userID, f.productID, 0)
		assert.True(t, errs.IsValidation(err))

		_, err = f.saga.CreateOrder(ctx, f.userID, uuid.New(), 1)
		assert.ErrorIs(t, err, shared.ErrProductNotFound)

		_, err = f.saga.CreateOrder(ctx, uuid.New(), f.productID, 1)
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func TestPay_Success(t *testing.T) {
	f := newStoreFixture(t, 10)
	ctx := context.Background()
	o, err := f.saga.CreateOrder(ctx, f.userID, f.productID, 4)
	require.NoError(t, err)

	gomock.InOrder(
		f.bank.EXPECT().Transfer(gomock.Any(), customerAcct, storeAccount, unitPrice*4).Return(int64(9001), nil),
		f.deliverer.EXPECT().RequestDelivery(gomock.Any(), commands.DeliveryRequest{
			OrderID:  o.ID(),
			Quantity: 4,
			Address:  "1 George St",
			Email:    "buyer@example.com",
		}).Return(nil),
	)

	p, err := f.saga.Pay(ctx, f.actor, commands.PayRequest{OrderID: o.ID(), From: customerAcct, Address: "1 George St"})

	require.NoError(t, err)
	assert.Equal(t, payment.StatusPaid, p.Status())
	assert.Equal(t, int64(9001), p.TransferID())
	assert.Equal(t, customerAcct, p.From())

	stored := f.loadOrder(t, o.ID())
	assert.Equal(t, order.StatusProcessing, stored.Status())
	assert.Equal(t, delivery.StatusSetup, stored.DeliveryStatus())
	assert.NotNil(t, f.findPayment(t, o.ID()))
}

func TestPay_DeliveryRequestFailureCompensates(t *testing.T) {
	f := newStoreFixture(t, 4)
	ctx := context.Background()
	o, err := f.saga.CreateOrder(ctx, f.userID, f.productID, 4)
	require.NoError(t, err)

	gomock.InOrder(
		f.bank.EXPECT().Transfer(gomock.Any(), customerAcct, storeAccount, o.Amount()).Return(int64(1), nil),
		f.deliverer.EXPECT().RequestDelivery(gomock.Any(), gomock.Any()).Return(errDeliveryDown),
		f.bank.EXPECT().Transfer(gomock.Any(), storeAccount, customerAcct, o.Amount()).Return(int64(2), nil),
	)

	_, err = f.saga.Pay(ctx, f.actor, commands.PayRequest{OrderID: o.ID(), From: customerAcct, Address: "1 George St"})

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrDeliveryRequest)
	assert.True(t, errs.IsExternalService(err))
	assert.Equal(t, "delivery request failed, payment reversed", errs.Message(err))

	stored := f.loadOrder(t, o.ID())
	assert.Equal(t, order.StatusPending, stored.Status())
	assert.Equal(t, delivery.StatusEmpty, stored.DeliveryStatus())
	assert.Nil(t, f.findPayment(t, o.ID()))
	assert.Equal(t, []int{0}, f.lotQuantities(), "reservation stays with the order")
}

func TestPay_ReverseTransferFailureLeavesPaymentVisible(t *testing.T) {
	f := newStoreFixture(t, 4)
	ctx := context.Background()
	o, err := f.saga.CreateOrder(ctx, f.userID, f.productID, 2)
	require.NoError(t, err)

	f.bank.EXPECT().Transfer(gomock.Any(), customerAcct, storeAccount, o.Amount()).Return(int64(1), nil)
	f.deliverer.EXPECT().RequestDelivery(gomock.Any(), gomock.Any()).Return(errDeliveryDown)
	f.bank.EXPECT().Transfer(gomock.Any(), storeAccount, customerAcct, o.Amount()).Return(int64(0), errBankDown)

	_, err = f.saga.Pay(ctx, f.actor, commands.PayRequest{OrderID: o.ID(), From: customerAcct, Address: "1 George St"})

	assert.ErrorIs(t, err, commands.ErrCompensationFailed)
	stored := f.loadOrder(t, o.ID())
	assert.Equal(t, order.StatusProcessing, stored.Status())
	assert.NotNil(t, f.findPayment(t, o.ID()))
}

func TestPay_Rejections(t *testing.T) {
	t.Run("charge rejected by bank", func(t *testing.T) {
		f := newStoreFixture(t, 4)
		ctx := context.Background()
		o, err := f.saga.CreateOrder(ctx, f.userID, f.productID, 1)
		require.NoError(t, err)

		rejected := errs.Classify(errors.New("Insufficient balance"), errs.ErrBusinessRule)
		f.bank.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), rejected)

		_, err = f.saga.Pay(ctx, f.actor, commands.PayRequest{OrderID: o.ID(), From: customerAcct, Address: "x"})

		assert.True(t, errs.IsBusinessRule(err))
		assert.Equal(t, order.StatusPending, f.loadOrder(t, o.ID()).Status())
		assert.Nil(t, f.findPayment(t, o.ID()))
	})

	t.Run("foreign order looks missing", func(t *testing.T) {
		f := newStoreFixture(t, 4)
		ctx := context.Background()
		o, err := f.saga.CreateOrder(ctx, f.userID, f.productID, 1)
		require.NoError(t, err)

		stranger := shared.Actor{UserID: uuid.New(), Role: user.RoleCustomer}
		_, err = f.saga.Pay(ctx, stranger, commands.PayRequest{OrderID: o.ID(), From: customerAcct, Address: "x"})

		assert.ErrorIs(t, err, order.ErrNotFound)
	})

	t.Run("second payment is refused", func(t *testing.T) {
		f := newStoreFixture(t, 4)
		o := f.paidOrder(t, 1)

		_, err := f.saga.Pay(context.Background(), f.actor, commands.PayRequest{OrderID: o.ID(), From: customerAcct, Address: "x"})

		assert.ErrorIs(t, err, order.ErrNotPayable)
	})

	t.Run("invalid account and blank address", func(t *testing.T) {
		f := newStoreFixture(t, 4)
		ctx := context.Background()

		_, err := f.saga.Pay(ctx, f.actor, commands.PayRequest{OrderID: uuid.New(), From: payment.Account{}, Address: "x"})
		assert.ErrorIs(t, err, payment.ErrInvalidAccount)

		_, err = f.saga.Pay(ctx, f.actor, commands.PayRequest{OrderID: uuid.New(), From: customerAcct, Address: "  "})
		assert.ErrorIs(t, err, delivery.ErrEmptyAddress)
	})
}

func TestCancel_RefundsAndRestoresStock(t *testing.T) {
	f := newStoreFixture(t, 6, 3)
	ctx := context.Background()
	o := f.paidOrder(t, 8)
	require.Equal(t, []int{0, 1}, f.lotQuantities())

	gomock.InOrder(
		f.deliverer.EXPECT().Cancel(gomock.Any(), o.ID()).Return(nil),
		f.bank.EXPECT().Transfer(gomock.Any(), storeAccount, customerAcct, o.Amount()).Return(int64(555), nil),
	)

	res, err := f.saga.Cancel(ctx, f.actor, o.ID())

	require.NoError(t, err)
	assert.Equal(t, order.StatusRefunded, res.Order.Status())
	assert.Equal(t, delivery.StatusCancelled, res.Order.DeliveryStatus())
	assert.Equal(t, payment.StatusRefunded, res.Payment.Status())
	assert.Equal(t, int64(555), res.Refund.TransferID())
	assert.Equal(t, o.Amount(), res.Refund.Amount())
	assert.Equal(t, []int{6, 3}, f.lotQuantities())

	_, err = f.saga.Cancel(ctx, f.actor, o.ID())
	assert.ErrorIs(t, err, order.ErrNotCancelable)
}

func TestCancel_OutsideSetupChangesNothing(t *testing.T) {
	f := newStoreFixture(t, 5)
	ctx := context.Background()
	o := f.paidOrder(t, 5)

	_, err := f.saga.UpdateDeliveryStatus(ctx, o.ID(), delivery.StatusPickup)
	require.NoError(t, err)
	before := f.loadOrder(t, o.ID())

	_, err = f.saga.Cancel(ctx, f.actor, o.ID())

	assert.ErrorIs(t, err, order.ErrNotCancelable)
	assert.True(t, errs.IsBusinessRule(err))
	after := f.loadOrder(t, o.ID())
	assert.Equal(t, before.Version(), after.Version())
	assert.Equal(t, delivery.StatusPickup, after.DeliveryStatus())
	assert.Equal(t, []int{0}, f.lotQuantities())
	assert.Equal(t, payment.StatusPaid, f.findPayment(t, o.ID()).Status())
}

func TestCancel_UnpaidOrderIsNotCancelable(t *testing.T) {
	f := newStoreFixture(t, 5)
	ctx := context.Background()
	o, err := f.saga.CreateOrder(ctx, f.userID, f.productID, 1)
	require.NoError(t, err)

	_, err = f.saga.Cancel(ctx, f.actor, o.ID())

	assert.ErrorIs(t, err, order.ErrNotCancelable)
}

func TestCancel_RetryResumesAfterFailedRefund(t *testing.T) {
	f := newStoreFixture(t, 5)
	ctx := context.Background()
	o := f.paidOrder(t, 5)

	f.deliverer.EXPECT().Cancel(gomock.Any(), o.ID()).Return(nil).Times(1)
	first := f.bank.EXPECT().Transfer(gomock.Any(), storeAccount, customerAcct, o.Amount()).Return(int64(0), errBankDown)

	_, err := f.saga.Cancel(ctx, f.actor, o.ID())
	require.ErrorIs(t, err, errs.ErrExternalService)

	partial := f.loadOrder(t, o.ID())
	assert.Equal(t, order.StatusCancelled, partial.Status())
	assert.Equal(t, delivery.StatusCancelled, partial.DeliveryStatus())
	assert.Equal(t, []int{5}, f.lotQuantities())
	assert.Equal(t, payment.StatusPaid, f.findPayment(t, o.ID()).Status())

	f.bank.EXPECT().Transfer(gomock.Any(), storeAccount, customerAcct, o.Amount()).Return(int64(77), nil).After(first)

	res, err := f.saga.Cancel(ctx, f.actor, o.ID())

	require.NoError(t, err)
	assert.Equal(t, order.StatusRefunded, res.Order.Status())
	assert.Equal(t, []int{5}, f.lotQuantities(), "restore must not credit twice")
}

func TestCancel_DeliveryCancelFailureStopsChain(t *testing.T) {
	f := newStoreFixture(t, 5)
	ctx := context.Background()
	o := f.paidOrder(t, 2)

	f.deliverer.EXPECT().Cancel(gomock.Any(), o.ID()).Return(errDeliveryDown)

	_, err := f.saga.Cancel(ctx, f.actor, o.ID())

	assert.True(t, errs.IsExternalService(err))
	stored := f.loadOrder(t, o.ID())
	assert.Equal(t, order.StatusProcessing, stored.Status())
	assert.Equal(t, delivery.StatusSetup, stored.DeliveryStatus())
	assert.Equal(t, []int{3}, f.lotQuantities())
}

func TestUpdateDeliveryStatus(t *testing.T) {
	f := newStoreFixture(t, 5)
	ctx := context.Background()
	o := f.paidOrder(t, 1)

	for _, s := range []delivery.Status{delivery.StatusPickup, delivery.StatusDelivering} {
		updated, err := f.saga.UpdateDeliveryStatus(ctx, o.ID(), s)
		require.NoError(t, err)
		assert.Equal(t, s, updated.DeliveryStatus())
		assert.Equal(t, order.StatusProcessing, updated.Status())
	}

	updated, err := f.saga.UpdateDeliveryStatus(ctx, o.ID(), delivery.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, order.StatusCompleted, updated.Status())

	_, err = f.saga.UpdateDeliveryStatus(ctx, o.ID(), delivery.Status(9))
	assert.True(t, errs.IsValidation(err))

	_, err = f.saga.UpdateDeliveryStatus(ctx, uuid.New(), delivery.StatusPickup)
	assert.True(t, errs.IsNotFound(err))
}
