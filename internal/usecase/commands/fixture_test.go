//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"store-fulfillment/internal/domain/inventory"
	"store-fulfillment/internal/domain/order"
	"store-fulfillment/internal/domain/payment"
	"store-fulfillment/internal/domain/user"
	"store-fulfillment/internal/infra/lock"
	"store-fulfillment/internal/infra/memstore"
	"store-fulfillment/internal/infra/metrics"
	"store-fulfillment/internal/pkg/clock"
	"store-fulfillment/internal/pkg/config"
	"store-fulfillment/internal/usecase/commands"
	"store-fulfillment/internal/usecase/shared"
	commandsmock "store-fulfillment/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const unitPrice = int64(250)

var (
	t0           = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	storeAccount = payment.Account{CustomerID: 1, AccountID: 1}
	customerAcct = payment.Account{CustomerID: 5, AccountID: 42}
)

type storeFixture struct {
	store     *memstore.Store
	clock     *clock.MockClock
	bank      *commandsmock.MockBankClient
	deliverer *commandsmock.MockDeliveryClient
	allocator commands.InventoryAllocator
	saga      commands.OrderSaga

	userID    uuid.UUID
	productID uuid.UUID
	lots      []*inventory.Lot
	actor     shared.Actor
}

func newStoreFixture(t *testing.T, lotQuantities ...int) *storeFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &storeFixture{
		store:     memstore.New(),
		clock:     clock.NewMockClock(t0),
		bank:      commandsmock.NewMockBankClient(ctrl),
		deliverer: commandsmock.NewMockDeliveryClient(ctrl),
	}
	email, err := user.NewEmail("buyer@example.com")
	require.NoError(t, err)
	f.userID = f.store.AddUser(email, user.RoleCustomer)
	f.productID = f.store.AddProduct("Mechanical keyboard", unitPrice)
	for _, q := range lotQuantities {
		l, err := inventory.NewLot(f.productID, uuid.New(), q)
		require.NoError(t, err)
		f.store.AddLot(l)
		f.lots = append(f.lots, l)
	}
	f.actor = shared.Actor{UserID: f.userID, Role: user.RoleCustomer}

	uow := f.store.UnitOfWork()
	m := metrics.Nop{}
	f.allocator = commands.NewInventoryAllocator(uow, f.clock, m)
	f.saga = commands.NewOrderSaga(uow, f.allocator, f.bank, f.deliverer, lock.NewMemoryLocker(), m, f.clock, config.NewTestConfig())
	return f
}

func (f *storeFixture) lotQuantities() []int {
	out := make([]int, 0, len(f.lots))
	for _, l := range f.lots {
		out = append(out, f.store.LotQuantity(l.ID()))
	}
	return out
}

func (f *storeFixture) loadOrder(t *testing.T, id uuid.UUID) *order.Order {
	t.Helper()
	var o *order.Order
	err := f.store.UnitOfWork().WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		o, err = tx.Orders().FindByID(ctx, id)
		return err
	})
	require.NoError(t, err)
	return o
}

// findPayment returns nil when the order has no payment.
func (f *storeFixture) findPayment(t *testing.T, orderID uuid.UUID) *payment.Payment {
	t.Helper()
	var p *payment.Payment
	_ = f.store.UnitOfWork().WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		p, _ = tx.Payments().FindByOrderID(ctx, orderID)
		return nil
	})
	return p
}

func (f *storeFixture) records(t *testing.T, orderID uuid.UUID) []*inventory.ReservationRecord {
	t.Helper()
	var recs []*inventory.ReservationRecord
	err := f.store.UnitOfWork().WithinReadOnly(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		var err error
		recs, err = tx.ReservationRecords().ListByOrder(ctx, orderID)
		return err
	})
	require.NoError(t, err)
	return recs
}

// paidOrder creates an order and pays it with the bank and delivery service accepting.
func (f *storeFixture) paidOrder(t *testing.T, qty int) *order.Order {
	t.Helper()
	ctx := context.Background()
	o, err := f.saga.CreateOrder(ctx, f.userID, f.productID, qty)
	require.NoError(t, err)

	f.bank.EXPECT().Transfer(gomock.Any(), customerAcct, storeAccount, o.Amount()).Return(int64(100), nil)
	f.deliverer.EXPECT().RequestDelivery(gomock.Any(), gomock.Any()).Return(nil)
	_, err = f.saga.Pay(ctx, f.actor, commands.PayRequest{OrderID: o.ID(), From: customerAcct, Address: "1 George St"})
	require.NoError(t, err)
	return f.loadOrder(t, o.ID())
}
