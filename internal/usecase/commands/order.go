package commands

import (
	"context"
	"log/slog"

	"store-fulfillment/internal/domain/delivery"
	"store-fulfillment/internal/domain/order"
	"store-fulfillment/internal/domain/payment"
	"store-fulfillment/internal/pkg/clock"
	"store-fulfillment/internal/pkg/config"
	"store-fulfillment/internal/pkg/errs"
	"store-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=order.go -destination=../../../tests/mock/commands/mock_order.go -package=commandsmock

var (
	ErrAlreadyPaid        = errs.Define(errs.ErrBusinessRule, "order already has a payment")
	ErrDeliveryRequest    = errs.Define(errs.ErrExternalService, "delivery request failed, payment reversed")
	ErrCompensationFailed = errs.Define(errs.ErrExternalService, "compensation failed, manual intervention required")
)

type PayRequest struct {
	OrderID uuid.UUID
	From    payment.Account
	Address string
}

type CancelResult struct {
	Order   *order.Order
	Payment *payment.Payment
	Refund  *payment.Refund
}

type OrderSaga interface {
	CreateOrder(ctx context.Context, userID, productID uuid.UUID, quantity int) (*order.Order, error)
	Pay(ctx context.Context, actor shared.Actor, req PayRequest) (*payment.Payment, error)
	Cancel(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*CancelResult, error)
	UpdateDeliveryStatus(ctx context.Context, orderID uuid.UUID, status delivery.Status) (*order.Order, error)
}

type orderSagaImpl struct {
	uow       shared.UnitOfWork
	allocator InventoryAllocator
	bank      BankClient
	deliverer DeliveryClient
	locker    shared.Locker
	metrics   shared.Metrics
	clock     clock.Clock
	store     payment.Account
}

func NewOrderSaga(
	uow shared.UnitOfWork,
	allocator InventoryAllocator,
	bank BankClient,
	deliverer DeliveryClient,
	locker shared.Locker,
	metrics shared.Metrics,
	clk clock.Clock,
	cfg config.Config,
) OrderSaga {
	return &orderSagaImpl{
		uow:       uow,
		allocator: allocator,
		bank:      bank,
		deliverer: deliverer,
		locker:    locker,
		metrics:   metrics,
		clock:     clk,
		store: payment.Account{
			CustomerID: cfg.Store.CustomerID,
			AccountID:  cfg.Store.AccountID,
		},
	}
}

func (s *orderSagaImpl) CreateOrder(ctx context.Context, userID, productID uuid.UUID, quantity int) (*order.Order, error) {
	if quantity <= 0 {
		return nil, order.ErrInvalidQuantity
	}

	var created *order.Order
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().UserByID(ctx, userID); err != nil {
			return err
		}
		product, err := tx.Reads().ProductByID(ctx, productID)
		if err != nil {
			return err
		}

		o, err := order.NewOrder(userID, productID, quantity, product.UnitPriceCents, s.clock.Now())
		if err != nil {
			return err
		}
		if err := tx.Orders().Create(ctx, o); err != nil {
			return err
		}
		if _, err := reserveStock(ctx, tx, productID, quantity, o.ID(), s.clock); err != nil {
			return err
		}
		created = o
		return nil
	})
	s.metrics.SagaStep("create_order", shared.Outcome(err))
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "order created",
		"order_id", created.ID(),
		"user_id", userID,
		"amount", created.Amount())
	return created, nil
}

func (s *orderSagaImpl) UpdateDeliveryStatus(ctx context.Context, orderID uuid.UUID, status delivery.Status) (*order.Order, error) {
	if !status.IsValid() {
		return nil, delivery.ErrInvalidStatus
	}

	var updated *order.Order
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := o.ApplyDeliveryStatus(status, s.clock.Now()); err != nil {
			return err
		}
		if err := tx.Orders().Update(ctx, o); err != nil {
			return err
		}
		updated = o
		return nil
	})
	s.metrics.SagaStep("update_delivery_status", shared.Outcome(err))
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "delivery status updated",
		"order_id", orderID,
		"delivery_status", status.String(),
		"order_status", updated.Status().String())
	return updated, nil
}

// loadOwnedOrder reads the order and hides foreign orders behind not found.
func (s *orderSagaImpl) loadOwnedOrder(ctx context.Context, tx shared.Tx, actor shared.Actor, orderID uuid.UUID) (*order.Order, error) {
	o, err := tx.Orders().FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(o.UserID()) {
		return nil, order.ErrNotFound
	}
	return o, nil
}

// lock serialises Pay and Cancel for one order so a refund is never issued twice.
func (s *orderSagaImpl) lock(ctx context.Context, orderID uuid.UUID) (func(), error) {
	return s.locker.Acquire(ctx, "order:"+orderID.String())
}
