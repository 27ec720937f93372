package commands

import (
	"context"
	"log/slog"
	"strings"

	"store-fulfillment/internal/domain/delivery"
	"store-fulfillment/internal/domain/order"
	"store-fulfillment/internal/domain/payment"
	"store-fulfillment/internal/pkg/errs"
	"store-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
)

// Pay charges the customer, then asks the delivery service to take the order. When the
// delivery request fails the charge is reversed and the payment removed; reserved stock stays
// with the order so a later Pay can reuse it.
func (s *orderSagaImpl) Pay(ctx context.Context, actor shared.Actor, req PayRequest) (*payment.Payment, error) {
	if _, err := payment.NewAccount(req.From.CustomerID, req.From.AccountID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Address) == "" {
		return nil, delivery.ErrEmptyAddress
	}

	release, err := s.lock(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	defer release()

	var (
		o     *order.Order
		email string
	)
	err = s.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var rerr error
		o, rerr = s.loadOwnedOrder(ctx, tx, actor, req.OrderID)
		if rerr != nil {
			return rerr
		}
		if rerr = o.EnsurePayable(); rerr != nil {
			return rerr
		}
		if _, rerr = tx.Payments().FindByOrderID(ctx, o.ID()); rerr == nil {
			return ErrAlreadyPaid
		} else if !errs.IsNotFound(rerr) {
			return rerr
		}
		u, rerr := tx.Reads().UserByID(ctx, o.UserID())
		if rerr != nil {
			return rerr
		}
		email = u.Email().Value()
		return nil
	})
	if err != nil {
		return nil, err
	}

	transferID, err := s.bank.Transfer(ctx, req.From, s.store, o.Amount())
	s.metrics.SagaStep("charge", shared.Outcome(err))
	if err != nil {
		slog.WarnContext(ctx, "charge failed", "order_id", o.ID(), "error", err)
		return nil, errs.Wrap(err, "charge customer")
	}

	var paid *payment.Payment
	err = s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cur, rerr := tx.Orders().FindByID(ctx, o.ID())
		if rerr != nil {
			return rerr
		}
		if rerr = cur.MarkCharged(s.clock.Now()); rerr != nil {
			return rerr
		}
		p, rerr := payment.NewPayment(cur.ID(), cur.Amount(), transferID, req.From, s.clock.Now())
		if rerr != nil {
			return rerr
		}
		if rerr = tx.Payments().Create(ctx, p); rerr != nil {
			return rerr
		}
		if rerr = tx.Orders().Update(ctx, cur); rerr != nil {
			return rerr
		}
		paid = p
		return nil
	})
	if err != nil {
		// The money moved but nothing was recorded; send it back.
		if cerr := s.reverseCharge(ctx, o, req.From); cerr != nil {
			return nil, errs.CombineErrors(cerr, err)
		}
		return nil, err
	}

	derr := s.deliverer.RequestDelivery(ctx, DeliveryRequest{
		OrderID:  o.ID(),
		Quantity: o.Quantity(),
		Address:  req.Address,
		Email:    email,
	})
	s.metrics.SagaStep("request_delivery", shared.Outcome(derr))
	if derr != nil {
		slog.WarnContext(ctx, "delivery request failed, compensating",
			"order_id", o.ID(),
			"error", derr)
		return nil, s.compensatePayment(ctx, o, paid, derr)
	}

	err = s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cur, rerr := tx.Orders().FindByID(ctx, o.ID())
		if rerr != nil {
			return rerr
		}
		if rerr = cur.MarkDeliverySetup(s.clock.Now()); rerr != nil {
			return rerr
		}
		return tx.Orders().Update(ctx, cur)
	})
	if err != nil {
		slog.ErrorContext(ctx, "delivery accepted but order not updated",
			"order_id", o.ID(),
			"error", err)
		return nil, err
	}

	slog.InfoContext(ctx, "order paid",
		"order_id", o.ID(),
		"payment_id", paid.ID(),
		"transfer_id", transferID)
	return paid, nil
}

// compensatePayment reverses the charge, resets the order to PENDING/EMPTY and deletes the
// payment. If the reverse transfer fails the payment and PROCESSING status stay visible.
func (s *orderSagaImpl) compensatePayment(ctx context.Context, o *order.Order, p *payment.Payment, cause error) error {
	if err := s.reverseCharge(ctx, o, p.From()); err != nil {
		return errs.CombineErrors(err, cause)
	}

	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cur, rerr := tx.Orders().FindByID(ctx, o.ID())
		if rerr != nil {
			return rerr
		}
		cur.ResetAfterFailedDelivery(s.clock.Now())
		if rerr = tx.Orders().Update(ctx, cur); rerr != nil {
			return rerr
		}
		return tx.Payments().Delete(ctx, p.ID())
	})
	s.metrics.Compensation("reset_order", shared.Outcome(err))
	if err != nil {
		slog.ErrorContext(ctx, "charge reversed but order not reset",
			"order_id", o.ID(),
			"payment_id", p.ID(),
			"error", err)
		return errs.CombineErrors(errs.Classify(err, ErrCompensationFailed), cause)
	}
	return errs.Classify(cause, ErrDeliveryRequest)
}

func (s *orderSagaImpl) reverseCharge(ctx context.Context, o *order.Order, to payment.Account) error {
	_, err := s.bank.Transfer(ctx, s.store, to, o.Amount())
	s.metrics.Compensation("reverse_charge", shared.Outcome(err))
	if err != nil {
		slog.ErrorContext(ctx, "reverse transfer failed",
			"order_id", o.ID(),
			"amount", o.Amount(),
			"error", err)
		return errs.Classify(errs.Wrap(err, "reverse charge"), ErrCompensationFailed)
	}
	return nil
}

// Cancel runs delivery cancel, stock restore and refund in that order. A failing step stops
// the chain; the persisted order shows how far it got and a retry resumes from there.
func (s *orderSagaImpl) Cancel(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*CancelResult, error) {
	release, err := s.lock(ctx, orderID)
	if err != nil {
		return nil, err
	}
	defer release()

	var (
		o *order.Order
		p *payment.Payment
	)
	err = s.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var rerr error
		o, rerr = s.loadOwnedOrder(ctx, tx, actor, orderID)
		if rerr != nil {
			return rerr
		}
		if rerr = o.EnsureCancelable(); rerr != nil {
			return rerr
		}
		p, rerr = tx.Payments().FindByOrderID(ctx, orderID)
		return rerr
	})
	if err != nil {
		return nil, err
	}

	if !o.IsCancelPending() {
		if o, err = s.cancelDelivery(ctx, o); err != nil {
			return nil, err
		}
	}

	if _, err = s.allocator.Restore(ctx, orderID); err != nil {
		slog.WarnContext(ctx, "stock restore failed during cancel", "order_id", orderID, "error", err)
		return nil, err
	}

	return s.refund(ctx, o, p)
}

func (s *orderSagaImpl) cancelDelivery(ctx context.Context, o *order.Order) (*order.Order, error) {
	err := s.deliverer.Cancel(ctx, o.ID())
	s.metrics.SagaStep("cancel_delivery", shared.Outcome(err))
	if err != nil {
		slog.WarnContext(ctx, "delivery cancel failed", "order_id", o.ID(), "error", err)
		return nil, errs.Wrap(err, "cancel delivery")
	}

	var cancelled *order.Order
	err = s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cur, rerr := tx.Orders().FindByID(ctx, o.ID())
		if rerr != nil {
			return rerr
		}
		cur.MarkCancelled(s.clock.Now())
		if rerr = tx.Orders().Update(ctx, cur); rerr != nil {
			return rerr
		}
		cancelled = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

func (s *orderSagaImpl) refund(ctx context.Context, o *order.Order, p *payment.Payment) (*CancelResult, error) {
	transferID, err := s.bank.Transfer(ctx, s.store, p.From(), o.Amount())
	s.metrics.SagaStep("refund", shared.Outcome(err))
	if err != nil {
		slog.WarnContext(ctx, "refund transfer failed", "order_id", o.ID(), "error", err)
		return nil, errs.Wrap(err, "refund customer")
	}

	result := &CancelResult{}
	err = s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cur, rerr := tx.Orders().FindByID(ctx, o.ID())
		if rerr != nil {
			return rerr
		}
		pay, rerr := tx.Payments().FindByOrderID(ctx, o.ID())
		if rerr != nil {
			return rerr
		}
		ref, rerr := pay.Refund(transferID, s.clock.Now())
		if rerr != nil {
			return rerr
		}
		if rerr = cur.MarkRefunded(s.clock.Now()); rerr != nil {
			return rerr
		}
		if rerr = tx.Payments().Update(ctx, pay); rerr != nil {
			return rerr
		}
		if rerr = tx.Refunds().Create(ctx, ref); rerr != nil {
			return rerr
		}
		if rerr = tx.Orders().Update(ctx, cur); rerr != nil {
			return rerr
		}
		result.Order, result.Payment, result.Refund = cur, pay, ref
		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "refund sent but not recorded",
			"order_id", o.ID(),
			"transfer_id", transferID,
			"error", err)
		return nil, err
	}

	slog.InfoContext(ctx, "order refunded",
		"order_id", o.ID(),
		"refund_id", result.Refund.ID(),
		"transfer_id", transferID)
	return result, nil
}
