package commands

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"store-fulfillment/internal/domain/delivery"
	"store-fulfillment/internal/domain/user"
	"store-fulfillment/internal/pkg/clock"
	"store-fulfillment/internal/pkg/config"
	"store-fulfillment/internal/pkg/errs"
	"store-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=delivery.go -destination=../../../tests/mock/commands/mock_delivery.go -package=commandsmock

// FiringResult describes one applied transition.
type FiringResult struct {
	Delivery   *delivery.Delivery
	Transition delivery.Transition
}

type DeliveryLifecycle interface {
	Create(ctx context.Context, req DeliveryRequest) (*delivery.Delivery, error)
	Cancel(ctx context.Context, orderID uuid.UUID) (*delivery.Delivery, error)
	// Fire applies the delivery's pending transition if it is due. It returns nil without error
	// when there is nothing to do: the delivery is gone, cancelled, completed or not yet due.
	Fire(ctx context.Context, deliveryID uuid.UUID) (*FiringResult, error)
	// FireDue fires every due delivery once and reports how many transitions were applied.
	FireDue(ctx context.Context) (int, error)
}

type deliveryLifecycleImpl struct {
	uow           shared.UnitOfWork
	sink          OrderStatusSink
	email         EmailClient
	locker        shared.Locker
	roller        delivery.AccidentRoller
	metrics       shared.Metrics
	clock         clock.Clock
	schedule      delivery.Schedule
	batch         int
	firingTimeout time.Duration
}

func NewDeliveryLifecycle(
	uow shared.UnitOfWork,
	sink OrderStatusSink,
	email EmailClient,
	locker shared.Locker,
	roller delivery.AccidentRoller,
	metrics shared.Metrics,
	clk clock.Clock,
	cfg config.Config,
) DeliveryLifecycle {
	pickup, delivering, complete := cfg.Lifecycle.Delays()
	return &deliveryLifecycleImpl{
		uow:     uow,
		sink:    sink,
		email:   email,
		locker:  locker,
		roller:  roller,
		metrics: metrics,
		clock:   clk,
		schedule: delivery.Schedule{
			Pickup:     pickup,
			Delivering: delivering,
			Complete:   complete,
		},
		batch:         cfg.Lifecycle.SchedulerBatch,
		firingTimeout: cfg.Lifecycle.FiringTimeoutCap,
	}
}

func (l *deliveryLifecycleImpl) Create(ctx context.Context, req DeliveryRequest) (*delivery.Delivery, error) {
	email, err := user.NewEmail(req.Email)
	if err != nil {
		return nil, err
	}
	d, err := delivery.NewDelivery(req.OrderID, req.Quantity, req.Address, email, l.clock.Now(), l.schedule)
	if err != nil {
		return nil, err
	}

	err = l.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, ferr := tx.Deliveries().FindByOrderID(ctx, req.OrderID)
		if ferr == nil {
			return delivery.ErrAlreadyExists
		}
		if !errs.IsNotFound(ferr) {
			return ferr
		}
		return tx.Deliveries().Create(ctx, d)
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "delivery created",
		"delivery_id", d.ID(),
		"order_id", d.OrderID(),
		"quantity", d.Quantity(),
		"next_fire_at", d.NextFireAt())
	return d, nil
}

func (l *deliveryLifecycleImpl) Cancel(ctx context.Context, orderID uuid.UUID) (*delivery.Delivery, error) {
	var id uuid.UUID
	err := l.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		d, ferr := tx.Deliveries().FindByOrderID(ctx, orderID)
		if ferr != nil {
			return ferr
		}
		id = d.ID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	release, err := l.lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer release()

	var cancelled *delivery.Delivery
	err = l.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		d, ferr := tx.Deliveries().FindByID(ctx, id)
		if ferr != nil {
			return ferr
		}
		changed, cerr := d.Cancel(l.clock.Now())
		if cerr != nil {
			return cerr
		}
		if changed {
			if uerr := tx.Deliveries().Update(ctx, d); uerr != nil {
				return uerr
			}
		}
		cancelled = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "delivery cancelled", "delivery_id", id, "order_id", orderID)
	return cancelled, nil
}

func (l *deliveryLifecycleImpl) Fire(ctx context.Context, deliveryID uuid.UUID) (*FiringResult, error) {
	release, err := l.lock(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	defer release()

	now := l.clock.Now()

	// Cancellation is cooperative: the status is re-read under the lock before anything moves.
	var d *delivery.Delivery
	err = l.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var ferr error
		d, ferr = tx.Deliveries().FindByID(ctx, deliveryID)
		return ferr
	})
	if errs.IsNotFound(err) {
		slog.DebugContext(ctx, "firing skipped, delivery missing", "delivery_id", deliveryID)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !d.IsDue(now) {
		slog.DebugContext(ctx, "firing skipped",
			"delivery_id", deliveryID,
			"status", d.Status().String())
		return nil, nil
	}

	next, _ := d.NextStatus()
	if serr := l.sink.Update(ctx, d.OrderID(), next); serr != nil {
		slog.WarnContext(ctx, "order status callback failed",
			"delivery_id", deliveryID,
			"order_id", d.OrderID(),
			"status", next.String(),
			"error", serr)
	}

	tr, err := d.Advance(now, l.schedule, l.roller)
	if err != nil {
		return nil, err
	}
	err = l.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Deliveries().Update(ctx, d)
	})
	if err != nil {
		return nil, err
	}
	l.metrics.DeliveryTransition(tr.To.String(), tr.HadAccident())

	nerr := l.email.Notify(ctx, EmailNotification{
		DeliveryID: d.ID(),
		Email:      d.Email().Value(),
		Status:     tr.To,
		Address:    d.Address(),
		Accident:   tr.Accident,
	})
	if nerr != nil {
		slog.WarnContext(ctx, "email notification failed",
			"delivery_id", deliveryID,
			"status", tr.To.String(),
			"error", nerr)
	}

	slog.InfoContext(ctx, "delivery advanced",
		"delivery_id", deliveryID,
		"order_id", d.OrderID(),
		"from", tr.From.String(),
		"to", tr.To.String(),
		"quantity", tr.QuantityAfter,
		"accident", tr.Accident)
	return &FiringResult{Delivery: d, Transition: tr}, nil
}

func (l *deliveryLifecycleImpl) FireDue(ctx context.Context) (int, error) {
	var due []uuid.UUID
	err := l.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var lerr error
		due, lerr = tx.Deliveries().ListDue(ctx, l.clock.Now(), l.batch)
		return lerr
	})
	if err != nil {
		return 0, err
	}

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		fired int
	)
	for _, id := range due {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			fctx := ctx
			if l.firingTimeout > 0 {
				var cancel context.CancelFunc
				fctx, cancel = context.WithTimeout(ctx, l.firingTimeout)
				defer cancel()
			}

			res, ferr := l.Fire(fctx, id)
			if ferr != nil {
				slog.ErrorContext(ctx, "delivery firing failed", "delivery_id", id, "error", ferr)
				return
			}
			if res != nil {
				mu.Lock()
				fired++
				mu.Unlock()
			}
		}(id)
	}
	wg.Wait()
	return fired, nil
}

func (l *deliveryLifecycleImpl) lock(ctx context.Context, deliveryID uuid.UUID) (func(), error) {
	return l.locker.Acquire(ctx, "delivery:"+deliveryID.String())
}
