package queries

import (
	"context"
	"time"

	"store-fulfillment/internal/domain/order"
	"store-fulfillment/internal/domain/payment"
	"store-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=order.go -destination=../../../tests/mock/queries/mock_order.go -package=queriesmock

type OrderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	FindByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*OrderView, error)
	FindByUserKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*OrderView, error)
	ListReservations(ctx context.Context, orderID uuid.UUID) ([]*ReservationRecordView, error)
	FindPaymentByOrderID(ctx context.Context, orderID uuid.UUID) (*PaymentView, error)
}

type OrderQueries interface {
	GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*OrderView, error)
	ListMine(ctx context.Context, actor shared.Actor, cursor *Cursor, limit int) ([]*OrderView, *Cursor, error)
	ListReservations(ctx context.Context, actor shared.Actor, orderID uuid.UUID) ([]*ReservationRecordView, error)
	GetPayment(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*PaymentView, error)
}

type orderQueriesImpl struct {
	repo OrderReadStore
}

func NewOrderQueries(repo OrderReadStore) OrderQueries {
	return &orderQueriesImpl{repo: repo}
}

// Foreign orders are reported as missing rather than forbidden.
func (q *orderQueriesImpl) GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*OrderView, error) {
	ov, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(ov.UserID) {
		return nil, order.ErrNotFound
	}
	return ov, nil
}

func (q *orderQueriesImpl) ListMine(ctx context.Context, actor shared.Actor, cursor *Cursor, limit int) ([]*OrderView, *Cursor, error) {
	limit = ValidateLimit(limit)
	var rows []*OrderView
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.FindByUserFirstPage(ctx, actor.UserID, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, derr
		}
		rows, err = q.repo.FindByUserKeyset(ctx, actor.UserID, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}
	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}

func (q *orderQueriesImpl) ListReservations(ctx context.Context, actor shared.Actor, orderID uuid.UUID) ([]*ReservationRecordView, error) {
	if _, err := q.GetByID(ctx, actor, orderID); err != nil {
		return nil, err
	}
	return q.repo.ListReservations(ctx, orderID)
}

func (q *orderQueriesImpl) GetPayment(ctx context.Context, actor shared.Actor, orderID uuid.UUID) (*PaymentView, error) {
	pv, err := q.repo.FindPaymentByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(pv.UserID) {
		return nil, payment.ErrNotFound
	}
	return pv, nil
}
