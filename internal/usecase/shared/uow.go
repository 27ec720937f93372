package shared

import (
	"context"
	"time"

	"store-fulfillment/internal/domain/delivery"
	"store-fulfillment/internal/domain/inventory"
	"store-fulfillment/internal/domain/order"
	"store-fulfillment/internal/domain/payment"
	"store-fulfillment/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations. Conflicts are retried with a fresh read.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Orders() OrderRepository
	Lots() LotRepository
	ReservationRecords() ReservationRecordRepository
	Payments() PaymentRepository
	Refunds() RefundRepository
	Deliveries() DeliveryRepository
	Reads() CommandReads
}

// CommandReads exposes catalog data owned outside the fulfillment core.
type CommandReads interface {
	ProductByID(ctx context.Context, id uuid.UUID) (*ProductSnapshot, error)
	UserByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// Update methods compare the entity's version with the stored one and fail with a
// concurrency conflict when another writer got there first.

type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*order.Order, error)
	Update(ctx context.Context, o *order.Order) error
}

type LotRepository interface {
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*inventory.Lot, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*inventory.Lot, error)
	Update(ctx context.Context, l *inventory.Lot) error
}

type ReservationRecordRepository interface {
	CreateBatch(ctx context.Context, records []*inventory.ReservationRecord) error
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*inventory.ReservationRecord, error)
	// MarkReceived flips a DISPATCHED record; a record already RECEIVED is a conflict.
	MarkReceived(ctx context.Context, r *inventory.ReservationRecord) error
}

type PaymentRepository interface {
	Create(ctx context.Context, p *payment.Payment) error
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*payment.Payment, error)
	Update(ctx context.Context, p *payment.Payment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type RefundRepository interface {
	Create(ctx context.Context, r *payment.Refund) error
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*payment.Refund, error)
}

type DeliveryRepository interface {
	Create(ctx context.Context, d *delivery.Delivery) error
	FindByID(ctx context.Context, id uuid.UUID) (*delivery.Delivery, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*delivery.Delivery, error)
	Update(ctx context.Context, d *delivery.Delivery) error
	// ListDue returns ids of deliveries whose next firing is at or before now, oldest first.
	ListDue(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error)
}

// Locker serialises work on one key across goroutines and, when backed by Redis, across
// processes.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}
