package order

import (
	"time"

	"store-fulfillment/internal/domain/delivery"
	"store-fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errs.Define(errs.ErrNotFound, "order not found")
	ErrInvalidQuantity = errs.Define(errs.ErrValidation, "order quantity must be positive")
	ErrNegativePrice   = errs.Define(errs.ErrValidation, "unit price cannot be negative")
	ErrNotPayable      = errs.Define(errs.ErrBusinessRule, "order is not awaiting payment")
	ErrNotCancelable   = errs.Define(errs.ErrBusinessRule, "order can only be cancelled while delivery is in setup")
	ErrInvalidState    = errs.Define(errs.ErrBusinessRule, "order is not in the expected state")
)

type Order struct {
	id             uuid.UUID
	userID         uuid.UUID
	productID      uuid.UUID
	quantity       int
	amount         int64
	status         Status
	deliveryStatus delivery.Status
	createdAt      time.Time
	updatedAt      time.Time
	version        int64
}

// NewOrder fixes the amount at creation; it never changes afterwards.
func NewOrder(userID, productID uuid.UUID, quantity int, unitPriceCents int64, now time.Time) (*Order, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if unitPriceCents < 0 {
		return nil, ErrNegativePrice
	}
	return &Order{
		id:             uuid.New(),
		userID:         userID,
		productID:      productID,
		quantity:       quantity,
		amount:         unitPriceCents * int64(quantity),
		status:         StatusPending,
		deliveryStatus: delivery.StatusEmpty,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructOrder(
	id, userID, productID uuid.UUID,
	quantity int,
	amount int64,
	status Status,
	deliveryStatus delivery.Status,
	createdAt, updatedAt time.Time,
	version int64,
) *Order {
	return &Order{
		id:             id,
		userID:         userID,
		productID:      productID,
		quantity:       quantity,
		amount:         amount,
		status:         status,
		deliveryStatus: deliveryStatus,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		version:        version,
	}
}

func (o *Order) EnsurePayable() error {
	if o.status != StatusPending || o.deliveryStatus != delivery.StatusEmpty {
		return ErrNotPayable
	}
	return nil
}

func (o *Order) MarkCharged(now time.Time) error {
	if err := o.EnsurePayable(); err != nil {
		return err
	}
	o.status = StatusProcessing
	o.updatedAt = now
	return nil
}

// ResetAfterFailedDelivery undoes MarkCharged once the charge has been reversed.
func (o *Order) ResetAfterFailedDelivery(now time.Time) {
	o.status = StatusPending
	o.deliveryStatus = delivery.StatusEmpty
	o.updatedAt = now
}

func (o *Order) MarkDeliverySetup(now time.Time) error {
	if o.status != StatusProcessing || o.deliveryStatus != delivery.StatusEmpty {
		return ErrInvalidState
	}
	o.deliveryStatus = delivery.StatusSetup
	o.updatedAt = now
	return nil
}

// EnsureCancelable accepts an order whose delivery is in setup, or one whose delivery was
// already cancelled by an earlier attempt that did not reach the refund.
func (o *Order) EnsureCancelable() error {
	if o.deliveryStatus == delivery.StatusSetup {
		return nil
	}
	if o.IsCancelPending() {
		return nil
	}
	return ErrNotCancelable
}

// IsCancelPending reports a cancelled order that has not been refunded yet.
func (o *Order) IsCancelPending() bool {
	return o.deliveryStatus == delivery.StatusCancelled && o.status == StatusCancelled
}

func (o *Order) MarkCancelled(now time.Time) {
	o.status = StatusCancelled
	o.deliveryStatus = delivery.StatusCancelled
	o.updatedAt = now
}

func (o *Order) MarkRefunded(now time.Time) error {
	if !o.IsCancelPending() {
		return ErrInvalidState
	}
	o.status = StatusRefunded
	o.updatedAt = now
	return nil
}

// ApplyDeliveryStatus records progress reported by the delivery service.
func (o *Order) ApplyDeliveryStatus(s delivery.Status, now time.Time) error {
	if !s.IsValid() {
		return delivery.ErrInvalidStatus
	}
	o.deliveryStatus = s
	if s == delivery.StatusCompleted {
		o.status = StatusCompleted
	}
	o.updatedAt = now
	return nil
}

func (o *Order) IsOwnedBy(userID uuid.UUID) bool {
	return o.userID == userID
}

func (o *Order) ID() uuid.UUID                   { return o.id }
func (o *Order) UserID() uuid.UUID               { return o.userID }
func (o *Order) ProductID() uuid.UUID            { return o.productID }
func (o *Order) Quantity() int                   { return o.quantity }
func (o *Order) Amount() int64                   { return o.amount }
func (o *Order) Status() Status                  { return o.status }
func (o *Order) DeliveryStatus() delivery.Status { return o.deliveryStatus }
func (o *Order) CreatedAt() time.Time            { return o.createdAt }
func (o *Order) UpdatedAt() time.Time            { return o.updatedAt }
func (o *Order) Version() int64                  { return o.version }
