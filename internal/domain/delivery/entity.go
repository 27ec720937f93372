package delivery

import (
	"strings"
	"time"

	"store-fulfillment/internal/domain/user"
	"store-fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errs.Define(errs.ErrNotFound, "delivery not found")
	ErrAlreadyExists   = errs.Define(errs.ErrBusinessRule, "order already has a delivery")
	ErrInvalidQuantity = errs.Define(errs.ErrValidation, "delivery quantity must be positive")
	ErrEmptyAddress    = errs.Define(errs.ErrValidation, "delivery address must not be empty")
	ErrNotCancelable   = errs.Define(errs.ErrBusinessRule, "delivery can only be cancelled during setup")
	ErrNotDue          = errs.Define(errs.ErrBusinessRule, "delivery has no transition due")
)

type Delivery struct {
	id         uuid.UUID
	orderID    uuid.UUID
	quantity   int
	address    string
	email      user.Email
	status     Status
	nextFireAt *time.Time
	createdAt  time.Time
	updatedAt  time.Time
	version    int64
}

// Transition describes one scheduled firing after it has been applied.
type Transition struct {
	From           Status
	To             Status
	QuantityBefore int
	QuantityAfter  int
	Accident       string
}

func (t Transition) HadAccident() bool {
	return t.Accident != AccidentNone
}

func NewDelivery(orderID uuid.UUID, quantity int, address string, email user.Email, now time.Time, schedule Schedule) (*Delivery, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, ErrEmptyAddress
	}
	next := now.Add(schedule.delayBefore(StatusPickup))
	return &Delivery{
		id:         uuid.New(),
		orderID:    orderID,
		quantity:   quantity,
		address:    address,
		email:      email,
		status:     StatusSetup,
		nextFireAt: &next,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructDelivery(
	id, orderID uuid.UUID,
	quantity int,
	address string,
	email user.Email,
	status Status,
	nextFireAt *time.Time,
	createdAt, updatedAt time.Time,
	version int64,
) *Delivery {
	return &Delivery{
		id:         id,
		orderID:    orderID,
		quantity:   quantity,
		address:    address,
		email:      email,
		status:     status,
		nextFireAt: nextFireAt,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
		version:    version,
	}
}

// Cancel moves a delivery in setup to CANCELLED and disarms its next firing. Cancelling an
// already cancelled delivery reports changed=false without error.
func (d *Delivery) Cancel(now time.Time) (changed bool, err error) {
	switch d.status {
	case StatusCancelled:
		return false, nil
	case StatusSetup:
		d.status = StatusCancelled
		d.nextFireAt = nil
		d.updatedAt = now
		return true, nil
	default:
		return false, ErrNotCancelable
	}
}

func (d *Delivery) IsDue(now time.Time) bool {
	if d.nextFireAt == nil || d.status.IsTerminal() {
		return false
	}
	return !now.Before(*d.nextFireAt)
}

// NextStatus is the status the pending firing would move to.
func (d *Delivery) NextStatus() (Status, bool) {
	if d.nextFireAt == nil {
		return d.status, false
	}
	return d.status.next()
}

// Advance applies the due firing: moves to the next status, draws an accident and arms the
// following firing relative to this one's due time.
func (d *Delivery) Advance(now time.Time, schedule Schedule, roller AccidentRoller) (Transition, error) {
	if !d.IsDue(now) {
		return Transition{}, ErrNotDue
	}
	to, ok := d.status.next()
	if !ok {
		return Transition{}, ErrNotDue
	}

	t := Transition{
		From:           d.status,
		To:             to,
		QuantityBefore: d.quantity,
		Accident:       AccidentNone,
	}
	if roller.Roll() {
		d.quantity = lose(d.quantity)
		t.Accident = AccidentLoss
	}
	t.QuantityAfter = d.quantity

	if after, more := to.next(); more {
		next := d.nextFireAt.Add(schedule.delayBefore(after))
		d.nextFireAt = &next
	} else {
		d.nextFireAt = nil
	}
	d.status = to
	d.updatedAt = now
	return t, nil
}

func (d *Delivery) ID() uuid.UUID          { return d.id }
func (d *Delivery) OrderID() uuid.UUID     { return d.orderID }
func (d *Delivery) Quantity() int          { return d.quantity }
func (d *Delivery) Address() string        { return d.address }
func (d *Delivery) Email() user.Email      { return d.email }
func (d *Delivery) Status() Status         { return d.status }
func (d *Delivery) NextFireAt() *time.Time { return d.nextFireAt }
func (d *Delivery) CreatedAt() time.Time   { return d.createdAt }
func (d *Delivery) UpdatedAt() time.Time   { return d.updatedAt }
func (d *Delivery) Version() int64         { return d.version }
