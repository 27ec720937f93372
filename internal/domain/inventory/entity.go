package inventory

import (
	"time"

	"store-fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity   = errs.Define(errs.ErrValidation, "quantity must be positive")
	ErrInsufficientStock = errs.Define(errs.ErrBusinessRule, "insufficient stock")
	ErrLotUnderflow      = errs.Define(errs.ErrBusinessRule, "lot quantity cannot go negative")
	ErrAlreadyReceived   = errs.Define(errs.ErrBusinessRule, "reservation record already received")
	ErrLotNotFound       = errs.Define(errs.ErrNotFound, "inventory lot not found")
)

// Lot is the stock of one product held at one warehouse.
type Lot struct {
	id          uuid.UUID
	productID   uuid.UUID
	warehouseID uuid.UUID
	quantity    int
	version     int64
}

func NewLot(productID, warehouseID uuid.UUID, quantity int) (*Lot, error) {
	if quantity < 0 {
		return nil, ErrLotUnderflow
	}
	return &Lot{
		id:          uuid.New(),
		productID:   productID,
		warehouseID: warehouseID,
		quantity:    quantity,
	}, nil
}

func ReconstructLot(id, productID, warehouseID uuid.UUID, quantity int, version int64) *Lot {
	return &Lot{
		id:          id,
		productID:   productID,
		warehouseID: warehouseID,
		quantity:    quantity,
		version:     version,
	}
}

func (l *Lot) take(n int) error {
	if n <= 0 {
		return ErrInvalidQuantity
	}
	if n > l.quantity {
		return ErrLotUnderflow
	}
	l.quantity -= n
	return nil
}

func (l *Lot) Credit(n int) error {
	if n <= 0 {
		return ErrInvalidQuantity
	}
	l.quantity += n
	return nil
}

func (l *Lot) ID() uuid.UUID          { return l.id }
func (l *Lot) ProductID() uuid.UUID   { return l.productID }
func (l *Lot) WarehouseID() uuid.UUID { return l.warehouseID }
func (l *Lot) Quantity() int          { return l.quantity }
func (l *Lot) Version() int64         { return l.version }

// ReservationRecord is the stock taken from one lot for one order.
type ReservationRecord struct {
	id        uuid.UUID
	lotID     uuid.UUID
	orderID   uuid.UUID
	quantity  int
	status    RecordStatus
	createdAt time.Time
	updatedAt time.Time
}

func ReconstructReservationRecord(
	id, lotID, orderID uuid.UUID,
	quantity int,
	status RecordStatus,
	createdAt, updatedAt time.Time,
) *ReservationRecord {
	return &ReservationRecord{
		id:        id,
		lotID:     lotID,
		orderID:   orderID,
		quantity:  quantity,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Receive flips the record to RECEIVED. A record is received at most once.
func (r *ReservationRecord) Receive(now time.Time) error {
	if r.status == RecordReceived {
		return ErrAlreadyReceived
	}
	r.status = RecordReceived
	r.updatedAt = now
	return nil
}

func (r *ReservationRecord) IsReceived() bool { return r.status == RecordReceived }

func (r *ReservationRecord) ID() uuid.UUID        { return r.id }
func (r *ReservationRecord) LotID() uuid.UUID     { return r.lotID }
func (r *ReservationRecord) OrderID() uuid.UUID   { return r.orderID }
func (r *ReservationRecord) Quantity() int        { return r.quantity }
func (r *ReservationRecord) Status() RecordStatus { return r.status }
func (r *ReservationRecord) CreatedAt() time.Time { return r.createdAt }
func (r *ReservationRecord) UpdatedAt() time.Time { return r.updatedAt }
