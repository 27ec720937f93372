package payment

import (
	"time"

	"store-fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPaid     Status = "PAID"
	StatusRefunded Status = "REFUNDED"
)

func (s Status) String() string {
	return string(s)
}

var (
	ErrNotFound        = errs.Define(errs.ErrNotFound, "payment not found")
	ErrRefundNotFound  = errs.Define(errs.ErrNotFound, "refund not found")
	ErrInvalidAmount   = errs.Define(errs.ErrValidation, "amount cannot be negative")
	ErrInvalidAccount  = errs.Define(errs.ErrValidation, "invalid bank account")
	ErrAlreadyRefunded = errs.Define(errs.ErrBusinessRule, "payment already refunded")
)

// Account addresses a bank account as the bank exposes it.
type Account struct {
	CustomerID int64
	AccountID  int64
}

func NewAccount(customerID, accountID int64) (Account, error) {
	if customerID < 0 || accountID <= 0 {
		return Account{}, ErrInvalidAccount
	}
	return Account{CustomerID: customerID, AccountID: accountID}, nil
}

type Payment struct {
	id         uuid.UUID
	orderID    uuid.UUID
	amount     int64
	status     Status
	transferID int64
	from       Account
	createdAt  time.Time
	updatedAt  time.Time
	version    int64
}

func NewPayment(orderID uuid.UUID, amount, transferID int64, from Account, now time.Time) (*Payment, error) {
	if amount < 0 {
		return nil, ErrInvalidAmount
	}
	return &Payment{
		id:         uuid.New(),
		orderID:    orderID,
		amount:     amount,
		status:     StatusPaid,
		transferID: transferID,
		from:       from,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructPayment(
	id, orderID uuid.UUID,
	amount int64,
	status Status,
	transferID int64,
	from Account,
	createdAt, updatedAt time.Time,
	version int64,
) *Payment {
	return &Payment{
		id:         id,
		orderID:    orderID,
		amount:     amount,
		status:     status,
		transferID: transferID,
		from:       from,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
		version:    version,
	}
}

// Refund flips the payment to REFUNDED and returns the refund record for the reverse transfer.
func (p *Payment) Refund(refundTransferID int64, now time.Time) (*Refund, error) {
	if p.status == StatusRefunded {
		return nil, ErrAlreadyRefunded
	}
	p.status = StatusRefunded
	p.updatedAt = now
	return &Refund{
		id:         uuid.New(),
		orderID:    p.orderID,
		amount:     p.amount,
		transferID: refundTransferID,
		createdAt:  now,
	}, nil
}

func (p *Payment) ID() uuid.UUID        { return p.id }
func (p *Payment) OrderID() uuid.UUID   { return p.orderID }
func (p *Payment) Amount() int64        { return p.amount }
func (p *Payment) Status() Status       { return p.status }
func (p *Payment) TransferID() int64    { return p.transferID }
func (p *Payment) From() Account        { return p.from }
func (p *Payment) CreatedAt() time.Time { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time { return p.updatedAt }
func (p *Payment) Version() int64       { return p.version }

type Refund struct {
	id         uuid.UUID
	orderID    uuid.UUID
	amount     int64
	transferID int64
	createdAt  time.Time
}

func ReconstructRefund(id, orderID uuid.UUID, amount, transferID int64, createdAt time.Time) *Refund {
	return &Refund{
		id:         id,
		orderID:    orderID,
		amount:     amount,
		transferID: transferID,
		createdAt:  createdAt,
	}
}

func (r *Refund) ID() uuid.UUID        { return r.id }
func (r *Refund) OrderID() uuid.UUID   { return r.orderID }
func (r *Refund) Amount() int64        { return r.amount }
func (r *Refund) TransferID() int64    { return r.transferID }
func (r *Refund) CreatedAt() time.Time { return r.createdAt }
