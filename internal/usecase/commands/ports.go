package commands

import (
	"context"

	"store-fulfillment/internal/domain/delivery"
	"store-fulfillment/internal/domain/payment"

	"github.com/google/uuid"
)

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/commands/mock_ports.go -package=commandsmock

// Adapters return errors classified as errs.ErrBusinessRule for rejections the remote service
// reports as client errors, and errs.ErrExternalService for transport failures and server errors.

type BankClient interface {
	Transfer(ctx context.Context, from, to payment.Account, amountCents int64) (transferID int64, err error)
}

type DeliveryRequest struct {
	OrderID  uuid.UUID
	Quantity int
	Address  string
	Email    string
}

type DeliveryClient interface {
	RequestDelivery(ctx context.Context, req DeliveryRequest) error
	// Cancel treats an already cancelled delivery as success.
	Cancel(ctx context.Context, orderID uuid.UUID) error
}

type EmailNotification struct {
	DeliveryID uuid.UUID
	Email      string
	Status     delivery.Status
	Address    string
	Accident   string
}

type EmailClient interface {
	Notify(ctx context.Context, n EmailNotification) error
}

// OrderStatusSink receives delivery progress on the store side.
type OrderStatusSink interface {
	Update(ctx context.Context, orderID uuid.UUID, status delivery.Status) error
}
