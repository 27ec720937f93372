package queries

import (
	"time"

	"github.com/google/uuid"
)

// OrderView represents read-optimized order data
type OrderView struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	ProductID          uuid.UUID `json:"product_id"`
	ProductName        string    `json:"product_name"`
	Quantity           int       `json:"quantity"`
	AmountCents        int64     `json:"amount_cents"`
	Status             string    `json:"status"`
	DeliveryStatus     string    `json:"delivery_status"`
	DeliveryStatusCode int       `json:"delivery_status_code"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ReservationRecordView represents one lot touched by an order's allocation
type ReservationRecordView struct {
	ID          uuid.UUID `json:"id"`
	OrderID     uuid.UUID `json:"order_id"`
	LotID       uuid.UUID `json:"lot_id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	Quantity    int       `json:"quantity"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type RefundView struct {
	ID          uuid.UUID `json:"id"`
	AmountCents int64     `json:"amount_cents"`
	TransferID  int64     `json:"transfer_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// PaymentView represents a payment together with its refund, if any
type PaymentView struct {
	ID             uuid.UUID   `json:"id"`
	OrderID        uuid.UUID   `json:"order_id"`
	UserID         uuid.UUID   `json:"user_id"`
	AmountCents    int64       `json:"amount_cents"`
	Status         string      `json:"status"`
	TransferID     int64       `json:"transfer_id"`
	FromCustomerID int64       `json:"from_customer_id"`
	FromAccountID  int64       `json:"from_account_id"`
	CreatedAt      time.Time   `json:"created_at"`
	Refund         *RefundView `json:"refund,omitempty"`
}

// DeliveryView represents read-optimized delivery data
type DeliveryView struct {
	ID         uuid.UUID  `json:"id"`
	OrderID    uuid.UUID  `json:"order_id"`
	Quantity   int        `json:"quantity"`
	Address    string     `json:"address"`
	Email      string     `json:"email"`
	Status     string     `json:"status"`
	StatusCode int        `json:"status_code"`
	NextFireAt *time.Time `json:"next_fire_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
