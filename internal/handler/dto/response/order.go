package response

import (
	"time"

	"store-fulfillment/internal/domain/order"
	"store-fulfillment/internal/domain/payment"
	"store-fulfillment/internal/usecase/commands"
	"store-fulfillment/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderResponse struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	ProductID          uuid.UUID `json:"product_id"`
	ProductName        string    `json:"product_name,omitempty"`
	Quantity           int       `json:"quantity"`
	AmountCents        int64     `json:"amount_cents"`
	Status             string    `json:"status"`
	DeliveryStatus     string    `json:"delivery_status"`
	DeliveryStatusCode int       `json:"delivery_status_code"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type OrderListResponse struct {
	Orders     []*OrderResponse `json:"orders"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

type ReservationRecordResponse struct {
	ID          uuid.UUID `json:"id"`
	LotID       uuid.UUID `json:"lot_id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	Quantity    int       `json:"quantity"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type PaymentResponse struct {
	ID             uuid.UUID       `json:"id"`
	OrderID        uuid.UUID       `json:"order_id"`
	AmountCents    int64           `json:"amount_cents"`
	Status         string          `json:"status"`
	TransferID     int64           `json:"transfer_id"`
	FromCustomerID int64           `json:"from_customer_id"`
	FromAccountID  int64           `json:"from_account_id"`
	CreatedAt      time.Time       `json:"created_at"`
	Refund         *RefundResponse `json:"refund,omitempty"`
}

type RefundResponse struct {
	ID          uuid.UUID `json:"id"`
	AmountCents int64     `json:"amount_cents"`
	TransferID  int64     `json:"transfer_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type CancelResponse struct {
	Order  *OrderResponse  `json:"order"`
	Refund *RefundResponse `json:"refund,omitempty"`
}

// StatusResponse carries a delivery status as its wire ordinal.
type StatusResponse struct {
	Status int `json:"status"`
}

func FromOrder(o *order.Order) *OrderResponse {
	return &OrderResponse{
		ID:                 o.ID(),
		UserID:             o.UserID(),
		ProductID:          o.ProductID(),
		Quantity:           o.Quantity(),
		AmountCents:        o.Amount(),
		Status:             o.Status().String(),
		DeliveryStatus:     o.DeliveryStatus().String(),
		DeliveryStatusCode: o.DeliveryStatus().Code(),
		CreatedAt:          o.CreatedAt(),
		UpdatedAt:          o.UpdatedAt(),
	}
}

func FromOrderView(v *queries.OrderView) *OrderResponse {
	return &OrderResponse{
		ID:                 v.ID,
		UserID:             v.UserID,
		ProductID:          v.ProductID,
		ProductName:        v.ProductName,
		Quantity:           v.Quantity,
		AmountCents:        v.AmountCents,
		Status:             v.Status,
		DeliveryStatus:     v.DeliveryStatus,
		DeliveryStatusCode: v.DeliveryStatusCode,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}

func FromOrderViews(views []*queries.OrderView, next *queries.Cursor) *OrderListResponse {
	resp := &OrderListResponse{Orders: make([]*OrderResponse, len(views))}
	for i, v := range views {
		resp.Orders[i] = FromOrderView(v)
	}
	if next != nil {
		resp.NextCursor = next.After
	}
	return resp
}

func FromReservationRecordViews(views []*queries.ReservationRecordView) []*ReservationRecordResponse {
	resp := make([]*ReservationRecordResponse, len(views))
	for i, v := range views {
		resp[i] = &ReservationRecordResponse{
			ID:          v.ID,
			LotID:       v.LotID,
			WarehouseID: v.WarehouseID,
			Quantity:    v.Quantity,
			Status:      v.Status,
			CreatedAt:   v.CreatedAt,
		}
	}
	return resp
}

func FromPayment(p *payment.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:             p.ID(),
		OrderID:        p.OrderID(),
		AmountCents:    p.Amount(),
		Status:         p.Status().String(),
		TransferID:     p.TransferID(),
		FromCustomerID: p.From().CustomerID,
		FromAccountID:  p.From().AccountID,
		CreatedAt:      p.CreatedAt(),
	}
}

func FromPaymentView(v *queries.PaymentView) *PaymentResponse {
	resp := &PaymentResponse{
		ID:             v.ID,
		OrderID:        v.OrderID,
		AmountCents:    v.AmountCents,
		Status:         v.Status,
		TransferID:     v.TransferID,
		FromCustomerID: v.FromCustomerID,
		FromAccountID:  v.FromAccountID,
		CreatedAt:      v.CreatedAt,
	}
	if v.Refund != nil {
		resp.Refund = &RefundResponse{
			ID:          v.Refund.ID,
			AmountCents: v.Refund.AmountCents,
			TransferID:  v.Refund.TransferID,
			CreatedAt:   v.Refund.CreatedAt,
		}
	}
	return resp
}

func FromCancelResult(r *commands.CancelResult) *CancelResponse {
	resp := &CancelResponse{Order: FromOrder(r.Order)}
	if r.Refund != nil {
		resp.Refund = &RefundResponse{
			ID:          r.Refund.ID(),
			AmountCents: r.Refund.Amount(),
			TransferID:  r.Refund.TransferID(),
			CreatedAt:   r.Refund.CreatedAt(),
		}
	}
	return resp
}
