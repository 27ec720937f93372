package response

import (
	"time"

	"store-fulfillment/internal/domain/delivery"
	"store-fulfillment/internal/usecase/queries"

	"github.com/google/uuid"
)

type DeliveryCreatedResponse struct {
	ID     uuid.UUID `json:"id"`
	Status int       `json:"status"`
}

type DeliveryResponse struct {
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

func FromCreatedDelivery(d *delivery.Delivery) *DeliveryCreatedResponse {
	return &DeliveryCreatedResponse{ID: d.ID(), Status: d.Status().Code()}
}

func FromStatus(s delivery.Status) StatusResponse {
	return StatusResponse{Status: s.Code()}
}

func FromDeliveryView(v *queries.DeliveryView) *DeliveryResponse {
	return &DeliveryResponse{
		ID:         v.ID,
		OrderID:    v.OrderID,
		Quantity:   v.Quantity,
		Address:    v.Address,
		Email:      v.Email,
		Status:     v.Status,
		StatusCode: v.StatusCode,
		NextFireAt: v.NextFireAt,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}
