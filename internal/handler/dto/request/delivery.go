package request

import (
	"store-fulfillment/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateDeliveryRequest struct {
	OrderID  uuid.UUID `json:"order_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,min=1"`
	Address  string    `json:"address" binding:"required,max=500"`
	Email    string    `json:"email" binding:"required"`
}

func (r CreateDeliveryRequest) ToCommand() commands.DeliveryRequest {
	return commands.DeliveryRequest{
		OrderID:  r.OrderID,
		Quantity: r.Quantity,
		Address:  r.Address,
		Email:    r.Email,
	}
}

type CancelDeliveryRequest struct {
	OrderID uuid.UUID `json:"order_id" binding:"required"`
}
