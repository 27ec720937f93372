package request

import (
	"store-fulfillment/internal/domain/delivery"
	"store-fulfillment/internal/domain/payment"
	"store-fulfillment/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateOrderRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

type PayRequest struct {
	CustomerID int64  `json:"customer_id" binding:"required,min=1"`
	AccountID  int64  `json:"account_id" binding:"required,min=1"`
	Address    string `json:"address" binding:"required,max=500"`
}

func (r PayRequest) ToCommand(orderID uuid.UUID) (commands.PayRequest, error) {
	from, err := payment.NewAccount(r.CustomerID, r.AccountID)
	if err != nil {
		return commands.PayRequest{}, err
	}
	return commands.PayRequest{OrderID: orderID, From: from, Address: r.Address}, nil
}

// DeliveryStatusRequest carries the numeric status code the delivery service pushes.
type DeliveryStatusRequest struct {
	DeliveryStatus *int `json:"delivery_status" binding:"required"`
}

func (r DeliveryStatusRequest) ToDomain() (delivery.Status, error) {
	return delivery.StatusFromCode(*r.DeliveryStatus)
}
