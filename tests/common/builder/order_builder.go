//go:build unit || e2e

package builder

import (
	"time"

	"store-fulfillment/internal/domain/order"
	reqdto "store-fulfillment/internal/handler/dto/request"
	"store-fulfillment/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderBuilder struct {
	UserID         uuid.UUID
	ProductID      uuid.UUID
	ProductName    string
	Quantity       int
	UnitPriceCents int64
	Now            time.Time
}

func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{
		UserID:         uuid.New(),
		ProductID:      uuid.New(),
		ProductName:    "Flat white beans 1kg",
		Quantity:       3,
		UnitPriceCents: 2500,
		Now:            time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (o *OrderBuilder) WithUserID(id uuid.UUID) *OrderBuilder {
	o.UserID = id
	return o
}

func (o *OrderBuilder) WithQuantity(q int) *OrderBuilder {
	o.Quantity = q
	return o
}

func (o *OrderBuilder) BuildDomain() (*order.Order, error) {
	return order.NewOrder(o.UserID, o.ProductID, o.Quantity, o.UnitPriceCents, o.Now)
}

func (o *OrderBuilder) BuildView() *queries.OrderView {
	return &queries.OrderView{
		ID:                 uuid.New(),
		UserID:             o.UserID,
		ProductID:          o.ProductID,
		ProductName:        o.ProductName,
		Quantity:           o.Quantity,
		AmountCents:        int64(o.Quantity) * o.UnitPriceCents,
		Status:             order.StatusPending.String(),
		DeliveryStatus:     "EMPTY",
		DeliveryStatusCode: 0,
		CreatedAt:          o.Now,
		UpdatedAt:          o.Now,
	}
}

func (o *OrderBuilder) BuildCreateRequestDTO() reqdto.CreateOrderRequest {
	return reqdto.CreateOrderRequest{ProductID: o.ProductID, Quantity: o.Quantity}
}
