package client

import (
	"context"
	"net/http"

	"store-fulfillment/internal/pkg/config"
	"store-fulfillment/internal/usecase/commands"
	"store-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
)

type deliveryRequest struct {
	OrderID  uuid.UUID `json:"order_id"`
	Quantity int       `json:"quantity"`
	Address  string    `json:"address"`
	Email    string    `json:"email"`
}

type cancelDeliveryRequest struct {
	OrderID uuid.UUID `json:"order_id"`
}

type DeliveryClient struct {
	caller
}

var _ commands.DeliveryClient = (*DeliveryClient)(nil)

func NewDeliveryClient(cfg config.Config, tokens TokenSource, metrics shared.Metrics) *DeliveryClient {
	return &DeliveryClient{caller: newCaller("delivery", cfg.Clients.DeliveryBaseURL, cfg.Clients.Timeout, tokens, metrics)}
}

func (c *DeliveryClient) RequestDelivery(ctx context.Context, req commands.DeliveryRequest) error {
	return c.do(ctx, "request", http.MethodPost, "/api/deliveries", deliveryRequest{
		OrderID:  req.OrderID,
		Quantity: req.Quantity,
		Address:  req.Address,
		Email:    req.Email,
	}, nil)
}

func (c *DeliveryClient) Cancel(ctx context.Context, orderID uuid.UUID) error {
	return c.do(ctx, "cancel", http.MethodPut, "/api/deliveries/cancel", cancelDeliveryRequest{OrderID: orderID}, nil)
}
