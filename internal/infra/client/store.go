package client

import (
	"context"
	"net/http"

	"store-fulfillment/internal/domain/delivery"
	"store-fulfillment/internal/pkg/config"
	"store-fulfillment/internal/usecase/commands"
	"store-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
)

type deliveryStatusRequest struct {
	DeliveryStatus int `json:"delivery_status"`
}

// StoreSink reports delivery progress to the store's callback endpoint.
type StoreSink struct {
	caller
}

var _ commands.OrderStatusSink = (*StoreSink)(nil)

func NewStoreSink(cfg config.Config, tokens TokenSource, metrics shared.Metrics) *StoreSink {
	return &StoreSink{caller: newCaller("store", cfg.Clients.StoreBaseURL, cfg.Clients.Timeout, tokens, metrics)}
}

func (c *StoreSink) Update(ctx context.Context, orderID uuid.UUID, status delivery.Status) error {
	path := "/api/orders/" + orderID.String() + "/delivery-status"
	return c.do(ctx, "update_delivery_status", http.MethodPut, path, deliveryStatusRequest{DeliveryStatus: status.Code()}, nil)
}
