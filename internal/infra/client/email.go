package client

import (
	"context"
	"net/http"

	"store-fulfillment/internal/pkg/config"
	"store-fulfillment/internal/usecase/commands"
	"store-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
)

type emailRequest struct {
	DeliveryID     uuid.UUID `json:"delivery_id"`
	EmailAddress   string    `json:"email_address"`
	DeliveryStatus int       `json:"delivery_status"`
	Address        string    `json:"address"`
	Accident       string    `json:"accident"`
}

type EmailClient struct {
	caller
}

var _ commands.EmailClient = (*EmailClient)(nil)

func NewEmailClient(cfg config.Config, tokens TokenSource, metrics shared.Metrics) *EmailClient {
	return &EmailClient{caller: newCaller("email", cfg.Clients.EmailBaseURL, cfg.Clients.Timeout, tokens, metrics)}
}

func (c *EmailClient) Notify(ctx context.Context, n commands.EmailNotification) error {
	return c.do(ctx, "notify", http.MethodPost, "/email/emails", emailRequest{
		DeliveryID:     n.DeliveryID,
		EmailAddress:   n.Email,
		DeliveryStatus: n.Status.Code(),
		Address:        n.Address,
		Accident:       n.Accident,
	}, nil)
}
