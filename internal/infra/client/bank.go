package client

import (
	"context"
	"fmt"
	"net/http"

	"store-fulfillment/internal/domain/payment"
	"store-fulfillment/internal/pkg/config"
	"store-fulfillment/internal/usecase/commands"
	"store-fulfillment/internal/usecase/shared"
)

type transferRequest struct {
	ToCustomerID int64 `json:"to_customer_id"`
	ToAccountID  int64 `json:"to_account_id"`
	Amount       int64 `json:"amount"`
}

type transferResponse struct {
	ID int64 `json:"id"`
}

type BankClient struct {
	caller
}

var _ commands.BankClient = (*BankClient)(nil)

func NewBankClient(cfg config.Config, tokens TokenSource, metrics shared.Metrics) *BankClient {
	return &BankClient{caller: newCaller("bank", cfg.Clients.BankBaseURL, cfg.Clients.Timeout, tokens, metrics)}
}

// Transfer moves amountCents between accounts and returns the bank's transaction id.
func (c *BankClient) Transfer(ctx context.Context, from, to payment.Account, amountCents int64) (int64, error) {
	path := fmt.Sprintf("/bank/customers/%d/accounts/%d/transaction_records/transfer", from.CustomerID, from.AccountID)
	var out transferResponse
	err := c.do(ctx, "transfer", http.MethodPost, path, transferRequest{
		ToCustomerID: to.CustomerID,
		ToAccountID:  to.AccountID,
		Amount:       amountCents,
	}, &out)
	if err != nil {
		return 0, err
	}
	return out.ID, nil
}
