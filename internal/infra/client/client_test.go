//go:build unit

package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"store-fulfillment/internal/domain/delivery"
	"store-fulfillment/internal/domain/payment"
	"store-fulfillment/internal/infra/client"
	"store-fulfillment/internal/infra/metrics"
	"store-fulfillment/internal/pkg/config"
	"store-fulfillment/internal/pkg/errs"
	"store-fulfillment/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) GenerateServiceToken() (string, error) { return string(s), nil }

func testConfig(url string) config.Config {
	cfg := config.NewTestConfig()
	cfg.Clients.BankBaseURL = url
	cfg.Clients.DeliveryBaseURL = url
	cfg.Clients.EmailBaseURL = url
	cfg.Clients.StoreBaseURL = url + "/"
	cfg.Clients.Timeout = 200 * time.Millisecond
	return cfg
}

func TestBankClient_Transfer(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bank/customers/7/accounts/9/transaction_records/transfer", r.URL.Path)
		assert.Equal(t, "Bearer svc-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 4242}`))
	}))
	defer srv.Close()

	c := client.NewBankClient(testConfig(srv.URL), staticToken("svc-token"), metrics.Nop{})
	id, err := c.Transfer(context.Background(),
		payment.Account{CustomerID: 7, AccountID: 9},
		payment.Account{CustomerID: 1, AccountID: 1},
		2500)

	require.NoError(t, err)
	assert.Equal(t, int64(4242), id)
	assert.Equal(t, map[string]any{"to_customer_id": float64(1), "to_account_id": float64(1), "amount": float64(2500)}, got)
}

func TestBankClient_ErrorClasses(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantClass  error
		wantMsg    string
		wantPublic string // errs.Message
	}{
		{"insufficient funds", http.StatusBadRequest, `{"message":"Insufficient balance"}`, errs.ErrBusinessRule, "Insufficient balance", "bank rejected the request: Insufficient balance"},
		{"nested error body", http.StatusConflict, `{"error":{"message":"account frozen"}}`, errs.ErrBusinessRule, "account frozen", "bank rejected the request: account frozen"},
		{"server failure", http.StatusInternalServerError, `oops`, errs.ErrExternalService, "oops", "external service failure"},
		{"unavailable", http.StatusServiceUnavailable, ``, errs.ErrExternalService, "no body", "external service failure"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := client.NewBankClient(testConfig(srv.URL), nil, metrics.Nop{})
			_, err := c.Transfer(context.Background(), payment.Account{AccountID: 2}, payment.Account{AccountID: 1}, 10)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantClass)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Equal(t, tt.wantPublic, errs.Message(err))
		})
	}
}

func TestCaller_NetworkFailureIsExternal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := client.NewDeliveryClient(testConfig(url), nil, metrics.Nop{})
	err := c.Cancel(context.Background(), uuid.New())
	assert.True(t, errs.IsExternalService(err))
}

func TestCaller_TimeoutIsExternal(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := client.NewEmailClient(testConfig(srv.URL), nil, metrics.Nop{})
	err := c.Notify(context.Background(), commands.EmailNotification{DeliveryID: uuid.New(), Status: delivery.StatusPickup})
	assert.True(t, errs.IsExternalService(err))
}

func TestDeliveryClient_RequestAndCancel(t *testing.T) {
	orderID := uuid.New()
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, orderID.String(), body["order_id"])
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	c := client.NewDeliveryClient(testConfig(srv.URL), nil, metrics.Nop{})
	require.NoError(t, c.RequestDelivery(context.Background(), commands.DeliveryRequest{
		OrderID: orderID, Quantity: 3, Address: "1 Main St", Email: "a@example.com",
	}))
	require.NoError(t, c.Cancel(context.Background(), orderID))

	assert.Equal(t, []string{"POST /api/deliveries", "PUT /api/deliveries/cancel"}, paths)
}

func TestEmailClient_SendsStatusCode(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/email/emails", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	}))
	defer srv.Close()

	c := client.NewEmailClient(testConfig(srv.URL), nil, metrics.Nop{})
	err := c.Notify(context.Background(), commands.EmailNotification{
		DeliveryID: uuid.New(),
		Email:      "a@example.com",
		Status:     delivery.StatusDelivering,
		Address:    "1 Main St",
		Accident:   delivery.AccidentLoss,
	})

	require.NoError(t, err)
	assert.Equal(t, float64(3), body["delivery_status"])
	assert.Equal(t, "Lost 5% of the products", body["accident"])
}

func TestStoreSink_Update(t *testing.T) {
	orderID := uuid.New()
	var (
		path string
		body map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.Method + " " + r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	}))
	defer srv.Close()

	c := client.NewStoreSink(testConfig(srv.URL), nil, metrics.Nop{})
	require.NoError(t, c.Update(context.Background(), orderID, delivery.StatusCompleted))

	assert.Equal(t, "PUT /api/orders/"+orderID.String()+"/delivery-status", path)
	assert.Equal(t, float64(4), body["delivery_status"])
}
