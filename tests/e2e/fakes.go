//go:build e2e

package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
)

// Transfer is one call the store made against the fake bank.
type Transfer struct {
	FromCustomerID string
	FromAccountID  string
	ToCustomerID   int64 `json:"to_customer_id"`
	ToAccountID    int64 `json:"to_account_id"`
	Amount         int64 `json:"amount"`
}

// FakeServices stands in for the bank and delivery services the store calls out to.
type FakeServices struct {
	Bank     *httptest.Server
	Delivery *httptest.Server

	mu             sync.Mutex
	transfers      []Transfer
	deliveries     []map[string]any
	cancellations  []map[string]any
	rejectTransfer atomic.Bool
	nextTxID       atomic.Int64
}

func NewFakeServices(t *testing.T) *FakeServices {
	t.Helper()
	f := &FakeServices{}

	bank := http.NewServeMux()
	bank.HandleFunc("POST /bank/customers/{customer}/accounts/{account}/transaction_records/transfer", func(w http.ResponseWriter, r *http.Request) {
		if f.rejectTransfer.Load() {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"message": "insufficient funds"})
			return
		}
		var tr Transfer
		if err := json.NewDecoder(r.Body).Decode(&tr); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": err.Error()})
			return
		}
		tr.FromCustomerID = r.PathValue("customer")
		tr.FromAccountID = r.PathValue("account")
		f.mu.Lock()
		f.transfers = append(f.transfers, tr)
		f.mu.Unlock()
		writeJSON(w, http.StatusCreated, map[string]any{"id": f.nextTxID.Add(1)})
	})

	delivery := http.NewServeMux()
	delivery.HandleFunc("POST /api/deliveries", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.deliveries = append(f.deliveries, body)
		f.mu.Unlock()
		writeJSON(w, http.StatusCreated, map[string]any{"id": uuid.NewString(), "status": 1})
	})
	delivery.HandleFunc("PUT /api/deliveries/cancel", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.cancellations = append(f.cancellations, body)
		f.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"status": 5})
	})

	f.Bank = httptest.NewServer(bank)
	f.Delivery = httptest.NewServer(delivery)
	t.Cleanup(func() {
		f.Bank.Close()
		f.Delivery.Close()
	})
	return f
}

// RejectTransfers makes the bank answer every transfer with a 4xx.
func (f *FakeServices) RejectTransfers(reject bool) {
	f.rejectTransfer.Store(reject)
}

func (f *FakeServices) Transfers() []Transfer {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Transfer(nil), f.transfers...)
}

func (f *FakeServices) Deliveries() []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]any(nil), f.deliveries...)
}

func (f *FakeServices) Cancellations() []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]any(nil), f.cancellations...)
}

func (f *FakeServices) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transfers = nil
	f.deliveries = nil
	f.cancellations = nil
	f.rejectTransfer.Store(false)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
