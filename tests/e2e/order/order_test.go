//go:build e2e

package order_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"store-fulfillment/internal/domain/user"
	reqdto "store-fulfillment/internal/handler/dto/request"
	resdto "store-fulfillment/internal/handler/dto/response"
	"store-fulfillment/tests/common/authtest"
	"store-fulfillment/tests/common/dbtest"
	"store-fulfillment/tests/common/httptest"
	"store-fulfillment/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type OrderE2ESuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper
}

func TestOrderE2E(t *testing.T) {
	suite.Run(t, new(OrderE2ESuite))
}

func (s *OrderE2ESuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
}

type catalog struct {
	userID    uuid.UUID
	token     string
	productID uuid.UUID
	lots      []uuid.UUID
}

func (s *OrderE2ESuite) seed(lotQuantities ...int) catalog {
	t := s.T()
	userID := dbtest.CreateTestUser(t, s.DB, "buyer@example.com", string(user.RoleCustomer))
	productID := dbtest.CreateTestProduct(t, s.DB, "coffee beans", 1250)
	var lots []uuid.UUID
	for _, q := range lotQuantities {
		lots = append(lots, dbtest.CreateTestLot(t, s.DB, productID, q))
	}
	return catalog{
		userID:    userID,
		token:     s.jwt.GenerateToken(t, userID, user.RoleCustomer),
		productID: productID,
		lots:      lots,
	}
}

func (s *OrderE2ESuite) createOrder(c catalog, quantity int) *resdto.OrderResponse {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/orders",
		reqdto.CreateOrderRequest{ProductID: c.productID, Quantity: quantity}, c.token)
	var res resdto.OrderResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &res)
	return &res
}

func (s *OrderE2ESuite) pay(c catalog, orderID uuid.UUID) *resdto.PaymentResponse {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/orders/"+orderID.String()+"/payment",
		reqdto.PayRequest{CustomerID: 42, AccountID: 7, Address: "1 Main St"}, c.token)
	var res resdto.PaymentResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &res)
	return &res
}

func (s *OrderE2ESuite) TestOrderLifecycle() {
	s.Run("create reserves stock from the largest lot first", func() {
		c := s.seed(3, 10)

		res := s.createOrder(c, 4)

		s.Equal("PENDING", res.Status)
		s.Equal("EMPTY", res.DeliveryStatus)
		s.Equal(int64(4*1250), res.AmountCents)
		s.Equal(3, dbtest.LotQuantity(s.T(), s.DB, c.lots[0]))
		s.Equal(6, dbtest.LotQuantity(s.T(), s.DB, c.lots[1]))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			"/api/orders/"+res.ID.String()+"/reservations", nil, c.token)
		var records []resdto.ReservationRecordResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &records)
		s.Require().Len(records, 1)
		s.Equal(c.lots[1], records[0].LotID)
		s.Equal(4, records[0].Quantity)
	})

	s.Run("create spans lots when one is not enough", func() {
		c := s.seed(3, 5)

		s.createOrder(c, 7)

		s.Equal(1, dbtest.LotQuantity(s.T(), s.DB, c.lots[0]))
		s.Equal(0, dbtest.LotQuantity(s.T(), s.DB, c.lots[1]))
	})

	s.Run("insufficient stock is rejected and leaves lots untouched", func() {
		c := s.seed(2, 2)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/orders",
			reqdto.CreateOrderRequest{ProductID: c.productID, Quantity: 5}, c.token)

		s.Equal(http.StatusConflict, w.Code)
		s.Equal(2, dbtest.LotQuantity(s.T(), s.DB, c.lots[0]))
		s.Equal(2, dbtest.LotQuantity(s.T(), s.DB, c.lots[1]))
	})

	s.Run("pay charges the customer and hands the order to delivery", func() {
		c := s.seed(10)
		o := s.createOrder(c, 2)

		p := s.pay(c, o.ID)

		s.Equal("PAID", p.Status)
		s.Equal(int64(2500), p.AmountCents)
		transfers := s.Fakes.Transfers()
		s.Require().Len(transfers, 1)
		s.Equal("42", transfers[0].FromCustomerID)
		s.Equal("7", transfers[0].FromAccountID)
		s.Equal(int64(2500), transfers[0].Amount)
		deliveries := s.Fakes.Deliveries()
		s.Require().Len(deliveries, 1)
		s.Equal(o.ID.String(), deliveries[0]["order_id"])
		s.Equal("buyer@example.com", deliveries[0]["email"])

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/orders/"+o.ID.String(), nil, c.token)
		var got resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &got)
		expected := &resdto.OrderResponse{
			ID:                 o.ID,
			UserID:             c.userID,
			ProductID:          c.productID,
			ProductName:        "coffee beans",
			Quantity:           2,
			AmountCents:        2500,
			Status:             "PROCESSING",
			DeliveryStatus:     "SETUP",
			DeliveryStatusCode: 1,
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(resdto.OrderResponse{}, "CreatedAt", "UpdatedAt"),
		}
		if diff := cmp.Diff(expected, &got, opts...); diff != "" {
			s.T().Errorf("order mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("paying twice is rejected", func() {
		c := s.seed(10)
		o := s.createOrder(c, 1)
		s.pay(c, o.ID)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/orders/"+o.ID.String()+"/payment",
			reqdto.PayRequest{CustomerID: 42, AccountID: 7, Address: "1 Main St"}, c.token)

		s.Equal(http.StatusConflict, w.Code)
		s.Len(s.Fakes.Transfers(), 1)
	})

	s.Run("bank rejection leaves the order payable", func() {
		c := s.seed(10)
		o := s.createOrder(c, 1)
		s.Fakes.RejectTransfers(true)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/orders/"+o.ID.String()+"/payment",
			reqdto.PayRequest{CustomerID: 42, AccountID: 7, Address: "1 Main St"}, c.token)
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "bank rejected the request: insufficient funds")

		s.Fakes.RejectTransfers(false)
		s.pay(c, o.ID)
	})

	s.Run("cancel refunds and restores stock", func() {
		c := s.seed(10)
		o := s.createOrder(c, 4)
		s.pay(c, o.ID)
		s.Equal(6, dbtest.LotQuantity(s.T(), s.DB, c.lots[0]))

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/orders/"+o.ID.String()+"/cancel", nil, c.token)
		var res resdto.CancelResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &res)

		s.Equal("REFUNDED", res.Order.Status)
		s.Equal("CANCELLED", res.Order.DeliveryStatus)
		s.Require().NotNil(res.Refund)
		s.Equal(int64(5000), res.Refund.AmountCents)
		s.Equal(10, dbtest.LotQuantity(s.T(), s.DB, c.lots[0]))
		s.Len(s.Fakes.Cancellations(), 1)

		transfers := s.Fakes.Transfers()
		s.Require().Len(transfers, 2)
		s.Equal(int64(42), transfers[1].ToCustomerID)
		s.Equal(int64(7), transfers[1].ToAccountID)
	})

	s.Run("cancel after pickup is rejected", func() {
		c := s.seed(10)
		o := s.createOrder(c, 1)
		s.pay(c, o.ID)
		code := 2
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPut, "/api/orders/"+o.ID.String()+"/delivery-status",
			reqdto.DeliveryStatusRequest{DeliveryStatus: &code}, s.jwt.ServiceToken(s.T()))
		s.Require().Equal(http.StatusOK, w.Code)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/orders/"+o.ID.String()+"/cancel", nil, c.token)

		s.Equal(http.StatusConflict, w.Code)
		s.Equal(9, dbtest.LotQuantity(s.T(), s.DB, c.lots[0]))
	})

	s.Run("completed delivery completes the order", func() {
		c := s.seed(10)
		o := s.createOrder(c, 1)
		s.pay(c, o.ID)
		code := 4

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPut, "/api/orders/"+o.ID.String()+"/delivery-status",
			reqdto.DeliveryStatusRequest{DeliveryStatus: &code}, s.jwt.ServiceToken(s.T()))
		s.Require().Equal(http.StatusOK, w.Code)
		s.JSONEq(`{"status":4}`, w.Body.String())

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/orders/"+o.ID.String(), nil, c.token)
		var got resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &got)
		s.Equal("COMPLETED", got.Status)
		s.Equal("COMPLETED", got.DeliveryStatus)
	})

	s.Run("orders are private to their owner", func() {
		c := s.seed(10)
		o := s.createOrder(c, 1)
		other := dbtest.CreateTestUser(s.T(), s.DB, "other@example.com", string(user.RoleCustomer))
		token := s.jwt.GenerateToken(s.T(), other, user.RoleCustomer)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/orders/"+o.ID.String(), nil, token)

		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("list pages through orders newest first", func() {
		c := s.seed(100)
		var ids []uuid.UUID
		for range 5 {
			ids = append(ids, s.createOrder(c, 1).ID)
		}

		var seen []uuid.UUID
		cursor := ""
		for range 3 {
			path := "/api/orders?limit=2"
			if cursor != "" {
				path += "&after=" + cursor
			}
			w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, path, nil, c.token)
			var page resdto.OrderListResponse
			httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &page)
			for _, o := range page.Orders {
				seen = append(seen, o.ID)
			}
			cursor = page.NextCursor
			if cursor == "" {
				break
			}
		}

		s.ElementsMatch(ids, seen)
	})
}

// Concurrent orders against one lot never oversell.
func (s *OrderE2ESuite) TestConcurrentAllocation() {
	s.Run("parallel orders drain the lot exactly", func() {
		t := s.T()
		c := s.seed(10)

		const workers = 16
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			created int
			codes   = map[int]int{}
		)
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/orders",
					reqdto.CreateOrderRequest{ProductID: c.productID, Quantity: 1}, c.token)
				mu.Lock()
				defer mu.Unlock()
				codes[w.Code]++
				if w.Code == http.StatusCreated {
					created++
				}
			}()
		}
		wg.Wait()

		remaining := dbtest.LotQuantity(t, s.DB, c.lots[0])
		require.GreaterOrEqual(t, remaining, 0)
		assert.Equal(t, 10, created+remaining, fmt.Sprintf("status codes: %v", codes))
		for code := range codes {
			assert.Contains(t, []int{http.StatusCreated, http.StatusConflict, http.StatusServiceUnavailable}, code)
		}
	})
}
