//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"store-fulfillment/internal/domain/delivery"
	"store-fulfillment/internal/domain/order"
	"store-fulfillment/internal/domain/payment"
	"store-fulfillment/internal/domain/user"
	"store-fulfillment/internal/handler"
	"store-fulfillment/internal/handler/api"
	resdto "store-fulfillment/internal/handler/dto/response"
	"store-fulfillment/internal/handler/middleware"
	"store-fulfillment/internal/pkg/config"
	"store-fulfillment/internal/pkg/errs"
	"store-fulfillment/internal/usecase/commands"
	"store-fulfillment/internal/usecase/queries"
	"store-fulfillment/internal/usecase/shared"
	"store-fulfillment/tests/common/authtest"
	"store-fulfillment/tests/common/builder"
	"store-fulfillment/tests/common/httptest"
	"store-fulfillment/tests/common/testutil"
	commandsmock "store-fulfillment/tests/mock/commands"
	queriesmock "store-fulfillment/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockSaga    *commandsmock.MockOrderSaga
	mockQueries *queriesmock.MockOrderQueries
	jwt         *authtest.JWTHelper
	userID      uuid.UUID
	token       string
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	cfg := config.NewTestConfig()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockSaga = commandsmock.NewMockOrderSaga(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	s.jwt = authtest.NewJWTHelper(cfg.JWT)
	s.userID = uuid.New()
	s.token = s.jwt.GenerateToken(s.T(), s.userID, user.RoleCustomer)

	s.router = gin.New()
	handler.NewStoreRouter(s.router, handler.Infra{
		Config: cfg,
		Logger: middleware.NewLogger(cfg.Log),
		Auth:   s.jwt.Middleware(s.T()),
	}, api.NewOrderHandler(s.mockSaga, s.mockQueries))
}

func (s *OrderHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

func (s *OrderHandlerTestSuite) customer() shared.Actor {
	return shared.Actor{UserID: s.userID, Role: user.RoleCustomer}
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *OrderHandlerTestSuite) TestCreate() {
	url := "/api/orders"
	b := builder.NewOrderBuilder().WithUserID(s.userID)
	reqBody := b.BuildCreateRequestDTO()

	s.Run("success: returns 201 with the pending order", func() {
		created, err := b.BuildDomain()
		s.Require().NoError(err)
		s.mockSaga.EXPECT().CreateOrder(gomock.Any(), s.userID, reqBody.ProductID, reqBody.Quantity).
			Return(created, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.token)

		var body resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(created.ID(), body.ID)
		s.Equal("PENDING", body.Status)
		s.Equal("EMPTY", body.DeliveryStatus)
		s.Equal(int64(7500), body.AmountCents)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/orders/" + created.ID().String()})
	})

	s.Run("error: 400 on invalid body", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{"missing product_id", testutil.Field("product_id", nil)},
			{"missing quantity", testutil.Field("quantity", nil)},
			{"zero quantity", testutil.Field("quantity", 0)},
			{"negative quantity", testutil.Field("quantity", -2)},
			{"malformed product_id", testutil.Field("product_id", "not-a-uuid")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), reqBody, tc.mutate), s.token)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: 401 without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("error: 401 with expired token", func() {
		expired := s.jwt.CreateExpiredToken(s.T(), s.userID, user.RoleCustomer)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, expired)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	s.Run("error: maps saga errors by class", func() {
		cases := []struct {
			name   string
			err    error
			status int
			msg    string
		}{
			{"insufficient stock", errs.Define(errs.ErrBusinessRule, "insufficient stock"), http.StatusConflict, "insufficient stock"},
			{"unknown product", errs.Define(errs.ErrNotFound, "product not found"), http.StatusNotFound, "product not found"},
			{"storage failure", errors.New("connection reset"), http.StatusInternalServerError, "internal server error"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockSaga.EXPECT().CreateOrder(gomock.Any(), s.userID, gomock.Any(), gomock.Any()).
					Return(nil, tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.token)
				httptest.AssertErrorResponse(s.T(), rec, tc.status, tc.msg)
			})
		}
	})
}

// ================================================================================
// TestList / TestGet
// ================================================================================

func (s *OrderHandlerTestSuite) TestList() {
	views := []*queries.OrderView{
		builder.NewOrderBuilder().WithUserID(s.userID).BuildView(),
		builder.NewOrderBuilder().WithUserID(s.userID).BuildView(),
	}

	s.Run("success: passes cursor and limit through", func() {
		s.mockQueries.EXPECT().
			ListMine(gomock.Any(), s.customer(), &queries.Cursor{After: "abc"}, 2).
			Return(views, &queries.Cursor{After: "next"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/orders?after=abc&limit=2", nil, s.token)

		var body resdto.OrderListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Orders, 2)
		s.Equal("next", body.NextCursor)
	})

	s.Run("error: 400 on non numeric limit", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/orders?limit=ten", nil, s.token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid limit")
	})

	s.Run("error: 400 on bad cursor", func() {
		s.mockQueries.EXPECT().ListMine(gomock.Any(), s.customer(), gomock.Any(), 0).
			Return(nil, nil, queries.ErrInvalidCursor).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/orders?after=zzz", nil, s.token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid cursor")
	})
}

func (s *OrderHandlerTestSuite) TestGet() {
	view := builder.NewOrderBuilder().WithUserID(s.userID).BuildView()

	s.Run("success", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.customer(), view.ID).Return(view, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/orders/"+view.ID.String(), nil, s.token)

		var body resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ProductName, body.ProductName)
	})

	s.Run("error: 404 for someone else's order", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.customer(), view.ID).Return(nil, order.ErrNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/orders/"+view.ID.String(), nil, s.token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "order not found")
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/orders/123", nil, s.token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("success: reservations", func() {
		s.mockQueries.EXPECT().ListReservations(gomock.Any(), s.customer(), view.ID).
			Return([]*queries.ReservationRecordView{{ID: uuid.New(), LotID: uuid.New(), Quantity: 3, Status: "DISPATCHED"}}, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/orders/"+view.ID.String()+"/reservations", nil, s.token)

		var body []resdto.ReservationRecordResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 1)
		s.Equal("DISPATCHED", body[0].Status)
	})
}

// ================================================================================
// TestPay
// ================================================================================

func (s *OrderHandlerTestSuite) TestPay() {
	orderID := uuid.New()
	url := "/api/orders/" + orderID.String() + "/payment"
	reqBody := map[string]any{"customer_id": 5, "account_id": 42, "address": "1 George St"}

	s.Run("success: returns 201 with the payment", func() {
		from, err := payment.NewAccount(5, 42)
		s.Require().NoError(err)
		p, err := payment.NewPayment(orderID, 7500, 991, from, builder.NewOrderBuilder().Now)
		s.Require().NoError(err)
		s.mockSaga.EXPECT().
			Pay(gomock.Any(), s.customer(), commands.PayRequest{OrderID: orderID, From: from, Address: "1 George St"}).
			Return(p, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.token)

		var body resdto.PaymentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(int64(991), body.TransferID)
		s.Equal(int64(7500), body.AmountCents)
		s.Equal("PAID", body.Status)
	})

	s.Run("error: 400 on missing account", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			testutil.DtoMap(s.T(), reqBody, testutil.Field("account_id", nil)), s.token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: maps saga errors by class", func() {
		cases := []struct {
			name   string
			err    error
			status int
			msg    string
		}{
			{"delivery refused, charge reversed", errs.Classify(errors.New("503"), commands.ErrDeliveryRequest), http.StatusBadGateway, "payment reversed"},
			{"already paid", order.ErrNotPayable, http.StatusConflict, ""},
			{"bank rejected", errs.Classify(errors.New("insufficient funds"), errs.ErrBusinessRule), http.StatusConflict, "business rule"},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockSaga.EXPECT().Pay(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.token)
				httptest.AssertErrorResponse(s.T(), rec, tc.status, tc.msg)
			})
		}
	})
}

func (s *OrderHandlerTestSuite) TestGetPayment() {
	orderID := uuid.New()
	view := &queries.PaymentView{
		ID: uuid.New(), OrderID: orderID, UserID: s.userID, AmountCents: 7500, Status: "REFUNDED",
		Refund: &queries.RefundView{ID: uuid.New(), AmountCents: 7500, TransferID: 12},
	}
	s.mockQueries.EXPECT().GetPayment(gomock.Any(), s.customer(), orderID).Return(view, nil).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/orders/"+orderID.String()+"/payment", nil, s.token)

	var body resdto.PaymentResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Require().NotNil(body.Refund)
	s.Equal(int64(12), body.Refund.TransferID)
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *OrderHandlerTestSuite) TestCancel() {
	o, err := builder.NewOrderBuilder().WithUserID(s.userID).BuildDomain()
	s.Require().NoError(err)
	url := "/api/orders/" + o.ID().String() + "/cancel"

	s.Run("success", func() {
		s.mockSaga.EXPECT().Cancel(gomock.Any(), s.customer(), o.ID()).
			Return(&commands.CancelResult{Order: o}, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, s.token)

		var body resdto.CancelResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(o.ID(), body.Order.ID)
		s.Nil(body.Refund)
	})

	s.Run("error: 409 once the delivery left setup", func() {
		s.mockSaga.EXPECT().Cancel(gomock.Any(), s.customer(), o.ID()).Return(nil, order.ErrNotCancelable).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, s.token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}

// ================================================================================
// TestUpdateDeliveryStatus
// ================================================================================

func (s *OrderHandlerTestSuite) TestUpdateDeliveryStatus() {
	orderID := uuid.New()
	url := "/api/orders/" + orderID.String() + "/delivery-status"

	s.Run("success: service role gets the status code back", func() {
		o, err := builder.NewOrderBuilder().BuildDomain()
		s.Require().NoError(err)
		s.Require().NoError(o.ApplyDeliveryStatus(delivery.StatusPickup, o.CreatedAt()))
		s.mockSaga.EXPECT().UpdateDeliveryStatus(gomock.Any(), orderID, delivery.StatusPickup).Return(o, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"delivery_status": 2}, s.jwt.ServiceToken(s.T()))

		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"status":2}`, rec.Body.String())
	})

	s.Run("error: 403 for customers", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"delivery_status": 2}, s.token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("error: 400 on unknown status code", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"delivery_status": 42}, s.jwt.ServiceToken(s.T()))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid delivery status")
	})

	s.Run("error: 400 on missing status", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{}, s.jwt.ServiceToken(s.T()))
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}
