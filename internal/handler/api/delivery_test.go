//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"store-fulfillment/internal/domain/delivery"
	"store-fulfillment/internal/domain/user"
	"store-fulfillment/internal/handler"
	"store-fulfillment/internal/handler/api"
	resdto "store-fulfillment/internal/handler/dto/response"
	"store-fulfillment/internal/handler/middleware"
	"store-fulfillment/internal/pkg/config"
	"store-fulfillment/internal/usecase/commands"
	"store-fulfillment/internal/usecase/queries"
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

type DeliveryHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockCtrl      *gomock.Controller
	mockLifecycle *commandsmock.MockDeliveryLifecycle
	mockQueries   *queriesmock.MockDeliveryQueries
	jwt           *authtest.JWTHelper
	token         string
}

func (s *DeliveryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	cfg := config.NewTestConfig()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockLifecycle = commandsmock.NewMockDeliveryLifecycle(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockDeliveryQueries(s.mockCtrl)
	s.jwt = authtest.NewJWTHelper(cfg.JWT)
	s.token = s.jwt.ServiceToken(s.T())

	s.router = gin.New()
	handler.NewDeliveryRouter(s.router, handler.Infra{
		Config: cfg,
		Logger: middleware.NewLogger(cfg.Log),
		Auth:   s.jwt.Middleware(s.T()),
	}, api.NewDeliveryHandler(s.mockLifecycle, s.mockQueries))
}

func (s *DeliveryHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestDeliveryHandlerSuite(t *testing.T) {
	suite.Run(t, new(DeliveryHandlerTestSuite))
}

func (s *DeliveryHandlerTestSuite) TestCreate() {
	url := "/api/deliveries"
	b := builder.NewDeliveryBuilder()
	reqBody := map[string]any{
		"order_id": b.OrderID.String(),
		"quantity": b.Quantity,
		"address":  b.Address,
		"email":    b.Email,
	}

	s.Run("success: returns id and the SETUP code", func() {
		d, err := b.BuildDomain()
		s.Require().NoError(err)
		s.mockLifecycle.EXPECT().Create(gomock.Any(), commands.DeliveryRequest{
			OrderID: b.OrderID, Quantity: b.Quantity, Address: b.Address, Email: b.Email,
		}).Return(d, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.token)

		var body resdto.DeliveryCreatedResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(d.ID(), body.ID)
		s.Equal(delivery.StatusSetup.Code(), body.Status)
	})

	s.Run("error: 400 on invalid body", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{"missing order_id", testutil.Field("order_id", nil)},
			{"zero quantity", testutil.Field("quantity", 0)},
			{"missing address", testutil.Field("address", nil)},
			{"missing email", testutil.Field("email", nil)},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), reqBody, tc.mutate), s.token)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: 409 when the order already has a delivery", func() {
		s.mockLifecycle.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, delivery.ErrAlreadyExists).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "order already has a delivery")
	})

	s.Run("error: 403 for customer tokens", func() {
		token := s.jwt.GenerateToken(s.T(), uuid.New(), user.RoleCustomer)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})
}

func (s *DeliveryHandlerTestSuite) TestCancel() {
	url := "/api/deliveries/cancel"
	orderID := uuid.New()

	s.Run("success", func() {
		d, err := builder.NewDeliveryBuilder().WithOrderID(orderID).BuildDomain()
		s.Require().NoError(err)
		_, err = d.Cancel(time.Now())
		s.Require().NoError(err)
		s.mockLifecycle.EXPECT().Cancel(gomock.Any(), orderID).Return(d, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"order_id": orderID}, s.token)

		s.JSONEq(`{"status":5}`, rec.Body.String())
	})

	s.Run("error: 409 after pickup", func() {
		s.mockLifecycle.EXPECT().Cancel(gomock.Any(), orderID).Return(nil, delivery.ErrNotCancelable).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"order_id": orderID}, s.token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "only be cancelled during setup")
	})

	s.Run("error: 404 for unknown order", func() {
		s.mockLifecycle.EXPECT().Cancel(gomock.Any(), orderID).Return(nil, delivery.ErrNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"order_id": orderID}, s.token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "delivery not found")
	})
}

func (s *DeliveryHandlerTestSuite) TestGet() {
	id := uuid.New()
	view := &queries.DeliveryView{ID: id, OrderID: uuid.New(), Quantity: 95, Status: "PICKUP", StatusCode: 2}

	s.Run("success", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(view, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/deliveries/"+id.String(), nil, s.token)

		var body resdto.DeliveryResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(95, body.Quantity)
		s.Equal(2, body.StatusCode)
	})

	s.Run("error: 401 without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/deliveries/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})
}

func TestHealthAndMetricsRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.NewTestConfig()
	router := gin.New()
	handler.NewDeliveryRouter(router, handler.Infra{
		Config:  cfg,
		Logger:  middleware.NewLogger(cfg.Log),
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("ok_total 1\n")) }),
		Auth:    authtest.NewJWTHelper(cfg.JWT).Middleware(t),
	}, api.NewDeliveryHandler(nil, nil))

	rec := httptest.PerformRequest(t, router, http.MethodGet, "/health", nil, "")
	httptest.AssertSuccessResponse(t, rec, http.StatusOK, nil)

	rec = httptest.PerformRequest(t, router, http.MethodGet, "/metrics", nil, "")
	httptest.AssertSuccessResponse(t, rec, http.StatusOK, nil)
}
