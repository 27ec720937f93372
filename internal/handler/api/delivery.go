package api

import (
	"net/http"

	reqdto "store-fulfillment/internal/handler/dto/request"
	resdto "store-fulfillment/internal/handler/dto/response"
	"store-fulfillment/internal/handler/httperr"
	"store-fulfillment/internal/usecase/commands"
	"store-fulfillment/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DeliveryHandler struct {
	lifecycle commands.DeliveryLifecycle
	q         queries.DeliveryQueries
}

func NewDeliveryHandler(lifecycle commands.DeliveryLifecycle, q queries.DeliveryQueries) *DeliveryHandler {
	return &DeliveryHandler{lifecycle: lifecycle, q: q}
}

// @Summary Request delivery
// @Description Create a delivery in SETUP and arm its pickup timer
// @Tags deliveries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateDeliveryRequest true "Delivery request"
// @Success 201 {object} resdto.DeliveryCreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/deliveries [post]
func (h *DeliveryHandler) Create(c *gin.Context) {
	var req reqdto.CreateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	d, err := h.lifecycle.Create(c.Request.Context(), req.ToCommand())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Header("Location", "/api/deliveries/"+d.ID().String())
	c.JSON(http.StatusCreated, resdto.FromCreatedDelivery(d))
}

// @Summary Cancel delivery
// @Description Cancel the delivery of an order; only allowed in SETUP, repeated cancels succeed
// @Tags deliveries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CancelDeliveryRequest true "Cancel request"
// @Success 200 {object} resdto.StatusResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/deliveries/cancel [put]
func (h *DeliveryHandler) Cancel(c *gin.Context) {
	var req reqdto.CancelDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	d, err := h.lifecycle.Cancel(c.Request.Context(), req.OrderID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromStatus(d.Status()))
}

// @Summary Get delivery
// @Tags deliveries
// @Produce json
// @Security BearerAuth
// @Param id path string true "Delivery ID"
// @Success 200 {object} resdto.DeliveryResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/deliveries/{id} [get]
func (h *DeliveryHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDeliveryView(view))
}
