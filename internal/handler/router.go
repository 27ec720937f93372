package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"store-fulfillment/internal/domain/user"
	"store-fulfillment/internal/handler/api"
	"store-fulfillment/internal/handler/middleware"
	"store-fulfillment/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// Infra carries what both services mount next to their API.
type Infra struct {
	Config  config.Config
	Logger  *middleware.Logger
	Metrics http.Handler
	Auth    *middleware.AuthMiddleware
}

func NewStoreRouter(engine *gin.Engine, infra Infra, orderHandler *api.OrderHandler) {
	setupMiddleware(engine, infra)
	setupCommonRoutes(engine, infra)

	serviceOnly := infra.Auth.RequireRole(user.RoleService, user.RoleAdmin)

	apiGroup := engine.Group("/api")
	{
		orders := apiGroup.Group("/orders")
		orders.Use(infra.Auth.RequireAuth())
		{
			addRoutes(orders, []route{
				{Method: http.MethodPost, Path: "", Handler: orderHandler.Create},
				{Method: http.MethodGet, Path: "", Handler: orderHandler.List},
				{Method: http.MethodGet, Path: "/:id", Handler: orderHandler.Get},
				{Method: http.MethodGet, Path: "/:id/reservations", Handler: orderHandler.ListReservations},
				{Method: http.MethodPost, Path: "/:id/payment", Handler: orderHandler.Pay},
				{Method: http.MethodGet, Path: "/:id/payment", Handler: orderHandler.GetPayment},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: orderHandler.Cancel},
				{Method: http.MethodPut, Path: "/:id/delivery-status", Handler: orderHandler.UpdateDeliveryStatus, Mw: []gin.HandlerFunc{serviceOnly}},
			})
		}
	}
}

func NewDeliveryRouter(engine *gin.Engine, infra Infra, deliveryHandler *api.DeliveryHandler) {
	setupMiddleware(engine, infra)
	setupCommonRoutes(engine, infra)

	apiGroup := engine.Group("/api")
	{
		deliveries := apiGroup.Group("/deliveries")
		deliveries.Use(infra.Auth.RequireAuth(), infra.Auth.RequireRole(user.RoleService, user.RoleAdmin))
		{
			addRoutes(deliveries, []route{
				{Method: http.MethodPost, Path: "", Handler: deliveryHandler.Create},
				{Method: http.MethodPut, Path: "/cancel", Handler: deliveryHandler.Cancel},
				{Method: http.MethodGet, Path: "/:id", Handler: deliveryHandler.Get},
			})
		}
	}
}

func setupMiddleware(engine *gin.Engine, infra Infra) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(infra.Config.CORS))
	engine.Use(infra.Logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupCommonRoutes(engine *gin.Engine, infra Infra) {
	engine.GET("/health", healthCheck)
	if infra.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(infra.Metrics))
	}

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
