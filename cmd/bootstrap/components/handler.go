package components

import (
	"store-fulfillment/internal/handler"
	"store-fulfillment/internal/handler/middleware"
	"store-fulfillment/internal/infra/metrics"
	"store-fulfillment/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		middleware.NewAuthMiddleware,
		NewRouterInfra,
	),
)

func NewRouterInfra(cfg config.Config, logger *middleware.Logger, prom *metrics.Prometheus, auth *middleware.AuthMiddleware) handler.Infra {
	return handler.Infra{
		Config:  cfg,
		Logger:  logger,
		Metrics: prom.Handler(),
		Auth:    auth,
	}
}
