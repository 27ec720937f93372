package bootstrap

import (
	"store-fulfillment/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var common = fx.Options(
	ConfigModule,
	LoggerModule,
	JWTModule,
	components.PersistenceModule,
	components.InfraModule,
)

// StoreModule wires the store service: orders, payments and the inventory allocator.
var StoreModule = fx.Options(
	common,
	components.MetricsModule("store"),
	components.StoreModule,
)

// DeliveryModule wires the delivery service and its scheduler.
var DeliveryModule = fx.Options(
	common,
	components.MetricsModule("delivery"),
	components.DeliveryModule,
)
