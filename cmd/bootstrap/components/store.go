package components

import (
	"store-fulfillment/internal/handler"
	"store-fulfillment/internal/handler/api"
	"store-fulfillment/internal/infra/client"
	"store-fulfillment/internal/usecase/commands"
	"store-fulfillment/internal/usecase/queries"

	"go.uber.org/fx"
)

var StoreModule = fx.Module("store",
	storeClientsModule,
	storeUseCaseModule,
	HandlerModule,
	fx.Provide(
		api.NewOrderHandler,
	),
	fx.Invoke(handler.NewStoreRouter),
)

var storeClientsModule = fx.Module("store/clients",
	fx.Provide(
		fx.Annotate(
			client.NewBankClient,
			fx.As(new(commands.BankClient)),
		),
		fx.Annotate(
			client.NewDeliveryClient,
			fx.As(new(commands.DeliveryClient)),
		),
	),
)

var storeUseCaseModule = fx.Module("store/usecase",
	fx.Provide(
		commands.NewInventoryAllocator,
		commands.NewOrderSaga,
		queries.NewOrderQueries,
	),
)
