package components

import (
	"context"
	"time"

	"store-fulfillment/internal/domain/delivery"
	"store-fulfillment/internal/handler"
	"store-fulfillment/internal/handler/api"
	"store-fulfillment/internal/infra/client"
	"store-fulfillment/internal/infra/scheduler"
	"store-fulfillment/internal/pkg/config"
	"store-fulfillment/internal/usecase/commands"
	"store-fulfillment/internal/usecase/queries"

	"go.uber.org/fx"
)

var DeliveryModule = fx.Module("delivery",
	deliveryClientsModule,
	deliveryUseCaseModule,
	HandlerModule,
	fx.Provide(
		api.NewDeliveryHandler,
		NewScheduler,
	),
	fx.Invoke(handler.NewDeliveryRouter),
	fx.Invoke(StartScheduler),
)

var deliveryClientsModule = fx.Module("delivery/clients",
	fx.Provide(
		fx.Annotate(
			client.NewStoreSink,
			fx.As(new(commands.OrderStatusSink)),
		),
		fx.Annotate(
			client.NewEmailClient,
			fx.As(new(commands.EmailClient)),
		),
	),
)

var deliveryUseCaseModule = fx.Module("delivery/usecase",
	fx.Provide(
		NewAccidentRoller,
		commands.NewDeliveryLifecycle,
		queries.NewDeliveryQueries,
	),
)

func NewAccidentRoller(cfg config.Config) delivery.AccidentRoller {
	return delivery.NewRandomRoller(cfg.Lifecycle.AccidentRate, uint64(time.Now().UnixNano()))
}

func NewScheduler(lifecycle commands.DeliveryLifecycle, cfg config.Config) *scheduler.Scheduler {
	return scheduler.New(lifecycle, cfg)
}

func StartScheduler(lc fx.Lifecycle, s *scheduler.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: s.Start,
		OnStop: func(ctx context.Context) error {
			return s.Stop(ctx)
		},
	})
}
