package components

import (
	"context"
	"log/slog"

	"store-fulfillment/internal/infra/client"
	"store-fulfillment/internal/infra/db"
	"store-fulfillment/internal/infra/lock"
	"store-fulfillment/internal/infra/metrics"
	"store-fulfillment/internal/pkg/clock"
	"store-fulfillment/internal/pkg/config"
	"store-fulfillment/internal/pkg/jwt"
	"store-fulfillment/internal/usecase"
	"store-fulfillment/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var InfraModule = fx.Module("infra",
	fx.Provide(
		clock.NewRealClock,
		NewPoolFactory,
		NewLocker,
		usecase.NewTokenValidator,
		func(s *jwt.Service) client.TokenSource { return s },
	),
)

// MetricsModule registers the Prometheus collectors under the given service label.
func MetricsModule(service string) fx.Option {
	return fx.Module("metrics",
		fx.Provide(
			func() *metrics.Prometheus { return metrics.NewPrometheus(service) },
			func(p *metrics.Prometheus) shared.Metrics { return p },
		),
	)
}

// NewPoolFactory defers opening the pool until a postgres backend asks for it.
func NewPoolFactory(lc fx.Lifecycle, cfg config.Config) PoolFactory {
	return func() (*pgxpool.Pool, error) {
		pool, cleanup, err := db.Connect(context.Background(), cfg.DB)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				cleanup()
				return nil
			},
		})
		return pool, nil
	}
}

// NewLocker uses Redis when REDIS_ADDR is set so several instances share per-key locks.
func NewLocker(lc fx.Lifecycle, cfg config.Config) (shared.Locker, error) {
	if cfg.Redis.Addr == "" {
		return lock.NewMemoryLocker(), nil
	}
	rdb, err := lock.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})
	slog.Info("using redis locks", "addr", cfg.Redis.Addr)
	return lock.NewRedisLocker(rdb, cfg.Redis), nil
}
