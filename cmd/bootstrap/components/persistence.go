package components

import (
	"log/slog"

	"store-fulfillment/internal/infra/memstore"
	"store-fulfillment/internal/infra/readstore"
	"store-fulfillment/internal/infra/uow"
	"store-fulfillment/internal/pkg/config"
	"store-fulfillment/internal/usecase/queries"
	"store-fulfillment/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewPersistence,
	),
)

type Persistence struct {
	fx.Out

	UoW        shared.UnitOfWork
	Orders     queries.OrderReadStore
	Deliveries queries.DeliveryReadStore
}

type PoolFactory func() (*pgxpool.Pool, error)

type persistenceParams struct {
	fx.In

	Config config.Config
	Pool   PoolFactory
}

// NewPersistence picks the storage backend from STORAGE_DRIVER. The pool is only opened for postgres.
func NewPersistence(p persistenceParams) (Persistence, error) {
	if p.Config.Storage.Driver == config.StorageDriverMemory {
		slog.Warn("using in-memory storage, data is lost on restart")
		s := memstore.New()
		return Persistence{
			UoW:        s.UnitOfWork(),
			Orders:     memstore.NewOrderReadStore(s),
			Deliveries: memstore.NewDeliveryReadStore(s),
		}, nil
	}

	pool, err := p.Pool()
	if err != nil {
		return Persistence{}, err
	}
	return Persistence{
		UoW:        uow.NewPostgresUoW(pool, p.Config),
		Orders:     readstore.NewOrderReadStore(pool),
		Deliveries: readstore.NewDeliveryReadStore(pool),
	}, nil
}
