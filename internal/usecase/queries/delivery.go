package queries

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=delivery.go -destination=../../../tests/mock/queries/mock_delivery.go -package=queriesmock

type DeliveryReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*DeliveryView, error)
}

type DeliveryQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*DeliveryView, error)
}

type deliveryQueriesImpl struct {
	repo DeliveryReadStore
}

func NewDeliveryQueries(repo DeliveryReadStore) DeliveryQueries {
	return &deliveryQueriesImpl{repo: repo}
}

func (q *deliveryQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*DeliveryView, error) {
	return q.repo.FindByID(ctx, id)
}
