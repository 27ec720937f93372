package readstore

import (
	"context"
	"log/slog"

	"store-fulfillment/internal/domain/delivery"
	"store-fulfillment/internal/infra"
	"store-fulfillment/internal/infra/db"
	"store-fulfillment/internal/pkg/pgconv"
	"store-fulfillment/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type DeliveryReadStore struct {
	db db.DBTX
}

func NewDeliveryReadStore(dbtx db.DBTX) *DeliveryReadStore {
	return &DeliveryReadStore{db: dbtx}
}

func (r *DeliveryReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.DeliveryView, error) {
	var (
		did, orderID         pgtype.UUID
		quantity             int32
		address, email       string
		status               int16
		nextFireAt           pgtype.Timestamptz
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, order_id, quantity, address, email, status, next_fire_at, created_at, updated_at
		FROM deliveries WHERE id = $1`, pgconv.UUIDToPgtype(id)).
		Scan(&did, &orderID, &quantity, &address, &email, &status, &nextFireAt, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "delivery not found", delivery.ErrNotFound)
		}
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to find delivery", err)
	}

	st := delivery.Status(status)
	return &queries.DeliveryView{
		ID:         pgconv.UUIDFromPgtype(did),
		OrderID:    pgconv.UUIDFromPgtype(orderID),
		Quantity:   int(quantity),
		Address:    address,
		Email:      email,
		Status:     st.String(),
		StatusCode: st.Code(),
		NextFireAt: pgconv.TimePtrFromPgtype(nextFireAt),
		CreatedAt:  pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:  pgconv.TimeFromPgtype(updatedAt),
	}, nil
}
