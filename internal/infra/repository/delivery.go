package repository

import (
	"context"
	"time"

	"store-fulfillment/internal/domain/delivery"
	"store-fulfillment/internal/domain/user"
	"store-fulfillment/internal/infra/db"
	"store-fulfillment/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const deliveryColumns = `id, order_id, quantity, address, email, status, next_fire_at, created_at, updated_at, version`

type DeliveryRepository struct {
	db db.DBTX
}

func NewDeliveryRepository(dbtx db.DBTX) *DeliveryRepository {
	return &DeliveryRepository{db: dbtx}
}

func (r *DeliveryRepository) Create(ctx context.Context, d *delivery.Delivery) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO deliveries (`+deliveryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		pgconv.UUIDToPgtype(d.ID()),
		pgconv.UUIDToPgtype(d.OrderID()),
		d.Quantity(),
		d.Address(),
		d.Email().Value(),
		d.Status().Code(),
		pgconv.TimePtrToPgtype(d.NextFireAt()),
		pgconv.TimeToPgtype(d.CreatedAt()),
		pgconv.TimeToPgtype(d.UpdatedAt()),
		d.Version(),
	)
	if err != nil {
		return translate("failed to create delivery", err, nil)
	}
	return nil
}

func (r *DeliveryRepository) FindByID(ctx context.Context, id uuid.UUID) (*delivery.Delivery, error) {
	row := r.db.QueryRow(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1`, pgconv.UUIDToPgtype(id))
	d, err := scanDelivery(row)
	if err != nil {
		return nil, translate("delivery not found", err, delivery.ErrNotFound)
	}
	return d, nil
}

func (r *DeliveryRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*delivery.Delivery, error) {
	row := r.db.QueryRow(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE order_id = $1`, pgconv.UUIDToPgtype(orderID))
	d, err := scanDelivery(row)
	if err != nil {
		return nil, translate("delivery not found", err, delivery.ErrNotFound)
	}
	return d, nil
}

func (r *DeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE deliveries
		SET quantity = $2, status = $3, next_fire_at = $4, updated_at = $5, version = version + 1
		WHERE id = $1 AND version = $6`,
		pgconv.UUIDToPgtype(d.ID()),
		d.Quantity(),
		d.Status().Code(),
		pgconv.TimePtrToPgtype(d.NextFireAt()),
		pgconv.TimeToPgtype(d.UpdatedAt()),
		d.Version(),
	)
	return casResult(tag, err, "failed to update delivery")
}

func (r *DeliveryRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id FROM deliveries
		WHERE next_fire_at IS NOT NULL AND next_fire_at <= $1
		ORDER BY next_fire_at, id
		LIMIT $2`, pgconv.TimeToPgtype(now), limit)
	if err != nil {
		return nil, translate("failed to list due deliveries", err, nil)
	}
	ids, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (uuid.UUID, error) {
		var id pgtype.UUID
		err := row.Scan(&id)
		return pgconv.UUIDFromPgtype(id), err
	})
	if err != nil {
		return nil, translate("failed to scan due deliveries", err, nil)
	}
	return ids, nil
}

func scanDelivery(row pgx.Row) (*delivery.Delivery, error) {
	var (
		id, orderID          pgtype.UUID
		quantity             int32
		address, email       string
		status               int16
		nextFireAt           pgtype.Timestamptz
		createdAt, updatedAt pgtype.Timestamptz
		version              int64
	)
	if err := row.Scan(&id, &orderID, &quantity, &address, &email, &status, &nextFireAt, &createdAt, &updatedAt, &version); err != nil {
		return nil, err
	}
	st, err := delivery.StatusFromCode(int(status))
	if err != nil {
		return nil, err
	}
	addr, err := user.NewEmail(email)
	if err != nil {
		return nil, err
	}
	return delivery.ReconstructDelivery(
		pgconv.UUIDFromPgtype(id),
		pgconv.UUIDFromPgtype(orderID),
		int(quantity),
		address,
		addr,
		st,
		pgconv.TimePtrFromPgtype(nextFireAt),
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
		version,
	), nil
}
