package repository

import (
	"context"

	"store-fulfillment/internal/domain/delivery"
	"store-fulfillment/internal/domain/order"
	"store-fulfillment/internal/infra/db"
	"store-fulfillment/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const orderColumns = `id, user_id, product_id, quantity, amount_cents, status, delivery_status, created_at, updated_at, version`

type OrderRepository struct {
	db db.DBTX
}

func NewOrderRepository(dbtx db.DBTX) *OrderRepository {
	return &OrderRepository{db: dbtx}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		pgconv.UUIDToPgtype(o.ID()),
		pgconv.UUIDToPgtype(o.UserID()),
		pgconv.UUIDToPgtype(o.ProductID()),
		o.Quantity(),
		o.Amount(),
		o.Status().String(),
		o.DeliveryStatus().Code(),
		pgconv.TimeToPgtype(o.CreatedAt()),
		pgconv.TimeToPgtype(o.UpdatedAt()),
		o.Version(),
	)
	if err != nil {
		return translate("failed to create order", err, nil)
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, pgconv.UUIDToPgtype(id))
	o, err := scanOrder(row)
	if err != nil {
		return nil, translate("order not found", err, order.ErrNotFound)
	}
	return o, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*order.Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`, pgconv.UUIDToPgtype(userID))
	if err != nil {
		return nil, translate("failed to list orders", err, nil)
	}
	defer rows.Close()

	var out []*order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, translate("failed to scan order", err, nil)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("failed to list orders", err, nil)
	}
	return out, nil
}

func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET status = $2, delivery_status = $3, updated_at = $4, version = version + 1
		WHERE id = $1 AND version = $5`,
		pgconv.UUIDToPgtype(o.ID()),
		o.Status().String(),
		o.DeliveryStatus().Code(),
		pgconv.TimeToPgtype(o.UpdatedAt()),
		o.Version(),
	)
	return casResult(tag, err, "failed to update order")
}

func scanOrder(row pgx.Row) (*order.Order, error) {
	var (
		id, userID, productID pgtype.UUID
		quantity              int32
		amount                int64
		status                string
		deliveryStatus        int16
		createdAt, updatedAt  pgtype.Timestamptz
		version               int64
	)
	if err := row.Scan(&id, &userID, &productID, &quantity, &amount, &status, &deliveryStatus, &createdAt, &updatedAt, &version); err != nil {
		return nil, err
	}
	return order.ReconstructOrder(
		pgconv.UUIDFromPgtype(id),
		pgconv.UUIDFromPgtype(userID),
		pgconv.UUIDFromPgtype(productID),
		int(quantity),
		amount,
		order.Status(status),
		delivery.Status(deliveryStatus),
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
		version,
	), nil
}
