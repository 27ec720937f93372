package readstore

import (
	"context"
	"log/slog"
	"time"

	"store-fulfillment/internal/domain/delivery"
	"store-fulfillment/internal/domain/order"
	"store-fulfillment/internal/domain/payment"
	"store-fulfillment/internal/infra"
	"store-fulfillment/internal/infra/db"
	"store-fulfillment/internal/pkg/pgconv"
	"store-fulfillment/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const orderViewSelect = `
	SELECT o.id, o.user_id, o.product_id, p.name, o.quantity, o.amount_cents,
	       o.status, o.delivery_status, o.created_at, o.updated_at
	FROM orders o
	JOIN products p ON p.id = o.product_id`

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(dbtx db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: dbtx}
}

func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	row := r.db.QueryRow(ctx, orderViewSelect+` WHERE o.id = $1`, pgconv.UUIDToPgtype(id))
	ov, err := scanOrderView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "order not found", order.ErrNotFound)
		}
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to find order", err)
	}
	return ov, nil
}

func (r *OrderReadStore) FindByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.OrderView, error) {
	rows, err := r.db.Query(ctx, orderViewSelect+`
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT $2`, pgconv.UUIDToPgtype(userID), limit)
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to list orders", err)
	}
	return collectOrderViews(rows)
}

func (r *OrderReadStore) FindByUserKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.OrderView, error) {
	rows, err := r.db.Query(ctx, orderViewSelect+`
		WHERE o.user_id = $1
		  AND (o.created_at, o.id) < ($2, $3)
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT $4`,
		pgconv.UUIDToPgtype(userID),
		pgconv.TimeToPgtype(lastCreatedAt),
		pgconv.UUIDToPgtype(lastID),
		limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to list orders", err)
	}
	return collectOrderViews(rows)
}

func (r *OrderReadStore) ListReservations(ctx context.Context, orderID uuid.UUID) ([]*queries.ReservationRecordView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT rr.id, rr.order_id, rr.lot_id, l.warehouse_id, rr.quantity, rr.status, rr.created_at, rr.updated_at
		FROM reservation_records rr
		JOIN inventory_lots l ON l.id = rr.lot_id
		WHERE rr.order_id = $1
		ORDER BY rr.created_at, rr.id`, pgconv.UUIDToPgtype(orderID))
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to list reservation records", err)
	}
	views, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.ReservationRecordView, error) {
		var (
			id, oid, lotID, warehouseID pgtype.UUID
			quantity                    int32
			status                      string
			createdAt, updatedAt        pgtype.Timestamptz
		)
		if err := row.Scan(&id, &oid, &lotID, &warehouseID, &quantity, &status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		return &queries.ReservationRecordView{
			ID:          pgconv.UUIDFromPgtype(id),
			OrderID:     pgconv.UUIDFromPgtype(oid),
			LotID:       pgconv.UUIDFromPgtype(lotID),
			WarehouseID: pgconv.UUIDFromPgtype(warehouseID),
			Quantity:    int(quantity),
			Status:      status,
			CreatedAt:   pgconv.TimeFromPgtype(createdAt),
			UpdatedAt:   pgconv.TimeFromPgtype(updatedAt),
		}, nil
	})
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to scan reservation records", err)
	}
	return views, nil
}

func (r *OrderReadStore) FindPaymentByOrderID(ctx context.Context, orderID uuid.UUID) (*queries.PaymentView, error) {
	var (
		id, oid, userID          pgtype.UUID
		amount, transferID       int64
		status                   string
		customerID, accountID    int64
		createdAt                pgtype.Timestamptz
		refundID                 pgtype.UUID
		refundAmount, refundXfer pgtype.Int8
		refundCreatedAt          pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, `
		SELECT p.id, p.order_id, o.user_id, p.amount_cents, p.status, p.transfer_id,
		       p.from_customer_id, p.from_account_id, p.created_at,
		       rf.id, rf.amount_cents, rf.transfer_id, rf.created_at
		FROM payments p
		JOIN orders o ON o.id = p.order_id
		LEFT JOIN refunds rf ON rf.order_id = p.order_id
		WHERE p.order_id = $1`, pgconv.UUIDToPgtype(orderID)).
		Scan(&id, &oid, &userID, &amount, &status, &transferID,
			&customerID, &accountID, &createdAt,
			&refundID, &refundAmount, &refundXfer, &refundCreatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "payment not found", payment.ErrNotFound)
		}
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to find payment", err)
	}

	pv := &queries.PaymentView{
		ID:             pgconv.UUIDFromPgtype(id),
		OrderID:        pgconv.UUIDFromPgtype(oid),
		UserID:         pgconv.UUIDFromPgtype(userID),
		AmountCents:    amount,
		Status:         status,
		TransferID:     transferID,
		FromCustomerID: customerID,
		FromAccountID:  accountID,
		CreatedAt:      pgconv.TimeFromPgtype(createdAt),
	}
	if refundID.Valid {
		pv.Refund = &queries.RefundView{
			ID:          pgconv.UUIDFromPgtype(refundID),
			AmountCents: refundAmount.Int64,
			TransferID:  refundXfer.Int64,
			CreatedAt:   pgconv.TimeFromPgtype(refundCreatedAt),
		}
	}
	return pv, nil
}

func scanOrderView(row pgx.Row) (*queries.OrderView, error) {
	var (
		id, userID, productID pgtype.UUID
		productName           string
		quantity              int32
		amount                int64
		status                string
		deliveryStatus        int16
		createdAt, updatedAt  pgtype.Timestamptz
	)
	if err := row.Scan(&id, &userID, &productID, &productName, &quantity, &amount, &status, &deliveryStatus, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	ds := delivery.Status(deliveryStatus)
	return &queries.OrderView{
		ID:                 pgconv.UUIDFromPgtype(id),
		UserID:             pgconv.UUIDFromPgtype(userID),
		ProductID:          pgconv.UUIDFromPgtype(productID),
		ProductName:        productName,
		Quantity:           int(quantity),
		AmountCents:        amount,
		Status:             status,
		DeliveryStatus:     ds.String(),
		DeliveryStatusCode: ds.Code(),
		CreatedAt:          pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:          pgconv.TimeFromPgtype(updatedAt),
	}, nil
}

func collectOrderViews(rows pgx.Rows) ([]*queries.OrderView, error) {
	views, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.OrderView, error) {
		return scanOrderView(row)
	})
	if err != nil {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindDBFailure, "failed to scan orders", err)
	}
	return views, nil
}
