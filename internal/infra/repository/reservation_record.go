package repository

import (
	"context"

	"store-fulfillment/internal/domain/inventory"
	"store-fulfillment/internal/infra/db"
	"store-fulfillment/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const recordColumns = `id, lot_id, order_id, quantity, status, created_at, updated_at`

type ReservationRecordRepository struct {
	db db.DBTX
}

func NewReservationRecordRepository(dbtx db.DBTX) *ReservationRecordRepository {
	return &ReservationRecordRepository{db: dbtx}
}

// CreateBatch relies on the surrounding transaction for atomicity.
func (r *ReservationRecordRepository) CreateBatch(ctx context.Context, records []*inventory.ReservationRecord) error {
	for _, rec := range records {
		_, err := r.db.Exec(ctx, `
			INSERT INTO reservation_records (`+recordColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			pgconv.UUIDToPgtype(rec.ID()),
			pgconv.UUIDToPgtype(rec.LotID()),
			pgconv.UUIDToPgtype(rec.OrderID()),
			rec.Quantity(),
			rec.Status().String(),
			pgconv.TimeToPgtype(rec.CreatedAt()),
			pgconv.TimeToPgtype(rec.UpdatedAt()),
		)
		if err != nil {
			return translate("failed to create reservation record", err, nil)
		}
	}
	return nil
}

func (r *ReservationRecordRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*inventory.ReservationRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+recordColumns+` FROM reservation_records
		WHERE order_id = $1
		ORDER BY created_at, id`, pgconv.UUIDToPgtype(orderID))
	if err != nil {
		return nil, translate("failed to list reservation records", err, nil)
	}
	defer rows.Close()

	var out []*inventory.ReservationRecord
	for rows.Next() {
		var (
			id, lotID, oid       pgtype.UUID
			quantity             int32
			status               string
			createdAt, updatedAt pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &lotID, &oid, &quantity, &status, &createdAt, &updatedAt); err != nil {
			return nil, translate("failed to scan reservation record", err, nil)
		}
		out = append(out, inventory.ReconstructReservationRecord(
			pgconv.UUIDFromPgtype(id),
			pgconv.UUIDFromPgtype(lotID),
			pgconv.UUIDFromPgtype(oid),
			int(quantity),
			inventory.RecordStatus(status),
			pgconv.TimeFromPgtype(createdAt),
			pgconv.TimeFromPgtype(updatedAt),
		))
	}
	if err := rows.Err(); err != nil {
		return nil, translate("failed to list reservation records", err, nil)
	}
	return out, nil
}

// MarkReceived only matches DISPATCHED rows, so a concurrent restore loses with a conflict.
func (r *ReservationRecordRepository) MarkReceived(ctx context.Context, rec *inventory.ReservationRecord) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE reservation_records
		SET status = $2, updated_at = $3
		WHERE id = $1 AND status = $4`,
		pgconv.UUIDToPgtype(rec.ID()),
		inventory.RecordReceived.String(),
		pgconv.TimeToPgtype(rec.UpdatedAt()),
		inventory.RecordDispatched.String(),
	)
	return casResult(tag, err, "failed to mark reservation record received")
}
