package repository

import (
	"context"

	"store-fulfillment/internal/domain/inventory"
	"store-fulfillment/internal/infra/db"
	"store-fulfillment/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const lotColumns = `id, product_id, warehouse_id, quantity, version`

type LotRepository struct {
	db db.DBTX
}

func NewLotRepository(dbtx db.DBTX) *LotRepository {
	return &LotRepository{db: dbtx}
}

func (r *LotRepository) Create(ctx context.Context, l *inventory.Lot) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO inventory_lots (`+lotColumns+`)
		VALUES ($1, $2, $3, $4, $5)`,
		pgconv.UUIDToPgtype(l.ID()),
		pgconv.UUIDToPgtype(l.ProductID()),
		pgconv.UUIDToPgtype(l.WarehouseID()),
		l.Quantity(),
		l.Version(),
	)
	if err != nil {
		return translate("failed to create inventory lot", err, nil)
	}
	return nil
}

func (r *LotRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*inventory.Lot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+lotColumns+` FROM inventory_lots
		WHERE product_id = $1
		ORDER BY id`, pgconv.UUIDToPgtype(productID))
	if err != nil {
		return nil, translate("failed to list inventory lots", err, nil)
	}
	return collectLots(rows)
}

func (r *LotRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*inventory.Lot, error) {
	pgIDs := make([]pgtype.UUID, 0, len(ids))
	for _, id := range ids {
		pgIDs = append(pgIDs, pgconv.UUIDToPgtype(id))
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+lotColumns+` FROM inventory_lots
		WHERE id = ANY($1)
		ORDER BY id`, pgIDs)
	if err != nil {
		return nil, translate("failed to list inventory lots", err, nil)
	}
	return collectLots(rows)
}

func (r *LotRepository) Update(ctx context.Context, l *inventory.Lot) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE inventory_lots
		SET quantity = $2, version = version + 1
		WHERE id = $1 AND version = $3`,
		pgconv.UUIDToPgtype(l.ID()),
		l.Quantity(),
		l.Version(),
	)
	return casResult(tag, err, "failed to update inventory lot")
}

func collectLots(rows pgx.Rows) ([]*inventory.Lot, error) {
	defer rows.Close()

	var out []*inventory.Lot
	for rows.Next() {
		var (
			id, productID, warehouseID pgtype.UUID
			quantity                   int32
			version                    int64
		)
		if err := rows.Scan(&id, &productID, &warehouseID, &quantity, &version); err != nil {
			return nil, translate("failed to scan inventory lot", err, nil)
		}
		out = append(out, inventory.ReconstructLot(
			pgconv.UUIDFromPgtype(id),
			pgconv.UUIDFromPgtype(productID),
			pgconv.UUIDFromPgtype(warehouseID),
			int(quantity),
			version,
		))
	}
	if err := rows.Err(); err != nil {
		return nil, translate("failed to list inventory lots", err, nil)
	}
	return out, nil
}
