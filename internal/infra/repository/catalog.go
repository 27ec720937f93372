package repository

import (
	"context"

	"store-fulfillment/internal/domain/user"
	"store-fulfillment/internal/infra/db"
	"store-fulfillment/internal/pkg/pgconv"
	"store-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// CatalogReads serves the product and user lookups commands need inside a transaction.
type CatalogReads struct {
	db db.DBTX
}

func NewCatalogReads(dbtx db.DBTX) *CatalogReads {
	return &CatalogReads{db: dbtx}
}

func (r *CatalogReads) ProductByID(ctx context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	var (
		pid   pgtype.UUID
		name  string
		price int64
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, name, unit_price_cents FROM products WHERE id = $1`,
		pgconv.UUIDToPgtype(id)).Scan(&pid, &name, &price)
	if err != nil {
		return nil, translate("product not found", err, shared.ErrProductNotFound)
	}
	return &shared.ProductSnapshot{
		ID:             pgconv.UUIDFromPgtype(pid),
		Name:           name,
		UnitPriceCents: price,
	}, nil
}

func (r *CatalogReads) UserByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var (
		uid         pgtype.UUID
		email, role string
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, email, role FROM users WHERE id = $1`,
		pgconv.UUIDToPgtype(id)).Scan(&uid, &email, &role)
	if err != nil {
		return nil, translate("user not found", err, user.ErrNotFound)
	}
	addr, err := user.NewEmail(email)
	if err != nil {
		return nil, err
	}
	r2, err := user.NewRole(role)
	if err != nil {
		return nil, err
	}
	return user.ReconstructUser(pgconv.UUIDFromPgtype(uid), addr, r2), nil
}
