package repository

import (
	"context"

	"store-fulfillment/internal/domain/payment"
	"store-fulfillment/internal/infra/db"
	"store-fulfillment/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const paymentColumns = `id, order_id, amount_cents, status, transfer_id, from_customer_id, from_account_id, created_at, updated_at, version`

type PaymentRepository struct {
	db db.DBTX
}

func NewPaymentRepository(dbtx db.DBTX) *PaymentRepository {
	return &PaymentRepository{db: dbtx}
}

func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO payments (`+paymentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		pgconv.UUIDToPgtype(p.ID()),
		pgconv.UUIDToPgtype(p.OrderID()),
		p.Amount(),
		p.Status().String(),
		p.TransferID(),
		p.From().CustomerID,
		p.From().AccountID,
		pgconv.TimeToPgtype(p.CreatedAt()),
		pgconv.TimeToPgtype(p.UpdatedAt()),
		p.Version(),
	)
	if err != nil {
		return translate("failed to create payment", err, nil)
	}
	return nil
}

func (r *PaymentRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*payment.Payment, error) {
	row := r.db.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE order_id = $1`, pgconv.UUIDToPgtype(orderID))
	p, err := scanPayment(row)
	if err != nil {
		return nil, translate("payment not found", err, payment.ErrNotFound)
	}
	return p, nil
}

func (r *PaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE payments
		SET status = $2, updated_at = $3, version = version + 1
		WHERE id = $1 AND version = $4`,
		pgconv.UUIDToPgtype(p.ID()),
		p.Status().String(),
		pgconv.TimeToPgtype(p.UpdatedAt()),
		p.Version(),
	)
	return casResult(tag, err, "failed to update payment")
}

func (r *PaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM payments WHERE id = $1`, pgconv.UUIDToPgtype(id))
	if err != nil {
		return translate("failed to delete payment", err, nil)
	}
	if tag.RowsAffected() == 0 {
		return translate("payment not found", pgx.ErrNoRows, payment.ErrNotFound)
	}
	return nil
}

func scanPayment(row pgx.Row) (*payment.Payment, error) {
	var (
		id, orderID          pgtype.UUID
		amount, transferID   int64
		status               string
		customerID           int64
		accountID            int64
		createdAt, updatedAt pgtype.Timestamptz
		version              int64
	)
	if err := row.Scan(&id, &orderID, &amount, &status, &transferID, &customerID, &accountID, &createdAt, &updatedAt, &version); err != nil {
		return nil, err
	}
	return payment.ReconstructPayment(
		pgconv.UUIDFromPgtype(id),
		pgconv.UUIDFromPgtype(orderID),
		amount,
		payment.Status(status),
		transferID,
		payment.Account{CustomerID: customerID, AccountID: accountID},
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
		version,
	), nil
}

type RefundRepository struct {
	db db.DBTX
}

func NewRefundRepository(dbtx db.DBTX) *RefundRepository {
	return &RefundRepository{db: dbtx}
}

func (r *RefundRepository) Create(ctx context.Context, ref *payment.Refund) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO refunds (id, order_id, amount_cents, transfer_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		pgconv.UUIDToPgtype(ref.ID()),
		pgconv.UUIDToPgtype(ref.OrderID()),
		ref.Amount(),
		ref.TransferID(),
		pgconv.TimeToPgtype(ref.CreatedAt()),
	)
	if err != nil {
		return translate("failed to create refund", err, nil)
	}
	return nil
}

func (r *RefundRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*payment.Refund, error) {
	var (
		id, oid            pgtype.UUID
		amount, transferID int64
		createdAt          pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, order_id, amount_cents, transfer_id, created_at
		FROM refunds WHERE order_id = $1`, pgconv.UUIDToPgtype(orderID)).
		Scan(&id, &oid, &amount, &transferID, &createdAt)
	if err != nil {
		return nil, translate("refund not found", err, payment.ErrRefundNotFound)
	}
	return payment.ReconstructRefund(
		pgconv.UUIDFromPgtype(id),
		pgconv.UUIDFromPgtype(oid),
		amount,
		transferID,
		pgconv.TimeFromPgtype(createdAt),
	), nil
}
