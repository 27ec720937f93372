package commands

import (
	"context"
	"log/slog"

	"store-fulfillment/internal/domain/inventory"
	"store-fulfillment/internal/pkg/clock"
	"store-fulfillment/internal/pkg/errs"
	"store-fulfillment/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrNoReservations = errs.Define(errs.ErrNotFound, "no reservation records for order")

type InventoryAllocator interface {
	Reserve(ctx context.Context, productID uuid.UUID, quantity int, orderID uuid.UUID) ([]*inventory.ReservationRecord, error)
	Restore(ctx context.Context, orderID uuid.UUID) ([]*inventory.ReservationRecord, error)
}

type inventoryAllocatorImpl struct {
	uow     shared.UnitOfWork
	clock   clock.Clock
	metrics shared.Metrics
}

func NewInventoryAllocator(uow shared.UnitOfWork, clk clock.Clock, metrics shared.Metrics) InventoryAllocator {
	return &inventoryAllocatorImpl{uow: uow, clock: clk, metrics: metrics}
}

func (a *inventoryAllocatorImpl) Reserve(ctx context.Context, productID uuid.UUID, quantity int, orderID uuid.UUID) ([]*inventory.ReservationRecord, error) {
	var records []*inventory.ReservationRecord
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var rerr error
		records, rerr = reserveStock(ctx, tx, productID, quantity, orderID, a.clock)
		return rerr
	})
	a.metrics.SagaStep("reserve", shared.Outcome(err))
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Restore returns stock for every record of the order that is still DISPATCHED. The result
// lists all records of the order in their final state.
func (a *inventoryAllocatorImpl) Restore(ctx context.Context, orderID uuid.UUID) ([]*inventory.ReservationRecord, error) {
	var records []*inventory.ReservationRecord
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var rerr error
		records, rerr = restoreStock(ctx, tx, orderID, a.clock)
		return rerr
	})
	a.metrics.SagaStep("restore", shared.Outcome(err))
	if err != nil {
		return nil, err
	}
	return records, nil
}

// reserveStock runs inside the caller's transaction so order creation and reservation commit
// together.
func reserveStock(ctx context.Context, tx shared.Tx, productID uuid.UUID, quantity int, orderID uuid.UUID, clk clock.Clock) ([]*inventory.ReservationRecord, error) {
	lots, err := tx.Lots().ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	records, err := inventory.Reserve(lots, quantity, orderID, clk.Now())
	if err != nil {
		return nil, err
	}

	touched := make(map[uuid.UUID]struct{}, len(records))
	for _, r := range records {
		touched[r.LotID()] = struct{}{}
	}
	for _, l := range lots {
		if _, ok := touched[l.ID()]; !ok {
			continue
		}
		if err := tx.Lots().Update(ctx, l); err != nil {
			return nil, err
		}
	}

	if err := tx.ReservationRecords().CreateBatch(ctx, records); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "stock reserved",
		"order_id", orderID,
		"product_id", productID,
		"quantity", quantity,
		"lots", len(records))
	return records, nil
}

func restoreStock(ctx context.Context, tx shared.Tx, orderID uuid.UUID, clk clock.Clock) ([]*inventory.ReservationRecord, error) {
	records, err := tx.ReservationRecords().ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoReservations
	}

	lotIDs := make([]uuid.UUID, 0, len(records))
	for _, r := range records {
		if !r.IsReceived() {
			lotIDs = append(lotIDs, r.LotID())
		}
	}
	if len(lotIDs) == 0 {
		return records, nil
	}

	lots, err := tx.Lots().ListByIDs(ctx, lotIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*inventory.Lot, len(lots))
	for _, l := range lots {
		byID[l.ID()] = l
	}

	restored, err := inventory.Restore(records, byID, clk.Now())
	if err != nil {
		return nil, err
	}

	credited := make(map[uuid.UUID]struct{}, len(restored))
	for _, r := range restored {
		if err := tx.ReservationRecords().MarkReceived(ctx, r); err != nil {
			return nil, err
		}
		credited[r.LotID()] = struct{}{}
	}
	for id := range credited {
		if err := tx.Lots().Update(ctx, byID[id]); err != nil {
			return nil, err
		}
	}

	slog.InfoContext(ctx, "stock restored",
		"order_id", orderID,
		"records", len(restored))
	return records, nil
}
