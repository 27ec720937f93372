//go:build unit

package commands_test

import (
	"context"
	"testing"

	"store-fulfillment/internal/domain/inventory"
	"store-fulfillment/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryAllocator_ReserveLargestLotFirst(t *testing.T) {
	f := newStoreFixture(t, 30, 50, 20)
	before := f.store.ProductStock(f.productID)

	records, err := f.allocator.Reserve(context.Background(), f.productID, 60, uuid.New())

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, f.lots[1].ID(), records[0].LotID())
	assert.Equal(t, 50, records[0].Quantity())
	assert.Equal(t, f.lots[0].ID(), records[1].LotID())
	assert.Equal(t, 10, records[1].Quantity())
	assert.Equal(t, []int{20, 0, 20}, f.lotQuantities())
	assert.Equal(t, before-60, f.store.ProductStock(f.productID))
}

func TestInventoryAllocator_InsufficientStockLeavesLotsUntouched(t *testing.T) {
	f := newStoreFixture(t, 10, 5)
	orderID := uuid.New()

	_, err := f.allocator.Reserve(context.Background(), f.productID, 16, orderID)

	assert.ErrorIs(t, err, inventory.ErrInsufficientStock)
	assert.Equal(t, []int{10, 5}, f.lotQuantities())
	assert.Empty(t, f.records(t, orderID))
}

func TestInventoryAllocator_RestoreReturnsEveryLot(t *testing.T) {
	f := newStoreFixture(t, 30, 50, 20)
	ctx := context.Background()
	orderID := uuid.New()

	_, err := f.allocator.Reserve(ctx, f.productID, 90, orderID)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 10}, f.lotQuantities())

	records, err := f.allocator.Restore(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, []int{30, 50, 20}, f.lotQuantities())
	for _, r := range records {
		assert.Equal(t, inventory.RecordReceived, r.Status())
	}

	again, err := f.allocator.Restore(ctx, orderID)
	require.NoError(t, err)
	assert.Len(t, again, len(records))
	assert.Equal(t, []int{30, 50, 20}, f.lotQuantities(), "second restore must not credit again")
}

func TestInventoryAllocator_RestoreWithoutRecords(t *testing.T) {
	f := newStoreFixture(t, 10)

	_, err := f.allocator.Restore(context.Background(), uuid.New())

	assert.ErrorIs(t, err, commands.ErrNoReservations)
}
