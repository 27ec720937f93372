//go:build unit

package order_test

import (
	"testing"
	"time"

	"store-fulfillment/internal/domain/delivery"
	"store-fulfillment/internal/domain/order"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(uuid.New(), uuid.New(), 3, 1250, now)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("computes amount once", func(t *testing.T) {
		o := newOrder(t)
		assert.Equal(t, int64(3750), o.Amount())
		assert.Equal(t, order.StatusPending, o.Status())
		assert.Equal(t, delivery.StatusEmpty, o.DeliveryStatus())
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		for _, q := range []int{0, -1} {
			o, err := order.NewOrder(uuid.New(), uuid.New(), q, 100, now)
			require.ErrorIs(t, err, order.ErrInvalidQuantity)
			assert.Nil(t, o)
		}
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := order.NewOrder(uuid.New(), uuid.New(), 1, -1, now)
		require.ErrorIs(t, err, order.ErrNegativePrice)
	})
}

func TestOrderLifecycle(t *testing.T) {
	t.Run("charge, setup, cancel, refund", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, o.MarkCharged(now))
		assert.Equal(t, order.StatusProcessing, o.Status())
		require.ErrorIs(t, o.MarkCharged(now), order.ErrNotPayable)

		require.NoError(t, o.MarkDeliverySetup(now))
		require.NoError(t, o.EnsureCancelable())

		o.MarkCancelled(now)
		assert.True(t, o.IsCancelPending())
		require.NoError(t, o.EnsureCancelable())

		require.NoError(t, o.MarkRefunded(now))
		assert.Equal(t, order.StatusRefunded, o.Status())
		require.ErrorIs(t, o.EnsureCancelable(), order.ErrNotCancelable)
	})

	t.Run("reset after failed delivery request", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.MarkCharged(now))

		o.ResetAfterFailedDelivery(now)
		assert.Equal(t, order.StatusPending, o.Status())
		assert.Equal(t, delivery.StatusEmpty, o.DeliveryStatus())
		require.NoError(t, o.EnsurePayable())
	})

	t.Run("cancel outside setup", func(t *testing.T) {
		for _, s := range []delivery.Status{delivery.StatusEmpty, delivery.StatusPickup, delivery.StatusDelivering, delivery.StatusCompleted} {
			o := order.ReconstructOrder(uuid.New(), uuid.New(), uuid.New(), 1, 100, order.StatusProcessing, s, now, now, 1)
			require.ErrorIs(t, o.EnsureCancelable(), order.ErrNotCancelable, s.String())
		}
	})

	t.Run("completed delivery completes the order", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.MarkCharged(now))
		require.NoError(t, o.MarkDeliverySetup(now))

		require.NoError(t, o.ApplyDeliveryStatus(delivery.StatusPickup, now))
		assert.Equal(t, order.StatusProcessing, o.Status())
		require.NoError(t, o.ApplyDeliveryStatus(delivery.StatusCompleted, now))
		assert.Equal(t, order.StatusCompleted, o.Status())
		assert.Equal(t, delivery.StatusCompleted, o.DeliveryStatus())

		require.ErrorIs(t, o.ApplyDeliveryStatus(delivery.Status(9), now), delivery.ErrInvalidStatus)
	})
}
