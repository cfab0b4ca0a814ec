package transport_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderBook_AddOrUpdate(t *testing.T) {
	t.Run("should list orders in insertion order", func(t *testing.T) {
		book := transport.NewOrderBook()
		first := mustOrder(t, 10)
		second := mustOrder(t, 20)

		require.NoError(t, book.AddOrUpdate(first))
		require.NoError(t, book.AddOrUpdate(second))

		orders := book.Orders()
		require.Len(t, orders, 2)
		assert.True(t, orders[0].IsEqual(first))
		assert.True(t, orders[1].IsEqual(second))
		assert.True(t, book.Contains(first.ID()))
	})

	t.Run("should replace an entry with the same id without duplicating it", func(t *testing.T) {
		book := transport.NewOrderBook()
		o := mustOrder(t, 10)
		require.NoError(t, book.AddOrUpdate(o))

		replacement, err := transport.RestoreOrder(o.ID(), "wood", "Oak planks", 10, 4, 2.5, false, o.CreatedAt(), o.ExpiresAt())
		require.NoError(t, err)
		require.NoError(t, book.AddOrUpdate(replacement))

		require.Len(t, book.Orders(), 1)
		got, ok := book.Get(o.ID())
		require.True(t, ok)
		assert.Equal(t, 4, got.Remaining())
	})

	t.Run("should fire the change notification", func(t *testing.T) {
		book := transport.NewOrderBook()
		changes := 0
		book.OnChange(func() { changes++ })

		require.NoError(t, book.AddOrUpdate(mustOrder(t, 10)))

		assert.Equal(t, 1, changes)
	})

	t.Run("unsubscribed listener receives nothing", func(t *testing.T) {
		book := transport.NewOrderBook()
		changes := 0
		unsubscribe := book.OnChange(func() { changes++ })
		unsubscribe()

		require.NoError(t, book.AddOrUpdate(mustOrder(t, 10)))

		assert.Zero(t, changes)
	})
}

func TestOrderBook_Remove(t *testing.T) {
	book := transport.NewOrderBook()
	o := mustOrder(t, 10)
	require.NoError(t, book.AddOrUpdate(o))

	book.Remove(o.ID())

	assert.False(t, book.Contains(o.ID()))
	assert.Empty(t, book.Orders())

	// removing again is a no-op
	book.Remove(o.ID())
}

func TestOrderBook_Reserve(t *testing.T) {
	t.Run("should claim against the named order and floor at zero", func(t *testing.T) {
		book := transport.NewOrderBook()
		o := mustOrder(t, 20)
		require.NoError(t, book.AddOrUpdate(o))

		claimed, err := book.Reserve(o.ID(), 20)

		require.NoError(t, err)
		assert.Equal(t, 20, claimed)
		assert.Equal(t, 0, o.Remaining())

		claimed, err = book.Reserve(o.ID(), 5)
		require.NoError(t, err)
		assert.Zero(t, claimed)
	})

	t.Run("should return object not found for unknown ids", func(t *testing.T) {
		book := transport.NewOrderBook()

		_, err := book.Reserve(kernel.NewUUID(), 5)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "object not found")
	})
}

func TestOrderBook_OpenOrders(t *testing.T) {
	book := transport.NewOrderBook()
	open := mustOrder(t, 10)
	drained := mustOrder(t, 10)
	require.NoError(t, book.AddOrUpdate(open))
	require.NoError(t, book.AddOrUpdate(drained))
	require.NoError(t, drained.AttachJob(kernel.NewUUID()))
	_, err := book.Reserve(drained.ID(), 10)
	require.NoError(t, err)

	orders := book.OpenOrders()

	require.Len(t, orders, 1)
	assert.True(t, orders[0].IsEqual(open))
}

func TestOrderBook_ExpireOlderOrEqual(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	newOrderExpiring := func(t *testing.T, deadline time.Time) *transport.DeliveryOrder {
		t.Helper()
		o, err := transport.NewDeliveryOrder(kernel.NewUUID(), "wood", "", 5, 1, now.Add(-time.Hour), deadline)
		require.NoError(t, err)
		return o
	}

	t.Run("should remove orders at or past the deadline, keeping accepted ones", func(t *testing.T) {
		book := transport.NewOrderBook()
		stale := newOrderExpiring(t, now)
		older := newOrderExpiring(t, now.Add(-time.Minute))
		fresh := newOrderExpiring(t, now.Add(time.Minute))
		accepted := newOrderExpiring(t, now)
		require.NoError(t, accepted.Accept())
		for _, o := range []*transport.DeliveryOrder{stale, older, fresh, accepted} {
			require.NoError(t, book.AddOrUpdate(o))
		}

		expired := book.ExpireOlderOrEqual(now)

		assert.Len(t, expired, 2)
		assert.False(t, book.Contains(stale.ID()))
		assert.False(t, book.Contains(older.ID()))
		assert.True(t, book.Contains(fresh.ID()))
		assert.True(t, book.Contains(accepted.ID()))
	})

	t.Run("should report nothing when no order qualifies", func(t *testing.T) {
		book := transport.NewOrderBook()
		require.NoError(t, book.AddOrUpdate(newOrderExpiring(t, now.Add(time.Hour))))
		changes := 0
		book.OnChange(func() { changes++ })

		assert.Empty(t, book.ExpireOlderOrEqual(now))
		assert.Zero(t, changes)
	})
}
