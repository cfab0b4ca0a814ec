package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/transport"
)

func TestExpireOrdersCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()

	listOrder := func(t *testing.T, book *transport.OrderBook, expiresAt time.Time) *transport.DeliveryOrder {
		t.Helper()
		order, err := transport.NewDeliveryOrder(
			kernel.NewUUID(), "wood", "", 5, 1, testTime(), expiresAt,
		)
		require.NoError(t, err)
		require.NoError(t, book.AddOrUpdate(order))
		return order
	}

	t.Run("should delist orders past their deadline", func(t *testing.T) {
		book := transport.NewOrderBook()
		stale := listOrder(t, book, testTime().Add(time.Hour))
		fresh := listOrder(t, book, testTime().Add(3*time.Hour))
		eternal := listOrder(t, book, noExpiry())

		handler := commands.NewExpireOrdersCommandHandler(book)
		cmd, err := commands.NewExpireOrdersCommand(testTime().Add(2 * time.Hour))
		require.NoError(t, err)

		count, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.False(t, book.Contains(stale.ID()))
		assert.True(t, book.Contains(fresh.ID()))
		assert.True(t, book.Contains(eternal.ID()))
	})

	t.Run("should treat the deadline as inclusive", func(t *testing.T) {
		book := transport.NewOrderBook()
		order := listOrder(t, book, testTime().Add(time.Hour))

		handler := commands.NewExpireOrdersCommandHandler(book)
		cmd, err := commands.NewExpireOrdersCommand(testTime().Add(time.Hour))
		require.NoError(t, err)

		count, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, 1, count)
		assert.False(t, book.Contains(order.ID()))
	})

	t.Run("should reject a zero sweep time", func(t *testing.T) {
		_, err := commands.NewExpireOrdersCommand(time.Time{})
		assert.Error(t, err)
	})

	t.Run("should reject a command that was not constructed", func(t *testing.T) {
		handler := commands.NewExpireOrdersCommandHandler(transport.NewOrderBook())

		_, err := handler.Handle(ctx, commands.ExpireOrdersCommand{})

		assert.Error(t, err)
	})
}
