package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/transport"
)

func TestGetOpenOrdersQueryHandler_Handle(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	listOrder := func(t *testing.T, book *transport.OrderBook, res string, total int) *transport.DeliveryOrder {
		t.Helper()
		order, err := transport.NewDeliveryOrder(
			kernel.NewUUID(), res, "", total, 3.5, createdAt, time.Time{},
		)
		require.NoError(t, err)
		require.NoError(t, book.AddOrUpdate(order))
		return order
	}

	t.Run("should return open orders in listing order", func(t *testing.T) {
		book := transport.NewOrderBook()
		first := listOrder(t, book, "wood", 10)
		second := listOrder(t, book, "stone", 4)

		handler := queries.NewGetOpenOrdersQueryHandler(book)

		responses, err := handler.Handle(ctx, queries.NewGetOpenOrdersQuery())

		require.NoError(t, err)
		require.Len(t, responses, 2)
		assert.Equal(t, first.ID(), responses[0].ID)
		assert.Equal(t, "wood", responses[0].Resource)
		assert.Equal(t, 10, responses[0].Remaining)
		assert.Equal(t, second.ID(), responses[1].ID)
	})

	t.Run("should omit orders with jobs in flight", func(t *testing.T) {
		book := transport.NewOrderBook()
		open := listOrder(t, book, "wood", 10)
		busy := listOrder(t, book, "stone", 4)
		require.NoError(t, busy.AttachJob(kernel.NewUUID()))

		handler := queries.NewGetOpenOrdersQueryHandler(book)

		responses, err := handler.Handle(ctx, queries.NewGetOpenOrdersQuery())

		require.NoError(t, err)
		require.Len(t, responses, 1)
		assert.Equal(t, open.ID(), responses[0].ID)
	})

	t.Run("should return an empty list for an empty book", func(t *testing.T) {
		handler := queries.NewGetOpenOrdersQueryHandler(transport.NewOrderBook())

		responses, err := handler.Handle(ctx, queries.NewGetOpenOrdersQuery())

		require.NoError(t, err)
		assert.Empty(t, responses)
	})

	t.Run("should reject a query that was not constructed", func(t *testing.T) {
		handler := queries.NewGetOpenOrdersQueryHandler(transport.NewOrderBook())

		_, err := handler.Handle(ctx, queries.GetOpenOrdersQuery{})

		assert.ErrorIs(t, err, queries.ErrGetOpenOrdersQueryIsNotConstructed)
	})
}
