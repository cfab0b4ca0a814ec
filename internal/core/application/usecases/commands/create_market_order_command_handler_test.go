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
	"logistics/internal/pkg/errs"
)

func TestCreateMarketOrderCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("should list a new order on the book", func(t *testing.T) {
		book := transport.NewOrderBook()
		handler := commands.NewCreateMarketOrderCommandHandler(book)
		orderID := kernel.NewUUID()

		cmd, err := commands.NewCreateMarketOrderCommand(
			orderID, "Lumber", "planks", 10, 3.5, testTime().Add(time.Hour),
		)
		require.NoError(t, err)

		err = handler.Handle(ctx, cmd)

		require.NoError(t, err)
		order, ok := book.Get(orderID)
		require.True(t, ok)
		assert.Equal(t, "wood", string(order.Resource()))
		assert.Equal(t, "planks", order.Product())
		assert.Equal(t, 10, order.Total())
		assert.Equal(t, 10, order.Remaining())
		assert.Equal(t, transport.OrderStatusOpen, order.Status())
	})

	t.Run("should reject a duplicate listing id", func(t *testing.T) {
		book := transport.NewOrderBook()
		handler := commands.NewCreateMarketOrderCommandHandler(book)
		orderID := kernel.NewUUID()

		cmd, err := commands.NewCreateMarketOrderCommand(orderID, "wood", "", 10, 3.5, noExpiry())
		require.NoError(t, err)
		require.NoError(t, handler.Handle(ctx, cmd))

		err = handler.Handle(ctx, cmd)

		require.Error(t, err)
		assert.Equal(t, errs.CodeInvalidArgument, errs.CodeOf(err))
	})

	t.Run("should reject invalid listing parameters", func(t *testing.T) {
		_, err := commands.NewCreateMarketOrderCommand(kernel.NewUUID(), "wood", "", 0, 3.5, noExpiry())
		assert.Error(t, err)

		_, err = commands.NewCreateMarketOrderCommand(kernel.NewUUID(), "wood", "", 5, -1, noExpiry())
		assert.Error(t, err)

		_, err = commands.NewCreateMarketOrderCommand(kernel.NewUUID(), "  ", "", 5, 3.5, noExpiry())
		assert.Error(t, err)
	})

	t.Run("should reject a command that was not constructed", func(t *testing.T) {
		handler := commands.NewCreateMarketOrderCommandHandler(transport.NewOrderBook())

		err := handler.Handle(ctx, commands.CreateMarketOrderCommand{})

		assert.Error(t, err)
	})
}
