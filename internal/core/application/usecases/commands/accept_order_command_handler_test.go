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

func TestAcceptOrderCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("should accept a listed order", func(t *testing.T) {
		book := transport.NewOrderBook()
		order, err := transport.NewDeliveryOrder(
			kernel.NewUUID(), "wood", "", 10, 3.5, testTime(), testTime().Add(time.Hour),
		)
		require.NoError(t, err)
		require.NoError(t, book.AddOrUpdate(order))

		handler := commands.NewAcceptOrderCommandHandler(book)
		cmd, err := commands.NewAcceptOrderCommand(order.ID())
		require.NoError(t, err)

		err = handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, order.Accepted())
		assert.False(t, order.IsExpirable(testTime().Add(2*time.Hour)), "accepted orders do not expire")
	})

	t.Run("should report an unknown order", func(t *testing.T) {
		handler := commands.NewAcceptOrderCommandHandler(transport.NewOrderBook())
		cmd, err := commands.NewAcceptOrderCommand(kernel.NewUUID())
		require.NoError(t, err)

		err = handler.Handle(ctx, cmd)

		require.Error(t, err)
		assert.Equal(t, errs.CodeOrderNotFound, errs.CodeOf(err))
	})

	t.Run("should reject a command that was not constructed", func(t *testing.T) {
		handler := commands.NewAcceptOrderCommandHandler(transport.NewOrderBook())

		err := handler.Handle(ctx, commands.AcceptOrderCommand{})

		assert.Error(t, err)
	})
}
