package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/supply"
)

func TestRebuildSupplyIndexCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("should rebuild the catalog from live inventories", func(t *testing.T) {
		world := newFakeWorld()
		sawmill := world.add(newFakeInventory(1, kernel.NewPoint(0.5, 0.5)))
		sawmill.SetStock("lumber", 12)
		sawmill.SetStock("stone", 0)

		mine := world.add(newFakeInventory(2, kernel.NewPoint(4.5, 4.5)))
		mine.SetStock("iron", 7)

		index := supply.NewIndex()
		handler := commands.NewRebuildSupplyIndexCommandHandler(index, world)

		count, err := handler.Handle(ctx, commands.NewRebuildSupplyIndexCommand())

		require.NoError(t, err)
		assert.Equal(t, 2, count, "empty stock rows are skipped")

		wood := index.Suppliers("wood")
		require.Len(t, wood, 1)
		assert.Equal(t, kernel.NodeRef(1), wood[0].Node())
		assert.InDelta(t, 12.0, wood[0].Available(), 1e-9)

		iron := index.Suppliers("iron_ore")
		require.Len(t, iron, 1)
		assert.Equal(t, kernel.NodeRef(2), iron[0].Node())
	})

	t.Run("should reset reservations on rebuild", func(t *testing.T) {
		world := newFakeWorld()
		world.add(newFakeInventory(1, kernel.NewPoint(0.5, 0.5))).SetStock("wood", 10)

		index := supply.NewIndex()
		handler := commands.NewRebuildSupplyIndexCommandHandler(index, world)

		_, err := handler.Handle(ctx, commands.NewRebuildSupplyIndexCommand())
		require.NoError(t, err)
		index.Suppliers("wood")[0].Reserve(6)

		_, err = handler.Handle(ctx, commands.NewRebuildSupplyIndexCommand())
		require.NoError(t, err)

		assert.InDelta(t, 0.0, index.Suppliers("wood")[0].Reserved(), 1e-9)
	})

	t.Run("should empty the catalog when no inventories remain", func(t *testing.T) {
		index := supply.NewIndex()
		index.Rebuild([]supply.SupplierRecord{
			{Node: 1, Resource: "wood", Quantity: 5, Position: kernel.NewPoint(0.5, 0.5)},
		})

		handler := commands.NewRebuildSupplyIndexCommandHandler(index, newFakeWorld())

		count, err := handler.Handle(ctx, commands.NewRebuildSupplyIndexCommand())

		require.NoError(t, err)
		assert.Equal(t, 0, count)
		assert.Empty(t, index.Suppliers("wood"))
	})

	t.Run("should reject a command that was not constructed", func(t *testing.T) {
		handler := commands.NewRebuildSupplyIndexCommandHandler(supply.NewIndex(), newFakeWorld())

		_, err := handler.Handle(ctx, commands.RebuildSupplyIndexCommand{})

		assert.Error(t, err)
	})
}
