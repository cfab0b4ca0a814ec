package jobs

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logistics/internal/adapters/out/inmem"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/roadnet"
	"logistics/internal/core/domain/model/supply"
	"logistics/internal/core/domain/model/transport"
	"logistics/internal/core/domain/services"
)

const marketNode = kernel.NodeRef(100)

type fulfillmentFixture struct {
	jobs   *transport.JobManager
	book   *transport.OrderBook
	ledger *inmem.Ledger
	job    *OrderFulfillmentJob
}

// newFulfillmentFixture wires a 20x20 grid with a road row along y=0, one
// wood supplier sitting on the row and the market node ten tiles away. With
// costPerTileUnit 2.0 and fixedCost 10.0 a single trip costs roughly 30.
func newFulfillmentFixture(t *testing.T, balance float64) *fulfillmentFixture {
	t.Helper()

	network := roadnet.NewNetwork(20, 20)
	for x := 0; x < 20; x++ {
		network.AddRoad(kernel.NewCell(x, 0))
	}

	pathfinder := roadnet.NewPathfinder(network, roadnet.PathfinderConfig{TileSize: 1})
	t.Cleanup(pathfinder.Close)

	jobs := transport.NewJobManager()
	book := transport.NewOrderBook()
	manager := transport.NewOrderManager(book, jobs)
	t.Cleanup(manager.Close)

	world := inmem.NewWorld()
	world.Register(1, kernel.NewPoint(0.5, 0.5)).SetStock("wood", 50)
	world.Register(marketNode, kernel.NewPoint(10.5, 0.5))

	index := supply.NewIndex()
	index.Rebuild([]supply.SupplierRecord{
		{Node: 1, Resource: "wood", Quantity: 50, Position: kernel.NewPoint(0.5, 0.5)},
	})

	planner := commands.NewPlanDeliveryCommandHandler(
		index, services.NewScheduler(), services.NewRouter(network, pathfinder, nil),
		jobs, world, 2.0, 10.0,
	)

	ledger := inmem.NewLedger(balance)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var mu sync.Mutex

	return &fulfillmentFixture{
		jobs:   jobs,
		book:   book,
		ledger: ledger,
		job:    NewOrderFulfillmentJob(planner, book, jobs, ledger, marketNode, 10, &mu, logger),
	}
}

func (f *fulfillmentFixture) listOrder(t *testing.T, total int, price float64) *transport.DeliveryOrder {
	t.Helper()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	order, err := transport.NewDeliveryOrder(kernel.NewUUID(), "wood", "", total, price, now, now.Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, f.book.AddOrUpdate(order))
	return order
}

func TestOrderFulfillmentJob_Tick(t *testing.T) {
	t.Run("should plan open orders and charge transport to the ledger", func(t *testing.T) {
		fixture := newFulfillmentFixture(t, 100)
		order := fixture.listOrder(t, 5, 10.0)

		fixture.job.tick(context.Background())

		require.NotEmpty(t, fixture.jobs.Jobs())
		assert.Equal(t, 0, order.Remaining())
		assert.Equal(t, 5, order.InFlight())
		assert.Equal(t, transport.OrderStatusInTransport, order.Status())

		var totalCost float64
		for _, job := range fixture.jobs.Jobs() {
			totalCost += job.Cost()
		}
		assert.InDelta(t, 100-totalCost, fixture.ledger.Balance(), 1e-9)
		assert.Less(t, fixture.ledger.Balance(), 100.0)
	})

	t.Run("should skip orders the buyer cannot afford", func(t *testing.T) {
		fixture := newFulfillmentFixture(t, 0.5)
		order := fixture.listOrder(t, 5, 1.0)

		fixture.job.tick(context.Background())

		assert.Empty(t, fixture.jobs.Jobs())
		assert.Equal(t, 5, order.Remaining())
		assert.Equal(t, transport.OrderStatusOpen, order.Status())
		assert.InDelta(t, 0.5, fixture.ledger.Balance(), 1e-9)
	})

	t.Run("should cancel the planned jobs when the debit is refused", func(t *testing.T) {
		// Price clears the affordability gate, transport cost does not.
		fixture := newFulfillmentFixture(t, 5)
		order := fixture.listOrder(t, 5, 0.2)

		fixture.job.tick(context.Background())

		require.NotEmpty(t, fixture.jobs.Jobs())
		for _, job := range fixture.jobs.Jobs() {
			assert.Equal(t, transport.Failed, job.Status())
		}
		assert.Equal(t, 5, order.Remaining())
		assert.Equal(t, 0, order.InFlight())
		assert.Equal(t, transport.OrderStatusOpen, order.Status())
		assert.InDelta(t, 5.0, fixture.ledger.Balance(), 1e-9)
	})
}
