package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/roadnet"
	"logistics/internal/core/domain/model/transport"
)

type restoreFixture struct {
	network *roadnet.Network
	jobs    *transport.JobManager
	book    *transport.OrderBook
	world   *fakeWorld
	handler commands.RestoreStateCommandHandler

	factory   *MockSnapshotUoWFactory
	uow       *MockSnapshotUoW
	jobRepo   *MockJobRepository
	orderRepo *MockOrderRepository
	roadRepo  *MockRoadRepository
}

// newRestoreFixture wires a live world pre-populated with stale state so a
// restore must visibly replace it. Nodes 1 and 100 resolve; anything else
// is considered despawned.
func newRestoreFixture(t *testing.T) *restoreFixture {
	t.Helper()

	network := roadnet.NewNetwork(20, 20)
	network.AddRoad(kernel.NewCell(9, 9))

	jobs := transport.NewJobManager()
	stale, err := transport.NewJob(kernel.NewUUID(), "stone", 1, 1, 100, nil, 5)
	require.NoError(t, err)
	require.NoError(t, jobs.AddJob(stale))

	book := transport.NewOrderBook()
	staleOrder, err := transport.NewDeliveryOrder(
		kernel.NewUUID(), "stone", "", 3, 1, testTime(), noExpiry(),
	)
	require.NoError(t, err)
	require.NoError(t, book.AddOrUpdate(staleOrder))

	world := newFakeWorld()
	world.add(newFakeInventory(1, kernel.NewPoint(0.5, 0.5)))
	world.add(newFakeInventory(100, kernel.NewPoint(10.5, 0.5)))

	f := &restoreFixture{
		network:   network,
		jobs:      jobs,
		book:      book,
		world:     world,
		factory:   &MockSnapshotUoWFactory{},
		uow:       &MockSnapshotUoW{},
		jobRepo:   &MockJobRepository{},
		orderRepo: &MockOrderRepository{},
		roadRepo:  &MockRoadRepository{},
	}
	f.handler = commands.NewRestoreStateCommandHandler(f.factory, jobs, book, network, world)
	return f
}

func (f *restoreFixture) expectSnapshot(
	ctx context.Context,
	cells []kernel.Cell,
	orders []*transport.DeliveryOrder,
	jobs []*transport.Job,
) {
	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("RoadRepository").Return(f.roadRepo).Once(),
		f.roadRepo.On("GetAll", ctx).Return(cells, nil).Once(),
		f.uow.On("OrderRepository").Return(f.orderRepo).Once(),
		f.orderRepo.On("GetAll", ctx).Return(orders, nil).Once(),
		f.uow.On("JobRepository").Return(f.jobRepo).Once(),
		f.jobRepo.On("GetAll", ctx).Return(jobs, nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)
}

func TestRestoreStateCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("should replace the live world with the snapshot", func(t *testing.T) {
		fixture := newRestoreFixture(t)

		orderID := kernel.NewUUID()
		order, err := transport.RestoreOrder(
			orderID, "wood", "planks", 10, 6, 3.5, false, testTime(), noExpiry(),
		)
		require.NoError(t, err)

		started, err := transport.RestoreJob(
			kernel.NewUUID(), "wood", 4, 1, 100, 18, transport.Started, &orderID,
		)
		require.NoError(t, err)

		cells := []kernel.Cell{kernel.NewCell(0, 0), kernel.NewCell(1, 0)}
		fixture.expectSnapshot(ctx, cells,
			[]*transport.DeliveryOrder{order},
			[]*transport.Job{started},
		)

		err = fixture.handler.Handle(ctx, commands.NewRestoreStateCommand())

		require.NoError(t, err)
		fixture.uow.AssertExpectations(t)

		assert.Equal(t, 2, fixture.network.RoadCount())
		assert.True(t, fixture.network.IsRoad(kernel.NewCell(0, 0)))
		assert.False(t, fixture.network.IsRoad(kernel.NewCell(9, 9)))

		listed := fixture.book.Orders()
		require.Len(t, listed, 1)
		assert.Equal(t, orderID, listed[0].ID())
		assert.Equal(t, 6, listed[0].Remaining())
		assert.Equal(t, 1, listed[0].InFlight())

		restored := fixture.jobs.Jobs()
		require.Len(t, restored, 1)
		assert.Equal(t, transport.Planned, restored[0].Status())

		next := fixture.jobs.NextPlanned()
		require.NotNil(t, next)
		assert.Equal(t, started.ID(), next.ID())
	})

	t.Run("should not refire planned events for restored jobs", func(t *testing.T) {
		fixture := newRestoreFixture(t)
		manager := transport.NewOrderManager(fixture.book, fixture.jobs)
		t.Cleanup(manager.Close)

		orderID := kernel.NewUUID()
		order, err := transport.RestoreOrder(
			orderID, "wood", "", 10, 6, 3.5, false, testTime(), noExpiry(),
		)
		require.NoError(t, err)

		job, err := transport.RestoreJob(
			kernel.NewUUID(), "wood", 4, 1, 100, 18, transport.Planned, &orderID,
		)
		require.NoError(t, err)

		fixture.expectSnapshot(ctx, nil,
			[]*transport.DeliveryOrder{order},
			[]*transport.Job{job},
		)

		err = fixture.handler.Handle(ctx, commands.NewRestoreStateCommand())

		require.NoError(t, err)
		listed, ok := fixture.book.Get(orderID)
		require.True(t, ok)
		assert.Equal(t, 6, listed.Remaining(), "snapshot remaining already covers the claim")
	})

	t.Run("should drop jobs whose endpoints no longer resolve", func(t *testing.T) {
		fixture := newRestoreFixture(t)

		orphan, err := transport.RestoreJob(
			kernel.NewUUID(), "wood", 4, 55, 100, 18, transport.Planned, nil,
		)
		require.NoError(t, err)

		kept, err := transport.RestoreJob(
			kernel.NewUUID(), "wood", 2, 1, 100, 12, transport.Planned, nil,
		)
		require.NoError(t, err)

		fixture.expectSnapshot(ctx, nil, nil, []*transport.Job{orphan, kept})

		err = fixture.handler.Handle(ctx, commands.NewRestoreStateCommand())

		require.NoError(t, err)
		restored := fixture.jobs.Jobs()
		require.Len(t, restored, 1)
		assert.Equal(t, kept.ID(), restored[0].ID())
	})

	t.Run("should return a dropped job's claim to its order", func(t *testing.T) {
		fixture := newRestoreFixture(t)

		orderID := kernel.NewUUID()
		order, err := transport.RestoreOrder(
			orderID, "wood", "", 10, 6, 3.5, false, testTime(), noExpiry(),
		)
		require.NoError(t, err)

		dropped, err := transport.RestoreJob(
			kernel.NewUUID(), "wood", 4, 55, 100, 18, transport.Planned, &orderID,
		)
		require.NoError(t, err)

		fixture.expectSnapshot(ctx, nil,
			[]*transport.DeliveryOrder{order},
			[]*transport.Job{dropped},
		)

		err = fixture.handler.Handle(ctx, commands.NewRestoreStateCommand())

		require.NoError(t, err)
		assert.Empty(t, fixture.jobs.Jobs())
		listed, ok := fixture.book.Get(orderID)
		require.True(t, ok)
		assert.Equal(t, 10, listed.Remaining(), "the 4 claimed by the dropped job come back")
		assert.Equal(t, transport.OrderStatusOpen, listed.Status())
	})

	t.Run("should not return claims for dropped terminal jobs", func(t *testing.T) {
		fixture := newRestoreFixture(t)

		orderID := kernel.NewUUID()
		order, err := transport.RestoreOrder(
			orderID, "wood", "", 10, 6, 3.5, false, testTime(), noExpiry(),
		)
		require.NoError(t, err)

		failed, err := transport.RestoreJob(
			kernel.NewUUID(), "wood", 4, 55, 100, 18, transport.Failed, &orderID,
		)
		require.NoError(t, err)

		fixture.expectSnapshot(ctx, nil,
			[]*transport.DeliveryOrder{order},
			[]*transport.Job{failed},
		)

		err = fixture.handler.Handle(ctx, commands.NewRestoreStateCommand())

		require.NoError(t, err)
		listed, ok := fixture.book.Get(orderID)
		require.True(t, ok)
		assert.Equal(t, 6, listed.Remaining(), "a failed job already gave its claim back")
	})

	t.Run("should reject a command that was not constructed", func(t *testing.T) {
		fixture := newRestoreFixture(t)

		err := fixture.handler.Handle(ctx, commands.RestoreStateCommand{})

		assert.ErrorIs(t, err, commands.ErrRestoreStateCommandIsNotConstructed)
		fixture.factory.AssertNotCalled(t, "Create")
	})

	t.Run("should roll back when reading the snapshot fails", func(t *testing.T) {
		fixture := newRestoreFixture(t)
		readErr := errors.New("read failed")

		mock.InOrder(
			fixture.factory.On("Create").Return(fixture.uow).Once(),
			fixture.uow.On("Begin", ctx).Return(nil).Once(),
			fixture.uow.On("RoadRepository").Return(fixture.roadRepo).Once(),
			fixture.roadRepo.On("GetAll", ctx).Return(nil, readErr).Once(),
			fixture.uow.On("Rollback", ctx).Return(nil).Once(),
		)

		err := fixture.handler.Handle(ctx, commands.NewRestoreStateCommand())

		assert.ErrorIs(t, err, readErr)
		assert.True(t, fixture.network.IsRoad(kernel.NewCell(9, 9)), "live world untouched on failure")
		fixture.uow.AssertExpectations(t)
	})
}
