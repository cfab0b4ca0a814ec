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
	"logistics/internal/core/ports"
)

// MockJobRepository is a mock implementation of ports.JobRepository.
type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) Add(ctx context.Context, aggregate *transport.Job) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockJobRepository) Update(ctx context.Context, aggregate *transport.Job) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockJobRepository) Get(ctx context.Context, id kernel.UUID) (*transport.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transport.Job), args.Error(1)
}

func (m *MockJobRepository) GetAll(ctx context.Context) ([]*transport.Job, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transport.Job), args.Error(1)
}

func (m *MockJobRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of ports.OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *transport.DeliveryOrder) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *transport.DeliveryOrder) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*transport.DeliveryOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transport.DeliveryOrder), args.Error(1)
}

func (m *MockOrderRepository) GetAll(ctx context.Context) ([]*transport.DeliveryOrder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transport.DeliveryOrder), args.Error(1)
}

func (m *MockOrderRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockRoadRepository is a mock implementation of ports.RoadRepository.
type MockRoadRepository struct {
	mock.Mock
}

func (m *MockRoadRepository) ReplaceAll(ctx context.Context, cells []kernel.Cell) error {
	args := m.Called(ctx, cells)
	return args.Error(0)
}

func (m *MockRoadRepository) GetAll(ctx context.Context) ([]kernel.Cell, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.Cell), args.Error(1)
}

// MockSnapshotUoW is a mock implementation of commands.SnapshotUoW.
type MockSnapshotUoW struct {
	mock.Mock
}

func (m *MockSnapshotUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSnapshotUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSnapshotUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSnapshotUoW) JobRepository() ports.JobRepository {
	args := m.Called()
	return args.Get(0).(ports.JobRepository)
}

func (m *MockSnapshotUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockSnapshotUoW) RoadRepository() ports.RoadRepository {
	args := m.Called()
	return args.Get(0).(ports.RoadRepository)
}

// MockSnapshotUoWFactory is a mock implementation of commands.SnapshotUoWFactory.
type MockSnapshotUoWFactory struct {
	mock.Mock
}

func (m *MockSnapshotUoWFactory) Create() commands.SnapshotUoW {
	args := m.Called()
	return args.Get(0).(commands.SnapshotUoW)
}

type saveFixture struct {
	network *roadnet.Network
	jobs    *transport.JobManager
	book    *transport.OrderBook
}

// newSaveFixture builds a small live world: two road cells, one planned job,
// one completed job and one listed order.
func newSaveFixture(t *testing.T) (*saveFixture, *transport.Job, *transport.DeliveryOrder) {
	t.Helper()

	network := roadnet.NewNetwork(20, 20)
	network.AddRoad(kernel.NewCell(1, 1))
	network.AddRoad(kernel.NewCell(2, 1))

	jobs := transport.NewJobManager()
	planned, err := transport.NewJob(kernel.NewUUID(), "wood", 4, 1, 100, nil, 18)
	require.NoError(t, err)
	require.NoError(t, jobs.AddJob(planned))

	done, err := transport.NewJob(kernel.NewUUID(), "wood", 2, 1, 100, nil, 12)
	require.NoError(t, err)
	require.NoError(t, jobs.AddJob(done))
	require.NoError(t, jobs.ReportStarted(done.ID(), 7))
	require.NoError(t, jobs.ReportCompleted(done.ID(), 2))

	book := transport.NewOrderBook()
	order, err := transport.NewDeliveryOrder(
		kernel.NewUUID(), "wood", "planks", 10, 3.5,
		testTime(), noExpiry(),
	)
	require.NoError(t, err)
	require.NoError(t, book.AddOrUpdate(order))

	return &saveFixture{network: network, jobs: jobs, book: book}, planned, order
}

func TestSaveStateCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("should persist non terminal jobs, orders and roads", func(t *testing.T) {
		fixture, planned, order := newSaveFixture(t)

		jobRepo := &MockJobRepository{}
		orderRepo := &MockOrderRepository{}
		roadRepo := &MockRoadRepository{}
		uow := &MockSnapshotUoW{}
		factory := &MockSnapshotUoWFactory{}

		mock.InOrder(
			factory.On("Create").Return(uow).Once(),
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("JobRepository").Return(jobRepo).Once(),
			jobRepo.On("Clear", ctx).Return(nil).Once(),
			jobRepo.On("Add", ctx, planned).Return(nil).Once(),
			uow.On("OrderRepository").Return(orderRepo).Once(),
			orderRepo.On("Clear", ctx).Return(nil).Once(),
			orderRepo.On("Add", ctx, order).Return(nil).Once(),
			uow.On("RoadRepository").Return(roadRepo).Once(),
			roadRepo.On("ReplaceAll", ctx, fixture.network.Cells()).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		handler := commands.NewSaveStateCommandHandler(factory, fixture.jobs, fixture.book, fixture.network)

		err := handler.Handle(ctx, commands.NewSaveStateCommand())

		require.NoError(t, err)
		factory.AssertExpectations(t)
		uow.AssertExpectations(t)
		jobRepo.AssertExpectations(t)
		orderRepo.AssertExpectations(t)
		roadRepo.AssertExpectations(t)
	})

	t.Run("should reject a command that was not constructed", func(t *testing.T) {
		fixture, _, _ := newSaveFixture(t)
		factory := &MockSnapshotUoWFactory{}

		handler := commands.NewSaveStateCommandHandler(factory, fixture.jobs, fixture.book, fixture.network)

		err := handler.Handle(ctx, commands.SaveStateCommand{})

		assert.ErrorIs(t, err, commands.ErrSaveStateCommandIsNotConstructed)
		factory.AssertNotCalled(t, "Create")
	})

	t.Run("should return error when transaction begin fails", func(t *testing.T) {
		fixture, _, _ := newSaveFixture(t)

		uow := &MockSnapshotUoW{}
		factory := &MockSnapshotUoWFactory{}
		beginErr := errors.New("begin failed")

		mock.InOrder(
			factory.On("Create").Return(uow).Once(),
			uow.On("Begin", ctx).Return(beginErr).Once(),
		)

		handler := commands.NewSaveStateCommandHandler(factory, fixture.jobs, fixture.book, fixture.network)

		err := handler.Handle(ctx, commands.NewSaveStateCommand())

		assert.ErrorIs(t, err, beginErr)
		uow.AssertNotCalled(t, "Rollback", ctx)
		uow.AssertExpectations(t)
	})

	t.Run("should roll back when clearing jobs fails", func(t *testing.T) {
		fixture, _, _ := newSaveFixture(t)

		jobRepo := &MockJobRepository{}
		uow := &MockSnapshotUoW{}
		factory := &MockSnapshotUoWFactory{}
		clearErr := errors.New("clear failed")

		mock.InOrder(
			factory.On("Create").Return(uow).Once(),
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("JobRepository").Return(jobRepo).Once(),
			jobRepo.On("Clear", ctx).Return(clearErr).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		handler := commands.NewSaveStateCommandHandler(factory, fixture.jobs, fixture.book, fixture.network)

		err := handler.Handle(ctx, commands.NewSaveStateCommand())

		assert.ErrorIs(t, err, clearErr)
		uow.AssertNotCalled(t, "Commit", ctx)
		uow.AssertExpectations(t)
		jobRepo.AssertExpectations(t)
	})

	t.Run("should roll back when commit fails", func(t *testing.T) {
		fixture, planned, order := newSaveFixture(t)

		jobRepo := &MockJobRepository{}
		orderRepo := &MockOrderRepository{}
		roadRepo := &MockRoadRepository{}
		uow := &MockSnapshotUoW{}
		factory := &MockSnapshotUoWFactory{}
		commitErr := errors.New("commit failed")

		mock.InOrder(
			factory.On("Create").Return(uow).Once(),
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("JobRepository").Return(jobRepo).Once(),
			jobRepo.On("Clear", ctx).Return(nil).Once(),
			jobRepo.On("Add", ctx, planned).Return(nil).Once(),
			uow.On("OrderRepository").Return(orderRepo).Once(),
			orderRepo.On("Clear", ctx).Return(nil).Once(),
			orderRepo.On("Add", ctx, order).Return(nil).Once(),
			uow.On("RoadRepository").Return(roadRepo).Once(),
			roadRepo.On("ReplaceAll", ctx, fixture.network.Cells()).Return(nil).Once(),
			uow.On("Commit", ctx).Return(commitErr).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		handler := commands.NewSaveStateCommandHandler(factory, fixture.jobs, fixture.book, fixture.network)

		err := handler.Handle(ctx, commands.NewSaveStateCommand())

		assert.ErrorIs(t, err, commitErr)
		uow.AssertExpectations(t)
	})
}
