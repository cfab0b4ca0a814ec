package cmd

import (
	"log/slog"
	"sync"

	httpin "logistics/internal/adapters/in/http"
	"logistics/internal/adapters/out/inmem"
	"logistics/internal/adapters/out/postgres"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/roadnet"
	"logistics/internal/core/domain/model/supply"
	"logistics/internal/core/domain/model/transport"
	"logistics/internal/core/domain/services"
	"logistics/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires the live world, the domain services, and the
// supporting adapters together. It owns the world mutex that serializes the
// HTTP handlers and the cron jobs around the lock-free core.
type CompositionRoot struct {
	config Config
	logger *slog.Logger

	worldMu sync.Mutex

	world      *inmem.World
	ledger     *inmem.Ledger
	network    *roadnet.Network
	pathfinder *roadnet.Pathfinder
	router     *services.Router
	index      *supply.Index
	jobManager *transport.JobManager
	orderBook  *transport.OrderBook
	orders     *transport.OrderManager

	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
}

// NewCompositionRoot builds the object graph. The route cache may be nil,
// in which case every path is computed fresh.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	routeCache services.RouteCache,
	logger *slog.Logger,
) *CompositionRoot {
	network := roadnet.NewNetwork(config.GridWidth, config.GridHeight)
	pathfinder := roadnet.NewPathfinder(network, roadnet.PathfinderConfig{
		TileSize:        config.TileSize,
		SearchRadius:    config.SearchRadius,
		UseSpatialIndex: config.UseSpatialIndex,
		IndexCapacity:   config.IndexCapacity,
		IndexMaxDepth:   config.IndexMaxDepth,
	})
	jobManager := transport.NewJobManager()
	orderBook := transport.NewOrderBook()

	return &CompositionRoot{
		config:     config,
		logger:     logger,
		world:      inmem.NewWorld(),
		ledger:     inmem.NewLedger(config.StartingBalance),
		network:    network,
		pathfinder: pathfinder,
		router:     services.NewRouter(network, pathfinder, routeCache),
		index:      supply.NewIndex(),
		jobManager: jobManager,
		orderBook:  orderBook,
		orders:     transport.NewOrderManager(orderBook, jobManager),
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

// Close releases the event subscriptions held by the graph.
func (c *CompositionRoot) Close() {
	c.orders.Close()
	c.pathfinder.Close()
}

// WorldMutex returns the lock shared by every surface that enters the core.
func (c *CompositionRoot) WorldMutex() *sync.Mutex {
	return &c.worldMu
}

// World returns the in-memory entity registry for the host to populate.
func (c *CompositionRoot) World() *inmem.World {
	return c.world
}

// Ledger returns the economy ledger.
func (c *CompositionRoot) Ledger() *inmem.Ledger {
	return c.ledger
}

func (c *CompositionRoot) snapshotUoWFactory() commands.SnapshotUoWFactory {
	return FuncSnapshotUoWFactory(func() commands.SnapshotUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateEditRoadCommandHandler() commands.EditRoadCommandHandler {
	return commands.NewEditRoadCommandHandler(c.network)
}

func (c *CompositionRoot) CreateCreateMarketOrderCommandHandler() commands.CreateMarketOrderCommandHandler {
	return commands.NewCreateMarketOrderCommandHandler(c.orderBook)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.orderBook)
}

func (c *CompositionRoot) CreateExpireOrdersCommandHandler() commands.ExpireOrdersCommandHandler {
	return commands.NewExpireOrdersCommandHandler(c.orderBook)
}

func (c *CompositionRoot) CreatePlanDeliveryCommandHandler() commands.PlanDeliveryCommandHandler {
	return commands.NewPlanDeliveryCommandHandler(
		c.index,
		services.NewScheduler(),
		c.router,
		c.jobManager,
		c.world,
		c.config.CostPerTileUnit,
		c.config.FixedCost,
	)
}

func (c *CompositionRoot) CreateReportJobCommandHandler() commands.ReportJobCommandHandler {
	return commands.NewReportJobCommandHandler(c.jobManager)
}

func (c *CompositionRoot) CreateCancelNodeJobsCommandHandler() commands.CancelNodeJobsCommandHandler {
	return commands.NewCancelNodeJobsCommandHandler(c.jobManager)
}

func (c *CompositionRoot) CreateRebuildSupplyIndexCommandHandler() commands.RebuildSupplyIndexCommandHandler {
	return commands.NewRebuildSupplyIndexCommandHandler(c.index, c.world)
}

func (c *CompositionRoot) CreateSaveStateCommandHandler() commands.SaveStateCommandHandler {
	return commands.NewSaveStateCommandHandler(
		c.snapshotUoWFactory(), c.jobManager, c.orderBook, c.network,
	)
}

func (c *CompositionRoot) CreateRestoreStateCommandHandler() commands.RestoreStateCommandHandler {
	return commands.NewRestoreStateCommandHandler(
		c.snapshotUoWFactory(), c.jobManager, c.orderBook, c.network, c.world,
	)
}

func (c *CompositionRoot) CreateGetActiveJobsQueryHandler() queries.GetActiveJobsQueryHandler {
	return queries.NewGetActiveJobsQueryHandler(c.jobManager)
}

func (c *CompositionRoot) CreateGetOpenOrdersQueryHandler() queries.GetOpenOrdersQueryHandler {
	return queries.NewGetOpenOrdersQueryHandler(c.orderBook)
}

// CreateHTTPServer assembles the echo-facing server over the use cases.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateEditRoadCommandHandler(),
		c.CreateCreateMarketOrderCommandHandler(),
		c.CreateAcceptOrderCommandHandler(),
		c.CreatePlanDeliveryCommandHandler(),
		c.CreateReportJobCommandHandler(),
		c.CreateCancelNodeJobsCommandHandler(),
		c.CreateRebuildSupplyIndexCommandHandler(),
		c.CreateSaveStateCommandHandler(),
		c.CreateGetActiveJobsQueryHandler(),
		c.CreateGetOpenOrdersQueryHandler(),
		c.jobManager,
		c.world,
		&c.worldMu,
	)
}

// CreateBackgroundJobs assembles the cron jobs over the use cases.
func (c *CompositionRoot) CreateBackgroundJobs() *jobs.JobManager {
	fulfillment := jobs.NewOrderFulfillmentJob(
		c.CreatePlanDeliveryCommandHandler(),
		c.orderBook,
		c.jobManager,
		c.ledger,
		kernel.NodeRef(c.config.MarketNode),
		c.config.MaxPerTrip,
		&c.worldMu,
		c.logger,
	)
	expiry := jobs.NewOrderExpiryJob(
		c.CreateExpireOrdersCommandHandler(),
		&c.worldMu,
		c.logger,
	)
	return jobs.NewJobManager(fulfillment, expiry, c.logger)
}

// FuncSnapshotUoWFactory adapts a closure to the SnapshotUoWFactory port.
type FuncSnapshotUoWFactory func() commands.SnapshotUoW

func (f FuncSnapshotUoWFactory) Create() commands.SnapshotUoW {
	return f()
}
