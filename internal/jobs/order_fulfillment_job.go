package jobs

import (
	"context"
	"log/slog"
	"sync"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/transport"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// OrderFulfillmentJob periodically plans deliveries for open market orders.
// Each tick walks the order book's open listings and asks the planner to
// cover the remaining quantity, delivering to the configured market node.
// Transport costs are charged against the economy ledger; orders
// the ledger cannot afford stay open for a later tick.
type OrderFulfillmentJob struct {
	planner    commands.PlanDeliveryCommandHandler
	book       *transport.OrderBook
	jobs       *transport.JobManager
	economy    ports.EconomyQuery
	marketNode kernel.NodeRef
	maxPerTrip int

	worldMu *sync.Mutex
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOrderFulfillmentJob creates the fulfillment job. The world mutex
// serializes ticks against the HTTP surface and the other jobs.
func NewOrderFulfillmentJob(
	planner commands.PlanDeliveryCommandHandler,
	book *transport.OrderBook,
	jobs *transport.JobManager,
	economy ports.EconomyQuery,
	marketNode kernel.NodeRef,
	maxPerTrip int,
	worldMu *sync.Mutex,
	logger *slog.Logger,
) *OrderFulfillmentJob {
	return &OrderFulfillmentJob{
		planner:    planner,
		book:       book,
		jobs:       jobs,
		economy:    economy,
		marketNode: marketNode,
		maxPerTrip: maxPerTrip,
		worldMu:    worldMu,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "order_fulfillment_job"),
	}
}

// Start begins the fulfillment job to run every second.
func (j *OrderFulfillmentJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		j.tick(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order fulfillment job started (running every second)")
	return nil
}

// Stop stops the fulfillment job.
func (j *OrderFulfillmentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order fulfillment job stopped")
}

func (j *OrderFulfillmentJob) tick(ctx context.Context) {
	j.worldMu.Lock()
	defer j.worldMu.Unlock()

	for _, order := range j.book.OpenOrders() {
		j.fulfillOrder(ctx, order)
	}
}

func (j *OrderFulfillmentJob) fulfillOrder(ctx context.Context, order *transport.DeliveryOrder) {
	orderID := order.ID()

	// The listing price bounds what the buyer is willing to spend.
	if !j.economy.CanAfford(order.Price() * float64(order.Remaining())) {
		return
	}

	cmd, err := commands.NewPlanDeliveryCommand(
		string(order.Resource()),
		order.Remaining(),
		j.marketNode,
		j.maxPerTrip,
		&orderID,
	)
	if err != nil {
		j.logger.ErrorContext(ctx, "Order fulfillment planning rejected", "order", orderID.String(), "error", err)
		return
	}

	result, err := j.planner.Handle(ctx, cmd)
	if err != nil {
		// Supply fluctuates tick to tick; these outcomes resolve themselves.
		switch errs.CodeOf(err) {
		case errs.CodeNoSuppliers, errs.CodeNoStock, errs.CodeRouteUnreachable, errs.CodePlanningFailed:
			return
		}
		j.logger.ErrorContext(ctx, "Order fulfillment job failed", "order", orderID.String(), "error", err)
		return
	}

	var totalCost float64
	for _, job := range result.Jobs {
		totalCost += job.Cost()
	}

	if err := j.economy.Debit(totalCost); err != nil {
		// Unpaid transport must not run. Failing the jobs returns their
		// claims to the order, so it stays open for a cheaper plan.
		for _, job := range result.Jobs {
			if failErr := j.jobs.ReportFailed(job.ID()); failErr != nil {
				j.logger.ErrorContext(ctx, "Unpaid job cancellation failed",
					"order", orderID.String(), "job", job.ID().String(), "error", failErr)
			}
		}
		j.logger.WarnContext(ctx, "Transport cost debit failed, plan cancelled",
			"order", orderID.String(), "cost", totalCost, "error", err)
	}
}
