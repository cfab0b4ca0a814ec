package commands

import (
	"context"
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/supply"
	"logistics/internal/core/domain/model/transport"
	"logistics/internal/core/domain/services"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// PlanDeliveryResult is the outcome of a planning request: the jobs that
// were enqueued plus the demand that could not be covered, either because
// supplier stock ran short or because no route reached an allotment.
type PlanDeliveryResult struct {
	Jobs  []*transport.Job
	Unmet int
}

// PlanDeliveryCommandHandler turns a demand request into transport jobs.
// It orchestrates the supply index, the scheduler, the router, and the job
// manager:
//
//  1. Candidate suppliers come from the supply index, sorted nearest-first
//     to the destination.
//  2. The scheduler splits the demand into per-trip allotments, reserving
//     supplier stock as it goes.
//  3. The router computes a path and cost per allotment; allotments with
//     no route release their reservation and count as unmet.
//  4. One job per routed allotment enters the job manager, which fires the
//     planned event consumed by order bookkeeping.
//
// Failure is reserved for requests producing zero usable allocation: no
// suppliers, no free stock, or every allotment unreachable. Partial
// coverage is a success with a non-zero Unmet remainder.
type PlanDeliveryCommandHandler struct {
	index     *supply.Index
	scheduler services.Scheduler
	router    *services.Router
	jobs      *transport.JobManager
	resolver  ports.EntityResolver

	costPerTileUnit float64
	fixedCost       float64
}

// NewPlanDeliveryCommandHandler creates the planning handler. The cost
// parameters feed the router's cost formula for every planned job.
func NewPlanDeliveryCommandHandler(
	index *supply.Index,
	scheduler services.Scheduler,
	router *services.Router,
	jobs *transport.JobManager,
	resolver ports.EntityResolver,
	costPerTileUnit float64,
	fixedCost float64,
) PlanDeliveryCommandHandler {
	return PlanDeliveryCommandHandler{
		index:           index,
		scheduler:       scheduler,
		router:          router,
		jobs:            jobs,
		resolver:        resolver,
		costPerTileUnit: costPerTileUnit,
		fixedCost:       fixedCost,
	}
}

// Handle processes the demand request and returns the created jobs plus the
// unmet remainder.
func (h *PlanDeliveryCommandHandler) Handle(ctx context.Context, cmd PlanDeliveryCommand) (PlanDeliveryResult, error) {
	if err := cmd.Validate(); err != nil {
		return PlanDeliveryResult{}, err
	}

	destination, ok := h.resolver.Resolve(cmd.Destination())
	if !ok {
		return PlanDeliveryResult{}, errs.NewDomainError(
			errs.CodeInvalidArgument,
			fmt.Sprintf("destination %s does not resolve to a live entity", cmd.Destination()),
		)
	}
	destinationPos := destination.Position()

	suppliers := h.index.Suppliers(cmd.Resource())
	if len(suppliers) == 0 {
		return PlanDeliveryResult{}, errs.NewDomainError(
			errs.CodeNoSuppliers,
			fmt.Sprintf("no suppliers registered for %s", cmd.Resource()),
		)
	}

	services.SortSuppliersByDistance(suppliers, destinationPos)

	plan := h.scheduler.Plan(cmd.Resource(), suppliers, cmd.Amount(), cmd.MaxPerTrip())
	if len(plan) == 0 {
		return PlanDeliveryResult{}, errs.NewDomainError(
			errs.CodeNoStock,
			fmt.Sprintf("suppliers for %s have no free stock", cmd.Resource()),
		)
	}

	result := PlanDeliveryResult{Unmet: cmd.Amount()}
	unreachable := 0

	for _, allotment := range plan {
		path := h.router.Path(ctx, allotment.Supplier.Position(), destinationPos)
		if len(path) == 0 {
			h.releaseAllotment(allotment)
			unreachable++
			continue
		}

		cost := h.router.Cost(
			ctx,
			allotment.Supplier.Position(),
			destinationPos,
			h.costPerTileUnit,
			allotment.Amount,
			h.fixedCost,
		)

		job, err := transport.NewJob(
			kernel.NewUUID(),
			string(cmd.Resource()),
			allotment.Amount,
			allotment.Supplier.Node(),
			cmd.Destination(),
			path,
			cost,
		)
		if err != nil {
			h.releaseAllotment(allotment)
			return PlanDeliveryResult{}, errs.WrapUnexpected(err)
		}

		if orderID := cmd.OrderID(); orderID != nil {
			if err = job.BindOrder(*orderID); err != nil {
				h.releaseAllotment(allotment)
				return PlanDeliveryResult{}, errs.WrapUnexpected(err)
			}
		}

		if err = h.jobs.AddJob(job); err != nil {
			h.releaseAllotment(allotment)
			return PlanDeliveryResult{}, errs.WrapUnexpected(err)
		}

		result.Jobs = append(result.Jobs, job)
		result.Unmet -= allotment.Amount
	}

	if len(result.Jobs) == 0 {
		if unreachable == len(plan) {
			return PlanDeliveryResult{}, errs.NewDomainError(
				errs.CodeRouteUnreachable,
				fmt.Sprintf("no route from any supplier of %s to %s", cmd.Resource(), cmd.Destination()),
			)
		}
		return PlanDeliveryResult{}, errs.NewDomainError(
			errs.CodePlanningFailed,
			fmt.Sprintf("planning for %s produced no usable allocation", cmd.Resource()),
		)
	}

	return result, nil
}

// releaseAllotment hands the reserved stock back to the supplier when the
// allotment did not become a job.
func (h *PlanDeliveryCommandHandler) releaseAllotment(allotment services.Allotment) {
	reserved := allotment.Supplier.Reserved() - float64(allotment.Amount)
	allotment.Supplier.SetReservation(reserved)
}
