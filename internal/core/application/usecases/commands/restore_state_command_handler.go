package commands

import (
	"context"

	"logistics/internal/core/domain/model/roadnet"
	"logistics/internal/core/domain/model/transport"
	"logistics/internal/core/ports"
)

// RestoreStateCommandHandler rebuilds the live world from the persisted
// snapshot. Jobs whose endpoints no longer resolve to live entities are
// dropped and their claims returned to their orders; everything else
// re-enters the queue as Planned.
//
// Restoration inserts jobs silently: the snapshot's order remaining already
// accounts for in-flight claims, so refiring planned events would
// double-count demand. Job-to-order attachments are re-established here
// explicitly instead.
type RestoreStateCommandHandler struct {
	uowFactory SnapshotUoWFactory
	jobs       *transport.JobManager
	book       *transport.OrderBook
	network    *roadnet.Network
	resolver   ports.EntityResolver
}

// NewRestoreStateCommandHandler creates a snapshot restore handler.
func NewRestoreStateCommandHandler(
	uowFactory SnapshotUoWFactory,
	jobs *transport.JobManager,
	book *transport.OrderBook,
	network *roadnet.Network,
	resolver ports.EntityResolver,
) RestoreStateCommandHandler {
	return RestoreStateCommandHandler{
		uowFactory: uowFactory,
		jobs:       jobs,
		book:       book,
		network:    network,
		resolver:   resolver,
	}
}

// Handle loads the snapshot and swaps it into the live world.
func (h *RestoreStateCommandHandler) Handle(ctx context.Context, cmd RestoreStateCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cells, err := uow.RoadRepository().GetAll(ctx)
	if err != nil {
		return err
	}
	orders, err := uow.OrderRepository().GetAll(ctx)
	if err != nil {
		return err
	}
	jobs, err := uow.JobRepository().GetAll(ctx)
	if err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.network.Rebuild(cells)

	for _, stale := range h.book.Orders() {
		h.book.Remove(stale.ID())
	}
	for _, order := range orders {
		if err = h.book.AddOrUpdate(order); err != nil {
			return err
		}
	}

	for _, stale := range h.jobs.Jobs() {
		h.jobs.Remove(stale.ID())
	}
	for _, job := range jobs {
		_, sourceOK := h.resolver.Resolve(job.Source())
		_, destinationOK := h.resolver.Resolve(job.Destination())
		if !sourceOK || !destinationOK {
			h.releaseDroppedClaim(job)
			continue
		}

		if err = h.jobs.Restore(job); err != nil {
			return err
		}
		if orderID := job.Order(); orderID != nil {
			if order, ok := h.book.Get(*orderID); ok {
				_ = order.AttachJob(job.ID())
			}
		}
	}

	h.jobs.ResetAllToPlanned()
	return nil
}

// releaseDroppedClaim returns an undeliverable job's claim to its order.
// The persisted remaining was decremented when the job was planned, so a
// job dropped at restore time must give that quantity back or the demand
// is lost for good.
func (h *RestoreStateCommandHandler) releaseDroppedClaim(job *transport.Job) {
	if job.Status().IsTerminal() {
		return
	}
	orderID := job.Order()
	if orderID == nil {
		return
	}
	h.book.Restore(*orderID, job.Amount())
}
