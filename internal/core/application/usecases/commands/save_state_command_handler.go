package commands

import (
	"context"

	"logistics/internal/core/domain/model/roadnet"
	"logistics/internal/core/domain/model/transport"
)

// SaveStateCommandHandler writes the world snapshot inside one transaction.
// Terminal jobs are not persisted: their bookkeeping is finished and a
// restore would only requeue them.
type SaveStateCommandHandler struct {
	uowFactory SnapshotUoWFactory
	jobs       *transport.JobManager
	book       *transport.OrderBook
	network    *roadnet.Network
}

// NewSaveStateCommandHandler creates a snapshot save handler.
func NewSaveStateCommandHandler(
	uowFactory SnapshotUoWFactory,
	jobs *transport.JobManager,
	book *transport.OrderBook,
	network *roadnet.Network,
) SaveStateCommandHandler {
	return SaveStateCommandHandler{
		uowFactory: uowFactory,
		jobs:       jobs,
		book:       book,
		network:    network,
	}
}

// Handle replaces the persisted snapshot with the live world state.
func (h *SaveStateCommandHandler) Handle(ctx context.Context, cmd SaveStateCommand) error {
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

	jobRepo := uow.JobRepository()
	if err := jobRepo.Clear(ctx); err != nil {
		return err
	}
	for _, job := range h.jobs.Jobs() {
		if job.Status().IsTerminal() {
			continue
		}
		if err := jobRepo.Add(ctx, job); err != nil {
			return err
		}
	}

	orderRepo := uow.OrderRepository()
	if err := orderRepo.Clear(ctx); err != nil {
		return err
	}
	for _, order := range h.book.Orders() {
		if err := orderRepo.Add(ctx, order); err != nil {
			return err
		}
	}

	if err := uow.RoadRepository().ReplaceAll(ctx, h.network.Cells()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
