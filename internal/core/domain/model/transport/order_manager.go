package transport

import (
	"logistics/internal/core/domain/model/kernel"
)

// OrderManager keeps delivery orders consistent with the jobs that fulfill
// them. It subscribes to job lifecycle events: a planned job claims its
// amount against the order's remaining quantity, a completed job finalizes
// the claim, and a failed job restores it, so demand is never silently lost.
//
// The manager records the amount actually claimed per job. Restoration on
// failure uses that record, not the job's nominal amount, which keeps
// plan-then-fail sequences exactly conservative even when a claim was
// clipped by the order's remaining quantity.
type OrderManager struct {
	book    *OrderBook
	claimed map[kernel.UUID]int

	unsubscribe func()
}

// NewOrderManager creates the manager and subscribes it to the job
// manager's events. Call Close when discarding it.
func NewOrderManager(book *OrderBook, jobs *JobManager) *OrderManager {
	m := &OrderManager{
		book:    book,
		claimed: make(map[kernel.UUID]int),
	}
	m.unsubscribe = jobs.Subscribe(m)
	return m
}

// Close unsubscribes the manager from job events.
func (m *OrderManager) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// JobPlanned claims the job's amount against its order and attaches the
// job to the order's in-flight set. Jobs without an order are ignored.
func (m *OrderManager) JobPlanned(job *Job) {
	orderID := job.Order()
	if orderID == nil {
		return
	}
	order, ok := m.book.Get(*orderID)
	if !ok {
		return
	}

	claimed, err := m.book.Reserve(*orderID, job.Amount())
	if err != nil {
		return
	}
	m.claimed[job.ID()] = claimed
	_ = order.AttachJob(job.ID())
}

// JobStarted is a no-op: the order entered InTransport when the job was
// attached.
func (m *OrderManager) JobStarted(job *Job) {}

// JobCompleted finalizes the job's claim and detaches it from the order.
// A delivery short of the claimed amount returns the shortfall to the
// order's remaining, so under-delivery reopens the order instead of
// completing it. The order completes once nothing remains and no job is
// still in flight.
func (m *OrderManager) JobCompleted(job *Job, delivered int) {
	orderID := job.Order()
	if orderID == nil {
		return
	}

	claimed, ok := m.claimed[job.ID()]
	if !ok {
		claimed = job.Amount()
	}
	delete(m.claimed, job.ID())

	order, found := m.book.Get(*orderID)
	if !found {
		return
	}
	order.DetachJob(job.ID())
	if shortfall := claimed - delivered; shortfall > 0 {
		m.book.Restore(*orderID, shortfall)
	}
}

// JobFailed restores the job's claimed quantity to the order's remaining
// and detaches the job.
func (m *OrderManager) JobFailed(job *Job) {
	orderID := job.Order()
	if orderID == nil {
		return
	}

	claimed, ok := m.claimed[job.ID()]
	if !ok {
		claimed = job.Amount()
	}
	delete(m.claimed, job.ID())

	order, found := m.book.Get(*orderID)
	if !found {
		return
	}
	order.DetachJob(job.ID())
	m.book.Restore(*orderID, claimed)
}
