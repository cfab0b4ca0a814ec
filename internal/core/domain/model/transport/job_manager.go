package transport

import (
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

// JobObserver receives job lifecycle notifications. Delivery is synchronous
// and in subscription order; the triggering call does not return until every
// observer has run.
type JobObserver interface {
	// JobPlanned fires when a job enters the queue, at creation or on requeue.
	JobPlanned(job *Job)

	// JobStarted fires when a carrier picks the job up.
	JobStarted(job *Job)

	// JobCompleted fires when the cargo arrives, with the amount actually
	// delivered (may be less than the planned amount).
	JobCompleted(job *Job, delivered int)

	// JobFailed fires when the job is aborted before delivery.
	JobFailed(job *Job)
}

type jobSubscription struct {
	id       int
	observer JobObserver
}

// JobManager owns every transport job from creation to terminal state or
// explicit removal. It keeps an id-indexed map for lookups and a FIFO queue
// of planned jobs for carriers to drain. All mutation of a job goes through
// the report operations here; direct field assignment from outside is not
// part of the contract.
type JobManager struct {
	jobs  map[kernel.UUID]*Job
	order []kernel.UUID

	// queue holds candidate ids in FIFO order; entries whose job has left
	// Planned in the meantime are skipped lazily on dequeue
	queue []kernel.UUID

	subscriptions []jobSubscription
	nextSubID     int
}

// NewJobManager creates an empty job manager.
func NewJobManager() *JobManager {
	return &JobManager{
		jobs: make(map[kernel.UUID]*Job),
	}
}

// Subscribe registers an observer for job lifecycle events and returns the
// matching unsubscribe function. Call it when the observer is discarded.
func (m *JobManager) Subscribe(observer JobObserver) func() {
	id := m.nextSubID
	m.nextSubID++
	m.subscriptions = append(m.subscriptions, jobSubscription{id: id, observer: observer})

	return func() {
		for i, sub := range m.subscriptions {
			if sub.id == id {
				m.subscriptions = append(m.subscriptions[:i], m.subscriptions[i+1:]...)
				return
			}
		}
	}
}

// AddJob inserts a job into the manager and, if it is Planned, into the
// FIFO queue. Fires the planned event. Fails on duplicate ids.
func (m *JobManager) AddJob(job *Job) error {
	if err := job.Validate(); err != nil {
		return err
	}
	if _, exists := m.jobs[job.ID()]; exists {
		return errs.NewValueIsInvalidErrorWithCause(
			"job is invalid",
			fmt.Errorf("job %s already exists", job.ID()),
		)
	}

	m.jobs[job.ID()] = job
	m.order = append(m.order, job.ID())
	if job.Status() == Planned {
		m.queue = append(m.queue, job.ID())
		m.notifyPlanned(job)
	}
	return nil
}

// Restore inserts a job reconstructed from a snapshot without firing the
// planned event: the snapshot's order bookkeeping already accounts for the
// job's claim, so re-claiming it would double-count demand. The queue is
// rebuilt afterwards by ResetAllToPlanned.
func (m *JobManager) Restore(job *Job) error {
	if err := job.Validate(); err != nil {
		return err
	}
	if _, exists := m.jobs[job.ID()]; exists {
		return errs.NewValueIsInvalidErrorWithCause(
			"job is invalid",
			fmt.Errorf("job %s already exists", job.ID()),
		)
	}

	m.jobs[job.ID()] = job
	m.order = append(m.order, job.ID())
	return nil
}

// NextPlanned pops the next Planned job in FIFO order, or nil when the
// queue is empty. The job stays Planned until its start is reported.
func (m *JobManager) NextPlanned() *Job {
	for len(m.queue) > 0 {
		id := m.queue[0]
		m.queue = m.queue[1:]

		job, ok := m.jobs[id]
		if ok && job.Status() == Planned {
			return job
		}
	}
	return nil
}

// Get returns the job with the given id.
func (m *JobManager) Get(jobID kernel.UUID) (*Job, bool) {
	job, ok := m.jobs[jobID]
	return job, ok
}

// Jobs returns all managed jobs in insertion order.
func (m *JobManager) Jobs() []*Job {
	out := make([]*Job, 0, len(m.order))
	for _, id := range m.order {
		if job, ok := m.jobs[id]; ok {
			out = append(out, job)
		}
	}
	return out
}

// ReportStarted marks a job as picked up by a carrier (Planned -> Started)
// and fires the started event.
func (m *JobManager) ReportStarted(jobID kernel.UUID, carrier kernel.NodeRef) error {
	job, ok := m.jobs[jobID]
	if !ok {
		return errs.NewObjectNotFoundError("job", jobID)
	}

	if err := job.Start(carrier); err != nil {
		return err
	}

	for _, sub := range append([]jobSubscription(nil), m.subscriptions...) {
		sub.observer.JobStarted(job)
	}
	return nil
}

// ReportCompleted marks a job as delivered (Started -> Completed) and fires
// the completion event carrying the amount actually delivered.
func (m *JobManager) ReportCompleted(jobID kernel.UUID, delivered int) error {
	job, ok := m.jobs[jobID]
	if !ok {
		return errs.NewObjectNotFoundError("job", jobID)
	}
	if delivered < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivered is invalid",
			fmt.Errorf("%d is less than 0", delivered),
		)
	}

	if err := job.Complete(); err != nil {
		return err
	}

	for _, sub := range append([]jobSubscription(nil), m.subscriptions...) {
		sub.observer.JobCompleted(job, delivered)
	}
	return nil
}

// ReportFailed marks a non-terminal job as Failed and fires the failure
// event. The failure event is what restores undelivered demand to the
// associated order, so it fires at most once per job.
func (m *JobManager) ReportFailed(jobID kernel.UUID) error {
	job, ok := m.jobs[jobID]
	if !ok {
		return errs.NewObjectNotFoundError("job", jobID)
	}

	if err := job.Fail(); err != nil {
		return err
	}

	for _, sub := range append([]jobSubscription(nil), m.subscriptions...) {
		sub.observer.JobFailed(job)
	}
	return nil
}

// Requeue puts a single non-Planned job back into the queue and fires the
// planned event again, so order bookkeeping re-claims the demand.
func (m *JobManager) Requeue(jobID kernel.UUID) error {
	job, ok := m.jobs[jobID]
	if !ok {
		return errs.NewObjectNotFoundError("job", jobID)
	}

	if err := job.Requeue(); err != nil {
		return err
	}

	m.queue = append(m.queue, job.ID())
	m.notifyPlanned(job)
	return nil
}

// CancelJobsForNode fails every non-terminal job whose source or destination
// matches the given node, firing a failure event per job. Used when a node
// is demolished mid-transit. Returns the number of jobs failed.
func (m *JobManager) CancelJobsForNode(node kernel.NodeRef) int {
	cancelled := 0
	for _, id := range m.order {
		job, ok := m.jobs[id]
		if !ok || job.Status().IsTerminal() || !job.TouchesNode(node) {
			continue
		}

		if err := job.Fail(); err != nil {
			continue
		}
		cancelled++
		for _, sub := range append([]jobSubscription(nil), m.subscriptions...) {
			sub.observer.JobFailed(job)
		}
	}
	return cancelled
}

// ResetAllToPlanned bulk-requeues every non-Planned job, rebuilding the FIFO
// queue in insertion order. It fires no events: this runs right after a
// restore, when the snapshot's order bookkeeping is already consistent and
// re-claiming demand would double-count it.
func (m *JobManager) ResetAllToPlanned() {
	m.queue = m.queue[:0]
	for _, id := range m.order {
		job, ok := m.jobs[id]
		if !ok {
			continue
		}
		if job.Status() != Planned {
			if err := job.Requeue(); err != nil {
				continue
			}
		}
		m.queue = append(m.queue, job.ID())
	}
}

// Remove deletes a job from the manager entirely. Intended for terminal
// jobs whose bookkeeping is finished.
func (m *JobManager) Remove(jobID kernel.UUID) {
	if _, ok := m.jobs[jobID]; !ok {
		return
	}
	delete(m.jobs, jobID)
	for i, id := range m.order {
		if id.IsEqual(jobID) {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

func (m *JobManager) notifyPlanned(job *Job) {
	for _, sub := range append([]jobSubscription(nil), m.subscriptions...) {
		sub.observer.JobPlanned(job)
	}
}
