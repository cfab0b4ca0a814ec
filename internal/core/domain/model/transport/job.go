package transport

import (
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/resource"
	"logistics/internal/pkg/errs"
)

var (
	// ErrJobIsNotConstructed is returned when a Job instance was not created through
	// the NewJob factory method. This ensures all jobs are properly validated.
	ErrJobIsNotConstructed = errors.New("Job must be created via NewJob constructor")
)

// Job represents a single planned movement of a resource amount from a
// source node to a destination node. It is the aggregate root for the
// transport lifecycle, from planning through transit to a terminal state.
//
// Job follows these invariants:
//   - Must have a valid unique identifier
//   - Must have a canonical resource and a positive amount
//   - Source and destination node references must be set
//   - Status transitions follow the Status state machine
//   - Can only be created through NewJob or RestoreJob
//
// Jobs are owned by the JobManager; outside code mutates them only through
// the manager's report operations, never by direct field assignment.
type Job struct {
	// id is the unique identifier for the job
	id kernel.UUID

	// resource is the canonical resource identifier being moved
	resource resource.ID

	// amount is the number of units carried by this trip (positive)
	amount int

	// source and destination are opaque handles to the endpoints
	source      kernel.NodeRef
	destination kernel.NodeRef

	// carrier is the handle of the assigned carrier (nil while Planned)
	carrier kernel.NodeRef

	// orderID links the job to a delivery order (nil for ad hoc trips)
	orderID *kernel.UUID

	// path is the planned polyline in world space; empty after a restore,
	// since paths are recomputed against the live road network
	path []kernel.Point

	// cost is the monetary transport cost computed at planning time
	cost float64

	// status is the current state in the job lifecycle
	status Status

	// isConstructed ensures the job was created via NewJob or RestoreJob
	isConstructed bool
}

// NewJob creates a new Job instance with validation. This is the only way
// (besides RestoreJob) to create a valid Job, ensuring all invariants hold.
//
// Parameters:
//   - id: Unique identifier for the job (must be valid UUID)
//   - res: Raw resource identifier, canonicalized on construction
//   - amount: Units to move (must be positive)
//   - source, destination: Endpoint node handles (must be set)
//   - path: Planned polyline in world space (may be empty)
//   - cost: Computed transport cost (must not be negative)
//
// The job starts in Planned status with no carrier assigned.
func NewJob(
	id kernel.UUID,
	res string,
	amount int,
	source kernel.NodeRef,
	destination kernel.NodeRef,
	path []kernel.Point,
	cost float64,
) (*Job, error) {
	job := &Job{
		status:        Planned,
		isConstructed: true,
	}

	if err := errors.Join(
		job.setID(id),
		job.setResource(res),
		job.setAmount(amount),
		job.setEndpoints(source, destination),
		job.setCost(cost),
	); err != nil {
		return nil, err
	}

	job.path = path
	return job, nil
}

// RestoreJob reconstructs a Job from persisted state. The restored job
// carries no path: the road network may have changed since the snapshot,
// so paths are recomputed when the job is dequeued again.
func RestoreJob(
	id kernel.UUID,
	res string,
	amount int,
	source kernel.NodeRef,
	destination kernel.NodeRef,
	cost float64,
	status Status,
	orderID *kernel.UUID,
) (*Job, error) {
	job, err := NewJob(id, res, amount, source, destination, nil, cost)
	if err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	job.status = status
	job.orderID = orderID
	return job, nil
}

// Validate ensures the Job instance was properly constructed.
// Call when reconstructing jobs from persistence to ensure integrity.
func (j *Job) Validate() error {
	if j == nil || !j.isConstructed {
		return ErrJobIsNotConstructed
	}

	return nil
}

// IsEqual compares two jobs by their unique identifiers.
func (j *Job) IsEqual(other *Job) bool {
	return other != nil && j.id.IsEqual(other.id)
}

// ID returns the job's unique identifier.
func (j *Job) ID() kernel.UUID {
	return j.id
}

// Resource returns the canonical resource identifier being moved.
func (j *Job) Resource() resource.ID {
	return j.resource
}

// Amount returns the number of units carried by this trip.
func (j *Job) Amount() int {
	return j.amount
}

// Source returns the handle of the node the cargo is picked up from.
func (j *Job) Source() kernel.NodeRef {
	return j.source
}

// Destination returns the handle of the node the cargo is delivered to.
func (j *Job) Destination() kernel.NodeRef {
	return j.destination
}

// Carrier returns the handle of the assigned carrier.
// Returns kernel.NilNode while the job is Planned.
func (j *Job) Carrier() kernel.NodeRef {
	return j.carrier
}

// Order returns the ID of the delivery order this job fulfills.
// Returns nil for ad hoc trips not backed by an order.
func (j *Job) Order() *kernel.UUID {
	return j.orderID
}

// Path returns the planned polyline in world space.
func (j *Job) Path() []kernel.Point {
	return j.path
}

// Cost returns the monetary transport cost computed at planning time.
func (j *Job) Cost() float64 {
	return j.cost
}

// Status returns the current status of the job.
func (j *Job) Status() Status {
	return j.status
}

// TouchesNode reports whether the job's source or destination matches the
// given node handle. Used to fail in-flight jobs when a node is demolished.
func (j *Job) TouchesNode(node kernel.NodeRef) bool {
	return j.source == node || j.destination == node
}

// BindOrder links the job to a delivery order. Only Planned jobs may be
// bound, so the order's in-flight bookkeeping stays consistent.
func (j *Job) BindOrder(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if j.status != Planned {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to bind an order", j.status.String()),
		)
	}

	j.orderID = &orderID
	return nil
}

// Start marks the job as picked up by a carrier (Planned -> Started).
//
// Parameters:
//   - carrier: Handle of the carrier taking the job (must be set)
//
// Returns an error if the carrier handle is nil or the transition is not
// allowed from the current status.
func (j *Job) Start(carrier kernel.NodeRef) error {
	if carrier.IsNil() {
		return errs.NewValueIsRequiredError("carrier")
	}

	newStatus, err := j.status.Start()
	if err != nil {
		return err
	}

	j.status = newStatus
	j.carrier = carrier
	return nil
}

// Complete marks the job as delivered (Started -> Completed).
func (j *Job) Complete() error {
	newStatus, err := j.status.Complete()
	if err != nil {
		return err
	}

	j.status = newStatus
	return nil
}

// Fail marks the job as aborted (any non-terminal -> Failed).
func (j *Job) Fail() error {
	newStatus, err := j.status.Fail()
	if err != nil {
		return err
	}

	j.status = newStatus
	return nil
}

// Requeue puts the job back into Planned, clearing the carrier assignment
// and the stale path. Used after a restore, since in-flight carriers are
// not persisted.
func (j *Job) Requeue() error {
	newStatus, err := j.status.Requeue()
	if err != nil {
		return err
	}

	j.status = newStatus
	j.carrier = kernel.NilNode
	j.path = nil
	return nil
}

// setID validates and sets the job's unique identifier.
func (j *Job) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	j.id = id
	return nil
}

// setResource canonicalizes and sets the resource identifier.
func (j *Job) setResource(raw string) error {
	res := resource.Canonical(raw)
	if res.IsZero() {
		return errs.NewValueIsRequiredError("resource")
	}
	j.resource = res
	return nil
}

// setAmount validates and sets the job's amount. Must be positive.
func (j *Job) setAmount(amount int) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount is invalid", fmt.Errorf("%d is not greater than 0", amount))
	}
	j.amount = amount
	return nil
}

// setEndpoints validates and sets the source and destination handles.
func (j *Job) setEndpoints(source, destination kernel.NodeRef) error {
	if source.IsNil() {
		return errs.NewValueIsRequiredError("source")
	}
	if destination.IsNil() {
		return errs.NewValueIsRequiredError("destination")
	}
	j.source = source
	j.destination = destination
	return nil
}

// setCost validates and sets the job's cost. Must not be negative.
func (j *Job) setCost(cost float64) error {
	if cost < 0 {
		return errs.NewValueIsInvalidErrorWithCause("cost is invalid", fmt.Errorf("%g is less than 0", cost))
	}
	j.cost = cost
	return nil
}
