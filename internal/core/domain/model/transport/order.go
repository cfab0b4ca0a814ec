package transport

import (
	"errors"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/resource"
	"logistics/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when a DeliveryOrder instance was not
	// created through the NewDeliveryOrder factory method.
	ErrOrderIsNotConstructed = errors.New("DeliveryOrder must be created via NewDeliveryOrder constructor")
)

// DeliveryOrder is a demand-side record of a requested resource quantity.
// It tracks how much remains to be fulfilled, which jobs are currently in
// flight for it, and when the request expires if nobody accepts it.
//
// DeliveryOrder follows these invariants:
//   - 0 <= remaining <= total at all times
//   - Reserving claims quantity for an in-flight job without waiting for
//     delivery confirmation; a failed job restores its claim
//   - Completed requires remaining = 0 and no job still in flight
//   - Accepted orders never auto-expire
type DeliveryOrder struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// resource is the canonical resource identifier requested
	resource resource.ID

	// product is the human-facing product label shown on the market board
	product string

	// total is the full requested quantity; remaining counts down from it
	total     int
	remaining int

	// price is the offered price per unit
	price float64

	// status is derived from remaining and the in-flight job set
	status OrderStatus

	// accepted marks the order as claimed by a player or contractor;
	// accepted orders are exempt from expiry
	accepted bool

	createdAt time.Time
	expiresAt time.Time

	// jobIDs holds the ids of jobs currently in flight for this order
	jobIDs []kernel.UUID

	// isConstructed ensures the order was created via NewDeliveryOrder
	isConstructed bool
}

// NewDeliveryOrder creates a new DeliveryOrder with validation.
//
// Parameters:
//   - id: Unique identifier (must be valid UUID)
//   - res: Raw resource identifier, canonicalized on construction
//   - product: Product label (falls back to the resource id when empty)
//   - total: Requested quantity (must be positive)
//   - price: Price per unit (must not be negative)
//   - createdAt: Creation timestamp
//   - expiresAt: Expiry deadline; zero means the order never expires
//
// The order starts Open with remaining = total and no jobs attached.
func NewDeliveryOrder(
	id kernel.UUID,
	res string,
	product string,
	total int,
	price float64,
	createdAt time.Time,
	expiresAt time.Time,
) (*DeliveryOrder, error) {
	order := &DeliveryOrder{
		status:        OrderStatusOpen,
		createdAt:     createdAt,
		expiresAt:     expiresAt,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setResource(res),
		order.setTotal(total),
		order.setPrice(price),
	); err != nil {
		return nil, err
	}

	order.remaining = order.total
	order.product = product
	if order.product == "" {
		order.product = string(order.resource)
	}

	return order, nil
}

// RestoreOrder reconstructs a DeliveryOrder from persisted state. Job
// associations are not restored here: restored jobs re-enter the queue as
// Planned and re-attach when they are dequeued again.
func RestoreOrder(
	id kernel.UUID,
	res string,
	product string,
	total int,
	remaining int,
	price float64,
	accepted bool,
	createdAt time.Time,
	expiresAt time.Time,
) (*DeliveryOrder, error) {
	order, err := NewDeliveryOrder(id, res, product, total, price, createdAt, expiresAt)
	if err != nil {
		return nil, err
	}

	if remaining < 0 || remaining > total {
		return nil, errs.NewValueIsOutOfRangeError("remaining", remaining, 0, total)
	}

	order.remaining = remaining
	order.accepted = accepted
	order.refreshStatus()
	return order, nil
}

// Validate ensures the DeliveryOrder instance was properly constructed.
func (o *DeliveryOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *DeliveryOrder) IsEqual(other *DeliveryOrder) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *DeliveryOrder) ID() kernel.UUID {
	return o.id
}

// Resource returns the canonical resource identifier requested.
func (o *DeliveryOrder) Resource() resource.ID {
	return o.resource
}

// Product returns the human-facing product label.
func (o *DeliveryOrder) Product() string {
	return o.product
}

// Total returns the full requested quantity.
func (o *DeliveryOrder) Total() int {
	return o.total
}

// Remaining returns the quantity not yet claimed by a job.
func (o *DeliveryOrder) Remaining() int {
	return o.remaining
}

// Price returns the offered price per unit.
func (o *DeliveryOrder) Price() float64 {
	return o.price
}

// Status returns the current fulfillment status of the order.
func (o *DeliveryOrder) Status() OrderStatus {
	return o.status
}

// Accepted reports whether the order has been claimed and is exempt
// from expiry.
func (o *DeliveryOrder) Accepted() bool {
	return o.accepted
}

// CreatedAt returns the creation timestamp.
func (o *DeliveryOrder) CreatedAt() time.Time {
	return o.createdAt
}

// ExpiresAt returns the expiry deadline. The zero time means the order
// never expires.
func (o *DeliveryOrder) ExpiresAt() time.Time {
	return o.expiresAt
}

// Jobs returns a copy of the ids of jobs currently in flight for this order.
func (o *DeliveryOrder) Jobs() []kernel.UUID {
	out := make([]kernel.UUID, len(o.jobIDs))
	copy(out, o.jobIDs)
	return out
}

// InFlight returns the number of jobs currently in flight for this order.
func (o *DeliveryOrder) InFlight() int {
	return len(o.jobIDs)
}

// IsExpirable reports whether the order is subject to expiry at the given
// timestamp: not accepted, not completed, and past its deadline.
func (o *DeliveryOrder) IsExpirable(at time.Time) bool {
	if o.accepted || o.status == OrderStatusCompleted || o.expiresAt.IsZero() {
		return false
	}
	return !o.expiresAt.After(at)
}

// Accept marks the order as claimed. Completed orders cannot be accepted.
func (o *DeliveryOrder) Accept() error {
	if o.status == OrderStatusCompleted {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to accept", o.status.String()),
		)
	}

	o.accepted = true
	return nil
}

// Reserve claims quantity for an in-flight job, decrementing remaining
// floored at zero, and returns the amount actually claimed. The claim is
// made at planning time, before delivery confirmation, so the same units
// are never promised to two jobs.
func (o *DeliveryOrder) Reserve(amount int) int {
	if amount <= 0 {
		return 0
	}
	claimed := amount
	if claimed > o.remaining {
		claimed = o.remaining
	}

	o.remaining -= claimed
	o.refreshStatus()
	return claimed
}

// Restore returns previously claimed quantity to remaining, capped at the
// order total. Called when a job fails so the undelivered demand is not
// silently lost.
func (o *DeliveryOrder) Restore(amount int) {
	if amount <= 0 {
		return
	}

	o.remaining += amount
	if o.remaining > o.total {
		o.remaining = o.total
	}
	o.refreshStatus()
}

// AttachJob records a job as in flight for this order.
func (o *DeliveryOrder) AttachJob(jobID kernel.UUID) error {
	if err := jobID.Validate(); err != nil {
		return err
	}

	for _, id := range o.jobIDs {
		if id.IsEqual(jobID) {
			return nil
		}
	}
	o.jobIDs = append(o.jobIDs, jobID)
	o.refreshStatus()
	return nil
}

// DetachJob removes a job from the in-flight set once it reaches a
// terminal state.
func (o *DeliveryOrder) DetachJob(jobID kernel.UUID) {
	for i, id := range o.jobIDs {
		if id.IsEqual(jobID) {
			o.jobIDs = append(o.jobIDs[:i], o.jobIDs[i+1:]...)
			break
		}
	}
	o.refreshStatus()
}

// refreshStatus derives the status from remaining and the in-flight set.
// Remaining can hit zero while cargo is still on the road, so completion
// waits for the last job to land.
func (o *DeliveryOrder) refreshStatus() {
	switch {
	case o.remaining == 0 && len(o.jobIDs) == 0:
		o.status = OrderStatusCompleted
	case len(o.jobIDs) > 0:
		o.status = OrderStatusInTransport
	default:
		o.status = OrderStatusOpen
	}
}

// setID validates and sets the order's unique identifier.
func (o *DeliveryOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setResource canonicalizes and sets the resource identifier.
func (o *DeliveryOrder) setResource(raw string) error {
	res := resource.Canonical(raw)
	if res.IsZero() {
		return errs.NewValueIsRequiredError("resource")
	}
	o.resource = res
	return nil
}

// setTotal validates and sets the requested quantity. Must be positive.
func (o *DeliveryOrder) setTotal(total int) error {
	if total <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("total is invalid", fmt.Errorf("%d is not greater than 0", total))
	}
	o.total = total
	return nil
}

// setPrice validates and sets the price per unit. Must not be negative.
func (o *DeliveryOrder) setPrice(price float64) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price is invalid", fmt.Errorf("%g is less than 0", price))
	}
	o.price = price
	return nil
}
