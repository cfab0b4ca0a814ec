package supply

import (
	"fmt"
	"math"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/resource"
)

// Supplier is one resource-holding entity in the supply catalog: how much of
// a single resource it exposes, how much of that is already reserved by
// planned trips, and where it sits in the world. The owning entity is
// addressed by an opaque node handle, never by a live reference.
//
// reserved ≤ available is a soft target: reservation requests are clamped to
// the free capacity at reservation time rather than rejected.
type Supplier struct {
	id       string
	resource resource.ID
	node     kernel.NodeRef
	position kernel.Point

	available float64
	reserved  float64
}

// SupplierID derives the catalog identity of a supplier from its owning node
// and resource. One entity offering two resources yields two suppliers.
func SupplierID(node kernel.NodeRef, res resource.ID) string {
	return fmt.Sprintf("%d/%s", int64(node), res)
}

// NewSupplier creates a catalog entry with zero reservations.
func NewSupplier(node kernel.NodeRef, res resource.ID, available float64, position kernel.Point) *Supplier {
	if available < 0 {
		available = 0
	}
	return &Supplier{
		id:        SupplierID(node, res),
		resource:  res,
		node:      node,
		position:  position,
		available: available,
	}
}

// ID returns the catalog identity.
func (s *Supplier) ID() string {
	return s.id
}

// Resource returns the resource this supplier offers.
func (s *Supplier) Resource() resource.ID {
	return s.resource
}

// Node returns the opaque handle of the owning entity.
func (s *Supplier) Node() kernel.NodeRef {
	return s.node
}

// Position returns the supplier's world position.
func (s *Supplier) Position() kernel.Point {
	return s.position
}

// Available returns the total quantity the supplier exposes.
func (s *Supplier) Available() float64 {
	return s.available
}

// Reserved returns the quantity claimed by planned trips.
func (s *Supplier) Reserved() float64 {
	return s.reserved
}

// Free returns max(0, available − reserved), the quantity still open for
// allocation.
func (s *Supplier) Free() float64 {
	return math.Max(0, s.available-s.reserved)
}

// Reserve claims min(free, amount) and returns the amount actually
// reserved, which may be zero. Negative requests reserve nothing.
func (s *Supplier) Reserve(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	actual := math.Min(s.Free(), amount)
	s.reserved += actual
	return actual
}

// SetReservation overwrites the reserved quantity with an absolute value,
// used when restoring persisted state. Negative values clamp to zero.
func (s *Supplier) SetReservation(absolute float64) {
	if absolute < 0 {
		absolute = 0
	}
	s.reserved = absolute
}
