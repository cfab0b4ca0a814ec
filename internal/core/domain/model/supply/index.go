// Package supply maintains the per-resource catalog of producers with
// available/reserved quantity tracking. The index is rebuilt wholesale from
// inventory snapshots and mutated only through its reservation methods,
// which keeps allocations from over-committing the same stock across
// planning requests within one tick.
package supply

import (
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/resource"
)

// SupplierRecord is one row of an inventory snapshot used to rebuild the
// index. Resource identifiers are canonicalized on ingestion.
type SupplierRecord struct {
	Node     kernel.NodeRef
	Resource string
	Quantity float64
	Position kernel.Point
}

// Index is the supply-side catalog: suppliers grouped per resource in
// registration order. Reservations reset to zero on every rebuild.
type Index struct {
	byResource map[resource.ID][]*Supplier
	byID       map[string]*Supplier
}

// NewIndex creates an empty supply catalog.
func NewIndex() *Index {
	return &Index{
		byResource: make(map[resource.ID][]*Supplier),
		byID:       make(map[string]*Supplier),
	}
}

// Rebuild wholesale-replaces the catalog from a snapshot. Records with an
// empty resource or nil node are dropped; duplicate node+resource pairs
// merge by accumulating quantity.
func (i *Index) Rebuild(records []SupplierRecord) {
	i.byResource = make(map[resource.ID][]*Supplier)
	i.byID = make(map[string]*Supplier)

	for _, rec := range records {
		res := resource.Canonical(rec.Resource)
		if res.IsZero() || rec.Node.IsNil() {
			continue
		}

		id := SupplierID(rec.Node, res)
		if existing, ok := i.byID[id]; ok {
			existing.available += rec.Quantity
			continue
		}

		s := NewSupplier(rec.Node, res, rec.Quantity, rec.Position)
		i.byID[id] = s
		i.byResource[res] = append(i.byResource[res], s)
	}
}

// Suppliers returns the suppliers registered for a resource, in registration
// order. The result is a copy and never nil; callers may reorder it freely
// (e.g. nearest-first) before planning.
func (i *Index) Suppliers(res resource.ID) []*Supplier {
	registered := i.byResource[res]
	out := make([]*Supplier, len(registered))
	copy(out, registered)
	return out
}

// Get looks a supplier up by its catalog identity.
func (i *Index) Get(res resource.ID, supplierID string) (*Supplier, bool) {
	s, ok := i.byID[supplierID]
	if !ok || s.Resource() != res {
		return nil, false
	}
	return s, true
}

// Reserve claims up to amount against the named supplier and returns the
// quantity actually reserved, zero when the supplier is unknown or
// exhausted.
func (i *Index) Reserve(res resource.ID, supplierID string, amount float64) float64 {
	s, ok := i.Get(res, supplierID)
	if !ok {
		return 0
	}
	return s.Reserve(amount)
}

// SetReservation overwrites a supplier's reserved quantity with an absolute
// value, used when restoring persisted state. Unknown suppliers are ignored.
func (i *Index) SetReservation(res resource.ID, supplierID string, absolute float64) {
	if s, ok := i.Get(res, supplierID); ok {
		s.SetReservation(absolute)
	}
}
