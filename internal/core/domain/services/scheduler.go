package services

import (
	"math"
	"sort"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/resource"
	"logistics/internal/core/domain/model/supply"
)

// Allotment is one slice of a planned delivery: a supplier and the number
// of units to pick up from it in a single trip.
type Allotment struct {
	Supplier *supply.Supplier
	Amount   int
}

// Scheduler is a domain service that splits a demand amount across candidate
// suppliers, respecting a per-trip capacity cap.
//
// Key responsibilities:
//   - Iterating suppliers in the order the caller provides
//   - Reserving supplier capacity as it allocates, so the same stock is
//     never promised twice within one planning pass
//   - Under-delivering silently when total free capacity falls short;
//     detecting and handling partial allocation is the caller's job
//
// Business rules:
//   - Each allotment carries at most maxPerTrip units
//   - A supplier with more free stock than one trip can carry yields
//     multiple consecutive allotments
//   - Suppliers with no free capacity are skipped
//   - The scheduler never reorders suppliers; callers sort upstream
//     (see SortSuppliersByDistance)
//
// Example usage:
//
//	scheduler := NewScheduler()
//	suppliers := index.Suppliers("wood")
//	SortSuppliersByDistance(suppliers, destination)
//	plan := scheduler.Plan("wood", suppliers, 15, 4)
//	// plan holds (supplier, amount) pairs summing to at most 15
type Scheduler struct{}

// NewScheduler creates a new Scheduler instance.
func NewScheduler() Scheduler {
	return Scheduler{}
}

// Plan splits totalAmount across the given suppliers.
//
// Parameters:
//   - res: Canonical resource being planned (informational; suppliers are
//     assumed to already be filtered to this resource)
//   - suppliers: Candidates in allocation order (caller-determined)
//   - totalAmount: Units of demand to cover (non-positive yields no plan)
//   - maxPerTrip: Per-trip capacity cap, clamped to at least 1
//
// Returns the allotments in allocation order. The sum of their amounts is
// min(totalAmount, total free capacity); the caller detects under-delivery
// by comparing the sum against the request.
//
// Each allotment immediately reserves its amount on the supplier, so free
// capacity seen by later iterations and later Plan calls already excludes
// earlier promises.
func (s Scheduler) Plan(res resource.ID, suppliers []*supply.Supplier, totalAmount, maxPerTrip int) []Allotment {
	if totalAmount <= 0 || len(suppliers) == 0 {
		return nil
	}
	if maxPerTrip < 1 {
		maxPerTrip = 1
	}

	var plan []Allotment
	remaining := totalAmount

	for _, supplier := range suppliers {
		if remaining == 0 {
			break
		}

		for remaining > 0 {
			free := int(math.Floor(supplier.Free()))
			if free == 0 {
				break
			}

			amount := maxPerTrip
			if free < amount {
				amount = free
			}
			if remaining < amount {
				amount = remaining
			}

			supplier.Reserve(float64(amount))
			plan = append(plan, Allotment{Supplier: supplier, Amount: amount})
			remaining -= amount
		}
	}

	return plan
}

// SortSuppliersByDistance orders suppliers nearest-first by Manhattan
// distance from the given point. The sort is stable, so equidistant
// suppliers keep their registration order. This is the default upstream
// policy for Plan's caller-determined supplier ordering.
func SortSuppliersByDistance(suppliers []*supply.Supplier, from kernel.Point) {
	sort.SliceStable(suppliers, func(a, b int) bool {
		return suppliers[a].Position().ManhattanDistance(from) < suppliers[b].Position().ManhattanDistance(from)
	})
}
