package ports

import (
	"logistics/internal/core/domain/model/kernel"
)

// InventoryProvider exposes the stock of one world entity. Resource
// identifiers passed in are raw and may use legacy aliases; implementations
// canonicalize them before touching storage.
type InventoryProvider interface {
	// Node returns the stable handle of the owning entity.
	Node() kernel.NodeRef

	// Position returns the entity's position in world space.
	Position() kernel.Point

	// Stock returns a snapshot of resource id to quantity.
	Stock() map[string]float64

	// SetStock overwrites the quantity of one resource.
	SetStock(res string, quantity float64)

	// AddStock increases the quantity of one resource.
	AddStock(res string, quantity float64)

	// ConsumeStock decreases the quantity of one resource, reporting
	// whether enough stock was present. On false nothing is consumed.
	ConsumeStock(res string, quantity float64) bool
}

// InventoryScanner enumerates every inventory-carrying entity in the world.
// The supply index rebuilds its catalog by scanning these.
type InventoryScanner interface {
	Inventories() []InventoryProvider
}

// InventoryRegistry adds and removes inventory-carrying entities at
// runtime. The standalone service exposes this over HTTP; an embedding
// simulation registers its entities directly.
type InventoryRegistry interface {
	// Register adds an entity at the given node and position and returns
	// its inventory. Registering a node twice replaces its inventory.
	Register(node kernel.NodeRef, pos kernel.Point) InventoryProvider

	// Remove drops the entity carrying the node handle.
	Remove(node kernel.NodeRef)
}

// EntityResolver maps a stable node handle back to a live entity. Needed
// at restore time, since snapshots persist handles rather than entities,
// and whenever planning must check that an endpoint still exists.
type EntityResolver interface {
	// Resolve returns the inventory provider for a node handle, or
	// ok=false when no live entity carries it.
	Resolve(node kernel.NodeRef) (InventoryProvider, bool)
}

// EconomyQuery is the narrow read/charge surface of the economy ledger.
// Allocation itself is economy-agnostic; callers of the planning service
// consult this before committing to a plan.
type EconomyQuery interface {
	// CanAfford reports whether the balance covers the given amount.
	CanAfford(amount float64) bool

	// Debit withdraws the amount from the balance.
	Debit(amount float64) error
}
