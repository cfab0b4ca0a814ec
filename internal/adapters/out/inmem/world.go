// Package inmem holds the in-process world adapters. The logistics core
// reads the world through narrow ports; in the standalone service these
// in-memory implementations back them, and an embedding simulation can
// substitute its own.
package inmem

import (
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/resource"
	"logistics/internal/core/ports"
)

// Inventory is the stock of one world entity, keyed by canonical resource
// id. Raw identifiers with legacy aliases are canonicalized on every call.
type Inventory struct {
	node  kernel.NodeRef
	pos   kernel.Point
	stock map[string]float64
}

// NewInventory creates an empty inventory for the entity at the given
// node and position.
func NewInventory(node kernel.NodeRef, pos kernel.Point) *Inventory {
	return &Inventory{
		node:  node,
		pos:   pos,
		stock: make(map[string]float64),
	}
}

// Node returns the stable handle of the owning entity.
func (i *Inventory) Node() kernel.NodeRef {
	return i.node
}

// Position returns the entity's position in world space.
func (i *Inventory) Position() kernel.Point {
	return i.pos
}

// Stock returns a snapshot of resource id to quantity.
func (i *Inventory) Stock() map[string]float64 {
	out := make(map[string]float64, len(i.stock))
	for res, qty := range i.stock {
		out[res] = qty
	}
	return out
}

// SetStock overwrites the quantity of one resource.
func (i *Inventory) SetStock(res string, quantity float64) {
	i.stock[string(resource.Canonical(res))] = quantity
}

// AddStock increases the quantity of one resource.
func (i *Inventory) AddStock(res string, quantity float64) {
	i.stock[string(resource.Canonical(res))] += quantity
}

// ConsumeStock decreases the quantity of one resource, reporting whether
// enough stock was present. On false nothing is consumed.
func (i *Inventory) ConsumeStock(res string, quantity float64) bool {
	key := string(resource.Canonical(res))
	if i.stock[key] < quantity {
		return false
	}
	i.stock[key] -= quantity
	return true
}

// World is the registry of inventory-carrying entities. It serves both the
// scanner port (supply index rebuilds) and the resolver port (planning and
// snapshot restore).
type World struct {
	inventories map[kernel.NodeRef]*Inventory
	order       []kernel.NodeRef
}

// NewWorld creates an empty world registry.
func NewWorld() *World {
	return &World{inventories: make(map[kernel.NodeRef]*Inventory)}
}

// Register adds an entity's inventory at the given node and position and
// returns it. Registering a node twice replaces the previous inventory but
// keeps its scan position.
func (w *World) Register(node kernel.NodeRef, pos kernel.Point) ports.InventoryProvider {
	inv := NewInventory(node, pos)
	if _, exists := w.inventories[node]; !exists {
		w.order = append(w.order, node)
	}
	w.inventories[node] = inv
	return inv
}

// Remove drops the entity at the given node from the registry.
func (w *World) Remove(node kernel.NodeRef) {
	if _, exists := w.inventories[node]; !exists {
		return
	}
	delete(w.inventories, node)
	for i, n := range w.order {
		if n == node {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// Resolve returns the inventory for a node handle, or ok=false when no
// live entity carries it.
func (w *World) Resolve(node kernel.NodeRef) (ports.InventoryProvider, bool) {
	inv, ok := w.inventories[node]
	if !ok {
		return nil, false
	}
	return inv, true
}

// Inventories enumerates every registered inventory in registration order.
func (w *World) Inventories() []ports.InventoryProvider {
	out := make([]ports.InventoryProvider, 0, len(w.order))
	for _, node := range w.order {
		out = append(out, w.inventories[node])
	}
	return out
}
