package commands_test

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
)

// testTime is the fixed wall clock used across handler tests.
func testTime() time.Time {
	return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
}

// noExpiry marks an order that never expires.
func noExpiry() time.Time {
	return time.Time{}
}

// fakeInventory is a map-backed ports.InventoryProvider for handler tests.
type fakeInventory struct {
	node  kernel.NodeRef
	pos   kernel.Point
	stock map[string]float64
}

func newFakeInventory(node kernel.NodeRef, pos kernel.Point) *fakeInventory {
	return &fakeInventory{node: node, pos: pos, stock: make(map[string]float64)}
}

func (f *fakeInventory) Node() kernel.NodeRef   { return f.node }
func (f *fakeInventory) Position() kernel.Point { return f.pos }

func (f *fakeInventory) Stock() map[string]float64 {
	out := make(map[string]float64, len(f.stock))
	for res, quantity := range f.stock {
		out[res] = quantity
	}
	return out
}

func (f *fakeInventory) SetStock(res string, quantity float64) {
	f.stock[res] = quantity
}

func (f *fakeInventory) AddStock(res string, quantity float64) {
	f.stock[res] += quantity
}

func (f *fakeInventory) ConsumeStock(res string, quantity float64) bool {
	if f.stock[res] < quantity {
		return false
	}
	f.stock[res] -= quantity
	return true
}

// fakeWorld resolves node handles and enumerates inventories.
type fakeWorld struct {
	inventories map[kernel.NodeRef]*fakeInventory
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{inventories: make(map[kernel.NodeRef]*fakeInventory)}
}

func (w *fakeWorld) add(inv *fakeInventory) *fakeInventory {
	w.inventories[inv.node] = inv
	return inv
}

func (w *fakeWorld) Resolve(node kernel.NodeRef) (ports.InventoryProvider, bool) {
	inv, ok := w.inventories[node]
	return inv, ok
}

func (w *fakeWorld) Inventories() []ports.InventoryProvider {
	out := make([]ports.InventoryProvider, 0, len(w.inventories))
	for _, inv := range w.inventories {
		out = append(out, inv)
	}
	return out
}
