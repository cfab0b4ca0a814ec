package roadnet

import (
	"logistics/internal/core/domain/model/kernel"
)

// MinDimension is the smallest permitted grid side; construction clamps
// anything below it.
const MinDimension = 1

// Observer receives synchronous road-topology notifications. Handlers run
// inside the mutating call, in subscription order, and must not mutate the
// network re-entrantly.
type Observer interface {
	// RoadAdded fires after a cell became passable.
	RoadAdded(cell kernel.Cell)
	// RoadRemoved fires after a cell stopped being passable.
	RoadRemoved(cell kernel.Cell)
	// NetworkReset fires after a wholesale Rebuild or Clear; cells is the
	// complete new road set.
	NetworkReset(cells []kernel.Cell)
}

type subscription struct {
	id       int
	observer Observer
}

// Network is the fixed-size occupancy grid of road cells. Coordinates
// outside [0,width)×[0,height) are never passable. Every successful
// topology mutation increments the graph version exactly once and notifies
// observers before returning.
type Network struct {
	width, height int
	passable      []bool
	roadCount     int
	version       uint64

	subscriptions []subscription
	nextSubID     int
}

// NewNetwork creates an empty road grid. Dimensions below MinDimension are
// clamped to it.
func NewNetwork(width, height int) *Network {
	if width < MinDimension {
		width = MinDimension
	}
	if height < MinDimension {
		height = MinDimension
	}
	return &Network{
		width:    width,
		height:   height,
		passable: make([]bool, width*height),
	}
}

// Width returns the grid width in cells.
func (n *Network) Width() int {
	return n.width
}

// Height returns the grid height in cells.
func (n *Network) Height() int {
	return n.height
}

// InBounds reports whether the cell lies inside the grid.
func (n *Network) InBounds(c kernel.Cell) bool {
	return c.X >= 0 && c.X < n.width && c.Y >= 0 && c.Y < n.height
}

// IsRoad reports whether the cell is currently passable. Out-of-bounds
// cells are never roads.
func (n *Network) IsRoad(c kernel.Cell) bool {
	if !n.InBounds(c) {
		return false
	}
	return n.passable[c.Y*n.width+c.X]
}

// RoadCount returns the number of passable cells.
func (n *Network) RoadCount() int {
	return n.roadCount
}

// Version returns the graph version counter. It increments exactly once per
// topology-changing event, letting path and cost caches detect staleness
// without re-deriving the network.
func (n *Network) Version() uint64 {
	return n.version
}

// AddRoad marks the cell passable. Returns false without any side effect if
// the cell is out of bounds or already a road.
func (n *Network) AddRoad(c kernel.Cell) bool {
	if !n.InBounds(c) || n.passable[c.Y*n.width+c.X] {
		return false
	}

	n.passable[c.Y*n.width+c.X] = true
	n.roadCount++
	n.version++

	for _, sub := range n.subscriptions {
		sub.observer.RoadAdded(c)
	}
	return true
}

// RemoveRoad marks the cell impassable. Returns false without any side
// effect if the cell is out of bounds or not currently a road.
func (n *Network) RemoveRoad(c kernel.Cell) bool {
	if !n.InBounds(c) || !n.passable[c.Y*n.width+c.X] {
		return false
	}

	n.passable[c.Y*n.width+c.X] = false
	n.roadCount--
	n.version++

	for _, sub := range n.subscriptions {
		sub.observer.RoadRemoved(c)
	}
	return true
}

// Cells returns a snapshot of all road cells in row-major order. Used by the
// save service and by observers rebuilding their auxiliary structures.
func (n *Network) Cells() []kernel.Cell {
	cells := make([]kernel.Cell, 0, n.roadCount)
	for y := 0; y < n.height; y++ {
		for x := 0; x < n.width; x++ {
			if n.passable[y*n.width+x] {
				cells = append(cells, kernel.Cell{X: x, Y: y})
			}
		}
	}
	return cells
}

// Rebuild replaces the entire road set in one step, e.g. when restoring a
// save. Out-of-bounds and duplicate cells are dropped. The version bumps
// once and observers receive a single NetworkReset instead of per-cell
// events.
func (n *Network) Rebuild(cells []kernel.Cell) {
	for i := range n.passable {
		n.passable[i] = false
	}
	n.roadCount = 0
	for _, c := range cells {
		if n.InBounds(c) && !n.passable[c.Y*n.width+c.X] {
			n.passable[c.Y*n.width+c.X] = true
			n.roadCount++
		}
	}
	n.version++

	snapshot := n.Cells()
	for _, sub := range n.subscriptions {
		sub.observer.NetworkReset(snapshot)
	}
}

// Clear removes every road, e.g. when starting a new game.
func (n *Network) Clear() {
	n.Rebuild(nil)
}

// Subscribe registers an observer and returns its unsubscribe function.
// Delivery is synchronous and in subscription order; there are no weak or
// garbage-collected listeners, teardown is always explicit.
func (n *Network) Subscribe(o Observer) func() {
	n.nextSubID++
	id := n.nextSubID
	n.subscriptions = append(n.subscriptions, subscription{id: id, observer: o})

	return func() {
		for i, sub := range n.subscriptions {
			if sub.id == id {
				n.subscriptions = append(n.subscriptions[:i], n.subscriptions[i+1:]...)
				return
			}
		}
	}
}
