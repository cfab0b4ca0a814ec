package roadnet

import (
	"logistics/internal/core/domain/model/kernel"
)

// Defaults for the spatial index; construction clamps anything below 1.
const (
	DefaultIndexCapacity = 8
	DefaultIndexMaxDepth = 8
)

// rect is an integer cell rectangle [x, x+w) × [y, y+h).
type rect struct {
	x, y, w, h int
}

func (r rect) contains(c kernel.Cell) bool {
	return c.X >= r.x && c.X < r.x+r.w && c.Y >= r.y && c.Y < r.y+r.h
}

// manhattanDistanceTo returns the minimum Manhattan distance from c to any
// cell inside the rectangle; zero when c lies inside. Used to prune subtrees
// that cannot beat the current best candidate.
func (r rect) manhattanDistanceTo(c kernel.Cell) int {
	dx := 0
	switch {
	case c.X < r.x:
		dx = r.x - c.X
	case c.X >= r.x+r.w:
		dx = c.X - (r.x + r.w - 1)
	}
	dy := 0
	switch {
	case c.Y < r.y:
		dy = r.y - c.Y
	case c.Y >= r.y+r.h:
		dy = c.Y - (r.y + r.h - 1)
	}
	return dx + dy
}

// qtNode is one node of the quadtree. Leaves hold points; after subdivision
// all points live in the children, except in nodes too small to split, which
// act as capacity-overflow leaves.
type qtNode struct {
	bounds   rect
	depth    int
	points   []kernel.Cell
	children []*qtNode
}

// quadTree is a point index over road cells supporting insert, remove, and
// nearest-point queries under Manhattan distance. Every indexed cell lives
// in exactly one node.
type quadTree struct {
	root     *qtNode
	capacity int
	maxDepth int
	size     int
}

func newQuadTree(width, height, capacity, maxDepth int) *quadTree {
	if capacity < 1 {
		capacity = 1
	}
	if maxDepth < 1 {
		maxDepth = 1
	}
	return &quadTree{
		root:     &qtNode{bounds: rect{x: 0, y: 0, w: width, h: height}},
		capacity: capacity,
		maxDepth: maxDepth,
	}
}

func (t *quadTree) len() int {
	return t.size
}

// insert adds a cell to the index. Cells outside the root bounds are
// ignored; duplicate filtering is the caller's responsibility.
func (t *quadTree) insert(c kernel.Cell) {
	if !t.root.bounds.contains(c) {
		return
	}
	t.insertAt(t.root, c)
	t.size++
}

func (t *quadTree) insertAt(n *qtNode, c kernel.Cell) {
	if n.children == nil {
		atCapacity := len(n.points) >= t.capacity
		canSplit := n.depth < t.maxDepth && n.bounds.w >= 2 && n.bounds.h >= 2
		if !atCapacity || !canSplit {
			n.points = append(n.points, c)
			return
		}
		t.subdivide(n)
	}
	for _, child := range n.children {
		if child.bounds.contains(c) {
			t.insertAt(child, c)
			return
		}
	}
}

func (t *quadTree) subdivide(n *qtNode) {
	halfW := n.bounds.w / 2
	halfH := n.bounds.h / 2
	b := n.bounds
	quadrants := []rect{
		{x: b.x, y: b.y, w: halfW, h: halfH},
		{x: b.x + halfW, y: b.y, w: b.w - halfW, h: halfH},
		{x: b.x, y: b.y + halfH, w: halfW, h: b.h - halfH},
		{x: b.x + halfW, y: b.y + halfH, w: b.w - halfW, h: b.h - halfH},
	}

	n.children = make([]*qtNode, 0, 4)
	for _, q := range quadrants {
		n.children = append(n.children, &qtNode{bounds: q, depth: n.depth + 1})
	}

	points := n.points
	n.points = nil
	for _, p := range points {
		for _, child := range n.children {
			if child.bounds.contains(p) {
				t.insertAt(child, p)
				break
			}
		}
	}
}

// remove deletes a cell from the index, returning whether it was present.
func (t *quadTree) remove(c kernel.Cell) bool {
	if t.removeAt(t.root, c) {
		t.size--
		return true
	}
	return false
}

func (t *quadTree) removeAt(n *qtNode, c kernel.Cell) bool {
	for i, p := range n.points {
		if p == c {
			n.points = append(n.points[:i], n.points[i+1:]...)
			return true
		}
	}
	for _, child := range n.children {
		if child.bounds.contains(c) {
			return t.removeAt(child, c)
		}
	}
	return false
}

// nearest returns the indexed cell closest to from under Manhattan distance,
// searching no further than maxRadius. Subtrees whose bounding rectangle
// already lies beyond the current best distance are pruned.
func (t *quadTree) nearest(from kernel.Cell, maxRadius int) (kernel.Cell, bool) {
	if maxRadius < 1 {
		maxRadius = 1
	}

	best := kernel.Cell{}
	bestDist := maxRadius + 1
	found := false

	var visit func(n *qtNode)
	visit = func(n *qtNode) {
		if n.bounds.manhattanDistanceTo(from) >= bestDist {
			return
		}
		for _, p := range n.points {
			if d := from.Distance(p); d < bestDist {
				best = p
				bestDist = d
				found = true
			}
		}
		for _, child := range n.children {
			visit(child)
		}
	}
	visit(t.root)

	if !found || bestDist > maxRadius {
		return kernel.Cell{}, false
	}
	return best, true
}

// clear drops every indexed point, keeping the configured bounds.
func (t *quadTree) clear() {
	t.root = &qtNode{bounds: t.root.bounds}
	t.size = 0
}
