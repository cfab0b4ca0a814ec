package roadnet

import (
	"logistics/internal/core/domain/model/kernel"
)

// DefaultSearchRadius bounds how far a nearest-road query walks away from
// the requested cell before giving up.
const DefaultSearchRadius = 64

// PathfinderConfig tunes a Pathfinder. Zero or negative values fall back to
// the defaults; everything is clamped to at least 1.
type PathfinderConfig struct {
	// TileSize converts world coordinates into grid cells.
	TileSize float64
	// SearchRadius bounds nearest-road queries in cells.
	SearchRadius int
	// UseSpatialIndex enables the quadtree strategy for nearest-road
	// queries. The BFS wavefront remains as guaranteed fallback.
	UseSpatialIndex bool
	// IndexCapacity is the quadtree leaf capacity before subdivision.
	IndexCapacity int
	// IndexMaxDepth bounds quadtree subdivision.
	IndexMaxDepth int
}

func (c PathfinderConfig) withDefaults() PathfinderConfig {
	if c.TileSize < 1 {
		c.TileSize = 1
	}
	if c.SearchRadius < 1 {
		c.SearchRadius = DefaultSearchRadius
	}
	if c.IndexCapacity < 1 {
		c.IndexCapacity = DefaultIndexCapacity
	}
	if c.IndexMaxDepth < 1 {
		c.IndexMaxDepth = DefaultIndexMaxDepth
	}
	return c
}

// Pathfinder answers nearest-road and shortest-path queries over a Network.
// It subscribes to the network's topology events and keeps its quadtree in
// sync synchronously, so a query issued right after a mutation already sees
// the change. Call Close to unsubscribe when discarding the pathfinder.
type Pathfinder struct {
	net         *Network
	cfg         PathfinderConfig
	index       *quadTree
	unsubscribe func()
}

// NewPathfinder creates a pathfinder over net, seeding the spatial index
// from the network's current road set.
func NewPathfinder(net *Network, cfg PathfinderConfig) *Pathfinder {
	cfg = cfg.withDefaults()
	p := &Pathfinder{net: net, cfg: cfg}

	if cfg.UseSpatialIndex {
		p.index = newQuadTree(net.Width(), net.Height(), cfg.IndexCapacity, cfg.IndexMaxDepth)
		for _, c := range net.Cells() {
			p.index.insert(c)
		}
	}
	p.unsubscribe = net.Subscribe(p)
	return p
}

// Close unsubscribes the pathfinder from road-topology events. The
// pathfinder must not be used afterwards.
func (p *Pathfinder) Close() {
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
}

// RoadAdded implements Observer.
func (p *Pathfinder) RoadAdded(cell kernel.Cell) {
	if p.index != nil {
		p.index.insert(cell)
	}
}

// RoadRemoved implements Observer.
func (p *Pathfinder) RoadRemoved(cell kernel.Cell) {
	if p.index != nil {
		p.index.remove(cell)
	}
}

// NetworkReset implements Observer.
func (p *Pathfinder) NetworkReset(cells []kernel.Cell) {
	if p.index != nil {
		p.index.clear()
		for _, c := range cells {
			p.index.insert(c)
		}
	}
}

// TileSize returns the configured world-to-grid conversion factor.
func (p *Pathfinder) TileSize() float64 {
	return p.cfg.TileSize
}

// SearchRadius returns the configured nearest-road search bound.
func (p *Pathfinder) SearchRadius() int {
	return p.cfg.SearchRadius
}

// FindNearestRoad returns the road cell closest to from under Manhattan
// distance within maxRadius, or false when none exists. The quadtree is
// consulted first when enabled; the BFS wavefront covers the rest. Both
// strategies are distance-optimal; on ties they may return different cells
// of the same distance.
func (p *Pathfinder) FindNearestRoad(from kernel.Cell, maxRadius int) (kernel.Cell, bool) {
	if maxRadius < 1 {
		maxRadius = 1
	}
	from = p.clampToGrid(from)

	if p.index != nil {
		if c, ok := p.index.nearest(from, maxRadius); ok {
			return c, true
		}
	}
	return p.nearestRoadBFS(from, maxRadius)
}

// nearestRoadBFS expands a 4-connected wavefront from the start cell up to
// maxRadius hops and returns the first road cell discovered. Ties resolve by
// enqueue order within the same radius ring.
func (p *Pathfinder) nearestRoadBFS(from kernel.Cell, maxRadius int) (kernel.Cell, bool) {
	if p.net.IsRoad(from) {
		return from, true
	}

	width, height := p.net.Width(), p.net.Height()
	visited := make([]bool, width*height)
	visited[from.Y*width+from.X] = true

	type frontier struct {
		cell kernel.Cell
		dist int
	}
	queue := []frontier{{cell: from, dist: 0}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current.dist >= maxRadius {
			continue
		}
		for _, next := range current.cell.Neighbors() {
			if !p.net.InBounds(next) || visited[next.Y*width+next.X] {
				continue
			}
			visited[next.Y*width+next.X] = true
			if p.net.IsRoad(next) {
				return next, true
			}
			queue = append(queue, frontier{cell: next, dist: current.dist + 1})
		}
	}
	return kernel.Cell{}, false
}

// Path computes a world-space route between two points. It returns an empty
// polyline when the grid has no roads at all, when either endpoint has no
// reachable nearest road within the search radius, or when no route connects
// the two road cells. The result is a minimal sequence of direction-change
// waypoints expressed as cell centers.
func (p *Pathfinder) Path(from, to kernel.Point) []kernel.Point {
	if p.net.RoadCount() == 0 {
		return nil
	}

	start, ok := p.FindNearestRoad(from.CellAt(p.cfg.TileSize), p.cfg.SearchRadius)
	if !ok {
		return nil
	}
	goal, ok := p.FindNearestRoad(to.CellAt(p.cfg.TileSize), p.cfg.SearchRadius)
	if !ok {
		return nil
	}

	cells := p.shortestPath(start, goal)
	if cells == nil {
		return nil
	}

	waypoints := simplifyPath(cells)
	points := make([]kernel.Point, len(waypoints))
	for i, c := range waypoints {
		points[i] = kernel.CellCenter(c, p.cfg.TileSize)
	}
	return points
}

// shortestPath runs a uniform-cost 4-directional breadth-first search over
// passable cells. Returns nil when goal is unreachable from start.
func (p *Pathfinder) shortestPath(start, goal kernel.Cell) []kernel.Cell {
	if start == goal {
		return []kernel.Cell{start}
	}

	width, height := p.net.Width(), p.net.Height()
	parent := make([]int32, width*height)
	for i := range parent {
		parent[i] = -1
	}
	idx := func(c kernel.Cell) int32 { return int32(c.Y*width + c.X) }

	parent[idx(start)] = idx(start)
	queue := []kernel.Cell{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range current.Neighbors() {
			if !p.net.IsRoad(next) || parent[idx(next)] != -1 {
				continue
			}
			parent[idx(next)] = idx(current)
			if next == goal {
				return reconstructPath(parent, width, start, goal)
			}
			queue = append(queue, next)
		}
	}
	return nil
}

func reconstructPath(parent []int32, width int, start, goal kernel.Cell) []kernel.Cell {
	var reversed []kernel.Cell
	current := goal
	for current != start {
		reversed = append(reversed, current)
		pIdx := parent[current.Y*width+current.X]
		current = kernel.Cell{X: int(pIdx) % width, Y: int(pIdx) / width}
	}
	reversed = append(reversed, start)

	cells := make([]kernel.Cell, len(reversed))
	for i, c := range reversed {
		cells[len(reversed)-1-i] = c
	}
	return cells
}

// simplifyPath reduces a cell path to its direction-change waypoints,
// always keeping both endpoints.
func simplifyPath(cells []kernel.Cell) []kernel.Cell {
	if len(cells) <= 2 {
		return cells
	}
	simplified := []kernel.Cell{cells[0]}
	for i := 1; i < len(cells)-1; i++ {
		prev, current, next := cells[i-1], cells[i], cells[i+1]
		sameDirection := next.X-current.X == current.X-prev.X &&
			next.Y-current.Y == current.Y-prev.Y
		if !sameDirection {
			simplified = append(simplified, current)
		}
	}
	return append(simplified, cells[len(cells)-1])
}

// clampToGrid pulls an out-of-bounds query cell to the nearest grid cell so
// wavefront expansion always has a valid start.
func (p *Pathfinder) clampToGrid(c kernel.Cell) kernel.Cell {
	if c.X < 0 {
		c.X = 0
	}
	if c.X >= p.net.Width() {
		c.X = p.net.Width() - 1
	}
	if c.Y < 0 {
		c.Y = 0
	}
	if c.Y >= p.net.Height() {
		c.Y = p.net.Height() - 1
	}
	return c
}
