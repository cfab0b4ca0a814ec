package services

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/roadnet"
)

// RouteCache stores computed polylines keyed by the road graph version and
// the endpoint cells. Entries written under an older version are never
// returned for a newer one, so topology changes invalidate the whole cache
// without explicit eviction. Implementations are best effort: a miss or a
// storage error simply forces a recomputation.
type RouteCache interface {
	// Get returns the cached polyline for the endpoints under the given
	// graph version, or ok=false on a miss.
	Get(ctx context.Context, version uint64, from, to kernel.Cell) (path []kernel.Point, ok bool)

	// Put stores a computed polyline. An empty path may be stored too, so
	// known-unreachable pairs are not recomputed every tick.
	Put(ctx context.Context, version uint64, from, to kernel.Cell, path []kernel.Point)
}

// Router is a domain service wrapping the road network's pathfinder with
// cost computation and topology-change awareness. Planning code asks it for
// a path and a monetary transport cost per allotment; caching consumers use
// the graph version to detect staleness cheaply.
type Router struct {
	net        *roadnet.Network
	pathfinder *roadnet.Pathfinder
	cache      RouteCache
	tileSize   float64
}

// NewRouter creates a router over the given network and pathfinder. The
// cache may be nil, in which case every path is computed fresh. The tile
// size for cost and cache-key conversions comes from the pathfinder.
func NewRouter(net *roadnet.Network, pathfinder *roadnet.Pathfinder, cache RouteCache) *Router {
	return &Router{
		net:        net,
		pathfinder: pathfinder,
		cache:      cache,
		tileSize:   pathfinder.TileSize(),
	}
}

// Version returns the current road graph version. It increments exactly
// once per topology-changing event.
func (r *Router) Version() uint64 {
	return r.net.Version()
}

// Path returns the road polyline between two world points, or an empty
// polyline when no route exists. Results are served from the cache when it
// holds an entry for the current graph version.
func (r *Router) Path(ctx context.Context, start, end kernel.Point) []kernel.Point {
	version := r.net.Version()
	fromCell := start.CellAt(r.tileSize)
	toCell := end.CellAt(r.tileSize)

	if r.cache != nil {
		if path, ok := r.cache.Get(ctx, version, fromCell, toCell); ok {
			return path
		}
	}

	path := r.pathfinder.Path(start, end)
	if r.cache != nil {
		r.cache.Put(ctx, version, fromCell, toCell, path)
	}
	return path
}

// Cost computes the monetary transport cost for moving the given units
// between two world points:
//
//	cost = (distance / tileSize) * baseCostPerTileUnit * units + fixedCost
//
// The distance is the length of the actual road path when one exists.
// Without a route it falls back to the straight-line Manhattan distance,
// the same metric the road grid uses, so estimates stay monotonic with
// distance even between unconnected points.
func (r *Router) Cost(ctx context.Context, start, end kernel.Point, baseCostPerTileUnit float64, units int, fixedCost float64) float64 {
	distance := pathLength(r.Path(ctx, start, end))
	if distance == 0 {
		distance = start.ManhattanDistance(end)
	}

	return (distance/r.tileSize)*baseCostPerTileUnit*float64(units) + fixedCost
}

// pathLength sums the segment lengths of a polyline. Simplified road paths
// are axis aligned, so the Manhattan length of each segment equals its
// true length.
func pathLength(path []kernel.Point) float64 {
	var total float64
	for i := 1; i < len(path); i++ {
		total += path[i-1].ManhattanDistance(path[i])
	}
	return total
}
