// Package roadnet maintains the road topology of the simulation grid and
// answers proximity and path queries over it.
//
// Network owns the passable-cell occupancy grid, the monotonically increasing
// graph version, and an explicit observer list with synchronous delivery:
// every successful mutation notifies subscribers before the mutating call
// returns, so auxiliary structures are never stale when the next query runs.
//
// Pathfinder subscribes to a Network and keeps a quadtree spatial index of
// road cells as its auxiliary structure. It answers nearest-road queries
// (quadtree preferred, breadth-first wavefront as guaranteed fallback) and
// world-space path queries (4-directional uniform-cost shortest path,
// simplified to direction-change waypoints). Closing a Pathfinder
// unsubscribes it from the network.
//
// All query methods report "not found" through their return values; nothing
// in this package panics on unreachable input.
package roadnet
