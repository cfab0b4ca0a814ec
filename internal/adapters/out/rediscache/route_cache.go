// Package rediscache provides a Redis-backed implementation of the route
// cache. Computed polylines are shared between planner instances and survive
// process restarts; the road graph version baked into every key makes stale
// entries unreachable after a topology change without explicit eviction.
package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"logistics/internal/core/domain/model/kernel"
)

// DefaultTTL bounds how long a cached polyline lives. Version-keyed entries
// never serve stale data, so the TTL only caps memory held by keys from old
// graph versions.
const DefaultTTL = 10 * time.Minute

// RouteCache implements services.RouteCache on a Redis client. All methods
// are best effort: storage errors degrade to recomputation, never to a
// planning failure.
type RouteCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRouteCache creates a cache over the given client. A non-positive ttl
// falls back to DefaultTTL.
func NewRouteCache(client *redis.Client, ttl time.Duration) *RouteCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RouteCache{client: client, ttl: ttl}
}

// Get returns the cached polyline for the endpoints under the given graph
// version, or ok=false on a miss or storage error.
func (c *RouteCache) Get(ctx context.Context, version uint64, from, to kernel.Cell) ([]kernel.Point, bool) {
	raw, err := c.client.Get(ctx, routeKey(version, from, to)).Bytes()
	if err != nil {
		return nil, false
	}

	var path []kernel.Point
	if err := json.Unmarshal(raw, &path); err != nil {
		return nil, false
	}

	return path, true
}

// Put stores a computed polyline. Empty paths are stored too, so
// known-unreachable pairs are not recomputed every tick.
func (c *RouteCache) Put(ctx context.Context, version uint64, from, to kernel.Cell, path []kernel.Point) {
	raw, err := json.Marshal(path)
	if err != nil {
		return
	}

	c.client.Set(ctx, routeKey(version, from, to), raw, c.ttl)
}

// routeKey builds the cache key for one endpoint pair under one graph
// version.
func routeKey(version uint64, from, to kernel.Cell) string {
	return fmt.Sprintf("route:v%d:%d,%d:%d,%d", version, from.X, from.Y, to.X, to.Y)
}
