package services_test

import (
	"context"
	"fmt"
	"testing"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/roadnet"
	"logistics/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryCache is a map-backed RouteCache recording hits and misses.
type memoryCache struct {
	entries map[string][]kernel.Point
	gets    int
	puts    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]kernel.Point)}
}

func (c *memoryCache) key(version uint64, from, to kernel.Cell) string {
	return fmt.Sprintf("%d:%s:%s", version, from, to)
}

func (c *memoryCache) Get(_ context.Context, version uint64, from, to kernel.Cell) ([]kernel.Point, bool) {
	c.gets++
	path, ok := c.entries[c.key(version, from, to)]
	return path, ok
}

func (c *memoryCache) Put(_ context.Context, version uint64, from, to kernel.Cell, path []kernel.Point) {
	c.puts++
	c.entries[c.key(version, from, to)] = path
}

func newRoutedWorld(t *testing.T, cache services.RouteCache) (*roadnet.Network, *services.Router) {
	t.Helper()
	net := roadnet.NewNetwork(10, 10)
	for x := 0; x < 10; x++ {
		require.True(t, net.AddRoad(kernel.NewCell(x, 0)))
	}

	pf := roadnet.NewPathfinder(net, roadnet.PathfinderConfig{TileSize: 1})
	t.Cleanup(pf.Close)

	return net, services.NewRouter(net, pf, cache)
}

func TestRouter_Path(t *testing.T) {
	ctx := context.Background()

	t.Run("should delegate to the pathfinder", func(t *testing.T) {
		_, router := newRoutedWorld(t, nil)

		path := router.Path(ctx, kernel.NewPoint(0, 0), kernel.NewPoint(9, 0))

		require.NotEmpty(t, path)
		assert.InDelta(t, 0.5, path[0].X, 1e-9)
		assert.InDelta(t, 9.5, path[len(path)-1].X, 1e-9)
	})

	t.Run("should serve repeated queries from the cache", func(t *testing.T) {
		cache := newMemoryCache()
		_, router := newRoutedWorld(t, cache)

		first := router.Path(ctx, kernel.NewPoint(0, 0), kernel.NewPoint(9, 0))
		second := router.Path(ctx, kernel.NewPoint(0, 0), kernel.NewPoint(9, 0))

		assert.Equal(t, first, second)
		assert.Equal(t, 1, cache.puts, "second query must not recompute")
	})

	t.Run("a topology change invalidates cached routes", func(t *testing.T) {
		cache := newMemoryCache()
		net, router := newRoutedWorld(t, cache)

		before := router.Version()
		router.Path(ctx, kernel.NewPoint(0, 0), kernel.NewPoint(9, 0))
		require.True(t, net.AddRoad(kernel.NewCell(0, 1)))

		assert.Equal(t, before+1, router.Version())
		router.Path(ctx, kernel.NewPoint(0, 0), kernel.NewPoint(9, 0))
		assert.Equal(t, 2, cache.puts, "new version misses the old entry")
	})
}

func TestRouter_Cost(t *testing.T) {
	ctx := context.Background()

	t.Run("should charge per tile unit along the road path", func(t *testing.T) {
		_, router := newRoutedWorld(t, nil)

		// (0.5,0.5) to (9.5,0.5) along y=0 is 9 world units on tile size 1.
		cost := router.Cost(ctx, kernel.NewPoint(0, 0), kernel.NewPoint(9, 0), 2, 3, 10)

		assert.InDelta(t, 9*2*3+10, cost, 1e-9)
	})

	t.Run("should fall back to straight-line distance without a route", func(t *testing.T) {
		net := roadnet.NewNetwork(10, 10)
		pf := roadnet.NewPathfinder(net, roadnet.PathfinderConfig{TileSize: 1})
		t.Cleanup(pf.Close)
		router := services.NewRouter(net, pf, nil)

		cost := router.Cost(ctx, kernel.NewPoint(0, 0), kernel.NewPoint(3, 4), 2, 1, 0)

		assert.InDelta(t, 7*2, cost, 1e-9)
	})

	t.Run("cost grows monotonically with distance even unrouted", func(t *testing.T) {
		net := roadnet.NewNetwork(10, 10)
		pf := roadnet.NewPathfinder(net, roadnet.PathfinderConfig{TileSize: 1})
		t.Cleanup(pf.Close)
		router := services.NewRouter(net, pf, nil)

		near := router.Cost(ctx, kernel.NewPoint(0, 0), kernel.NewPoint(2, 0), 1, 1, 0)
		far := router.Cost(ctx, kernel.NewPoint(0, 0), kernel.NewPoint(8, 0), 1, 1, 0)

		assert.Less(t, near, far)
	})
}
