package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
)

// RoadRepository persists the road network snapshot as the list of
// occupied cell coordinates. Topology is rebuilt from this list on
// restore; the derived structures (quadtree, graph version) are not
// persisted.
type RoadRepository interface {
	// ReplaceAll overwrites the persisted snapshot with the given cells.
	ReplaceAll(ctx context.Context, cells []kernel.Cell) error

	// GetAll retrieves the persisted road cells.
	GetAll(ctx context.Context) ([]kernel.Cell, error)
}
