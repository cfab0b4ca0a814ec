// Package roadrepo persists the road network snapshot as rows of occupied
// cell coordinates. The network's derived structures (quadtree, graph
// version) are rebuilt from this list on restore and never stored.
package roadrepo

import (
	"logistics/internal/core/domain/model/kernel"
)

// RoadCellDTO represents one occupied grid cell.
type RoadCellDTO struct {
	X int `gorm:"primaryKey"`
	Y int `gorm:"primaryKey"`
}

// TableName specifies the database table name for road cells.
func (RoadCellDTO) TableName() string {
	return "road_cells"
}

// fromDomain converts a grid cell to its database representation.
func fromDomain(c kernel.Cell) RoadCellDTO {
	return RoadCellDTO{X: c.X, Y: c.Y}
}

// toDomain converts a database row back to a grid cell.
func toDomain(dto RoadCellDTO) kernel.Cell {
	return kernel.NewCell(dto.X, dto.Y)
}
