package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var (
	ErrAddRoadCommandIsNotConstructed = errors.New(
		"AddRoadCommand must be created via NewAddRoadCommand constructor",
	)
	ErrRemoveRoadCommandIsNotConstructed = errors.New(
		"RemoveRoadCommand must be created via NewRemoveRoadCommand constructor",
	)
)

// AddRoadCommand marks one grid cell as passable road.
type AddRoadCommand struct { //nolint:recvcheck //using for validation
	cell kernel.Cell

	guard guard.ConstructorGuard
}

// NewAddRoadCommand creates a road placement command for the given cell.
// Bounds are checked against the live grid by the handler, not here.
func NewAddRoadCommand(cell kernel.Cell) AddRoadCommand {
	return AddRoadCommand{
		cell:  cell,
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c AddRoadCommand) Validate() error {
	return c.guard.Validate(ErrAddRoadCommandIsNotConstructed)
}

// Cell returns the grid cell to mark as road.
func (c AddRoadCommand) Cell() kernel.Cell {
	return c.cell
}

// RemoveRoadCommand clears the road from one grid cell.
type RemoveRoadCommand struct { //nolint:recvcheck //using for validation
	cell kernel.Cell

	guard guard.ConstructorGuard
}

// NewRemoveRoadCommand creates a road removal command for the given cell.
func NewRemoveRoadCommand(cell kernel.Cell) RemoveRoadCommand {
	return RemoveRoadCommand{
		cell:  cell,
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c RemoveRoadCommand) Validate() error {
	return c.guard.Validate(ErrRemoveRoadCommandIsNotConstructed)
}

// Cell returns the grid cell to clear.
func (c RemoveRoadCommand) Cell() kernel.Cell {
	return c.cell
}
