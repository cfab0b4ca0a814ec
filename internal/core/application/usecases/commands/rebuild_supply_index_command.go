package commands

import (
	"errors"

	"logistics/internal/pkg/guard"
)

var (
	ErrRebuildSupplyIndexCommandIsNotConstructed = errors.New(
		"RebuildSupplyIndexCommand must be created via NewRebuildSupplyIndexCommand constructor",
	)
)

// RebuildSupplyIndexCommand wholesale-refreshes the supply catalog from the
// world's inventories. This is a parameterless command: the handler scans
// every inventory provider itself.
type RebuildSupplyIndexCommand struct {
	guard guard.ConstructorGuard
}

// NewRebuildSupplyIndexCommand creates a rebuild command.
func NewRebuildSupplyIndexCommand() RebuildSupplyIndexCommand {
	return RebuildSupplyIndexCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c RebuildSupplyIndexCommand) Validate() error {
	return c.guard.Validate(ErrRebuildSupplyIndexCommandIsNotConstructed)
}
