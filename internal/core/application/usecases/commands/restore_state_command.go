package commands

import (
	"errors"

	"logistics/internal/pkg/guard"
)

var (
	ErrRestoreStateCommandIsNotConstructed = errors.New(
		"RestoreStateCommand must be created via NewRestoreStateCommand constructor",
	)
)

// RestoreStateCommand replaces the live world with the persisted snapshot:
// road cells, listed orders, and open jobs. Restored jobs re-enter the
// queue as Planned, since in-flight carriers are not persisted.
type RestoreStateCommand struct {
	guard guard.ConstructorGuard
}

// NewRestoreStateCommand creates a snapshot restore command.
func NewRestoreStateCommand() RestoreStateCommand {
	return RestoreStateCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c RestoreStateCommand) Validate() error {
	return c.guard.Validate(ErrRestoreStateCommandIsNotConstructed)
}
