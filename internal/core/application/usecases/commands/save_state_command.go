package commands

import (
	"errors"

	"logistics/internal/pkg/guard"
)

var (
	ErrSaveStateCommandIsNotConstructed = errors.New(
		"SaveStateCommand must be created via NewSaveStateCommand constructor",
	)
)

// SaveStateCommand persists the whole transport snapshot: open jobs, listed
// orders, and the road cell list, replacing the previous snapshot.
type SaveStateCommand struct {
	guard guard.ConstructorGuard
}

// NewSaveStateCommand creates a snapshot save command.
func NewSaveStateCommand() SaveStateCommand {
	return SaveStateCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c SaveStateCommand) Validate() error {
	return c.guard.Validate(ErrSaveStateCommandIsNotConstructed)
}
