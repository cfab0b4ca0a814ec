package commands

import (
	"errors"
	"time"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrExpireOrdersCommandIsNotConstructed = errors.New(
		"ExpireOrdersCommand must be created via NewExpireOrdersCommand constructor",
	)
)

// ExpireOrdersCommand sweeps the order book, delisting every unaccepted
// order whose deadline is at or before the given timestamp.
type ExpireOrdersCommand struct { //nolint:recvcheck //using for validation
	at time.Time

	guard guard.ConstructorGuard
}

// NewExpireOrdersCommand creates a sweep command for the given timestamp.
func NewExpireOrdersCommand(at time.Time) (ExpireOrdersCommand, error) {
	if at.IsZero() {
		return ExpireOrdersCommand{}, errs.NewDomainError(errs.CodeInvalidArgument, "timestamp is required")
	}

	return ExpireOrdersCommand{
		at:    at,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpireOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpireOrdersCommandIsNotConstructed)
}

// At returns the sweep timestamp.
func (c ExpireOrdersCommand) At() time.Time {
	return c.at
}
