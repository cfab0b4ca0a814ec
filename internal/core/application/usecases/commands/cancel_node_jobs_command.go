package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrCancelNodeJobsCommandIsNotConstructed = errors.New(
		"CancelNodeJobsCommand must be created via NewCancelNodeJobsCommand constructor",
	)
)

// CancelNodeJobsCommand fails every in-flight job touching a node, used
// when the node's entity is demolished mid-transit.
type CancelNodeJobsCommand struct { //nolint:recvcheck //using for validation
	node kernel.NodeRef

	guard guard.ConstructorGuard
}

// NewCancelNodeJobsCommand creates a cancellation command for the node.
func NewCancelNodeJobsCommand(node kernel.NodeRef) (CancelNodeJobsCommand, error) {
	if node.IsNil() {
		return CancelNodeJobsCommand{}, errs.NewDomainError(errs.CodeInvalidArgument, "node is required")
	}

	return CancelNodeJobsCommand{
		node:  node,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelNodeJobsCommand) Validate() error {
	return c.guard.Validate(ErrCancelNodeJobsCommandIsNotConstructed)
}

// Node returns the handle whose jobs are cancelled.
func (c CancelNodeJobsCommand) Node() kernel.NodeRef {
	return c.node
}
