package commands

import (
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/resource"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrPlanDeliveryCommandIsNotConstructed = errors.New(
		"PlanDeliveryCommand must be created via NewPlanDeliveryCommand constructor",
	)
)

// PlanDeliveryCommand represents a demand request: move an amount of a
// resource to a destination node, split into trips of at most MaxPerTrip
// units. The request may fulfill a market order, in which case the created
// jobs claim quantity against it.
//
// Example:
//
//	cmd, err := NewPlanDeliveryCommand("wood", 15, destination, 4, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid demand request: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("planning failed: %w", err)
//	}
//	fmt.Printf("%d jobs planned, %d units unmet", len(result.Jobs), result.Unmet)
type PlanDeliveryCommand struct { //nolint:recvcheck //using for validation
	resource    resource.ID
	amount      int
	destination kernel.NodeRef
	maxPerTrip  int
	orderID     *kernel.UUID

	guard guard.ConstructorGuard
}

// NewPlanDeliveryCommand creates a demand request. The resource identifier
// is canonicalized; amount must be positive; the per-trip cap is clamped to
// at least 1; orderID is optional and links the plan to a market order.
func NewPlanDeliveryCommand(
	res string,
	amount int,
	destination kernel.NodeRef,
	maxPerTrip int,
	orderID *kernel.UUID,
) (PlanDeliveryCommand, error) {
	planCommand := PlanDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		planCommand.setResource(res),
		planCommand.setAmount(amount),
		planCommand.setDestination(destination),
		planCommand.setOrderID(orderID),
	); err != nil {
		return PlanDeliveryCommand{}, err
	}

	planCommand.maxPerTrip = maxPerTrip
	if planCommand.maxPerTrip < 1 {
		planCommand.maxPerTrip = 1
	}

	return planCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c PlanDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrPlanDeliveryCommandIsNotConstructed)
}

// Resource returns the canonical resource identifier requested.
func (c PlanDeliveryCommand) Resource() resource.ID {
	return c.resource
}

// Amount returns the total units of demand to cover.
func (c PlanDeliveryCommand) Amount() int {
	return c.amount
}

// Destination returns the handle of the receiving node.
func (c PlanDeliveryCommand) Destination() kernel.NodeRef {
	return c.destination
}

// MaxPerTrip returns the per-trip capacity cap.
func (c PlanDeliveryCommand) MaxPerTrip() int {
	return c.maxPerTrip
}

// OrderID returns the market order the plan fulfills, or nil.
func (c PlanDeliveryCommand) OrderID() *kernel.UUID {
	return c.orderID
}

func (c *PlanDeliveryCommand) setResource(raw string) error {
	res := resource.Canonical(raw)
	if res.IsZero() {
		return errs.NewDomainError(errs.CodeInvalidArgument, "resource is required")
	}
	c.resource = res
	return nil
}

func (c *PlanDeliveryCommand) setAmount(amount int) error {
	if amount <= 0 {
		return errs.NewDomainError(
			errs.CodeInvalidArgument,
			fmt.Sprintf("amount must be greater than 0, got %d", amount),
		)
	}
	c.amount = amount
	return nil
}

func (c *PlanDeliveryCommand) setDestination(destination kernel.NodeRef) error {
	if destination.IsNil() {
		return errs.NewDomainError(errs.CodeInvalidArgument, "destination is required")
	}
	c.destination = destination
	return nil
}

func (c *PlanDeliveryCommand) setOrderID(orderID *kernel.UUID) error {
	if orderID == nil {
		return nil
	}
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}
