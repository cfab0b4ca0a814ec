package commands

import (
	"errors"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/resource"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrCreateMarketOrderCommandIsNotConstructed = errors.New(
		"CreateMarketOrderCommand must be created via NewCreateMarketOrderCommand constructor",
	)
)

// CreateMarketOrderCommand lists a new delivery order on the market board.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateMarketOrderCommand(orderID, "grain", "Wheat", 30, 1.5, expiry)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateMarketOrderCommandHandler(book)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to list order: %w", err)
//	}
type CreateMarketOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	resource  resource.ID
	product   string
	amount    int
	price     float64
	expiresAt time.Time

	guard guard.ConstructorGuard
}

// NewCreateMarketOrderCommand creates a market listing command. The resource
// is canonicalized; amount must be positive and price non-negative. A zero
// expiry lists the order without a deadline.
func NewCreateMarketOrderCommand(
	orderID kernel.UUID,
	res string,
	product string,
	amount int,
	price float64,
	expiresAt time.Time,
) (CreateMarketOrderCommand, error) {
	cmd := CreateMarketOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setResource(res),
		cmd.setAmount(amount),
		cmd.setPrice(price),
	); err != nil {
		return CreateMarketOrderCommand{}, err
	}

	cmd.product = product
	cmd.expiresAt = expiresAt
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateMarketOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateMarketOrderCommandIsNotConstructed)
}

// OrderID returns the identifier for the new order.
func (c CreateMarketOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Resource returns the canonical resource identifier requested.
func (c CreateMarketOrderCommand) Resource() resource.ID {
	return c.resource
}

// Product returns the human-facing product label.
func (c CreateMarketOrderCommand) Product() string {
	return c.product
}

// Amount returns the requested quantity.
func (c CreateMarketOrderCommand) Amount() int {
	return c.amount
}

// Price returns the offered price per unit.
func (c CreateMarketOrderCommand) Price() float64 {
	return c.price
}

// ExpiresAt returns the listing deadline; zero means no deadline.
func (c CreateMarketOrderCommand) ExpiresAt() time.Time {
	return c.expiresAt
}

func (c *CreateMarketOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateMarketOrderCommand) setResource(raw string) error {
	res := resource.Canonical(raw)
	if res.IsZero() {
		return errs.NewDomainError(errs.CodeInvalidArgument, "resource is required")
	}
	c.resource = res
	return nil
}

func (c *CreateMarketOrderCommand) setAmount(amount int) error {
	if amount <= 0 {
		return errs.NewDomainError(
			errs.CodeInvalidArgument,
			fmt.Sprintf("amount must be greater than 0, got %d", amount),
		)
	}
	c.amount = amount
	return nil
}

func (c *CreateMarketOrderCommand) setPrice(price float64) error {
	if price < 0 {
		return errs.NewDomainError(
			errs.CodeInvalidArgument,
			fmt.Sprintf("price must not be negative, got %g", price),
		)
	}
	c.price = price
	return nil
}
