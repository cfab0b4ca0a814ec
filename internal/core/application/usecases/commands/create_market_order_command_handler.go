package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/transport"
	"logistics/internal/pkg/errs"
)

// CreateMarketOrderCommandHandler lists new delivery orders on the order
// book. The book's change notification refreshes market consumers.
type CreateMarketOrderCommandHandler struct {
	book *transport.OrderBook

	// now supplies the creation timestamp for new listings
	now func() time.Time
}

// NewCreateMarketOrderCommandHandler creates a handler over the given book.
func NewCreateMarketOrderCommandHandler(book *transport.OrderBook) CreateMarketOrderCommandHandler {
	return CreateMarketOrderCommandHandler{
		book: book,
		now:  time.Now,
	}
}

// Handle lists the order. Duplicate ids are rejected rather than replaced:
// updating a live listing goes through the book's own operations.
func (h *CreateMarketOrderCommandHandler) Handle(_ context.Context, cmd CreateMarketOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if h.book.Contains(cmd.OrderID()) {
		return errs.NewDomainError(
			errs.CodeInvalidArgument,
			"an order with this id is already listed",
		)
	}

	order, err := transport.NewDeliveryOrder(
		cmd.OrderID(),
		string(cmd.Resource()),
		cmd.Product(),
		cmd.Amount(),
		cmd.Price(),
		h.now(),
		cmd.ExpiresAt(),
	)
	if err != nil {
		return errs.WrapUnexpected(err)
	}

	return h.book.AddOrUpdate(order)
}
