package commands

import (
	"context"
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/transport"
	"logistics/internal/pkg/errs"
)

// AcceptOrderCommandHandler marks listed orders as claimed.
type AcceptOrderCommandHandler struct {
	book *transport.OrderBook
}

// NewAcceptOrderCommandHandler creates a handler over the given book.
func NewAcceptOrderCommandHandler(book *transport.OrderBook) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{book: book}
}

// Handle accepts the order, translating an unknown id into the domain
// error taxonomy.
func (h *AcceptOrderCommandHandler) Handle(_ context.Context, cmd AcceptOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.book.Accept(cmd.OrderID()); err != nil {
		var notFound *errs.ObjectNotFoundError
		if errors.As(err, &notFound) {
			return errs.NewDomainErrorWithCause(
				errs.CodeOrderNotFound,
				fmt.Sprintf("order %s is not listed", cmd.OrderID()),
				err,
			)
		}
		return errs.NewDomainErrorWithCause(
			errs.CodeInvalidArgument,
			fmt.Sprintf("order %s cannot be accepted", cmd.OrderID()),
			err,
		)
	}
	return nil
}
