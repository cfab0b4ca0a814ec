package commands

import (
	"context"

	"logistics/internal/core/domain/model/transport"
)

// ExpireOrdersCommandHandler delists expired orders from the book.
type ExpireOrdersCommandHandler struct {
	book *transport.OrderBook
}

// NewExpireOrdersCommandHandler creates a handler over the given book.
func NewExpireOrdersCommandHandler(book *transport.OrderBook) ExpireOrdersCommandHandler {
	return ExpireOrdersCommandHandler{book: book}
}

// Handle runs the sweep and returns how many orders were delisted.
func (h *ExpireOrdersCommandHandler) Handle(_ context.Context, cmd ExpireOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	return len(h.book.ExpireOlderOrEqual(cmd.At())), nil
}
