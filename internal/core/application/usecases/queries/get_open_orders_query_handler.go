package queries

import (
	"context"

	"logistics/internal/core/domain/model/transport"
)

// GetOpenOrdersQueryHandler reads the open orders from the live book.
type GetOpenOrdersQueryHandler struct {
	book *transport.OrderBook
}

// NewGetOpenOrdersQueryHandler creates a handler over the given book.
func NewGetOpenOrdersQueryHandler(book *transport.OrderBook) GetOpenOrdersQueryHandler {
	return GetOpenOrdersQueryHandler{book: book}
}

// Handle returns the open orders in listing order.
func (h GetOpenOrdersQueryHandler) Handle(
	_ context.Context,
	query GetOpenOrdersQuery,
) ([]GetOpenOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := h.book.OpenOrders()
	responses := make([]GetOpenOrdersQueryResponse, 0, len(orders))
	for _, order := range orders {
		responses = append(responses, GetOpenOrdersQueryResponse{
			ID:        order.ID(),
			Resource:  string(order.Resource()),
			Product:   order.Product(),
			Total:     order.Total(),
			Remaining: order.Remaining(),
			Price:     order.Price(),
			Accepted:  order.Accepted(),
			ExpiresAt: order.ExpiresAt(),
		})
	}

	return responses, nil
}
