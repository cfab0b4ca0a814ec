package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/transport"
)

// OrderRepository defines the persistence contract for delivery order
// aggregates, mirroring JobRepository for the snapshot cycle.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *transport.DeliveryOrder) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *transport.DeliveryOrder) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*transport.DeliveryOrder, error)

	// GetAll retrieves every persisted order in insertion order.
	GetAll(ctx context.Context) ([]*transport.DeliveryOrder, error)

	// Clear removes every persisted order.
	Clear(ctx context.Context) error
}
