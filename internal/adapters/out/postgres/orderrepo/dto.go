// Package orderrepo provides data transfer objects and mapping functions for
// delivery order persistence. Orders are part of the world snapshot: the live
// order book is authoritative at runtime and the table is replaced wholesale
// on every save.
package orderrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/transport"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting delivery orders.
// The derived status is not stored; RestoreOrder recomputes it from the
// remaining quantity on load. Seq preserves listing order across a restore.
type OrderDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq       int64     `gorm:"autoIncrement;uniqueIndex"`
	Resource  string
	Product   string
	Total     int
	Remaining int
	Price     float64
	Accepted  bool
	CreatedAt time.Time
	ExpiresAt time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "delivery_orders"
}

// fromDomain converts a delivery order aggregate to its database
// representation.
func fromDomain(order *transport.DeliveryOrder) OrderDTO {
	return OrderDTO{
		ID:        order.ID().Bytes(),
		Resource:  string(order.Resource()),
		Product:   order.Product(),
		Total:     order.Total(),
		Remaining: order.Remaining(),
		Price:     order.Price(),
		Accepted:  order.Accepted(),
		CreatedAt: order.CreatedAt(),
		ExpiresAt: order.ExpiresAt(),
	}
}

// toDomain converts a database DTO back to a delivery order aggregate.
func toDomain(dto OrderDTO) (*transport.DeliveryOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return transport.RestoreOrder(
		id,
		dto.Resource,
		dto.Product,
		dto.Total,
		dto.Remaining,
		dto.Price,
		dto.Accepted,
		dto.CreatedAt,
		dto.ExpiresAt,
	)
}
