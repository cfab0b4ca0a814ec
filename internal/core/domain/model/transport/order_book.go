package transport

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
)

type bookSubscription struct {
	id     int
	notify func()
}

// OrderBook tracks the open delivery orders with remaining quantity and
// expiry. Orders enter through AddOrUpdate and leave through Remove or
// expiry; remaining-quantity mutation goes through Reserve and Restore
// only. Every mutation fires a change notification so UI and market
// listings can refresh lazily.
type OrderBook struct {
	orders map[kernel.UUID]*DeliveryOrder
	listed []kernel.UUID

	subscriptions []bookSubscription
	nextSubID     int
}

// NewOrderBook creates an empty order book.
func NewOrderBook() *OrderBook {
	return &OrderBook{
		orders: make(map[kernel.UUID]*DeliveryOrder),
	}
}

// OnChange registers a callback fired after every mutation of the book or
// of an order's remaining quantity. Returns the unsubscribe function.
func (b *OrderBook) OnChange(notify func()) func() {
	id := b.nextSubID
	b.nextSubID++
	b.subscriptions = append(b.subscriptions, bookSubscription{id: id, notify: notify})

	return func() {
		for i, sub := range b.subscriptions {
			if sub.id == id {
				b.subscriptions = append(b.subscriptions[:i], b.subscriptions[i+1:]...)
				return
			}
		}
	}
}

// AddOrUpdate inserts an order or replaces the entry with the same id.
func (b *OrderBook) AddOrUpdate(order *DeliveryOrder) error {
	if err := order.Validate(); err != nil {
		return err
	}

	if _, exists := b.orders[order.ID()]; !exists {
		b.listed = append(b.listed, order.ID())
	}
	b.orders[order.ID()] = order
	b.notifyChanged()
	return nil
}

// Remove deletes an order from the book. Removing an unknown id is a no-op.
func (b *OrderBook) Remove(orderID kernel.UUID) {
	if _, ok := b.orders[orderID]; !ok {
		return
	}
	delete(b.orders, orderID)
	for i, id := range b.listed {
		if id.IsEqual(orderID) {
			b.listed = append(b.listed[:i], b.listed[i+1:]...)
			break
		}
	}
	b.notifyChanged()
}

// Contains reports whether an order with the given id is in the book.
func (b *OrderBook) Contains(orderID kernel.UUID) bool {
	_, ok := b.orders[orderID]
	return ok
}

// Get returns the order with the given id.
func (b *OrderBook) Get(orderID kernel.UUID) (*DeliveryOrder, bool) {
	order, ok := b.orders[orderID]
	return order, ok
}

// Orders returns all orders in insertion order.
func (b *OrderBook) Orders() []*DeliveryOrder {
	out := make([]*DeliveryOrder, 0, len(b.listed))
	for _, id := range b.listed {
		if order, ok := b.orders[id]; ok {
			out = append(out, order)
		}
	}
	return out
}

// OpenOrders returns the orders that still have unclaimed quantity, in
// insertion order.
func (b *OrderBook) OpenOrders() []*DeliveryOrder {
	out := make([]*DeliveryOrder, 0, len(b.listed))
	for _, id := range b.listed {
		if order, ok := b.orders[id]; ok && order.Status() == OrderStatusOpen {
			out = append(out, order)
		}
	}
	return out
}

// Reserve claims quantity on an order for an in-flight job, decrementing
// remaining floored at zero. Returns the amount actually claimed.
func (b *OrderBook) Reserve(orderID kernel.UUID, amount int) (int, error) {
	order, ok := b.orders[orderID]
	if !ok {
		return 0, errs.NewObjectNotFoundError("order", orderID)
	}

	claimed := order.Reserve(amount)
	if claimed > 0 {
		b.notifyChanged()
	}
	return claimed, nil
}

// Restore returns previously claimed quantity to an order's remaining,
// capped at its total. Restoring against an unknown id is a no-op.
func (b *OrderBook) Restore(orderID kernel.UUID, amount int) {
	order, ok := b.orders[orderID]
	if !ok {
		return
	}

	order.Restore(amount)
	b.notifyChanged()
}

// Accept marks an order as claimed, exempting it from expiry.
func (b *OrderBook) Accept(orderID kernel.UUID) error {
	order, ok := b.orders[orderID]
	if !ok {
		return errs.NewObjectNotFoundError("order", orderID)
	}

	if err := order.Accept(); err != nil {
		return err
	}
	b.notifyChanged()
	return nil
}

// ExpireOlderOrEqual removes every order whose expiry deadline is at or
// before the timestamp and that has not been accepted. Accepted orders
// never auto-expire. Returns the removed orders.
func (b *OrderBook) ExpireOlderOrEqual(at time.Time) []*DeliveryOrder {
	var expired []*DeliveryOrder
	for _, id := range append([]kernel.UUID(nil), b.listed...) {
		order, ok := b.orders[id]
		if !ok || !order.IsExpirable(at) {
			continue
		}

		delete(b.orders, order.ID())
		for i, listed := range b.listed {
			if listed.IsEqual(order.ID()) {
				b.listed = append(b.listed[:i], b.listed[i+1:]...)
				break
			}
		}
		expired = append(expired, order)
	}

	if len(expired) > 0 {
		b.notifyChanged()
	}
	return expired
}

func (b *OrderBook) notifyChanged() {
	for _, sub := range append([]bookSubscription(nil), b.subscriptions...) {
		sub.notify()
	}
}
