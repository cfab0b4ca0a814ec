package transport

import (
	"fmt"

	"logistics/internal/pkg/errs"
)

// OrderStatus represents the fulfillment state of a delivery order.
//
// State transitions:
//
//	Open ──> InTransport ──> Completed
//	  ▲          │
//	  └──────────┘
//	  (all in-flight jobs failed)
//
// An order is Completed only once nothing remains to deliver and no job
// for it is still in flight; a failed job can therefore move an order
// back from InTransport to Open.
type OrderStatus int

const (
	// OrderStatusUnknown represents an invalid or undefined status.
	OrderStatusUnknown OrderStatus = iota

	// OrderStatusOpen means the order still has unclaimed quantity.
	OrderStatusOpen

	// OrderStatusInTransport means at least one job for the order is in flight.
	OrderStatusInTransport

	// OrderStatusCompleted means the order is fully delivered. Final state.
	OrderStatusCompleted
)

func getOrderStatusStrings() map[OrderStatus]string {
	return map[OrderStatus]string{
		OrderStatusUnknown:     "Unknown",
		OrderStatusOpen:        "Open",
		OrderStatusInTransport: "InTransport",
		OrderStatusCompleted:   "Completed",
	}
}

// Validate checks if the OrderStatus value is valid.
func (s OrderStatus) Validate() error {
	if s != OrderStatusOpen && s != OrderStatusInTransport && s != OrderStatusCompleted {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s OrderStatus) String() string {
	if str, ok := getOrderStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
