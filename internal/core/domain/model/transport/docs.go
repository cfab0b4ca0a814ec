// Package transport provides the domain entities and lifecycle logic for
// moving resources across the map: transport jobs, delivery orders, and
// the managers that own them.
//
// The package includes:
//   - Job: The aggregate root for a single planned cargo movement, with a
//     Planned -> Started -> Completed/Failed state machine and an explicit
//     Requeue transition for restores
//   - JobManager: Owns all jobs, drains them FIFO, and publishes lifecycle
//     events to subscribed observers
//   - DeliveryOrder: A demand-side record with remaining-quantity tracking,
//     expiry, and an in-flight job set
//   - OrderBook: The catalog of open orders with reserve/restore/expiry
//     operations and change notifications
//   - OrderManager: A job observer that keeps orders consistent with the
//     jobs fulfilling them
//
// Key business rules:
//   - Jobs are mutated only through the JobManager's report operations
//   - Planning claims order quantity up front; a failed job restores its
//     claim, so demand is conserved across partial failures
//   - An order is Completed only when nothing remains to deliver and no
//     job for it is still in flight
//   - Accepted orders never auto-expire
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package transport
