// Package services contains stateless domain services that coordinate
// multiple aggregates without owning state of their own.
//
// The package includes:
//   - Scheduler: Splits a demand amount across candidate suppliers under a
//     per-trip capacity cap, reserving supplier stock as it allocates
//   - Router: Computes road paths and monetary transport costs, with an
//     optional version-keyed route cache
//
// Services receive their collaborators as arguments or at construction and
// mutate only the domain objects handed to them, keeping every allocation
// decision deterministic for a given input order.
package services
