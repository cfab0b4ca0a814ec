// Package kernel provides the core value objects shared by every part of the
// logistics domain model.
//
// The package includes:
//   - Cell: a grid coordinate with Manhattan-distance arithmetic
//   - Point: a continuous world-space position convertible to and from cells
//   - NodeRef: an opaque handle to an external entity (building, carrier)
//   - UUID: a validated unique identifier for aggregates
//
// All types are immutable values. They carry no references into the
// presentation layer; external entities are addressed exclusively through
// NodeRef handles that a resolver maps back to live objects.
package kernel
