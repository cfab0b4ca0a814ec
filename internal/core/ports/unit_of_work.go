package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per snapshot operation so
// concurrent requests never share a transaction.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary around one world snapshot. The
// caller drives the lifecycle explicitly: Begin, work through the bound
// repositories, then Commit or Rollback.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// JobRepository returns a job repository bound to the open transaction.
	JobRepository() JobRepository

	// OrderRepository returns an order repository bound to the open
	// transaction.
	OrderRepository() OrderRepository

	// RoadRepository returns a road repository bound to the open
	// transaction.
	RoadRepository() RoadRepository
}
