package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/transport"
)

// JobRepository defines the persistence contract for transport job
// aggregates. The live simulation owns jobs in memory; the repository
// exists for the save/restore snapshot cycle.
type JobRepository interface {
	// Add persists a new job aggregate to storage.
	// The job must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *transport.Job) error

	// Update persists changes to an existing job aggregate.
	Update(ctx context.Context, aggregate *transport.Job) error

	// Get retrieves a job aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*transport.Job, error)

	// GetAll retrieves every persisted job in insertion order.
	// Used when restoring the job queue from a snapshot.
	GetAll(ctx context.Context) ([]*transport.Job, error)

	// Clear removes every persisted job. A snapshot save replaces the
	// previous snapshot wholesale.
	Clear(ctx context.Context) error
}
