// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
//
// Most commands mutate the live in-memory world (road network, supply index,
// order book, job manager); only the snapshot commands open a database
// transaction.
package commands

import (
	"context"

	"logistics/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// JobRepoFactory provides access to the job repository within a transaction.
	JobRepoFactory interface {
		JobRepository() ports.JobRepository
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// RoadRepoFactory provides access to the road repository within a transaction.
	RoadRepoFactory interface {
		RoadRepository() ports.RoadRepository
	}

	// SnapshotUoW manages transactions spanning the whole world snapshot:
	// jobs, orders, and road cells are saved or restored atomically.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   jobRepo := uow.JobRepository()
	//   orderRepo := uow.OrderRepository()
	//   roadRepo := uow.RoadRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	SnapshotUoW interface {
		TxManager
		JobRepoFactory
		OrderRepoFactory
		RoadRepoFactory
	}

	// SnapshotUoWFactory creates new snapshot unit of work instances.
	SnapshotUoWFactory interface {
		Create() SnapshotUoW
	}
)
