package queries

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var (
	ErrGetActiveJobsQueryIsNotConstructed = errors.New(
		"GetActiveJobsQuery must be created via NewGetActiveJobsQuery constructor",
	)
)

// GetActiveJobsQuery retrieves every job that has not reached a terminal
// state, for monitoring and carrier dispatch displays.
type GetActiveJobsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveJobsQuery creates a query for the active job list.
func NewGetActiveJobsQuery() GetActiveJobsQuery {
	return GetActiveJobsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveJobsQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveJobsQueryIsNotConstructed)
}

// GetActiveJobsQueryResponse is the read model for one in-flight job.
type GetActiveJobsQueryResponse struct {
	ID          kernel.UUID
	Resource    string
	Amount      int
	Source      kernel.NodeRef
	Destination kernel.NodeRef
	Status      string
	Cost        float64
	OrderID     *kernel.UUID
}
