package queries

import (
	"context"

	"logistics/internal/core/domain/model/transport"
)

// GetActiveJobsQueryHandler reads non-terminal jobs from the live manager.
type GetActiveJobsQueryHandler struct {
	jobs *transport.JobManager
}

// NewGetActiveJobsQueryHandler creates a handler over the job manager.
func NewGetActiveJobsQueryHandler(jobs *transport.JobManager) GetActiveJobsQueryHandler {
	return GetActiveJobsQueryHandler{jobs: jobs}
}

// Handle returns the active jobs in insertion order.
func (h GetActiveJobsQueryHandler) Handle(
	_ context.Context,
	query GetActiveJobsQuery,
) ([]GetActiveJobsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var responses []GetActiveJobsQueryResponse
	for _, job := range h.jobs.Jobs() {
		if job.Status().IsTerminal() {
			continue
		}
		responses = append(responses, GetActiveJobsQueryResponse{
			ID:          job.ID(),
			Resource:    string(job.Resource()),
			Amount:      job.Amount(),
			Source:      job.Source(),
			Destination: job.Destination(),
			Status:      job.Status().String(),
			Cost:        job.Cost(),
			OrderID:     job.Order(),
		})
	}

	return responses, nil
}
