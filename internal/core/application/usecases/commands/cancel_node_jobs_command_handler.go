package commands

import (
	"context"

	"logistics/internal/core/domain/model/transport"
)

// CancelNodeJobsCommandHandler fails jobs touching a demolished node. The
// failure events restore any claimed order demand.
type CancelNodeJobsCommandHandler struct {
	jobs *transport.JobManager
}

// NewCancelNodeJobsCommandHandler creates a handler over the job manager.
func NewCancelNodeJobsCommandHandler(jobs *transport.JobManager) CancelNodeJobsCommandHandler {
	return CancelNodeJobsCommandHandler{jobs: jobs}
}

// Handle cancels the node's jobs and returns how many were failed.
func (h *CancelNodeJobsCommandHandler) Handle(_ context.Context, cmd CancelNodeJobsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	return h.jobs.CancelJobsForNode(cmd.Node()), nil
}
