package commands

import (
	"context"
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/transport"
	"logistics/internal/pkg/errs"
)

// ReportJobCommandHandler processes the three carrier reports against the
// job manager. Lifecycle events fired by the manager keep order bookkeeping
// in sync; the handler's job is translating lookup and transition failures
// into the domain error taxonomy.
type ReportJobCommandHandler struct {
	jobs *transport.JobManager
}

// NewReportJobCommandHandler creates a handler over the given job manager.
func NewReportJobCommandHandler(jobs *transport.JobManager) ReportJobCommandHandler {
	return ReportJobCommandHandler{jobs: jobs}
}

// HandleStarted processes a start report (Planned -> Started).
func (h *ReportJobCommandHandler) HandleStarted(_ context.Context, cmd ReportJobStartedCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.mapReportError(cmd.JobID().String(), h.jobs.ReportStarted(cmd.JobID(), cmd.Carrier()))
}

// HandleCompleted processes a completion report (Started -> Completed).
func (h *ReportJobCommandHandler) HandleCompleted(_ context.Context, cmd ReportJobCompletedCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.mapReportError(cmd.JobID().String(), h.jobs.ReportCompleted(cmd.JobID(), cmd.Delivered()))
}

// HandleFailed processes a failure report (non-terminal -> Failed).
func (h *ReportJobCommandHandler) HandleFailed(_ context.Context, cmd ReportJobFailedCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.mapReportError(cmd.JobID().String(), h.jobs.ReportFailed(cmd.JobID()))
}

// mapReportError folds manager errors into the domain taxonomy: unknown ids
// become order-not-found reports, invalid transitions become invalid
// arguments.
func (h *ReportJobCommandHandler) mapReportError(jobID string, err error) error {
	if err == nil {
		return nil
	}

	var notFound *errs.ObjectNotFoundError
	if errors.As(err, &notFound) {
		return errs.NewDomainErrorWithCause(
			errs.CodeOrderNotFound,
			fmt.Sprintf("job %s is not managed", jobID),
			err,
		)
	}

	return errs.NewDomainErrorWithCause(
		errs.CodeInvalidArgument,
		fmt.Sprintf("job %s cannot take this report", jobID),
		err,
	)
}
