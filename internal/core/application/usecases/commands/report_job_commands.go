package commands

import (
	"errors"
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// The three job report commands share a shape: carrier movement code
// identifies a job and reports a lifecycle fact about it. They are grouped
// here because each is a single field beyond the job id.

var (
	ErrReportJobStartedCommandIsNotConstructed = errors.New(
		"ReportJobStartedCommand must be created via NewReportJobStartedCommand constructor",
	)
	ErrReportJobCompletedCommandIsNotConstructed = errors.New(
		"ReportJobCompletedCommand must be created via NewReportJobCompletedCommand constructor",
	)
	ErrReportJobFailedCommandIsNotConstructed = errors.New(
		"ReportJobFailedCommand must be created via NewReportJobFailedCommand constructor",
	)
)

// ReportJobStartedCommand reports that a carrier picked a job up.
type ReportJobStartedCommand struct { //nolint:recvcheck //using for validation
	jobID   kernel.UUID
	carrier kernel.NodeRef

	guard guard.ConstructorGuard
}

// NewReportJobStartedCommand creates a start report. Both the job id and
// the carrier handle are required.
func NewReportJobStartedCommand(jobID kernel.UUID, carrier kernel.NodeRef) (ReportJobStartedCommand, error) {
	cmd := ReportJobStartedCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := jobID.Validate(); err != nil {
		return ReportJobStartedCommand{}, err
	}
	if carrier.IsNil() {
		return ReportJobStartedCommand{}, errs.NewDomainError(errs.CodeInvalidArgument, "carrier is required")
	}

	cmd.jobID = jobID
	cmd.carrier = carrier
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportJobStartedCommand) Validate() error {
	return c.guard.Validate(ErrReportJobStartedCommandIsNotConstructed)
}

// JobID returns the identifier of the reported job.
func (c ReportJobStartedCommand) JobID() kernel.UUID {
	return c.jobID
}

// Carrier returns the handle of the carrier taking the job.
func (c ReportJobStartedCommand) Carrier() kernel.NodeRef {
	return c.carrier
}

// ReportJobCompletedCommand reports an arrival with the amount actually
// delivered.
type ReportJobCompletedCommand struct { //nolint:recvcheck //using for validation
	jobID     kernel.UUID
	delivered int

	guard guard.ConstructorGuard
}

// NewReportJobCompletedCommand creates a completion report. The delivered
// amount must not be negative; it may undershoot the planned amount.
func NewReportJobCompletedCommand(jobID kernel.UUID, delivered int) (ReportJobCompletedCommand, error) {
	cmd := ReportJobCompletedCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := jobID.Validate(); err != nil {
		return ReportJobCompletedCommand{}, err
	}
	if delivered < 0 {
		return ReportJobCompletedCommand{}, errs.NewDomainError(
			errs.CodeInvalidArgument,
			fmt.Sprintf("delivered must not be negative, got %d", delivered),
		)
	}

	cmd.jobID = jobID
	cmd.delivered = delivered
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportJobCompletedCommand) Validate() error {
	return c.guard.Validate(ErrReportJobCompletedCommandIsNotConstructed)
}

// JobID returns the identifier of the reported job.
func (c ReportJobCompletedCommand) JobID() kernel.UUID {
	return c.jobID
}

// Delivered returns the amount that actually arrived.
func (c ReportJobCompletedCommand) Delivered() int {
	return c.delivered
}

// ReportJobFailedCommand reports that a job was aborted before delivery.
type ReportJobFailedCommand struct { //nolint:recvcheck //using for validation
	jobID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReportJobFailedCommand creates a failure report for the given job.
func NewReportJobFailedCommand(jobID kernel.UUID) (ReportJobFailedCommand, error) {
	cmd := ReportJobFailedCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := jobID.Validate(); err != nil {
		return ReportJobFailedCommand{}, err
	}

	cmd.jobID = jobID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportJobFailedCommand) Validate() error {
	return c.guard.Validate(ErrReportJobFailedCommandIsNotConstructed)
}

// JobID returns the identifier of the reported job.
func (c ReportJobFailedCommand) JobID() kernel.UUID {
	return c.jobID
}
