package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/transport"
	"logistics/internal/pkg/errs"
)

func newManagedJob(t *testing.T, jobs *transport.JobManager) *transport.Job {
	t.Helper()
	job, err := transport.NewJob(kernel.NewUUID(), "wood", 4, 1, 100, nil, 18)
	require.NoError(t, err)
	require.NoError(t, jobs.AddJob(job))
	return job
}

func TestReportJobCommandHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("should walk a job through its lifecycle", func(t *testing.T) {
		jobs := transport.NewJobManager()
		job := newManagedJob(t, jobs)
		handler := commands.NewReportJobCommandHandler(jobs)

		started, err := commands.NewReportJobStartedCommand(job.ID(), 7)
		require.NoError(t, err)
		require.NoError(t, handler.HandleStarted(ctx, started))
		assert.Equal(t, transport.Started, job.Status())
		assert.Equal(t, kernel.NodeRef(7), job.Carrier())

		completed, err := commands.NewReportJobCompletedCommand(job.ID(), 4)
		require.NoError(t, err)
		require.NoError(t, handler.HandleCompleted(ctx, completed))
		assert.Equal(t, transport.Completed, job.Status())
	})

	t.Run("should fail a planned job", func(t *testing.T) {
		jobs := transport.NewJobManager()
		job := newManagedJob(t, jobs)
		handler := commands.NewReportJobCommandHandler(jobs)

		failed, err := commands.NewReportJobFailedCommand(job.ID())
		require.NoError(t, err)
		require.NoError(t, handler.HandleFailed(ctx, failed))
		assert.Equal(t, transport.Failed, job.Status())
	})

	t.Run("should report an unmanaged job id", func(t *testing.T) {
		handler := commands.NewReportJobCommandHandler(transport.NewJobManager())

		started, err := commands.NewReportJobStartedCommand(kernel.NewUUID(), 7)
		require.NoError(t, err)

		err = handler.HandleStarted(ctx, started)

		require.Error(t, err)
		assert.Equal(t, errs.CodeOrderNotFound, errs.CodeOf(err))
	})

	t.Run("should reject an invalid transition", func(t *testing.T) {
		jobs := transport.NewJobManager()
		job := newManagedJob(t, jobs)
		handler := commands.NewReportJobCommandHandler(jobs)

		completed, err := commands.NewReportJobCompletedCommand(job.ID(), 4)
		require.NoError(t, err)

		err = handler.HandleCompleted(ctx, completed)

		require.Error(t, err)
		assert.Equal(t, errs.CodeInvalidArgument, errs.CodeOf(err))
	})

	t.Run("should reject a start report without a carrier", func(t *testing.T) {
		_, err := commands.NewReportJobStartedCommand(kernel.NewUUID(), 0)
		assert.Error(t, err)
	})

	t.Run("should reject a negative delivered amount", func(t *testing.T) {
		_, err := commands.NewReportJobCompletedCommand(kernel.NewUUID(), -1)
		assert.Error(t, err)
	})

	t.Run("should reject commands that were not constructed", func(t *testing.T) {
		handler := commands.NewReportJobCommandHandler(transport.NewJobManager())

		assert.Error(t, handler.HandleStarted(ctx, commands.ReportJobStartedCommand{}))
		assert.Error(t, handler.HandleCompleted(ctx, commands.ReportJobCompletedCommand{}))
		assert.Error(t, handler.HandleFailed(ctx, commands.ReportJobFailedCommand{}))
	})
}
