package jobs

import (
	"context"
	"log/slog"
)

// JobManager owns the background jobs and starts and stops them together.
type JobManager struct {
	fulfillmentJob *OrderFulfillmentJob
	expiryJob      *OrderExpiryJob
	logger         *slog.Logger
}

func NewJobManager(
	fulfillmentJob *OrderFulfillmentJob,
	expiryJob *OrderExpiryJob,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		fulfillmentJob: fulfillmentJob,
		expiryJob:      expiryJob,
		logger:         logger.With("component", "job_manager"),
	}
}

// StartAll starts all background jobs. If any job fails to start, the ones
// already running are stopped before the error is returned.
func (m *JobManager) StartAll() error {
	if err := m.fulfillmentJob.Start(); err != nil {
		return err
	}

	if err := m.expiryJob.Start(); err != nil {
		m.fulfillmentJob.Stop()
		return err
	}

	m.logger.InfoContext(context.Background(), "All background jobs started")
	return nil
}

// StopAll stops all background jobs.
func (m *JobManager) StopAll() {
	m.fulfillmentJob.Stop()
	m.expiryJob.Stop()
	m.logger.InfoContext(context.Background(), "All background jobs stopped")
}
