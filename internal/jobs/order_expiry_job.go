package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"logistics/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderExpiryJob delists market orders whose deadline has passed.
type OrderExpiryJob struct {
	handler commands.ExpireOrdersCommandHandler

	worldMu *sync.Mutex
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewOrderExpiryJob(
	handler commands.ExpireOrdersCommandHandler,
	worldMu *sync.Mutex,
	logger *slog.Logger,
) *OrderExpiryJob {
	return &OrderExpiryJob{
		handler: handler,
		worldMu: worldMu,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "order_expiry_job"),
	}
}

// Start begins the expiry job to run every second.
func (j *OrderExpiryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		j.tick(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order expiry job started (running every second)")
	return nil
}

// Stop stops the expiry job.
func (j *OrderExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order expiry job stopped")
}

func (j *OrderExpiryJob) tick(ctx context.Context) {
	j.worldMu.Lock()
	defer j.worldMu.Unlock()

	cmd, err := commands.NewExpireOrdersCommand(time.Now())
	if err != nil {
		j.logger.ErrorContext(ctx, "Order expiry sweep rejected", "error", err)
		return
	}

	expired, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Order expiry job failed", "error", err)
		return
	}

	if expired > 0 {
		j.logger.InfoContext(ctx, "Expired market orders delisted", "count", expired)
	}
}
