package jobs

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StaleOrderJob sweeps orders abandoned in Pending status.
// Runs every minute and cancels orders whose order date is older than the
// configured time to live, releasing any payment hold through the handler.
type StaleOrderJob struct {
	handler commands.CancelStaleOrdersCommandHandler
	ttl     time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewStaleOrderJob creates a new job for cancelling stale orders.
// Uses CancelStaleOrdersCommandHandler to sweep every minute.
func NewStaleOrderJob(
	handler commands.CancelStaleOrdersCommandHandler,
	ttl time.Duration,
	logger *slog.Logger,
) *StaleOrderJob {
	return &StaleOrderJob{
		handler: handler,
		ttl:     ttl,
		cron:    cron.New(),
		logger:  logger.With("component", "stale_order_job"),
	}
}

// Start begins the stale order job to run every minute.
func (j *StaleOrderJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewCancelStaleOrdersCommand(j.ttl)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Stale order job misconfigured", "error", cmdErr)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Stale order job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale order job started (running every minute)")
	return nil
}

// Stop stops the stale order job.
func (j *StaleOrderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale order job stopped")
}
