package jobs

import (
	"context"
	"log/slog"

	"grocery/internal/adapters/out/notify"

	"github.com/robfig/cron/v3"
)

// NotificationDispatchJob periodically drains the notification outbox and
// delivers the batch. Delivery is the structured log stream; a real channel
// (push, SMS) would slot in behind the same drain loop.
type NotificationDispatchJob struct {
	outbox *notify.Outbox
	cron   *cron.Cron
	logger *slog.Logger
}

// NewNotificationDispatchJob creates a job draining the given outbox every
// five seconds.
func NewNotificationDispatchJob(outbox *notify.Outbox, logger *slog.Logger) *NotificationDispatchJob {
	return &NotificationDispatchJob{
		outbox: outbox,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "notification_dispatch_job"),
	}
}

// Start begins the dispatch job.
func (j *NotificationDispatchJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", func() {
		ctx := context.Background()
		for _, n := range j.outbox.Drain() {
			j.logger.InfoContext(ctx, "Notification delivered",
				"kind", n.Kind,
				"order_id", n.OrderID.String(),
				"customer_id", n.CustomerID.String(),
				"message", n.Message,
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification dispatch job started (running every 5 seconds)")
	return nil
}

// Stop stops the dispatch job.
func (j *NotificationDispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Notification dispatch job stopped")
}
