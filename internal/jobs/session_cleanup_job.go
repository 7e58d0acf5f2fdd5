package jobs

import (
	"context"
	"log/slog"
	"time"

	"grocery/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// SessionTTL is how long a checkout session may sit untouched before the
// sweeper drops it.
const SessionTTL = 30 * time.Minute

// SessionCleanupJob periodically removes checkout sessions whose customers
// walked away.
type SessionCleanupJob struct {
	sessions ports.SessionStore
	ttl      time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewSessionCleanupJob creates a job sweeping the session store once a
// minute.
func NewSessionCleanupJob(sessions ports.SessionStore, ttl time.Duration, logger *slog.Logger) *SessionCleanupJob {
	return &SessionCleanupJob{
		sessions: sessions,
		ttl:      ttl,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "session_cleanup_job"),
	}
}

// Start begins the cleanup job.
func (j *SessionCleanupJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		removed, purgeErr := j.sessions.PurgeExpired(ctx, time.Now(), j.ttl)
		if purgeErr != nil {
			j.logger.ErrorContext(ctx, "Session cleanup job failed", "error", purgeErr)
			return
		}

		if removed > 0 {
			j.logger.InfoContext(ctx, "Expired checkout sessions removed", "count", removed)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session cleanup job started (running every minute)")
	return nil
}

// Stop stops the cleanup job.
func (j *SessionCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Session cleanup job stopped")
}
