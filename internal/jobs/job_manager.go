package jobs

import (
	"fmt"
	"log/slog"

	"grocery/internal/adapters/out/notify"
	"grocery/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	notificationDispatchJob *NotificationDispatchJob
	sessionCleanupJob       *SessionCleanupJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	outbox *notify.Outbox,
	sessions ports.SessionStore,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		notificationDispatchJob: NewNotificationDispatchJob(outbox, logger),
		sessionCleanupJob:       NewSessionCleanupJob(sessions, SessionTTL, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.notificationDispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start notification dispatch job: %w", err)
	}

	if err := jm.sessionCleanupJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.notificationDispatchJob.Stop()
		return fmt.Errorf("failed to start session cleanup job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.sessionCleanupJob.Stop()
	jm.notificationDispatchJob.Stop()
}
