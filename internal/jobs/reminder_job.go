package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ReminderJobName is the name of the step deadline reminder job
const ReminderJobName = "step_deadline_reminders"

// DefaultReminderTimeout bounds a single reminder run
const DefaultReminderTimeout = 5 * time.Minute

// DeadlineReminderService defines the interface for sending step deadline
// reminders for active review cycles.
type DeadlineReminderService interface {
	// SendStepDeadlineReminders notifies reviewers with outstanding work on
	// steps closing within leadDays. Returns the number of reminders sent.
	SendStepDeadlineReminders(ctx context.Context, leadDays int) (notified int, err error)
}

// ReminderJob sends deadline reminders for review steps that are about
// to close.
type ReminderJob struct {
	reminderService DeadlineReminderService
	logger          *zap.Logger
	leadDays        int
	timeout         time.Duration
}

// NewReminderJob creates a new reminder job.
func NewReminderJob(reminderService DeadlineReminderService, logger *zap.Logger, leadDays int, timeout time.Duration) *ReminderJob {
	return &ReminderJob{
		reminderService: reminderService,
		logger:          logger,
		leadDays:        leadDays,
		timeout:         timeout,
	}
}

// Run executes the reminder job.
// This is called by the scheduler according to the cron expression.
func (j *ReminderJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	j.logger.Info("starting step deadline reminder job",
		zap.Int("lead_days", j.leadDays))

	notified, err := j.reminderService.SendStepDeadlineReminders(ctx, j.leadDays)
	if err != nil {
		j.logger.Error("step deadline reminder job failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("step deadline reminder job completed",
		zap.Int("reminders_sent", notified),
		zap.Duration("duration", time.Since(start)))
}

// RegisterReminderJob registers the step deadline reminder job with the
// scheduler. The cronExpr must include the seconds field
// (e.g. "0 0 8 * * *" for 08:00 every day).
func RegisterReminderJob(scheduler *Scheduler, reminderService DeadlineReminderService, logger *zap.Logger, cronExpr string, leadDays int) error {
	job := NewReminderJob(reminderService, logger, leadDays, DefaultReminderTimeout)
	return scheduler.AddJob(ReminderJobName, cronExpr, job.Run)
}
