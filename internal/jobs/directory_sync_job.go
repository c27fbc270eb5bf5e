package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DirectorySyncJobName is the name of the HR directory sync job
const DirectorySyncJobName = "directory_sync"

// DefaultDirectorySyncTimeout bounds a single sync run
const DefaultDirectorySyncTimeout = 10 * time.Minute

// EmployeeSyncService defines the interface for syncing employees from the
// HR directory. The interface lets the job call the service without
// importing the service package directly.
type EmployeeSyncService interface {
	// SyncAllCompanies syncs employees for every directory-linked company.
	// Returns counts for successfully synced and failed employees.
	SyncAllCompanies(ctx context.Context) (synced int, failed int, err error)
}

// DirectorySyncJob runs the HR directory employee sync for all
// directory-linked companies.
type DirectorySyncJob struct {
	syncService EmployeeSyncService
	logger      *zap.Logger
	timeout     time.Duration
}

// NewDirectorySyncJob creates a new directory sync job.
// The timeout controls how long the sync operation is allowed to run.
func NewDirectorySyncJob(syncService EmployeeSyncService, logger *zap.Logger, timeout time.Duration) *DirectorySyncJob {
	return &DirectorySyncJob{
		syncService: syncService,
		logger:      logger,
		timeout:     timeout,
	}
}

// Run executes the directory sync job.
// This is called by the scheduler according to the cron expression.
func (j *DirectorySyncJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	j.logger.Info("starting HR directory sync job")

	synced, failed, err := j.syncService.SyncAllCompanies(ctx)
	if err != nil {
		j.logger.Error("HR directory sync failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("HR directory sync job completed",
		zap.Int("employees_synced", synced),
		zap.Int("employees_failed", failed),
		zap.Duration("duration", time.Since(start)))
}

// RegisterDirectorySyncJob registers the HR directory sync job with the
// scheduler. The cronExpr must include the seconds field
// (e.g. "0 0 3 * * *" for 03:00 every day).
func RegisterDirectorySyncJob(scheduler *Scheduler, syncService EmployeeSyncService, logger *zap.Logger, cronExpr string) error {
	job := NewDirectorySyncJob(syncService, logger, DefaultDirectorySyncTimeout)
	return scheduler.AddJob(DirectorySyncJobName, cronExpr, job.Run)
}
