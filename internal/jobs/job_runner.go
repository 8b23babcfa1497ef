package jobs

import (
	"carrental-backend/internal/logger"
	"carrental-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	rentals service.RentalService
	now     service.Clock
}

// NewJobRunner creates a new job runner; a nil clock means UTC wall time
func NewJobRunner(rentals service.RentalService, now service.Clock) *JobRunner {
	if now == nil {
		now = service.UTCClock
	}
	return &JobRunner{
		rentals: rentals,
		now:     now,
	}
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.FleetSnapshot()
}
