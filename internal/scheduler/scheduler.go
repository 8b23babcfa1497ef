package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"carrental-backend/internal/jobs"
	"carrental-backend/internal/logger"
)

// DefaultFleetSnapshot runs at the top of every hour
const DefaultFleetSnapshot = "0 0 * * * *"

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a scheduler running the fleet snapshot on the given
// six-field cron expression
func NewScheduler(jobRunner *jobs.JobRunner, fleetSnapshot string) (*Scheduler, error) {
	// Create cron with UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	if fleetSnapshot == "" {
		fleetSnapshot = DefaultFleetSnapshot
	}
	if _, err := s.cron.AddFunc(fleetSnapshot, s.jobs.FleetSnapshot); err != nil {
		logger.Error("Failed to register FleetSnapshot job", "error", err)
		return nil, fmt.Errorf("invalid fleet snapshot schedule %q: %w", fleetSnapshot, err)
	}

	logger.Info("All cron jobs registered successfully", "fleet_snapshot", fleetSnapshot)
	return s, nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if the scheduler has jobs registered
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
