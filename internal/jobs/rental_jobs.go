package jobs

import (
	"context"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/metrics"
	"carrental-backend/internal/utils"
)

// FleetReport summarizes the rentals collection at one instant
type FleetReport struct {
	ByStatus map[domain.RentalStatus]int
	Overdue  []domain.Rental
}

// Snapshot counts rentals per status and lists active rentals whose end
// date lies before today. It never modifies a rental.
func (jr *JobRunner) Snapshot(ctx context.Context) (*FleetReport, error) {
	rentals, err := jr.rentals.ListRentals(ctx)
	if err != nil {
		return nil, err
	}

	now := jr.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	report := &FleetReport{ByStatus: make(map[domain.RentalStatus]int)}
	for _, r := range rentals {
		report.ByStatus[r.Status]++
		if r.Status != domain.RentalStatusReserved && r.Status != domain.RentalStatusRented {
			continue
		}
		end, err := utils.ParseDate("end", r.End)
		if err != nil {
			logger.Warn("Skipping rental with unreadable end date", "rental_id", r.ID, "end", r.End)
			continue
		}
		if end.Before(today) {
			report.Overdue = append(report.Overdue, r)
		}
	}
	return report, nil
}

// FleetSnapshot publishes the fleet report to metrics and the log
func (jr *JobRunner) FleetSnapshot() {
	jr.runWithRecovery("FleetSnapshot", func() {
		report, err := jr.Snapshot(context.Background())
		if err != nil {
			logger.Error("Failed to snapshot rentals", "error", err)
			return
		}

		for _, status := range domain.AllRentalStatuses {
			metrics.RentalsByStatus.WithLabelValues(string(status)).Set(float64(report.ByStatus[status]))
		}
		metrics.OverdueRentals.Set(float64(len(report.Overdue)))

		logger.Info("Fleet snapshot", "overdue", len(report.Overdue), "by_status", report.ByStatus)
		for _, r := range report.Overdue {
			logger.Warn("Rental overdue",
				"rental_id", r.ID,
				"car", r.Car,
				"status", r.Status,
				"end_date", r.End)
		}
	})
}
