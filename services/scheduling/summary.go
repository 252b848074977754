package scheduling

import (
	"context"
	"fmt"
	"time"

	"mediflow/models"
)

// AvailabilitySummary rolls up per-day capacity for a doctor across an
// inclusive date range.
func (e *DefaultAvailabilityEngine) AvailabilitySummary(ctx context.Context, doctorID, startDate, endDate string, durationMinutes int) (*models.AvailabilitySummary, error) {
	from, err := time.ParseInLocation(dateLayout, startDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	to, err := time.ParseInLocation(dateLayout, endDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("end date %s precedes start date %s", endDate, startDate)
	}

	summary := &models.AvailabilitySummary{StartDate: startDate, EndDate: endDate}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		schedule, err := e.DaySchedule(ctx, doctorID, d.Format(dateLayout), durationMinutes)
		if err != nil {
			return nil, err
		}
		summary.TotalDays++
		if schedule.Available {
			summary.AvailableDays++
			summary.TotalSlots += len(schedule.AvailableSlots) + schedule.ExistingCount
			summary.BookedSlots += schedule.ExistingCount
		}
	}

	if summary.TotalDays > 0 {
		summary.AvailabilityRate = float64(summary.AvailableDays) / float64(summary.TotalDays) * 100
	}
	if summary.TotalSlots > 0 {
		summary.UtilizationRate = float64(summary.BookedSlots) / float64(summary.TotalSlots) * 100
	}
	return summary, nil
}
