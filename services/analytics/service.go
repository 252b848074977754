package analytics

import (
	"context"
	"time"

	appointmentRepo "mediflow/database/repository/appointment"
	"mediflow/models"
)

const dateLayout = "2006-01-02"

// DefaultWindowDays is the metrics window when no range is given.
const DefaultWindowDays = 30

// Service rolls appointment records up into operational metrics.
type Service struct {
	Repo appointmentRepo.AppointmentRepository

	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Metrics aggregates appointments created within [startDate, endDate].
// Empty bounds default to the trailing DefaultWindowDays window.
func (s *Service) Metrics(ctx context.Context, startDate, endDate string) (*models.AppointmentMetrics, error) {
	if endDate == "" {
		endDate = s.now().Format(dateLayout)
	}
	if startDate == "" {
		startDate = s.now().AddDate(0, 0, -DefaultWindowDays).Format(dateLayout)
	}

	appts, err := s.Repo.ListByDateRange(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	m := &models.AppointmentMetrics{
		StartDate:   startDate,
		EndDate:     endDate,
		ByType:      make(map[string]int),
		ByDoctor:    make(map[string]int),
		DailyCounts: make(map[string]int),
	}
	for i := range appts {
		a := &appts[i]
		m.TotalAppointments++
		switch a.Status {
		case models.StatusConfirmed:
			m.Confirmed++
		case models.StatusCancelled:
			m.Cancelled++
		case models.StatusCompleted:
			m.Completed++
		}
		m.ByType[a.AppointmentType]++
		if a.DoctorName != "" {
			m.ByDoctor[a.DoctorName]++
		}
		m.DailyCounts[a.CreatedAt.Format(dateLayout)]++
	}
	if m.TotalAppointments > 0 {
		m.CancellationRate = float64(m.Cancelled) / float64(m.TotalAppointments) * 100
	}
	return m, nil
}
