package scheduling

import (
	"context"
	"testing"
	"time"

	"mediflow/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-09-01 is a Monday.
var monday = time.Date(2025, 9, 1, 0, 0, 0, 0, time.Local)

func at(base time.Time, hour, min int) time.Time {
	return base.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func TestCalculateSlotsAroundAppointment(t *testing.T) {
	workStart := at(monday, 9, 0)
	workEnd := at(monday, 17, 0)
	appts := []models.Appointment{confirmedAppt("doc-1", at(monday, 10, 0), 30)}

	slots := calculateSlots(workStart, workEnd, appts, 15, 30)

	require.Len(t, slots, 14)
	assert.Equal(t, at(monday, 9, 0), slots[0].Start)
	assert.Equal(t, at(monday, 9, 30), slots[1].Start)
	// The slot after the appointment starts past end + buffer.
	assert.Equal(t, at(monday, 10, 45), slots[2].Start)
	assert.Equal(t, at(monday, 16, 15), slots[len(slots)-1].Start)

	for _, s := range slots {
		assert.False(t, s.Start.Before(workStart), "slot starts before working hours")
		assert.False(t, s.End.After(workEnd), "slot ends after working hours")
		// No slot may intersect the booked interval.
		overlaps := s.Start.Before(appts[0].EndTime) && s.End.After(appts[0].StartTime)
		assert.False(t, overlaps, "slot %v overlaps booked appointment", s.Start)
	}
}

func TestCalculateSlotsEmptyDay(t *testing.T) {
	slots := calculateSlots(at(monday, 9, 0), at(monday, 17, 0), nil, 15, 30)
	// 8 hours / 30 minutes, back to back.
	require.Len(t, slots, 16)
	assert.Equal(t, at(monday, 9, 0), slots[0].Start)
	assert.Equal(t, at(monday, 16, 30), slots[15].Start)
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, slots[i-1].End, slots[i].Start)
	}
}

func TestCalculateSlotsOversizedDuration(t *testing.T) {
	slots := calculateSlots(at(monday, 9, 0), at(monday, 10, 0), nil, 15, 90)
	assert.Empty(t, slots)
}

func TestCalculateSlotsZeroDuration(t *testing.T) {
	assert.Empty(t, calculateSlots(at(monday, 9, 0), at(monday, 17, 0), nil, 15, 0))
}

func TestCalculateSlotsLegacyAppointmentOutsideHours(t *testing.T) {
	// A record lying past the working window must not produce slots
	// beyond the window.
	appts := []models.Appointment{confirmedAppt("doc-1", at(monday, 18, 0), 60)}
	slots := calculateSlots(at(monday, 9, 0), at(monday, 17, 0), appts, 15, 30)
	require.Len(t, slots, 16)
	for _, s := range slots {
		assert.False(t, s.End.After(at(monday, 17, 0)))
	}
}

func TestCalculateSlotsIdempotent(t *testing.T) {
	appts := []models.Appointment{confirmedAppt("doc-1", at(monday, 11, 0), 45)}
	first := calculateSlots(at(monday, 9, 0), at(monday, 17, 0), appts, 15, 30)
	second := calculateSlots(at(monday, 9, 0), at(monday, 17, 0), appts, 15, 30)
	assert.Equal(t, first, second)
}

func TestDayScheduleUnavailableDay(t *testing.T) {
	engine := &DefaultAvailabilityEngine{
		Doctors:      newMemDoctorRepo(weekdayDoctor("doc-1")),
		Appointments: newMemAppointmentRepo(),
	}

	// 2025-09-06 is a Saturday; the test doctor only works weekdays.
	schedule, err := engine.DaySchedule(context.Background(), "doc-1", "2025-09-06", 30)
	require.NoError(t, err)
	assert.False(t, schedule.Available)
	assert.Equal(t, "doctor not available on this day", schedule.Reason)
	assert.Empty(t, schedule.AvailableSlots)
}

func TestDayScheduleDefaultHoursFallback(t *testing.T) {
	unscheduled := weekdayDoctor("doc-1")
	unscheduled.WorkingHours = nil

	engine := &DefaultAvailabilityEngine{
		Doctors:       newMemDoctorRepo(unscheduled),
		Appointments:  newMemAppointmentRepo(),
		BufferMinutes: 15,
	}

	schedule, err := engine.DaySchedule(context.Background(), "doc-1", "2025-09-01", 30)
	require.NoError(t, err)
	assert.True(t, schedule.Available)
	require.NotNil(t, schedule.WorkingHours)
	assert.Equal(t, 9*60, schedule.WorkingHours.StartMinute)
	assert.Equal(t, 17*60, schedule.WorkingHours.EndMinute)
	assert.Len(t, schedule.AvailableSlots, 16)

	// The fallback still keeps weekends closed.
	schedule, err = engine.DaySchedule(context.Background(), "doc-1", "2025-09-07", 30)
	require.NoError(t, err)
	assert.False(t, schedule.Available)
}

func TestDayScheduleCountsOnlyOccupyingStatuses(t *testing.T) {
	repo := newMemAppointmentRepo()
	booked := confirmedAppt("doc-1", at(monday, 10, 0), 30)
	require.NoError(t, repo.Create(context.Background(), &booked))

	cancelled := confirmedAppt("doc-1", at(monday, 13, 0), 30)
	cancelled.BookingID = "APT20250901130001"
	cancelled.Status = models.StatusCancelled
	require.NoError(t, repo.Create(context.Background(), &cancelled))

	engine := &DefaultAvailabilityEngine{
		Doctors:       newMemDoctorRepo(weekdayDoctor("doc-1")),
		Appointments:  repo,
		BufferMinutes: 15,
	}

	schedule, err := engine.DaySchedule(context.Background(), "doc-1", "2025-09-01", 30)
	require.NoError(t, err)
	assert.True(t, schedule.Available)
	assert.Equal(t, 1, schedule.ExistingCount)

	// The cancelled 13:00 range is back on the open timeline.
	var found bool
	for _, s := range schedule.AvailableSlots {
		if s.Start.Before(at(monday, 13, 30)) && s.End.After(at(monday, 13, 0)) {
			found = true
		}
	}
	assert.True(t, found, "cancelled appointment should free its time range")
}

func TestCheckConflict(t *testing.T) {
	repo := newMemAppointmentRepo()
	booked := confirmedAppt("doc-1", at(monday, 10, 0), 30)
	require.NoError(t, repo.Create(context.Background(), &booked))

	engine := &DefaultAvailabilityEngine{
		Doctors:      newMemDoctorRepo(weekdayDoctor("doc-1")),
		Appointments: repo,
	}
	ctx := context.Background()

	conflict, err := engine.CheckConflict(ctx, "doc-1", at(monday, 10, 15), at(monday, 10, 45))
	require.NoError(t, err)
	assert.True(t, conflict, "overlapping range must conflict")

	// Back-to-back is allowed; the checker applies no buffer.
	conflict, err = engine.CheckConflict(ctx, "doc-1", at(monday, 10, 30), at(monday, 11, 0))
	require.NoError(t, err)
	assert.False(t, conflict)

	conflict, err = engine.CheckConflict(ctx, "doc-1", at(monday, 9, 30), at(monday, 10, 0))
	require.NoError(t, err)
	assert.False(t, conflict)
}

func TestCheckConflictIgnoresCancelled(t *testing.T) {
	repo := newMemAppointmentRepo()
	cancelled := confirmedAppt("doc-1", at(monday, 10, 0), 30)
	cancelled.Status = models.StatusCancelled
	require.NoError(t, repo.Create(context.Background(), &cancelled))

	engine := &DefaultAvailabilityEngine{
		Doctors:      newMemDoctorRepo(weekdayDoctor("doc-1")),
		Appointments: repo,
	}

	conflict, err := engine.CheckConflict(context.Background(), "doc-1", at(monday, 10, 0), at(monday, 10, 30))
	require.NoError(t, err)
	assert.False(t, conflict)
}

func TestAvailabilitySummary(t *testing.T) {
	repo := newMemAppointmentRepo()
	booked := confirmedAppt("doc-1", at(monday, 10, 0), 30)
	require.NoError(t, repo.Create(context.Background(), &booked))

	engine := &DefaultAvailabilityEngine{
		Doctors:       newMemDoctorRepo(weekdayDoctor("doc-1")),
		Appointments:  repo,
		BufferMinutes: 15,
	}

	// Monday through Sunday: five working days, two off.
	summary, err := engine.AvailabilitySummary(context.Background(), "doc-1", "2025-09-01", "2025-09-07", 30)
	require.NoError(t, err)
	assert.Equal(t, 7, summary.TotalDays)
	assert.Equal(t, 5, summary.AvailableDays)
	assert.Equal(t, 1, summary.BookedSlots)
	assert.InDelta(t, float64(5)/7*100, summary.AvailabilityRate, 0.01)
}
