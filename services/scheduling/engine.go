package scheduling

import (
	"context"
	"fmt"
	"sort"
	"time"

	appointmentRepo "mediflow/database/repository/appointment"
	doctorRepo "mediflow/database/repository/doctor"
	"mediflow/models"
	"mediflow/utils"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// DefaultAvailabilityEngine computes open slots from working hours and
// the doctor's existing appointments. The computation itself is pure;
// the repositories are the only suspension points.
type DefaultAvailabilityEngine struct {
	Doctors       doctorRepo.DoctorRepository
	Appointments  appointmentRepo.AppointmentRepository
	BufferMinutes int // used when the doctor record carries no buffer
}

// clinicWeekday maps time.Weekday (Sunday=0) onto the scheduling
// convention 0=Monday .. 6=Sunday.
func clinicWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// defaultHours is the fallback schedule for a doctor record carrying no
// working hours: weekdays 09:00 to 17:00, weekends off.
func defaultHours(dayOfWeek int) *models.WorkingHours {
	if dayOfWeek >= 5 {
		return nil
	}
	return &models.WorkingHours{
		DayOfWeek:   dayOfWeek,
		StartMinute: 9 * 60,
		EndMinute:   17 * 60,
		IsAvailable: true,
	}
}

func (e *DefaultAvailabilityEngine) bufferFor(doc *models.Doctor) int {
	if doc.BufferTimeMinutes > 0 {
		return doc.BufferTimeMinutes
	}
	return e.BufferMinutes
}

func (e *DefaultAvailabilityEngine) ComputeAvailableSlots(ctx context.Context, doctorID, date string, durationMinutes int) ([]models.TimeSlot, error) {
	schedule, err := e.DaySchedule(ctx, doctorID, date, durationMinutes)
	if err != nil {
		return nil, err
	}
	return schedule.AvailableSlots, nil
}

func (e *DefaultAvailabilityEngine) DaySchedule(ctx context.Context, doctorID, date string, durationMinutes int) (*models.DaySchedule, error) {
	day, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	doc, err := e.Doctors.GetByID(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("fetch doctor %s: %w", doctorID, err)
	}

	wh := doc.HoursFor(clinicWeekday(day))
	if wh == nil && len(doc.WorkingHours) == 0 {
		// Doctors with no recorded schedule get the standard weekday clinic hours.
		wh = defaultHours(clinicWeekday(day))
	}
	if wh == nil {
		return &models.DaySchedule{
			Available: false,
			Reason:    "doctor not available on this day",
		}, nil
	}

	appts, err := e.Appointments.ListByDoctorDate(ctx, doctorID, date)
	if err != nil {
		return nil, fmt.Errorf("fetch appointments for %s on %s: %w", doctorID, date, err)
	}
	occupied := occupyingAppointments(appts)

	workStart := day.Add(time.Duration(wh.StartMinute) * time.Minute)
	workEnd := day.Add(time.Duration(wh.EndMinute) * time.Minute)
	slots := calculateSlots(workStart, workEnd, occupied, e.bufferFor(doc), durationMinutes)

	utils.GetLogger().Debug("computed day schedule",
		zap.String("doctorID", doctorID),
		zap.String("date", date),
		zap.Int("existing", len(occupied)),
		zap.Int("slots", len(slots)))

	return &models.DaySchedule{
		Available:      true,
		WorkingHours:   wh,
		AvailableSlots: slots,
		ExistingCount:  len(occupied),
	}, nil
}

// occupyingAppointments filters to the statuses that occupy time on the
// free timeline and sorts them ascending by start.
func occupyingAppointments(appts []models.Appointment) []models.Appointment {
	var out []models.Appointment
	for _, a := range appts {
		if a.Status == models.StatusConfirmed || a.Status == models.StatusCompleted {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}

// calculateSlots walks a cursor across the working window, emitting
// back-to-back slots of the requested duration in each gap and skipping
// past every appointment plus the trailing buffer. Appointments must be
// sorted ascending; appointments lying outside the window (legacy data)
// still push the cursor and are thereby subtracted from the timeline.
func calculateSlots(workStart, workEnd time.Time, appts []models.Appointment, bufferMinutes, durationMinutes int) []models.TimeSlot {
	if durationMinutes <= 0 || !workStart.Before(workEnd) {
		return nil
	}
	duration := time.Duration(durationMinutes) * time.Minute
	buffer := time.Duration(bufferMinutes) * time.Minute

	var slots []models.TimeSlot
	cursor := workStart

	for _, appt := range appts {
		for !cursor.Add(duration).After(appt.StartTime) && !cursor.Add(duration).After(workEnd) {
			slots = append(slots, models.TimeSlot{Start: cursor, End: cursor.Add(duration)})
			cursor = cursor.Add(duration)
		}
		if padded := appt.EndTime.Add(buffer); padded.After(cursor) {
			cursor = padded
		}
	}

	for !cursor.Add(duration).After(workEnd) {
		slots = append(slots, models.TimeSlot{Start: cursor, End: cursor.Add(duration)})
		cursor = cursor.Add(duration)
	}

	return slots
}

// CheckConflict is the minimal commit-time guard: a strict overlap test
// against every non-cancelled appointment. Back-to-back bookings do not
// conflict and no buffer is applied here; the slot generator is the
// conservative side, the checker only prevents double-booking.
func (e *DefaultAvailabilityEngine) CheckConflict(ctx context.Context, doctorID string, start, end time.Time) (bool, error) {
	appts, err := e.Appointments.ListByDoctorDate(ctx, doctorID, start.Format(dateLayout))
	if err != nil {
		return false, fmt.Errorf("fetch appointments for conflict check: %w", err)
	}
	return hasOverlap(start, end, appts), nil
}

func hasOverlap(start, end time.Time, appts []models.Appointment) bool {
	for i := range appts {
		a := &appts[i]
		if !a.Active() {
			continue
		}
		if start.Before(a.EndTime) && end.After(a.StartTime) {
			return true
		}
	}
	return false
}
