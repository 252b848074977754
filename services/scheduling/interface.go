package scheduling

import (
	"context"
	"time"

	"mediflow/models"
)

// AvailabilityEngine computes open time slots for a doctor and performs
// the strict-overlap conflict check used as the commit-time guard.
type AvailabilityEngine interface {
	// ComputeAvailableSlots returns every open interval of exactly the
	// requested duration on the given date ("YYYY-MM-DD"), chronological.
	ComputeAvailableSlots(ctx context.Context, doctorID, date string, durationMinutes int) ([]models.TimeSlot, error)
	// DaySchedule returns the full availability picture for one date,
	// including the unavailability reason when the doctor is off.
	DaySchedule(ctx context.Context, doctorID, date string, durationMinutes int) (*models.DaySchedule, error)
	// CheckConflict reports whether [start, end) strictly overlaps any
	// existing non-cancelled appointment for the doctor.
	CheckConflict(ctx context.Context, doctorID string, start, end time.Time) (bool, error)
	// AvailabilitySummary aggregates capacity over a date range.
	AvailabilitySummary(ctx context.Context, doctorID, startDate, endDate string, durationMinutes int) (*models.AvailabilitySummary, error)
}

// BookingService is the commit path. Every durable appointment passes
// the conflict check at commit time; the slot list a caller saw earlier
// carries no reservation.
type BookingService interface {
	CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Appointment, error)
	GetBooking(ctx context.Context, bookingID string) (*models.Appointment, error)
	CancelBooking(ctx context.Context, bookingID, reason string) (*models.CancellationResult, error)
	RescheduleBooking(ctx context.Context, bookingID string, newStart time.Time) (*models.Appointment, error)
}

// ConfirmationNotifier delivers post-commit notifications. Calls are
// fire-and-forget; a failure never rolls back the booking.
type ConfirmationNotifier interface {
	SendBookingConfirmation(ctx context.Context, appt *models.Appointment) error
	SendCancellationNotice(ctx context.Context, appt *models.Appointment, fee float64, policy string) error
}

// ReminderScheduler enqueues an appointment reminder to fire ahead of
// the start time.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, appt *models.Appointment) error
}
