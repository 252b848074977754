package scheduling

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	appointmentRepo "mediflow/database/repository/appointment"
	doctorRepo "mediflow/database/repository/doctor"
	"mediflow/models"
	"mediflow/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// BookingIDPrefix prefixes every patient-facing confirmation number.
const BookingIDPrefix = "APT"

// NewBookingID derives a confirmation number from the wall clock
// (prefix + YYYYMMDDHHMMSS). Two completions within the same second can
// collide; the uniqueness strategy is an open gap, backstopped by the
// unique index on bookingId.
func NewBookingID(now time.Time) string {
	return BookingIDPrefix + now.Format("20060102150405")
}

// DefaultBookingService is the commit path for appointments. Creation
// follows a two-phase discipline: the slot a caller selected was
// computed optimistically, so the conflict check re-runs against the
// latest persisted set under a per-doctor lock before anything is
// written.
type DefaultBookingService struct {
	Repo     appointmentRepo.AppointmentRepository
	Doctors  doctorRepo.DoctorRepository
	Engine   AvailabilityEngine
	Notifier ConfirmationNotifier
	Reminder ReminderScheduler

	Now func() time.Time // injectable clock, defaults to time.Now

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// doctorLock serializes commit attempts for one doctor.
func (s *DefaultBookingService) doctorLock(doctorID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks == nil {
		s.locks = make(map[string]*sync.Mutex)
	}
	l, ok := s.locks[doctorID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[doctorID] = l
	}
	return l
}

func (s *DefaultBookingService) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Appointment, error) {
	logger := utils.GetLogger()

	duration, ok := models.DurationForType(req.AppointmentType)
	if !ok {
		return nil, NewValidationError(fmt.Sprintf("appointment type %q is not available", req.AppointmentType))
	}
	if err := validatePatientInfo(req.PatientInfo); err != nil {
		return nil, err
	}
	if !req.StartTime.After(s.now()) {
		return nil, NewValidationError("cannot book appointments in the past")
	}

	doc, err := s.Doctors.GetByID(ctx, req.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("fetch doctor %s: %w", req.DoctorID, err)
	}
	if len(doc.AppointmentTypes) > 0 && !doc.OffersType(req.AppointmentType) {
		return nil, NewValidationError(fmt.Sprintf("%s does not offer %s", doc.Name, req.AppointmentType))
	}

	start := req.StartTime
	end := start.Add(time.Duration(duration) * time.Minute)
	if !withinWorkingHours(doc, start, end) {
		return nil, NewSlotUnavailableError(fmt.Sprintf("%s is outside %s's working hours", start.Format(time.RFC3339), doc.Name))
	}

	// Phase two: re-check against the latest persisted set under the
	// doctor's lock, then insert. Nothing is durably recorded without
	// passing this check.
	lock := s.doctorLock(req.DoctorID)
	lock.Lock()
	defer lock.Unlock()

	conflict, err := s.Engine.CheckConflict(ctx, req.DoctorID, start, end)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, NewConflictError(fmt.Sprintf("slot %s is no longer available", start.Format(time.RFC3339)))
	}

	now := s.now()
	appt := &models.Appointment{
		BookingID:       NewBookingID(now),
		DoctorID:        doc.ID,
		DoctorName:      doc.Name,
		AppointmentType: req.AppointmentType,
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: duration,
		PatientInfo:     req.PatientInfo,
		Status:          models.StatusConfirmed,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Repo.Create(ctx, appt); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, NewConflictError("booking id collision, please retry")
		}
		return nil, fmt.Errorf("persist appointment: %w", err)
	}

	logger.Info("booking committed",
		zap.String("bookingID", appt.BookingID),
		zap.String("doctorID", appt.DoctorID),
		zap.Time("start", appt.StartTime))

	s.dispatchPostCommit(appt)
	return appt, nil
}

// dispatchPostCommit fires the confirmation email and reminder enqueue.
// Failures are logged and never surface to the caller.
func (s *DefaultBookingService) dispatchPostCommit(appt *models.Appointment) {
	logger := utils.GetLogger()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if s.Notifier != nil {
			if err := s.Notifier.SendBookingConfirmation(ctx, appt); err != nil {
				logger.Warn("confirmation notification failed",
					zap.String("bookingID", appt.BookingID), zap.Error(err))
			}
		}
		if s.Reminder != nil {
			if err := s.Reminder.ScheduleReminder(ctx, appt); err != nil {
				logger.Warn("reminder enqueue failed",
					zap.String("bookingID", appt.BookingID), zap.Error(err))
			}
		}
	}()
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, bookingID string) (*models.Appointment, error) {
	appt, err := s.Repo.GetByBookingID(ctx, bookingID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, NewNotFoundError(fmt.Sprintf("appointment %s not found", bookingID))
		}
		return nil, err
	}
	return appt, nil
}

// CancelBooking applies the clinic's cancellation policy: free with 24+
// hours notice, $50 within 24 hours, $100 at or past the start time.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, bookingID, reason string) (*models.CancellationResult, error) {
	appt, err := s.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if appt.Status == models.StatusCancelled {
		return nil, NewValidationError("appointment is already cancelled")
	}

	hoursUntil := appt.StartTime.Sub(s.now()).Hours()
	var fee float64
	var policy string
	switch {
	case hoursUntil <= 0:
		fee = 100
		policy = "Same-day cancellation: $100 fee applies"
	case hoursUntil < 24:
		fee = 50
		policy = "Late cancellation (within 24 hours): $50 fee applies"
	default:
		policy = "Cancelled more than 24 hours in advance: No fee"
	}

	ok, err := s.Repo.Cancel(ctx, bookingID, reason)
	if err != nil {
		return nil, fmt.Errorf("cancel appointment: %w", err)
	}
	if !ok {
		return nil, NewValidationError("appointment is already cancelled")
	}

	now := s.now()
	appt.Status = models.StatusCancelled
	appt.CancelledAt = &now
	appt.CancellationReason = reason

	if s.Notifier != nil {
		go func(a models.Appointment) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.Notifier.SendCancellationNotice(ctx, &a, fee, policy); err != nil {
				utils.GetLogger().Warn("cancellation notice failed",
					zap.String("bookingID", a.BookingID), zap.Error(err))
			}
		}(*appt)
	}

	return &models.CancellationResult{Appointment: appt, Fee: fee, PolicyMessage: policy}, nil
}

// RescheduleBooking moves the appointment to a new start, re-running the
// conflict check for the new range. The record keeps its booking id; the
// prior time range stops occupying the timeline once updated.
func (s *DefaultBookingService) RescheduleBooking(ctx context.Context, bookingID string, newStart time.Time) (*models.Appointment, error) {
	appt, err := s.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if appt.Status == models.StatusCancelled {
		return nil, NewValidationError("cannot reschedule a cancelled appointment")
	}
	if !newStart.After(s.now()) {
		return nil, NewValidationError("cannot reschedule into the past")
	}

	newEnd := newStart.Add(time.Duration(appt.DurationMinutes) * time.Minute)

	doc, err := s.Doctors.GetByID(ctx, appt.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("fetch doctor %s: %w", appt.DoctorID, err)
	}
	if !withinWorkingHours(doc, newStart, newEnd) {
		return nil, NewSlotUnavailableError(fmt.Sprintf("%s is outside %s's working hours", newStart.Format(time.RFC3339), doc.Name))
	}

	lock := s.doctorLock(appt.DoctorID)
	lock.Lock()
	defer lock.Unlock()

	appts, err := s.Repo.ListByDoctorDate(ctx, appt.DoctorID, newStart.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("fetch appointments for reschedule check: %w", err)
	}
	// The record being moved must not collide with itself.
	others := appts[:0:0]
	for _, a := range appts {
		if a.BookingID != appt.BookingID {
			others = append(others, a)
		}
	}
	if hasOverlap(newStart, newEnd, others) {
		return nil, NewConflictError(fmt.Sprintf("slot %s is no longer available", newStart.Format(time.RFC3339)))
	}

	oldStart := appt.StartTime
	appt.StartTime = newStart
	appt.EndTime = newEnd
	appt.RescheduledFrom = &oldStart
	appt.ReminderSent = false
	if err := s.Repo.Update(ctx, appt); err != nil {
		return nil, fmt.Errorf("persist reschedule: %w", err)
	}

	utils.GetLogger().Info("booking rescheduled",
		zap.String("bookingID", appt.BookingID),
		zap.Time("from", oldStart),
		zap.Time("to", newStart))

	s.dispatchPostCommit(appt)
	return appt, nil
}

// withinWorkingHours reports whether [start, end) fits inside the
// doctor's working window for that day. Doctors with no recorded
// schedule get the standard weekday clinic hours, matching the
// availability engine.
func withinWorkingHours(doc *models.Doctor, start, end time.Time) bool {
	wh := doc.HoursFor(clinicWeekday(start))
	if wh == nil && len(doc.WorkingHours) == 0 {
		wh = defaultHours(clinicWeekday(start))
	}
	if wh == nil {
		return false
	}
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	workStart := day.Add(time.Duration(wh.StartMinute) * time.Minute)
	workEnd := day.Add(time.Duration(wh.EndMinute) * time.Minute)
	return !start.Before(workStart) && !end.After(workEnd)
}

func validatePatientInfo(info models.PatientInfo) error {
	if strings.TrimSpace(info.Name) == "" {
		return NewValidationError("patient name is required")
	}
	if !strings.Contains(info.Email, "@") {
		return NewValidationError("invalid email format")
	}
	digits := 0
	for _, r := range info.Phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < 10 {
		return NewValidationError("phone number must be at least 10 digits")
	}
	return nil
}
