package scheduling

import (
	"context"
	"sync"
	"testing"
	"time"

	"mediflow/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2025, 8, 30, 10, 0, 0, 0, time.Local)
}

// newTestBookingService wires the service against in-memory fakes. The
// clock ticks one second per read so consecutive bookings never collide
// on the second-resolution booking id.
func newTestBookingService(repo *memAppointmentRepo) *DefaultBookingService {
	doctors := newMemDoctorRepo(weekdayDoctor("doc-1"))
	engine := &DefaultAvailabilityEngine{
		Doctors:       doctors,
		Appointments:  repo,
		BufferMinutes: 15,
	}
	base := fixedClock()
	var mu sync.Mutex
	return &DefaultBookingService{
		Repo:    repo,
		Doctors: doctors,
		Engine:  engine,
		Now: func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			base = base.Add(time.Second)
			return base
		},
	}
}

func validRequest(start time.Time) models.BookingRequest {
	return models.BookingRequest{
		DoctorID:        "doc-1",
		AppointmentType: "General Consultation",
		StartTime:       start,
		PatientInfo: models.PatientInfo{
			Name:  "John Smith",
			Phone: "555-123-4567",
			Email: "john@email.com",
		},
	}
}

func TestCreateBooking(t *testing.T) {
	repo := newMemAppointmentRepo()
	svc := newTestBookingService(repo)

	appt, err := svc.CreateBooking(context.Background(), validRequest(at(monday, 10, 0)))
	require.NoError(t, err)
	assert.Regexp(t, `^APT\d{14}$`, appt.BookingID)
	assert.Equal(t, models.StatusConfirmed, appt.Status)
	assert.Equal(t, at(monday, 10, 30), appt.EndTime)
	assert.Equal(t, 30, appt.DurationMinutes)

	stored, err := repo.GetByBookingID(context.Background(), appt.BookingID)
	require.NoError(t, err)
	assert.Equal(t, "John Smith", stored.PatientInfo.Name)
}

func TestCreateBookingValidation(t *testing.T) {
	svc := newTestBookingService(newMemAppointmentRepo())
	ctx := context.Background()

	req := validRequest(at(monday, 10, 0))
	req.AppointmentType = "Colonoscopy"
	_, err := svc.CreateBooking(ctx, req)
	assert.True(t, IsValidation(err))

	req = validRequest(at(monday, 10, 0))
	req.PatientInfo.Email = "not-an-email"
	_, err = svc.CreateBooking(ctx, req)
	assert.True(t, IsValidation(err))

	req = validRequest(at(monday, 10, 0))
	req.PatientInfo.Phone = "12345"
	_, err = svc.CreateBooking(ctx, req)
	assert.True(t, IsValidation(err))

	// Bookings in the past are rejected.
	_, err = svc.CreateBooking(ctx, validRequest(fixedClock().Add(-time.Hour)))
	assert.True(t, IsValidation(err))
}

func TestCreateBookingOutsideWorkingHours(t *testing.T) {
	svc := newTestBookingService(newMemAppointmentRepo())
	ctx := context.Background()

	// 18:00 on a weekday is past the doctor's 17:00 close.
	_, err := svc.CreateBooking(ctx, validRequest(at(monday, 18, 0)))
	assert.True(t, IsSlotUnavailable(err))

	// 16:45 start would spill past the close.
	_, err = svc.CreateBooking(ctx, validRequest(at(monday, 16, 45)))
	assert.True(t, IsSlotUnavailable(err))

	// The test doctor does not work Saturdays.
	saturday := monday.Add(5 * 24 * time.Hour)
	_, err = svc.CreateBooking(ctx, validRequest(at(saturday, 10, 0)))
	assert.True(t, IsSlotUnavailable(err))
}

func TestCreateBookingConflict(t *testing.T) {
	repo := newMemAppointmentRepo()
	svc := newTestBookingService(repo)
	ctx := context.Background()

	_, err := svc.CreateBooking(ctx, validRequest(at(monday, 10, 0)))
	require.NoError(t, err)

	// Overlapping range is rejected at commit time.
	_, err = svc.CreateBooking(ctx, validRequest(at(monday, 10, 15)))
	assert.True(t, IsConflict(err))

	// Back-to-back commits fine.
	later := validRequest(at(monday, 10, 30))
	later.PatientInfo.Name = "Jane Doe"
	_, err = svc.CreateBooking(ctx, later)
	assert.NoError(t, err)
}

func TestConcurrentBookingSameSlot(t *testing.T) {
	repo := newMemAppointmentRepo()
	svc := newTestBookingService(repo)

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateBooking(context.Background(), validRequest(at(monday, 10, 0)))
		}(i)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case IsConflict(err):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes, "exactly one commit must win the slot")
	assert.Equal(t, attempts-1, conflicts)
}

func TestCancelBookingFeePolicy(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		wantFee float64
	}{
		{"more than 24h notice", fixedClock().Add(48 * time.Hour), 0},
		{"within 24h", fixedClock().Add(10 * time.Hour), 50},
		{"already started", fixedClock().Add(-time.Hour), 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemAppointmentRepo()
			svc := newTestBookingService(repo)

			appt := confirmedAppt("doc-1", tt.start, 30)
			require.NoError(t, repo.Create(context.Background(), &appt))

			result, err := svc.CancelBooking(context.Background(), appt.BookingID, "schedule change")
			require.NoError(t, err)
			assert.Equal(t, tt.wantFee, result.Fee)
			assert.Equal(t, models.StatusCancelled, result.Appointment.Status)
			assert.NotEmpty(t, result.PolicyMessage)
		})
	}
}

func TestCancelBookingTwice(t *testing.T) {
	repo := newMemAppointmentRepo()
	svc := newTestBookingService(repo)

	appt := confirmedAppt("doc-1", fixedClock().Add(48*time.Hour), 30)
	require.NoError(t, repo.Create(context.Background(), &appt))

	_, err := svc.CancelBooking(context.Background(), appt.BookingID, "first")
	require.NoError(t, err)

	_, err = svc.CancelBooking(context.Background(), appt.BookingID, "second")
	assert.True(t, IsValidation(err))
}

func TestCancelBookingNotFound(t *testing.T) {
	svc := newTestBookingService(newMemAppointmentRepo())
	_, err := svc.CancelBooking(context.Background(), "APT00000000000000", "whatever")
	assert.True(t, IsNotFound(err))
}

func TestCancelledSlotBecomesBookableAgain(t *testing.T) {
	repo := newMemAppointmentRepo()
	svc := newTestBookingService(repo)
	ctx := context.Background()

	first, err := svc.CreateBooking(ctx, validRequest(at(monday, 10, 0)))
	require.NoError(t, err)

	_, err = svc.CreateBooking(ctx, validRequest(at(monday, 10, 0)))
	require.True(t, IsConflict(err))

	_, err = svc.CancelBooking(ctx, first.BookingID, "freed up")
	require.NoError(t, err)

	_, err = svc.CreateBooking(ctx, validRequest(at(monday, 10, 0)))
	assert.NoError(t, err)
}

func TestRescheduleBooking(t *testing.T) {
	repo := newMemAppointmentRepo()
	svc := newTestBookingService(repo)
	ctx := context.Background()

	appt, err := svc.CreateBooking(ctx, validRequest(at(monday, 10, 0)))
	require.NoError(t, err)

	blocker := confirmedAppt("doc-1", at(monday, 14, 0), 30)
	require.NoError(t, repo.Create(ctx, &blocker))

	// Moving onto another booking conflicts.
	_, err = svc.RescheduleBooking(ctx, appt.BookingID, at(monday, 14, 15))
	assert.True(t, IsConflict(err))

	// Moving outside the working window is rejected.
	_, err = svc.RescheduleBooking(ctx, appt.BookingID, at(monday, 18, 0))
	assert.True(t, IsSlotUnavailable(err))

	// The appointment never collides with its own old range.
	moved, err := svc.RescheduleBooking(ctx, appt.BookingID, at(monday, 10, 15))
	require.NoError(t, err)
	assert.Equal(t, at(monday, 10, 15), moved.StartTime)
	require.NotNil(t, moved.RescheduledFrom)
	assert.Equal(t, at(monday, 10, 0), *moved.RescheduledFrom)
	assert.False(t, moved.ReminderSent)

	stored, err := repo.GetByBookingID(ctx, appt.BookingID)
	require.NoError(t, err)
	assert.Equal(t, at(monday, 10, 15), stored.StartTime)
}

func TestRescheduleCancelledBooking(t *testing.T) {
	repo := newMemAppointmentRepo()
	svc := newTestBookingService(repo)
	ctx := context.Background()

	appt := confirmedAppt("doc-1", at(monday, 10, 0), 30)
	appt.Status = models.StatusCancelled
	require.NoError(t, repo.Create(ctx, &appt))

	_, err := svc.RescheduleBooking(ctx, appt.BookingID, at(monday, 11, 0))
	assert.True(t, IsValidation(err))
}

func TestNewBookingIDFormat(t *testing.T) {
	id := NewBookingID(time.Date(2025, 8, 30, 14, 30, 0, 0, time.Local))
	assert.Equal(t, "APT20250830143000", id)
}
