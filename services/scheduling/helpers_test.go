package scheduling

import (
	"context"
	"sync"
	"time"

	"mediflow/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// memAppointmentRepo is a thread-safe in-memory stand-in for the Mongo
// repository.
type memAppointmentRepo struct {
	mu    sync.Mutex
	appts map[string]models.Appointment
}

func newMemAppointmentRepo() *memAppointmentRepo {
	return &memAppointmentRepo{appts: make(map[string]models.Appointment)}
}

func (r *memAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.appts[appt.BookingID]; exists {
		return mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
	}
	r.appts[appt.BookingID] = *appt
	return nil
}

func (r *memAppointmentRepo) GetByBookingID(ctx context.Context, bookingID string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt, ok := r.appts[bookingID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := appt
	return &cp, nil
}

func (r *memAppointmentRepo) ListByDoctorDate(ctx context.Context, doctorID, date string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.appts {
		if a.DoctorID == doctorID && a.StartTime.Format(dateLayout) == date {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memAppointmentRepo) ListByDateRange(ctx context.Context, startDate, endDate string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.appts {
		d := a.CreatedAt.Format(dateLayout)
		if d >= startDate && d <= endDate {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memAppointmentRepo) Update(ctx context.Context, appt *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appts[appt.BookingID]; !ok {
		return mongo.ErrNoDocuments
	}
	r.appts[appt.BookingID] = *appt
	return nil
}

func (r *memAppointmentRepo) Cancel(ctx context.Context, bookingID, reason string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt, ok := r.appts[bookingID]
	if !ok || appt.Status == models.StatusCancelled {
		return false, nil
	}
	appt.Status = models.StatusCancelled
	appt.CancellationReason = reason
	r.appts[bookingID] = appt
	return true, nil
}

func (r *memAppointmentRepo) MarkReminderSent(ctx context.Context, bookingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt, ok := r.appts[bookingID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	appt.ReminderSent = true
	r.appts[bookingID] = appt
	return nil
}

// memDoctorRepo serves a fixed roster.
type memDoctorRepo struct {
	doctors map[string]models.Doctor
}

func newMemDoctorRepo(doctors ...models.Doctor) *memDoctorRepo {
	m := make(map[string]models.Doctor, len(doctors))
	for _, d := range doctors {
		m[d.ID] = d
	}
	return &memDoctorRepo{doctors: m}
}

func (r *memDoctorRepo) GetByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	doc, ok := r.doctors[doctorID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := doc
	return &cp, nil
}

func (r *memDoctorRepo) List(ctx context.Context) ([]models.Doctor, error) {
	var out []models.Doctor
	for _, d := range r.doctors {
		if d.IsActive {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *memDoctorRepo) GetWorkingHours(ctx context.Context, doctorID string) ([]models.WorkingHours, error) {
	doc, err := r.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return doc.WorkingHours, nil
}

func (r *memDoctorRepo) Upsert(ctx context.Context, doc *models.Doctor) error {
	r.doctors[doc.ID] = *doc
	return nil
}

func weekdayDoctor(id string) models.Doctor {
	var hours []models.WorkingHours
	for day := 0; day < 5; day++ {
		hours = append(hours, models.WorkingHours{
			DayOfWeek:   day,
			StartMinute: 9 * 60,
			EndMinute:   17 * 60,
			IsAvailable: true,
		})
	}
	return models.Doctor{
		ID:               id,
		Name:             "Dr. Test",
		Specialty:        "General Medicine",
		AppointmentTypes: []string{"General Consultation", "Follow-up", "Physical Exam", "Specialist Consultation"},
		WorkingHours:     hours,
		IsActive:         true,
	}
}

func confirmedAppt(doctorID string, start time.Time, minutes int) models.Appointment {
	return models.Appointment{
		BookingID:       "APT" + start.Format("20060102150405"),
		DoctorID:        doctorID,
		StartTime:       start,
		EndTime:         start.Add(time.Duration(minutes) * time.Minute),
		DurationMinutes: minutes,
		Status:          models.StatusConfirmed,
		CreatedAt:       start.AddDate(0, 0, -1),
	}
}
