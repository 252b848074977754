// File: database/repository/appointment/interface.go
package appointmentRepo

import (
	"context"

	"mediflow/database"
	"mediflow/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AppointmentRepository is the persistence contract the scheduling core
// depends on. The core assumes nothing about the backing technology
// beyond these operations.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByBookingID(ctx context.Context, bookingID string) (*models.Appointment, error)
	ListByDoctorDate(ctx context.Context, doctorID, date string) ([]models.Appointment, error)
	ListByDateRange(ctx context.Context, startDate, endDate string) ([]models.Appointment, error)
	Update(ctx context.Context, appt *models.Appointment) error
	Cancel(ctx context.Context, bookingID, reason string) (bool, error)
	MarkReminderSent(ctx context.Context, bookingID string) error
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new MongoDB AppointmentRepository.
func NewMongoAppointmentRepo() AppointmentRepository {
	return &mongoAppointmentRepo{
		coll: database.DB().Collection("appointments"),
	}
}
