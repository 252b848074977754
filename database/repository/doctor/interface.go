// File: database/repository/doctor/interface.go
package doctorRepo

import (
	"context"

	"mediflow/database"
	"mediflow/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// DoctorRepository exposes the static doctor reference data, including
// per-weekday working hours. Working hours are never mutated by bookings.
type DoctorRepository interface {
	GetByID(ctx context.Context, doctorID string) (*models.Doctor, error)
	List(ctx context.Context) ([]models.Doctor, error)
	GetWorkingHours(ctx context.Context, doctorID string) ([]models.WorkingHours, error)
	Upsert(ctx context.Context, doc *models.Doctor) error
}

type mongoDoctorRepo struct {
	coll *mongo.Collection
}

// NewMongoDoctorRepo constructs a new MongoDB DoctorRepository.
func NewMongoDoctorRepo() DoctorRepository {
	return &mongoDoctorRepo{
		coll: database.DB().Collection("doctors"),
	}
}
