// FILE: database/repository/appointment/indexes.go
package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"mediflow/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the appointments
// collection. Called once on startup.
func EnsureIndexes() error {
	r := &mongoAppointmentRepo{coll: database.DB().Collection("appointments")}
	return r.ensureIndexes()
}

func (r *mongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Unique index on the patient-facing booking id
		{
			Keys:    bson.D{{Key: "bookingId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_booking_id"),
		},
		// Compound index for doctorId and startTime (primary query pattern)
		{
			Keys:    bson.D{{Key: "doctorId", Value: 1}, {Key: "startTime", Value: 1}},
			Options: options.Index().SetName("doctor_start_idx"),
		},
		// Index for analytics range scans over creation time
		{
			Keys:    bson.D{{Key: "createdAt", Value: 1}},
			Options: options.Index().SetName("created_at_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}
	return nil
}
