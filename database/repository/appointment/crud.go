// File: database/repository/appointment/crud.go
package appointmentRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mediflow/models"
)

func (r *mongoAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	now := time.Now()
	if appt.CreatedAt.IsZero() {
		appt.CreatedAt = now
	}
	appt.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, appt)
	return err
}

func (r *mongoAppointmentRepo) GetByBookingID(ctx context.Context, bookingID string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	err := r.coll.FindOne(ctx, bson.M{"bookingId": bookingID}).Decode(&appt)
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *mongoAppointmentRepo) Update(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	appt.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"bookingId": appt.BookingID}, appt)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoAppointmentRepo) Cancel(ctx context.Context, bookingID, reason string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	update := bson.M{"$set": bson.M{
		"status":             models.StatusCancelled,
		"cancelledAt":        now,
		"cancellationReason": reason,
		"updatedAt":          now,
	}}
	filter := bson.M{"bookingId": bookingID, "status": bson.M{"$ne": models.StatusCancelled}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *mongoAppointmentRepo) MarkReminderSent(ctx context.Context, bookingID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx,
		bson.M{"bookingId": bookingID},
		bson.M{"$set": bson.M{"reminderSent": true, "updatedAt": time.Now()}},
		options.Update(),
	)
	return err
}
