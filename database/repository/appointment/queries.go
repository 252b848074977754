// File: database/repository/appointment/queries.go
package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mediflow/models"
)

const dateLayout = "2006-01-02"

// ListByDoctorDate returns every appointment for the doctor whose start
// time falls on the given calendar date, sorted ascending by start time.
// All statuses are included; callers filter by status as needed.
func (r *mongoAppointmentRepo) ListByDoctorDate(ctx context.Context, doctorID, date string) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	dayStart, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	dayEnd := dayStart.AddDate(0, 0, 1)

	filter := bson.M{
		"doctorId":  doctorID,
		"startTime": bson.M{"$gte": dayStart, "$lt": dayEnd},
	}
	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

// ListByDateRange returns appointments created within [startDate, endDate],
// both "YYYY-MM-DD", used by the analytics rollup.
func (r *mongoAppointmentRepo) ListByDateRange(ctx context.Context, startDate, endDate string) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	from, err := time.ParseInLocation(dateLayout, startDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	to, err := time.ParseInLocation(dateLayout, endDate, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}
	to = to.AddDate(0, 0, 1)

	filter := bson.M{"createdAt": bson.M{"$gte": from, "$lt": to}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}
