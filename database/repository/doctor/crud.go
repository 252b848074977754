// File: database/repository/doctor/crud.go
package doctorRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mediflow/models"
)

func (r *mongoDoctorRepo) GetByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc models.Doctor
	err := r.coll.FindOne(ctx, bson.M{"id": doctorID}).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *mongoDoctorRepo) List(ctx context.Context) ([]models.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"isActive": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []models.Doctor
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *mongoDoctorRepo) GetWorkingHours(ctx context.Context, doctorID string) ([]models.WorkingHours, error) {
	doc, err := r.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return doc.WorkingHours, nil
}

func (r *mongoDoctorRepo) Upsert(ctx context.Context, doc *models.Doctor) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	opts := options.Replace().SetUpsert(true)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"id": doc.ID}, doc, opts)
	return err
}
