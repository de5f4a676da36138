package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/spec-kit/hospital-service/internal/domain"
	"github.com/spec-kit/hospital-service/internal/persistence"
)

// MedicalRecordRepository manages medical history persistence.
type MedicalRecordRepository interface {
	Create(ctx context.Context, record *domain.MedicalRecord) error
	ListByPatient(ctx context.Context, patientID primitive.ObjectID) ([]domain.MedicalRecord, error)
}

type medicalRecordRepository struct {
	db *mongo.Database
}

// NewMedicalRecordRepository builds the repository.
func NewMedicalRecordRepository(db *mongo.Database) MedicalRecordRepository {
	return &medicalRecordRepository{db: db}
}

func (r *medicalRecordRepository) collection() *mongo.Collection {
	return r.db.Collection(persistence.CollectionMedicalRecords)
}

func (r *medicalRecordRepository) Create(ctx context.Context, record *domain.MedicalRecord) error {
	if record.ID.IsZero() {
		record.ID = primitive.NewObjectID()
	}
	if record.RecordedAt.IsZero() {
		record.RecordedAt = time.Now()
	}
	_, err := r.collection().InsertOne(ctx, record)
	return err
}

func (r *medicalRecordRepository) ListByPatient(ctx context.Context, patientID primitive.ObjectID) ([]domain.MedicalRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "recordedAt", Value: -1}})
	cursor, err := r.collection().Find(ctx, bson.M{"patientId": patientID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []domain.MedicalRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
