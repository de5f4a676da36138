package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/hospital-service/internal/domain"
	"github.com/spec-kit/hospital-service/internal/persistence"
)

// InsuranceRepository manages insurance record persistence.
type InsuranceRepository interface {
	Create(ctx context.Context, record *domain.InsuranceRecord) error
	GetByPatient(ctx context.Context, patientID primitive.ObjectID) (*domain.InsuranceRecord, error)
	DeductBalance(ctx context.Context, id primitive.ObjectID, amount float64) (*domain.InsuranceRecord, error)
}

type insuranceRepository struct {
	db *mongo.Database
}

// NewInsuranceRepository builds the repository.
func NewInsuranceRepository(db *mongo.Database) InsuranceRepository {
	return &insuranceRepository{db: db}
}

func (r *insuranceRepository) collection() *mongo.Collection {
	return r.db.Collection(persistence.CollectionInsuranceRecords)
}

func (r *insuranceRepository) Create(ctx context.Context, record *domain.InsuranceRecord) error {
	now := time.Now()
	if record.ID.IsZero() {
		record.ID = primitive.NewObjectID()
	}
	record.CreatedAt = now
	record.UpdatedAt = now
	_, err := r.collection().InsertOne(ctx, record)
	return err
}

func (r *insuranceRepository) GetByPatient(ctx context.Context, patientID primitive.ObjectID) (*domain.InsuranceRecord, error) {
	var record domain.InsuranceRecord
	if err := r.collection().FindOne(ctx, bson.M{"patientId": patientID}).Decode(&record); err != nil {
		return nil, err
	}
	return &record, nil
}

// DeductBalance subtracts a charge from the coverage balance and returns the
// updated record.
func (r *insuranceRepository) DeductBalance(ctx context.Context, id primitive.ObjectID, amount float64) (*domain.InsuranceRecord, error) {
	update := bson.M{
		"$inc": bson.M{"balance": -amount},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	result := r.collection().FindOneAndUpdate(ctx, bson.M{"_id": id}, update)
	if err := result.Err(); err != nil {
		return nil, err
	}

	var record domain.InsuranceRecord
	if err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&record); err != nil {
		return nil, err
	}
	return &record, nil
}
