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

// PatientRepository manages patient profile persistence.
type PatientRepository interface {
	Create(ctx context.Context, patient *domain.Patient) error
	Update(ctx context.Context, patient *domain.Patient) error
	GetByID(ctx context.Context, id string) (*domain.Patient, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Patient, error)
	List(ctx context.Context, limit, offset int) ([]domain.Patient, error)
}

type patientRepository struct {
	db *mongo.Database
}

// NewPatientRepository builds the repository.
func NewPatientRepository(db *mongo.Database) PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) collection() *mongo.Collection {
	return r.db.Collection(persistence.CollectionPatients)
}

func (r *patientRepository) Create(ctx context.Context, patient *domain.Patient) error {
	if patient.ID.IsZero() {
		patient.ID = primitive.NewObjectID()
	}
	if patient.RegistrationDate.IsZero() {
		patient.RegistrationDate = time.Now()
	}
	_, err := r.collection().InsertOne(ctx, patient)
	return err
}

func (r *patientRepository) Update(ctx context.Context, patient *domain.Patient) error {
	result, err := r.collection().ReplaceOne(ctx, bson.M{"_id": patient.ID}, patient)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *patientRepository) GetByID(ctx context.Context, id string) (*domain.Patient, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	var patient domain.Patient
	if err := r.collection().FindOne(ctx, bson.M{"_id": oid}).Decode(&patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Patient, error) {
	var patient domain.Patient
	if err := r.collection().FindOne(ctx, bson.M{"userId": userID}).Decode(&patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context, limit, offset int) ([]domain.Patient, error) {
	opts := options.Find().SetSort(bson.D{{Key: "registrationDate", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	if offset > 0 {
		opts.SetSkip(int64(offset))
	}

	cursor, err := r.collection().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var patients []domain.Patient
	if err := cursor.All(ctx, &patients); err != nil {
		return nil, err
	}
	return patients, nil
}
