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

// DoctorRepository manages doctor profile persistence.
type DoctorRepository interface {
	Create(ctx context.Context, doctor *domain.Doctor) error
	Update(ctx context.Context, doctor *domain.Doctor) error
	GetByID(ctx context.Context, id string) (*domain.Doctor, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Doctor, error)
	List(ctx context.Context, limit, offset int) ([]domain.Doctor, error)
}

type doctorRepository struct {
	db *mongo.Database
}

// NewDoctorRepository builds the repository.
func NewDoctorRepository(db *mongo.Database) DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) collection() *mongo.Collection {
	return r.db.Collection(persistence.CollectionDoctors)
}

func (r *doctorRepository) Create(ctx context.Context, doctor *domain.Doctor) error {
	if doctor.ID.IsZero() {
		doctor.ID = primitive.NewObjectID()
	}
	if doctor.JoinDate.IsZero() {
		doctor.JoinDate = time.Now()
	}
	if doctor.Status == "" {
		doctor.Status = domain.DoctorStatusActive
	}
	_, err := r.collection().InsertOne(ctx, doctor)
	return err
}

func (r *doctorRepository) Update(ctx context.Context, doctor *domain.Doctor) error {
	result, err := r.collection().ReplaceOne(ctx, bson.M{"_id": doctor.ID}, doctor)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *doctorRepository) GetByID(ctx context.Context, id string) (*domain.Doctor, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	var doctor domain.Doctor
	if err := r.collection().FindOne(ctx, bson.M{"_id": oid}).Decode(&doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Doctor, error) {
	var doctor domain.Doctor
	if err := r.collection().FindOne(ctx, bson.M{"userId": userID}).Decode(&doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) List(ctx context.Context, limit, offset int) ([]domain.Doctor, error) {
	opts := options.Find().SetSort(bson.D{{Key: "joinDate", Value: -1}})
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

	var doctors []domain.Doctor
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}
