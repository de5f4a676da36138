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

// NurseRepository manages nurse profile persistence.
type NurseRepository interface {
	Create(ctx context.Context, nurse *domain.Nurse) error
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Nurse, error)
}

type nurseRepository struct {
	db *mongo.Database
}

// NewNurseRepository builds the repository.
func NewNurseRepository(db *mongo.Database) NurseRepository {
	return &nurseRepository{db: db}
}

func (r *nurseRepository) collection() *mongo.Collection {
	return r.db.Collection(persistence.CollectionNurses)
}

func (r *nurseRepository) Create(ctx context.Context, nurse *domain.Nurse) error {
	if nurse.ID.IsZero() {
		nurse.ID = primitive.NewObjectID()
	}
	if nurse.JoinDate.IsZero() {
		nurse.JoinDate = time.Now()
	}
	if nurse.Status == "" {
		nurse.Status = "active"
	}
	_, err := r.collection().InsertOne(ctx, nurse)
	return err
}

func (r *nurseRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Nurse, error) {
	var nurse domain.Nurse
	if err := r.collection().FindOne(ctx, bson.M{"userId": userID}).Decode(&nurse); err != nil {
		return nil, err
	}
	return &nurse, nil
}
