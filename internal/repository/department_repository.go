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

// DepartmentRepository manages department persistence.
type DepartmentRepository interface {
	Create(ctx context.Context, dept *domain.Department) error
	Update(ctx context.Context, dept *domain.Department) error
	GetByID(ctx context.Context, id string) (*domain.Department, error)
	ListActive(ctx context.Context) ([]domain.Department, error)
}

type departmentRepository struct {
	db *mongo.Database
}

// NewDepartmentRepository builds the repository.
func NewDepartmentRepository(db *mongo.Database) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) collection() *mongo.Collection {
	return r.db.Collection(persistence.CollectionDepartments)
}

func (r *departmentRepository) Create(ctx context.Context, dept *domain.Department) error {
	now := time.Now()
	if dept.ID.IsZero() {
		dept.ID = primitive.NewObjectID()
	}
	dept.CreatedAt = now
	dept.UpdatedAt = now
	_, err := r.collection().InsertOne(ctx, dept)
	return err
}

func (r *departmentRepository) Update(ctx context.Context, dept *domain.Department) error {
	dept.UpdatedAt = time.Now()
	result, err := r.collection().ReplaceOne(ctx, bson.M{"_id": dept.ID}, dept)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *departmentRepository) GetByID(ctx context.Context, id string) (*domain.Department, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	var dept domain.Department
	if err := r.collection().FindOne(ctx, bson.M{"_id": oid}).Decode(&dept); err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepository) ListActive(ctx context.Context) ([]domain.Department, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection().Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []domain.Department
	if err := cursor.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}
