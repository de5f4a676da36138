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

// AppointmentFilter narrows appointment listings.
type AppointmentFilter struct {
	PatientID *primitive.ObjectID
	DoctorID  *primitive.ObjectID
	Statuses  []domain.AppointmentStatus
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// AppointmentRepository manages appointment persistence.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) error
	Update(ctx context.Context, appt *domain.Appointment) error
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	List(ctx context.Context, filter AppointmentFilter) ([]domain.Appointment, error)
}

type appointmentRepository struct {
	db *mongo.Database
}

// NewAppointmentRepository builds the repository.
func NewAppointmentRepository(db *mongo.Database) AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) collection() *mongo.Collection {
	return r.db.Collection(persistence.CollectionAppointments)
}

func (r *appointmentRepository) Create(ctx context.Context, appt *domain.Appointment) error {
	now := time.Now()
	if appt.ID.IsZero() {
		appt.ID = primitive.NewObjectID()
	}
	if appt.Status == "" {
		appt.Status = domain.AppointmentStatusScheduled
	}
	appt.CreatedAt = now
	appt.UpdatedAt = now
	_, err := r.collection().InsertOne(ctx, appt)
	return err
}

func (r *appointmentRepository) Update(ctx context.Context, appt *domain.Appointment) error {
	appt.UpdatedAt = time.Now()
	result, err := r.collection().ReplaceOne(ctx, bson.M{"_id": appt.ID}, appt)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *appointmentRepository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	var appt domain.Appointment
	if err := r.collection().FindOne(ctx, bson.M{"_id": oid}).Decode(&appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *appointmentRepository) List(ctx context.Context, filter AppointmentFilter) ([]domain.Appointment, error) {
	query := bson.M{}
	if filter.PatientID != nil {
		query["patientId"] = *filter.PatientID
	}
	if filter.DoctorID != nil {
		query["doctorId"] = *filter.DoctorID
	}
	if len(filter.Statuses) > 0 {
		query["status"] = bson.M{"$in": filter.Statuses}
	}
	if filter.From != nil || filter.To != nil {
		window := bson.M{}
		if filter.From != nil {
			window["$gte"] = *filter.From
		}
		if filter.To != nil {
			window["$lt"] = *filter.To
		}
		query["scheduledAt"] = window
	}

	opts := options.Find().SetSort(bson.D{{Key: "scheduledAt", Value: 1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}
	if filter.Offset > 0 {
		opts.SetSkip(int64(filter.Offset))
	}

	cursor, err := r.collection().Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var appointments []domain.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}
