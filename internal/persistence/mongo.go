package persistence

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/spec-kit/hospital-service/internal/config"
)

// Collection names used across repositories.
const (
	CollectionUsers            = "users"
	CollectionPatients         = "patients"
	CollectionDoctors          = "doctors"
	CollectionNurses           = "nurses"
	CollectionDepartments      = "departments"
	CollectionAppointments     = "appointments"
	CollectionMedicalRecords   = "medical_records"
	CollectionInsuranceRecords = "insurance_records"
)

// TxRunner executes a function atomically. Every write inside fn either
// commits together or rolls back together.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Mongo wraps access to the document database.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewMongo connects to MongoDB when a URI is provided.
func NewMongo(ctx context.Context, cfg config.MongoConfig, logger *zap.Logger) (*Mongo, error) {
	if cfg.URI == "" {
		logger.Warn("MONGODB_URI not provided; skipping database connection")
		return &Mongo{}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("connected to mongodb", zap.String("database", cfg.Database))
	return &Mongo{Client: client, DB: client.Database(cfg.Database)}, nil
}

// Close releases the client.
func (m *Mongo) Close(ctx context.Context) {
	if m != nil && m.Client != nil {
		_ = m.Client.Disconnect(ctx)
	}
}

// Ping verifies database connectivity.
func (m *Mongo) Ping(ctx context.Context) error {
	if m == nil || m.Client == nil {
		return ErrNotConfigured
	}
	return m.Client.Ping(ctx, readpref.Primary())
}

// Database returns the underlying handle.
func (m *Mongo) Database() *mongo.Database {
	if m == nil {
		return nil
	}
	return m.DB
}

// WithTransaction runs fn inside a multi-document transaction. Repositories
// called with the session context participate in the same transaction.
func (m *Mongo) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m == nil || m.Client == nil {
		return ErrNotConfigured
	}
	session, err := m.Client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// EnsureIndexes creates the indexes the service relies on. The unique index on
// users.email is the final arbiter for concurrent duplicate registrations.
func EnsureIndexes(ctx context.Context, m *Mongo, logger *zap.Logger) error {
	if m == nil || m.DB == nil {
		logger.Warn("no mongodb database available; skipping index creation")
		return nil
	}

	indexes := map[string][]mongo.IndexModel{
		CollectionUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CollectionPatients: {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CollectionDoctors: {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CollectionNurses: {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CollectionDepartments: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CollectionAppointments: {
			{Keys: bson.D{{Key: "patientId", Value: 1}, {Key: "scheduledAt", Value: 1}}},
			{Keys: bson.D{{Key: "doctorId", Value: 1}, {Key: "scheduledAt", Value: 1}}},
		},
		CollectionMedicalRecords: {
			{Keys: bson.D{{Key: "patientId", Value: 1}, {Key: "recordedAt", Value: -1}}},
		},
		CollectionInsuranceRecords: {
			{Keys: bson.D{{Key: "patientId", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		logger.Info("ensuring indexes", zap.String("collection", collection))
		if _, err := m.DB.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}
