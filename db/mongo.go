package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const (
	EmployeesCollection   = "employees"
	ProjectsCollection    = "projects"
	AssignmentsCollection = "projectassignments"
)

var (
	ErrNotFound  = errors.New("db: document not found")
	ErrDuplicate = errors.New("db: duplicate key")
)

type Mongo struct {
	cli    *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

// ConnectToMongo dials the deployment at uri and verifies it answers a ping.
func ConnectToMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(uri).SetAppName("project-dashboard")
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("db: connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("db: ping: %w", err)
	}
	return client, nil
}

func New(client *mongo.Client, database string, logger *zap.Logger) *Mongo {
	return &Mongo{cli: client, db: client.Database(database), logger: logger}
}

func (m *Mongo) Database() *mongo.Database {
	return m.db
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.cli.Ping(ctx, readpref.Primary())
}

func (m *Mongo) Disconnect(ctx context.Context) error {
	return m.cli.Disconnect(ctx)
}

func (m *Mongo) Employees() *EmployeeRepo {
	return NewEmployeeRepo(m.db)
}

func (m *Mongo) Projects() *ProjectRepo {
	return NewProjectRepo(m.db)
}

func (m *Mongo) Assignments() *AssignmentRepo {
	return NewAssignmentRepo(m.db)
}

// EnsureIndexes creates the unique business-code indexes and the indexes
// backing the assignment listings. Existing indexes are left alone.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		EmployeesCollection: {
			{Keys: bson.D{{Key: "employee_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		ProjectsCollection: {
			{Keys: bson.D{{Key: "project_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		AssignmentsCollection: {
			{Keys: bson.D{{Key: "start_date", Value: -1}}},
			{Keys: bson.D{{Key: "employee_id", Value: 1}}},
			{Keys: bson.D{{Key: "project_id", Value: 1}}},
		},
	}
	for coll, specs := range indexes {
		names, err := m.db.Collection(coll).Indexes().CreateMany(ctx, specs)
		if err != nil {
			return fmt.Errorf("db: create indexes on %s: %w", coll, err)
		}
		m.logger.Debug("indexes ready", zap.String("collection", coll), zap.Strings("indexes", names))
	}
	return nil
}

func translateWriteErr(op string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}
