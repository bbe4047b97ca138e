// File: database/repository/event/interface.go
package eventRepo

import (
	"context"

	"groupcal/database"
	"groupcal/models"

	"go.mongodb.org/mongo-driver/mongo"
)

const collectionName = "events"

type EventRepository interface {
	CreateMany(ctx context.Context, events []models.Event) ([]string, error)
	GetByMonth(ctx context.Context, year, month int) ([]models.Event, error)
	DeleteByDateAndName(ctx context.Context, date, name string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
	DeleteBefore(ctx context.Context, date string) (int64, error)
	EnsureIndexes() error
}

type mongoEventRepo struct {
	coll *mongo.Collection
}

// NewMongoEventRepo constructs a new MongoDB EventRepository on the configured database.
func NewMongoEventRepo() EventRepository {
	return &mongoEventRepo{
		coll: database.Database().Collection(collectionName),
	}
}

// NewEventRepoWithCollection wraps an existing collection.
func NewEventRepoWithCollection(coll *mongo.Collection) EventRepository {
	return &mongoEventRepo{coll: coll}
}
