// File: database/repository/event/crud.go
package eventRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"groupcal/models"
)

// CreateMany stores events in order, assigning ids and creation times where missing.
// It returns the ids of the stored events.
func (r *mongoEventRepo) CreateMany(ctx context.Context, events []models.Event) ([]string, error) {
	if len(events) == 0 {
		return []string{}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	docs := make([]interface{}, len(events))
	ids := make([]string, len(events))
	for i := range events {
		if events[i].ID == "" {
			events[i].ID = uuid.New().String()
		}
		if events[i].CreatedAt.IsZero() {
			events[i].CreatedAt = now
		}
		docs[i] = events[i]
		ids[i] = events[i].ID
	}

	if _, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *mongoEventRepo) DeleteByDateAndName(ctx context.Context, date, name string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"event_date": date, "name": name})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *mongoEventRepo) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteBefore removes every event dated strictly before date ("YYYY-MM-DD").
func (r *mongoEventRepo) DeleteBefore(ctx context.Context, date string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"event_date": bson.M{"$lt": date}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
