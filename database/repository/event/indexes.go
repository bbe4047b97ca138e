// FILE: database/repository/event/indexes.go
package eventRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the events collection.
func (r *mongoEventRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Month range scans and retention purges
		{
			Keys:    bson.D{{Key: "event_date", Value: 1}},
			Options: options.Index().SetName("event_date_idx"),
		},
		// Per-day deletion of one member
		{
			Keys:    bson.D{{Key: "event_date", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetName("event_date_name_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create event indexes: %w", err)
	}
	return nil
}
