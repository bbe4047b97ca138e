// File: database/repository/event/queries.go
package eventRepo

import (
	"context"
	"fmt"
	"time"

	"groupcal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MonthRange returns the first and last "YYYY-MM-DD" of a month. Dates are stored
// zero padded, so string comparison orders them chronologically.
func MonthRange(year, month int) (string, string, error) {
	if month < 1 || month > 12 || year < 1 || year > 9999 {
		return "", "", fmt.Errorf("invalid month %d-%d", year, month)
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format("2006-01-02"), last.Format("2006-01-02"), nil
}

func monthFilter(year, month int) (bson.M, error) {
	from, to, err := MonthRange(year, month)
	if err != nil {
		return nil, err
	}
	return bson.M{"event_date": bson.M{"$gte": from, "$lte": to}}, nil
}

func (r *mongoEventRepo) GetByMonth(ctx context.Context, year, month int) ([]models.Event, error) {
	filter, err := monthFilter(year, month)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, filter)
}

func (r *mongoEventRepo) find(ctx context.Context, filter bson.M) ([]models.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "event_date", Value: 1}, {Key: "start_time", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	defer cursor.Close(ctx)

	events := []models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("error decoding events: %w", err)
	}
	return events, nil
}
