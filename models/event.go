package models

import "time"

// Event is a single busy interval of one member on one day.
type Event struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	EventDate string    `bson:"event_date" json:"event_date"` // e.g., "2025-06-14"
	StartTime string    `bson:"start_time" json:"start_time"` // "HH:MM:SS"
	EndTime   string    `bson:"end_time" json:"end_time"`     // "HH:MM:SS"
	Source    string    `bson:"source,omitempty" json:"source,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Event sources.
const (
	SourceDated     = "dated"
	SourceRecurring = "recurring"
)

// DeleteEventPayload is the body of DELETE /events/delete_by_date_name/.
type DeleteEventPayload struct {
	EventDate string `json:"event_date" form:"event_date" binding:"required"`
	Name      string `json:"name" form:"name" binding:"required"`
}

type DeleteResult struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}
