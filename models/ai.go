package models

// ExtractedSchedule is what the language model returned for one submission.
type ExtractedSchedule struct {
	Name   string           `json:"name"`
	Events []ExtractedEvent `json:"events"`
}

// ExtractedEvent carries either a concrete Date or a DayOfWeek for weekly events.
// Start and End are already validated clock times.
type ExtractedEvent struct {
	Date      string    `json:"date,omitempty"`        // "YYYY-MM-DD"
	DayOfWeek string    `json:"day_of_week,omitempty"` // "Monday" ... "Sunday"
	Start     ClockTime `json:"start"`
	End       ClockTime `json:"end"`
}
