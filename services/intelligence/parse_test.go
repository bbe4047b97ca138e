package ai

import (
	"testing"

	"groupcal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clock(t *testing.T, s string) models.ClockTime {
	t.Helper()
	c, err := models.ParseClock(s)
	require.NoError(t, err)
	return c
}

func TestCleanResponse(t *testing.T) {
	tests := map[string]string{
		"  {\"a\":1}  ":                  `{"a":1}`,
		"```json\n{\"a\":1}\n```":        `{"a":1}`,
		"```\n{\"a\":1}\n```":            `{"a":1}`,
		"\n```json{\"a\":1}```\n":        `{"a":1}`,
		"{\"text\":\"no fence at all\"}": `{"text":"no fence at all"}`,
	}
	for in, want := range tests {
		assert.Equal(t, want, CleanResponse(in))
	}
}

func TestParseResponse(t *testing.T) {
	raw := "```json\n" + `{
  "name": "Alice",
  "events": [
    {"date": "2025-06-02", "start": "09:00", "end": "10:30"},
    {"day_of_week": "Monday", "start": "13:00", "end": "14:00:00"},
    "not an object",
    {"date": "2025-06-03", "start": "25:00", "end": "26:00"},
    {"date": "2025-06-04", "end": "10:00"},
    {"date": "06/05/2025", "start": "08:00", "end": "09:00"},
    {"day_of_week": 3, "start": "08:00", "end": "09:00"}
  ]
}` + "\n```"

	schedule, err := ParseResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, "Alice", schedule.Name)
	require.Len(t, schedule.Events, 4)

	assert.Equal(t, models.ExtractedEvent{Date: "2025-06-02", Start: clock(t, "09:00"), End: clock(t, "10:30")}, schedule.Events[0])
	assert.Equal(t, models.ExtractedEvent{DayOfWeek: "Monday", Start: clock(t, "13:00"), End: clock(t, "14:00")}, schedule.Events[1])
	// invalid date is dropped but the event survives
	assert.Empty(t, schedule.Events[2].Date)
	assert.Empty(t, schedule.Events[2].DayOfWeek)
	// non-string weekday is dropped
	assert.Empty(t, schedule.Events[3].DayOfWeek)
}

func TestParseResponseRejectsBadEnvelopes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "Sorry, I cannot help with that."},
		{name: "missing name", raw: `{"events": []}`},
		{name: "missing events", raw: `{"name": "Alice"}`},
		{name: "events not a list", raw: `{"name": "Alice", "events": "none"}`},
		{name: "name not a string", raw: `{"name": 7, "events": []}`},
		{name: "null events", raw: `{"name": "Alice", "events": null}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseResponse(tt.raw)
			assert.ErrorIs(t, err, ErrInvalidResponse)
		})
	}
}

func TestParseResponseEmptyEvents(t *testing.T) {
	schedule, err := ParseResponse(`{"name": "Bob", "events": []}`)
	require.NoError(t, err)
	assert.Equal(t, "Bob", schedule.Name)
	assert.Empty(t, schedule.Events)
}
