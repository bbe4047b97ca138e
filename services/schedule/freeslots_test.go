package schedule

import (
	"testing"

	"groupcal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustClock(t *testing.T, s string) models.ClockTime {
	t.Helper()
	c, err := models.ParseClock(s)
	require.NoError(t, err)
	return c
}

func ev(name, date, start, end string) models.Event {
	return models.Event{Name: name, EventDate: date, StartTime: start, EndTime: end}
}

func TestMonthDates(t *testing.T) {
	dates := MonthDates(2024, 2)
	require.Len(t, dates, 29)
	assert.Equal(t, "2024-02-01", dates[0])
	assert.Equal(t, "2024-02-29", dates[28])
	assert.Len(t, MonthDates(2025, 4), 30)
}

func TestMemberNames(t *testing.T) {
	events := []models.Event{
		ev("Bob", "2025-06-01", "09:00:00", "10:00:00"),
		ev("Alice", "2025-06-01", "09:00:00", "10:00:00"),
		ev("Bob", "2025-06-02", "09:00:00", "10:00:00"),
	}
	assert.Equal(t, []string{"Bob", "Alice"}, MemberNames(events))
	assert.Nil(t, MemberNames(nil))
}

func TestComputeFreeSlots(t *testing.T) {
	start, end := mustClock(t, "09:00"), mustClock(t, "12:00")
	dates := []string{"2025-06-02", "2025-06-03"}

	tests := []struct {
		name     string
		events   []models.Event
		members  []string
		duration int
		want     models.FreeSlotsByDate
	}{
		{
			name:     "no events means every slot is free",
			members:  []string{"Alice"},
			duration: 60,
			want: models.FreeSlotsByDate{
				"2025-06-02": {{Start: "09:00", End: "10:00"}, {Start: "10:00", End: "11:00"}, {Start: "11:00", End: "12:00"}},
				"2025-06-03": {{Start: "09:00", End: "10:00"}, {Start: "10:00", End: "11:00"}, {Start: "11:00", End: "12:00"}},
			},
		},
		{
			name: "touching events do not block",
			events: []models.Event{
				ev("Alice", "2025-06-02", "08:00:00", "09:00:00"),
				ev("Alice", "2025-06-02", "10:00:00", "11:00:00"),
			},
			members:  []string{"Alice"},
			duration: 60,
			want: models.FreeSlotsByDate{
				"2025-06-02": {{Start: "09:00", End: "10:00"}, {Start: "11:00", End: "12:00"}},
				"2025-06-03": {{Start: "09:00", End: "10:00"}, {Start: "10:00", End: "11:00"}, {Start: "11:00", End: "12:00"}},
			},
		},
		{
			name: "any busy member blocks the slot",
			events: []models.Event{
				ev("Alice", "2025-06-02", "09:30:00", "09:45:00"),
				ev("Bob", "2025-06-02", "11:59:00", "13:00:00"),
				ev("Carol", "2025-06-02", "10:00:00", "11:00:00"),
			},
			members:  []string{"Alice", "Bob"},
			duration: 60,
			want: models.FreeSlotsByDate{
				"2025-06-02": {{Start: "10:00", End: "11:00"}},
				"2025-06-03": {{Start: "09:00", End: "10:00"}, {Start: "10:00", End: "11:00"}, {Start: "11:00", End: "12:00"}},
			},
		},
		{
			name: "fully booked days are omitted",
			events: []models.Event{
				ev("Alice", "2025-06-02", "00:00:00", "23:59:00"),
			},
			members:  []string{"Alice"},
			duration: 90,
			want: models.FreeSlotsByDate{
				"2025-06-03": {{Start: "09:00", End: "10:30"}, {Start: "10:30", End: "12:00"}},
			},
		},
		{
			name:     "slots must end by the end of the window",
			members:  []string{"Alice"},
			duration: 100,
			want: models.FreeSlotsByDate{
				"2025-06-02": {{Start: "09:00", End: "10:40"}},
				"2025-06-03": {{Start: "09:00", End: "10:40"}},
			},
		},
		{
			name:     "no members",
			duration: 60,
			want:     models.FreeSlotsByDate{},
		},
		{
			name:     "duration longer than the window",
			members:  []string{"Alice"},
			duration: 240,
			want:     models.FreeSlotsByDate{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeFreeSlots(tt.events, dates, tt.members, tt.duration, start, end)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeFreeSlotsIgnoresUnreadableTimes(t *testing.T) {
	events := []models.Event{ev("Alice", "2025-06-02", "morning", "noon")}
	got := ComputeFreeSlots(events, []string{"2025-06-02"}, []string{"Alice"}, 60, mustClock(t, "09:00"), mustClock(t, "10:00"))
	assert.Equal(t, models.FreeSlotsByDate{"2025-06-02": {{Start: "09:00", End: "10:00"}}}, got)
}
