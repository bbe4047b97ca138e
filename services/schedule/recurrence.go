package schedule

import (
	"strings"
	"time"

	"groupcal/models"
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday maps an English weekday name, in any case, to a time.Weekday.
func ParseWeekday(name string) (time.Weekday, bool) {
	wd, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
	return wd, ok
}

// ExpandWeekday creates one event on every date of the month that falls on weekday.
// An unknown weekday yields no events.
func ExpandWeekday(name, weekday string, start, end models.ClockTime, year, month int) []models.Event {
	wd, ok := ParseWeekday(weekday)
	if !ok {
		return nil
	}

	var events []models.Event
	day := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	for day.Month() == time.Month(month) {
		if day.Weekday() == wd {
			events = append(events, models.Event{
				Name:      name,
				EventDate: day.Format(dateLayout),
				StartTime: start.HHMMSS(),
				EndTime:   end.HHMMSS(),
				Source:    models.SourceRecurring,
			})
		}
		day = day.AddDate(0, 0, 1)
	}
	return events
}
