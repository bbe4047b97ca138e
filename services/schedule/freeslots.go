package schedule

import (
	"time"

	"groupcal/models"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type interval struct {
	start, end int
}

// overlaps uses half-open intervals, so touching intervals do not overlap.
func (a interval) overlaps(b interval) bool {
	return max(a.start, b.start) < min(a.end, b.end)
}

// MonthDates lists every "YYYY-MM-DD" of the month in order.
func MonthDates(year, month int) []string {
	var dates []string
	day := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	for day.Month() == time.Month(month) {
		dates = append(dates, day.Format(dateLayout))
		day = day.AddDate(0, 0, 1)
	}
	return dates
}

// MemberNames returns the distinct names among events in order of first appearance.
func MemberNames(events []models.Event) []string {
	seen := make(map[string]bool)
	var names []string
	for _, e := range events {
		if !seen[e.Name] {
			seen[e.Name] = true
			names = append(names, e.Name)
		}
	}
	return names
}

// ComputeFreeSlots walks each date in back-to-back slots of duration minutes from
// workStart, keeping slots that end by workEnd and that no member in members is busy in.
// Members without events are always free. Dates without free slots are left out.
func ComputeFreeSlots(events []models.Event, dates []string, members []string, duration int, workStart, workEnd models.ClockTime) models.FreeSlotsByDate {
	result := models.FreeSlotsByDate{}
	if len(members) == 0 || duration < 1 {
		return result
	}

	wanted := make(map[string]bool, len(members))
	for _, m := range members {
		wanted[m] = true
	}

	busy := make(map[string][]interval)
	for _, e := range events {
		if !wanted[e.Name] {
			continue
		}
		start, errStart := models.ParseClock(e.StartTime)
		end, errEnd := models.ParseClock(e.EndTime)
		if errStart != nil || errEnd != nil {
			zap.L().Warn("Ignoring event with unreadable times", zap.String("id", e.ID), zap.String("start", e.StartTime), zap.String("end", e.EndTime))
			continue
		}
		busy[e.EventDate] = append(busy[e.EventDate], interval{start: start.Minutes(), end: end.Minutes()})
	}

	for _, date := range dates {
		var free []models.FreeSlot
		for start := workStart.Minutes(); start+duration <= workEnd.Minutes(); start += duration {
			slot := interval{start: start, end: start + duration}
			taken := false
			for _, b := range busy[date] {
				if slot.overlaps(b) {
					taken = true
					break
				}
			}
			if !taken {
				free = append(free, models.FreeSlot{
					Start: models.ClockTime(slot.start).HHMM(),
					End:   models.ClockTime(slot.end).HHMM(),
				})
			}
		}
		if len(free) > 0 {
			result[date] = free
		}
	}
	return result
}
