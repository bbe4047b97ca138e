package models

import (
	"fmt"
	"strconv"
	"strings"
)

// ClockTime is a wall clock time of day in minutes since midnight.
type ClockTime int

// ParseClock accepts "H:MM", "HH:MM" and "HH:MM:SS". Seconds are dropped.
func ParseClock(s string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if len(parts) == 3 {
		sec, err := strconv.Atoi(parts[2])
		if err != nil || sec < 0 || sec > 59 {
			return 0, fmt.Errorf("invalid second in %q", s)
		}
	}
	return ClockTime(hour*60 + minute), nil
}

// Minutes returns the number of minutes since midnight.
func (c ClockTime) Minutes() int { return int(c) }

// HHMM formats c as "HH:MM".
func (c ClockTime) HHMM() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// HHMMSS formats c as "HH:MM:SS", the stored form of event times.
func (c ClockTime) HHMMSS() string {
	return c.HHMM() + ":00"
}

func (c ClockTime) String() string { return c.HHMM() }

// ShortTime truncates a stored "HH:MM:SS" to "HH:MM".
func ShortTime(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}
