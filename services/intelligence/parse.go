package ai

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"groupcal/models"

	"go.uber.org/zap"
)

// CleanResponse trims the raw model output and removes a surrounding ```json fence.
func CleanResponse(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ParseResponse decodes the model output into a schedule. The envelope must carry a
// string name and an events array; individual events that cannot be used are skipped.
func ParseResponse(raw string) (*models.ExtractedSchedule, error) {
	cleaned := CleanResponse(raw)

	var envelope struct {
		Name   *string           `json:"name"`
		Events []json.RawMessage `json:"events"`
	}
	if err := json.Unmarshal([]byte(cleaned), &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v: %s", ErrInvalidResponse, err, truncate(cleaned, 200))
	}
	if envelope.Name == nil || envelope.Events == nil {
		return nil, fmt.Errorf("%w: name or events missing: %s", ErrInvalidResponse, truncate(cleaned, 200))
	}

	schedule := &models.ExtractedSchedule{Name: *envelope.Name, Events: []models.ExtractedEvent{}}
	for _, rawEvent := range envelope.Events {
		event, ok := parseEvent(rawEvent)
		if !ok {
			continue
		}
		schedule.Events = append(schedule.Events, event)
	}
	return schedule, nil
}

func parseEvent(raw json.RawMessage) (models.ExtractedEvent, bool) {
	logger := zap.L()

	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		logger.Warn("Skipping event that is not an object", zap.String("event", truncate(string(raw), 50)))
		return models.ExtractedEvent{}, false
	}

	start, okStart := clockField(fields, "start")
	end, okEnd := clockField(fields, "end")
	if !okStart || !okEnd {
		logger.Warn("Skipping event without a valid start or end", zap.String("event", truncate(string(raw), 100)))
		return models.ExtractedEvent{}, false
	}

	event := models.ExtractedEvent{Start: start, End: end}
	if s, ok := fields["date"].(string); ok && s != "" {
		if _, err := time.Parse("2006-01-02", s); err == nil {
			event.Date = s
		} else {
			logger.Warn("Ignoring invalid event date", zap.String("date", s))
		}
	}
	if dow, present := fields["day_of_week"]; present && dow != nil {
		if s, ok := dow.(string); ok {
			event.DayOfWeek = s
		} else {
			logger.Warn("Ignoring non-string day_of_week", zap.Any("day_of_week", dow))
		}
	}
	return event, true
}

func clockField(fields map[string]interface{}, key string) (models.ClockTime, bool) {
	s, ok := fields[key].(string)
	if !ok {
		return 0, false
	}
	t, err := models.ParseClock(s)
	if err != nil {
		return 0, false
	}
	return t, true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
