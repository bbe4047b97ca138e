package web

import (
	"bytes"
	"testing"

	"groupcal/calendar"
	"groupcal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexTemplateRenders(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	events := []models.Event{
		{Name: "Alice", EventDate: "2025-06-02", StartTime: "09:00:00", EndTime: "10:00:00"},
	}
	data := map[string]interface{}{
		"Month":            calendar.BuildMonth(2025, 6, events),
		"PrevYear":         2025,
		"PrevMonth":        5,
		"NextYear":         2025,
		"NextMonth":        7,
		"Members":          []string{"Alice"},
		"Selected":         map[string]bool{"Alice": true},
		"Duration":         "60",
		"FreeDays":         []calendar.FreeDay{{Date: "2025-06-02", Label: "6/2 (月):", Slots: []string{"  10:00 - 22:00"}}},
		"FreeMessage":      "",
		"FreeError":        "",
		"Flash":            "",
		"Error":            "",
		"NameOptions":      []string{"Alice"},
		"FreeTextOption":   calendar.FreeTextOption,
		"NoDeleteTargets":  calendar.MsgNoDeleteTargets,
		"NoMembersMessage": calendar.MsgNoMembers,
	}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "index.html", data))
	out := buf.String()
	assert.Contains(t, out, "2025年 6月")
	assert.Contains(t, out, "09:00-10:00 Alice")
	assert.Contains(t, out, "event-color-0")
	assert.Contains(t, out, "2025年6月2日")
	assert.Contains(t, out, "6/2 (月):")
	assert.Contains(t, out, `value="Alice" checked`)
}
