package ai

import (
	"fmt"
	"strings"

	"groupcal/models"
)

// SystemPrompt instructs the model to answer with a bare schedule object for name.
func SystemPrompt(name string, defaultYear int) string {
	return fmt.Sprintf(`Your job is to turn the information the user gives you into a schedule in JSON.

Output format (follow it exactly; output a single JSON object only, with no explanation and no markdown such as code fences):
{
  "name": %q,
  "events": [
    { "date": "YYYY-MM-DD", "start": "HH:MM", "end": "HH:MM" },
    { "day_of_week": "Monday", "start": "HH:MM", "end": "HH:MM" }
  ]
}
- Use the "day_of_week" field (Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday) for weekly events.
- When no year is given, assume %d.
- When an event lasts all day or has no time, use 00:00 to 23:59.
- For a timetable image, use the day_of_week form and infer the busy hours of each weekday from the image.
- For a calendar image, use the date form and infer the events from the image.
- When neither a date nor a weekday is given, infer it from the content where possible. Leave the event out when it cannot be determined.`, name, defaultYear)
}

// Instruction is the user turn that accompanies the images.
func Instruction(name, text string, images []models.ImageInput) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name: %s\n", name)
	sb.WriteString("Schedule:\n")
	if text != "" {
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	if len(images) > 0 {
		fmt.Fprintf(&sb, "Extract the schedule from the %d attached image(s).\n", len(images))
	}
	return sb.String()
}
