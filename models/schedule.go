package models

// ImageInput is one uploaded schedule image.
type ImageInput struct {
	Filename string
	MIMEType string
	Data     []byte
}

// ScheduleInput is a schedule submission. TargetYear and TargetMonth anchor weekly events.
type ScheduleInput struct {
	Name        string
	Text        string
	Images      []ImageInput
	TargetYear  int
	TargetMonth int
}
