package models

// ImageArchivePayload is the asynq payload of an image archive task.
type ImageArchivePayload struct {
	Member   string `json:"member"`
	Filename string `json:"filename"`
	MIMEType string `json:"mime"`
	Data     []byte `json:"data"`
}

// PurgePayload is the asynq payload of a retention purge. An empty Before means
// the worker computes the cutoff from the configured retention.
type PurgePayload struct {
	Before string `json:"before,omitempty"` // "YYYY-MM-DD"
}
