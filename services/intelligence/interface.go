// File: services/intelligence/interface.go
package ai

import (
	"context"
	"errors"

	"groupcal/models"
)

var (
	// ErrNotConfigured means no API key is available.
	ErrNotConfigured = errors.New("gemini api key is not configured")
	// ErrNoInput means neither text nor images were supplied.
	ErrNoInput = errors.New("schedule text or images are required")
	// ErrInvalidResponse means the model answered with something that is not a schedule.
	ErrInvalidResponse = errors.New("invalid schedule response from model")
	// ErrUpstream means the model could not be reached or returned nothing.
	ErrUpstream = errors.New("gemini request failed")
)

// Extractor turns free text and schedule images into dated or weekly events.
type Extractor interface {
	Extract(ctx context.Context, name, text string, images []models.ImageInput) (*models.ExtractedSchedule, error)
}

// ContentGenerator is a single round trip to a language model.
type ContentGenerator interface {
	Generate(ctx context.Context, systemPrompt, instruction string, images []models.ImageInput) (string, error)
}

// ExtractionCache remembers extractions of identical submissions.
type ExtractionCache interface {
	Get(ctx context.Context, key string) (*models.ExtractedSchedule, bool)
	Set(ctx context.Context, key string, schedule *models.ExtractedSchedule) error
}
