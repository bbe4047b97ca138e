package ai

import (
	"context"
	"errors"
	"strings"

	"groupcal/models"

	"go.uber.org/zap"
)

// ScheduleExtractor implements Extractor on a ContentGenerator.
type ScheduleExtractor struct {
	gen         ContentGenerator
	cache       ExtractionCache
	defaultYear int
}

// NewScheduleExtractor builds an extractor. gen may be nil, in which case every
// extraction fails with ErrNotConfigured; cache may be nil.
func NewScheduleExtractor(gen ContentGenerator, cache ExtractionCache, defaultYear int) *ScheduleExtractor {
	return &ScheduleExtractor{gen: gen, cache: cache, defaultYear: defaultYear}
}

func (e *ScheduleExtractor) Extract(ctx context.Context, name, text string, images []models.ImageInput) (*models.ExtractedSchedule, error) {
	logger := zap.L()

	if e.gen == nil {
		logger.Error("Gemini API key is not configured")
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(text) == "" && len(images) == 0 {
		return nil, ErrNoInput
	}

	key := ExtractionKey(name, text, images)
	if e.cache != nil {
		if cached, ok := e.cache.Get(ctx, key); ok {
			logger.Debug("Extraction cache hit", zap.String("name", name))
			return cached, nil
		}
	}

	logger.Info("Sending schedule to Gemini", zap.String("name", name), zap.Int("images", len(images)))
	raw, err := e.gen.Generate(ctx, SystemPrompt(name, e.defaultYear), Instruction(name, text, images), images)
	if err != nil {
		if !errors.Is(err, ErrUpstream) && !errors.Is(err, ErrNotConfigured) {
			err = errors.Join(ErrUpstream, err)
		}
		logger.Error("Gemini request failed", zap.Error(err))
		return nil, err
	}
	logger.Debug("Raw Gemini response", zap.String("response", raw))

	schedule, err := ParseResponse(raw)
	if err != nil {
		logger.Error("Gemini response rejected", zap.Error(err))
		return nil, err
	}
	if strings.TrimSpace(schedule.Name) == "" {
		schedule.Name = name
	}

	if e.cache != nil && len(schedule.Events) > 0 {
		if err := e.cache.Set(ctx, key, schedule); err != nil {
			logger.Warn("Extraction cache write failed", zap.Error(err))
		}
	}
	return schedule, nil
}
