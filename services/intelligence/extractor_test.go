package ai

import (
	"context"
	"errors"
	"testing"

	"groupcal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	response    string
	err         error
	calls       int
	system      string
	instruction string
	images      []models.ImageInput
}

func (f *fakeGenerator) Generate(ctx context.Context, systemPrompt, instruction string, images []models.ImageInput) (string, error) {
	f.calls++
	f.system = systemPrompt
	f.instruction = instruction
	f.images = images
	return f.response, f.err
}

type memoryCache struct {
	items map[string]*models.ExtractedSchedule
}

func (m *memoryCache) Get(ctx context.Context, key string) (*models.ExtractedSchedule, bool) {
	s, ok := m.items[key]
	return s, ok
}

func (m *memoryCache) Set(ctx context.Context, key string, s *models.ExtractedSchedule) error {
	m.items[key] = s
	return nil
}

func TestExtractBuildsPrompt(t *testing.T) {
	gen := &fakeGenerator{response: `{"name":"Alice","events":[{"date":"2025-06-02","start":"09:00","end":"10:00"}]}`}
	ex := NewScheduleExtractor(gen, nil, 2025)

	images := []models.ImageInput{{Filename: "t.png", MIMEType: "image/png", Data: []byte{1, 2}}}
	schedule, err := ex.Extract(context.Background(), "Alice", "dentist on June 2nd", images)
	require.NoError(t, err)
	require.Len(t, schedule.Events, 1)

	assert.Contains(t, gen.system, `"name": "Alice"`)
	assert.Contains(t, gen.system, "assume 2025")
	assert.Contains(t, gen.instruction, "dentist on June 2nd")
	assert.Contains(t, gen.instruction, "1 attached image")
	assert.Equal(t, images, gen.images)
}

func TestExtractErrors(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		ex := NewScheduleExtractor(nil, nil, 2025)
		_, err := ex.Extract(context.Background(), "Alice", "text", nil)
		assert.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("no input", func(t *testing.T) {
		ex := NewScheduleExtractor(&fakeGenerator{}, nil, 2025)
		_, err := ex.Extract(context.Background(), "Alice", "   ", nil)
		assert.ErrorIs(t, err, ErrNoInput)
	})

	t.Run("transport failure is upstream", func(t *testing.T) {
		ex := NewScheduleExtractor(&fakeGenerator{err: errors.New("dial tcp: timeout")}, nil, 2025)
		_, err := ex.Extract(context.Background(), "Alice", "text", nil)
		assert.ErrorIs(t, err, ErrUpstream)
	})

	t.Run("garbage is invalid", func(t *testing.T) {
		ex := NewScheduleExtractor(&fakeGenerator{response: "I am not JSON"}, nil, 2025)
		_, err := ex.Extract(context.Background(), "Alice", "text", nil)
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})
}

func TestExtractFallsBackToSubmittedName(t *testing.T) {
	ex := NewScheduleExtractor(&fakeGenerator{response: `{"name":"","events":[]}`}, nil, 2025)
	schedule, err := ex.Extract(context.Background(), "Bob", "nothing", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bob", schedule.Name)
}

func TestExtractUsesCache(t *testing.T) {
	gen := &fakeGenerator{response: `{"name":"Alice","events":[{"day_of_week":"Friday","start":"18:00","end":"20:00"}]}`}
	cache := &memoryCache{items: map[string]*models.ExtractedSchedule{}}
	ex := NewScheduleExtractor(gen, cache, 2025)

	first, err := ex.Extract(context.Background(), "Alice", "choir on fridays", nil)
	require.NoError(t, err)
	second, err := ex.Extract(context.Background(), "Alice", "choir on fridays", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, first, second)

	_, err = ex.Extract(context.Background(), "Alice", "choir on saturdays", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, gen.calls)
}

func TestExtractionKeyDependsOnImages(t *testing.T) {
	a := ExtractionKey("A", "t", []models.ImageInput{{MIMEType: "image/png", Data: []byte{1}}})
	b := ExtractionKey("A", "t", []models.ImageInput{{MIMEType: "image/png", Data: []byte{2}}})
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, ExtractionKey("A", "t", []models.ImageInput{{MIMEType: "image/png", Data: []byte{1}}}))
}
