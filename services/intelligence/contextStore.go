// File: services/intelligence/contextStore.go
package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"groupcal/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const extractionPrefix = "ai:extract:"

// RedisExtractionStore caches extractions so a resubmitted schedule yields the same events.
type RedisExtractionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisExtractionStore(client *redis.Client, ttl time.Duration) *RedisExtractionStore {
	return &RedisExtractionStore{client: client, ttl: ttl}
}

// Get returns a cached extraction. Redis failures count as a miss.
func (s *RedisExtractionStore) Get(ctx context.Context, key string) (*models.ExtractedSchedule, bool) {
	data, err := s.client.Get(ctx, extractionPrefix+key).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		zap.L().Warn("Extraction cache read failed", zap.Error(err))
		return nil, false
	}
	var schedule models.ExtractedSchedule
	if err := json.Unmarshal([]byte(data), &schedule); err != nil {
		return nil, false
	}
	return &schedule, true
}

func (s *RedisExtractionStore) Set(ctx context.Context, key string, schedule *models.ExtractedSchedule) error {
	b, err := json.Marshal(schedule)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, extractionPrefix+key, b, s.ttl).Err()
}

// ExtractionKey fingerprints a submission.
func ExtractionKey(name, text string, images []models.ImageInput) string {
	h := sha256.New()
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write([]byte(text))
	for _, img := range images {
		h.Write([]byte{0})
		h.Write([]byte(img.MIMEType))
		h.Write([]byte{0})
		h.Write(img.Data)
	}
	return hex.EncodeToString(h.Sum(nil))
}
