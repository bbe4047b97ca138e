package ai

import (
	"context"
	"testing"
	"time"

	"groupcal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisExtractionStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := NewRedisExtractionStore(client, 24*time.Hour)
	ctx := context.Background()

	schedule := &models.ExtractedSchedule{
		Name: "山田",
		Events: []models.ExtractedEvent{
			{Date: "2025-06-02", Start: models.ClockTime(9 * 60), End: models.ClockTime(10 * 60)},
			{DayOfWeek: "Tuesday", Start: models.ClockTime(13 * 60), End: models.ClockTime(14*60 + 30)},
		},
	}
	key := ExtractionKey("山田", "月曜9時", nil)

	_, ok := store.Get(ctx, key)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, key, schedule))
	assert.Equal(t, 24*time.Hour, mr.TTL(extractionPrefix+key))

	got, ok := store.Get(ctx, key)
	require.True(t, ok)
	assert.Equal(t, schedule, got)

	t.Run("corrupt entry is a miss", func(t *testing.T) {
		require.NoError(t, mr.Set(extractionPrefix+"broken", "{not json"))
		_, ok := store.Get(ctx, "broken")
		assert.False(t, ok)
	})

	t.Run("expired entry is a miss", func(t *testing.T) {
		mr.FastForward(25 * time.Hour)
		_, ok := store.Get(ctx, key)
		assert.False(t, ok)
	})

	t.Run("unreachable redis is a miss", func(t *testing.T) {
		mr.Close()
		_, ok := store.Get(ctx, key)
		assert.False(t, ok)
		assert.Error(t, store.Set(ctx, key, schedule))
	})
}
