package schedule

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"groupcal/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SlotCache stores free slot results per month. Implementations treat backend
// failures as misses.
//
// Get resolves the key against the current month version and returns it even on a
// miss; callers store the computed result with Set under that same key, so an
// invalidation racing the computation leaves the result unreachable. An empty key
// means the result must not be stored.
type SlotCache interface {
	Get(ctx context.Context, q models.FreeSlotQuery) (slots models.FreeSlotsByDate, key string, ok bool)
	Set(ctx context.Context, key string, slots models.FreeSlotsByDate)
	InvalidateMonth(ctx context.Context, year, month int)
	InvalidateAll(ctx context.Context)
}

const (
	slotCachePrefix   = "freeslots:"
	slotGenerationKey = "freeslots:gen"
)

// RedisSlotCache versions keys per month, so invalidation is a single INCR and
// stale entries expire on their own.
type RedisSlotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSlotCache(client *redis.Client, ttl time.Duration) *RedisSlotCache {
	return &RedisSlotCache{client: client, ttl: ttl}
}

func monthVersionKey(year, month int) string {
	return fmt.Sprintf("%sver:%04d-%02d", slotCachePrefix, year, month)
}

// queryFingerprint identifies a query regardless of member order.
func queryFingerprint(q models.FreeSlotQuery) string {
	members := append([]string(nil), q.Members...)
	sort.Strings(members)
	h := sha1.New()
	fmt.Fprintf(h, "%t|%d|%s|%s|%s", q.MembersGiven, q.DurationMinutes, q.WorkStart, q.WorkEnd, strings.Join(members, "\x00"))
	return hex.EncodeToString(h.Sum(nil))
}

func (c *RedisSlotCache) key(ctx context.Context, q models.FreeSlotQuery) (string, error) {
	vals, err := c.client.MGet(ctx, slotGenerationKey, monthVersionKey(q.Year, q.Month)).Result()
	if err != nil {
		return "", err
	}
	gen, ver := "0", "0"
	if s, ok := vals[0].(string); ok {
		gen = s
	}
	if s, ok := vals[1].(string); ok {
		ver = s
	}
	return fmt.Sprintf("%s%s:%04d-%02d:%s:%s", slotCachePrefix, gen, q.Year, q.Month, ver, queryFingerprint(q)), nil
}

func (c *RedisSlotCache) Get(ctx context.Context, q models.FreeSlotQuery) (models.FreeSlotsByDate, string, bool) {
	key, err := c.key(ctx, q)
	if err != nil {
		zap.L().Debug("Free slot cache unavailable", zap.Error(err))
		return nil, "", false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			zap.L().Debug("Free slot cache read failed", zap.Error(err))
			return nil, "", false
		}
		return nil, key, false
	}
	var slots models.FreeSlotsByDate
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, key, false
	}
	return slots, key, true
}

func (c *RedisSlotCache) Set(ctx context.Context, key string, slots models.FreeSlotsByDate) {
	if key == "" {
		return
	}
	b, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
		zap.L().Debug("Free slot cache write failed", zap.Error(err))
	}
}

func (c *RedisSlotCache) InvalidateMonth(ctx context.Context, year, month int) {
	if err := c.client.Incr(ctx, monthVersionKey(year, month)).Err(); err != nil {
		zap.L().Warn("Free slot cache invalidation failed", zap.Int("year", year), zap.Int("month", month), zap.Error(err))
	}
}

func (c *RedisSlotCache) InvalidateAll(ctx context.Context) {
	if err := c.client.Incr(ctx, slotGenerationKey).Err(); err != nil {
		zap.L().Warn("Free slot cache invalidation failed", zap.Error(err))
	}
}

// noopSlotCache never hits.
type noopSlotCache struct{}

func (noopSlotCache) Get(context.Context, models.FreeSlotQuery) (models.FreeSlotsByDate, string, bool) {
	return nil, "", false
}
func (noopSlotCache) Set(context.Context, string, models.FreeSlotsByDate) {}
func (noopSlotCache) InvalidateMonth(context.Context, int, int)           {}
func (noopSlotCache) InvalidateAll(context.Context)                       {}
