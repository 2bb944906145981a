package reports

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores rendered reports. Keys embed a generation number so that
// one Invalidate call retires every earlier entry.
type Cache interface {
	Key(ctx context.Context, req Request) (string, error)
	Get(ctx context.Context, key string) (*Report, bool)
	Set(ctx context.Context, key string, r *Report) error
	Invalidate(ctx context.Context) error
}

// NopCache never stores anything.
type NopCache struct{}

func (NopCache) Key(context.Context, Request) (string, error) { return "", nil }
func (NopCache) Get(context.Context, string) (*Report, bool)  { return nil, false }
func (NopCache) Set(context.Context, string, *Report) error   { return nil }
func (NopCache) Invalidate(context.Context) error             { return nil }

const (
	redisKeyPrefix     = "reports:"
	redisGenerationKey = redisKeyPrefix + "generation"
)

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Key(ctx context.Context, req Request) (string, error) {
	gen, err := c.client.Get(ctx, redisGenerationKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return fmt.Sprintf("%s%d:%s", redisKeyPrefix, gen, requestDigest(req)), nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (*Report, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var cached struct {
		Type    Type            `json:"type"`
		Data    json.RawMessage `json:"data"`
		Summary json.RawMessage `json:"summary"`
	}
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, false
	}
	return &Report{Type: cached.Type, Data: cached.Data, Summary: cached.Summary}, true
}

func (c *RedisCache) Set(ctx context.Context, key string, r *Report) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, redisGenerationKey).Err()
}

// requestDigest identifies a request independently of asset id order.
func requestDigest(req Request) string {
	ids := slices.Clone(req.AssetIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	parts := []string{string(req.Type), formatTime(req.StartDate), formatTime(req.EndDate), formatTime(req.TargetDate)}
	for _, id := range ids {
		parts = append(parts, strconv.FormatUint(uint64(id), 10))
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return string(req.Type) + ":" + hex.EncodeToString(sum[:12])
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(time.RFC3339Nano)
}
