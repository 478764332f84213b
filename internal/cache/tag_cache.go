package cache

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zeebo/blake3"

	"github.com/spec-kit/helpdesk-service/internal/classifier"
)

const keyPrefix = "helpdesk:classify:"

// TagCache stores classification results by content key.
type TagCache interface {
	Get(ctx context.Context, key string) (*classifier.Result, bool, error)
	Set(ctx context.Context, key string, result classifier.Result) error
}

// Key derives the cache key for text classified against dictionaries with the
// given content fingerprints. Any change in dictionary content yields a new key.
func Key(text, emotionalFingerprint, technicalFingerprint string, composed bool) string {
	sum := blake3.Sum256([]byte(text))
	mode := "raw"
	if composed {
		mode = "nfc"
	}
	return keyPrefix + mode + ":" +
		emotionalFingerprint + ":" +
		technicalFingerprint + ":" +
		hex.EncodeToString(sum[:])
}

type redisTagCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisTagCache returns a Redis-backed cache, or nil when client is nil.
func NewRedisTagCache(client *redis.Client, ttl time.Duration) TagCache {
	if client == nil {
		return nil
	}
	return &redisTagCache{client: client, ttl: ttl}
}

func (c *redisTagCache) Get(ctx context.Context, key string) (*classifier.Result, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var res classifier.Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, false, err
	}
	return &res, true, nil
}

func (c *redisTagCache) Set(ctx context.Context, key string, result classifier.Result) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}
