package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/turtacn/NyayVandan/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NyayVandan/pkg/errors"
)

// ErrCacheMiss marks an absent key; callers fall through to the loader.
var ErrCacheMiss = errors.New(errors.ErrCodeNotFound, "cache miss")

// ResponseCache stores JSON-serialized analysis responses keyed by a
// digest of the query parameters. Concurrent misses for the same key
// collapse into a single loader call.
type ResponseCache struct {
	client *Client
	logger logging.Logger
	prefix string
	ttl    time.Duration
	jitter func(time.Duration) time.Duration
	group  singleflight.Group
}

// NewResponseCache builds a cache with the given key prefix and TTL.
func NewResponseCache(client *Client, prefix string, ttl time.Duration, logger logging.Logger) *ResponseCache {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if prefix == "" {
		prefix = "nyay:"
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &ResponseCache{
		client: client,
		logger: logger.Named("response_cache"),
		prefix: prefix,
		ttl:    ttl,
		jitter: jitterTTL,
	}
}

// Key derives a stable cache key from the query text and result count.
func (c *ResponseCache) Key(caseText string, topK int) string {
	sum := sha256.Sum256([]byte(caseText))
	return fmt.Sprintf("analyze:%s:%d", hex.EncodeToString(sum[:]), topK)
}

// Get loads a cached value into dest. Returns ErrCacheMiss when the
// key is absent.
func (c *ResponseCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.rdb.Get(ctx, c.prefix+key).Bytes()
	if err == redis.Nil {
		return ErrCacheMiss
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to get from cache")
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to decode cached value")
	}
	return nil
}

// Set stores a value under key. TTL gets +/-10% jitter so a burst of
// writes does not expire at once.
func (c *ResponseCache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode value for cache")
	}
	if err := c.client.rdb.Set(ctx, c.prefix+key, data, c.jitter(c.ttl)).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to set cache value")
	}
	return nil
}

// GetOrLoad returns the cached value or runs loader once per key across
// concurrent callers, caching its result. Cache failures degrade to
// calling the loader; they never fail the request.
func (c *ResponseCache) GetOrLoad(ctx context.Context, key string, dest interface{},
	loader func(ctx context.Context) (interface{}, error)) error {

	err := c.Get(ctx, key, dest)
	if err == nil {
		return nil
	}
	if !errors.IsCode(err, errors.ErrCodeNotFound) {
		c.logger.Warn("cache read failed, falling through", logging.Err(err))
	}

	value, err, _ := c.group.Do(key, func() (interface{}, error) {
		v, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		if err := c.Set(ctx, key, v); err != nil {
			c.logger.Warn("cache write failed", logging.Err(err))
		}
		return v, nil
	})
	if err != nil {
		return err
	}

	// Round-trip through JSON so dest is filled the same way on hit
	// and miss paths.
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode loaded value")
	}
	return json.Unmarshal(data, dest)
}

// Invalidate removes keys; used after re-ingestion.
func (c *ResponseCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.prefix + k
	}
	if err := c.client.rdb.Del(ctx, full...).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "failed to invalidate cache keys")
	}
	return nil
}

// jitterTTL spreads expiry by +/-10% so a burst of writes does not
// expire at once.
func jitterTTL(ttl time.Duration) time.Duration {
	jitter := float64(ttl) * 0.1 * (rand.Float64()*2 - 1)
	return ttl + time.Duration(jitter)
}
