package embed

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// CachingEmbedder memoizes single-query embeddings in front of another
// Embedder. Repeated queries are common when clients retry or page
// through the same analysis, and each embedding round trip costs more
// than the whole ranking pass. Batch calls bypass the cache since they
// only happen once, at index build time.
type CachingEmbedder struct {
	inner Embedder
	cache *gocache.Cache
}

// NewCachingEmbedder wraps inner with a TTL cache. A non-positive ttl
// disables expiry.
func NewCachingEmbedder(inner Embedder, ttl time.Duration) *CachingEmbedder {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &CachingEmbedder{
		inner: inner,
		cache: gocache.New(ttl, 10*time.Minute),
	}
}

func (c *CachingEmbedder) Dimension() int { return c.inner.Dimension() }

func (c *CachingEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	key := cacheKey(text)
	if cached, ok := c.cache.Get(key); ok {
		return cached.([]float32), nil
	}
	vec, err := c.inner.EmbedQuery(ctx, text)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, vec, gocache.DefaultExpiration)
	return vec, nil
}

func (c *CachingEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return c.inner.EmbedBatch(ctx, texts)
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
