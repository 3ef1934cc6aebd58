package embeddings

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL is how long cached embeddings stay valid.
const DefaultCacheTTL = 24 * time.Hour

// KeyValue is the narrow slice of a Redis client the cache needs. It exists
// so tests can substitute a fake.
type KeyValue interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// CachedProvider wraps a Provider with a Redis cache. Concurrent misses for
// the same text collapse into a single provider call. Cache failures
// degrade to a direct provider call; they never fail the embed.
type CachedProvider struct {
	provider Provider
	kv       KeyValue
	ttl      time.Duration
	group    singleflight.Group
	log      *zap.Logger
}

// NewCachedProvider wraps provider with the given cache client. A nil kv
// disables caching. The cache client is injected rather than constructed
// here so callers own its lifecycle.
func NewCachedProvider(provider Provider, kv KeyValue, ttl time.Duration, log *zap.Logger) *CachedProvider {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedProvider{provider: provider, kv: kv, ttl: ttl, log: log}
}

// Embed returns the cached embedding for text, or generates and caches one.
func (c *CachedProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if c.kv == nil {
		return c.provider.Embed(ctx, text)
	}

	key := cacheKey(text)
	if cached, ok := c.lookup(ctx, key); ok {
		return cached, nil
	}

	result, err, _ := c.group.Do(key, func() (any, error) {
		embedding, err := c.provider.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		c.store(ctx, key, embedding)
		return embedding, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]float32), nil
}

// Close closes the underlying provider. The cache client is caller-owned.
func (c *CachedProvider) Close() error {
	return c.provider.Close()
}

func (c *CachedProvider) lookup(ctx context.Context, key string) ([]float32, bool) {
	data, err := c.kv.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Debug("embedding cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var embedding []float32
	if err := json.Unmarshal(data, &embedding); err != nil || len(embedding) == 0 {
		return nil, false
	}
	return embedding, true
}

func (c *CachedProvider) store(ctx context.Context, key string, embedding []float32) {
	data, err := json.Marshal(embedding)
	if err != nil {
		return
	}
	if err := c.kv.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Debug("embedding cache write failed", zap.Error(err))
	}
}

// cacheKey hashes the text so arbitrary content maps to a bounded key.
func cacheKey(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "emb:" + hex.EncodeToString(hash[:16])
}
