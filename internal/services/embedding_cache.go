package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"alfredoptarigan/autocv/internal/metrics"
)

type EmbeddingCache interface {
	Get(ctx context.Context, key string) ([]float32, bool, error)
	Set(ctx context.Context, key string, embedding []float32) error
}

type redisEmbeddingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisEmbeddingCache(ctx context.Context, addr, password string, db int, ttl time.Duration) (EmbeddingCache, *redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &redisEmbeddingCache{client: client, ttl: ttl}, client, nil
}

func (c *redisEmbeddingCache) Get(ctx context.Context, key string) ([]float32, bool, error) {
	data, err := c.client.Get(ctx, "embedding:"+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get embedding cache: %w", err)
	}

	var embedding []float32
	if err := json.Unmarshal(data, &embedding); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal embedding: %w", err)
	}
	return embedding, true, nil
}

func (c *redisEmbeddingCache) Set(ctx context.Context, key string, embedding []float32) error {
	data, err := json.Marshal(embedding)
	if err != nil {
		return fmt.Errorf("failed to marshal embedding: %w", err)
	}

	if err := c.client.Set(ctx, "embedding:"+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set embedding cache: %w", err)
	}
	return nil
}

type cachedEmbedder struct {
	next   Embedder
	cache  EmbeddingCache
	logger *zap.Logger
}

// NewCachedEmbedder wraps next with a read-through cache. Cache errors are
// logged and never fail the embedding call.
func NewCachedEmbedder(next Embedder, cache EmbeddingCache, logger *zap.Logger) Embedder {
	if cache == nil {
		return next
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &cachedEmbedder{next: next, cache: cache, logger: logger}
}

func (c *cachedEmbedder) Model() string {
	return c.next.Model()
}

func (c *cachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	key := EmbeddingCacheKey(c.next.Model(), text)

	embedding, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("Embedding cache read failed", zap.Error(err))
	}
	if ok {
		metrics.CacheHits.WithLabelValues("embedding").Inc()
		return embedding, nil
	}
	metrics.CacheMisses.WithLabelValues("embedding").Inc()

	embedding, err = c.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, embedding); err != nil {
		c.logger.Warn("Embedding cache write failed", zap.Error(err))
	}
	return embedding, nil
}

// EmbeddingCacheKey hashes the model and text so keys have a fixed length.
func EmbeddingCacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + text))
	return hex.EncodeToString(sum[:])
}
