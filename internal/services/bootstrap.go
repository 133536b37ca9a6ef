package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"alfredoptarigan/autocv/internal/config"
)

// NewSimilarityFromConfig builds the embedding stack: Gemini when an API key is
// set, wrapped in the Redis cache when an address is set. The returned close
// function releases the Redis connection.
func NewSimilarityFromConfig(ctx context.Context, cfg *config.Config, log *zap.Logger) (*SimilarityService, func(), error) {
	closeFn := func() {}

	var embedder Embedder
	if cfg.Gemini.APIKey == "" {
		log.Warn("GEMINI_API_KEY not set, semantic similarity will score as 0")
		embedder = NewUnavailableEmbedder()
	} else {
		gemini, err := NewGeminiEmbedder(ctx, cfg.Gemini.APIKey, cfg.Gemini.EmbedModel, log)
		if err != nil {
			return nil, closeFn, fmt.Errorf("failed to initialize embeddings: %w", err)
		}
		embedder = gemini

		if cfg.Redis.Addr != "" {
			cache, client, err := NewRedisEmbeddingCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
			if err != nil {
				log.Warn("Embedding cache disabled", zap.Error(err))
			} else {
				log.Info("Embedding cache enabled", zap.String("addr", cfg.Redis.Addr))
				embedder = NewCachedEmbedder(embedder, cache, log)
				closeFn = func() { client.Close() }
			}
		}
	}

	return NewSimilarityService(embedder, cfg.Gemini.Timeout, log), closeFn, nil
}
