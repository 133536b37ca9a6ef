package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/autocv/internal/metrics"
)

// SimilarityService turns embeddings into a [0,1] similarity score. It
// satisfies scoring.Similarity.
type SimilarityService struct {
	embedder Embedder
	timeout  time.Duration
	logger   *zap.Logger
}

func NewSimilarityService(embedder Embedder, timeout time.Duration, logger *zap.Logger) *SimilarityService {
	if embedder == nil {
		embedder = NewUnavailableEmbedder()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SimilarityService{embedder: embedder, timeout: timeout, logger: logger}
}

// Similarity embeds both texts within one bounded call window. There is no
// retry: a failure is reported and the caller scores similarity as 0.
func (s *SimilarityService) Similarity(ctx context.Context, a, b string) (float64, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	va, err := s.embedder.Embed(ctx, a)
	if err != nil {
		metrics.EmbeddingFailures.Inc()
		s.logger.Debug("Embedding failed", zap.String("model", s.embedder.Model()), zap.Error(err))
		return 0, fmt.Errorf("failed to embed resume text: %w", err)
	}

	vb, err := s.embedder.Embed(ctx, b)
	if err != nil {
		metrics.EmbeddingFailures.Inc()
		s.logger.Debug("Embedding failed", zap.String("model", s.embedder.Model()), zap.Error(err))
		return 0, fmt.Errorf("failed to embed reference text: %w", err)
	}

	return CosineSimilarity(va, vb), nil
}

// Embed exposes the underlying embedder for indexing.
func (s *SimilarityService) Embed(ctx context.Context, text string) ([]float32, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.embedder.Embed(ctx, text)
}

// CosineSimilarity returns the cosine of the angle between a and b clamped to
// [0,1]. Mismatched or zero vectors give 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	switch {
	case math.IsNaN(sim) || sim < 0:
		return 0
	case sim > 1:
		return 1
	}
	return sim
}
