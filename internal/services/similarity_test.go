package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (f *fakeEmbedder) Model() string { return "fake-model" }

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return []float32{1, 0}, nil
}

type fakeCache struct {
	entries map[string][]float32
	getErr  error
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]float32{}}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]float32, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	v, ok := c.entries[key]
	return v, ok, nil
}

func (c *fakeCache) Set(_ context.Context, key string, embedding []float32) error {
	c.sets++
	c.entries[key] = embedding
	return nil
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{name: "identical", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, want: 1},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 0},
		{name: "opposite clamps to zero", a: []float32{1, 0}, b: []float32{-1, 0}, want: 0},
		{name: "length mismatch", a: []float32{1, 0}, b: []float32{1}, want: 0},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 1}, want: 0},
		{name: "empty", a: nil, b: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CosineSimilarity(tt.a, tt.b), 1e-6)
		})
	}
}

func TestSimilarityService(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"resume": {1, 1},
		"job":    {1, 0},
	}}
	svc := NewSimilarityService(embedder, time.Second, nil)

	sim, err := svc.Similarity(context.Background(), "resume", "job")

	require.NoError(t, err)
	assert.InDelta(t, 0.7071, sim, 1e-4)
	assert.Equal(t, 2, embedder.calls)
}

func TestSimilarityService_Unavailable(t *testing.T) {
	svc := NewSimilarityService(nil, 0, nil)

	_, err := svc.Similarity(context.Background(), "a", "b")

	assert.ErrorIs(t, err, ErrEmbeddingUnavailable)
}

func TestCachedEmbedder(t *testing.T) {
	inner := &fakeEmbedder{}
	cache := newFakeCache()
	embedder := NewCachedEmbedder(inner, cache, nil)

	first, err := embedder.Embed(context.Background(), "python developer")
	require.NoError(t, err)
	second, err := embedder.Embed(context.Background(), "python developer")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, 1, cache.sets)
	assert.Contains(t, cache.entries, EmbeddingCacheKey("fake-model", "python developer"))
}

func TestCachedEmbedder_CacheErrorFallsThrough(t *testing.T) {
	inner := &fakeEmbedder{}
	cache := newFakeCache()
	cache.getErr = errors.New("redis down")

	embedding, err := NewCachedEmbedder(inner, cache, nil).Embed(context.Background(), "text")

	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0}, embedding)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedEmbedder_DoesNotCacheFailures(t *testing.T) {
	inner := &fakeEmbedder{err: ErrEmbeddingUnavailable}
	cache := newFakeCache()

	_, err := NewCachedEmbedder(inner, cache, nil).Embed(context.Background(), "text")

	assert.ErrorIs(t, err, ErrEmbeddingUnavailable)
	assert.Zero(t, cache.sets)
}

func TestNewCachedEmbedder_NilCacheReturnsInner(t *testing.T) {
	inner := &fakeEmbedder{}
	assert.Same(t, inner, NewCachedEmbedder(inner, nil, nil))
}

func TestEmbeddingCacheKey(t *testing.T) {
	key := EmbeddingCacheKey("m", "text")
	assert.Len(t, key, 64)
	assert.NotEqual(t, key, EmbeddingCacheKey("other", "text"))
	assert.Equal(t, key, EmbeddingCacheKey("m", "text"))
}

func TestTruncateUTF8(t *testing.T) {
	assert.Equal(t, "héllo", truncateUTF8("héllo", 10))
	assert.Equal(t, "h", truncateUTF8("héllo", 2))
	assert.Equal(t, "hé", truncateUTF8("héllo", 3))
}
