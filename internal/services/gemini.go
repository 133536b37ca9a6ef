package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// ErrEmbeddingUnavailable is returned when no embedding backend is configured
// or the backend could not produce a vector.
var ErrEmbeddingUnavailable = errors.New("embedding backend unavailable")

// maxEmbedInputBytes keeps requests under the embedding model's token limit.
const maxEmbedInputBytes = 40000

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Model() string
}

type geminiEmbedder struct {
	client     *genai.Client
	embedModel string
	logger     *zap.Logger
}

func NewGeminiEmbedder(ctx context.Context, apiKey, model string, logger *zap.Logger) (Embedder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiEmbedder{
		client:     client,
		embedModel: model,
		logger:     logger,
	}, nil
}

func (g *geminiEmbedder) Model() string {
	return g.embedModel
}

func (g *geminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	text = truncateUTF8(text, maxEmbedInputBytes)

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to generate embedding: %v", ErrEmbeddingUnavailable, err)
	}

	if result == nil || len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("%w: empty embedding result", ErrEmbeddingUnavailable)
	}

	g.logger.Debug("Embedding generated", zap.Int("dimensions", len(result.Embeddings[0].Values)))
	return result.Embeddings[0].Values, nil
}

type unavailableEmbedder struct{}

// NewUnavailableEmbedder returns an Embedder that always fails with
// ErrEmbeddingUnavailable. It is used when no API key is configured.
func NewUnavailableEmbedder() Embedder {
	return unavailableEmbedder{}
}

func (unavailableEmbedder) Model() string { return "" }

func (unavailableEmbedder) Embed(context.Context, string) ([]float32, error) {
	return nil, ErrEmbeddingUnavailable
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func utf8RuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
