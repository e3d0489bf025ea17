package services

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const (
	geminiEmbedModel = "text-embedding-004"
	geminiEmbedDim   = 768
)

// geminiEmbedder produces embeddings through the Gemini API. It shares
// the Embedder contract with the local hashing embedder, so the two are
// interchangeable behind configuration.
type geminiEmbedder struct {
	client        *genai.Client
	embedModel    string
	maxInputChars int
}

func NewGeminiEmbedder(apiKey string, maxInputChars int) (Embedder, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if maxInputChars <= 0 {
		maxInputChars = DefaultMaxInputChars
	}

	return &geminiEmbedder{
		client:        client,
		embedModel:    geminiEmbedModel,
		maxInputChars: maxInputChars,
	}, nil
}

func (g *geminiEmbedder) Dimension() int {
	return geminiEmbedDim
}

// Embed implements Embedder. The API applies a fixed model so equal text
// yields equal vectors.
func (g *geminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if len(text) > g.maxInputChars {
		return nil, fmt.Errorf("%w: input length %d exceeds limit %d",
			ErrEmbeddingUnavailable, len(text), g.maxInputChars)
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingUnavailable, err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("%w: empty embedding result", ErrEmbeddingUnavailable)
	}

	return result.Embeddings[0].Values, nil
}
