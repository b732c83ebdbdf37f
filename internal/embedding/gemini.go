package embedding

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Compile-time interface check
var _ Embedder = (*Gemini)(nil)

// ContentEmbedder defines the interface for the genai embedding call.
// This abstraction enables testing without calling the real Gemini API.
type ContentEmbedder interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// genaiModels adapts *genai.Models to ContentEmbedder.
type genaiModels struct {
	models *genai.Models
}

func (g genaiModels) EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error) {
	return g.models.EmbedContent(ctx, model, contents, config)
}

// Gemini generates embeddings through Google's Gemini API.
type Gemini struct {
	models ContentEmbedder
	model  string
}

// NewGemini creates a Gemini embedding backend keyed by apiKey.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &Gemini{
		models: genaiModels{models: client.Models},
		model:  model,
	}, nil
}

// Embed generates an embedding for a single text.
func (g *Gemini) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := g.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedding generation failed: no data returned")
	}
	return vectors[0], nil
}

// EmbedBatch generates embeddings for multiple texts in a single call.
// The API returns one embedding per content, in content order.
func (g *Gemini) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = &genai.Content{
			Parts: []*genai.Part{{Text: text}},
		}
	}

	result, err := g.models.EmbedContent(ctx, g.model, contents, &genai.EmbedContentConfig{})
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}

	if len(result.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding generation failed: expected %d embeddings, got %d", len(texts), len(result.Embeddings))
	}

	embeddings := make([][]float32, len(result.Embeddings))
	for i, emb := range result.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return nil, fmt.Errorf("embedding generation failed: empty vector at index %d", i)
		}
		embeddings[i] = emb.Values
	}

	return embeddings, nil
}

// Health embeds a probe string to verify the API key and model are usable.
func (g *Gemini) Health(ctx context.Context) error {
	if _, err := g.Embed(ctx, "ping"); err != nil {
		return fmt.Errorf("gemini health check failed: %w", err)
	}
	return nil
}

// ModelName returns the embedding model name.
func (g *Gemini) ModelName() string {
	return g.model
}
