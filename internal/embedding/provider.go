package embedding

import (
	"context"
	"fmt"

	"github.com/hyperengineering/vectord/internal/config"
)

// New constructs the embedding backend selected by cfg.Provider.
// The config layer has already validated the provider name and API key.
func New(ctx context.Context, cfg config.EmbeddingConfig) (Embedder, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAI(cfg.APIKey, cfg.Model), nil
	case config.ProviderOllama:
		return NewOllama(cfg.OllamaHost, cfg.Model), nil
	case config.ProviderGemini:
		return NewGemini(ctx, cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}
