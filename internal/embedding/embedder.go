package embedding

import "context"

// Embedder defines the interface contract for embedding generation backends.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Health verifies the backend can serve the configured model.
	// It is called once at startup; failure is fatal.
	Health(ctx context.Context) error

	ModelName() string
}
