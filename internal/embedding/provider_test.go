package embedding

import (
	"context"
	"testing"

	"github.com/hyperengineering/vectord/internal/config"
)

func TestNew_OpenAI(t *testing.T) {
	e, err := New(context.Background(), config.EmbeddingConfig{
		Provider: config.ProviderOpenAI,
		Model:    "text-embedding-3-small",
		APIKey:   "test-key",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := e.(*OpenAI); !ok {
		t.Errorf("expected *OpenAI, got %T", e)
	}
	if e.ModelName() != "text-embedding-3-small" {
		t.Errorf("model = %q, want text-embedding-3-small", e.ModelName())
	}
}

func TestNew_Ollama(t *testing.T) {
	e, err := New(context.Background(), config.EmbeddingConfig{
		Provider:   config.ProviderOllama,
		Model:      "nomic-embed-text",
		OllamaHost: "http://localhost:11434",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := e.(*Ollama); !ok {
		t.Errorf("expected *Ollama, got %T", e)
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(context.Background(), config.EmbeddingConfig{Provider: "bogus"})
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
}
