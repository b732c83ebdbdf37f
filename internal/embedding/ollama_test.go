package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newOllamaServer spins up a fake Ollama server handling /api/embed and
// /api/tags.
func newOllamaServer(t *testing.T, embeddings [][]float32, models []string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/api/embed", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req ollamaEmbedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ollamaEmbedResponse{Embeddings: embeddings[:min(len(req.Input), len(embeddings))]})
	})

	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		type model struct {
			Name string `json:"name"`
		}
		resp := struct {
			Models []model `json:"models"`
		}{}
		for _, name := range models {
			resp.Models = append(resp.Models, model{Name: name})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestOllama_EmbedBatch_ReturnsVectors(t *testing.T) {
	srv := newOllamaServer(t, [][]float32{{0.1, 0.2}, {0.3, 0.4}}, nil)
	client := NewOllama(srv.URL, "nomic-embed-text")

	result, err := client.EmbedBatch(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result) != 2 {
		t.Fatalf("expected 2 embeddings, got %d", len(result))
	}
	if result[0][0] != 0.1 || result[1][1] != 0.4 {
		t.Errorf("unexpected vectors: %v", result)
	}
}

func TestOllama_EmbedBatch_EmptyInput(t *testing.T) {
	// No server: empty input must not hit the network
	client := NewOllama("http://127.0.0.1:1", "nomic-embed-text")

	result, err := client.EmbedBatch(context.Background(), []string{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || len(result) != 0 {
		t.Errorf("expected empty slice, got %v", result)
	}
}

func TestOllama_EmbedBatch_MismatchedCount(t *testing.T) {
	srv := newOllamaServer(t, [][]float32{{0.1}}, nil)
	client := NewOllama(srv.URL, "nomic-embed-text")

	_, err := client.EmbedBatch(context.Background(), []string{"a", "b", "c"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "expected 3 embeddings") {
		t.Errorf("error should mention expected count, got: %v", err)
	}
}

func TestOllama_EmbedBatch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model runner crashed", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewOllama(srv.URL, "nomic-embed-text")

	_, err := client.EmbedBatch(context.Background(), []string{"a"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("error should include status code, got: %v", err)
	}
	if !strings.Contains(err.Error(), "model runner crashed") {
		t.Errorf("error should include server detail, got: %v", err)
	}
}

func TestOllama_EmbedBatch_ServerUnreachable(t *testing.T) {
	client := NewOllama("http://127.0.0.1:1", "nomic-embed-text")

	_, err := client.EmbedBatch(context.Background(), []string{"a"})
	if err == nil {
		t.Fatal("expected error for unreachable server")
	}
}

func TestOllama_EmbedBatch_RespectsContextCancellation(t *testing.T) {
	srv := newOllamaServer(t, [][]float32{{0.1}}, nil)
	client := NewOllama(srv.URL, "nomic-embed-text")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.EmbedBatch(ctx, []string{"a"})
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestOllama_Health_ModelPresent(t *testing.T) {
	srv := newOllamaServer(t, nil, []string{"nomic-embed-text:latest"})
	client := NewOllama(srv.URL, "nomic-embed-text")

	if err := client.Health(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestOllama_Health_ExactTagMatch(t *testing.T) {
	srv := newOllamaServer(t, nil, []string{"mxbai-embed-large:335m"})
	client := NewOllama(srv.URL, "mxbai-embed-large:335m")

	if err := client.Health(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestOllama_Health_ModelMissing(t *testing.T) {
	srv := newOllamaServer(t, nil, []string{"llama3:latest"})
	client := NewOllama(srv.URL, "nomic-embed-text")

	err := client.Health(context.Background())
	if err == nil {
		t.Fatal("expected error for missing model")
	}
	if !strings.Contains(err.Error(), "nomic-embed-text") {
		t.Errorf("error should name the model, got: %v", err)
	}
	if !strings.Contains(err.Error(), "ollama pull") {
		t.Errorf("error should suggest the pull command, got: %v", err)
	}
}

func TestOllama_Health_ServerUnreachable(t *testing.T) {
	client := NewOllama("http://127.0.0.1:1", "nomic-embed-text")

	if err := client.Health(context.Background()); err == nil {
		t.Fatal("expected error for unreachable server")
	}
}

func TestOllama_TrimsTrailingSlashFromHost(t *testing.T) {
	srv := newOllamaServer(t, nil, []string{"nomic-embed-text:latest"})
	client := NewOllama(srv.URL+"/", "nomic-embed-text")

	if err := client.Health(context.Background()); err != nil {
		t.Errorf("unexpected error with trailing slash host: %v", err)
	}
}

func TestOllama_ModelName(t *testing.T) {
	client := NewOllama("http://localhost:11434", "nomic-embed-text")
	if client.ModelName() != "nomic-embed-text" {
		t.Errorf("model name = %q, want nomic-embed-text", client.ModelName())
	}
}
