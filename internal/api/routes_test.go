package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hyperengineering/vectord/internal/types"
	"github.com/hyperengineering/vectord/internal/validation"
)

func newTestRouter(e *mockEmbedder) http.Handler {
	h := NewHandler(e, "openai", "1.0.0", validation.Limits{MaxBatchSize: 512})
	return NewRouter(h)
}

func TestRouter_EmbedRoute(t *testing.T) {
	router := newTestRouter(&mockEmbedder{model: "m"})

	req := httptest.NewRequest(http.MethodPost, "/embed", strings.NewReader(`{"texts": ["hello"]}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp types.EmbedResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(resp.Embeddings) != 1 {
		t.Errorf("embeddings length = %d, want 1", len(resp.Embeddings))
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestRouter_EmbedRejectsGet(t *testing.T) {
	router := newTestRouter(&mockEmbedder{model: "m"})

	req := httptest.NewRequest(http.MethodGet, "/embed", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
	}
}

func TestRouter_HealthRoute(t *testing.T) {
	router := newTestRouter(&mockEmbedder{model: "m"})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestRouter_MetricsRoute(t *testing.T) {
	router := newTestRouter(&mockEmbedder{model: "m"})

	// Labeled series only exist after a first observation
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "vectord_http_requests_total") {
		t.Error("metrics output should contain vectord_http_requests_total")
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := newTestRouter(&mockEmbedder{model: "m"})

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
