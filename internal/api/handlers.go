package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hyperengineering/vectord/internal/embedding"
	"github.com/hyperengineering/vectord/internal/metrics"
	"github.com/hyperengineering/vectord/internal/types"
	"github.com/hyperengineering/vectord/internal/validation"
)

// Handler implements the API handlers.
type Handler struct {
	embedder embedding.Embedder
	provider string
	version  string
	limits   validation.Limits
}

// NewHandler creates a Handler around the process-wide embedder.
func NewHandler(e embedding.Embedder, provider, version string, limits validation.Limits) *Handler {
	return &Handler{
		embedder: e,
		provider: provider,
		version:  version,
		limits:   limits,
	}
}

// Embed handles POST /embed.
func (h *Handler) Embed(w http.ResponseWriter, r *http.Request) {
	var req types.EmbedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	texts, err := validation.ValidateTexts(req.Texts, h.limits)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if len(texts) == 0 {
		WriteJSON(w, types.EmbedResponse{Embeddings: [][]float32{}})
		return
	}

	embeddings, err := h.embedder.EmbedBatch(r.Context(), texts)
	if err != nil {
		slog.Error("embedding failed",
			"error", err,
			"provider", h.provider,
			"batch_size", len(texts),
			"request_id", RequestIDFromContext(r.Context()),
		)
		metrics.EmbeddingFailuresTotal.WithLabelValues(h.provider).Inc()
		WriteError(w, http.StatusInternalServerError, "Failed to generate embeddings")
		return
	}

	if embeddings == nil {
		embeddings = [][]float32{}
	}
	metrics.TextsEmbeddedTotal.WithLabelValues(h.provider).Add(float64(len(texts)))

	WriteJSON(w, types.EmbedResponse{Embeddings: embeddings})
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, types.HealthResponse{
		Status:   "healthy",
		Version:  h.version,
		Provider: h.provider,
		Model:    h.embedder.ModelName(),
	})
}
