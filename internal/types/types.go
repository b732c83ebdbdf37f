package types

import "encoding/json"

// EmbedRequest is the body of POST /embed. Texts is kept as raw JSON so the
// handler can report precisely which part of the payload is malformed
// instead of surfacing a generic decode error.
type EmbedRequest struct {
	Texts json.RawMessage `json:"texts"`
}

// EmbedResponse is the success body of POST /embed. Embeddings holds one
// vector per input text, in input order.
type EmbedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// ErrorResponse is the body of every non-200 response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}
