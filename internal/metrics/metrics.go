package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts processed requests by method, path, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vectord_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures server response time.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "vectord_http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
			// Buckets cover validation failures (sub-millisecond) through
			// large remote inference batches (tens of seconds)
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "path"},
	)

	// TextsEmbeddedTotal counts texts successfully embedded, by provider.
	TextsEmbeddedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vectord_texts_embedded_total",
			Help: "Total number of texts successfully embedded",
		},
		[]string{"provider"},
	)

	// EmbeddingFailuresTotal counts failed backend embedding calls, by provider.
	EmbeddingFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vectord_embedding_failures_total",
			Help: "Total number of failed embedding backend calls",
		},
		[]string{"provider"},
	)
)
