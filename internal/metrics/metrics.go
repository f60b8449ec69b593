// In file: internal/metrics/metrics.go

// Package metrics registers the gateway's Prometheus collectors on the default
// registry. The collectors are package-level so any component can record without
// having a registry threaded through its constructor.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP
var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_api_requests_total",
			Help: "Total HTTP requests handled by the gateway.",
		},
		[]string{"method", "path", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assistant_api_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Tool dispatch
var (
	// ToolInvocationsTotal counts every Invoke, labelled by the resolved domain
	// and the error kind ("ok" on success).
	ToolInvocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_tool_invocations_total",
			Help: "Tool invocations by domain, tool and outcome.",
		},
		[]string{"domain", "tool", "outcome"},
	)

	ToolInvocationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assistant_tool_invocation_duration_seconds",
			Help:    "Tool handler latency.",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"domain", "tool"},
	)
)

// Conversation
var (
	IntentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_intents_total",
			Help: "Classified utterances by intent tag.",
		},
		[]string{"intent"},
	)

	StreamChunksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assistant_stream_chunks_total",
			Help: "Token chunks emitted by streaming responses.",
		},
	)

	StreamsCancelledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assistant_streams_cancelled_total",
			Help: "Streaming responses abandoned by the consumer before the done marker.",
		},
	)

	ActiveStreams = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "assistant_active_streams",
			Help: "Streaming responses currently in flight.",
		},
	)
)
