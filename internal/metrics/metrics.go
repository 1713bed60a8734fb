// Package metrics defines the Prometheus instrumentation for the feedback
// analysis pipeline. Collectors are registered on the default registry and
// exposed via the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AnalysisCacheHits counts analysis requests served from the cache.
	AnalysisCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feedback_analysis_cache_hits_total",
		Help: "Number of feedback analyses served from the cache.",
	})

	// AnalysisCacheMisses counts analysis requests that required a provider call.
	AnalysisCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feedback_analysis_cache_misses_total",
		Help: "Number of feedback analyses that missed the cache.",
	})

	// ProviderCalls counts provider invocations by provider name and outcome.
	ProviderCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feedback_analysis_provider_calls_total",
		Help: "Number of analysis provider invocations.",
	}, []string{"provider", "outcome"})

	// ProviderFallbacks counts permanent online-to-offline demotions.
	ProviderFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feedback_analysis_provider_fallbacks_total",
		Help: "Number of times the online provider was demoted to offline mode.",
	})
)
