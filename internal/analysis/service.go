package analysis

import (
	"context"
	"sync/atomic"
	"time"

	apperrors "github.com/FeedbackLens/feedback-lens-backend/errors"
	"github.com/FeedbackLens/feedback-lens-backend/internal/metrics"
	"github.com/FeedbackLens/feedback-lens-backend/logger"
	"github.com/FeedbackLens/feedback-lens-backend/types"
	"go.uber.org/zap"
)

// Service orchestrates feedback analysis: cache lookup, provider call,
// structural validation, and cache population. It owns the process-wide
// provider mode: once the online provider fails, the service permanently
// demotes to the offline generator for the rest of the process lifetime.
//
// Safe for concurrent use. Two concurrent misses for the same fingerprint may
// both invoke the provider and both write the cache; that is harmless because
// the value is a pure function of the fingerprint's source text.
type Service struct {
	cache   Cache
	online  Provider // nil when no remote provider is configured
	offline Provider

	// demoted flips to true after the first online failure and never resets.
	demoted atomic.Bool

	log *zap.SugaredLogger
}

// NewService creates an analysis service. online may be nil, in which case
// every analysis uses the offline generator.
func NewService(cache Cache, online Provider) *Service {
	return &Service{
		cache:   cache,
		online:  online,
		offline: NewOfflineProvider(),
		log:     logger.GetLogger(),
	}
}

// Analyze returns the analysis for text, from cache when possible. The caller
// always receives either a structurally valid analysis or an error; partial
// results are never exposed and never cached. Empty text is a valid input.
func (s *Service) Analyze(ctx context.Context, text string) (*types.FeedbackAnalysis, error) {
	fingerprint := Fingerprint(text)

	if cached, ok := s.cache.Get(ctx, fingerprint); ok {
		metrics.AnalysisCacheHits.Inc()
		s.log.Debugw("Analysis cache hit", "fingerprint", fingerprint)
		return cached, nil
	}
	metrics.AnalysisCacheMisses.Inc()

	analysis, producedBy, err := s.generate(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := analysis.Validate(); err != nil {
		// A provider returned a malformed analysis. Hard failure: never
		// cached, never coerced.
		metrics.ProviderCalls.WithLabelValues(producedBy, "invalid").Inc()
		return nil, apperrors.AnalysisFailed(err)
	}

	s.cache.Set(ctx, fingerprint, analysis)
	return analysis, nil
}

// generate runs the active provider, demoting online to offline on failure so
// the same call still returns a result. The second return value names the
// provider that produced the analysis.
func (s *Service) generate(ctx context.Context, text string) (*types.FeedbackAnalysis, string, error) {
	provider := s.activeProvider()

	start := time.Now()
	analysis, err := provider.Analyze(ctx, text)
	if err == nil {
		metrics.ProviderCalls.WithLabelValues(provider.Name(), "ok").Inc()
		s.log.Debugw("Analysis generated",
			"provider", provider.Name(),
			"duration", time.Since(start))
		return analysis, provider.Name(), nil
	}

	if provider == s.offline {
		// The offline generator itself is broken; nothing to fall back to.
		metrics.ProviderCalls.WithLabelValues(provider.Name(), "error").Inc()
		return nil, provider.Name(), apperrors.AnalysisFailed(err)
	}

	// Remote failure: demote for the remainder of the process lifetime and
	// complete this call offline. Concurrent double-demotion is a no-op.
	metrics.ProviderCalls.WithLabelValues(provider.Name(), "error").Inc()
	if s.demoted.CompareAndSwap(false, true) {
		metrics.ProviderFallbacks.Inc()
		s.log.Warnw("Remote analysis provider failed, falling back to offline mode permanently",
			"provider", provider.Name(),
			"error", err)
	}

	analysis, offlineErr := s.offline.Analyze(ctx, text)
	if offlineErr != nil {
		metrics.ProviderCalls.WithLabelValues(s.offline.Name(), "error").Inc()
		return nil, s.offline.Name(), apperrors.AnalysisFailed(offlineErr)
	}
	metrics.ProviderCalls.WithLabelValues(s.offline.Name(), "ok").Inc()
	return analysis, s.offline.Name(), nil
}

// activeProvider returns the provider for the current mode.
func (s *Service) activeProvider() Provider {
	if s.online != nil && !s.demoted.Load() {
		return s.online
	}
	return s.offline
}

// Degraded reports whether the service has fallen back to offline mode.
func (s *Service) Degraded() bool {
	return s.online == nil || s.demoted.Load()
}

// ClearCache drops every cached analysis. Idempotent; used for test isolation.
func (s *Service) ClearCache(ctx context.Context) error {
	return s.cache.Clear(ctx)
}
