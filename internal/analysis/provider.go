package analysis

import (
	"context"

	"github.com/FeedbackLens/feedback-lens-backend/types"
)

// Provider generates a FeedbackAnalysis for a piece of feedback text.
// Implementations: OfflineProvider (deterministic, local) and OpenAIProvider
// (remote chat completion).
type Provider interface {
	// Name identifies the provider in logs and metrics.
	Name() string
	// Analyze produces an analysis for text. The result is not guaranteed to
	// satisfy the FeedbackAnalysis invariant; the caller validates it.
	Analyze(ctx context.Context, text string) (*types.FeedbackAnalysis, error)
}
