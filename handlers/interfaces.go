package handlers

import (
	"context"

	"github.com/FeedbackLens/feedback-lens-backend/types"
)

// Analyzer produces an analysis for a piece of feedback text. Satisfied by
// the analysis service; handler tests substitute a stub.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*types.FeedbackAnalysis, error)
}
