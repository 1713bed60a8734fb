// Package store defines the persistence contracts consumed by the handlers.
package store

import (
	"context"

	"github.com/FeedbackLens/feedback-lens-backend/types"
)

// FeedbackStore persists feedback entries with their analyses.
type FeedbackStore interface {
	// CreateFeedback inserts a new feedback entry with its analysis
	// atomically and returns the stored row, including the assigned ID and
	// creation timestamp.
	CreateFeedback(ctx context.Context, text, email string, analysis *types.FeedbackAnalysis) (*types.Feedback, error)

	// GetFeedback retrieves a single feedback entry by ID.
	// Returns ErrNotFound when no row matches.
	GetFeedback(ctx context.Context, id int64) (*types.Feedback, error)

	// ListFeedback returns one page of feedback matching the filters, newest
	// first, along with the total number of matching rows. The page and the
	// count are computed under identical filter conditions.
	ListFeedback(ctx context.Context, filters types.FeedbackFilters, params types.PaginationParams) ([]types.Feedback, int, error)
}
