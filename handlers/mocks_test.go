package handlers

import (
	"context"

	"github.com/FeedbackLens/feedback-lens-backend/internal/store"
	"github.com/FeedbackLens/feedback-lens-backend/types"
	"github.com/stretchr/testify/mock"
)

// MockFeedbackStore implements store.FeedbackStore for handler tests.
type MockFeedbackStore struct {
	mock.Mock
}

var _ store.FeedbackStore = (*MockFeedbackStore)(nil)

func (m *MockFeedbackStore) CreateFeedback(ctx context.Context, text, email string, analysis *types.FeedbackAnalysis) (*types.Feedback, error) {
	args := m.Called(ctx, text, email, analysis)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Feedback), args.Error(1)
}

func (m *MockFeedbackStore) GetFeedback(ctx context.Context, id int64) (*types.Feedback, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Feedback), args.Error(1)
}

func (m *MockFeedbackStore) ListFeedback(ctx context.Context, filters types.FeedbackFilters, params types.PaginationParams) ([]types.Feedback, int, error) {
	args := m.Called(ctx, filters, params)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]types.Feedback), args.Int(1), args.Error(2)
}

// MockAnalyzer implements the Analyzer interface for handler tests.
type MockAnalyzer struct {
	mock.Mock
}

var _ Analyzer = (*MockAnalyzer)(nil)

func (m *MockAnalyzer) Analyze(ctx context.Context, text string) (*types.FeedbackAnalysis, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.FeedbackAnalysis), args.Error(1)
}
