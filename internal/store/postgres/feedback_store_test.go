package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/FeedbackLens/feedback-lens-backend/internal/store"
	"github.com/FeedbackLens/feedback-lens-backend/types"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (pgxmock.PgxPoolIface, *FeedbackStore) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewFeedbackStore(mock)
}

func testAnalysis() *types.FeedbackAnalysis {
	return &types.FeedbackAnalysis{
		Summary:    "Checkout fails on the payment step",
		Sentiment:  types.SentimentNegative,
		Tags:       []string{"bug", "performance"},
		Priority:   types.PriorityP0,
		NextAction: "Escalate to engineering",
	}
}

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestFeedbackStore_CreateFeedback(t *testing.T) {
	mock, s := setupMockDB(t)
	ctx := context.Background()
	analysis := testAnalysis()
	now := time.Now()

	t.Run("successful creation", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "text", "email", "created_at", "analysis"}).
			AddRow(int64(1), "Checkout is broken", ptr("user@example.com"), now, mustJSON(t, analysis))

		mock.ExpectQuery(`INSERT INTO feedback \(text, email, analysis\)`).
			WithArgs("Checkout is broken", "user@example.com", mustJSON(t, analysis)).
			WillReturnRows(rows)

		fb, err := s.CreateFeedback(ctx, "Checkout is broken", "user@example.com", analysis)
		require.NoError(t, err)
		assert.Equal(t, int64(1), fb.ID)
		assert.Equal(t, "Checkout is broken", fb.Text)
		assert.Equal(t, "user@example.com", fb.Email)
		assert.Equal(t, *analysis, fb.Analysis)
	})

	t.Run("empty email stored as NULL", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "text", "email", "created_at", "analysis"}).
			AddRow(int64(2), "Anonymous gripe", (*string)(nil), now, mustJSON(t, analysis))

		mock.ExpectQuery(`INSERT INTO feedback \(text, email, analysis\)`).
			WithArgs("Anonymous gripe", nil, mustJSON(t, analysis)).
			WillReturnRows(rows)

		fb, err := s.CreateFeedback(ctx, "Anonymous gripe", "", analysis)
		require.NoError(t, err)
		assert.Empty(t, fb.Email)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO feedback`).
			WithArgs("text", nil, mustJSON(t, analysis)).
			WillReturnError(errors.New("connection refused"))

		_, err := s.CreateFeedback(ctx, "text", "", analysis)
		require.Error(t, err)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedbackStore_GetFeedback(t *testing.T) {
	mock, s := setupMockDB(t)
	ctx := context.Background()
	analysis := testAnalysis()
	now := time.Now()

	t.Run("successful retrieval", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "text", "email", "created_at", "analysis"}).
			AddRow(int64(7), "Dark mode please", (*string)(nil), now, mustJSON(t, analysis))

		mock.ExpectQuery(`SELECT id, text, email, created_at, analysis\s+FROM feedback\s+WHERE id = \$1`).
			WithArgs(int64(7)).
			WillReturnRows(rows)

		fb, err := s.GetFeedback(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), fb.ID)
		assert.Equal(t, "Dark mode please", fb.Text)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, text, email, created_at, analysis\s+FROM feedback\s+WHERE id = \$1`).
			WithArgs(int64(99)).
			WillReturnError(pgx.ErrNoRows)

		_, err := s.GetFeedback(ctx, 99)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedbackStore_ListFeedback(t *testing.T) {
	mock, s := setupMockDB(t)
	ctx := context.Background()
	analysis := testAnalysis()
	now := time.Now()

	t.Run("sentiment filter applies to page and count", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "text", "email", "created_at", "analysis"}).
			AddRow(int64(3), "Latest negative", (*string)(nil), now, mustJSON(t, analysis)).
			AddRow(int64(1), "Older negative", (*string)(nil), now.Add(-time.Hour), mustJSON(t, analysis))

		mock.ExpectQuery(`SELECT (.+) FROM feedback WHERE analysis->>'sentiment' = \$1 ORDER BY created_at DESC LIMIT \$2 OFFSET \$3`).
			WithArgs("negative", 10, 0).
			WillReturnRows(rows)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM feedback WHERE analysis->>'sentiment' = \$1`).
			WithArgs("negative").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))

		feedback, total, err := s.ListFeedback(ctx,
			types.FeedbackFilters{Sentiment: "negative"},
			types.PaginationParams{Page: 1, PageSize: 10},
		)
		require.NoError(t, err)
		assert.Len(t, feedback, 2)
		assert.Equal(t, 2, total)
		assert.Equal(t, int64(3), feedback[0].ID, "newest first")
	})

	t.Run("second page with pageSize 1", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "text", "email", "created_at", "analysis"}).
			AddRow(int64(2), "Second newest", (*string)(nil), now.Add(-time.Minute), mustJSON(t, analysis))

		mock.ExpectQuery(`SELECT (.+) FROM feedback ORDER BY created_at DESC LIMIT \$1 OFFSET \$2`).
			WithArgs(1, 1).
			WillReturnRows(rows)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM feedback`).
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

		feedback, total, err := s.ListFeedback(ctx,
			types.FeedbackFilters{},
			types.PaginationParams{Page: 2, PageSize: 1},
		)
		require.NoError(t, err)
		require.Len(t, feedback, 1)
		assert.Equal(t, int64(2), feedback[0].ID)
		assert.Equal(t, 3, total)
	})

	t.Run("empty result", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM feedback WHERE \(text ILIKE \$1 OR analysis->>'summary' ILIKE \$1\)`).
			WithArgs("%nomatch%", 10, 0).
			WillReturnRows(pgxmock.NewRows([]string{"id", "text", "email", "created_at", "analysis"}))

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM feedback WHERE`).
			WithArgs("%nomatch%").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))

		feedback, total, err := s.ListFeedback(ctx,
			types.FeedbackFilters{Search: "nomatch"},
			types.PaginationParams{Page: 1, PageSize: 10},
		)
		require.NoError(t, err)
		assert.Empty(t, feedback)
		assert.Zero(t, total)
	})

	t.Run("query error propagates", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM feedback`).
			WithArgs(10, 0).
			WillReturnError(errors.New("connection reset"))

		_, _, err := s.ListFeedback(ctx,
			types.FeedbackFilters{},
			types.PaginationParams{Page: 1, PageSize: 10},
		)
		require.Error(t, err)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func ptr(s string) *string { return &s }
