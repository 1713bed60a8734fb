// Package postgres implements the store contracts against PostgreSQL via pgx.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/FeedbackLens/feedback-lens-backend/internal/store"
	"github.com/FeedbackLens/feedback-lens-backend/types"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the subset of pgxpool.Pool used by the stores. pgxmock satisfies it too.
type DB interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

var _ DB = (*pgxpool.Pool)(nil)

// Ensure FeedbackStore implements store.FeedbackStore
var _ store.FeedbackStore = (*FeedbackStore)(nil)

// FeedbackStore implements store.FeedbackStore using PostgreSQL.
// The analysis is stored as a single JSONB column alongside the raw text.
type FeedbackStore struct {
	db DB
}

// NewFeedbackStore creates a feedback store backed by the given connection pool.
func NewFeedbackStore(db DB) *FeedbackStore {
	return &FeedbackStore{db: db}
}

// CreateFeedback inserts a feedback entry with its analysis and returns the
// stored row. ID and created_at are assigned by the database.
func (s *FeedbackStore) CreateFeedback(ctx context.Context, text, email string, analysis *types.FeedbackAnalysis) (*types.Feedback, error) {
	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis: %w", err)
	}

	// Empty email is stored as NULL
	var emailParam interface{}
	if email != "" {
		emailParam = email
	}

	query := `
		INSERT INTO feedback (text, email, analysis)
		VALUES ($1, $2, $3)
		RETURNING id, text, email, created_at, analysis`

	row := s.db.QueryRow(ctx, query, text, emailParam, analysisJSON)
	fb, err := scanFeedback(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}
	return fb, nil
}

// GetFeedback retrieves a feedback entry by ID.
func (s *FeedbackStore) GetFeedback(ctx context.Context, id int64) (*types.Feedback, error) {
	query := `
		SELECT id, text, email, created_at, analysis
		FROM feedback
		WHERE id = $1`

	fb, err := scanFeedback(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}
	return fb, nil
}

// ListFeedback returns one page of feedback matching the filters, newest
// first, plus the total matching count. Page and count queries share the
// identical predicate list (see buildFeedbackQueries).
func (s *FeedbackStore) ListFeedback(ctx context.Context, filters types.FeedbackFilters, params types.PaginationParams) ([]types.Feedback, int, error) {
	listQuery, listArgs, countQuery, countArgs, err := buildFeedbackQueries(filters, params)
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.db.Query(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	var feedback []types.Feedback
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan feedback row: %w", err)
		}
		feedback = append(feedback, *fb)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate feedback rows: %w", err)
	}

	var total int
	if err := s.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count feedback: %w", err)
	}

	return feedback, total, nil
}

// scanFeedback scans one feedback row, decoding the JSONB analysis column.
func scanFeedback(row pgx.Row) (*types.Feedback, error) {
	var (
		fb           types.Feedback
		email        *string
		analysisJSON []byte
	)

	if err := row.Scan(&fb.ID, &fb.Text, &email, &fb.CreatedAt, &analysisJSON); err != nil {
		return nil, err
	}
	if email != nil {
		fb.Email = *email
	}
	if err := json.Unmarshal(analysisJSON, &fb.Analysis); err != nil {
		return nil, fmt.Errorf("failed to decode analysis column: %w", err)
	}
	return &fb, nil
}
