package types

import (
	"fmt"
	"time"
)

// Sentiment classifies the overall tone of a piece of feedback.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Valid reports whether s is one of the known sentiment values.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

// Priority ranks feedback urgency. P0 is the most urgent.
type Priority string

const (
	PriorityP0 Priority = "P0"
	PriorityP1 Priority = "P1"
	PriorityP2 Priority = "P2"
	PriorityP3 Priority = "P3"
)

// Valid reports whether p is one of the known priority values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityP0, PriorityP1, PriorityP2, PriorityP3:
		return true
	}
	return false
}

// FeedbackAnalysis is the structured AI analysis attached to a feedback entry.
// It is immutable once produced and stored as a single JSONB column.
type FeedbackAnalysis struct {
	Summary    string    `json:"summary"`
	Sentiment  Sentiment `json:"sentiment"`
	Tags       []string  `json:"tags"`
	Priority   Priority  `json:"priority"`
	NextAction string    `json:"nextAction"`
}

// Validate checks the five-field invariant: summary and nextAction non-empty,
// sentiment and priority restricted to their enums, tags present (may be empty
// but never nil). An analysis failing validation is never persisted.
func (a *FeedbackAnalysis) Validate() error {
	if a == nil {
		return fmt.Errorf("analysis is nil")
	}
	if a.Summary == "" {
		return fmt.Errorf("missing or invalid summary")
	}
	if !a.Sentiment.Valid() {
		return fmt.Errorf("invalid sentiment %q", a.Sentiment)
	}
	if a.Tags == nil {
		return fmt.Errorf("tags must be an array")
	}
	if !a.Priority.Valid() {
		return fmt.Errorf("invalid priority %q", a.Priority)
	}
	if a.NextAction == "" {
		return fmt.Errorf("missing or invalid nextAction")
	}
	return nil
}

// Feedback represents a stored feedback entry with its analysis.
type Feedback struct {
	ID        int64            `json:"id"`
	Text      string           `json:"text"`
	Email     string           `json:"email,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	Analysis  FeedbackAnalysis `json:"analysis"`
}

// FeedbackCreate represents the request body for submitting feedback.
type FeedbackCreate struct {
	Text  string `json:"text" binding:"required,min=1,max=10000"`
	Email string `json:"email" binding:"omitempty,email,max=255"`
}

// FeedbackFilters holds the optional list filters. All are combinable;
// empty values mean "no filter".
type FeedbackFilters struct {
	Search    string `form:"search"`
	Sentiment string `form:"sentiment"`
	Tag       string `form:"tag"`
}

// PaginationParams defines page-based pagination query parameters.
type PaginationParams struct {
	Page     int `form:"page,default=1"`
	PageSize int `form:"pageSize,default=10"`
}

// Offset returns the row offset for the requested page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PaginationMeta describes the pagination state of a list response.
type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// FeedbackList is the paginated envelope returned by the list endpoint.
type FeedbackList struct {
	Data       []Feedback     `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}
