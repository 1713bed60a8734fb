package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/FeedbackLens/feedback-lens-backend/errors"
	"github.com/FeedbackLens/feedback-lens-backend/internal/store"
	"github.com/FeedbackLens/feedback-lens-backend/types"
	"github.com/gin-gonic/gin"
)

const maxPageSize = 100

// FeedbackHandler handles feedback submission and retrieval endpoints.
type FeedbackHandler struct {
	feedbackStore store.FeedbackStore
	analyzer      Analyzer
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(feedbackStore store.FeedbackStore, analyzer Analyzer) *FeedbackHandler {
	return &FeedbackHandler{feedbackStore: feedbackStore, analyzer: analyzer}
}

// SubmitFeedback accepts a feedback payload, generates its analysis, and
// persists both atomically as one row. The response is the stored entry,
// analysis included.
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	var req types.FeedbackCreate
	if !bindJSONOrError(c, &req) {
		return
	}

	// The text is stored exactly as submitted; trimming is only for the
	// blank check. Fingerprinting normalizes whitespace on its own.
	req.Email = strings.TrimSpace(req.Email)

	if strings.TrimSpace(req.Text) == "" {
		_ = c.Error(apperrors.ValidationFailed("validation_failed", "text must not be blank"))
		return
	}

	analysis, err := h.analyzer.Analyze(c.Request.Context(), req.Text)
	if err != nil {
		_ = c.Error(err)
		return
	}

	fb, err := h.feedbackStore.CreateFeedback(c.Request.Context(), req.Text, req.Email, analysis)
	if err != nil {
		_ = c.Error(apperrors.NewDatabaseError(err))
		return
	}

	c.JSON(http.StatusCreated, fb)
}

// ListFeedback returns one page of feedback, newest first, optionally
// filtered by search text, sentiment, and tag. Pagination bounds are checked
// before any query runs.
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	var filters types.FeedbackFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		_ = c.Error(apperrors.ValidationFailed("invalid_query_parameters", err.Error()))
		return
	}

	var params types.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		_ = c.Error(apperrors.InvalidPagination(err.Error()))
		return
	}
	if params.Page < 1 {
		_ = c.Error(apperrors.InvalidPagination("page must be at least 1"))
		return
	}
	if params.PageSize < 1 || params.PageSize > maxPageSize {
		_ = c.Error(apperrors.InvalidPagination("pageSize must be between 1 and 100"))
		return
	}

	feedback, total, err := h.feedbackStore.ListFeedback(c.Request.Context(), filters, params)
	if err != nil {
		_ = c.Error(apperrors.NewDatabaseError(err))
		return
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + params.PageSize - 1) / params.PageSize
	}

	if feedback == nil {
		feedback = []types.Feedback{}
	}

	c.JSON(http.StatusOK, types.FeedbackList{
		Data: feedback,
		Pagination: types.PaginationMeta{
			Page:       params.Page,
			PageSize:   params.PageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

// GetFeedback returns a single feedback entry by ID.
func (h *FeedbackHandler) GetFeedback(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		_ = c.Error(apperrors.ValidationFailed("invalid_feedback_id", "feedback ID must be a positive integer"))
		return
	}

	fb, err := h.feedbackStore.GetFeedback(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = c.Error(apperrors.NotFound("Feedback", id))
			return
		}
		_ = c.Error(apperrors.NewDatabaseError(err))
		return
	}

	c.JSON(http.StatusOK, fb)
}
