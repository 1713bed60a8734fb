package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New(ValidationError, "invalid input", "field required")
	assert.Equal(t, ValidationError, err.Type)
	assert.Equal(t, "invalid input", err.Message)
	assert.Equal(t, "field required", err.Detail)
	assert.Equal(t, 400, err.HTTPStatus)
}

func TestWrap(t *testing.T) {
	originalErr := fmt.Errorf("original error")
	wrappedErr := Wrap(originalErr, DatabaseError, "database operation failed")

	assert.Equal(t, DatabaseError, wrappedErr.Type)
	assert.Equal(t, "database operation failed", wrappedErr.Message)
	assert.Equal(t, originalErr.Error(), wrappedErr.Detail)
	assert.Equal(t, 500, wrappedErr.HTTPStatus)
	assert.Equal(t, originalErr, wrappedErr.Raw)
}

func TestNotFound(t *testing.T) {
	err := NotFound("Feedback", 123)
	assert.Equal(t, NotFoundError, err.Type)
	assert.Equal(t, "Feedback not found", err.Message)
	assert.Equal(t, "ID: 123", err.Detail)
	assert.Equal(t, 404, err.HTTPStatus)
}

func TestValidationFailed(t *testing.T) {
	err := ValidationFailed("Invalid email", "format not correct")
	assert.Equal(t, ValidationError, err.Type)
	assert.Equal(t, "Invalid email", err.Message)
	assert.Equal(t, "format not correct", err.Detail)
	assert.Equal(t, 400, err.HTTPStatus)
}

func TestInvalidPagination(t *testing.T) {
	err := InvalidPagination("page must be >= 1")
	assert.Equal(t, ValidationError, err.Type)
	assert.Equal(t, "invalid_pagination", err.Code)
	assert.Equal(t, "page must be >= 1", err.Detail)
	assert.Equal(t, 400, err.HTTPStatus)
}

func TestAnalysisFailed(t *testing.T) {
	cause := fmt.Errorf("invalid sentiment \"meh\"")
	err := AnalysisFailed(cause)
	assert.Equal(t, AnalysisError, err.Type)
	assert.Equal(t, "Feedback analysis failed", err.Message)
	assert.Equal(t, cause.Error(), err.Detail)
	assert.Equal(t, 500, err.HTTPStatus)
	assert.Equal(t, cause, err.Raw)
}

func TestNewDatabaseError(t *testing.T) {
	originalErr := fmt.Errorf("connection failed")
	err := NewDatabaseError(originalErr)
	assert.Equal(t, DatabaseError, err.Type)
	assert.Equal(t, "Database operation failed", err.Message)
	assert.Equal(t, 500, err.HTTPStatus)
	assert.Equal(t, originalErr, err.Raw)
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name: "with detail",
			err: &AppError{
				Type:    ValidationError,
				Message: "invalid input",
				Detail:  "text too long",
			},
			expected: "VALIDATION_ERROR: invalid input (text too long)",
		},
		{
			name: "without detail",
			err: &AppError{
				Type:    ServerError,
				Message: "something broke",
			},
			expected: "SERVER_ERROR: something broke",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}
