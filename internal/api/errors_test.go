package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/learning-tracker/internal/api/shared"
	"github.com/phrazzld/learning-tracker/internal/domain"
	"github.com/phrazzld/learning-tracker/internal/service"
	"github.com/phrazzld/learning-tracker/internal/service/auth"
	"github.com/phrazzld/learning-tracker/internal/service/card_review"
	"github.com/phrazzld/learning-tracker/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusInternalServerError},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"deck not found", service.ErrDeckNotFound, http.StatusNotFound},
		{"wrapped card not found", card_review.NewRecordReviewError("lookup", card_review.ErrCardNotFound), http.StatusNotFound},
		{"store not found", fmt.Errorf("get: %w", store.ErrCardNotFound), http.StatusNotFound},
		{"duplicate", store.ErrDuplicate, http.StatusConflict},
		{"invalid grade", domain.ErrInvalidGrade, http.StatusBadRequest},
		{"invalid limit", card_review.ErrInvalidLimit, http.StatusBadRequest},
		{"validation error", domain.NewValidationError("name", "is required", domain.ErrValidation), http.StatusBadRequest},
		{"empty deck name", domain.ErrDeckNameEmpty, http.StatusBadRequest},
		{"malformed body", errMalformedBody, http.StatusBadRequest},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{"expired token", auth.ErrExpiredToken, "Token expired"},
		{"deck not found", card_review.ErrDeckNotFound, "Deck not found"},
		{"card not found", store.ErrCardNotFound, "Card not found"},
		{"invalid grade", domain.ErrInvalidGrade, "Grade must be one of Easy, Medium, Hard"},
		{"invalid status", domain.ErrInvalidReviewStatus, "Review status must be one of New, Learning, Review, Mastered"},
		{"invalid limit", card_review.ErrInvalidLimit, "Limit must be a positive integer"},
		{"field validation", domain.NewValidationError("limit", "must be an integer", domain.ErrInvalidFormat), "Invalid limit: must be an integer"},
		{"internal detail", errors.New("pq: password authentication failed"), "An unexpected error occurred"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := shared.ValidateRequest(&RecordReviewRequest{Grade: "Again"})
	require.Error(t, err)
	assert.Equal(t, "Invalid Grade: invalid value", SanitizeValidationError(err))

	err = shared.ValidateRequest(&DeckRequest{})
	require.Error(t, err)
	assert.Equal(t, "Invalid Name: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("other")))
}

func TestHandleAPIError(t *testing.T) {
	t.Parallel()

	t.Run("server error uses default message", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(shared.WithTraceID(req.Context(), "abc123"))
		rr := httptest.NewRecorder()

		HandleAPIError(rr, req, errors.New("db exploded"), "Failed to list decks")

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"error":"Failed to list decks","trace_id":"abc123"}`, rr.Body.String())
	})

	t.Run("client error keeps safe message", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rr := httptest.NewRecorder()

		HandleAPIError(rr, req, service.ErrCardNotFound, "Failed to get card")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"error":"Card not found"}`, rr.Body.String())
	})
}
