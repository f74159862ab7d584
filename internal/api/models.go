package api

import (
	"github.com/phrazzld/learning-tracker/internal/domain"
)

// DeckRequest is the payload for creating or updating a deck.
type DeckRequest struct {
	Name        string `json:"name"        validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// CreateCardRequest is the payload for adding a card to a deck.
type CreateCardRequest struct {
	Question   string `json:"question"   validate:"required"`
	Answer     string `json:"answer"     validate:"required"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=Easy Medium Hard"`
}

// UpdateCardRequest is the payload for editing a card. A non-empty DeckID
// moves the card to that deck.
type UpdateCardRequest struct {
	Question   string `json:"question"   validate:"required"`
	Answer     string `json:"answer"     validate:"required"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=Easy Medium Hard"`
	DeckID     string `json:"deck_id"    validate:"omitempty,uuid"`
}

// SetStatusRequest is the payload for changing a card's review status.
type SetStatusRequest struct {
	ReviewStatus string `json:"review_status" validate:"required,oneof=New Learning Review Mastered"`
}

// RecordReviewRequest is the payload for grading a review.
type RecordReviewRequest struct {
	Grade string `json:"grade" validate:"required,oneof=Easy Medium Hard"`
}

// ReviewQueueResponse is the study queue together with the limit applied.
type ReviewQueueResponse struct {
	Cards []*domain.Card `json:"cards"`
	Count int            `json:"count"`
	Limit int            `json:"limit"`
}

// HealthResponse is returned by the liveness endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}
