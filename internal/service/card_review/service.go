package card_review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/learning-tracker/internal/domain"
)

// CardReviewService records reviews and builds study queues on top of the
// store layer.
type CardReviewService interface {
	// RecordReview applies a review with the given grade to the card and
	// persists the rescheduled card.
	//
	// Returns:
	//   - (*domain.Card, nil): the updated card
	//   - (nil, ErrInvalidGrade): if grade is not Easy, Medium or Hard
	//   - (nil, ErrCardNotFound): if no card has the given id
	//   - (nil, error): any other failure, wrapped in a ServiceError
	//
	// The load and the update run in a single transaction. A card.reviewed
	// event is emitted after the transaction commits.
	RecordReview(ctx context.Context, cardID uuid.UUID, grade domain.Grade) (*domain.Card, error)

	// GetReviewQueue returns at most limit cards in study order. When deckID
	// is non-nil only that deck's cards are considered.
	//
	// Returns:
	//   - ([]*domain.Card, nil): the queue, possibly empty
	//   - (nil, ErrInvalidLimit): if limit < 1
	//   - (nil, ErrDeckNotFound): if deckID names a deck that does not exist
	GetReviewQueue(ctx context.Context, deckID *uuid.UUID, limit int) ([]*domain.Card, error)
}

// Common error types for CardReviewService
var (
	// ErrCardNotFound indicates that the card does not exist.
	ErrCardNotFound = errors.New("card not found")

	// ErrDeckNotFound indicates that the deck used as a queue filter does not exist.
	ErrDeckNotFound = errors.New("deck not found")

	// ErrInvalidGrade indicates a grade outside Easy, Medium and Hard.
	ErrInvalidGrade = domain.ErrInvalidGrade

	// ErrInvalidLimit indicates a non-positive queue limit.
	ErrInvalidLimit = errors.New("invalid queue limit")
)

// ServiceError wraps errors from the card review service with additional context.
// This allows consumers to differentiate between different types of service errors
// using errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "record_review", "get_review_queue")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewRecordReviewError returns a new ServiceError for the record_review operation.
func NewRecordReviewError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "record_review",
		Message:   message,
		Err:       err,
	}
}

// NewGetReviewQueueError returns a new ServiceError for the get_review_queue operation.
func NewGetReviewQueueError(message string, err error) *ServiceError {
	return &ServiceError{
		Operation: "get_review_queue",
		Message:   message,
		Err:       err,
	}
}
