package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/learning-tracker/internal/domain"
	"github.com/phrazzld/learning-tracker/internal/service/card_review"
)

var _ card_review.CardReviewService = (*MockCardReviewService)(nil)

// MockCardReviewService implements card_review.CardReviewService for testing
type MockCardReviewService struct {
	// Custom behavior functions
	RecordReviewFn   func(ctx context.Context, cardID uuid.UUID, grade domain.Grade) (*domain.Card, error)
	GetReviewQueueFn func(ctx context.Context, deckID *uuid.UUID, limit int) ([]*domain.Card, error)

	// Default response values
	ReviewedCard *domain.Card
	Queue        []*domain.Card
	Err          error

	// Call tracking for verification
	RecordReviewCalls struct {
		mu      sync.Mutex
		Count   int
		CardIDs []uuid.UUID
		Grades  []domain.Grade
	}

	GetReviewQueueCalls struct {
		mu      sync.Mutex
		Count   int
		DeckIDs []*uuid.UUID
		Limits  []int
	}
}

// RecordReview implements the card_review.CardReviewService interface
func (m *MockCardReviewService) RecordReview(
	ctx context.Context,
	cardID uuid.UUID,
	grade domain.Grade,
) (*domain.Card, error) {
	m.RecordReviewCalls.mu.Lock()
	m.RecordReviewCalls.Count++
	m.RecordReviewCalls.CardIDs = append(m.RecordReviewCalls.CardIDs, cardID)
	m.RecordReviewCalls.Grades = append(m.RecordReviewCalls.Grades, grade)
	m.RecordReviewCalls.mu.Unlock()

	if m.RecordReviewFn != nil {
		return m.RecordReviewFn(ctx, cardID, grade)
	}
	return m.ReviewedCard, m.Err
}

// GetReviewQueue implements the card_review.CardReviewService interface
func (m *MockCardReviewService) GetReviewQueue(
	ctx context.Context,
	deckID *uuid.UUID,
	limit int,
) ([]*domain.Card, error) {
	m.GetReviewQueueCalls.mu.Lock()
	m.GetReviewQueueCalls.Count++
	m.GetReviewQueueCalls.DeckIDs = append(m.GetReviewQueueCalls.DeckIDs, deckID)
	m.GetReviewQueueCalls.Limits = append(m.GetReviewQueueCalls.Limits, limit)
	m.GetReviewQueueCalls.mu.Unlock()

	if m.GetReviewQueueFn != nil {
		return m.GetReviewQueueFn(ctx, deckID, limit)
	}
	return m.Queue, m.Err
}

// MockOption is a function type that configures a MockCardReviewService
type MockOption func(*MockCardReviewService)

// WithReviewedCard sets the default card to return from RecordReview
func WithReviewedCard(card *domain.Card) MockOption {
	return func(m *MockCardReviewService) {
		m.ReviewedCard = card
	}
}

// WithQueue sets the default queue to return from GetReviewQueue
func WithQueue(queue []*domain.Card) MockOption {
	return func(m *MockCardReviewService) {
		m.Queue = queue
	}
}

// WithError sets the default error to return from both methods
func WithError(err error) MockOption {
	return func(m *MockCardReviewService) {
		m.Err = err
	}
}

// NewMockCardReviewService creates a new MockCardReviewService with the given options
func NewMockCardReviewService(opts ...MockOption) *MockCardReviewService {
	m := &MockCardReviewService{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}
