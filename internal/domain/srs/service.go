package srs

import (
	"errors"
	"time"

	"github.com/phrazzld/learning-tracker/internal/domain"
)

// Common errors
var (
	ErrNilCard      = errors.New("card cannot be nil")
	ErrInvalidGrade = domain.ErrInvalidGrade
	ErrInvalidLimit = errors.New("queue limit must be at least 1")
)

// Service defines the interface for review scheduling operations
type Service interface {
	// RecordReview returns a copy of card updated for a review with the given
	// grade performed at now.
	RecordReview(card *domain.Card, grade domain.Grade, now time.Time) (*domain.Card, error)

	// BuildQueue returns at most limit cards in study order.
	BuildQueue(cards []*domain.Card, limit int) ([]*domain.Card, error)
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new scheduler with default parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new scheduler with custom parameters.
// Grades missing from params, or mapped to less than one day, use the defaults.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params.withDefaults(),
	}
}

// RecordReview implements the Service interface
func (s *defaultService) RecordReview(
	card *domain.Card,
	grade domain.Grade,
	now time.Time,
) (*domain.Card, error) {
	if card == nil {
		return nil, ErrNilCard
	}

	if !grade.Valid() {
		return nil, ErrInvalidGrade
	}

	return calculateNextCard(card, grade, now, s.params), nil
}

// BuildQueue implements the Service interface
func (s *defaultService) BuildQueue(cards []*domain.Card, limit int) ([]*domain.Card, error) {
	if limit < 1 {
		return nil, ErrInvalidLimit
	}

	ordered := orderForReview(cards)
	if len(ordered) > limit {
		ordered = ordered[:limit]
	}

	return ordered, nil
}
