package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/learning-tracker/internal/domain"
)

// CardFilter narrows the set of cards returned by CardStore.List.
// Zero-valued fields do not filter.
type CardFilter struct {
	DeckID *uuid.UUID
	Status *domain.ReviewStatus
}

// CardStore defines the interface for card data persistence.
type CardStore interface {
	// Create saves a new card. The card must be valid and its deck must exist.
	// Returns ErrDeckNotFound if the deck does not exist, and an
	// ErrInvalidEntity-wrapped error if the card fails validation.
	Create(ctx context.Context, card *domain.Card) error

	// GetByID retrieves a card by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// List returns the cards matching the filter in creation order.
	// An empty result is a non-nil empty slice.
	List(ctx context.Context, filter CardFilter) ([]*domain.Card, error)

	// Update replaces every mutable field of an existing card.
	// Returns ErrCardNotFound if the card does not exist and ErrDeckNotFound
	// if the card was moved to a deck that does not exist.
	Update(ctx context.Context, card *domain.Card) error

	// Delete removes a card from the store by its ID.
	// Returns ErrCardNotFound if the card does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
