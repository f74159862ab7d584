package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/learning-tracker/internal/domain"
)

// DeckStore defines the interface for deck data persistence.
type DeckStore interface {
	// Create saves a new deck.
	Create(ctx context.Context, deck *domain.Deck) error

	// GetByID retrieves a deck by its unique ID.
	// Returns ErrDeckNotFound if the deck does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error)

	// List returns every deck in creation order.
	List(ctx context.Context) ([]*domain.Deck, error)

	// Update replaces the name and description of an existing deck.
	// Returns ErrDeckNotFound if the deck does not exist.
	Update(ctx context.Context, deck *domain.Deck) error

	// Delete removes a deck and all of its cards.
	// Returns ErrDeckNotFound if the deck does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// TouchLastStudied sets the deck's LastStudiedAt to at.
	// Returns ErrDeckNotFound if the deck does not exist.
	TouchLastStudied(ctx context.Context, id uuid.UUID, at time.Time) error
}
