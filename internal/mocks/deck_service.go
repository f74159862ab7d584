package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/learning-tracker/internal/domain"
	"github.com/phrazzld/learning-tracker/internal/service"
)

var (
	_ service.DeckService = (*MockDeckService)(nil)
	_ service.CardService = (*MockCardService)(nil)
)

// MockDeckService implements service.DeckService for testing
type MockDeckService struct {
	CreateDeckFn func(ctx context.Context, name, description string) (*domain.Deck, error)
	GetDeckFn    func(ctx context.Context, deckID uuid.UUID) (*service.DeckDetail, error)
	ListDecksFn  func(ctx context.Context) ([]service.DeckWithStats, error)
	UpdateDeckFn func(ctx context.Context, deckID uuid.UUID, name, description string) (*domain.Deck, error)
	DeleteDeckFn func(ctx context.Context, deckID uuid.UUID) error

	// Default return values
	Deck   *domain.Deck
	Detail *service.DeckDetail
	Decks  []service.DeckWithStats
	Err    error
}

func (m *MockDeckService) CreateDeck(ctx context.Context, name, description string) (*domain.Deck, error) {
	if m.CreateDeckFn != nil {
		return m.CreateDeckFn(ctx, name, description)
	}
	return m.Deck, m.Err
}

func (m *MockDeckService) GetDeck(ctx context.Context, deckID uuid.UUID) (*service.DeckDetail, error) {
	if m.GetDeckFn != nil {
		return m.GetDeckFn(ctx, deckID)
	}
	return m.Detail, m.Err
}

func (m *MockDeckService) ListDecks(ctx context.Context) ([]service.DeckWithStats, error) {
	if m.ListDecksFn != nil {
		return m.ListDecksFn(ctx)
	}
	return m.Decks, m.Err
}

func (m *MockDeckService) UpdateDeck(
	ctx context.Context,
	deckID uuid.UUID,
	name, description string,
) (*domain.Deck, error) {
	if m.UpdateDeckFn != nil {
		return m.UpdateDeckFn(ctx, deckID, name, description)
	}
	return m.Deck, m.Err
}

func (m *MockDeckService) DeleteDeck(ctx context.Context, deckID uuid.UUID) error {
	if m.DeleteDeckFn != nil {
		return m.DeleteDeckFn(ctx, deckID)
	}
	return m.Err
}

// MockCardService implements service.CardService for testing
type MockCardService struct {
	CreateCardFn func(
		ctx context.Context,
		deckID uuid.UUID,
		question, answer string,
		difficulty domain.Grade,
	) (*domain.Card, error)
	GetCardFn       func(ctx context.Context, cardID uuid.UUID) (*domain.Card, error)
	ListCardsFn     func(ctx context.Context, deckID uuid.UUID, status *domain.ReviewStatus) ([]*domain.Card, error)
	UpdateCardFn    func(ctx context.Context, cardID uuid.UUID, update service.CardUpdate) (*domain.Card, error)
	DeleteCardFn    func(ctx context.Context, cardID uuid.UUID) error
	SetCardStatusFn func(ctx context.Context, cardID uuid.UUID, status domain.ReviewStatus) (*domain.Card, error)

	// Default return values
	Card  *domain.Card
	Cards []*domain.Card
	Err   error
}

func (m *MockCardService) CreateCard(
	ctx context.Context,
	deckID uuid.UUID,
	question, answer string,
	difficulty domain.Grade,
) (*domain.Card, error) {
	if m.CreateCardFn != nil {
		return m.CreateCardFn(ctx, deckID, question, answer, difficulty)
	}
	return m.Card, m.Err
}

func (m *MockCardService) GetCard(ctx context.Context, cardID uuid.UUID) (*domain.Card, error) {
	if m.GetCardFn != nil {
		return m.GetCardFn(ctx, cardID)
	}
	return m.Card, m.Err
}

func (m *MockCardService) ListCards(
	ctx context.Context,
	deckID uuid.UUID,
	status *domain.ReviewStatus,
) ([]*domain.Card, error) {
	if m.ListCardsFn != nil {
		return m.ListCardsFn(ctx, deckID, status)
	}
	return m.Cards, m.Err
}

func (m *MockCardService) UpdateCard(
	ctx context.Context,
	cardID uuid.UUID,
	update service.CardUpdate,
) (*domain.Card, error) {
	if m.UpdateCardFn != nil {
		return m.UpdateCardFn(ctx, cardID, update)
	}
	return m.Card, m.Err
}

func (m *MockCardService) DeleteCard(ctx context.Context, cardID uuid.UUID) error {
	if m.DeleteCardFn != nil {
		return m.DeleteCardFn(ctx, cardID)
	}
	return m.Err
}

func (m *MockCardService) SetCardStatus(
	ctx context.Context,
	cardID uuid.UUID,
	status domain.ReviewStatus,
) (*domain.Card, error) {
	if m.SetCardStatusFn != nil {
		return m.SetCardStatusFn(ctx, cardID, status)
	}
	return m.Card, m.Err
}
